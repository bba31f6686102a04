package priceform

import "errors"

var (
	ErrClosed             = errors.New("price entry form is not open")
	ErrNoMethod           = errors.New("no pricing method selected")
	ErrSuperseded         = errors.New("pricing method selection was superseded")
	ErrUnknownOption      = errors.New("sub-activity is not offered for this pricing method")
	ErrRowsNotApplicable  = errors.New("rows do not apply to this pricing method")
	ErrFieldNotApplicable = errors.New("field does not apply to this pricing method")
	ErrFieldDisabled      = errors.New("field is disabled")
	ErrLastRow            = errors.New("at least one row is required")
	ErrRowOutOfRange      = errors.New("row index out of range")
)
