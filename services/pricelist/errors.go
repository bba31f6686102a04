package pricelist

import "errors"

var (
	ErrPriceListNotFound      = errors.New("price list not found")
	ErrEntryNotFound          = errors.New("price entry not found")
	ErrUnknownOwner           = errors.New("price list owner does not exist")
	ErrUnknownSubActivity     = errors.New("sub-activity does not exist")
	ErrSubActivityNotEligible = errors.New("sub-activity is not eligible for this pricing method")
	ErrUnknownLocation        = errors.New("location does not exist")
)
