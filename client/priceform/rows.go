package priceform

import (
	"fmt"
	"strings"

	"freightadmin/models"
)

// AddRow appends one empty row of the current shape.
func (f *Form) AddRow() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireOpen(); err != nil {
		return err
	}
	switch p := f.pricing.(type) {
	case models.LocationPricing:
		p.Rows = append(p.Rows, models.LocationPrice{PricingMethod: models.PerLocation})
		f.pricing = p
	case models.TripPricing:
		p.Rows = append(p.Rows, models.TripLocationPrice{PricingMethod: models.PerTrip})
		f.pricing = p
	case nil:
		return ErrNoMethod
	default:
		return fmt.Errorf("%w: %s", ErrRowsNotApplicable, f.method)
	}
	return nil
}

// RemoveRow deletes row i. The only remaining row cannot be removed.
func (f *Form) RemoveRow(i int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireOpen(); err != nil {
		return err
	}
	n, err := f.rowCount()
	if err != nil {
		return err
	}
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, i, n)
	}
	if n == 1 {
		return ErrLastRow
	}

	switch p := f.pricing.(type) {
	case models.LocationPricing:
		rows := make([]models.LocationPrice, 0, n-1)
		rows = append(rows, p.Rows[:i]...)
		f.pricing = models.LocationPricing{Rows: append(rows, p.Rows[i+1:]...)}
	case models.TripPricing:
		rows := make([]models.TripLocationPrice, 0, n-1)
		rows = append(rows, p.Rows[:i]...)
		f.pricing = models.TripPricing{Rows: append(rows, p.Rows[i+1:]...)}
	}
	f.dropRowErrors()
	return nil
}

// SetBasePrice sets the perItem price. It is disabled until a sub-activity is chosen.
func (f *Form) SetBasePrice(price float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireOpen(); err != nil {
		return err
	}
	if _, ok := f.pricing.(models.ItemPricing); !ok {
		return fmt.Errorf("%w: %s on %s", ErrFieldNotApplicable, models.FieldBasePrice, f.methodName())
	}
	if f.subActivity == "" {
		return fmt.Errorf("%w: select a sub-activity first", ErrFieldDisabled)
	}
	f.pricing = models.ItemPricing{BasePrice: price}
	delete(f.fieldErrors, models.FieldBasePrice)
	return nil
}

// SetRowLocation sets the location of perLocation row i. Clearing it also
// clears the row's price.
func (f *Form) SetRowLocation(i int, loc models.LocationRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireOpen(); err != nil {
		return err
	}
	p, ok := f.pricing.(models.LocationPricing)
	if !ok {
		return fmt.Errorf("%w: location on %s", ErrFieldNotApplicable, f.methodName())
	}
	if i < 0 || i >= len(p.Rows) {
		return fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, i, len(p.Rows))
	}

	rows := append([]models.LocationPrice(nil), p.Rows...)
	rows[i].Location = f.remember(loc)
	if rows[i].Location == "" {
		rows[i].Price = 0
	}
	f.pricing = models.LocationPricing{Rows: rows}
	delete(f.fieldErrors, rowField(i, "location"))
	return nil
}

// SetRowTrip sets the origin and destination of perTrip row i. Clearing
// either also clears the row's price.
func (f *Form) SetRowTrip(i int, from, to models.LocationRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireOpen(); err != nil {
		return err
	}
	p, ok := f.pricing.(models.TripPricing)
	if !ok {
		return fmt.Errorf("%w: trip locations on %s", ErrFieldNotApplicable, f.methodName())
	}
	if i < 0 || i >= len(p.Rows) {
		return fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, i, len(p.Rows))
	}

	rows := append([]models.TripLocationPrice(nil), p.Rows...)
	rows[i].FromLocation = f.remember(from)
	rows[i].ToLocation = f.remember(to)
	if rows[i].FromLocation == "" || rows[i].ToLocation == "" {
		rows[i].Price = 0
	}
	f.pricing = models.TripPricing{Rows: rows}
	delete(f.fieldErrors, rowField(i, "fromLocation"))
	delete(f.fieldErrors, rowField(i, "toLocation"))
	return nil
}

// SetRowPrice sets the price of row i. It is disabled until a sub-activity is
// chosen and the row's location references are filled.
func (f *Form) SetRowPrice(i int, price float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireOpen(); err != nil {
		return err
	}
	n, err := f.rowCount()
	if err != nil {
		return err
	}
	if i < 0 || i >= n {
		return fmt.Errorf("%w: %d of %d", ErrRowOutOfRange, i, n)
	}
	if !f.rowPriceEnabled(i) {
		return fmt.Errorf("%w: row %d price needs a sub-activity and its locations", ErrFieldDisabled, i)
	}

	switch p := f.pricing.(type) {
	case models.LocationPricing:
		rows := append([]models.LocationPrice(nil), p.Rows...)
		rows[i].Price = price
		f.pricing = models.LocationPricing{Rows: rows}
	case models.TripPricing:
		rows := append([]models.TripLocationPrice(nil), p.Rows...)
		rows[i].Price = price
		f.pricing = models.TripPricing{Rows: rows}
	}
	delete(f.fieldErrors, rowField(i, "price"))
	return nil
}

// rowCount returns the number of rows of a location-based shape. Caller holds mu.
func (f *Form) rowCount() (int, error) {
	switch p := f.pricing.(type) {
	case models.LocationPricing:
		return len(p.Rows), nil
	case models.TripPricing:
		return len(p.Rows), nil
	case nil:
		return 0, ErrNoMethod
	}
	return 0, fmt.Errorf("%w: %s", ErrRowsNotApplicable, f.method)
}

// rowPriceEnabled reports whether row i accepts a price. Caller holds mu.
func (f *Form) rowPriceEnabled(i int) bool {
	if f.subActivity == "" {
		return false
	}
	switch p := f.pricing.(type) {
	case models.LocationPricing:
		return p.Rows[i].Location != ""
	case models.TripPricing:
		return p.Rows[i].FromLocation != "" && p.Rows[i].ToLocation != ""
	}
	return false
}

// remember keeps the location object for rebuilding the server shape.
func (f *Form) remember(loc models.LocationRef) string {
	if loc.ID != "" {
		if loc.DisplayName == "" {
			loc.DisplayName = loc.ID
		}
		f.locations[loc.ID] = loc
	}
	return loc.ID
}

// dropRowErrors clears row-scoped messages, whose indexes shift on removal.
func (f *Form) dropRowErrors() {
	prefix := models.FieldLocationPrices + "."
	for field := range f.fieldErrors {
		if strings.HasPrefix(field, prefix) {
			delete(f.fieldErrors, field)
		}
	}
}

func (f *Form) methodName() string {
	if f.method == "" {
		return "no method"
	}
	return string(f.method)
}

func rowField(i int, name string) string {
	return fmt.Sprintf("%s.%d.%s", models.FieldLocationPrices, i, name)
}
