package priceform

import "freightadmin/models"

// Snapshot is a read-only copy of the form. Only the field set of the active
// method is populated: BasePrice for perItem, LocationRows for perLocation,
// TripRows for perTrip.
type Snapshot struct {
	Mode          Mode
	PriceListID   string
	EntryID       string
	PricingMethod models.PricingMethod
	SubActivityID string

	Options        []models.SubActivityOption
	OptionsLoading bool
	OptionsError   string

	BasePrice        *float64
	BasePriceEnabled bool
	LocationRows     []LocationRow
	TripRows         []TripRow

	FieldErrors map[string]string
	Notice      string
}

type LocationRow struct {
	models.LocationPrice
	PriceEnabled bool
}

type TripRow struct {
	models.TripLocationPrice
	PriceEnabled bool
}

// Fields lists the shape fields present in the snapshot.
func (s Snapshot) Fields() []string {
	var fields []string
	if s.BasePrice != nil {
		fields = append(fields, models.FieldBasePrice)
	}
	if s.LocationRows != nil || s.TripRows != nil {
		fields = append(fields, models.FieldLocationPrices)
	}
	return fields
}

// CanRemoveRows reports whether RemoveRow would be accepted for some row.
func (s Snapshot) CanRemoveRows() bool {
	return len(s.LocationRows) > 1 || len(s.TripRows) > 1
}

func (f *Form) Snapshot() Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := Snapshot{
		Mode:           f.mode,
		PriceListID:    f.priceListID,
		EntryID:        f.entryID,
		PricingMethod:  f.method,
		SubActivityID:  f.subActivity,
		Options:        append([]models.SubActivityOption(nil), f.options...),
		OptionsLoading: f.loading,
		FieldErrors:    make(map[string]string, len(f.fieldErrors)),
		Notice:         f.notice,
	}
	if f.optionsErr != nil {
		s.OptionsError = f.optionsErr.Error()
	}
	for k, v := range f.fieldErrors {
		s.FieldErrors[k] = v
	}

	switch p := f.pricing.(type) {
	case models.ItemPricing:
		price := p.BasePrice
		s.BasePrice = &price
		s.BasePriceEnabled = f.subActivity != ""
	case models.LocationPricing:
		s.LocationRows = make([]LocationRow, len(p.Rows))
		for i, row := range p.Rows {
			s.LocationRows[i] = LocationRow{LocationPrice: row, PriceEnabled: f.rowPriceEnabled(i)}
		}
	case models.TripPricing:
		s.TripRows = make([]TripRow, len(p.Rows))
		for i, row := range p.Rows {
			s.TripRows[i] = TripRow{TripLocationPrice: row, PriceEnabled: f.rowPriceEnabled(i)}
		}
	}
	return s
}
