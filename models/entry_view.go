package models

import "fmt"

// LocationRefFunc resolves a location id into its embedded object.
type LocationRefFunc func(id string) LocationRef

// EntryView expands e into the server shape. Empty location references stay nil.
func EntryView(e SubActivityPriceEntry, sub SubActivityRef, loc LocationRefFunc) PriceEntryView {
	v := PriceEntryView{
		ID:            e.ID,
		SubActivity:   sub,
		PricingMethod: e.Method(),
		CostRange:     e.CostRange,
	}
	ref := func(id string) *LocationRef {
		if id == "" {
			return nil
		}
		r := LocationRef{ID: id, DisplayName: id}
		if loc != nil {
			r = loc(id)
		}
		return &r
	}
	switch p := e.Pricing.(type) {
	case ItemPricing:
		price := p.BasePrice
		v.BasePrice = &price
	case LocationPricing:
		v.LocationPrices = make([]LocationPriceView, len(p.Rows))
		for i, row := range p.Rows {
			v.LocationPrices[i] = LocationPriceView{Location: ref(row.Location), Price: row.Price, PricingMethod: PerLocation}
		}
	case TripPricing:
		v.LocationPrices = make([]LocationPriceView, len(p.Rows))
		for i, row := range p.Rows {
			v.LocationPrices[i] = LocationPriceView{
				FromLocation:  ref(row.FromLocation),
				ToLocation:    ref(row.ToLocation),
				Price:         row.Price,
				PricingMethod: PerTrip,
			}
		}
	}
	return v
}

// EntryFromView flattens a server-shaped entry back into reference IDs.
func EntryFromView(v PriceEntryView) (SubActivityPriceEntry, error) {
	method, err := ParsePricingMethod(string(v.PricingMethod))
	if err != nil {
		return SubActivityPriceEntry{}, err
	}
	e := SubActivityPriceEntry{ID: v.ID, SubActivityID: v.SubActivity.ID, CostRange: v.CostRange}

	switch method {
	case PerItem:
		if len(v.LocationPrices) > 0 {
			return e, fmt.Errorf("%w: %s with %s", ErrCrossShapePayload, method, FieldLocationPrices)
		}
		if v.BasePrice == nil {
			return e, fmt.Errorf("%w: %s entry %s has no base price", ErrMissingPricing, method, v.ID)
		}
		e.Pricing = ItemPricing{BasePrice: *v.BasePrice}

	case PerLocation:
		if v.BasePrice != nil {
			return e, fmt.Errorf("%w: %s with %s", ErrCrossShapePayload, method, FieldBasePrice)
		}
		rows := make([]LocationPrice, len(v.LocationPrices))
		for i, r := range v.LocationPrices {
			if r.PricingMethod != "" && r.PricingMethod != method {
				return e, fmt.Errorf("%w: row %d tagged %s inside %s entry", ErrCrossShapePayload, i, r.PricingMethod, method)
			}
			rows[i] = LocationPrice{Location: refID(r.Location), Price: r.Price, PricingMethod: PerLocation}
		}
		e.Pricing = LocationPricing{Rows: rows}

	case PerTrip:
		if v.BasePrice != nil {
			return e, fmt.Errorf("%w: %s with %s", ErrCrossShapePayload, method, FieldBasePrice)
		}
		rows := make([]TripLocationPrice, len(v.LocationPrices))
		for i, r := range v.LocationPrices {
			if r.PricingMethod != "" && r.PricingMethod != method {
				return e, fmt.Errorf("%w: row %d tagged %s inside %s entry", ErrCrossShapePayload, i, r.PricingMethod, method)
			}
			rows[i] = TripLocationPrice{
				FromLocation:  refID(r.FromLocation),
				ToLocation:    refID(r.ToLocation),
				Price:         r.Price,
				PricingMethod: PerTrip,
			}
		}
		e.Pricing = TripPricing{Rows: rows}
	}
	return e, nil
}

func refID(r *LocationRef) string {
	if r == nil {
		return ""
	}
	return r.ID
}
