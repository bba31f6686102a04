package models

import (
	"bytes"
	"encoding/json"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
)

// entryWire is the flat document an entry travels as. Only the field set of
// the entry's method is ever populated.
type entryWire struct {
	ID             string        `bson:"id,omitempty" json:"id,omitempty"`
	SubActivityID  string        `bson:"subActivityId" json:"subActivityId"`
	PricingMethod  PricingMethod `bson:"pricingMethod" json:"pricingMethod"`
	BasePrice      *float64      `bson:"basePrice,omitempty" json:"basePrice,omitempty"`
	LocationPrices []rowWire     `bson:"locationPrices,omitempty" json:"locationPrices,omitempty"`
	CostRange      *CostRange    `bson:"costRange,omitempty" json:"costRange,omitempty"`
}

type rowWire struct {
	Location      string        `bson:"location,omitempty" json:"location,omitempty"`
	FromLocation  string        `bson:"fromLocation,omitempty" json:"fromLocation,omitempty"`
	ToLocation    string        `bson:"toLocation,omitempty" json:"toLocation,omitempty"`
	Price         float64       `bson:"price" json:"price"`
	PricingMethod PricingMethod `bson:"pricingMethod,omitempty" json:"pricingMethod,omitempty"`
}

func (e SubActivityPriceEntry) toWire() (entryWire, error) {
	if e.Pricing == nil {
		return entryWire{}, ErrMissingPricing
	}
	w := entryWire{
		ID:            e.ID,
		SubActivityID: e.SubActivityID,
		PricingMethod: e.Pricing.Method(),
	}
	if e.CostRange != (CostRange{}) {
		cr := e.CostRange
		w.CostRange = &cr
	}
	switch p := e.Pricing.(type) {
	case ItemPricing:
		price := p.BasePrice
		w.BasePrice = &price
	case LocationPricing:
		w.LocationPrices = make([]rowWire, len(p.Rows))
		for i, row := range p.Rows {
			w.LocationPrices[i] = rowWire{Location: row.Location, Price: row.Price, PricingMethod: PerLocation}
		}
	case TripPricing:
		w.LocationPrices = make([]rowWire, len(p.Rows))
		for i, row := range p.Rows {
			w.LocationPrices[i] = rowWire{FromLocation: row.FromLocation, ToLocation: row.ToLocation, Price: row.Price, PricingMethod: PerTrip}
		}
	default:
		return entryWire{}, fmt.Errorf("%w: %T", ErrInvalidPricingMethod, e.Pricing)
	}
	return w, nil
}

// toEntry rebuilds an entry, rejecting documents that mix shapes.
func (w entryWire) toEntry() (SubActivityPriceEntry, error) {
	method, err := ParsePricingMethod(string(w.PricingMethod))
	if err != nil {
		return SubActivityPriceEntry{}, err
	}
	e := SubActivityPriceEntry{ID: w.ID, SubActivityID: w.SubActivityID}
	if w.CostRange != nil {
		e.CostRange = *w.CostRange
	}

	switch method {
	case PerItem:
		if w.LocationPrices != nil {
			return e, fmt.Errorf("%w: %s with %s", ErrCrossShapePayload, method, FieldLocationPrices)
		}
		if w.BasePrice == nil {
			verr := NewValidationError()
			verr.Add(FieldBasePrice, "base price is required")
			return e, verr
		}
		e.Pricing = ItemPricing{BasePrice: *w.BasePrice}

	case PerLocation:
		if w.BasePrice != nil {
			return e, fmt.Errorf("%w: %s with %s", ErrCrossShapePayload, method, FieldBasePrice)
		}
		rows := make([]LocationPrice, 0, len(w.LocationPrices))
		for i, r := range w.LocationPrices {
			if err := r.checkTag(method, i); err != nil {
				return e, err
			}
			if r.FromLocation != "" || r.ToLocation != "" {
				return e, fmt.Errorf("%w: trip locations on %s row %d", ErrCrossShapePayload, method, i)
			}
			rows = append(rows, LocationPrice{Location: r.Location, Price: r.Price, PricingMethod: PerLocation})
		}
		e.Pricing = LocationPricing{Rows: rows}

	case PerTrip:
		if w.BasePrice != nil {
			return e, fmt.Errorf("%w: %s with %s", ErrCrossShapePayload, method, FieldBasePrice)
		}
		rows := make([]TripLocationPrice, 0, len(w.LocationPrices))
		for i, r := range w.LocationPrices {
			if err := r.checkTag(method, i); err != nil {
				return e, err
			}
			if r.Location != "" {
				return e, fmt.Errorf("%w: single location on %s row %d", ErrCrossShapePayload, method, i)
			}
			rows = append(rows, TripLocationPrice{FromLocation: r.FromLocation, ToLocation: r.ToLocation, Price: r.Price, PricingMethod: PerTrip})
		}
		e.Pricing = TripPricing{Rows: rows}
	}
	return e, nil
}

func (r rowWire) checkTag(method PricingMethod, i int) error {
	if r.PricingMethod != "" && r.PricingMethod != method {
		return fmt.Errorf("%w: row %d tagged %s inside %s entry", ErrCrossShapePayload, i, r.PricingMethod, method)
	}
	return nil
}

// MarshalJSON writes the flat wire shape.
func (e SubActivityPriceEntry) MarshalJSON() ([]byte, error) {
	w, err := e.toWire()
	if err != nil {
		return nil, err
	}
	return json.Marshal(w)
}

// UnmarshalJSON reads the flat wire shape strictly.
func (e *SubActivityPriceEntry) UnmarshalJSON(data []byte) error {
	var w entryWire
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&w); err != nil {
		return fmt.Errorf("decode price entry: %w", err)
	}
	entry, err := w.toEntry()
	if err != nil {
		return err
	}
	*e = entry
	return nil
}

// MarshalBSON stores the entry in the same flat shape as the JSON payload.
func (e SubActivityPriceEntry) MarshalBSON() ([]byte, error) {
	w, err := e.toWire()
	if err != nil {
		return nil, err
	}
	cr := e.CostRange
	w.CostRange = &cr
	return bson.Marshal(w)
}

// UnmarshalBSON restores an entry written by MarshalBSON.
func (e *SubActivityPriceEntry) UnmarshalBSON(data []byte) error {
	var w entryWire
	if err := bson.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode price entry document: %w", err)
	}
	entry, err := w.toEntry()
	if err != nil {
		return err
	}
	*e = entry
	return nil
}
