package models

import (
	"fmt"
	"strconv"
	"strings"
)

// PricingMethod is the billing shape of a sub-activity price entry.
type PricingMethod string

const (
	PerItem     PricingMethod = "perItem"
	PerLocation PricingMethod = "perLocation"
	PerTrip     PricingMethod = "perTrip"
)

// PricingMethods lists every supported method in display order.
var PricingMethods = []PricingMethod{PerItem, PerLocation, PerTrip}

// Valid reports whether m is one of the supported methods.
func (m PricingMethod) Valid() bool {
	switch m {
	case PerItem, PerLocation, PerTrip:
		return true
	}
	return false
}

// LocationBased reports whether m prices rows of locations rather than a single scalar.
func (m PricingMethod) LocationBased() bool {
	return m == PerLocation || m == PerTrip
}

// ParsePricingMethod converts a wire value into a PricingMethod.
func ParsePricingMethod(s string) (PricingMethod, error) {
	m := PricingMethod(strings.TrimSpace(s))
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPricingMethod, s)
	}
	return m, nil
}

// Field names of the exclusive shapes, as they appear on the wire.
const (
	FieldBasePrice      = "basePrice"
	FieldLocationPrices = "locationPrices"
)

// FieldsFor returns the only shape field that may be populated for m.
func FieldsFor(m PricingMethod) []string {
	switch m {
	case PerItem:
		return []string{FieldBasePrice}
	case PerLocation, PerTrip:
		return []string{FieldLocationPrices}
	}
	return nil
}

// PricingPolicy holds the product decisions that are configurable rather than fixed.
type PricingPolicy struct {
	AllowSameLocationTrips bool
}

// DefaultPricingPolicy matches the behaviour of the existing back office.
var DefaultPricingPolicy = PricingPolicy{AllowSameLocationTrips: true}

// CostRange is the lowest and highest price an entry or list can charge.
type CostRange struct {
	Min float64 `bson:"min" json:"min"`
	Max float64 `bson:"max" json:"max"`
}

// Widen extends r to cover other. When first is set, other replaces r.
func (r CostRange) Widen(other CostRange, first bool) CostRange {
	if first {
		return other
	}
	if other.Min < r.Min {
		r.Min = other.Min
	}
	if other.Max > r.Max {
		r.Max = other.Max
	}
	return r
}

// Pricing is the method-specific half of an entry. Only the three shapes in
// this package implement it.
type Pricing interface {
	Method() PricingMethod
	Validate(policy PricingPolicy) *ValidationError
	CostRange() CostRange
	clone() Pricing
}

// ItemPricing is a flat price per item.
type ItemPricing struct {
	BasePrice float64
}

// LocationPricing is one price per single location.
type LocationPricing struct {
	Rows []LocationPrice
}

// TripPricing is one price per origin/destination pair.
type TripPricing struct {
	Rows []TripLocationPrice
}

// LocationPrice is a perLocation row.
type LocationPrice struct {
	Location      string        `bson:"location" json:"location"`
	Price         float64       `bson:"price" json:"price"`
	PricingMethod PricingMethod `bson:"pricingMethod" json:"pricingMethod"`
}

// TripLocationPrice is a perTrip row.
type TripLocationPrice struct {
	FromLocation  string        `bson:"fromLocation" json:"fromLocation"`
	ToLocation    string        `bson:"toLocation" json:"toLocation"`
	Price         float64       `bson:"price" json:"price"`
	PricingMethod PricingMethod `bson:"pricingMethod" json:"pricingMethod"`
}

// NewPricing returns the seed shape for m: a zero base price, or exactly one empty row.
func NewPricing(m PricingMethod) (Pricing, error) {
	switch m {
	case PerItem:
		return ItemPricing{}, nil
	case PerLocation:
		return LocationPricing{Rows: []LocationPrice{{PricingMethod: PerLocation}}}, nil
	case PerTrip:
		return TripPricing{Rows: []TripLocationPrice{{PricingMethod: PerTrip}}}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrInvalidPricingMethod, m)
}

func (ItemPricing) Method() PricingMethod     { return PerItem }
func (LocationPricing) Method() PricingMethod { return PerLocation }
func (TripPricing) Method() PricingMethod     { return PerTrip }

func (p ItemPricing) Validate(PricingPolicy) *ValidationError {
	verr := NewValidationError()
	if p.BasePrice < 0 {
		verr.Add(FieldBasePrice, "must be zero or greater")
	}
	return verr
}

func (p LocationPricing) Validate(PricingPolicy) *ValidationError {
	verr := NewValidationError()
	if len(p.Rows) == 0 {
		verr.Add(FieldLocationPrices, "at least one location price is required")
	}
	for i, row := range p.Rows {
		prefix := rowField(i)
		if strings.TrimSpace(row.Location) == "" {
			verr.Add(prefix+".location", "location is required")
		}
		if row.Price < 0 {
			verr.Add(prefix+".price", "must be zero or greater")
		}
	}
	return verr
}

func (p TripPricing) Validate(policy PricingPolicy) *ValidationError {
	verr := NewValidationError()
	if len(p.Rows) == 0 {
		verr.Add(FieldLocationPrices, "at least one trip price is required")
	}
	for i, row := range p.Rows {
		prefix := rowField(i)
		from := strings.TrimSpace(row.FromLocation)
		to := strings.TrimSpace(row.ToLocation)
		if from == "" {
			verr.Add(prefix+".fromLocation", "origin location is required")
		}
		if to == "" {
			verr.Add(prefix+".toLocation", "destination location is required")
		}
		if !policy.AllowSameLocationTrips && from != "" && from == to {
			verr.Add(prefix+".toLocation", "destination must differ from origin")
		}
		if row.Price < 0 {
			verr.Add(prefix+".price", "must be zero or greater")
		}
	}
	return verr
}

func (p ItemPricing) CostRange() CostRange {
	return CostRange{Min: p.BasePrice, Max: p.BasePrice}
}

func (p LocationPricing) CostRange() CostRange {
	var r CostRange
	for i, row := range p.Rows {
		r = r.Widen(CostRange{Min: row.Price, Max: row.Price}, i == 0)
	}
	return r
}

func (p TripPricing) CostRange() CostRange {
	var r CostRange
	for i, row := range p.Rows {
		r = r.Widen(CostRange{Min: row.Price, Max: row.Price}, i == 0)
	}
	return r
}

func (p ItemPricing) clone() Pricing { return p }

func (p LocationPricing) clone() Pricing {
	rows := make([]LocationPrice, len(p.Rows))
	copy(rows, p.Rows)
	return LocationPricing{Rows: rows}
}

func (p TripPricing) clone() Pricing {
	rows := make([]TripLocationPrice, len(p.Rows))
	copy(rows, p.Rows)
	return TripPricing{Rows: rows}
}

// ClonePricing deep-copies p so callers can hand out entries without sharing row slices.
func ClonePricing(p Pricing) Pricing {
	if p == nil {
		return nil
	}
	return p.clone()
}

func rowField(i int) string {
	return FieldLocationPrices + "." + strconv.Itoa(i)
}

// SubActivityPriceEntry is one sub-activity's pricing inside a price list.
type SubActivityPriceEntry struct {
	ID            string
	SubActivityID string
	Pricing       Pricing
	CostRange     CostRange
}

// Method returns the entry's pricing method, or "" when no pricing is set.
func (e SubActivityPriceEntry) Method() PricingMethod {
	if e.Pricing == nil {
		return ""
	}
	return e.Pricing.Method()
}

// Validate checks the reference and the active pricing shape.
func (e SubActivityPriceEntry) Validate(policy PricingPolicy) error {
	verr := NewValidationError()
	if strings.TrimSpace(e.SubActivityID) == "" {
		verr.Add("subActivityId", "sub-activity is required")
	}
	if e.Pricing == nil {
		verr.Add("pricingMethod", "pricing method is required")
		return verr
	}
	verr.Merge("", e.Pricing.Validate(policy))
	return verr.OrNil()
}

// Clone returns a copy that shares no row slices with e.
func (e SubActivityPriceEntry) Clone() SubActivityPriceEntry {
	e.Pricing = ClonePricing(e.Pricing)
	return e
}

// WithCostRange returns e with CostRange recomputed from its pricing.
func (e SubActivityPriceEntry) WithCostRange() SubActivityPriceEntry {
	if e.Pricing != nil {
		e.CostRange = e.Pricing.CostRange()
	}
	return e
}

// LocationIDs returns every non-empty location reference of p in row order.
// Trip rows contribute origin then destination.
func LocationIDs(p Pricing) []string {
	var ids []string
	add := func(id string) {
		if id != "" {
			ids = append(ids, id)
		}
	}
	switch v := p.(type) {
	case LocationPricing:
		for _, row := range v.Rows {
			add(row.Location)
		}
	case TripPricing:
		for _, row := range v.Rows {
			add(row.FromLocation)
			add(row.ToLocation)
		}
	}
	return ids
}
