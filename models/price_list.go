package models

import (
	"fmt"
	"strings"
	"time"
)

// OwnerType says which parent a price list belongs to.
type OwnerType string

const (
	OwnerCustomer OwnerType = "customer"
	OwnerVendor   OwnerType = "vendor"
)

// ParseOwnerType accepts the singular form and the plural route segment.
func ParseOwnerType(s string) (OwnerType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer", "customers":
		return OwnerCustomer, nil
	case "vendor", "vendors":
		return OwnerVendor, nil
	}
	return "", fmt.Errorf("unknown owner type %q", s)
}

// Plural is the route segment used for the owner's collection.
func (o OwnerType) Plural() string {
	return string(o) + "s"
}

// Owner identifies the customer or vendor a price list belongs to.
type Owner struct {
	OwnerType OwnerType `bson:"ownerType" json:"ownerType"`
	OwnerID   string    `bson:"ownerId" json:"ownerId"`
}

// PriceListHeader is the editable part of a price list.
type PriceListHeader struct {
	Name          BilingualText `bson:"name" json:"name"`
	Description   BilingualText `bson:"description" json:"description"`
	EffectiveFrom time.Time     `bson:"effectiveFrom" json:"effectiveFrom"`
	EffectiveTo   time.Time     `bson:"effectiveTo" json:"effectiveTo"`
	IsActive      bool          `bson:"isActive" json:"isActive"`
}

// Validate checks the header fields. The date range is only checked when both ends are set.
func (h PriceListHeader) Validate() error {
	verr := NewValidationError()
	if h.Name.IsEmpty() {
		verr.Add("name", "name is required in at least one language")
	}
	if !h.EffectiveFrom.IsZero() && !h.EffectiveTo.IsZero() && h.EffectiveTo.Before(h.EffectiveFrom) {
		verr.Add("effectiveTo", "must not be before effectiveFrom")
	}
	return verr.OrNil()
}

// PriceList is the stored aggregate: a header plus its ordered entries.
type PriceList struct {
	Base            `bson:",inline"`
	Owner           `bson:",inline"`
	PriceListHeader `bson:",inline"`
	Entries         []SubActivityPriceEntry `bson:"entries" json:"entries"`
	CostRange       CostRange               `bson:"costRange" json:"costRange"`
}

// EntryIndex returns the position of entryID, or -1.
func (p *PriceList) EntryIndex(entryID string) int {
	for i, e := range p.Entries {
		if e.ID == entryID {
			return i
		}
	}
	return -1
}

// Recalculate refreshes every entry's cost range and the list-wide range.
func (p *PriceList) Recalculate() {
	var total CostRange
	for i := range p.Entries {
		p.Entries[i] = p.Entries[i].WithCostRange()
		total = total.Widen(p.Entries[i].CostRange, i == 0)
	}
	p.CostRange = total
}

// Lapsed reports whether the list's validity window ended before now.
func (p *PriceList) Lapsed(now time.Time) bool {
	return !p.EffectiveTo.IsZero() && p.EffectiveTo.Before(now)
}

// SubActivityRef is the embedded sub-activity object in server-shaped entries.
type SubActivityRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// LocationRef is the embedded location object in server-shaped entries.
type LocationRef struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
}

// LocationPriceView is a row with its location objects embedded. Exactly the
// references of PricingMethod are set.
type LocationPriceView struct {
	Location      *LocationRef  `json:"location,omitempty"`
	FromLocation  *LocationRef  `json:"fromLocation,omitempty"`
	ToLocation    *LocationRef  `json:"toLocation,omitempty"`
	Price         float64       `json:"price"`
	PricingMethod PricingMethod `json:"pricingMethod"`
}

// PriceEntryView is an entry as the gateway returns it.
type PriceEntryView struct {
	ID             string              `json:"id"`
	SubActivity    SubActivityRef      `json:"subActivity"`
	PricingMethod  PricingMethod       `json:"pricingMethod"`
	BasePrice      *float64            `json:"basePrice,omitempty"`
	LocationPrices []LocationPriceView `json:"locationPrices,omitempty"`
	CostRange      CostRange           `json:"costRange"`
}

// PriceListView is a price list with server-shaped entries.
type PriceListView struct {
	Base
	Owner
	PriceListHeader
	Entries   []PriceEntryView `json:"entries"`
	CostRange CostRange        `json:"costRange"`
}

// EntryIndex returns the position of entryID, or -1.
func (v *PriceListView) EntryIndex(entryID string) int {
	for i, e := range v.Entries {
		if e.ID == entryID {
			return i
		}
	}
	return -1
}

// Clone deep-copies the view so cached state is never shared with callers.
func (v PriceListView) Clone() PriceListView {
	entries := make([]PriceEntryView, len(v.Entries))
	for i, e := range v.Entries {
		entries[i] = e.Clone()
	}
	v.Entries = entries
	return v
}

// Clone deep-copies the entry view.
func (e PriceEntryView) Clone() PriceEntryView {
	if e.BasePrice != nil {
		p := *e.BasePrice
		e.BasePrice = &p
	}
	if e.LocationPrices != nil {
		rows := make([]LocationPriceView, len(e.LocationPrices))
		for i, r := range e.LocationPrices {
			rows[i] = r.clone()
		}
		e.LocationPrices = rows
	}
	return e
}

func (r LocationPriceView) clone() LocationPriceView {
	r.Location = cloneRef(r.Location)
	r.FromLocation = cloneRef(r.FromLocation)
	r.ToLocation = cloneRef(r.ToLocation)
	return r
}

func cloneRef(ref *LocationRef) *LocationRef {
	if ref == nil {
		return nil
	}
	c := *ref
	return &c
}
