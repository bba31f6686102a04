package models

import (
	"errors"
	"reflect"
	"testing"
)

func price(p float64) *float64 { return &p }

func sampleViews() []PriceEntryView {
	l1 := &LocationRef{ID: "L1", DisplayName: "Jeddah Port, Jeddah / ميناء جدة"}
	l2 := &LocationRef{ID: "L2", DisplayName: "Riyadh Dry Port, Riyadh"}
	return []PriceEntryView{
		{
			ID:            "E1",
			SubActivity:   SubActivityRef{ID: "S1", DisplayName: "CC-01 - Customs clearance"},
			PricingMethod: PerItem,
			BasePrice:     price(100),
			CostRange:     CostRange{Min: 100, Max: 100},
		},
		{
			ID:            "E2",
			SubActivity:   SubActivityRef{ID: "S2", DisplayName: "Storage"},
			PricingMethod: PerLocation,
			LocationPrices: []LocationPriceView{
				{Location: l1, Price: 50, PricingMethod: PerLocation},
				{Location: l2, Price: 70, PricingMethod: PerLocation},
			},
			CostRange: CostRange{Min: 50, Max: 70},
		},
		{
			ID:            "E3",
			SubActivity:   SubActivityRef{ID: "S3", DisplayName: "Trucking"},
			PricingMethod: PerTrip,
			LocationPrices: []LocationPriceView{
				{FromLocation: l1, ToLocation: l2, Price: 900, PricingMethod: PerTrip},
			},
			CostRange: CostRange{Min: 900, Max: 900},
		},
	}
}

func TestEntryViewRoundTrip(t *testing.T) {
	for _, view := range sampleViews() {
		refs := map[string]LocationRef{}
		for _, r := range view.LocationPrices {
			for _, ref := range []*LocationRef{r.Location, r.FromLocation, r.ToLocation} {
				if ref != nil {
					refs[ref.ID] = *ref
				}
			}
		}

		entry, err := EntryFromView(view)
		if err != nil {
			t.Fatalf("%s: EntryFromView: %v", view.ID, err)
		}
		if entry.Method() != view.PricingMethod {
			t.Fatalf("%s: method=%s, want %s", view.ID, entry.Method(), view.PricingMethod)
		}
		back := EntryView(entry, view.SubActivity, func(id string) LocationRef { return refs[id] })
		if !reflect.DeepEqual(back, view) {
			t.Fatalf("%s: round trip=%+v, want %+v", view.ID, back, view)
		}
	}
}

func TestEntryFromViewFlattensReferences(t *testing.T) {
	entry, err := EntryFromView(sampleViews()[2])
	if err != nil {
		t.Fatalf("EntryFromView: %v", err)
	}
	rows := entry.Pricing.(TripPricing).Rows
	if rows[0].FromLocation != "L1" || rows[0].ToLocation != "L2" || rows[0].Price != 900 {
		t.Fatalf("rows=%+v", rows)
	}
}

func TestEntryFromViewRejectsMixedShapes(t *testing.T) {
	view := sampleViews()[1]
	view.BasePrice = price(1)
	if _, err := EntryFromView(view); !errors.Is(err, ErrCrossShapePayload) {
		t.Fatalf("err=%v, want ErrCrossShapePayload", err)
	}

	item := sampleViews()[0]
	item.BasePrice = nil
	if _, err := EntryFromView(item); !errors.Is(err, ErrMissingPricing) {
		t.Fatalf("err=%v, want ErrMissingPricing", err)
	}
}

func TestEntryViewLeavesEmptyReferencesNil(t *testing.T) {
	entry := SubActivityPriceEntry{SubActivityID: "S2", Pricing: LocationPricing{Rows: []LocationPrice{{}}}}
	view := EntryView(entry, SubActivityRef{ID: "S2"}, nil)
	if view.LocationPrices[0].Location != nil {
		t.Fatalf("empty location should stay nil, got %+v", view.LocationPrices[0].Location)
	}
}
