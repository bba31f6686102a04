package models

import (
	"encoding/json"
	"errors"
	"reflect"
	"sort"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func encodeToMap(t *testing.T, e SubActivityPriceEntry) map[string]any {
	t.Helper()

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal entry: %v", err)
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal into map: %v", err)
	}
	return out
}

func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func TestItemPayloadCarriesOnlyBasePrice(t *testing.T) {
	got := encodeToMap(t, SubActivityPriceEntry{SubActivityID: "S1", Pricing: ItemPricing{BasePrice: 100}})

	want := map[string]any{"pricingMethod": "perItem", "subActivityId": "S1", "basePrice": 100.0}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("payload=%v, want %v", got, want)
	}
	if _, ok := got["locationPrices"]; ok {
		t.Fatalf("perItem payload must not carry locationPrices: %v", got)
	}
}

func TestLocationPayloadTagsRowsAndOmitsBasePrice(t *testing.T) {
	got := encodeToMap(t, SubActivityPriceEntry{
		SubActivityID: "S1",
		Pricing:       LocationPricing{Rows: []LocationPrice{{Location: "L1", Price: 50}}},
	})

	if _, ok := got["basePrice"]; ok {
		t.Fatalf("perLocation payload must not carry basePrice: %v", got)
	}
	if got["pricingMethod"] != "perLocation" {
		t.Fatalf("pricingMethod=%v, want perLocation", got["pricingMethod"])
	}
	rows, ok := got["locationPrices"].([]any)
	if !ok || len(rows) != 1 {
		t.Fatalf("locationPrices=%v, want one row", got["locationPrices"])
	}
	wantRow := map[string]any{"location": "L1", "price": 50.0, "pricingMethod": "perLocation"}
	if !reflect.DeepEqual(rows[0], wantRow) {
		t.Fatalf("row=%v, want %v", rows[0], wantRow)
	}
}

func TestTripPayloadPreservesRowOrder(t *testing.T) {
	got := encodeToMap(t, SubActivityPriceEntry{
		SubActivityID: "S2",
		Pricing: TripPricing{Rows: []TripLocationPrice{
			{FromLocation: "L1", ToLocation: "L2", Price: 80},
			{FromLocation: "L2", ToLocation: "L3", Price: 120},
		}},
	})

	rows := got["locationPrices"].([]any)
	if len(rows) != 2 {
		t.Fatalf("len(rows)=%d, want 2", len(rows))
	}
	want := []map[string]any{
		{"fromLocation": "L1", "toLocation": "L2", "price": 80.0, "pricingMethod": "perTrip"},
		{"fromLocation": "L2", "toLocation": "L3", "price": 120.0, "pricingMethod": "perTrip"},
	}
	for i := range want {
		if !reflect.DeepEqual(rows[i], any(want[i])) {
			t.Fatalf("row %d=%v, want %v", i, rows[i], want[i])
		}
	}
	if keys := keysOf(got); !reflect.DeepEqual(keys, []string{"locationPrices", "pricingMethod", "subActivityId"}) {
		t.Fatalf("keys=%v", keys)
	}
}

func TestDecodeRejectsCrossShapePayloads(t *testing.T) {
	cases := map[string]string{
		"item with rows":         `{"subActivityId":"S1","pricingMethod":"perItem","basePrice":5,"locationPrices":[{"location":"L1","price":1}]}`,
		"location with base":     `{"subActivityId":"S1","pricingMethod":"perLocation","basePrice":5,"locationPrices":[{"location":"L1","price":1}]}`,
		"row tagged as trip":     `{"subActivityId":"S1","pricingMethod":"perLocation","locationPrices":[{"location":"L1","price":1,"pricingMethod":"perTrip"}]}`,
		"trip row with single":   `{"subActivityId":"S1","pricingMethod":"perTrip","locationPrices":[{"location":"L1","fromLocation":"L1","toLocation":"L2","price":1}]}`,
		"location row with trip": `{"subActivityId":"S1","pricingMethod":"perLocation","locationPrices":[{"location":"L1","toLocation":"L2","price":1}]}`,
	}
	for name, payload := range cases {
		var e SubActivityPriceEntry
		err := json.Unmarshal([]byte(payload), &e)
		if !errors.Is(err, ErrCrossShapePayload) {
			t.Fatalf("%s: err=%v, want ErrCrossShapePayload", name, err)
		}
	}
}

func TestDecodeRejectsUnknownFieldsAndMethods(t *testing.T) {
	var e SubActivityPriceEntry
	if err := json.Unmarshal([]byte(`{"subActivityId":"S1","pricingMethod":"perItem","basePrice":1,"discount":3}`), &e); err == nil {
		t.Fatalf("expected unknown field to be rejected")
	}
	err := json.Unmarshal([]byte(`{"subActivityId":"S1","pricingMethod":"perKg","basePrice":1}`), &e)
	if !errors.Is(err, ErrInvalidPricingMethod) {
		t.Fatalf("err=%v, want ErrInvalidPricingMethod", err)
	}
}

func TestDecodeItemWithoutBasePriceIsValidationError(t *testing.T) {
	var e SubActivityPriceEntry
	err := json.Unmarshal([]byte(`{"subActivityId":"S1","pricingMethod":"perItem"}`), &e)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err=%v, want *ValidationError", err)
	}
	if _, ok := verr.Fields[FieldBasePrice]; !ok {
		t.Fatalf("fields=%v, want basePrice", verr.Fields)
	}
}

func TestDecodeAcceptsRoundTrip(t *testing.T) {
	in := SubActivityPriceEntry{
		ID:            "E1",
		SubActivityID: "S2",
		Pricing: TripPricing{Rows: []TripLocationPrice{
			{FromLocation: "L1", ToLocation: "L2", Price: 80, PricingMethod: PerTrip},
		}},
		CostRange: CostRange{Min: 80, Max: 80},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var out SubActivityPriceEntry
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(out, in) {
		t.Fatalf("round trip=%+v, want %+v", out, in)
	}
}

func TestNewPricingSeedsExactlyOneShape(t *testing.T) {
	item, _ := NewPricing(PerItem)
	if item != (ItemPricing{}) {
		t.Fatalf("perItem seed=%+v", item)
	}
	loc, _ := NewPricing(PerLocation)
	if rows := loc.(LocationPricing).Rows; len(rows) != 1 || rows[0] != (LocationPrice{PricingMethod: PerLocation}) {
		t.Fatalf("perLocation seed=%+v", rows)
	}
	trip, _ := NewPricing(PerTrip)
	if rows := trip.(TripPricing).Rows; len(rows) != 1 || rows[0] != (TripLocationPrice{PricingMethod: PerTrip}) {
		t.Fatalf("perTrip seed=%+v", rows)
	}
	if _, err := NewPricing("perKg"); !errors.Is(err, ErrInvalidPricingMethod) {
		t.Fatalf("err=%v, want ErrInvalidPricingMethod", err)
	}
}

func TestFieldsForIsExclusive(t *testing.T) {
	for _, m := range PricingMethods {
		if fields := FieldsFor(m); len(fields) != 1 {
			t.Fatalf("FieldsFor(%s)=%v, want exactly one field", m, fields)
		}
	}
	if FieldsFor(PerItem)[0] == FieldsFor(PerLocation)[0] {
		t.Fatalf("perItem and perLocation share a field")
	}
}

func TestValidateRowsAndPolicy(t *testing.T) {
	entry := SubActivityPriceEntry{
		SubActivityID: "S1",
		Pricing: LocationPricing{Rows: []LocationPrice{
			{Location: "L1", Price: 10},
			{Location: "", Price: -1},
		}},
	}
	err := entry.Validate(DefaultPricingPolicy)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err=%v, want *ValidationError", err)
	}
	for _, field := range []string{"locationPrices.1.location", "locationPrices.1.price"} {
		if _, ok := verr.Fields[field]; !ok {
			t.Fatalf("fields=%v, missing %s", verr.Fields, field)
		}
	}

	trip := SubActivityPriceEntry{
		SubActivityID: "S1",
		Pricing:       TripPricing{Rows: []TripLocationPrice{{FromLocation: "L1", ToLocation: "L1", Price: 5}}},
	}
	if err := trip.Validate(DefaultPricingPolicy); err != nil {
		t.Fatalf("same-location trip should pass under the default policy: %v", err)
	}
	err = trip.Validate(PricingPolicy{AllowSameLocationTrips: false})
	if !errors.As(err, &verr) || verr.Fields["locationPrices.0.toLocation"] == "" {
		t.Fatalf("err=%v, want toLocation message", err)
	}

	missing := SubActivityPriceEntry{SubActivityID: "S1"}
	if err := missing.Validate(DefaultPricingPolicy); err == nil {
		t.Fatalf("entry without pricing should fail")
	}
}

func TestCostRanges(t *testing.T) {
	p := LocationPricing{Rows: []LocationPrice{{Location: "A", Price: 30}, {Location: "B", Price: 10}, {Location: "C", Price: 50}}}
	if got := p.CostRange(); got != (CostRange{Min: 10, Max: 50}) {
		t.Fatalf("CostRange=%+v, want {10 50}", got)
	}

	list := PriceList{Entries: []SubActivityPriceEntry{
		{SubActivityID: "S1", Pricing: ItemPricing{BasePrice: 100}},
		{SubActivityID: "S2", Pricing: p},
	}}
	list.Recalculate()
	if list.CostRange != (CostRange{Min: 10, Max: 100}) {
		t.Fatalf("list CostRange=%+v, want {10 100}", list.CostRange)
	}
	if list.Entries[0].CostRange != (CostRange{Min: 100, Max: 100}) {
		t.Fatalf("entry CostRange=%+v", list.Entries[0].CostRange)
	}
}

func TestClonePricingDoesNotShareRows(t *testing.T) {
	orig := LocationPricing{Rows: []LocationPrice{{Location: "L1", Price: 1}}}
	cp := ClonePricing(orig).(LocationPricing)
	cp.Rows[0].Price = 99
	if orig.Rows[0].Price != 1 {
		t.Fatalf("clone shares rows with original")
	}
}

func TestLocationIDsInRowOrder(t *testing.T) {
	got := LocationIDs(TripPricing{Rows: []TripLocationPrice{
		{FromLocation: "A", ToLocation: "B"},
		{FromLocation: "", ToLocation: "C"},
	}})
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("LocationIDs=%v, want %v", got, want)
	}
	if ids := LocationIDs(ItemPricing{BasePrice: 3}); len(ids) != 0 {
		t.Fatalf("perItem has no locations, got %v", ids)
	}
}

func TestPriceListBSONRoundTrip(t *testing.T) {
	in := PriceList{
		Base:  Base{ID: "PL1"},
		Owner: Owner{OwnerType: OwnerCustomer, OwnerID: "C1"},
		PriceListHeader: PriceListHeader{
			Name:     BilingualText{En: "Standard", Ar: "قياسي"},
			IsActive: true,
		},
		Entries: []SubActivityPriceEntry{
			{ID: "E1", SubActivityID: "S1", Pricing: ItemPricing{BasePrice: 100}},
			{ID: "E2", SubActivityID: "S2", Pricing: LocationPricing{Rows: []LocationPrice{{Location: "L1", Price: 50, PricingMethod: PerLocation}}}},
			{ID: "E3", SubActivityID: "S3", Pricing: TripPricing{Rows: []TripLocationPrice{{FromLocation: "L1", ToLocation: "L2", Price: 80, PricingMethod: PerTrip}}}},
		},
	}
	in.Recalculate()

	data, err := bson.Marshal(in)
	if err != nil {
		t.Fatalf("bson marshal: %v", err)
	}
	var out PriceList
	if err := bson.Unmarshal(data, &out); err != nil {
		t.Fatalf("bson unmarshal: %v", err)
	}

	if out.ID != "PL1" || out.OwnerType != OwnerCustomer || out.OwnerID != "C1" || out.Name.Ar != "قياسي" {
		t.Fatalf("header lost in round trip: %+v", out)
	}
	if !reflect.DeepEqual(out.Entries, in.Entries) {
		t.Fatalf("entries=%+v, want %+v", out.Entries, in.Entries)
	}
	if out.CostRange != in.CostRange {
		t.Fatalf("costRange=%+v, want %+v", out.CostRange, in.CostRange)
	}
}

func TestBSONEntryKeepsOnlyActiveShape(t *testing.T) {
	data, err := bson.Marshal(SubActivityPriceEntry{SubActivityID: "S1", Pricing: ItemPricing{BasePrice: 7}})
	if err != nil {
		t.Fatalf("bson marshal: %v", err)
	}
	var raw bson.M
	if err := bson.Unmarshal(data, &raw); err != nil {
		t.Fatalf("bson unmarshal: %v", err)
	}
	if _, ok := raw["locationPrices"]; ok {
		t.Fatalf("stored perItem entry carries locationPrices: %v", raw)
	}
	if raw["basePrice"] != 7.0 {
		t.Fatalf("basePrice=%v, want 7", raw["basePrice"])
	}
}
