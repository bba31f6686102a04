package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"freightadmin/models"
)

func TestParseRow(t *testing.T) {
	cases := []struct {
		in     string
		method models.PricingMethod
		want   rowSpec
	}{
		{"L1=50", models.PerLocation, rowSpec{Location: "L1", Price: 50}},
		{" L1 > L2 = 80.5", models.PerTrip, rowSpec{From: "L1", To: "L2", Price: 80.5}},
	}
	for _, tc := range cases {
		got, err := parseRow(tc.in, tc.method)
		if err != nil {
			t.Fatalf("parseRow(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("parseRow(%q)=%+v, want %+v", tc.in, got, tc.want)
		}
	}

	for _, bad := range []struct {
		in     string
		method models.PricingMethod
	}{
		{"L1", models.PerLocation},
		{"L1=abc", models.PerLocation},
		{"L1>L2=5", models.PerLocation},
		{"L1=5", models.PerTrip},
		{"L1=5", models.PerItem},
	} {
		if _, err := parseRow(bad.in, bad.method); err == nil {
			t.Fatalf("parseRow(%q, %s) should fail", bad.in, bad.method)
		}
	}
}

func TestRunPrintsUsage(t *testing.T) {
	var out bytes.Buffer
	if err := run(context.Background(), nil, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "add-entry") {
		t.Fatalf("usage=%q", out.String())
	}
	if err := run(context.Background(), []string{"frobnicate"}, &out); err == nil {
		t.Fatalf("expected unknown command error")
	}
}

type fakeServer struct {
	mu      sync.Mutex
	posted  map[string]any
	methods []string
	deleted []string
}

func (s *fakeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/api/customers/C1/price-lists":
		_, _ = io.WriteString(w, `[{"id":"PL1","ownerType":"customer","ownerId":"C1","entries":[]}]`)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/api/sub-activities/by-method/"):
		s.methods = append(s.methods, strings.TrimPrefix(r.URL.Path, "/api/sub-activities/by-method/"))
		_, _ = io.WriteString(w, `{"success":true,"data":[{"id":"S3","displayName":"TR-01 - Trucking"}]}`)
	case r.Method == http.MethodPost && r.URL.Path == "/api/price-lists/PL1/sub-activities":
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &s.posted)
		_, _ = io.WriteString(w, `{"id":"PL1","entries":[{"id":"E1","subActivity":{"id":"S3","displayName":"TR-01 - Trucking"},"pricingMethod":"perTrip","locationPrices":[{"fromLocation":{"id":"L1","displayName":"L1"},"toLocation":{"id":"L2","displayName":"L2"},"price":80,"pricingMethod":"perTrip"}],"costRange":{"min":80,"max":80}}],"costRange":{"min":80,"max":80}}`)
	case r.Method == http.MethodGet && r.URL.Path == "/api/vendors/V1/price-lists":
		_, _ = io.WriteString(w, `[{"id":"PL9","ownerType":"vendor","ownerId":"V1","entries":[{"id":"E1","subActivity":{"id":"S1","displayName":"CL-01 - Clearance"},"pricingMethod":"perItem","basePrice":100,"costRange":{"min":100,"max":100}}],"costRange":{"min":100,"max":100}}]`)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/api/price-lists/PL9/sub-activities/"):
		s.deleted = append(s.deleted, strings.TrimPrefix(r.URL.Path, "/api/price-lists/PL9/sub-activities/"))
		_, _ = io.WriteString(w, `{"success":true,"message":"Entry removed"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"not found"}`)
	}
}

func TestAddEntrySubmitsRowsInOrder(t *testing.T) {
	fake := &fakeServer{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	var out bytes.Buffer
	err := run(context.Background(), []string{
		"add-entry", "--server", srv.URL, "--owner-id", "C1", "--list", "PL1",
		"--method", "perTrip", "--sub-activity", "S3",
		"--row", "L1>L2=80", "--row", "L2>L3=120",
	}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.methods) != 1 || fake.methods[0] != "perTrip" {
		t.Fatalf("lookups=%v", fake.methods)
	}
	if _, ok := fake.posted["basePrice"]; ok {
		t.Fatalf("perTrip payload carries basePrice: %v", fake.posted)
	}
	rows, _ := fake.posted["locationPrices"].([]any)
	if len(rows) != 2 {
		t.Fatalf("posted rows=%v", fake.posted["locationPrices"])
	}
	second := rows[1].(map[string]any)
	if second["fromLocation"] != "L2" || second["toLocation"] != "L3" || second["price"] != 120.0 {
		t.Fatalf("second row=%v", second)
	}
	if !strings.Contains(out.String(), `"E1"`) {
		t.Fatalf("output=%s", out.String())
	}
}

func TestAddEntryRequiresFlags(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"add-entry", "--server", "http://127.0.0.1:1", "--owner-id", "C1"}, &out)
	if err == nil || !strings.Contains(err.Error(), "--list is required") {
		t.Fatalf("expected missing --list error, got %v", err)
	}
}

func removeVendorEntry(t *testing.T, extra ...string) (*fakeServer, []models.PriceListView) {
	t.Helper()
	fake := &fakeServer{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	args := append([]string{
		"remove-entry", "--server", srv.URL, "--owner-type", "vendor", "--owner-id", "V1",
		"--list", "PL9", "--entry", "E1",
	}, extra...)
	var out bytes.Buffer
	if err := run(context.Background(), args, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	var lists []models.PriceListView
	if err := json.Unmarshal(out.Bytes(), &lists); err != nil {
		t.Fatalf("decode output %q: %v", out.String(), err)
	}
	return fake, lists
}

func TestRemoveEntryKeepsEmptyVendorListByDefault(t *testing.T) {
	fake, lists := removeVendorEntry(t)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	if len(fake.deleted) != 1 || fake.deleted[0] != "E1" {
		t.Fatalf("deleted=%v", fake.deleted)
	}
	if len(lists) != 1 || lists[0].ID != "PL9" || len(lists[0].Entries) != 0 {
		t.Fatalf("lists=%+v, want PL9 kept with no entries", lists)
	}
}

func TestRemoveEntryDropsVendorListWhenConfigured(t *testing.T) {
	t.Setenv("PRICECTL_VENDOR_DROP_EMPTY_PRICE_LISTS", "true")

	_, lists := removeVendorEntry(t)
	if len(lists) != 0 {
		t.Fatalf("lists=%+v, want emptied list dropped", lists)
	}
}

func TestDropEmptyFlagOverridesOwnerSetting(t *testing.T) {
	t.Setenv("PRICECTL_VENDOR_DROP_EMPTY_PRICE_LISTS", "true")

	_, lists := removeVendorEntry(t, "--drop-empty", "false")
	if len(lists) != 1 {
		t.Fatalf("lists=%+v, want list kept by --drop-empty=false", lists)
	}
}
