package main

import (
	"fmt"
	"strconv"
	"strings"

	"freightadmin/client/priceform"
	"freightadmin/models"
)

// rowSpec is one --row value: "LOC=PRICE" or "FROM>TO=PRICE".
type rowSpec struct {
	Location string
	From, To string
	Price    float64
}

func parseRow(s string, method models.PricingMethod) (rowSpec, error) {
	refs, rawPrice, ok := strings.Cut(s, "=")
	if !ok {
		return rowSpec{}, fmt.Errorf("row %q: missing =PRICE", s)
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(rawPrice), 64)
	if err != nil {
		return rowSpec{}, fmt.Errorf("row %q: bad price: %w", s, err)
	}

	switch method {
	case models.PerLocation:
		if strings.Contains(refs, ">") {
			return rowSpec{}, fmt.Errorf("row %q: perLocation rows take a single location", s)
		}
		return rowSpec{Location: strings.TrimSpace(refs), Price: price}, nil
	case models.PerTrip:
		from, to, ok := strings.Cut(refs, ">")
		if !ok {
			return rowSpec{}, fmt.Errorf("row %q: perTrip rows need FROM>TO", s)
		}
		return rowSpec{From: strings.TrimSpace(from), To: strings.TrimSpace(to), Price: price}, nil
	}
	return rowSpec{}, fmt.Errorf("rows do not apply to %s", method)
}

// applyRows makes the form hold exactly rows, in order.
func applyRows(form *priceform.Form, rows []rowSpec) error {
	snap := form.Snapshot()
	have := len(snap.LocationRows) + len(snap.TripRows)
	for ; have < len(rows); have++ {
		if err := form.AddRow(); err != nil {
			return err
		}
	}
	for ; have > len(rows); have-- {
		if err := form.RemoveRow(have - 1); err != nil {
			return err
		}
	}

	for i, r := range rows {
		var err error
		if snap.PricingMethod == models.PerTrip {
			err = form.SetRowTrip(i, models.LocationRef{ID: r.From}, models.LocationRef{ID: r.To})
		} else {
			err = form.SetRowLocation(i, models.LocationRef{ID: r.Location})
		}
		if err != nil {
			return err
		}
		if err := form.SetRowPrice(i, r.Price); err != nil {
			return err
		}
	}
	return nil
}
