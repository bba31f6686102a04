package main

import (
	"context"
	"errors"
	"fmt"

	"freightadmin/client/gateway"
	"freightadmin/client/priceform"
	"freightadmin/models"
)

func cmdLists(ctx context.Context, a *app) error {
	store, err := a.store(ctx)
	if err != nil {
		return err
	}
	return a.print(store.PriceLists())
}

func cmdLocations(ctx context.Context, a *app) error {
	filter := models.LocationFilter{Search: a.v.GetString("search")}
	page, err := a.client.SearchLocations(ctx, a.v.GetInt("page"), a.v.GetInt("limit"), filter, a.v.GetString("query"))
	if err != nil {
		return err
	}
	return a.print(page)
}

func cmdAddEntry(ctx context.Context, a *app) error {
	if err := a.required("list", "method", "sub-activity"); err != nil {
		return err
	}
	store, err := a.store(ctx)
	if err != nil {
		return err
	}
	method, err := models.ParsePricingMethod(a.v.GetString("method"))
	if err != nil {
		return err
	}

	form := a.form(store)
	form.OpenAdd(a.v.GetString("list"))
	if err := form.SelectPricingMethod(ctx, method); err != nil {
		return err
	}
	if err := a.fill(form, method); err != nil {
		return err
	}
	return a.submit(ctx, form)
}

func cmdEditEntry(ctx context.Context, a *app) error {
	if err := a.required("list", "entry"); err != nil {
		return err
	}
	store, err := a.store(ctx)
	if err != nil {
		return err
	}
	listID, entryID := a.v.GetString("list"), a.v.GetString("entry")
	list, ok := store.PriceList(listID)
	if !ok {
		return fmt.Errorf("price list %s not found for this owner", listID)
	}
	i := list.EntryIndex(entryID)
	if i < 0 {
		return fmt.Errorf("entry %s not found in price list %s", entryID, listID)
	}

	form := a.form(store)
	if err := form.OpenEdit(listID, list.Entries[i]); err != nil {
		return err
	}
	method := list.Entries[i].PricingMethod
	if raw := a.v.GetString("method"); raw != "" && raw != string(method) {
		if method, err = models.ParsePricingMethod(raw); err != nil {
			return err
		}
		if err := form.SelectPricingMethod(ctx, method); err != nil {
			return err
		}
	} else if err := form.RetryOptions(ctx); err != nil {
		return err
	}
	if err := a.fill(form, method); err != nil {
		return err
	}
	return a.submit(ctx, form)
}

func cmdRemoveEntry(ctx context.Context, a *app) error {
	if err := a.required("list", "entry"); err != nil {
		return err
	}
	store, err := a.store(ctx)
	if err != nil {
		return err
	}
	if err := store.RemoveEntry(ctx, a.v.GetString("list"), a.v.GetString("entry")); err != nil {
		return err
	}
	return a.print(store.PriceLists())
}

// fill applies --sub-activity, --base-price and --row to an open form.
func (a *app) fill(form *priceform.Form, method models.PricingMethod) error {
	if sub := a.v.GetString("sub-activity"); sub != "" {
		if err := form.SelectSubActivity(sub); err != nil {
			return err
		}
	}

	if method == models.PerItem {
		if price := a.v.GetFloat64("base-price"); price >= 0 {
			return form.SetBasePrice(price)
		}
		return nil
	}

	specs := a.v.GetStringSlice("row")
	if len(specs) == 0 {
		return nil
	}
	rows := make([]rowSpec, len(specs))
	for i, s := range specs {
		r, err := parseRow(s, method)
		if err != nil {
			return err
		}
		rows[i] = r
	}
	return applyRows(form, rows)
}

func (a *app) submit(ctx context.Context, form *priceform.Form) error {
	view, err := form.Submit(ctx)
	if err != nil {
		var apiErr *gateway.APIError
		if errors.As(err, &apiErr) {
			return fmt.Errorf("server rejected the entry: %s", form.Notice())
		}
		return fmt.Errorf("%s: %w", form.Notice(), err)
	}
	return a.print(view)
}
