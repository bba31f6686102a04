package priceform

import (
	"context"
	"errors"

	"freightadmin/models"

	"go.uber.org/zap"
)

// Payload assembles the entry the form would submit. It carries only the
// active method's shape. Validation failures come back as *models.ValidationError.
func (f *Form) Payload() (models.SubActivityPriceEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireOpen(); err != nil {
		return models.SubActivityPriceEntry{}, err
	}
	return f.payload()
}

func (f *Form) payload() (models.SubActivityPriceEntry, error) {
	entry := models.SubActivityPriceEntry{
		ID:            f.entryID,
		SubActivityID: f.subActivity,
		Pricing:       models.ClonePricing(f.pricing),
	}
	if err := entry.Validate(f.policy); err != nil {
		return entry, err
	}
	return entry, nil
}

// Submit validates the form and hands the entry to the target. On success the
// form closes and the canonical list is returned. On failure every field is
// kept, field messages and the notice are set, and the error is returned.
func (f *Form) Submit(ctx context.Context) (models.PriceListView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireOpen(); err != nil {
		return models.PriceListView{}, err
	}
	f.fieldErrors = map[string]string{}
	f.notice = ""

	entry, err := f.payload()
	if err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			for k, v := range verr.Fields {
				f.fieldErrors[k] = v
			}
			f.notice = verr.Summary()
		} else {
			f.notice = err.Error()
		}
		return models.PriceListView{}, err
	}

	var view models.PriceListView
	if f.mode == ModeEdit {
		view, err = f.target.ReplaceEntry(ctx, f.priceListID, f.entryID, entry)
	} else {
		entry.ID = ""
		view, err = f.target.AddEntry(ctx, f.priceListID, entry)
	}
	if err != nil {
		f.notice = err.Error()
		f.logger.Warn("Price entry submit rejected",
			zap.String("mode", f.mode.String()), zap.String("priceListId", f.priceListID), zap.Error(err))
		return models.PriceListView{}, err
	}

	f.reset()
	return view, nil
}

// ToView rebuilds the server shape of the current entry from the flat fields
// and the remembered sub-activity and location objects.
func (f *Form) ToView() (models.PriceEntryView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireOpen(); err != nil {
		return models.PriceEntryView{}, err
	}
	if f.pricing == nil {
		return models.PriceEntryView{}, ErrNoMethod
	}
	entry := models.SubActivityPriceEntry{
		ID:            f.entryID,
		SubActivityID: f.subActivity,
		Pricing:       f.pricing,
		CostRange:     f.costRange,
	}
	sub, ok := f.subRefs[f.subActivity]
	if !ok {
		sub = models.SubActivityRef{ID: f.subActivity, DisplayName: f.subActivity}
	}
	return models.EntryView(entry, sub, func(id string) models.LocationRef {
		if ref, ok := f.locations[id]; ok {
			return ref
		}
		return models.LocationRef{ID: id, DisplayName: id}
	}), nil
}
