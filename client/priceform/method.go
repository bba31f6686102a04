package priceform

import (
	"context"
	"fmt"

	"freightadmin/models"

	"go.uber.org/zap"
)

// SelectPricingMethod switches the entry to m. The sub-activity is cleared,
// the previous shape is dropped and the new one is seeded. The eligible
// sub-activities are then fetched; if another selection, Close or Open happens
// before the fetch returns, ErrSuperseded is returned and nothing is applied.
// A failed fetch leaves the options empty and can be retried with RetryOptions.
func (f *Form) SelectPricingMethod(ctx context.Context, m models.PricingMethod) error {
	f.mu.Lock()
	if err := f.requireOpen(); err != nil {
		f.mu.Unlock()
		return err
	}
	pricing, err := models.NewPricing(m)
	if err != nil {
		f.mu.Unlock()
		return err
	}
	f.method = m
	f.subActivity = ""
	f.pricing = pricing
	f.costRange = models.CostRange{}
	f.fieldErrors = map[string]string{}
	f.notice = ""
	fetch := f.beginFetch(ctx)
	f.mu.Unlock()

	return f.runFetch(fetch)
}

// RetryOptions fetches the options of the current method again without
// touching the other fields. Edit mode uses it to load options after OpenEdit.
func (f *Form) RetryOptions(ctx context.Context) error {
	f.mu.Lock()
	if err := f.requireOpen(); err != nil {
		f.mu.Unlock()
		return err
	}
	if f.method == "" {
		f.mu.Unlock()
		return ErrNoMethod
	}
	fetch := f.beginFetch(ctx)
	f.mu.Unlock()

	return f.runFetch(fetch)
}

type pendingFetch struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	method     models.PricingMethod
}

// beginFetch supersedes any running fetch and marks the options as loading.
// Caller holds mu.
func (f *Form) beginFetch(ctx context.Context) pendingFetch {
	f.supersede()
	fetchCtx, cancel := context.WithCancel(ctx)
	f.cancelFetch = cancel
	f.options = nil
	f.optionsErr = nil
	f.loading = true
	return pendingFetch{ctx: fetchCtx, cancel: cancel, generation: f.generation, method: f.method}
}

// runFetch performs the lookup without holding mu and applies the result only
// if no newer fetch or reset happened.
func (f *Form) runFetch(p pendingFetch) error {
	options, err := f.lookup.SubActivitiesByPricingMethod(p.ctx, p.method)
	p.cancel()

	f.mu.Lock()
	defer f.mu.Unlock()
	if p.generation != f.generation {
		f.logger.Debug("Discarding superseded sub-activity fetch", zap.String("method", string(p.method)))
		return ErrSuperseded
	}
	f.cancelFetch = nil
	f.loading = false

	if err != nil {
		f.optionsErr = err
		f.notice = fmt.Sprintf("Could not load sub-activities: %v", err)
		f.logger.Warn("Sub-activity fetch failed", zap.String("method", string(p.method)), zap.Error(err))
		return fmt.Errorf("load sub-activities for %s: %w", p.method, err)
	}
	f.options = options
	for _, o := range options {
		f.subRefs[o.ID] = models.SubActivityRef{ID: o.ID, DisplayName: o.DisplayName}
	}
	return nil
}

// SelectSubActivity picks one of the fetched options and enables price input.
func (f *Form) SelectSubActivity(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.requireOpen(); err != nil {
		return err
	}
	if f.method == "" {
		return ErrNoMethod
	}
	for _, o := range f.options {
		if o.ID == id {
			f.subActivity = id
			delete(f.fieldErrors, "subActivityId")
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrUnknownOption, id)
}
