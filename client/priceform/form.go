// Package priceform is the state behind the add/edit sub-activity price
// dialog. One Form serves customer and vendor lists alike; where the entry is
// sent is decided by the Target it is built with.
package priceform

import (
	"context"
	"sync"

	"freightadmin/models"

	"go.uber.org/zap"
)

// SubActivityLookup lists the sub-activities eligible for a pricing method.
type SubActivityLookup interface {
	SubActivitiesByPricingMethod(ctx context.Context, method models.PricingMethod) ([]models.SubActivityOption, error)
}

// Target receives submitted entries and answers with the canonical list.
type Target interface {
	AddEntry(ctx context.Context, priceListID string, entry models.SubActivityPriceEntry) (models.PriceListView, error)
	ReplaceEntry(ctx context.Context, priceListID, entryID string, entry models.SubActivityPriceEntry) (models.PriceListView, error)
}

type Mode int

const (
	ModeClosed Mode = iota
	ModeAdd
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeAdd:
		return "add"
	case ModeEdit:
		return "edit"
	}
	return "closed"
}

// Form is safe for concurrent use. Every mutation holds mu; the sub-activity
// fetch runs without it and is discarded if another selection happened meanwhile.
type Form struct {
	mu     sync.Mutex
	lookup SubActivityLookup
	target Target
	policy models.PricingPolicy
	logger *zap.Logger

	mode        Mode
	priceListID string
	entryID     string
	method      models.PricingMethod
	subActivity string
	pricing     models.Pricing
	costRange   models.CostRange

	options     []models.SubActivityOption
	loading     bool
	optionsErr  error
	generation  uint64
	cancelFetch context.CancelFunc

	// objects behind the flat ids, kept so the server shape can be rebuilt
	subRefs   map[string]models.SubActivityRef
	locations map[string]models.LocationRef

	fieldErrors map[string]string
	notice      string
}

type Option func(*Form)

func WithPolicy(p models.PricingPolicy) Option {
	return func(f *Form) { f.policy = p }
}

func WithLogger(l *zap.Logger) Option {
	return func(f *Form) { f.logger = l }
}

func New(lookup SubActivityLookup, target Target, opts ...Option) *Form {
	f := &Form{
		lookup: lookup,
		target: target,
		policy: models.DefaultPricingPolicy,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	f.reset()
	return f
}

// OpenAdd starts a blank entry for priceListID.
func (f *Form) OpenAdd(priceListID string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.reset()
	f.mode = ModeAdd
	f.priceListID = priceListID
}

// OpenEdit loads a server-shaped entry into the flat form fields. Call
// RetryOptions afterwards to fetch the method's sub-activities.
func (f *Form) OpenEdit(priceListID string, view models.PriceEntryView) error {
	entry, err := models.EntryFromView(view)
	if err != nil {
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.reset()
	f.mode = ModeEdit
	f.priceListID = priceListID
	f.entryID = entry.ID
	f.method = entry.Method()
	f.subActivity = entry.SubActivityID
	f.pricing = models.ClonePricing(entry.Pricing)
	f.costRange = entry.CostRange
	f.subRefs[view.SubActivity.ID] = view.SubActivity
	for _, row := range view.LocationPrices {
		for _, ref := range []*models.LocationRef{row.Location, row.FromLocation, row.ToLocation} {
			if ref != nil {
				f.locations[ref.ID] = *ref
			}
		}
	}
	return nil
}

// Close discards all transient state.
func (f *Form) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reset()
}

// reset returns the form to closed and invalidates any in-flight fetch.
// Caller holds mu.
func (f *Form) reset() {
	f.supersede()
	f.mode = ModeClosed
	f.priceListID = ""
	f.entryID = ""
	f.method = ""
	f.subActivity = ""
	f.pricing = nil
	f.costRange = models.CostRange{}
	f.options = nil
	f.loading = false
	f.optionsErr = nil
	f.subRefs = map[string]models.SubActivityRef{}
	f.locations = map[string]models.LocationRef{}
	f.fieldErrors = map[string]string{}
	f.notice = ""
}

// supersede cancels the running fetch and makes its result stale. Caller holds mu.
func (f *Form) supersede() {
	f.generation++
	if f.cancelFetch != nil {
		f.cancelFetch()
		f.cancelFetch = nil
	}
}

// Notice is the single-line message for the notification banner, if any.
func (f *Form) Notice() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.notice
}

// DismissNotice clears the banner message.
func (f *Form) DismissNotice() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.notice = ""
}

func (f *Form) requireOpen() error {
	if f.mode == ModeClosed {
		return ErrClosed
	}
	return nil
}
