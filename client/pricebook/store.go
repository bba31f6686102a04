// Package pricebook holds the locally cached price lists of one customer or
// vendor and keeps them in step with the server.
package pricebook

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"freightadmin/models"

	"go.uber.org/zap"
)

var (
	ErrUnknownPriceList = errors.New("price list is not loaded")
	ErrUnknownEntry     = errors.New("price entry is not in the price list")
	ErrEmptyPatch       = errors.New("entry patch changes nothing")
)

// Gateway is the slice of the REST client the store needs.
type Gateway interface {
	ListPriceLists(ctx context.Context, owner models.Owner) ([]models.PriceListView, error)
	AddSubActivityToPriceList(ctx context.Context, priceListID string, entry models.SubActivityPriceEntry) (*models.PriceListView, error)
	UpdateSubActivityInPriceList(ctx context.Context, priceListID, entryID string, entry models.SubActivityPriceEntry) (*models.PriceListView, error)
	DeleteSubActivityFromPriceList(ctx context.Context, priceListID, entryID string) error
}

// EntryPatch is a partial update. Pricing replaces the whole shape, so a
// merge can never mix fields of two methods.
type EntryPatch struct {
	SubActivityID *string
	Pricing       models.Pricing
}

// Store is the only surface that mutates the cached lists. Operations are
// serialised and gateway failures leave the cache untouched.
type Store struct {
	mu        sync.Mutex
	gw        Gateway
	owner     models.Owner
	dropEmpty bool
	logger    *zap.Logger
	lists     []models.PriceListView
}

type Option func(*Store)

// WithDropEmptyLists controls whether a list whose last entry is removed
// leaves the visible set.
func WithDropEmptyLists(drop bool) Option {
	return func(s *Store) { s.dropEmpty = drop }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// DropEmptyDefault is the default of WithDropEmptyLists for an owner type.
func DropEmptyDefault(t models.OwnerType) bool {
	return t == models.OwnerCustomer
}

func New(gw Gateway, owner models.Owner, opts ...Option) *Store {
	s := &Store{
		gw:        gw,
		owner:     owner,
		dropEmpty: DropEmptyDefault(owner.OwnerType),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Owner() models.Owner { return s.owner }

// Load replaces the cache with the owner's lists from the server.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	lists, err := s.gw.ListPriceLists(ctx, s.owner)
	if err != nil {
		return err
	}
	s.lists = make([]models.PriceListView, len(lists))
	for i := range lists {
		s.lists[i] = lists[i].Clone()
	}
	s.logger.Debug("Loaded price lists", zap.String("ownerId", s.owner.OwnerID), zap.Int("count", len(lists)))
	return nil
}

// PriceLists returns a copy of the visible lists.
func (s *Store) PriceLists() []models.PriceListView {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.PriceListView, len(s.lists))
	for i := range s.lists {
		out[i] = s.lists[i].Clone()
	}
	return out
}

func (s *Store) PriceList(id string) (models.PriceListView, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return models.PriceListView{}, false
	}
	return s.lists[i].Clone(), true
}

// AddEntry sends entry and, once the server confirms, replaces the list with
// the server's canonical copy.
func (s *Store) AddEntry(ctx context.Context, priceListID string, entry models.SubActivityPriceEntry) (models.PriceListView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index(priceListID) < 0 {
		return models.PriceListView{}, fmt.Errorf("%w: %s", ErrUnknownPriceList, priceListID)
	}
	entry.ID = ""
	canonical, err := s.gw.AddSubActivityToPriceList(ctx, priceListID, entry)
	if err != nil {
		return models.PriceListView{}, err
	}
	return s.replace(priceListID, canonical), nil
}

// RemoveEntry deletes the entry on the server, then locally.
func (s *Store) RemoveEntry(ctx context.Context, priceListID, entryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(priceListID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownPriceList, priceListID)
	}
	j := s.lists[i].EntryIndex(entryID)
	if j < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownEntry, entryID)
	}
	if err := s.gw.DeleteSubActivityFromPriceList(ctx, priceListID, entryID); err != nil {
		return err
	}

	list := &s.lists[i]
	list.Entries = append(list.Entries[:j], list.Entries[j+1:]...)
	if len(list.Entries) == 0 && s.dropEmpty {
		s.lists = append(s.lists[:i], s.lists[i+1:]...)
		s.logger.Debug("Dropped empty price list", zap.String("priceListId", priceListID))
	}
	return nil
}

// UpdateEntry merges patch into the cached entry, sends the full result and
// stores the server's canonical list.
func (s *Store) UpdateEntry(ctx context.Context, priceListID, entryID string, patch EntryPatch) (models.PriceListView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if patch.SubActivityID == nil && patch.Pricing == nil {
		return models.PriceListView{}, ErrEmptyPatch
	}
	i := s.index(priceListID)
	if i < 0 {
		return models.PriceListView{}, fmt.Errorf("%w: %s", ErrUnknownPriceList, priceListID)
	}
	j := s.lists[i].EntryIndex(entryID)
	if j < 0 {
		return models.PriceListView{}, fmt.Errorf("%w: %s", ErrUnknownEntry, entryID)
	}

	entry, err := models.EntryFromView(s.lists[i].Entries[j])
	if err != nil {
		return models.PriceListView{}, err
	}
	if patch.SubActivityID != nil {
		entry.SubActivityID = *patch.SubActivityID
	}
	if patch.Pricing != nil {
		entry.Pricing = models.ClonePricing(patch.Pricing)
	}

	canonical, err := s.gw.UpdateSubActivityInPriceList(ctx, priceListID, entryID, entry)
	if err != nil {
		return models.PriceListView{}, err
	}
	return s.replace(priceListID, canonical), nil
}

// ReplaceEntry resubmits a complete entry, as the edit form does.
func (s *Store) ReplaceEntry(ctx context.Context, priceListID, entryID string, entry models.SubActivityPriceEntry) (models.PriceListView, error) {
	sub := entry.SubActivityID
	return s.UpdateEntry(ctx, priceListID, entryID, EntryPatch{SubActivityID: &sub, Pricing: entry.Pricing})
}

func (s *Store) index(id string) int {
	for i := range s.lists {
		if s.lists[i].ID == id {
			return i
		}
	}
	return -1
}

// replace swaps in the canonical list. Caller holds mu.
func (s *Store) replace(priceListID string, canonical *models.PriceListView) models.PriceListView {
	stored := canonical.Clone()
	if i := s.index(priceListID); i >= 0 {
		s.lists[i] = stored
	} else {
		s.lists = append(s.lists, stored)
	}
	return stored.Clone()
}
