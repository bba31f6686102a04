package pricelist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freightadmin/database"
	"freightadmin/models"
	"freightadmin/utils"

	"go.uber.org/zap"
)

func (s *DefaultPriceListService) ListByOwner(ctx context.Context, owner models.Owner) ([]models.PriceListView, error) {
	lists, err := s.Repo.ListByOwner(ctx, owner)
	if err != nil {
		utils.GetLogger().Error("Failed to list price lists",
			zap.String("ownerType", string(owner.OwnerType)), zap.String("ownerId", owner.OwnerID), zap.Error(err))
		return nil, err
	}
	return s.views(ctx, lists)
}

func (s *DefaultPriceListService) Get(ctx context.Context, id string) (*models.PriceListView, error) {
	list, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, list)
}

func (s *DefaultPriceListService) Create(ctx context.Context, owner models.Owner, draft Draft) (*models.PriceListView, error) {
	if s.Owners != nil {
		ok, err := s.Owners.Exists(ctx, owner)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s %s", ErrUnknownOwner, owner.OwnerType, owner.OwnerID)
		}
	}
	if err := draft.PriceListHeader.Validate(); err != nil {
		return nil, err
	}

	list := &models.PriceList{Owner: owner, PriceListHeader: draft.PriceListHeader}
	for i, entry := range draft.Entries {
		entry.ID = ""
		if err := s.checkEntry(ctx, entry); err != nil {
			return nil, prefixValidation(fmt.Sprintf("entries.%d", i), err)
		}
		list.Entries = append(list.Entries, entry)
	}

	if err := s.Repo.Create(ctx, list); err != nil {
		utils.GetLogger().Error("Failed to create price list", zap.Error(err))
		return nil, err
	}
	return s.view(ctx, list)
}

// UpdateHeader replaces the editable header and leaves the entries untouched.
func (s *DefaultPriceListService) UpdateHeader(ctx context.Context, id string, header models.PriceListHeader) (*models.PriceListView, error) {
	if err := header.Validate(); err != nil {
		return nil, err
	}
	list, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	list.PriceListHeader = header
	if err := s.save(ctx, list); err != nil {
		return nil, err
	}
	return s.view(ctx, list)
}

func (s *DefaultPriceListService) Delete(ctx context.Context, id string) error {
	err := s.Repo.Delete(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrPriceListNotFound, id)
	}
	return err
}

// AddEntry appends entry with a fresh id and returns the recalculated list.
func (s *DefaultPriceListService) AddEntry(ctx context.Context, id string, entry models.SubActivityPriceEntry) (*models.PriceListView, error) {
	entry.ID = ""
	if err := s.checkEntry(ctx, entry); err != nil {
		return nil, err
	}
	list, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	list.Entries = append(list.Entries, entry)
	if err := s.save(ctx, list); err != nil {
		return nil, err
	}
	utils.GetLogger().Info("Added price entry",
		zap.String("priceListId", id), zap.String("subActivityId", entry.SubActivityID),
		zap.String("pricingMethod", string(entry.Method())))
	return s.view(ctx, list)
}

// UpdateEntry replaces the whole entry, including its pricing shape.
func (s *DefaultPriceListService) UpdateEntry(ctx context.Context, id, entryID string, entry models.SubActivityPriceEntry) (*models.PriceListView, error) {
	if err := s.checkEntry(ctx, entry); err != nil {
		return nil, err
	}
	list, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	idx := list.EntryIndex(entryID)
	if idx < 0 {
		return nil, fmt.Errorf("%w: %s in %s", ErrEntryNotFound, entryID, id)
	}
	entry.ID = entryID
	list.Entries[idx] = entry
	if err := s.save(ctx, list); err != nil {
		return nil, err
	}
	return s.view(ctx, list)
}

func (s *DefaultPriceListService) RemoveEntry(ctx context.Context, id, entryID string) error {
	list, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	idx := list.EntryIndex(entryID)
	if idx < 0 {
		return fmt.Errorf("%w: %s in %s", ErrEntryNotFound, entryID, id)
	}
	list.Entries = append(list.Entries[:idx], list.Entries[idx+1:]...)
	return s.save(ctx, list)
}

func (s *DefaultPriceListService) ExpireLapsed(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.Repo.DeactivateLapsed(ctx, now)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		utils.GetLogger().Info("Deactivated lapsed price lists", zap.Int64("count", n))
	}
	return n, nil
}

func (s *DefaultPriceListService) load(ctx context.Context, id string) (*models.PriceList, error) {
	list, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPriceListNotFound, id)
	}
	return list, err
}

func (s *DefaultPriceListService) save(ctx context.Context, list *models.PriceList) error {
	err := s.Repo.Replace(ctx, list)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrPriceListNotFound, list.ID)
	}
	return err
}

// checkEntry validates the shape, then the sub-activity and location references.
func (s *DefaultPriceListService) checkEntry(ctx context.Context, entry models.SubActivityPriceEntry) error {
	if err := entry.Validate(s.Policy); err != nil {
		return err
	}

	sub, err := s.SubActivities.GetByID(ctx, entry.SubActivityID)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrUnknownSubActivity, entry.SubActivityID)
	}
	if err != nil {
		return err
	}
	if !sub.IsActive || !sub.SupportsMethod(entry.Method()) {
		return fmt.Errorf("%w: %s with %s", ErrSubActivityNotEligible, entry.SubActivityID, entry.Method())
	}

	ids := models.LocationIDs(entry.Pricing)
	if len(ids) == 0 {
		return nil
	}
	found, err := s.Locations.Resolve(ctx, ids)
	if err != nil {
		return err
	}
	for _, locID := range ids {
		if _, ok := found[locID]; !ok {
			return fmt.Errorf("%w: %s", ErrUnknownLocation, locID)
		}
	}
	return nil
}

func prefixValidation(prefix string, err error) error {
	var verr *models.ValidationError
	if !errors.As(err, &verr) {
		return err
	}
	out := models.NewValidationError()
	out.Merge(prefix, verr)
	return out
}
