package location

import (
	"context"
	"errors"
	"fmt"

	"freightadmin/models"
	"freightadmin/utils"

	"go.uber.org/zap"
)

var ErrIDMismatch = errors.New("id in body does not match path")

// NormalizePage clamps page to [1, MaxPage] and limit to (0, MaxPageSize].
func NormalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

func (s *DefaultLocationService) Page(ctx context.Context, filter models.LocationFilter, page, limit int) (models.Page[models.Location], error) {
	page, limit = NormalizePage(page, limit)
	items, total, err := s.Repo.Page(ctx, filter, page, limit)
	if err != nil {
		utils.GetLogger().Error("Failed to page locations", zap.Int("page", page), zap.Error(err))
		return models.Page[models.Location]{}, err
	}
	return models.NewPage(items, page, limit, total), nil
}

func (s *DefaultLocationService) Get(ctx context.Context, id string) (*models.Location, error) {
	return s.Repo.GetByID(ctx, id)
}

func (s *DefaultLocationService) Create(ctx context.Context, loc *models.Location) (*models.Location, error) {
	loc.ID = ""
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *DefaultLocationService) Update(ctx context.Context, id string, loc *models.Location) (*models.Location, error) {
	if loc.ID != "" && loc.ID != id {
		return nil, fmt.Errorf("%w: %s != %s", ErrIDMismatch, loc.ID, id)
	}
	loc.ID = id
	if err := loc.Validate(); err != nil {
		return nil, err
	}
	if err := s.Repo.Replace(ctx, loc); err != nil {
		return nil, err
	}
	return loc, nil
}

func (s *DefaultLocationService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func (s *DefaultLocationService) Resolve(ctx context.Context, ids []string) (map[string]models.Location, error) {
	locs, err := s.Repo.GetByIDs(ctx, uniqueIDs(ids))
	if err != nil {
		return nil, err
	}
	out := make(map[string]models.Location, len(locs))
	for _, l := range locs {
		out[l.ID] = l
	}
	return out, nil
}

func uniqueIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
