package catalog

import (
	"context"
	"errors"
	"fmt"

	"freightadmin/database"
	catalogRepo "freightadmin/database/repository/catalog"
	"freightadmin/models"
	"freightadmin/utils"

	"go.uber.org/zap"
)

// NewSubActivityService wires the sub-activity repository, the parent
// activity repository and the lookup cache. cache may be nil.
func NewSubActivityService(repo catalogRepo.Repository[models.SubActivity], activities catalogRepo.Repository[models.Activity], cache SubActivityCache) *DefaultSubActivityService {
	s := &DefaultSubActivityService{
		DefaultCrudService: DefaultCrudService[models.SubActivity, *models.SubActivity]{Repo: repo},
		Activities:         activities,
		Cache:              cache,
	}
	s.OnChange = s.invalidate
	return s
}

func (s *DefaultSubActivityService) Create(ctx context.Context, doc *models.SubActivity) (*models.SubActivity, error) {
	if err := s.checkActivity(ctx, doc.ActivityID); err != nil {
		return nil, err
	}
	return s.DefaultCrudService.Create(ctx, doc)
}

func (s *DefaultSubActivityService) Update(ctx context.Context, id string, doc *models.SubActivity) (*models.SubActivity, error) {
	if err := s.checkActivity(ctx, doc.ActivityID); err != nil {
		return nil, err
	}
	return s.DefaultCrudService.Update(ctx, id, doc)
}

// ByMethod lists the active sub-activities that may be priced by method.
func (s *DefaultSubActivityService) ByMethod(ctx context.Context, method models.PricingMethod) ([]models.SubActivityOption, error) {
	logger := utils.GetLogger()
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidPricingMethod, method)
	}

	cacheable := false
	var generation int64
	if s.Cache != nil {
		options, ok, err := s.Cache.Get(ctx, method)
		if err != nil {
			logger.Warn("Sub-activity cache read failed", zap.String("method", string(method)), zap.Error(err))
		} else if ok {
			return options, nil
		}
		if generation, err = s.Cache.Generation(ctx); err == nil {
			cacheable = true
		}
	}

	subs, err := s.Repo.List(ctx, catalogRepo.Filter{ActiveOnly: true, Field: "pricingMethods", Value: method})
	if err != nil {
		return nil, err
	}
	options := make([]models.SubActivityOption, 0, len(subs))
	for i := range subs {
		if subs[i].SupportsMethod(method) {
			options = append(options, subs[i].Option())
		}
	}

	if cacheable {
		switch err := s.Cache.Set(ctx, method, generation, options); {
		case errors.Is(err, ErrStaleCacheWrite):
			logger.Debug("Skipped caching sub-activities read before an invalidation", zap.String("method", string(method)))
		case err != nil:
			logger.Warn("Sub-activity cache write failed", zap.String("method", string(method)), zap.Error(err))
		}
	}
	return options, nil
}

func (s *DefaultSubActivityService) checkActivity(ctx context.Context, activityID string) error {
	if s.Activities == nil || activityID == "" {
		return nil
	}
	_, err := s.Activities.GetByID(ctx, activityID)
	if errors.Is(err, database.ErrNotFound) {
		return fmt.Errorf("%w: %s", ErrUnknownActivity, activityID)
	}
	return err
}

func (s *DefaultSubActivityService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		utils.GetLogger().Warn("Failed to invalidate sub-activity cache", zap.Error(err))
	}
}
