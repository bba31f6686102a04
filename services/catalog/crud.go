package catalog

import (
	"context"
	"fmt"

	catalogRepo "freightadmin/database/repository/catalog"
	"freightadmin/utils"

	"go.uber.org/zap"
)

// NewCrudService binds a generic service to repo.
func NewCrudService[T any, PT catalogRepo.Doc[T]](repo catalogRepo.Repository[T]) *DefaultCrudService[T, PT] {
	return &DefaultCrudService[T, PT]{Repo: repo}
}

func (s *DefaultCrudService[T, PT]) List(ctx context.Context, filter catalogRepo.Filter) ([]T, error) {
	return s.Repo.List(ctx, filter)
}

func (s *DefaultCrudService[T, PT]) Get(ctx context.Context, id string) (*T, error) {
	return s.Repo.GetByID(ctx, id)
}

// Create validates and stores a new document. Any client supplied ID is discarded.
func (s *DefaultCrudService[T, PT]) Create(ctx context.Context, doc *T) (*T, error) {
	d := PT(doc)
	d.SetID("")
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, doc); err != nil {
		utils.GetLogger().Error("Failed to create catalog record", zap.Error(err))
		return nil, err
	}
	s.changed(ctx)
	return doc, nil
}

// Update replaces the document stored under id.
func (s *DefaultCrudService[T, PT]) Update(ctx context.Context, id string, doc *T) (*T, error) {
	d := PT(doc)
	if d.GetID() != "" && d.GetID() != id {
		return nil, fmt.Errorf("%w: %s != %s", ErrIDMismatch, d.GetID(), id)
	}
	d.SetID(id)
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := s.Repo.Replace(ctx, doc); err != nil {
		return nil, err
	}
	s.changed(ctx)
	return doc, nil
}

func (s *DefaultCrudService[T, PT]) Delete(ctx context.Context, id string) error {
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	s.changed(ctx)
	return nil
}

func (s *DefaultCrudService[T, PT]) changed(ctx context.Context) {
	if s.OnChange != nil {
		s.OnChange(ctx)
	}
}
