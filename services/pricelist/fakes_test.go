package pricelist

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"freightadmin/database"
	catalogRepo "freightadmin/database/repository/catalog"
	"freightadmin/models"
)

type memCatalog[T any, PT catalogRepo.Doc[T]] struct {
	docs map[string]T
}

func newMemCatalog[T any, PT catalogRepo.Doc[T]](docs ...T) *memCatalog[T, PT] {
	m := &memCatalog[T, PT]{docs: map[string]T{}}
	for i := range docs {
		m.docs[PT(&docs[i]).GetID()] = docs[i]
	}
	return m
}

func (m *memCatalog[T, PT]) Create(_ context.Context, doc *T) error {
	m.docs[PT(doc).GetID()] = *doc
	return nil
}

func (m *memCatalog[T, PT]) GetByID(_ context.Context, id string) (*T, error) {
	doc, ok := m.docs[id]
	if !ok {
		return nil, fmt.Errorf("doc %s: %w", id, database.ErrNotFound)
	}
	return &doc, nil
}

func (m *memCatalog[T, PT]) GetByIDs(_ context.Context, ids []string) ([]T, error) {
	out := []T{}
	for _, id := range ids {
		if doc, ok := m.docs[id]; ok {
			out = append(out, doc)
		}
	}
	return out, nil
}

func (m *memCatalog[T, PT]) List(context.Context, catalogRepo.Filter) ([]T, error) {
	out := []T{}
	for _, doc := range m.docs {
		out = append(out, doc)
	}
	return out, nil
}

func (m *memCatalog[T, PT]) Replace(_ context.Context, doc *T) error {
	id := PT(doc).GetID()
	if _, ok := m.docs[id]; !ok {
		return fmt.Errorf("doc %s: %w", id, database.ErrNotFound)
	}
	m.docs[id] = *doc
	return nil
}

func (m *memCatalog[T, PT]) Delete(_ context.Context, id string) error {
	if _, ok := m.docs[id]; !ok {
		return fmt.Errorf("doc %s: %w", id, database.ErrNotFound)
	}
	delete(m.docs, id)
	return nil
}

// memPriceLists mirrors the mongo repository: ids are assigned on create and
// cost ranges are recalculated on every write.
type memPriceLists struct {
	lists    map[string]models.PriceList
	next     int
	expired  time.Time
	replaces int
}

func newMemPriceLists() *memPriceLists {
	return &memPriceLists{lists: map[string]models.PriceList{}}
}

func (m *memPriceLists) Create(_ context.Context, list *models.PriceList) error {
	m.next++
	list.ID = "PL" + strconv.Itoa(m.next)
	for i := range list.Entries {
		list.Entries[i].ID = list.ID + "-E" + strconv.Itoa(i+1)
	}
	list.Recalculate()
	m.lists[list.ID] = copyList(*list)
	return nil
}

func (m *memPriceLists) GetByID(_ context.Context, id string) (*models.PriceList, error) {
	list, ok := m.lists[id]
	if !ok {
		return nil, fmt.Errorf("price list %s: %w", id, database.ErrNotFound)
	}
	list = copyList(list)
	return &list, nil
}

func (m *memPriceLists) ListByOwner(_ context.Context, owner models.Owner) ([]models.PriceList, error) {
	out := []models.PriceList{}
	for _, list := range m.lists {
		if list.Owner == owner {
			out = append(out, copyList(list))
		}
	}
	return out, nil
}

func (m *memPriceLists) Replace(_ context.Context, list *models.PriceList) error {
	if _, ok := m.lists[list.ID]; !ok {
		return fmt.Errorf("price list %s: %w", list.ID, database.ErrNotFound)
	}
	for i := range list.Entries {
		if list.Entries[i].ID == "" {
			m.next++
			list.Entries[i].ID = "E" + strconv.Itoa(m.next)
		}
	}
	list.Recalculate()
	m.lists[list.ID] = copyList(*list)
	m.replaces++
	return nil
}

func (m *memPriceLists) Delete(_ context.Context, id string) error {
	if _, ok := m.lists[id]; !ok {
		return fmt.Errorf("price list %s: %w", id, database.ErrNotFound)
	}
	delete(m.lists, id)
	return nil
}

func (m *memPriceLists) DeactivateLapsed(_ context.Context, now time.Time) (int64, error) {
	m.expired = now
	var n int64
	for id, list := range m.lists {
		if list.IsActive && list.Lapsed(now) {
			list.IsActive = false
			m.lists[id] = list
			n++
		}
	}
	return n, nil
}

func copyList(l models.PriceList) models.PriceList {
	entries := make([]models.SubActivityPriceEntry, len(l.Entries))
	for i, e := range l.Entries {
		entries[i] = e.Clone()
	}
	l.Entries = entries
	return l
}

type memLocations map[string]models.Location

func (m memLocations) Resolve(_ context.Context, ids []string) (map[string]models.Location, error) {
	out := map[string]models.Location{}
	for _, id := range ids {
		if l, ok := m[id]; ok {
			out[id] = l
		}
	}
	return out, nil
}
