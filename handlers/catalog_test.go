package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"freightadmin/database"
	catalogRepo "freightadmin/database/repository/catalog"
	"freightadmin/models"
	"freightadmin/services/catalog"
	"freightadmin/services/location"

	"github.com/gin-gonic/gin"
)

// fakeCrud records what the handler asked for and answers with canned docs.
type fakeCrud[T any] struct {
	docs      map[string]T
	filter    catalogRepo.Filter
	createErr error
	updateErr error
	created   *T
	deleted   string
}

func (f *fakeCrud[T]) List(_ context.Context, filter catalogRepo.Filter) ([]T, error) {
	f.filter = filter
	out := []T{}
	for _, doc := range f.docs {
		out = append(out, doc)
	}
	return out, nil
}

func (f *fakeCrud[T]) Get(_ context.Context, id string) (*T, error) {
	doc, ok := f.docs[id]
	if !ok {
		return nil, fmt.Errorf("record %s: %w", id, database.ErrNotFound)
	}
	return &doc, nil
}

func (f *fakeCrud[T]) Create(_ context.Context, doc *T) (*T, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.created = doc
	return doc, nil
}

func (f *fakeCrud[T]) Update(_ context.Context, _ string, doc *T) (*T, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return doc, nil
}

func (f *fakeCrud[T]) Delete(_ context.Context, id string) error {
	if _, ok := f.docs[id]; !ok {
		return fmt.Errorf("record %s: %w", id, database.ErrNotFound)
	}
	f.deleted = id
	return nil
}

func catalogRouter[T any](path string, h *CatalogHandler[T]) *gin.Engine {
	r := gin.New()
	routes := h.Routes()
	r.GET(path, routes.List)
	r.POST(path, routes.Create)
	r.GET(path+"/:id", routes.Get)
	r.PUT(path+"/:id", routes.Update)
	r.DELETE(path+"/:id", routes.Delete)
	return r
}

func TestCatalogListPassesFilterParam(t *testing.T) {
	svc := &fakeCrud[models.TransactionType]{docs: map[string]models.TransactionType{
		"T1": {Base: models.Base{ID: "T1"}, Code: "IMP"},
	}}
	r := catalogRouter("/api/transaction-types", NewCatalogHandler[models.TransactionType](svc, "transaction type", "direction"))

	w := serve(r, http.MethodGet, "/api/transaction-types?search=imp&activeOnly=true&direction=import", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	want := catalogRepo.Filter{Search: "imp", ActiveOnly: true, Field: "direction", Value: "import"}
	if svc.filter != want {
		t.Fatalf("filter=%+v, want %+v", svc.filter, want)
	}
}

func TestCatalogListIgnoresUndeclaredParams(t *testing.T) {
	svc := &fakeCrud[models.Activity]{}
	r := catalogRouter("/api/activities", NewCatalogHandler[models.Activity](svc, "activity", ""))

	w := serve(r, http.MethodGet, "/api/activities?activityId=A1&activeOnly=nope", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if svc.filter != (catalogRepo.Filter{}) {
		t.Fatalf("filter=%+v, want empty", svc.filter)
	}
	if w.Body.String() != "[]" {
		t.Fatalf("body=%s, want []", w.Body.String())
	}
}

// listOnlySubActivities implements only List.
type listOnlySubActivities struct {
	catalog.SubActivityService
	filter catalogRepo.Filter
}

func (f *listOnlySubActivities) List(_ context.Context, filter catalogRepo.Filter) ([]models.SubActivity, error) {
	f.filter = filter
	return []models.SubActivity{}, nil
}

func TestCatalogSubActivityFilterByActivity(t *testing.T) {
	svc := &listOnlySubActivities{}
	r := catalogRouter("/api/sub-activities", NewSubActivityHandler(svc).CatalogHandler)

	if w := serve(r, http.MethodGet, "/api/sub-activities?activityId=A1", ""); w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if svc.filter.Field != "activityId" || svc.filter.Value != "A1" {
		t.Fatalf("filter=%+v", svc.filter)
	}
}

func TestCatalogCrudStatuses(t *testing.T) {
	svc := &fakeCrud[models.Activity]{docs: map[string]models.Activity{
		"A1": {Base: models.Base{ID: "A1"}, Code: "CUS"},
	}}
	r := catalogRouter("/api/activities", NewCatalogHandler[models.Activity](svc, "activity", ""))

	if w := serve(r, http.MethodGet, "/api/activities/A1", ""); w.Code != http.StatusOK || decodeBody(t, w)["code"] != "CUS" {
		t.Fatalf("get: status=%d body=%s", w.Code, w.Body.String())
	}
	if w := serve(r, http.MethodGet, "/api/activities/A9", ""); w.Code != http.StatusNotFound {
		t.Fatalf("get unknown: status=%d, want 404", w.Code)
	}

	w := serve(r, http.MethodPost, "/api/activities", `{"code":"TRN","name":{"en":"Transport"}}`)
	if w.Code != http.StatusCreated || svc.created == nil || svc.created.Code != "TRN" {
		t.Fatalf("create: status=%d created=%+v", w.Code, svc.created)
	}
	if w := serve(r, http.MethodPost, "/api/activities", `{"code":`); w.Code != http.StatusBadRequest {
		t.Fatalf("malformed create: status=%d, want 400", w.Code)
	}

	verr := models.NewValidationError()
	verr.Add("code", "code is required")
	svc.createErr = verr.OrNil()
	w = serve(r, http.MethodPost, "/api/activities", `{"name":{"en":"Transport"}}`)
	body := decodeBody(t, w)
	fields, _ := body["fields"].(map[string]any)
	if w.Code != http.StatusBadRequest || fields["code"] != "code is required" {
		t.Fatalf("invalid create: status=%d body=%v", w.Code, body)
	}

	svc.updateErr = fmt.Errorf("%w: A2 != A1", catalog.ErrIDMismatch)
	if w := serve(r, http.MethodPut, "/api/activities/A1", `{"id":"A2","code":"CUS"}`); w.Code != http.StatusBadRequest {
		t.Fatalf("mismatched update: status=%d, want 400", w.Code)
	}

	w = serve(r, http.MethodDelete, "/api/activities/A1", "")
	if w.Code != http.StatusOK || svc.deleted != "A1" || decodeBody(t, w)["message"] != "activity deleted" {
		t.Fatalf("delete: status=%d body=%s", w.Code, w.Body.String())
	}
	if w := serve(r, http.MethodDelete, "/api/activities/A1x", ""); w.Code != http.StatusNotFound {
		t.Fatalf("delete unknown: status=%d, want 404", w.Code)
	}
}

// fakeLocations implements only Page.
type fakeLocations struct {
	location.LocationService
	filter      models.LocationFilter
	page, limit int
}

func (f *fakeLocations) Page(_ context.Context, filter models.LocationFilter, page, limit int) (models.Page[models.Location], error) {
	f.filter, f.page, f.limit = filter, page, limit
	items := []models.Location{{Base: models.Base{ID: "L1"}, Code: "JED"}}
	return models.NewPage(items, page, limit, 31), nil
}

func TestLocationPageBindsQuery(t *testing.T) {
	svc := &fakeLocations{}
	r := gin.New()
	r.GET("/api/locations", NewLocationHandler(svc).PageHandler)

	w := serve(r, http.MethodGet, "/api/locations?page=3&limit=25&search=port&city=Jeddah&activeOnly=true", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	want := models.LocationFilter{Search: "port", City: "Jeddah", ActiveOnly: true}
	if svc.filter != want || svc.page != 3 || svc.limit != 25 {
		t.Fatalf("filter=%+v page=%d limit=%d", svc.filter, svc.page, svc.limit)
	}
	body := decodeBody(t, w)
	if body["page"] != 3.0 || body["total"] != 31.0 || body["totalPages"] != 2.0 {
		t.Fatalf("body=%v", body)
	}

	serve(r, http.MethodGet, "/api/locations", "")
	if svc.page != 1 || svc.limit != location.DefaultPageSize || svc.filter != (models.LocationFilter{}) {
		t.Fatalf("defaults: filter=%+v page=%d limit=%d", svc.filter, svc.page, svc.limit)
	}

	if w := serve(r, http.MethodGet, "/api/locations?activeOnly=maybe", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("bad activeOnly: status=%d, want 400", w.Code)
	}
}
