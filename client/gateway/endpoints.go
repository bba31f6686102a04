package gateway

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"freightadmin/models"
)

type lookupResponse struct {
	Success bool                       `json:"success"`
	Data    []models.SubActivityOption `json:"data"`
	Message string                     `json:"message"`
}

// SubActivitiesByPricingMethod lists the sub-activities eligible for method.
func (c *Client) SubActivitiesByPricingMethod(ctx context.Context, method models.PricingMethod) ([]models.SubActivityOption, error) {
	var resp lookupResponse
	path := "/api/sub-activities/by-method/" + url.PathEscape(string(method))
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, &APIError{Status: http.StatusOK, Message: resp.Message}
	}
	if resp.Data == nil {
		resp.Data = []models.SubActivityOption{}
	}
	return resp.Data, nil
}

// ListPriceLists returns every price list of owner.
func (c *Client) ListPriceLists(ctx context.Context, owner models.Owner) ([]models.PriceListView, error) {
	var lists []models.PriceListView
	path := "/api/" + owner.OwnerType.Plural() + "/" + url.PathEscape(owner.OwnerID) + "/price-lists"
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &lists); err != nil {
		return nil, err
	}
	return lists, nil
}

func (c *Client) GetPriceList(ctx context.Context, priceListID string) (*models.PriceListView, error) {
	var list models.PriceListView
	if err := c.do(ctx, http.MethodGet, priceListPath(priceListID), nil, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// AddSubActivityToPriceList posts entry and returns the server's canonical list.
func (c *Client) AddSubActivityToPriceList(ctx context.Context, priceListID string, entry models.SubActivityPriceEntry) (*models.PriceListView, error) {
	var list models.PriceListView
	if err := c.do(ctx, http.MethodPost, priceListPath(priceListID)+"/sub-activities", nil, entry, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateSubActivityInPriceList replaces entryID with entry.
func (c *Client) UpdateSubActivityInPriceList(ctx context.Context, priceListID, entryID string, entry models.SubActivityPriceEntry) (*models.PriceListView, error) {
	var list models.PriceListView
	path := priceListPath(priceListID) + "/sub-activities/" + url.PathEscape(entryID)
	if err := c.do(ctx, http.MethodPut, path, nil, entry, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

func (c *Client) DeleteSubActivityFromPriceList(ctx context.Context, priceListID, entryID string) error {
	path := priceListPath(priceListID) + "/sub-activities/" + url.PathEscape(entryID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// Locations fetches one page of locations, filtered server-side.
func (c *Client) Locations(ctx context.Context, page, limit int, filter models.LocationFilter) (models.Page[models.Location], error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	if filter.Search != "" {
		q.Set("search", filter.Search)
	}
	if filter.City != "" {
		q.Set("city", filter.City)
	}
	if filter.ActiveOnly {
		q.Set("activeOnly", "true")
	}

	var result models.Page[models.Location]
	if err := c.do(ctx, http.MethodGet, "/api/locations", q, nil, &result); err != nil {
		return models.Page[models.Location]{}, err
	}
	return result, nil
}

// SearchLocations fetches a page with filter and then keeps the items whose
// formatted bilingual address contains query. Paging totals stay the server's.
func (c *Client) SearchLocations(ctx context.Context, page, limit int, filter models.LocationFilter, query string) (models.Page[models.Location], error) {
	result, err := c.Locations(ctx, page, limit, filter)
	if err != nil {
		return result, err
	}
	result.Items = models.FilterLocations(result.Items, query)
	return result, nil
}

func priceListPath(id string) string {
	return "/api/price-lists/" + url.PathEscape(id)
}
