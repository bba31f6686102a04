package models

import "strings"

// Location is a pickup, drop-off or service point.
type Location struct {
	Base     `bson:",inline"`
	Code     string        `bson:"code" json:"code"`
	Name     BilingualText `bson:"name" json:"name"`
	Street   BilingualText `bson:"street" json:"street"`
	City     BilingualText `bson:"city" json:"city"`
	Region   BilingualText `bson:"region" json:"region"`
	Country  BilingualText `bson:"country" json:"country"`
	IsActive bool          `bson:"isActive" json:"isActive"`
}

func (l *Location) Validate() error {
	verr := NewValidationError()
	if l.Name.IsEmpty() {
		verr.Add("name", "name is required in at least one language")
	}
	if l.City.IsEmpty() {
		verr.Add("city", "city is required")
	}
	return verr.OrNil()
}

// FormattedAddress joins the English parts, then the Arabic parts, so one
// string can be searched in either language.
func (l *Location) FormattedAddress() string {
	join := func(pick func(BilingualText) string) string {
		var parts []string
		for _, t := range []BilingualText{l.Name, l.Street, l.City, l.Region, l.Country} {
			if v := strings.TrimSpace(pick(t)); v != "" {
				parts = append(parts, v)
			}
		}
		return strings.Join(parts, ", ")
	}
	en := join(func(t BilingualText) string { return t.En })
	ar := join(func(t BilingualText) string { return t.Ar })
	switch {
	case en == "":
		return ar
	case ar == "":
		return en
	}
	return en + " / " + ar
}

// Ref is the embedded form used inside price entry views.
func (l *Location) Ref() LocationRef {
	return LocationRef{ID: l.ID, DisplayName: l.FormattedAddress()}
}

// LocationFilter narrows a location listing.
type LocationFilter struct {
	Search     string `form:"search" json:"search,omitempty"`
	City       string `form:"city" json:"city,omitempty"`
	ActiveOnly bool   `form:"activeOnly" json:"activeOnly,omitempty"`
}

// Page is one page of a listing.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// NewPage fills in TotalPages from total and limit.
func NewPage[T any](items []T, page, limit int, total int64) Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := 0
	if limit > 0 {
		pages = int((total + int64(limit) - 1) / int64(limit))
	}
	return Page[T]{Items: items, Page: page, Total: total, TotalPages: pages}
}

// FilterLocations keeps the locations whose formatted address contains query,
// ignoring case. An empty query keeps everything.
func FilterLocations(items []Location, query string) []Location {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := make([]Location, 0, len(items))
	for i := range items {
		if strings.Contains(strings.ToLower(items[i].FormattedAddress()), q) {
			out = append(out, items[i])
		}
	}
	return out
}
