package pricelist

import (
	"context"

	"freightadmin/models"
)

func (s *DefaultPriceListService) view(ctx context.Context, list *models.PriceList) (*models.PriceListView, error) {
	views, err := s.views(ctx, []models.PriceList{*list})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// views expands entries with their sub-activity and location objects, fetching
// each referenced collection once for all lists. References that no longer
// resolve fall back to their id as display name.
func (s *DefaultPriceListService) views(ctx context.Context, lists []models.PriceList) ([]models.PriceListView, error) {
	var subIDs, locIDs []string
	for _, list := range lists {
		for _, e := range list.Entries {
			subIDs = append(subIDs, e.SubActivityID)
			locIDs = append(locIDs, models.LocationIDs(e.Pricing)...)
		}
	}

	subs := map[string]models.SubActivityRef{}
	if len(subIDs) > 0 {
		found, err := s.SubActivities.GetByIDs(ctx, subIDs)
		if err != nil {
			return nil, err
		}
		for i := range found {
			opt := found[i].Option()
			subs[opt.ID] = models.SubActivityRef{ID: opt.ID, DisplayName: opt.DisplayName}
		}
	}

	locs := map[string]models.Location{}
	if len(locIDs) > 0 {
		var err error
		if locs, err = s.Locations.Resolve(ctx, locIDs); err != nil {
			return nil, err
		}
	}
	locRef := func(id string) models.LocationRef {
		if l, ok := locs[id]; ok {
			return l.Ref()
		}
		return models.LocationRef{ID: id, DisplayName: id}
	}

	out := make([]models.PriceListView, len(lists))
	for i, list := range lists {
		v := models.PriceListView{
			Base:            list.Base,
			Owner:           list.Owner,
			PriceListHeader: list.PriceListHeader,
			Entries:         make([]models.PriceEntryView, len(list.Entries)),
			CostRange:       list.CostRange,
		}
		for j, e := range list.Entries {
			sub, ok := subs[e.SubActivityID]
			if !ok {
				sub = models.SubActivityRef{ID: e.SubActivityID, DisplayName: e.SubActivityID}
			}
			v.Entries[j] = models.EntryView(e, sub, locRef)
		}
		out[i] = v
	}
	return out, nil
}
