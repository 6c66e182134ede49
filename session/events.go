package session

import (
	"google.golang.org/protobuf/types/known/structpb"

	"storefront/catalog"
	"storefront/eventsource"
)

// Filter event type names.
const (
	EventSearchTermChanged = "SearchTermChanged"
	EventCategorySelected  = "CategorySelected"
	EventSortFieldSelected = "SortFieldSelected"
	EventSortOrderSelected = "SortOrderSelected"
)

// SearchTermChanged records a new free-text search term.
type SearchTermChanged struct {
	Term string
}

func (e SearchTermChanged) EventType() string { return EventSearchTermChanged }

func (e SearchTermChanged) Payload() (*structpb.Struct, error) {
	return eventsource.NewPayload(map[string]any{"term": e.Term})
}

// CategorySelected records a category filter; "All" disables it.
type CategorySelected struct {
	Category string
}

func (e CategorySelected) EventType() string { return EventCategorySelected }

func (e CategorySelected) Payload() (*structpb.Struct, error) {
	return eventsource.NewPayload(map[string]any{"category": e.Category})
}

type SortFieldSelected struct {
	Field catalog.SortField
}

func (e SortFieldSelected) EventType() string { return EventSortFieldSelected }

func (e SortFieldSelected) Payload() (*structpb.Struct, error) {
	return eventsource.NewPayload(map[string]any{"field": e.Field.String()})
}

type SortOrderSelected struct {
	Order catalog.SortOrder
}

func (e SortOrderSelected) EventType() string { return EventSortOrderSelected }

func (e SortOrderSelected) Payload() (*structpb.Struct, error) {
	return eventsource.NewPayload(map[string]any{"order": e.Order.String()})
}

func newFilterBuilder() *eventsource.StateBuilder[catalog.FilterSortSpec] {
	return eventsource.NewStateBuilder(catalog.DefaultSpec).
		On(EventSearchTermChanged, func(spec *catalog.FilterSortSpec, p *structpb.Struct) {
			spec.SearchTerm = p.GetFields()["term"].GetStringValue()
		}).
		On(EventCategorySelected, func(spec *catalog.FilterSortSpec, p *structpb.Struct) {
			spec.Category = p.GetFields()["category"].GetStringValue()
		}).
		On(EventSortFieldSelected, func(spec *catalog.FilterSortSpec, p *structpb.Struct) {
			if field, err := catalog.ParseSortField(p.GetFields()["field"].GetStringValue()); err == nil {
				spec.SortField = field
			}
		}).
		On(EventSortOrderSelected, func(spec *catalog.FilterSortSpec, p *structpb.Struct) {
			if order, err := catalog.ParseSortOrder(p.GetFields()["order"].GetStringValue()); err == nil {
				spec.SortOrder = order
			}
		})
}
