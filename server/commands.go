package server

import (
	"google.golang.org/protobuf/types/known/structpb"

	"storefront/catalog"
	"storefront/eventsource"
	"storefront/session"
)

// Command names, used as the type URL suffix of a Handle request.
const (
	CmdAddToCart        = "AddToCart"
	CmdRemoveFromCart   = "RemoveFromCart"
	CmdUpdateQuantity   = "UpdateQuantity"
	CmdClearCart        = "ClearCart"
	CmdRequestCheckout  = "RequestCheckout"
	CmdCompleteCheckout = "CompleteCheckout"
	CmdSetSearchTerm    = "SetSearchTerm"
	CmdSelectCategory   = "SelectCategory"
	CmdSetSortField     = "SetSortField"
	CmdSetSortOrder     = "SetSortOrder"
)

// Payload keys.
const (
	keySessionID = "session_id"
	keyProductID = "product_id"
	keyQuantity  = "quantity"
	keyTerm      = "term"
	keyCategory  = "category"
	keyField     = "field"
	keyOrder     = "order"
)

func newCommandRouter() *eventsource.CommandRouter[*session.Session] {
	return eventsource.NewCommandRouter[*session.Session](ServiceName).
		On(CmdAddToCart, handleAddToCart).
		On(CmdRemoveFromCart, handleRemoveFromCart).
		On(CmdUpdateQuantity, handleUpdateQuantity).
		On(CmdClearCart, func(s *session.Session, _ *structpb.Struct) error { return s.ClearCart() }).
		On(CmdRequestCheckout, func(s *session.Session, _ *structpb.Struct) error { return s.RequestCheckout() }).
		On(CmdCompleteCheckout, func(s *session.Session, _ *structpb.Struct) error { return s.CompleteCheckout() }).
		On(CmdSetSearchTerm, handleSetSearchTerm).
		On(CmdSelectCategory, handleSelectCategory).
		On(CmdSetSortField, handleSetSortField).
		On(CmdSetSortOrder, handleSetSortOrder)
}

func handleAddToCart(s *session.Session, p *structpb.Struct) error {
	id, err := eventsource.RequireNonEmptyString(p, keyProductID)
	if err != nil {
		return err
	}
	return s.AddToCart(id)
}

func handleRemoveFromCart(s *session.Session, p *structpb.Struct) error {
	id, err := eventsource.RequireNonEmptyString(p, keyProductID)
	if err != nil {
		return err
	}
	return s.RemoveFromCart(id)
}

func handleUpdateQuantity(s *session.Session, p *structpb.Struct) error {
	id, err := eventsource.RequireNonEmptyString(p, keyProductID)
	if err != nil {
		return err
	}
	quantity, err := eventsource.RequireInt(p, keyQuantity)
	if err != nil {
		return err
	}
	return s.UpdateQuantity(id, quantity)
}

func handleSetSearchTerm(s *session.Session, p *structpb.Struct) error {
	return s.SetSearchTerm(eventsource.OptionalString(p, keyTerm))
}

func handleSelectCategory(s *session.Session, p *structpb.Struct) error {
	category, err := eventsource.RequireNonEmptyString(p, keyCategory)
	if err != nil {
		return err
	}
	return s.SelectCategory(category)
}

func handleSetSortField(s *session.Session, p *structpb.Struct) error {
	raw, err := eventsource.RequireString(p, keyField)
	if err != nil {
		return err
	}
	field, err := catalog.ParseSortField(raw)
	if err != nil {
		return eventsource.NewInvalidArgument(err.Error())
	}
	return s.SetSortField(field)
}

func handleSetSortOrder(s *session.Session, p *structpb.Struct) error {
	raw, err := eventsource.RequireString(p, keyOrder)
	if err != nil {
		return err
	}
	order, err := catalog.ParseSortOrder(raw)
	if err != nil {
		return eventsource.NewInvalidArgument(err.Error())
	}
	return s.SetSortOrder(order)
}
