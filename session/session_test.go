package session

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"storefront/cart"
	"storefront/catalog"
	"storefront/eventsource"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	return New(uuid.New(), catalog.Default(), WithLogger(zaptest.NewLogger(t)))
}

func productIDs(products []catalog.Product) []string {
	ids := make([]string, len(products))
	for i, p := range products {
		ids[i] = p.ID
	}
	return ids
}

func lineIDs(lines []Line) []string {
	ids := make([]string, len(lines))
	for i, l := range lines {
		ids[i] = l.Item.Product.ID
	}
	return ids
}

func TestNew_InitialView(t *testing.T) {
	s := newTestSession(t)

	view := s.View()

	assert.Equal(t, catalog.DefaultSpec(), view.Filter)
	assert.Equal(t, 10, view.ResultCount)
	assert.Len(t, view.Products, 10)
	assert.Equal(t, "All", view.Categories[0])
	assert.Empty(t, view.Lines)
	assert.Equal(t, cart.PhaseIdle, view.Phase)
	assert.Empty(t, s.Journal().Pages)
}

func TestAddToCart_ReferenceScenario(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.AddToCart("1"))
	require.NoError(t, s.AddToCart("2"))
	require.NoError(t, s.AddToCart("1"))

	view := s.View()
	require.Len(t, view.Lines, 2)
	assert.Equal(t, []string{"1", "2"}, lineIDs(view.Lines))
	assert.Equal(t, 2, view.Lines[0].Item.Quantity)
	assert.Equal(t, 1, view.Lines[1].Item.Quantity)
	assert.Equal(t, "59.98", view.Lines[0].LineTotal.String())

	assert.Equal(t, 3, view.Totals.ItemCount)
	assert.Equal(t, 2, view.Totals.LineCount)
	assert.Equal(t, "149.97", view.Totals.Subtotal.String())
	assert.True(t, view.Totals.Shipping.IsZero())
	assert.Equal(t, "11.9976", view.Totals.Tax.String())
	assert.Equal(t, "161.9676", view.Totals.GrandTotal.String())
}

func TestAddToCart_IgnoredProducts(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.AddToCart("5"))
	require.NoError(t, s.AddToCart("does-not-exist"))

	assert.Empty(t, s.View().Lines)
	assert.Empty(t, s.Journal().Pages, "no-ops must not be journaled")
}

func TestUpdateQuantity_NonPositiveRemoves(t *testing.T) {
	for _, q := range []int{0, -1, -7} {
		s := newTestSession(t)
		require.NoError(t, s.AddToCart("1"))
		require.NoError(t, s.AddToCart("3"))

		require.NoError(t, s.UpdateQuantity("1", q))

		assert.Equal(t, []string{"3"}, lineIDs(s.View().Lines), "quantity %d", q)
	}
}

func TestUpdateQuantity_SetsInPlace(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.AddToCart("1"))
	require.NoError(t, s.AddToCart("3"))

	require.NoError(t, s.UpdateQuantity("1", 5))

	view := s.View()
	assert.Equal(t, []string{"1", "3"}, lineIDs(view.Lines))
	assert.Equal(t, 5, view.Lines[0].Item.Quantity)
	assert.Equal(t, 6, view.Totals.ItemCount)
}

func TestUpdateQuantity_LargeQuantityRejected(t *testing.T) {
	for _, q := range []int{cart.MaxQuantity + 1, 1<<53 + 1, math.MaxInt} {
		s := newTestSession(t)
		require.NoError(t, s.AddToCart("1"))

		err := s.UpdateQuantity("1", q)

		var cmdErr *eventsource.CommandError
		require.ErrorAs(t, err, &cmdErr, "quantity %d", q)
		assert.Equal(t, eventsource.StatusInvalidArgument, cmdErr.Code)
		assert.Contains(t, err.Error(), ErrMsgQuantityTooLarge)
		assert.Len(t, s.Journal().Pages, 1, "rejected update must not be journaled")
		assert.Equal(t, 1, s.State().Cart.Quantity("1"))
	}
}

func TestUpdateQuantity_MaxQuantitySurvivesReplay(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.AddToCart("1"))

	require.NoError(t, s.UpdateQuantity("1", cart.MaxQuantity))

	assert.Equal(t, cart.MaxQuantity, Replay(s.Journal()).Cart.Quantity("1"))
}

func TestRemoveAndClear(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.AddToCart("1"))
	require.NoError(t, s.AddToCart("2"))

	require.NoError(t, s.RemoveFromCart("1"))
	require.NoError(t, s.RemoveFromCart("1"))
	assert.Equal(t, []string{"2"}, lineIDs(s.View().Lines))

	require.NoError(t, s.ClearCart())
	assert.Empty(t, s.View().Lines)
	assert.Len(t, s.Journal().Pages, 4)
}

func TestCheckout_EmptyCartStaysIdle(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.RequestCheckout())

	assert.Equal(t, cart.PhaseIdle, s.View().Phase)
	assert.False(t, s.State().Cart.CheckoutPending())
}

func TestCheckout_Lifecycle(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.AddToCart("7"))

	require.NoError(t, s.RequestCheckout())
	assert.Equal(t, cart.PhasePending, s.View().Phase)

	require.NoError(t, s.CompleteCheckout())
	view := s.View()
	assert.Equal(t, cart.PhaseCompleted, view.Phase)
	assert.Empty(t, view.Lines)
	assert.Equal(t, 0, view.Totals.ItemCount)

	journal := s.Journal()
	last := journal.Pages[len(journal.Pages)-1]
	assert.Equal(t, cart.EventCheckoutCompleted, last.Type())
}

func TestFilter_SearchIsCaseInsensitive(t *testing.T) {
	for _, term := range []string{"denim", "DENIM"} {
		s := newTestSession(t)

		require.NoError(t, s.SetSearchTerm(term))

		assert.Equal(t, []string{"7", "2"}, productIDs(s.View().Products), term)
	}
}

func TestFilter_CategoryAndSort(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.SelectCategory("Bottoms"))
	require.NoError(t, s.SetSortField(catalog.SortByPrice))
	view := s.View()
	assert.Equal(t, []string{"6", "4", "10", "2"}, productIDs(view.Products))
	assert.Equal(t, 4, view.ResultCount)

	require.NoError(t, s.SetSortOrder(catalog.Descending))
	assert.Equal(t, []string{"2", "10", "4", "6"}, productIDs(s.View().Products))

	require.NoError(t, s.SelectCategory(catalog.AllCategories))
	require.NoError(t, s.SetSortField(catalog.SortByRating))
	assert.Equal(t, []string{"5", "2", "8", "1", "7", "3", "9", "4", "10", "6"}, productIDs(s.View().Products))
}

func TestFilter_UnchangedValuesAreNotJournaled(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.SetSearchTerm(""))
	require.NoError(t, s.SelectCategory(catalog.AllCategories))
	require.NoError(t, s.SetSortField(catalog.SortByName))
	require.NoError(t, s.SetSortOrder(catalog.Ascending))

	assert.Empty(t, s.Journal().Pages)
}

func TestFilter_DoesNotTouchCart(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.AddToCart("1"))

	require.NoError(t, s.SetSearchTerm("nothing matches this"))

	view := s.View()
	assert.Empty(t, view.Products)
	assert.NotNil(t, view.Products)
	assert.Equal(t, []string{"1"}, lineIDs(view.Lines))
}

func TestView_MemoFollowsFilter(t *testing.T) {
	s := newTestSession(t)

	first := s.View().Products
	first[0] = catalog.Product{ID: "tampered"}
	assert.NotEqual(t, "tampered", s.View().Products[0].ID)

	require.NoError(t, s.SetSearchTerm("denim"))
	assert.Equal(t, 2, s.View().ResultCount)
	require.NoError(t, s.SetSearchTerm(""))
	assert.Equal(t, 10, s.View().ResultCount)
}

func TestJournal_IsSequencedCopy(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.AddToCart("1"))
	require.NoError(t, s.SetSortField(catalog.SortByPrice))
	require.NoError(t, s.AddToCart("1"))

	journal := s.Journal()
	require.Len(t, journal.Pages, 3)
	assert.Equal(t, s.ID(), journal.Root)
	for i, page := range journal.Pages {
		assert.Equal(t, uint32(i), page.Sequence)
		assert.NotNil(t, page.CreatedAt)
	}
	assert.Equal(t, []string{cart.EventItemAdded, EventSortFieldSelected, cart.EventItemAdded},
		[]string{journal.Pages[0].Type(), journal.Pages[1].Type(), journal.Pages[2].Type()})

	journal.Pages = journal.Pages[:0]
	assert.Len(t, s.Journal().Pages, 3)
}

func TestReplay_ReproducesState(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.AddToCart("1"))
	require.NoError(t, s.AddToCart("2"))
	require.NoError(t, s.AddToCart("1"))
	require.NoError(t, s.UpdateQuantity("2", 4))
	require.NoError(t, s.SetSearchTerm("Shirt"))
	require.NoError(t, s.SelectCategory("Tops"))
	require.NoError(t, s.SetSortOrder(catalog.Descending))
	require.NoError(t, s.RequestCheckout())

	replayed := Replay(s.Journal())
	live := s.State()

	assert.Equal(t, live.Filter, replayed.Filter)
	assert.Equal(t, live.Cart.Phase(), replayed.Cart.Phase())
	require.Equal(t, live.Cart.Len(), replayed.Cart.Len())
	for i, item := range live.Cart.Items() {
		got := replayed.Cart.Items()[i]
		assert.Equal(t, item.Product.ID, got.Product.ID)
		assert.Equal(t, item.Quantity, got.Quantity)
		assert.True(t, item.Product.Price.Equal(got.Product.Price))
	}
	assert.True(t, cart.DeriveTotals(live.Cart).GrandTotal.Equal(cart.DeriveTotals(replayed.Cart).GrandTotal))
}

func TestRestore_ContinuesJournal(t *testing.T) {
	s := newTestSession(t)
	require.NoError(t, s.AddToCart("1"))
	require.NoError(t, s.SelectCategory("Tops"))

	restored := Restore(s.Journal(), catalog.Default())
	require.NoError(t, restored.AddToCart("1"))

	assert.Equal(t, s.ID(), restored.ID())
	assert.Equal(t, 2, restored.State().Cart.Quantity("1"))
	assert.Equal(t, "Tops", restored.View().Filter.Category)
	assert.Len(t, restored.Journal().Pages, 3)
	assert.Len(t, s.Journal().Pages, 2, "restoring must not share the page slice")
}

func TestReplay_NilBook(t *testing.T) {
	state := Replay(nil)

	assert.Equal(t, catalog.DefaultSpec(), state.Filter)
	assert.True(t, state.Cart.IsEmpty())
}

func TestRestore_NilBook(t *testing.T) {
	s := Restore(nil, catalog.Default(), WithLogger(zaptest.NewLogger(t)))

	assert.NotEqual(t, uuid.Nil, s.ID())
	assert.True(t, s.State().Cart.IsEmpty())
	assert.Empty(t, s.Journal().Pages)

	require.NoError(t, s.AddToCart("1"))
	assert.Equal(t, s.ID(), s.Journal().Root)
	assert.Equal(t, 1, s.State().Cart.Quantity("1"))
}
