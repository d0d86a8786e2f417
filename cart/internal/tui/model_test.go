package tui

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alturino/storefront/cart/internal/service"
	"github.com/Alturino/storefront/cart/internal/storage"
	"github.com/Alturino/storefront/cart/internal/view"
	catalogResponse "github.com/Alturino/storefront/catalog/pkg/response"
	commonErrors "github.com/Alturino/storefront/internal/common/errors"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/notification"
)

type fakeCatalog struct {
	products []catalogResponse.Product
	stocks   map[int64]int
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{
		products: []catalogResponse.Product{
			{ID: 1, Title: "Tênis de Caminhada", Price: decimal.RequireFromString("179.9")},
			{ID: 2, Title: "Tênis VR", Price: decimal.RequireFromString("139.9")},
		},
		stocks: map[int64]int{1: 2, 2: 0},
	}
}

func (f *fakeCatalog) Products(c context.Context) ([]catalogResponse.Product, error) {
	return f.products, nil
}

func (f *fakeCatalog) Stock(c context.Context, productID int64) (catalogResponse.Stock, error) {
	amount, ok := f.stocks[productID]
	if !ok {
		return catalogResponse.Stock{}, commonErrors.ErrStockNotFound
	}
	return catalogResponse.Stock{ID: productID, Amount: amount}, nil
}

func (f *fakeCatalog) Product(c context.Context, productID int64) (catalogResponse.Product, error) {
	for _, p := range f.products {
		if p.ID == productID {
			return p, nil
		}
	}
	return catalogResponse.Product{}, commonErrors.ErrProductNotFound
}

func newModel(t *testing.T) Model {
	c := context.Background()
	catalog := newFakeCatalog()
	svc, err := service.NewCartService(c, catalog, storage.NewMemoryStorage())
	require.NoError(t, err)

	m := NewModel(
		c,
		svc,
		catalog,
		notification.NewNotifier(time.Minute),
		view.NewPriceFormatter(config.Currency{Locale: "pt-BR", Symbol: "R$"}),
	)
	updated, _ := m.Update(m.loadProducts())
	return updated.(Model)
}

// press sends key and runs the resulting command once, feeding its message back.
func press(t *testing.T, m Model, key tea.KeyMsg) Model {
	updated, cmd := m.Update(key)
	m = updated.(Model)
	if cmd == nil {
		return m
	}
	msg := cmd()
	if _, ok := msg.(operationMsg); !ok {
		return m
	}
	updated, _ = m.Update(msg)
	return updated.(Model)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModelAddsSelectedProduct(t *testing.T) {
	m := newModel(t)
	assert.Contains(t, m.View(), "0 items")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, m.cart, 1)
	assert.Equal(t, int64(1), m.cart[0].ID)
	assert.Contains(t, m.View(), "1 item")
	assert.Empty(t, m.notifications)
}

func TestModelNotifiesOutOfStock(t *testing.T) {
	m := newModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Empty(t, m.cart)
	require.Len(t, m.notifications, 1)
	assert.Equal(t, notification.MessageOutOfStock, m.notifications[0].Message)
	assert.Contains(t, m.View(), notification.MessageOutOfStock)
}

func TestModelCartControls(t *testing.T) {
	m := newModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, tabCart, m.tab)

	m = press(t, m, runes("-"))
	assert.Equal(t, 1, m.cart[0].Amount)

	m = press(t, m, runes("+"))
	assert.Equal(t, 2, m.cart[0].Amount)
	assert.True(t, strings.Contains(m.View(), "359,80"))

	m = press(t, m, runes("+"))
	assert.Equal(t, 2, m.cart[0].Amount)
	require.Len(t, m.notifications, 1)
	assert.Equal(t, notification.MessageOutOfStock, m.notifications[0].Message)

	m = press(t, m, runes("-"))
	assert.Equal(t, 1, m.cart[0].Amount)

	m = press(t, m, runes("d"))
	assert.Empty(t, m.cart)
	assert.Contains(t, m.View(), "0 items")
}

func TestModelQuits(t *testing.T) {
	m := newModel(t)
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
