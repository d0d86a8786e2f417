// Package tui is the terminal storefront: a product listing, the cart with its amount controls
// and a header badge with the cart size. Cart operations run in-process against the cart service.
package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/Alturino/storefront/cart/internal/view"
	"github.com/Alturino/storefront/cart/pkg/response"
	catalogResponse "github.com/Alturino/storefront/catalog/pkg/response"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/notification"
)

const (
	tableHeight       = 12
	notificationsTick = time.Second
)

type CartService interface {
	Cart() []response.CartEntry
	AddProduct(c context.Context, productID int64) error
	RemoveProduct(c context.Context, productID int64) error
	IncrementProduct(c context.Context, productID int64) error
	DecrementProduct(c context.Context, productID int64) error
}

type Catalog interface {
	Products(c context.Context) ([]catalogResponse.Product, error)
}

type tab int

const (
	tabProducts tab = iota
	tabCart
)

type productsMsg struct {
	products []catalogResponse.Product
	err      error
}

// operationMsg reports the outcome of one cart operation.
type operationMsg struct {
	op        notification.Operation
	productID int64
	err       error
}

type tickMsg time.Time

type Model struct {
	c         context.Context
	service   CartService
	catalog   Catalog
	notifier  *notification.Notifier
	formatter *view.PriceFormatter
	styles    styles

	tab           tab
	products      []catalogResponse.Product
	cart          []response.CartEntry
	productsTable table.Model
	cartTable     table.Model
	notifications []notification.Notification
	loading       bool
}

func NewModel(
	c context.Context,
	service CartService,
	catalog Catalog,
	notifier *notification.Notifier,
	formatter *view.PriceFormatter,
) Model {
	m := Model{
		c:         c,
		service:   service,
		catalog:   catalog,
		notifier:  notifier,
		formatter: formatter,
		styles:    defaultStyles(),
		tab:       tabProducts,
		loading:   true,
		productsTable: table.New(
			table.WithColumns([]table.Column{
				{Title: "ID", Width: 4},
				{Title: "Product", Width: 40},
				{Title: "Price", Width: 14},
				{Title: "In cart", Width: 8},
			}),
			table.WithFocused(true),
			table.WithHeight(tableHeight),
		),
		cartTable: table.New(
			table.WithColumns([]table.Column{
				{Title: "Product", Width: 40},
				{Title: "Price", Width: 14},
				{Title: "Amount", Width: 8},
				{Title: "Subtotal", Width: 14},
			}),
			table.WithHeight(tableHeight),
		),
	}
	m.refreshCart()
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadProducts, tick())
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case productsMsg:
		m.loading = false
		if msg.err != nil {
			m.notifier.Push(m.c, notification.Notification{
				Level:   notification.LevelError,
				Message: "failed loading products",
			})
			m.notifications = m.notifier.Active()
			return m, nil
		}
		m.products = msg.products
		m.refreshProducts()
		return m, nil
	case operationMsg:
		if msg.err != nil {
			m.notifier.Notify(m.c, msg.op, msg.err)
		}
		m.notifications = m.notifier.Active()
		m.refreshCart()
		return m, nil
	case tickMsg:
		m.notifications = m.notifier.Active()
		return m, tick()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "tab":
		m.switchTab()
		return m, nil
	}

	if m.tab == tabProducts {
		switch msg.String() {
		case "enter", "a":
			product, ok := m.selectedProduct()
			if !ok {
				return m, nil
			}
			return m, m.operation(notification.OperationAdd, product.ID, m.service.AddProduct)
		}
		var cmd tea.Cmd
		m.productsTable, cmd = m.productsTable.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "+", "=":
		entry, ok := m.selectedEntry()
		if !ok {
			return m, nil
		}
		return m, m.operation(notification.OperationUpdate, entry.ID, m.service.IncrementProduct)
	case "-":
		entry, ok := m.selectedEntry()
		if !ok || entry.Amount <= 1 {
			return m, nil
		}
		return m, m.operation(notification.OperationUpdate, entry.ID, m.service.DecrementProduct)
	case "d", "x", "delete":
		entry, ok := m.selectedEntry()
		if !ok {
			return m, nil
		}
		return m, m.operation(notification.OperationRemove, entry.ID, m.service.RemoveProduct)
	}
	var cmd tea.Cmd
	m.cartTable, cmd = m.cartTable.Update(msg)
	return m, cmd
}

func (m *Model) switchTab() {
	if m.tab == tabProducts {
		m.tab = tabCart
		m.productsTable.Blur()
		m.cartTable.Focus()
		return
	}
	m.tab = tabProducts
	m.cartTable.Blur()
	m.productsTable.Focus()
}

func (m Model) loadProducts() tea.Msg {
	logger := zerolog.Ctx(m.c).
		With().
		Str(log.KeyTag, "tui loadProducts").
		Str(log.KeyProcess, "finding products").
		Logger()

	logger.Info().Msg("finding products")
	products, err := m.catalog.Products(logger.WithContext(m.c))
	if err != nil {
		logger.Error().Err(err).Msg(err.Error())
		return productsMsg{err: err}
	}
	logger.Info().Int(log.KeyProducts, len(products)).Msg("found products")

	return productsMsg{products: products}
}

func (m Model) operation(
	op notification.Operation,
	productID int64,
	fn func(context.Context, int64) error,
) tea.Cmd {
	return func() tea.Msg {
		logger := zerolog.Ctx(m.c).
			With().
			Str(log.KeyTag, "tui operation").
			Str(log.KeyOperation, string(op)).
			Int64(log.KeyProductID, productID).
			Logger()

		logger.Info().Msg("running cart operation")
		err := fn(logger.WithContext(m.c), productID)
		if err != nil {
			logger.Error().Err(err).Msg(err.Error())
		} else {
			logger.Info().Msg("ran cart operation")
		}
		return operationMsg{op: op, productID: productID, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(notificationsTick, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m *Model) refreshCart() {
	m.cart = m.service.Cart()
	rows := make([]table.Row, 0, len(m.cart))
	for _, row := range view.NewCartPage(m.cart, m.formatter).Rows {
		rows = append(rows, table.Row{
			row.Title,
			row.PriceFormatted,
			strconv.Itoa(row.Amount),
			row.SubtotalFormatted,
		})
	}
	m.cartTable.SetRows(rows)
	m.cartTable.SetCursor(m.cartTable.Cursor())
	m.refreshProducts()
}

func (m *Model) refreshProducts() {
	amounts := make(map[int64]int, len(m.cart))
	for _, e := range m.cart {
		amounts[e.ID] = e.Amount
	}

	rows := make([]table.Row, 0, len(m.products))
	for _, p := range m.products {
		rows = append(rows, table.Row{
			strconv.FormatInt(p.ID, 10),
			p.Title,
			m.formatter.Format(p.Price),
			strconv.Itoa(amounts[p.ID]),
		})
	}
	m.productsTable.SetRows(rows)
	m.productsTable.SetCursor(m.productsTable.Cursor())
}

func (m Model) selectedProduct() (catalogResponse.Product, bool) {
	i := m.productsTable.Cursor()
	if i < 0 || i >= len(m.products) {
		return catalogResponse.Product{}, false
	}
	return m.products[i], true
}

func (m Model) selectedEntry() (response.CartEntry, bool) {
	i := m.cartTable.Cursor()
	if i < 0 || i >= len(m.cart) {
		return response.CartEntry{}, false
	}
	return m.cart[i], true
}

func (m Model) View() string {
	b := strings.Builder{}

	header := view.NewHeader(m.cart)
	b.WriteString(lipgloss.JoinHorizontal(
		lipgloss.Center,
		m.styles.brand.Render("Rocketshoes"),
		" ",
		m.styles.badge.Render(fmt.Sprintf("My cart · %s", header.Label)),
	))
	b.WriteString("\n\n")

	productsTab, cartTab := m.styles.tab, m.styles.tab
	if m.tab == tabProducts {
		productsTab = m.styles.activeTab
	} else {
		cartTab = m.styles.activeTab
	}
	b.WriteString(lipgloss.JoinHorizontal(
		lipgloss.Top,
		productsTab.Render("Products"),
		cartTab.Render("Cart"),
	))
	b.WriteString("\n")

	if m.tab == tabProducts {
		if m.loading {
			b.WriteString("loading products...")
		} else {
			b.WriteString(m.productsTable.View())
		}
	} else {
		b.WriteString(m.cartTable.View())
		page := view.NewCartPage(m.cart, m.formatter)
		b.WriteString("\n")
		b.WriteString(m.styles.total.Render("Total: " + page.TotalFormatted))
	}
	b.WriteString("\n")

	for _, n := range m.notifications {
		style := m.styles.error
		if n.Level == notification.LevelInfo {
			style = m.styles.info
		}
		b.WriteString(style.Render(n.Message))
		b.WriteString("\n")
	}

	help := "tab switch view · enter add · q quit"
	if m.tab == tabCart {
		help = "tab switch view · +/- change amount · d remove · q quit"
	}
	b.WriteString(m.styles.help.Render(help))

	return b.String()
}
