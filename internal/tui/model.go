// Package tui is the interactive terminal storefront. The Model owns one
// shop.State for the lifetime of the program and runs every input through
// shop.Reduce.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"MiniShop/internal/catalog"
	"MiniShop/internal/shop"
)

type pane int

const (
	paneCatalog pane = iota
	paneCart
)

const (
	defaultWidth  = 100
	defaultHeight = 30
	minPaneWidth  = 24
)

// noticeExpiredMsg dismisses the notice with the given id, unless a newer
// one has replaced it.
type noticeExpiredMsg struct{ id string }

type Model struct {
	catalog *catalog.Catalog
	state   shop.State
	notice  shop.Notice

	ttl   time.Duration
	now   func() time.Time
	newID func() string
	log   *zap.Logger

	search    textinput.Model
	searching bool
	focus     pane
	cursor    int
	cartPos   int

	width  int
	height int

	keys   keyMap
	help   help.Model
	styles Styles
}

type Option func(*Model)

func WithNoticeTTL(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.ttl = d
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

func WithIDs(newID func() string) Option {
	return func(m *Model) { m.newID = newID }
}

func WithLogger(log *zap.Logger) Option {
	return func(m *Model) {
		if log != nil {
			m.log = log
		}
	}
}

func New(cat *catalog.Catalog, opts ...Option) Model {
	ti := textinput.New()
	ti.Placeholder = "Search Items"
	ti.Prompt = "Search: "
	ti.CharLimit = 64
	ti.Width = 40

	m := Model{
		catalog: cat,
		state:   shop.NewState(),
		ttl:     shop.DefaultNoticeTTL,
		now:     time.Now,
		newID:   func() string { return "n_" + uuid.NewString() },
		log:     zap.NewNop(),
		search:  ti,
		width:   defaultWidth,
		height:  defaultHeight,
		keys:    defaultKeyMap(),
		help:    help.New(),
		styles:  DefaultStyles(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

func (m Model) State() shop.State   { return m.state }
func (m Model) Notice() shop.Notice { return m.notice }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m, nil

	case noticeExpiredMsg:
		if msg.id == m.notice.ID {
			m.notice = shop.Notice{}
		}
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.LeaveInput) {
		m.searching = false
		m.search.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if v := m.search.Value(); v != m.state.Filter.Search {
		m, _ = m.dispatch(shop.SetSearch{Text: v})
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		m.focus = paneCatalog
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Preset):
		return m.dispatch(shop.SetPriceRange{Range: catalog.NextPreset(m.state.Filter.Range).Range})

	case key.Matches(msg, m.keys.SwitchPane):
		if m.focus == paneCatalog {
			m.focus = paneCart
		} else {
			m.focus = paneCatalog
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		m.move(-1)
		return m, nil

	case key.Matches(msg, m.keys.Down):
		m.move(1)
		return m, nil

	case key.Matches(msg, m.keys.ClearCart):
		return m.dispatch(shop.ClearCart{})

	case key.Matches(msg, m.keys.Select):
		if m.focus == paneCart {
			return m.removeSelected()
		}
		visible := m.visible()
		if m.cursor < len(visible) {
			return m.dispatch(shop.AddToCart{Product: visible[m.cursor]})
		}
		return m, nil

	case key.Matches(msg, m.keys.Remove):
		if m.focus == paneCart {
			return m.removeSelected()
		}
		return m, nil
	}
	return m, nil
}

func (m Model) removeSelected() (Model, tea.Cmd) {
	if m.cartPos >= len(m.state.Cart) {
		return m, nil
	}
	return m.dispatch(shop.RemoveFromCart{Title: m.state.Cart[m.cartPos].Title})
}

// dispatch runs a through the reducer, keeps the cursors on screen and, for
// actions that confirm something, shows a notice and schedules its dismissal.
func (m Model) dispatch(a shop.Action) (Model, tea.Cmd) {
	next, n := shop.Reduce(m.state, a)
	m.state = next
	m.clampCursors()

	m.log.Debug("shop action",
		zap.String("action", shop.ActionName(a)),
		zap.Int("line_items", len(next.Cart)),
		zap.String("total", next.Cart.Total().String()),
	)

	if n.IsZero() {
		return m, nil
	}

	m.notice = n.Stamp(m.newID(), m.now(), m.ttl)
	id := m.notice.ID
	return m, tea.Tick(m.ttl, func(time.Time) tea.Msg {
		return noticeExpiredMsg{id: id}
	})
}

func (m *Model) move(delta int) {
	if m.focus == paneCart {
		m.cartPos += delta
	} else {
		m.cursor += delta
	}
	m.clampCursors()
}

func (m *Model) clampCursors() {
	m.cursor = clamp(m.cursor, len(m.visible()))
	m.cartPos = clamp(m.cartPos, len(m.state.Cart))
}

func clamp(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m Model) visible() []catalog.Product {
	return m.catalog.Filter(m.state.Filter.Search, m.state.Filter.Range)
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Header.Render("Shop"))
	b.WriteString("\n\n")
	b.WriteString(m.filterBar())
	b.WriteString("\n\n")

	cartWidth := max(minPaneWidth, m.width/4)
	gridWidth := max(minPaneWidth, m.width-cartWidth-4)

	grid := m.paneStyle(paneCatalog).Width(gridWidth).Render(m.gridView())
	cart := m.paneStyle(paneCart).Width(cartWidth).Render(m.cartView())
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, grid, cart))
	b.WriteString("\n")

	if m.notice.ActiveAt(m.now()) {
		b.WriteString(m.styles.Notice.Render("✓ " + m.notice.Message))
	}
	b.WriteString("\n")

	bindings := m.keys.browsingHelp()
	if m.searching {
		bindings = m.keys.searchingHelp()
	}
	b.WriteString(m.help.ShortHelpView(bindings))

	return b.String()
}

func (m Model) filterBar() string {
	label := "Custom"
	if p, ok := catalog.PresetFor(m.state.Filter.Range); ok {
		label = p.Label
	}
	price := m.styles.Muted.Render("Price: ") + m.styles.Price.Render(label)
	return lipgloss.JoinHorizontal(lipgloss.Center, m.search.View(), "   ", price)
}

func (m Model) paneStyle(p pane) lipgloss.Style {
	if m.focus == p && !m.searching {
		return m.styles.ActivePane
	}
	return m.styles.Pane
}

func (m Model) gridView() string {
	items := m.visible()
	if len(items) == 0 {
		return m.styles.Muted.Render("No items match.")
	}

	var b strings.Builder
	for i, p := range items {
		cursor := "  "
		title := m.styles.Title.Render(p.Title)
		if i == m.cursor && m.focus == paneCatalog {
			cursor = "> "
			title = m.styles.Selected.Render(p.Title)
		}
		fmt.Fprintf(&b, "%s%s  %s  %s\n",
			cursor,
			title,
			m.styles.Price.Render(formatPrice(p.Price)),
			m.styles.Muted.Render(p.Image),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) cartView() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Cart"))
	b.WriteString("\n")

	for i, li := range m.state.Cart {
		cursor := "  "
		if i == m.cartPos && m.focus == paneCart {
			cursor = "> "
		}
		fmt.Fprintf(&b, "%s%s\n  %s\n", cursor, li.Title, m.styles.Muted.Render(li.Label()))
	}
	if len(m.state.Cart) == 0 {
		b.WriteString(m.styles.Muted.Render("empty"))
		b.WriteString("\n")
	}

	b.WriteString(m.styles.Total.Render("Total: " + m.state.Cart.Total().String()))
	return b.String()
}

func formatPrice(p float64) string {
	return fmt.Sprintf("%g", p)
}
