package ui

import (
	"context"
	"fmt"

	"github.com/altbeat/jukebox/internal/models"
	"github.com/altbeat/jukebox/internal/tasks"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	ListBrowseView ViewState = iota
	AlbumView
	ReviewView
)

// listSource loads lists from the database.
type listSource interface {
	List(criteria map[string]any) ([]*models.List, error)
}

// reviewSource loads reviews from the database.
type reviewSource interface {
	List(criteria map[string]any) ([]*models.Review, error)
}

// Model represents the TUI application state.
type Model struct {
	ctx           context.Context
	view          ViewState
	engine        *tasks.Engine
	lists         listSource
	reviews       reviewSource
	width         int
	height        int
	listList      list.Model
	albumList     list.Model
	reviewList    list.Model
	selectedList  *models.ListExport
	selectedAlbum string
	err           error
	help          help.Model
	keys          keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, engine *tasks.Engine, lists listSource, reviews reviewSource) *Model {
	return &Model{
		ctx:     ctx,
		view:    ListBrowseView,
		engine:  engine,
		lists:   lists,
		reviews: reviews,
		help:    help.New(),
		keys:    newKeyMap(),
	}
}

// Init initializes the TUI by fetching lists from the database.
func (m *Model) Init() tea.Cmd {
	return m.fetchLists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.listList.Width() == 0 {
			m.listList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.albumList.Width() == 0 {
			m.albumList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.reviewList.Width() == 0 {
			m.reviewList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case ListBrowseView:
			return m.handleListBrowseKeys(msg)
		case AlbumView:
			return m.handleAlbumKeys(msg)
		case ReviewView:
			return m.handleReviewKeys(msg)
		}

	case listsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		items := make([]list.Item, len(msg.lists))
		for i, l := range msg.lists {
			items[i] = listItem{list: l}
		}
		m.listList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.listList.Title = "Album Lists"
		m.listList.SetSize(m.width-4, m.height-8)
		return m, nil

	case albumsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ListBrowseView
			return m, nil
		}
		m.selectedList = msg.export
		items := make([]list.Item, len(msg.export.Entries))
		for i, entry := range msg.export.Entries {
			items[i] = albumItem{entry: entry}
		}
		m.albumList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.albumList.Title = fmt.Sprintf("Albums in '%s'", msg.export.Title)
		m.albumList.SetSize(m.width-4, m.height-8)
		m.view = AlbumView
		return m, nil

	case reviewsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = AlbumView
			return m, nil
		}
		items := make([]list.Item, len(msg.reviews))
		for i, review := range msg.reviews {
			items[i] = reviewItem{review: review}
		}
		m.reviewList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.reviewList.Title = fmt.Sprintf("Reviews for '%s'", msg.albumName)
		m.reviewList.SetSize(m.width-4, m.height-8)
		m.view = ReviewView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case ListBrowseView:
		return m.renderListBrowse()
	case AlbumView:
		return m.renderAlbums()
	case ReviewView:
		return m.renderReviews()
	default:
		return ""
	}
}

func (m *Model) handleListBrowseKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "r":
		return m, m.fetchLists()
	case "enter":
		selected := m.listList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(listItem); ok {
				return m, m.fetchAlbums(item.list.ID())
			}
		}
	}

	var cmd tea.Cmd
	m.listList, cmd = m.listList.Update(msg)
	return m, cmd
}

func (m *Model) handleAlbumKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = ListBrowseView
		return m, nil
	case "enter":
		selected := m.albumList.SelectedItem()
		if selected != nil {
			if item, ok := selected.(albumItem); ok {
				m.selectedAlbum = item.entry.AlbumID
				return m, m.fetchReviews(item.entry)
			}
		}
	}

	var cmd tea.Cmd
	m.albumList, cmd = m.albumList.Update(msg)
	return m, cmd
}

func (m *Model) handleReviewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.view = AlbumView
		return m, nil
	}

	var cmd tea.Cmd
	m.reviewList, cmd = m.reviewList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case ListBrowseView:
		m.listList, cmd = m.listList.Update(msg)
	case AlbumView:
		m.albumList, cmd = m.albumList.Update(msg)
	case ReviewView:
		m.reviewList, cmd = m.reviewList.Update(msg)
	}
	return m, cmd
}

func (m *Model) fetchLists() tea.Cmd {
	return func() tea.Msg {
		lists, err := m.lists.List(nil)
		return listsFetchedMsg{lists: lists, err: err}
	}
}

func (m *Model) fetchAlbums(listID string) tea.Cmd {
	return func() tea.Msg {
		export, err := m.engine.Hydrate(m.ctx, nil, listID)
		return albumsFetchedMsg{export: export, err: err}
	}
}

func (m *Model) fetchReviews(entry models.AlbumEntry) tea.Cmd {
	return func() tea.Msg {
		name := entry.Name
		if name == "" {
			name = entry.AlbumID
		}
		reviews, err := m.reviews.List(map[string]any{"album_id": entry.AlbumID})
		return reviewsFetchedMsg{albumName: name, reviews: reviews, err: err}
	}
}

func (m *Model) renderListBrowse() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.refresh, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.listList.View(), helpView)
}

func (m *Model) renderAlbums() string {
	reviewsKey := key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "reviews"),
	)
	helpKeys := []key.Binding{reviewsKey, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.albumList.View(), helpView)
}

func (m *Model) renderReviews() string {
	helpKeys := []key.Binding{m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.reviewList.View(), helpView)
}
