package ui

import (
	"context"
	"errors"
	"log"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/citadel/internal/character"
	"github.com/five82/citadel/internal/list"
	"github.com/five82/citadel/internal/prefs"
)

// View represents the current active view.
type View int

const (
	ViewList View = iota
	ViewDetail
	ViewActivity
)

// ListStore is the part of *list.Store the model drives.
type ListStore interface {
	Dispatch(intent list.Intent)
	Subscribe() (<-chan list.State, func())
}

// DetailFetcher loads the extra fields shown on the detail view.
type DetailFetcher interface {
	FetchCharacter(ctx context.Context, id int) (character.Detail, error)
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Store      ListStore
	Details    DetailFetcher // nil shows the list record only
	APIBase    string
	ThemeName  string
	DetailPane bool
	PrefsPath  string
	LogPath    string // shown by the activity view; empty disables it
}

// Model is the root application state for Bubble Tea.
type Model struct {
	ctx       context.Context
	store     ListStore
	details   DetailFetcher
	apiHost   string
	prefsPath string
	logPath   string
	keys      keyMap

	updates     <-chan list.State
	unsubscribe func()

	// UI state
	theme       Theme
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool
	detailPane  bool

	// Data state
	state list.State

	// Selection is tracked by ID so it survives page appends and mode changes.
	selected   int
	selectedID int

	search  textinput.Model
	spinner spinner.Model

	detail         character.Detail
	detailLoading  bool
	detailErr      string
	detailViewport viewport.Model

	activityLines    []string
	activityErr      string
	activityViewport viewport.Model
}

// New creates a new Bubble Tea model and subscribes it to the store.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = DefaultThemeName
	}

	search := textinput.New()
	search.Prompt = "/ "
	search.Placeholder = "Search characters by name"
	search.CharLimit = 64

	m := Model{
		ctx:            ctx,
		store:          opts.Store,
		details:        opts.Details,
		apiHost:        hostOf(opts.APIBase),
		prefsPath:      opts.PrefsPath,
		logPath:        opts.LogPath,
		keys:           DefaultKeyMap(),
		theme:          GetTheme(themeName),
		currentView:    ViewList,
		detailPane:     opts.DetailPane,
		state:          list.NewState(),
		search:         search,
		spinner:        spinner.New(spinner.WithSpinner(spinner.Dot)),
		detailViewport: viewport.New(0, 0),

		activityViewport: viewport.New(0, 0),
	}
	if m.store != nil {
		m.updates, m.unsubscribe = m.store.Subscribe()
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.spinner.Tick}
	if m.updates != nil {
		cmds = append(cmds, waitForStateCmd(m.updates))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.search.Width = max(msg.Width-6, 10)
		m.resizeViewports()
		return m, nil

	case stateMsg:
		m.state = list.State(msg)
		m.syncSelection()
		m.maybeLoadMore()
		return m, waitForStateCmd(m.updates)

	case storeClosedMsg:
		return m, tea.Quit

	case detailMsg:
		return m.handleDetail(msg), nil

	case activityMsg:
		return m.handleActivity(msg), nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

// handleKey processes keyboard input. The search input, when focused,
// swallows everything but its own control keys.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	if m.search.Focused() {
		return m.handleSearchKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.CycleTheme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.savePrefs()
		m.refreshDetailContent()
		m.refreshActivityContent()
		return m, nil

	case key.Matches(msg, m.keys.ToggleDetail):
		m.detailPane = !m.detailPane
		m.savePrefs()
		return m, nil
	}

	switch m.currentView {
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewActivity:
		return m.handleActivityKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

// handleSearchKey feeds the focused search input and dispatches a Search
// intent whenever its value changes.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Clear):
		m.search.Blur()
		m.search.SetValue("")
		m.dispatch(list.ClearSearch{})
		return m, nil

	case key.Matches(msg, m.keys.Confirm):
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if after := m.search.Value(); after != before {
		m.dispatch(list.Search{Query: after})
	}
	return m, cmd
}

// handleListKey processes keyboard input for the list view.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Clear):
		if m.state.Mode == list.ModeSearch || m.search.Value() != "" {
			m.search.SetValue("")
			m.dispatch(list.ClearSearch{})
		}
		return m, nil

	case key.Matches(msg, m.keys.Retry):
		switch {
		case m.state.Error != "":
			m.dispatch(list.LoadInitial{})
		case m.state.PageError != "":
			m.dispatch(list.RetryLastPage{})
		}
		return m, nil

	case key.Matches(msg, m.keys.Open):
		return m.openDetail()

	case key.Matches(msg, m.keys.Activity):
		return m.openActivity()
	}

	count := len(m.state.Visible())
	if count == 0 {
		return m, nil
	}
	page := max(m.listRows(), 1)

	switch {
	case key.Matches(msg, m.keys.Down):
		m.moveTo(m.selected + 1)
	case key.Matches(msg, m.keys.Up):
		m.moveTo(m.selected - 1)
	case key.Matches(msg, m.keys.Top):
		m.moveTo(0)
	case key.Matches(msg, m.keys.Bottom):
		m.moveTo(count - 1)
	case key.Matches(msg, m.keys.PageDown):
		m.moveTo(m.selected + page)
	case key.Matches(msg, m.keys.PageUp):
		m.moveTo(m.selected - page)
	default:
		return m, nil
	}
	m.maybeLoadMore()
	return m, nil
}

// moveTo selects index, clamped to the visible records.
func (m *Model) moveTo(index int) {
	items := m.state.Visible()
	if len(items) == 0 {
		m.selected, m.selectedID = 0, 0
		return
	}
	index = min(max(index, 0), len(items)-1)
	m.selected = index
	m.selectedID = items[index].ID
}

// syncSelection re-finds the selected record after a new state arrives.
// When it is gone the row index is kept, clamped to the new length.
func (m *Model) syncSelection() {
	items := m.state.Visible()
	if m.selectedID != 0 {
		for i, item := range items {
			if item.ID == m.selectedID {
				m.selected = i
				return
			}
		}
	}
	m.moveTo(m.selected)
}

// maybeLoadMore requests the next page once the selection nears the end.
func (m *Model) maybeLoadMore() {
	if m.currentView != ViewList {
		return
	}
	if m.state.ShouldLoadMore(m.selected) {
		m.dispatch(list.LoadNextPage{})
	}
}

func (m *Model) selectedCharacter() (character.Character, bool) {
	items := m.state.Visible()
	if m.selected < 0 || m.selected >= len(items) {
		return character.Character{}, false
	}
	return items[m.selected], true
}

func (m Model) dispatch(intent list.Intent) {
	if m.store != nil {
		m.store.Dispatch(intent)
	}
}

func (m Model) savePrefs() {
	if m.prefsPath == "" {
		return
	}
	p := prefs.Prefs{Theme: m.theme.Name, DetailPane: m.detailPane}
	if err := prefs.Save(m.prefsPath, p); err != nil {
		log.Printf("ui: save prefs: %v", err)
	}
}

// Close releases the store subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Messages

type stateMsg list.State

type storeClosedMsg struct{}

type detailMsg struct {
	id     int
	detail character.Detail
	err    error
}

// Commands

func waitForStateCmd(updates <-chan list.State) tea.Cmd {
	return func() tea.Msg {
		s, ok := <-updates
		if !ok {
			return storeClosedMsg{}
		}
		return stateMsg(s)
	}
}

func fetchDetailCmd(ctx context.Context, details DetailFetcher, id int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, DetailFetchTimeout)
		defer cancel()
		d, err := details.FetchCharacter(ctx, id)
		return detailMsg{id: id, detail: d, err: err}
	}
}

// Run starts the Bubble Tea program and blocks until the user quits or the
// context ends.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()

	programOpts := []tea.ProgramOption{tea.WithAltScreen()}
	if opts.Context != nil {
		programOpts = append(programOpts, tea.WithContext(opts.Context))
	}
	p := tea.NewProgram(m, programOpts...)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	return nil
}
