package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/zentask/internal/cli/formatter"
	"github.com/alexanderramin/zentask/internal/domain"
	"github.com/alexanderramin/zentask/internal/view"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

const boardProgressWidth = 20

type boardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextTab   key.Binding
	Pending   key.Binding
	Completed key.Binding
	All       key.Binding
	Search    key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	Priority  key.Binding
	Breakdown key.Binding
	Advice    key.Binding
	Quit      key.Binding
}

func defaultBoardKeys() boardKeyMap {
	return boardKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextTab:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next tab")),
		Pending:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1/2/3", "tabs")),
		Completed: key.NewBinding(key.WithKeys("2")),
		All:       key.NewBinding(key.WithKeys("3")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "toggle")),
		Delete:    key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete")),
		Priority:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "suggest priority")),
		Breakdown: key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "breakdown")),
		Advice:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "advice")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pending, k.Search, k.Toggle, k.Delete, k.Priority, k.Breakdown, k.Advice, k.Quit}
}

// Results of advisory calls, delivered back to Update.
type prioritySuggestedMsg struct {
	taskID   string
	priority domain.Priority
}

type breakdownDoneMsg struct {
	taskID   string
	subTasks []domain.SubTask
}

type adviceLoadedMsg struct {
	advice string
}

// boardModel is the interactive task board. Rows are re-derived from the
// store after every change; the model only keeps presentation state.
type boardModel struct {
	app  *App
	ctx  context.Context
	keys boardKeyMap

	tab       view.Tab
	search    textinput.Model
	searching bool
	rows      []domain.Task
	stats     view.Stats
	cursor    int

	// hints holds AI priority suggestions by task id. They are advisory only.
	hints  map[string]domain.Priority
	advice string
	status string

	suggestingPriority bool
	breakingDown       bool
	loadingAdvice      bool

	width, height int
	quitting      bool
}

func newBoardModel(ctx context.Context, app *App) boardModel {
	ti := textinput.New()
	ti.Prompt = "/ "
	ti.Placeholder = "search title or description"
	ti.CharLimit = 120

	m := boardModel{
		app:    app,
		ctx:    ctx,
		keys:   defaultBoardKeys(),
		tab:    view.DefaultTab,
		search: ti,
		hints:  make(map[string]domain.Priority),
	}
	m.refresh()
	return m
}

func (m *boardModel) refresh() {
	all := m.app.Store.Snapshot()
	m.stats = view.Compute(all)
	m.rows = view.Filter(all, m.tab, m.search.Value())
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m boardModel) selected() (domain.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return domain.Task{}, false
	}
	return m.rows[m.cursor], true
}

func (m *boardModel) setTab(tab view.Tab) {
	if m.tab != tab {
		m.tab = tab
		m.cursor = 0
	}
	m.refresh()
}

func (m *boardModel) reportErr(op string, err error) {
	if err != nil {
		m.status = formatter.StyleRed.Render(fmt.Sprintf("%s failed: %v", op, err))
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m boardModel) Init() tea.Cmd {
	return nil
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case prioritySuggestedMsg:
		m.suggestingPriority = false
		m.hints[msg.taskID] = msg.priority
		m.status = ""
		return m, nil

	case breakdownDoneMsg:
		m.breakingDown = false
		applied, err := m.app.Store.ApplyBreakdown(m.ctx, msg.taskID, msg.subTasks)
		switch {
		case err != nil:
			m.reportErr("breakdown", err)
		case applied:
			m.status = formatter.StyleGreen.Render(fmt.Sprintf("Added %d sub-tasks", len(msg.subTasks)))
		case len(msg.subTasks) == 0:
			m.status = formatter.Dim("No sub-tasks were suggested.")
		default:
			m.status = formatter.Dim("Task already has sub-tasks; suggestion discarded.")
		}
		m.refresh()
		return m, nil

	case adviceLoadedMsg:
		m.loadingAdvice = false
		m.advice = msg.advice
		m.status = ""
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			return m, tea.Quit
		}
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.handleKey(msg)
	}

	if m.searching {
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m boardModel) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.searching = false
		m.search.Blur()
		return m, nil
	case tea.KeyEsc:
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.cursor = 0
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.cursor = 0
	m.refresh()
	return m, cmd
}

func (m boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}

	case key.Matches(msg, m.keys.NextTab):
		next := view.Tabs[0]
		for i, tab := range view.Tabs {
			if tab == m.tab {
				next = view.Tabs[(i+1)%len(view.Tabs)]
			}
		}
		m.setTab(next)
	case key.Matches(msg, m.keys.Pending):
		m.setTab(view.TabPending)
	case key.Matches(msg, m.keys.Completed):
		m.setTab(view.TabCompleted)
	case key.Matches(msg, m.keys.All):
		m.setTab(view.TabAll)

	case key.Matches(msg, m.keys.Search):
		m.searching = true
		return m, m.search.Focus()

	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			_, err := m.app.Store.ToggleCompleted(m.ctx, t.ID)
			m.reportErr("toggle", err)
			m.refresh()
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			_, err := m.app.Store.Delete(m.ctx, t.ID)
			m.reportErr("delete", err)
			delete(m.hints, t.ID)
			m.refresh()
		}

	case key.Matches(msg, m.keys.Priority):
		return m.suggestPriority()
	case key.Matches(msg, m.keys.Breakdown):
		return m.breakdown()
	case key.Matches(msg, m.keys.Advice):
		return m.loadAdvice()
	}
	return m, nil
}

func (m boardModel) suggestPriority() (tea.Model, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	if m.suggestingPriority {
		m.status = formatter.Dim("A priority suggestion is already running.")
		return m, nil
	}

	m.suggestingPriority = true
	m.status = formatter.Dim("Suggesting priority...")
	adv, ctx := m.app.Advisor, m.ctx
	return m, func() tea.Msg {
		return prioritySuggestedMsg{taskID: t.ID, priority: adv.SuggestPriority(ctx, t.Title, t.Description)}
	}
}

func (m boardModel) breakdown() (tea.Model, tea.Cmd) {
	t, ok := m.selected()
	if !ok {
		return m, nil
	}
	if len(t.SubTasks) > 0 {
		m.status = formatter.Dim("Task already has sub-tasks.")
		return m, nil
	}
	if m.breakingDown {
		m.status = formatter.Dim("A breakdown is already running.")
		return m, nil
	}

	m.breakingDown = true
	m.status = formatter.Dim("Breaking down task...")
	adv, ctx := m.app.Advisor, m.ctx
	return m, func() tea.Msg {
		return breakdownDoneMsg{taskID: t.ID, subTasks: adv.BreakdownTask(ctx, t.Title)}
	}
}

func (m boardModel) loadAdvice() (tea.Model, tea.Cmd) {
	if m.loadingAdvice {
		m.status = formatter.Dim("Advice is already on its way.")
		return m, nil
	}

	m.loadingAdvice = true
	m.status = formatter.Dim("Thinking...")
	adv, ctx, tasks := m.app.Advisor, m.ctx, m.app.Store.Snapshot()
	return m, func() tea.Msg {
		return adviceLoadedMsg{advice: adv.GetAdvice(ctx, tasks)}
	}
}

// ── rendering ────────────────────────────────────────────────────────────────

func (m boardModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(fmt.Sprintf(" %s  %s\n", formatter.StyleHeader.Render("ZENTASK"),
		formatter.RenderProgress(m.stats.Progress, boardProgressWidth)))
	b.WriteString(" " + formatter.FormatTabs(m.tab, m.stats) + "\n")
	if m.searching || m.search.Value() != "" {
		b.WriteString(" " + m.search.View() + "\n")
	}
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString("   " + formatter.Dim("No tasks here.") + "\n")
	}
	for i, t := range m.rows {
		b.WriteString(m.renderRow(i, t))
	}

	if m.status != "" {
		b.WriteString("\n " + m.status + "\n")
	}
	if m.advice != "" {
		b.WriteString("\n" + formatter.FormatAdvice(m.advice) + "\n")
	}

	hints := make([]string, 0, len(m.keys.ShortHelp()))
	for _, k := range m.keys.ShortHelp() {
		hints = append(hints, formatter.Dim(k.Help().Key+": "+k.Help().Desc))
	}
	b.WriteString("\n " + strings.Join(hints, formatter.Dim(" · ")) + "\n")

	return b.String()
}

func (m boardModel) renderRow(i int, t domain.Task) string {
	pointer := "  "
	title := formatter.StyleFg.Render(t.Title)
	if i == m.cursor {
		pointer = formatter.StyleHeader.Render("› ")
		title = formatter.Bold(t.Title)
	}
	if t.Completed {
		title = formatter.StyleDone.Render(t.Title)
	}

	line := fmt.Sprintf(" %s%s %s  %s  %s", pointer, formatter.Checkbox(t.Completed), title,
		formatter.PriorityPill(t.Priority), formatter.CategoryBadge(t.Category))
	if _, total := t.SubTaskProgress(); total > 0 {
		line += "  " + formatter.SubTaskSummary(t)
	}
	if hint, ok := m.hints[t.ID]; ok {
		line += "  " + formatter.StylePurple.Render("✨ AI suggests "+strings.ToUpper(string(hint)))
	}

	var b strings.Builder
	b.WriteString(line + "\n")
	if i == m.cursor && t.Description != "" {
		b.WriteString("       " + formatter.Dim(t.Description) + "\n")
	}
	if i == m.cursor && len(t.SubTasks) > 0 {
		b.WriteString(formatter.FormatSubTasks(t.SubTasks, "       "))
	}
	return b.String()
}

func runBoard(cmd *cobra.Command, app *App) error {
	p := tea.NewProgram(newBoardModel(commandContext(cmd), app), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newBoardCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the interactive task board",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, app)
		},
	}
}
