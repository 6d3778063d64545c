// Package tui is a Bubble Tea browser over a task list. Every action goes
// through the list, so each change is on disk before the next key press.
package tui

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/idilsaglam/tareas/internal/model"
	"github.com/idilsaglam/tareas/internal/tasklist"
	"github.com/idilsaglam/tareas/internal/ui"
)

// item adapts a task and its list position to list.Item.
type item struct {
	index int
	task  model.Task
}

func (i item) FilterValue() string { return i.task.Description }

type keyMap struct {
	complete key.Binding
	remove   key.Binding
	add      key.Binding
	quit     key.Binding
}

var keys = keyMap{
	complete: key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "complete")),
	remove:   key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
	add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
	quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

// delegate renders one task per line.
type delegate struct {
	styles *ui.Styles
}

func (d delegate) Height() int                             { return 1 }
func (d delegate) Spacing() int                            { return 0 }
func (d delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d delegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, ok := li.(item)
	if !ok {
		return
	}
	box := d.styles.Muted.Render(d.styles.Theme.BoxUnchecked)
	text := it.task.Description
	if it.task.Completed {
		box = d.styles.Success.Render(d.styles.Theme.BoxChecked)
		text = d.styles.Done.Render(text)
	}
	prefix := "  "
	if index == m.Index() {
		prefix = d.styles.Selected.Render("> ")
	}
	fmt.Fprintf(w, "%s%s %s %s", prefix, d.styles.Muted.Render(fmt.Sprintf("%2d.", it.index)), box, text)
}

// Model is the Bubble Tea model for the browser.
type Model struct {
	tl     *tasklist.TaskList
	styles *ui.Styles

	list  list.Model
	input textinput.Model

	adding bool
	status string
	err    error
}

// NewModel builds a browser over tl.
func NewModel(tl *tasklist.TaskList, styles *ui.Styles) Model {
	l := list.New(nil, delegate{styles: styles}, 80, 20)
	l.SetShowHelp(true)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("tarea", "tareas")
	l.Styles.Title = styles.Title
	l.Styles.HelpStyle = styles.Help
	l.FilterInput.Prompt = "/ "
	extra := func() []key.Binding { return []key.Binding{keys.complete, keys.remove, keys.add} }
	l.AdditionalShortHelpKeys = extra
	l.AdditionalFullHelpKeys = extra

	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Nueva tarea..."
	ti.CharLimit = 0

	m := Model{tl: tl, styles: styles, list: l, input: ti}
	m.refresh()
	return m
}

// Err returns the persistence error that ended the program, if any.
func (m Model) Err() error { return m.err }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.list.SetSize(ws.Width-4, ws.Height-6)
		return m, nil
	}
	if m.adding {
		return m.updateAdding(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok || m.list.FilterState() == list.Filtering ||
		(m.list.FilterState() == list.FilterApplied && km.Type == tea.KeyEsc) {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(km, keys.quit):
		return m, tea.Quit
	case key.Matches(km, keys.add):
		m.adding = true
		m.status = ""
		m.input.SetValue("")
		return m, m.input.Focus()
	case key.Matches(km, keys.complete):
		if it, ok := m.list.SelectedItem().(item); ok {
			return m.apply(m.tl.MarkCompleted(it.index), "completada", it.index)
		}
		return m, nil
	case key.Matches(km, keys.remove):
		if it, ok := m.list.SelectedItem().(item); ok {
			return m.apply(m.tl.Remove(it.index), "eliminada", it.index)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateAdding(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch km.Type {
		case tea.KeyEnter:
			desc := m.input.Value()
			m.adding = false
			m.input.Blur()
			m.input.SetValue("")
			return m.apply(m.tl.Add(desc), "agregada", m.tl.Len())
		case tea.KeyEsc:
			m.adding = false
			m.input.Blur()
			m.input.SetValue("")
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// apply reports the outcome of a list operation. Unknown positions are
// shown in the status line; anything else is a persistence failure and
// ends the program.
func (m Model) apply(err error, verb string, index int) (tea.Model, tea.Cmd) {
	if err != nil {
		if errors.Is(err, tasklist.ErrNoTask) {
			m.status = m.styles.Error.Render(err.Error())
			return m, nil
		}
		m.err = err
		return m, tea.Quit
	}
	m.status = m.styles.Success.Render(fmt.Sprintf("%s tarea %s", m.styles.Theme.SymDone, verb))
	m.refresh()
	if index >= len(m.list.Items()) {
		index = len(m.list.Items()) - 1
	}
	if index >= 0 {
		m.list.Select(index)
	}
	return m, nil
}

// refresh rebuilds list items and header counts from the task list.
func (m *Model) refresh() {
	tasks := m.tl.Tasks()
	items := make([]list.Item, 0, len(tasks))
	for i, t := range tasks {
		items = append(items, item{index: i, task: t})
	}
	m.list.SetItems(items)

	done, pending := m.tl.Stats()
	m.list.Title = fmt.Sprintf("Tareas   %s %d  %s %d  %s %d",
		m.styles.Theme.SymDone, done,
		m.styles.Theme.SymPending, pending,
		"Total", len(tasks),
	)
}

func (m Model) View() string {
	content := m.list.View()
	if m.adding {
		content += "\n" + m.styles.Box.Render("Agregar tarea\n"+m.input.View())
	}
	if m.status != "" {
		content += "\n" + m.status
	}
	return m.styles.Box.Render(content)
}

// Run starts the browser on the alternate screen, reading keys from in and
// drawing to out.
func Run(tl *tasklist.TaskList, styles *ui.Styles, in io.Reader, out io.Writer) error {
	p := tea.NewProgram(NewModel(tl, styles),
		tea.WithAltScreen(),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
