// Package teatest drives bubbletea models synchronously in tests.
//
// A Driver calls Update directly and runs returned Cmds inline, feeding
// their messages back until the queue is empty. Cmds that block (cursor
// blinks, ticks) are abandoned after a short wait.
package teatest

import (
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDrainSteps bounds how many Cmds a single Send will execute.
const MaxDrainSteps = 100

// cmdTimeout is long enough for store reads and stubbed advisory calls and
// short enough to skip the ~530ms cursor blink.
const cmdTimeout = 50 * time.Millisecond

// Driver wraps a tea.Model under test.
type Driver struct {
	T     *testing.T
	Model tea.Model

	// Quitting is set once the model has produced tea.Quit. Later input is ignored.
	Quitting bool
}

type Option func(*Driver)

// New creates a Driver. Init is not run until DrainInit.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{T: t, Model: model}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// WithSize delivers a WindowSizeMsg before anything else.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Model, _ = d.Model.Update(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// DrainInit runs the model's Init Cmd to completion.
func (d *Driver) DrainInit() {
	d.T.Helper()
	d.drain(d.Model.Init())
}

// Send delivers msg and drains every Cmd it leads to.
func (d *Driver) Send(msg tea.Msg) {
	d.T.Helper()
	if d.Quitting {
		return
	}
	d.drain(d.update(msg))
}

// Step delivers msg but hands the resulting Cmd back unrun, leaving the
// model in its in-flight state. Resolve delivers the result later.
func (d *Driver) Step(msg tea.Msg) tea.Cmd {
	d.T.Helper()
	return d.update(msg)
}

// Resolve runs a Cmd returned by Step.
func (d *Driver) Resolve(cmd tea.Cmd) {
	d.T.Helper()
	d.drain(cmd)
}

// KeyRune builds the KeyMsg for a single printable character.
func KeyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func (d *Driver) PressKey(r rune) {
	d.T.Helper()
	d.Send(KeyRune(r))
}

func (d *Driver) PressSpace() {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
}

func (d *Driver) PressTab() {
	d.T.Helper()
	d.press(tea.KeyTab)
}

func (d *Driver) PressEnter() {
	d.T.Helper()
	d.press(tea.KeyEnter)
}

func (d *Driver) PressEsc() {
	d.T.Helper()
	d.press(tea.KeyEsc)
}

func (d *Driver) PressCtrlC() {
	d.T.Helper()
	d.press(tea.KeyCtrlC)
}

func (d *Driver) PressUp() {
	d.T.Helper()
	d.press(tea.KeyUp)
}

func (d *Driver) PressDown() {
	d.T.Helper()
	d.press(tea.KeyDown)
}

// Type sends s one rune at a time.
func (d *Driver) Type(s string) {
	d.T.Helper()
	for _, r := range s {
		d.PressKey(r)
	}
}

func (d *Driver) View() string {
	return d.Model.View()
}

func (d *Driver) press(k tea.KeyType) {
	d.T.Helper()
	d.Send(tea.KeyMsg{Type: k})
}

func (d *Driver) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	d.Model, cmd = d.Model.Update(msg)
	return cmd
}

// drain runs queued Cmds in FIFO order. Batches are flattened into the
// queue; a QuitMsg stops delivery.
func (d *Driver) drain(first tea.Cmd) {
	d.T.Helper()
	queue := []tea.Cmd{first}
	for steps := 0; len(queue) > 0; steps++ {
		if steps >= MaxDrainSteps {
			d.T.Logf("teatest: gave up after %d cmds", MaxDrainSteps)
			return
		}
		cmd := queue[0]
		queue = queue[1:]
		if cmd == nil {
			continue
		}

		switch msg := run(cmd).(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			d.Quitting = true
			return
		default:
			if isBlink(msg) {
				continue
			}
			queue = append(queue, d.update(msg))
		}
	}
}

// run executes cmd, returning nil when it blocks past cmdTimeout.
func run(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

// isBlink matches the unexported blink messages from bubbles/cursor.
func isBlink(msg tea.Msg) bool {
	return strings.Contains(strings.ToLower(fmt.Sprintf("%T", msg)), "blink")
}
