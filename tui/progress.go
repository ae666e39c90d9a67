// Package tui shows live render progress in the terminal.
package tui

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/user/vcut/render"
	"github.com/user/vcut/tui/components"
	"github.com/user/vcut/tui/styles"
)

const defaultWidth = 60

// eventMsg carries a pipeline event into the program.
type eventMsg render.Event

// finishedMsg is sent once the work function returns.
type finishedMsg struct {
	err error
}

// ProgressModel is the Bubbletea model for a single render.
type ProgressModel struct {
	title   string
	spinner spinner.Model
	state   components.RenderProgressState
	width   int
	cancel  context.CancelFunc
	// interrupted is set when the user pressed ctrl+c
	interrupted bool
	finished    bool
}

// NewProgressModel returns a model titled with the source file name. cancel
// is called when the user interrupts.
func NewProgressModel(title string, cancel context.CancelFunc) *ProgressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(styles.Info)
	return &ProgressModel{title: title, spinner: s, width: defaultWidth, cancel: cancel}
}

// State returns the current progress state.
func (m *ProgressModel) State() components.RenderProgressState { return m.state }

// Init starts the spinner.
func (m *ProgressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update applies pipeline events and key presses.
func (m *ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = min(msg.Width, 80)
		return m, nil

	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC && !m.interrupted {
			m.interrupted = true
			if m.cancel != nil {
				m.cancel()
			}
		}
		return m, nil

	case eventMsg:
		m.apply(render.Event(msg))
		return m, nil

	case finishedMsg:
		m.finished = true
		if msg.err != nil && m.state.Err == nil {
			m.state.Err = msg.err
		}
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *ProgressModel) apply(e render.Event) {
	m.state.Total = e.Total
	m.state.Mode = e.Mode.String()
	switch e.Kind {
	case render.EventSegmentDone:
		m.state.Completed = e.Completed
		m.state.Current = e.Segment.String()
	case render.EventConcat:
		m.state.Completed = e.Completed
		m.state.Concatenating = true
	case render.EventDone:
		m.state.Concatenating = false
		m.state.Done = true
		m.state.Output = e.Path
	case render.EventFailed:
		m.state.Concatenating = false
		m.state.Err = e.Err
	}
}

// View renders the progress box.
func (m *ProgressModel) View() string {
	out := styles.SecondaryText.Render(m.title) + "\n" +
		components.RenderProgress(m.state, m.spinner.View(), m.width) + "\n"
	if m.interrupted && !m.finished {
		out += styles.SecondaryText.Render("Stopping...") + "\n"
	}
	return out
}

// Reporter forwards pipeline events to a running program.
type Reporter struct {
	program *tea.Program
}

// Report implements render.Reporter.
func (r *Reporter) Report(e render.Event) {
	r.program.Send(eventMsg(e))
}

// Run shows a progress display on stderr while work runs, passing work a
// Reporter bound to the display. It returns work's error.
func Run(ctx context.Context, title string, work func(ctx context.Context, rep render.Reporter) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p := tea.NewProgram(NewProgressModel(title, cancel), tea.WithOutput(os.Stderr))
	rep := &Reporter{program: p}

	done := make(chan error, 1)
	go func() {
		err := work(ctx, rep)
		p.Send(finishedMsg{err: err})
		done <- err
	}()

	if _, err := p.Run(); err != nil {
		cancel()
		<-done
		return err
	}
	return <-done
}
