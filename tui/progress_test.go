package tui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/user/vcut/render"
	"github.com/user/vcut/transcript"
)

func TestProgressModelAppliesEvents(t *testing.T) {
	m := NewProgressModel("talk.mp4", nil)

	m.Update(eventMsg(render.Event{Kind: render.EventStart, Mode: render.StreamCopy, Total: 2}))
	m.Update(eventMsg(render.Event{Kind: render.EventSegmentDone, Mode: render.StreamCopy, Total: 2, Completed: 1, Segment: transcript.Segment{Start: 1, End: 2}}))

	state := m.State()
	assert.Equal(t, 2, state.Total)
	assert.Equal(t, 1, state.Completed)
	assert.Equal(t, "stream copy", state.Mode)
	assert.Equal(t, "00:00:01.000 -> 00:00:02.000", state.Current)

	m.Update(eventMsg(render.Event{Kind: render.EventConcat, Total: 2, Completed: 2}))
	assert.True(t, m.State().Concatenating)

	m.Update(eventMsg(render.Event{Kind: render.EventDone, Total: 2, Completed: 2, Path: "out.mp4"}))
	assert.True(t, m.State().Done)
	assert.False(t, m.State().Concatenating)

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "talk.mp4")
	assert.Contains(t, view, "100%")
	assert.Contains(t, view, "Done out.mp4")
}

func TestProgressModelQuitsWhenFinished(t *testing.T) {
	m := NewProgressModel("talk.mp4", nil)
	_, cmd := m.Update(finishedMsg{err: errors.New("boom")})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.EqualError(t, m.State().Err, "boom")
}

func TestProgressModelCtrlCCancels(t *testing.T) {
	cancelled := 0
	m := NewProgressModel("talk.mp4", func() { cancelled++ })

	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Equal(t, 1, cancelled)
	assert.Contains(t, ansi.Strip(m.View()), "Stopping...")
}
