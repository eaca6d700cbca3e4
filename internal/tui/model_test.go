package tui

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/sampler/internal/event"
	"github.com/verte-zerg/sampler/internal/report"
	"github.com/verte-zerg/sampler/internal/sample"
	"github.com/verte-zerg/sampler/internal/session"
	"github.com/verte-zerg/sampler/internal/stats"
)

func newTestModel(t *testing.T) (*Model, *session.Session) {
	t.Helper()
	store := event.New(filepath.Join(t.TempDir(), "sampler.db"))
	require.NoError(t, store.Initialize(context.Background()))
	sess := session.New(store, sample.New())
	return NewModel(sess, 500, stats.DefaultBins), sess
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m *Model, msg tea.Msg) *Model {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(*Model)
	require.True(t, ok)
	return model
}

func TestViewBeforeGenerate(t *testing.T) {
	m, _ := newTestModel(t)
	view := m.View()
	assert.Contains(t, view, "sampler")
	assert.Contains(t, view, "sample size: 500")
	assert.Contains(t, view, "No samples yet.")
}

func TestGenerateKeyDrawsSample(t *testing.T) {
	m, sess := newTestModel(t)
	m = update(t, m, key("g"))

	values, n := sess.Sample()
	assert.Len(t, values, 500)
	assert.Equal(t, 500, n)
	assert.Contains(t, m.View(), "Histogram of 500 draws")
}

func TestCountInputFlow(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, key("n"))
	assert.True(t, m.inputMode)

	m.countInput.SetValue("250")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.inputMode)
	assert.Equal(t, 250, m.count)
	assert.Contains(t, m.View(), "sample size: 250")
}

func TestCountInputRejectsOutOfRange(t *testing.T) {
	m, _ := newTestModel(t)
	m = update(t, m, key("n"))
	m.countInput.SetValue("99999")
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.True(t, m.inputMode)
	assert.Equal(t, 500, m.count)
	assert.Contains(t, m.View(), "invalid sample size")
}

func TestReportModalFlow(t *testing.T) {
	m, sess := newTestModel(t)
	m = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
	m = update(t, m, key("r"))
	assert.True(t, m.reportOpen)

	require.Eventually(t, func() bool {
		return sess.ReportState().Status == report.StatusLoaded
	}, 5*time.Second, 10*time.Millisecond)

	assert.Contains(t, m.View(), "Total events")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.reportOpen)
	assert.Equal(t, report.StatusIdle, sess.ReportState().Status)
}

func TestCloseWhileLoadingCancels(t *testing.T) {
	m, sess := newTestModel(t)
	m = update(t, m, key("r"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.reportOpen)
	status := sess.ReportState().Status
	assert.Contains(t, []report.Status{report.StatusCancelled, report.StatusIdle}, status)
}

func TestQuitKey(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}
