// Package tui provides the Bubble Tea sampling interface.
package tui

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/sampler/internal/event"
	"github.com/verte-zerg/sampler/internal/report"
	"github.com/verte-zerg/sampler/internal/sample"
	"github.com/verte-zerg/sampler/internal/session"
	"github.com/verte-zerg/sampler/internal/stats"
)

const reportPollInterval = 100 * time.Millisecond

var (
	titleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	countStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	modalStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

type reportPollMsg struct{}

// Model implements the Bubble Tea sampling UI.
type Model struct {
	session *session.Session
	bins    int

	count  int
	width  int
	height int

	inputMode  bool
	countInput textinput.Model

	reportOpen bool
	spin       spinner.Model

	errMsg string
}

// NewModel constructs the sampling TUI model.
func NewModel(sess *session.Session, count, bins int) *Model {
	input := textinput.New()
	input.Prompt = "n: "
	input.CharLimit = 5
	input.Placeholder = strconv.Itoa(count)

	spin := spinner.New()
	spin.Spinner = spinner.Dot
	spin.Style = countStyle

	return &Model{
		session:    sess,
		bins:       bins,
		count:      count,
		countInput: input,
		spin:       spin,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case reportPollMsg:
		return m.pollReport()
	case spinner.TickMsg:
		if !m.reportOpen {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.inputMode {
		return m.updateCountInput(msg)
	}
	if m.reportOpen {
		switch msg.String() {
		case "esc", "r":
			m.session.CloseReport()
			m.reportOpen = false
			return m, nil
		case "q":
			return m, tea.Quit
		default:
			return m, nil
		}
	}
	switch msg.String() {
	case "q", "esc":
		return m, tea.Quit
	case "g", "enter":
		m.generate()
		return m, nil
	case "n":
		return m.startCountInput()
	case "r":
		return m.openReport()
	default:
		return m, nil
	}
}

func (m *Model) generate() {
	if err := m.session.Generate(context.Background(), m.count); err != nil {
		m.errMsg = fmt.Sprintf("invalid sample size: use %d to %d", sample.MinCount, sample.MaxCount)
		return
	}
	m.errMsg = ""
}

func (m *Model) startCountInput() (tea.Model, tea.Cmd) {
	m.inputMode = true
	m.countInput.SetValue(strconv.Itoa(m.count))
	return m, m.countInput.Focus()
}

func (m *Model) updateCountInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.inputMode = false
		m.countInput.Blur()
		return m, nil
	case tea.KeyEnter:
		value := strings.TrimSpace(m.countInput.Value())
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed < sample.MinCount || parsed > sample.MaxCount {
			m.errMsg = fmt.Sprintf("invalid sample size: use %d to %d", sample.MinCount, sample.MaxCount)
			return m, nil
		}
		m.count = parsed
		m.errMsg = ""
		m.inputMode = false
		m.countInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.countInput, cmd = m.countInput.Update(msg)
	return m, cmd
}

func (m *Model) openReport() (tea.Model, tea.Cmd) {
	m.reportOpen = true
	m.session.OpenReport(context.Background())
	return m, tea.Batch(m.spin.Tick, pollReportCmd())
}

func (m *Model) pollReport() (tea.Model, tea.Cmd) {
	if !m.reportOpen {
		return m, nil
	}
	if m.session.ReportState().Status == report.StatusLoading {
		return m, pollReportCmd()
	}
	return m, nil
}

func pollReportCmd() tea.Cmd {
	return tea.Tick(reportPollInterval, func(time.Time) tea.Msg {
		return reportPollMsg{}
	})
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.reportOpen && m.width > 0 && m.height > 0 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderReportModal())
	}

	lines := []string{
		titleStyle.Render("sampler"),
		countStyle.Render(fmt.Sprintf("sample size: %d", m.count)),
		"",
		m.renderHistogram(),
		"",
	}
	if m.inputMode {
		lines = append(lines, m.countInput.View())
	}
	if m.errMsg != "" {
		lines = append(lines, errorStyle.Render(m.errMsg))
	}
	lines = append(lines, m.renderFooter())
	return strings.Join(lines, "\n")
}

func (m *Model) renderHistogram() string {
	h := m.session.Histogram(m.bins)
	_, n := m.session.Sample()

	width := m.width
	if width <= 0 {
		width = 80
	}
	height := 0
	if m.height > 8 {
		height = m.height - 8
	}
	var buf bytes.Buffer
	if err := stats.RenderHistogram(&buf, stats.Title(n), h, width, height); err != nil {
		return errorStyle.Render("failed to render histogram")
	}
	return strings.TrimRight(buf.String(), "\n")
}

func (m *Model) renderReportModal() string {
	state := m.session.ReportState()
	var body string
	switch state.Status {
	case report.StatusLoading:
		body = m.spin.View() + " Loading report..."
	case report.StatusLoaded:
		body = renderReport(state.Report)
	case report.StatusError:
		body = errorStyle.Render(state.Err)
	default:
		body = mutedStyle.Render("Report closed.")
	}
	content := titleStyle.Render("Usage report") + "\n\n" + body + "\n\n" +
		footerStyle.Render("esc: close")
	return modalStyle.Render(content)
}

func renderReport(result *event.AggregateReport) string {
	if result == nil {
		return mutedStyle.Render("No data.")
	}
	lines := []string{fmt.Sprintf("Total events: %d", result.Total)}
	if len(result.ByType) == 0 {
		lines = append(lines, mutedStyle.Render("No events recorded yet."))
		return strings.Join(lines, "\n")
	}
	types := make([]string, 0, len(result.ByType))
	for eventType := range result.ByType {
		types = append(types, eventType)
	}
	sort.Strings(types)
	for _, eventType := range types {
		lines = append(lines, fmt.Sprintf("  %-16s %d", eventType, result.ByType[eventType]))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderFooter() string {
	return footerStyle.Render("g: generate  n: sample size  r: report  q: quit")
}
