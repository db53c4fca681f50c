package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/vivax3794/viv-script-blog/internal/buildpipeline"
	"github.com/vivax3794/viv-script-blog/internal/diag"
)

// ProgressModel is a Bubble Tea model listing files with their current stage
// above an overall progress bar.
type ProgressModel struct {
	title   string
	events  <-chan buildpipeline.Event
	spinner spinner.Model
	prog    progress.Model
	items   []fileItem
	index   map[string]int
	width   int
	done    bool
}

type fileItem struct {
	path   string
	status string
	stage  diag.Stage
	final  bool
}

// EventMsg carries one pipeline event into the model.
type EventMsg buildpipeline.Event

// DoneMsg tells the model the event stream is closed.
type DoneMsg struct{}

// NewProgressModel returns a Bubble Tea model that renders pipeline progress
// for files, fed from events until the channel is closed.
func NewProgressModel(title string, files []string, events <-chan buildpipeline.Event) *ProgressModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 76

	items := make([]fileItem, 0, len(files))
	index := make(map[string]int, len(files))
	for i, file := range files {
		items = append(items, fileItem{path: file, status: string(buildpipeline.StatusQueued)})
		index[file] = i
	}
	return &ProgressModel{
		title:   title,
		events:  events,
		spinner: sp,
		prog:    prog,
		items:   items,
		index:   index,
		width:   80,
	}
}

func (m *ProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.listenForEvent())
}

func (m *ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		cmd := m.applyEvent(buildpipeline.Event(msg))
		return m, tea.Batch(cmd, m.listenForEvent())
	case DoneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
			m.prog.Width = msg.Width - 4
		}
		return m, nil
	case progress.FrameMsg:
		pm, cmd := m.prog.Update(msg)
		m.prog = pm.(progress.Model)
		return m, cmd
	}
	return m, nil
}

func (m *ProgressModel) View() string {
	if len(m.items) == 0 {
		return ""
	}
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	header := m.title
	if m.done {
		header = "done: " + header
	} else {
		header = m.spinner.View() + " " + header
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(header))
	b.WriteString("\n\n")

	const statusWidth = 12
	nameWidth := max(m.width-statusWidth-4, 20)
	for _, item := range m.items {
		status := styleStatus(item.status).Render(fmt.Sprintf("%12s", item.status))
		fmt.Fprintf(&b, "  %s %s\n", status, truncate(item.path, nameWidth))
	}

	b.WriteString("\n")
	if m.done {
		b.WriteString(m.prog.ViewAs(1.0))
	} else {
		b.WriteString(m.prog.View())
	}
	b.WriteString("\n")
	return b.String()
}

func (m *ProgressModel) listenForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return DoneMsg{}
		}
		return EventMsg(ev)
	}
}

func (m *ProgressModel) applyEvent(ev buildpipeline.Event) tea.Cmd {
	idx, ok := m.index[ev.File]
	if !ok {
		return nil
	}
	item := &m.items[idx]
	item.stage = ev.Stage
	switch ev.Status {
	case buildpipeline.StatusWorking:
		item.status = stageLabel(ev.Stage)
	case buildpipeline.StatusError:
		item.status = string(buildpipeline.StatusError)
		item.final = true
	case buildpipeline.StatusDone:
		// последний этап сборки или запуска закрывает файл
		if ev.Stage == diag.StageEmit || ev.Stage == diag.StageRun {
			item.status = string(buildpipeline.StatusDone)
			item.final = true
		}
	}
	return m.prog.SetPercent(m.Percent())
}

// Percent is the overall completion in [0, 1].
func (m *ProgressModel) Percent() float64 {
	if len(m.items) == 0 {
		return 0
	}
	total := 0.0
	for _, item := range m.items {
		if item.final {
			total += 1
			continue
		}
		total += progressFromStage(item.stage)
	}
	return total / float64(len(m.items))
}

// Statuses returns the per-file status labels in input order.
func (m *ProgressModel) Statuses() []string {
	out := make([]string, len(m.items))
	for i, item := range m.items {
		out[i] = item.status
	}
	return out
}

func progressFromStage(stage diag.Stage) float64 {
	switch stage {
	case diag.StageTokenize:
		return 0.1
	case diag.StageParse:
		return 0.2
	case diag.StageResolve:
		return 0.35
	case diag.StageLower:
		return 0.5
	case diag.StageEmit:
		return 0.7
	case diag.StageLink:
		return 0.85
	case diag.StageRun:
		return 0.95
	default:
		return 0
	}
}

func stageLabel(stage diag.Stage) string {
	switch stage {
	case diag.StageRead, diag.StageTokenize:
		return "tokenizing"
	case diag.StageParse:
		return "parsing"
	case diag.StageResolve:
		return "resolving"
	case diag.StageLower:
		return "lowering"
	case diag.StageEmit, diag.StageLink:
		return "building"
	case diag.StageRun:
		return "running"
	default:
		return ""
	}
}

func styleStatus(status string) lipgloss.Style {
	switch status {
	case "done":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case "error":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	case "queued":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("7"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 || runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width-3, "...")
}
