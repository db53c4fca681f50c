package ui_test

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vivax3794/viv-script-blog/internal/buildpipeline"
	"github.com/vivax3794/viv-script-blog/internal/diag"
	"github.com/vivax3794/viv-script-blog/internal/ui"
)

func send(t *testing.T, m *ui.ProgressModel, msg tea.Msg) {
	t.Helper()
	if _, cmd := m.Update(msg); cmd == nil {
		if _, ok := msg.(ui.EventMsg); ok {
			t.Fatal("event did not re-arm the listener")
		}
	}
}

func TestProgressModelTracksStages(t *testing.T) {
	events := make(chan buildpipeline.Event)
	m := ui.NewProgressModel("test", []string{"a.viv", "b.viv"}, events)

	if got := m.Statuses(); got[0] != "queued" || got[1] != "queued" {
		t.Fatalf("initial statuses %v", got)
	}

	send(t, m, ui.EventMsg{File: "a.viv", Stage: diag.StageParse, Status: buildpipeline.StatusWorking})
	if got := m.Statuses()[0]; got != "parsing" {
		t.Fatalf("a.viv status %q", got)
	}
	// intermediate stages finishing do not close the file
	send(t, m, ui.EventMsg{File: "a.viv", Stage: diag.StageParse, Status: buildpipeline.StatusDone})
	if got := m.Statuses()[0]; got != "parsing" {
		t.Fatalf("a.viv status after parse done %q", got)
	}
	send(t, m, ui.EventMsg{File: "a.viv", Stage: diag.StageRun, Status: buildpipeline.StatusDone})
	send(t, m, ui.EventMsg{File: "b.viv", Stage: diag.StageResolve, Status: buildpipeline.StatusError, Err: errors.New("boom")})
	send(t, m, ui.EventMsg{File: "unknown.viv", Stage: diag.StageRun, Status: buildpipeline.StatusDone})

	got := m.Statuses()
	if got[0] != "done" || got[1] != "error" {
		t.Fatalf("final statuses %v", got)
	}
	if m.Percent() != 1 {
		t.Fatalf("percent %v", m.Percent())
	}

	send(t, m, ui.DoneMsg{})
	view := m.View()
	if !strings.Contains(view, "done: test") || !strings.Contains(view, "a.viv") {
		t.Fatalf("view:\n%s", view)
	}
}

func TestProgressModelPartialPercent(t *testing.T) {
	m := ui.NewProgressModel("build", []string{"main.viv"}, nil)
	send(t, m, ui.EventMsg{File: "main.viv", Stage: diag.StageLower, Status: buildpipeline.StatusWorking})
	if p := m.Percent(); p <= 0 || p >= 1 {
		t.Fatalf("percent %v", p)
	}
}

func TestProgressModelTruncatesNames(t *testing.T) {
	long := strings.Repeat("d/", 60) + "main.viv"
	m := ui.NewProgressModel("build", []string{long}, nil)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 10})
	view := m.View()
	if strings.Contains(view, long) || !strings.Contains(view, "...") {
		t.Fatalf("name not truncated:\n%s", view)
	}
}

func TestProgressModelEmpty(t *testing.T) {
	if v := ui.NewProgressModel("x", nil, nil).View(); v != "" {
		t.Fatalf("empty model rendered %q", v)
	}
}
