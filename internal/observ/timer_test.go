package observ_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/vivax3794/viv-script-blog/internal/observ"
)

func TestMeasureRecordsFailures(t *testing.T) {
	tm := observ.NewTimer()
	if err := tm.Measure("parse", func() error { return nil }); err != nil {
		t.Fatal(err)
	}
	boom := errors.New("boom")
	if err := tm.Measure("resolve", func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	report := tm.Report()
	if len(report.Phases) != 2 {
		t.Fatalf("phases = %d", len(report.Phases))
	}
	if report.Phases[1].Note != "failed" {
		t.Fatalf("note = %q", report.Phases[1].Note)
	}
	if _, ok := tm.Duration("parse"); !ok {
		t.Fatal("parse not recorded")
	}
	if _, ok := tm.Duration("emit"); ok {
		t.Fatal("emit should be missing")
	}
	if !strings.Contains(tm.Summary(), "total") {
		t.Fatalf("summary: %q", tm.Summary())
	}
}

func TestNilTimerIsInert(t *testing.T) {
	var tm *observ.Timer
	idx := tm.Begin("x")
	tm.End(idx, "")
	if len(tm.Phases()) != 0 || tm.Report().TotalMS != 0 {
		t.Fatal("nil timer recorded something")
	}
}
