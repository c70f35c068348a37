package missions

import (
	"testing"

	"github.com/toptiermen/platform/internal/model"
)

func TestIsCompleted(t *testing.T) {
	today := "2026-09-01"

	cases := []struct {
		name string
		m    model.Mission
		want bool
	}{
		{"never completed", model.Mission{FrequencyType: model.FrequencyDaily}, false},
		{"daily completed today", model.Mission{FrequencyType: model.FrequencyDaily, LastCompletionDate: today}, true},
		{"daily completed yesterday", model.Mission{FrequencyType: model.FrequencyDaily, LastCompletionDate: "2026-08-31"}, false},
		{"weekly completed any day", model.Mission{FrequencyType: model.FrequencyWeekly, LastCompletionDate: "2026-08-20"}, true},
		{"monthly completed any day", model.Mission{FrequencyType: model.FrequencyMonthly, LastCompletionDate: "2026-01-05"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsCompleted(tc.m, today); got != tc.want {
				t.Errorf("IsCompleted() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestApplyToggleCompletes(t *testing.T) {
	today := "2026-09-01"
	m := model.Mission{FrequencyType: model.FrequencyDaily, XPReward: 25}

	completed, delta := ApplyToggle(&m, today)
	if !completed {
		t.Fatal("expected mission to become completed")
	}
	if delta != 25 {
		t.Errorf("xp delta = %d, want 25", delta)
	}
	if m.LastCompletionDate != today {
		t.Errorf("completion date = %q, want %q", m.LastCompletionDate, today)
	}
}

func TestApplyToggleUndoRefundsFullReward(t *testing.T) {
	today := "2026-09-01"
	m := model.Mission{FrequencyType: model.FrequencyDaily, XPReward: 25, LastCompletionDate: today}

	completed, delta := ApplyToggle(&m, today)
	if completed {
		t.Fatal("expected completion to be undone")
	}
	if delta != -25 {
		t.Errorf("xp delta = %d, want -25", delta)
	}
	if m.LastCompletionDate != "" {
		t.Errorf("completion date = %q, want empty", m.LastCompletionDate)
	}
}

func TestApplyToggleStaleDailyCompletesAgain(t *testing.T) {
	// A daily mission completed yesterday counts as incomplete today,
	// so toggling awards the reward and stamps today's date.
	m := model.Mission{FrequencyType: model.FrequencyDaily, XPReward: 10, LastCompletionDate: "2026-08-31"}

	completed, delta := ApplyToggle(&m, "2026-09-01")
	if !completed || delta != 10 {
		t.Errorf("got completed=%v delta=%d, want true/10", completed, delta)
	}
	if m.LastCompletionDate != "2026-09-01" {
		t.Errorf("completion date = %q, want 2026-09-01", m.LastCompletionDate)
	}
}
