package tracker

import "testing"

func TestEvaluateThresholds(t *testing.T) {
	tests := []struct {
		name        string
		sitDuration int
		buzzerCount int
		wantBreak   bool
		wantBuzzer  bool
	}{
		{"fresh session", 0, 0, false, false},
		{"just under sitting threshold", 7199, 0, false, false},
		{"at sitting threshold", 7200, 0, true, false},
		{"over sitting threshold", 10000, 0, true, false},
		{"just under buzzer threshold", 0, 4, false, false},
		{"at buzzer threshold", 0, 5, false, true},
		{"both thresholds", 7200, 5, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.sitDuration, tt.buzzerCount)
			if got.BreakAlert != tt.wantBreak {
				t.Errorf("BreakAlert = %v, want %v", got.BreakAlert, tt.wantBreak)
			}
			if got.BuzzerAlert != tt.wantBuzzer {
				t.Errorf("BuzzerAlert = %v, want %v", got.BuzzerAlert, tt.wantBuzzer)
			}
		})
	}
}

func TestThresholdsZeroValueUsesDefaults(t *testing.T) {
	got := Thresholds{}.Evaluate(BreakAlertSeconds, BuzzerAlertCount)
	if !got.BreakAlert || !got.BuzzerAlert {
		t.Errorf("zero-value thresholds = %+v at the defaults, want both alerts", got)
	}

	got = Thresholds{}.Evaluate(BreakAlertSeconds-1, BuzzerAlertCount-1)
	if got.BreakAlert || got.BuzzerAlert {
		t.Errorf("zero-value thresholds = %+v below the defaults, want neither alert", got)
	}
}

func TestCustomThresholds(t *testing.T) {
	custom := Thresholds{BreakAlertSeconds: 60, BuzzerAlertCount: 2}

	got := custom.Evaluate(60, 2)
	if !got.BreakAlert || !got.BuzzerAlert {
		t.Errorf("custom thresholds = %+v at their limits, want both alerts", got)
	}

	got = custom.Evaluate(59, 1)
	if got.BreakAlert || got.BuzzerAlert {
		t.Errorf("custom thresholds = %+v below their limits, want neither alert", got)
	}
}
