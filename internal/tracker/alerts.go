package tracker

// Default alert thresholds: two hours of continuous sitting, five
// buzzer triggers per session.
const (
	BreakAlertSeconds = 7200
	BuzzerAlertCount  = 5
)

// Thresholds are the operator-tunable alert limits (the `monitor`
// config section). The zero value falls back to the defaults.
type Thresholds struct {
	BreakAlertSeconds int
	BuzzerAlertCount  int
}

func (t Thresholds) fill() Thresholds {
	if t.BreakAlertSeconds < 1 {
		t.BreakAlertSeconds = BreakAlertSeconds
	}
	if t.BuzzerAlertCount < 1 {
		t.BuzzerAlertCount = BuzzerAlertCount
	}
	return t
}

// SessionAlerts is the level-triggered alert state for a session.
// Evaluate recomputes it from current state on every call; converting
// it to fire-once delivery is the caller's job (the aggregator keeps
// per-session flags for that).
type SessionAlerts struct {
	BreakAlert  bool `json:"break_alert"`
	BuzzerAlert bool `json:"excessive_buzzer_alert"`
}

// Evaluate inspects live session state and decides which alert
// conditions currently hold.
func (t Thresholds) Evaluate(sitDurationSeconds, buzzerCount int) SessionAlerts {
	t = t.fill()
	return SessionAlerts{
		BreakAlert:  sitDurationSeconds >= t.BreakAlertSeconds,
		BuzzerAlert: buzzerCount >= t.BuzzerAlertCount,
	}
}

// Evaluate checks live session state against the default thresholds.
func Evaluate(sitDurationSeconds, buzzerCount int) SessionAlerts {
	return Thresholds{}.Evaluate(sitDurationSeconds, buzzerCount)
}
