package models

import "time"

// Reading is a single sensor sample. Immutable once recorded; owned by
// exactly one session and ordered by timestamp within it.
type Reading struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	SessionID string    `gorm:"size:36;index" json:"-"`
	Timestamp time.Time `json:"timestamp"`

	Pitch     float64 `json:"pitch"`
	Roll      float64 `json:"roll"`
	FSRLeft   float64 `gorm:"column:fsr_left" json:"fsrLeft"`
	FSRRight  float64 `gorm:"column:fsr_right" json:"fsrRight"`
	FSRCenter float64 `gorm:"column:fsr_center" json:"fsrCenter"`

	// StressScore is nil when the stress sensors produced no usable
	// sample; scored readings fall in [0,1].
	StressScore *float64 `json:"stressScore,omitempty"`

	Seated          bool `json:"seated"`
	BuzzerTriggered bool `json:"buzzerTriggered"`
}
