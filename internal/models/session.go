package models

import "time"

// Session is one monitoring interval for one user. EndTime is nil while
// the session is still collecting readings; at most one session per
// user may be open at a time.
type Session struct {
	ID       string `gorm:"primaryKey;size:36" json:"id"`
	UserID   uint   `gorm:"index:idx_sessions_user_start" json:"userId"`
	Username string `gorm:"size:80" json:"username,omitempty"`

	StartTime time.Time  `gorm:"index:idx_sessions_user_start;index" json:"startTime"`
	EndTime   *time.Time `json:"endTime,omitempty"`

	SessionScore float64 `json:"sessionScore"`
	SitDuration  int     `json:"sitDuration"`
	BuzzerCount  int     `json:"buzzerCount"`

	BreakAlertTriggered  bool `json:"breakAlertTriggered"`
	ExcessiveBuzzerAlert bool `json:"excessiveBuzzerAlert"`

	Readings []Reading `gorm:"foreignKey:SessionID;constraint:OnDelete:CASCADE" json:"-"`
}

func (s *Session) Active() bool {
	return s.EndTime == nil
}

// Duration returns the session length in seconds, measured to now for
// a still-open session.
func (s *Session) Duration(now time.Time) int {
	end := now
	if s.EndTime != nil {
		end = *s.EndTime
	}
	return int(end.Sub(s.StartTime).Seconds())
}
