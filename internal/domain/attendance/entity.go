package attendance

import (
	"fmt"
	"time"
)

// Status of an attendance record, derived at punch-in.
const (
	StatusPresent = "present"
	StatusLate    = "late"
)

type Attendance struct {
	ID            string
	UserID        string
	WorkDate      time.Time
	PunchIn       time.Time
	PunchOut      *time.Time
	WorkedMinutes *int
	Status        string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// Joined for manager views
	UserName *string
}

// Open reports whether the record still has no punch-out.
func (a *Attendance) Open() bool {
	return a.PunchOut == nil
}

// DurationMinutes returns the worked duration in whole minutes. For an
// open record the duration runs against now, so the frontend can show a
// live session counter. Never negative.
func (a *Attendance) DurationMinutes(now time.Time) int {
	end := now
	if a.PunchOut != nil {
		end = *a.PunchOut
	}
	mins := int(end.Sub(a.PunchIn).Minutes())
	if mins < 0 {
		return 0
	}
	return mins
}

// FormatDuration renders minutes as "8h 30m".
func FormatDuration(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
