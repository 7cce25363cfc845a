package attendance

import "errors"

// Attendance domain errors
var (
	ErrAlreadyPunchedIn = errors.New("you already have an open work session today")
	ErrNoOpenSession    = errors.New("you have not punched in today")
)
