package types

import "time"

// Toast is a transient notice shown in the corner of the task view, such as
// "Task added" or a server error.
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

// Live reports whether the toast should still be shown at now
func (t Toast) Live(now time.Time) bool {
	return t.Expires.After(now)
}

// ToastLevel picks the toast colour. Errors also stay up longer.
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)
