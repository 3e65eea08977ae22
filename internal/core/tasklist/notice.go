package tasklist

import (
	"errors"
	"fmt"
)

// Level is the severity of a notice
type Level int

const (
	LevelInfo Level = iota
	LevelSuccess
	LevelWarning
	LevelError
)

// Notice is a user-facing message produced by an action
type Notice struct {
	Level   Level
	Message string
}

// Empty reports whether there is nothing to show
func (n Notice) Empty() bool {
	return n.Message == ""
}

func Infof(format string, args ...any) Notice {
	return Notice{Level: LevelInfo, Message: fmt.Sprintf(format, args...)}
}

func Successf(format string, args ...any) Notice {
	return Notice{Level: LevelSuccess, Message: fmt.Sprintf(format, args...)}
}

func Warnf(format string, args ...any) Notice {
	return Notice{Level: LevelWarning, Message: fmt.Sprintf(format, args...)}
}

func Errorf(format string, args ...any) Notice {
	return Notice{Level: LevelError, Message: fmt.Sprintf(format, args...)}
}

// RefusalNotice extracts the notice carried by a planner refusal
func RefusalNotice(err error) Notice {
	var r *Refusal
	if errors.As(err, &r) {
		return r.Notice
	}
	return Notice{}
}
