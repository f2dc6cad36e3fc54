package vm

import (
	"fmt"
	"strings"
)

// ErrorType is the category of a fatal interpreter error.
type ErrorType int

const (
	NameError ErrorType = iota + 1
	TypeError
	FaultError
)

func (t ErrorType) String() string {
	switch t {
	case NameError:
		return "NameError"
	case TypeError:
		return "TypeError"
	case FaultError:
		return "FaultError"
	}
	return fmt.Sprintf("ErrorType(%d)", int(t))
}

// ParseErrorType accepts either the short category ("name") or the full
// name ("NameError").
func ParseErrorType(s string) (ErrorType, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "error") {
	case "name":
		return NameError, nil
	case "type":
		return TypeError, nil
	case "fault":
		return FaultError, nil
	}
	return 0, fmt.Errorf("Unknown error category %q", s)
}

// Error is a fatal error. It ends the run and cannot be caught by the
// program.
type Error struct {
	Type    ErrorType
	Message string
	Line    int
}

func (e *Error) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s: %s (line %d)", e.Type, e.Message, e.Line)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

func NameErrorf(line int, format string, args ...any) error {
	return &Error{Type: NameError, Message: fmt.Sprintf(format, args...), Line: line}
}

func TypeErrorf(line int, format string, args ...any) error {
	return &Error{Type: TypeError, Message: fmt.Sprintf(format, args...), Line: line}
}

func FaultErrorf(line int, format string, args ...any) error {
	return &Error{Type: FaultError, Message: fmt.Sprintf(format, args...), Line: line}
}
