package script

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidScript is the kind of every rejection produced by this package.
var ErrInvalidScript = errors.New("invalid filter script")

// ValidationError identifies the offending filter and parameter of a
// rejected document. Filter and Param are empty for structural failures.
type ValidationError struct {
	Filter string
	Index  int // position of Filter in the pipeline, -1 when not applicable
	Param  string
	Msg    string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(ErrInvalidScript.Error())
	if e.Index >= 0 {
		fmt.Fprintf(&b, ": filter[%d] %q", e.Index, e.Filter)
	} else if e.Param != "" {
		b.WriteString(":")
	}
	if e.Param != "" {
		fmt.Fprintf(&b, " param %q", e.Param)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error { return ErrInvalidScript }

func structuralf(format string, args ...any) error {
	return &ValidationError{Index: -1, Msg: fmt.Sprintf(format, args...)}
}

func paramf(filterIdx int, filter, param, format string, args ...any) error {
	return &ValidationError{Filter: filter, Index: filterIdx, Param: param, Msg: fmt.Sprintf(format, args...)}
}
