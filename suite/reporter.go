package suite

import (
	"fmt"
	"io"
	"sync"

	"github.com/gookit/color"
)

// Reporter receives a line per finished case while a Runner is going.
type Reporter interface {
	CaseDone(res *Result)
}

// SilentReporter does not output any progress
type SilentReporter struct{}

func (r *SilentReporter) CaseDone(res *Result) {}

// ColorReporter prints one colored mark per finished case to a writer
// (typically stderr).
type ColorReporter struct {
	Writer io.Writer
	mu     sync.Mutex
}

func (r *ColorReporter) CaseDone(res *Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res.Passed() {
		fmt.Fprint(r.Writer, color.Green.Sprint("."))
	} else {
		fmt.Fprint(r.Writer, color.Red.Sprint("F"))
	}
}
