package suite

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/brewin-lang/brewin"
	"github.com/brewin-lang/brewin/brewparse"
	"github.com/brewin-lang/brewin/interp"
	"github.com/brewin-lang/brewin/vm"
)

// Result is the outcome of one case.
type Result struct {
	Suite    string
	Name     string
	Version  vm.Version
	Output   []string
	Err      error
	Failures []string
	Duration time.Duration
}

func (r *Result) Passed() bool {
	return len(r.Failures) == 0
}

func (r *Result) failf(format string, args ...any) {
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}

// errorCategory names the kind of a program error the way suite files
// spell it, or "" when err is nil.
func errorCategory(err error) string {
	if err == nil {
		return ""
	}
	var verr *vm.Error
	if errors.As(err, &verr) {
		return strings.ToLower(strings.TrimSuffix(verr.Type.String(), "Error"))
	}
	var serr *brewparse.SyntaxError
	if errors.As(err, &serr) {
		return "syntax"
	}
	return "error"
}

func normalizeCategory(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.TrimSuffix(s, "error")
}

// RunCase loads and runs one case of s and checks it.
func RunCase(loader *brewin.Loader, s *Suite, name string) *Result {
	start := time.Now()
	c := s.Cases[name]
	res := &Result{Suite: s.Name(), Name: name}
	defer func() { res.Duration = time.Since(start) }()

	v, err := s.version(&c)
	if err != nil {
		res.failf("bad version: %v", err)
		return res
	}
	res.Version = v
	src, err := s.source(&c)
	if err != nil {
		res.failf("loading program: %v", err)
		return res
	}

	rec := &interp.Recorder{Inputs: append([]string(nil), c.Input...)}
	prog, err := loader.Load(src, v)
	if err == nil {
		err = interp.Run(prog, rec)
	}
	res.Output = rec.Outputs
	res.Err = err
	check(res, &c)
	return res
}

func check(res *Result, c *Case) {
	got := errorCategory(res.Err)
	want := normalizeCategory(c.Error)
	switch {
	case want == "" && got != "":
		res.failf("unexpected error: %v", res.Err)
	case want != "" && got == "":
		res.failf("expected %s error, program finished", want)
	case want != got:
		res.failf("expected %s error, got: %v", want, res.Err)
	}

	if c.Output != nil && !equalLines(c.Output, res.Output) {
		res.failf("output mismatch:\n  want %q\n  got  %q", c.Output, res.Output)
	}

	if c.Property != "" {
		ok, err := evalProperty(c.Property, res.Output, res.Err)
		if err != nil {
			res.failf("property %q: %v", c.Property, err)
		} else if !ok {
			res.failf("property %q does not hold", c.Property)
		}
	}
}

func equalLines(want, got []string) bool {
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] != got[i] {
			return false
		}
	}
	return true
}
