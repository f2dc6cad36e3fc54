package suite

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/brewin-lang/brewin"
)

// Runner runs every case of a set of suites with at most Jobs cases in
// flight. Each case gets its own interpreter.
type Runner struct {
	Suites   []*Suite
	Jobs     int
	Loader   *brewin.Loader
	Reporter Reporter
}

type Report struct {
	ID       uuid.UUID
	Results  []*Result
	Duration time.Duration
}

func (r *Report) Passed() int {
	n := 0
	for _, res := range r.Results {
		if res.Passed() {
			n++
		}
	}
	return n
}

func (r *Report) Failed() int {
	return len(r.Results) - r.Passed()
}

func (r *Report) OK() bool {
	return r.Failed() == 0
}

type job struct {
	suite *Suite
	name  string
}

func (r *Runner) Run(ctx context.Context) (*Report, error) {
	rep := &Report{ID: uuid.New()}
	start := time.Now()

	var jobs []job
	for _, s := range r.Suites {
		for _, name := range s.CaseNames() {
			jobs = append(jobs, job{suite: s, name: name})
		}
	}
	limit := r.Jobs
	if limit <= 0 {
		limit = runtime.NumCPU()
	}
	loader := r.Loader
	if loader == nil {
		loader = &brewin.Loader{}
	}
	reporter := r.Reporter
	if reporter == nil {
		reporter = &SilentReporter{}
	}

	results := make([]*Result, len(jobs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, j := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res := RunCase(loader, j.suite, j.name)
			log.Debug().
				Str("report", rep.ID.String()).
				Str("suite", res.Suite).
				Str("case", res.Name).
				Bool("passed", res.Passed()).
				Dur("duration", res.Duration).
				Msg("Case finished")
			reporter.CaseDone(res)
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	rep.Results = results
	rep.Duration = time.Since(start)
	return rep, nil
}
