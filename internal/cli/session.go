package cli

import (
	"fmt"

	"github.com/roach88/tacs/internal/comm"
	"github.com/roach88/tacs/internal/env"
	"github.com/roach88/tacs/internal/problem"
)

// session is a loaded problem with its environment, comm session and built
// model. Close tears them down in reverse order.
type session struct {
	problem *problem.Problem
	env     *env.Env
	comm    *comm.Session
	model   *problem.Model
}

// openSession loads path and builds it. threads overrides the problem's
// thread count when positive. Logs go to the formatter's diagnostic writer.
func openSession(formatter *OutputFormatter, path string, threads int) (*session, error) {
	p, err := problem.Load(path)
	if err != nil {
		return nil, err
	}

	n := p.Threads
	if threads > 0 {
		n = threads
	}
	logger := newLogger(formatter.Verbose, formatter.GetErrWriter())
	e := env.New(env.Options{Logger: logger, NumThreads: n})

	cs, err := comm.Initialize(logger)
	if err != nil {
		e.Close()
		return nil, fmt.Errorf("initialize comm: %w", err)
	}

	return &session{
		problem: p,
		env:     e,
		comm:    cs,
		model:   p.Build(e),
	}, nil
}

func (s *session) Close() {
	s.model.Close()
	s.comm.Finalize()
	s.env.Close()
}
