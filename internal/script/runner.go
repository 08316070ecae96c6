package script

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/quicknotes/pkg/core"
)

// Result records the outcome of one step.
type Result struct {
	Step  int         `json:"step" yaml:"step"`
	Op    Op          `json:"op" yaml:"op"`
	Note  *core.Note  `json:"note,omitempty" yaml:"note,omitempty"`
	Notes []core.Note `json:"notes,omitempty" yaml:"notes,omitempty"`
	Err   error       `json:"-" yaml:"-"`
}

// Runner executes scripts against a service.
type Runner struct {
	svc    *core.Service
	logger *slog.Logger
}

// NewRunner creates a Runner. A nil logger discards output.
func NewRunner(svc *core.Service, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{svc: svc, logger: logger}
}

// Run executes every step in order. Note errors (validation, not found) are
// recorded on the step result; when the script asks to stop on error the
// first one is also returned and later steps are skipped.
func (r *Runner) Run(ctx context.Context, s *Script) ([]Result, error) {
	results := make([]Result, 0, len(s.Steps))
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return results, err
		}

		res := r.exec(ctx, i+1, step)
		results = append(results, res)

		if res.Err != nil {
			r.logger.Debug("step failed", "step", res.Step, "op", res.Op, "error", res.Err)
			if s.StopOnError() {
				return results, fmt.Errorf("step %d (%s): %w", res.Step, res.Op, res.Err)
			}
		}
	}
	return results, nil
}

func (r *Runner) exec(ctx context.Context, n int, step Step) Result {
	res := Result{Step: n, Op: step.Op}

	switch step.Op {
	case OpAdd:
		note, err := r.svc.Add(ctx, step.Title, step.Content)
		res.Err = err
		if err == nil {
			res.Note = &note
		}
	case OpUpdate:
		note, err := r.svc.Update(ctx, step.ID, step.Title, step.Content)
		res.Err = err
		if err == nil {
			res.Note = &note
		}
	case OpGet:
		note, err := r.svc.Get(ctx, step.ID)
		res.Err = err
		if err == nil {
			res.Note = &note
		}
	case OpDelete:
		res.Err = r.svc.Delete(ctx, step.ID)
	case OpList:
		res.Notes, res.Err = r.svc.List(ctx)
	case OpSearch:
		res.Notes, res.Err = r.svc.Search(ctx, step.Query)
	default:
		res.Err = fmt.Errorf("unknown operation %q", step.Op)
	}

	r.logger.Debug("step done", "step", n, "op", step.Op)
	return res
}
