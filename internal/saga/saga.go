// Package saga runs ordered multi-entity writes with per-step compensation.
// The backing store offers no cross-table transactions to the service layer's
// orchestration flows, so a failed step must undo the steps committed before
// it instead of leaving partial state behind.
package saga

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// Step is one locally-committed unit of a saga. Compensate undoes a
// previously successful Run; it may be nil for steps with nothing to undo.
type Step struct {
	Name       string
	Run        func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// Saga executes steps in order. On a step failure the compensations of all
// previously completed steps run in reverse order.
type Saga struct {
	name   string
	steps  []Step
	logger *logrus.Entry
}

// New creates a named saga.
func New(name string, logger *logrus.Logger) *Saga {
	return &Saga{
		name:   name,
		logger: logger.WithField("saga", name),
	}
}

// AddStep appends a step. Steps run in the order they were added.
func (s *Saga) AddStep(step Step) *Saga {
	s.steps = append(s.steps, step)
	return s
}

// Execute runs all steps. It returns the failing step's error; compensation
// failures are logged but do not mask it.
func (s *Saga) Execute(ctx context.Context) error {
	completed := make([]Step, 0, len(s.steps))

	for _, step := range s.steps {
		if err := step.Run(ctx); err != nil {
			s.logger.WithError(err).WithField("step", step.Name).Warn("Saga step failed, compensating")
			s.compensate(ctx, completed)
			return fmt.Errorf("%s: step %s: %w", s.name, step.Name, err)
		}
		completed = append(completed, step)
	}

	return nil
}

func (s *Saga) compensate(ctx context.Context, completed []Step) {
	for i := len(completed) - 1; i >= 0; i-- {
		step := completed[i]
		if step.Compensate == nil {
			continue
		}
		if err := step.Compensate(ctx); err != nil {
			// Nothing sensible left to do beyond flagging it for operators.
			s.logger.WithError(err).WithField("step", step.Name).Error("Saga compensation failed")
		}
	}
}
