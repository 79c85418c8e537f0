package saga

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	l := logrus.New()
	l.SetLevel(logrus.PanicLevel)
	return l
}

func TestSagaRunsStepsInOrder(t *testing.T) {
	var order []string
	s := New("test", testLogger()).
		AddStep(Step{Name: "first", Run: func(ctx context.Context) error {
			order = append(order, "first")
			return nil
		}}).
		AddStep(Step{Name: "second", Run: func(ctx context.Context) error {
			order = append(order, "second")
			return nil
		}})

	require.NoError(t, s.Execute(context.Background()))
	assert.Equal(t, []string{"first", "second"}, order)
}

func TestSagaCompensatesCompletedStepsInReverse(t *testing.T) {
	var events []string
	boom := errors.New("boom")

	s := New("test", testLogger()).
		AddStep(Step{
			Name: "a",
			Run:  func(ctx context.Context) error { events = append(events, "run-a"); return nil },
			Compensate: func(ctx context.Context) error {
				events = append(events, "undo-a")
				return nil
			},
		}).
		AddStep(Step{
			Name: "b",
			Run:  func(ctx context.Context) error { events = append(events, "run-b"); return nil },
			Compensate: func(ctx context.Context) error {
				events = append(events, "undo-b")
				return nil
			},
		}).
		AddStep(Step{
			Name: "c",
			Run:  func(ctx context.Context) error { return boom },
		})

	err := s.Execute(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "step c")
	assert.Equal(t, []string{"run-a", "run-b", "undo-b", "undo-a"}, events)
}

func TestSagaFailedStepIsNotCompensated(t *testing.T) {
	compensated := false
	s := New("test", testLogger()).
		AddStep(Step{
			Name:       "only",
			Run:        func(ctx context.Context) error { return errors.New("nope") },
			Compensate: func(ctx context.Context) error { compensated = true; return nil },
		})

	require.Error(t, s.Execute(context.Background()))
	assert.False(t, compensated, "the failing step itself must not be compensated")
}

func TestSagaNilCompensationIsSkipped(t *testing.T) {
	s := New("test", testLogger()).
		AddStep(Step{Name: "no-undo", Run: func(ctx context.Context) error { return nil }}).
		AddStep(Step{Name: "fails", Run: func(ctx context.Context) error { return errors.New("x") }})

	assert.Error(t, s.Execute(context.Background()))
}

func TestSagaCompensationFailureDoesNotMaskStepError(t *testing.T) {
	boom := errors.New("step failure")
	s := New("test", testLogger()).
		AddStep(Step{
			Name:       "a",
			Run:        func(ctx context.Context) error { return nil },
			Compensate: func(ctx context.Context) error { return errors.New("undo failure") },
		}).
		AddStep(Step{Name: "b", Run: func(ctx context.Context) error { return boom }})

	err := s.Execute(context.Background())
	assert.ErrorIs(t, err, boom)
}
