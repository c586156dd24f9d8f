package pipeline

import (
	"context"
)

// TimingTracker records how long pipeline stages take.
type TimingTracker interface {
	StartTiming(operation string) context.Context
	EndTiming(ctx context.Context)
}

type nopTracker struct{}

func (nopTracker) StartTiming(string) context.Context { return context.Background() }
func (nopTracker) EndTiming(context.Context)          {}
