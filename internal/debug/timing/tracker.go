package timing

import (
	"context"
	"sync"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"rank-pooler/internal/logger"
)

type timingKey struct{}

type TimingInfo struct {
	Operation string
	StartTime time.Time
}

// Summary describes the recorded durations of one operation.
type Summary struct {
	Count  int
	Mean   time.Duration
	StdDev time.Duration
	Max    time.Duration
}

type Tracker struct {
	timings map[string][]time.Duration
	mu      sync.RWMutex
	logger  logger.Logger
	enabled bool
}

func NewTracker(log logger.Logger) *Tracker {
	if log == nil {
		log = logger.NewNop()
	}
	return &Tracker{
		timings: make(map[string][]time.Duration),
		logger:  log,
		enabled: true,
	}
}

func (tt *Tracker) StartTiming(operation string) context.Context {
	if !tt.isEnabled() {
		return context.Background()
	}

	return context.WithValue(context.Background(), timingKey{}, TimingInfo{
		Operation: operation,
		StartTime: time.Now(),
	})
}

func (tt *Tracker) EndTiming(ctx context.Context) {
	if !tt.isEnabled() {
		return
	}

	timingInfo, ok := ctx.Value(timingKey{}).(TimingInfo)
	if !ok {
		return
	}

	duration := time.Since(timingInfo.StartTime)
	tt.record(timingInfo.Operation, duration)

	tt.logger.Debug("Timing", "operation completed", map[string]interface{}{
		"operation":   timingInfo.Operation,
		"duration_ms": float64(duration.Microseconds()) / 1000,
	})
}

func (tt *Tracker) record(operation string, d time.Duration) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.timings[operation] = append(tt.timings[operation], d)
}

func (tt *Tracker) GetTimings(operation string) []time.Duration {
	tt.mu.RLock()
	defer tt.mu.RUnlock()

	timings := tt.timings[operation]
	if timings == nil {
		return nil
	}

	result := make([]time.Duration, len(timings))
	copy(result, timings)
	return result
}

func (tt *Tracker) GetAverageTime(operation string) time.Duration {
	return tt.Summarize(operation).Mean
}

// Summarize computes count, mean, standard deviation and maximum of the
// durations recorded for operation.
func (tt *Tracker) Summarize(operation string) Summary {
	timings := tt.GetTimings(operation)
	if len(timings) == 0 {
		return Summary{}
	}

	samples := make([]float64, len(timings))
	for i, d := range timings {
		samples[i] = float64(d)
	}

	mean, std := stat.MeanStdDev(samples, nil)
	if len(samples) < 2 {
		std = 0
	}

	return Summary{
		Count:  len(samples),
		Mean:   time.Duration(mean),
		StdDev: time.Duration(std),
		Max:    time.Duration(floats.Max(samples)),
	}
}

func (tt *Tracker) SetEnabled(enabled bool) {
	tt.mu.Lock()
	defer tt.mu.Unlock()
	tt.enabled = enabled
}

func (tt *Tracker) Reset(operation string) {
	tt.mu.Lock()
	defer tt.mu.Unlock()

	if operation == "" {
		tt.timings = make(map[string][]time.Duration)
	} else {
		delete(tt.timings, operation)
	}
}

func (tt *Tracker) isEnabled() bool {
	tt.mu.RLock()
	defer tt.mu.RUnlock()
	return tt.enabled
}
