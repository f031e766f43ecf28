package testutil

import (
	"context"
	"reflect"
	"sync"
	"time"

	"github.com/loomhdl/loom/elab"
	"github.com/loomhdl/loom/registry"
)

// MockSleeperModule is a shared, self-contained generator module for
// concurrency tests. It records the elaboration time of each design that
// uses it.
type MockSleeperModule struct {
	ExecutionTimes map[string]*ExecutionRecord
	mu             sync.Mutex
	sleepDuration  time.Duration
	completionChan chan<- string
}

// NewMockSleeperModule creates a new sleeper module for testing.
func NewMockSleeperModule(completionChan chan<- string, sleep time.Duration) *MockSleeperModule {
	return &MockSleeperModule{
		ExecutionTimes: make(map[string]*ExecutionRecord),
		sleepDuration:  sleep,
		completionChan: completionChan,
	}
}

type sleeperParams struct {
	ID string `loom:"id"`
}

type sleeperDef struct{}

// Register registers the "sleeper" generator.
func (m *MockSleeperModule) Register(r *registry.Registry) {
	r.Register(&registry.Generator{
		Type:        "sleeper",
		Description: "Test generator that sleeps during build and records when it ran.",
		NewParams:   func() any { return new(sleeperParams) },
		ParamsType:  reflect.TypeOf(sleeperParams{}),
		Build: func(ctx context.Context, d *elab.Design, paramsRaw any) (*elab.Block, error) {
			params := paramsRaw.(*sleeperParams)

			startTime := time.Now()
			time.Sleep(m.sleepDuration)
			endTime := time.Now()

			m.mu.Lock()
			m.ExecutionTimes[params.ID] = &ExecutionRecord{Start: startTime, End: endTime}
			m.mu.Unlock()

			if m.completionChan != nil {
				m.completionChan <- params.ID
			}
			return elab.Declare(d, sleeperDef{}, func(b *elab.Block) error {
				return nil
			})
		},
	})
}
