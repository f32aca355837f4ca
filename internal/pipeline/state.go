// Package pipeline orchestrates one evaluation run: it schedules the scoring
// tasks over the dependency graph, records their results, and emits the
// ordered event stream the caller consumes.
package pipeline

import (
	"fmt"
	"sync"

	"github.com/panelhire/hiring-agent/internal/types"
)

// RunState is the shared result store for one run. Results are write-once:
// recording a task twice is a scheduler bug and returns an error. RunState is
// safe for concurrent use; tasks read prior results through the ResultView it
// implements.
type RunState struct {
	mu      sync.RWMutex
	results map[string]*types.TaskResult
}

// NewRunState creates an empty run state.
func NewRunState() *RunState {
	return &RunState{results: make(map[string]*types.TaskResult)}
}

// Record stores a task's result. The slot must be empty and the result
// non-nil.
func (s *RunState) Record(result *types.TaskResult) error {
	if result == nil || result.Task == "" {
		return fmt.Errorf("cannot record empty task result")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.results[result.Task]; exists {
		return fmt.Errorf("result for task %q already recorded", result.Task)
	}
	s.results[result.Task] = result
	return nil
}

// Result implements types.ResultView.
func (s *RunState) Result(task string) (*types.TaskResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.results[task]
	return r, ok
}

// Len returns the number of recorded results.
func (s *RunState) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.results)
}
