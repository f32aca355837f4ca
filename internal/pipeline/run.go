package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/panelhire/hiring-agent/internal/agents"
	"github.com/panelhire/hiring-agent/internal/graph"
	"github.com/panelhire/hiring-agent/internal/types"
)

const (
	defaultEventBuffer = 16
	defaultTaskTimeout = 90 * time.Second
)

// Recorder persists run progress. Persistence is best-effort: the run never
// fails because a write failed.
type Recorder interface {
	StartEvaluation(ctx context.Context, candidateName, role, company string) (uuid.UUID, error)
	SaveTaskResult(ctx context.Context, runID uuid.UUID, result *types.TaskResult) error
	CompleteEvaluation(ctx context.Context, runID uuid.UUID, verdict *types.Verdict) error
}

// Options configures one evaluation run.
type Options struct {
	Input    *types.CandidateInput
	Criteria types.HiringCriteria
	Tasks    []agents.ScoringTask

	// Graph defaults to the standard seven-task hiring graph.
	Graph *graph.Graph
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Recorder is optional; nil disables persistence.
	Recorder Recorder
	// EventBuffer bounds the event channel. A slow consumer applies
	// backpressure to the run rather than dropping events.
	EventBuffer int
	// TaskTimeout bounds each task's execution individually.
	TaskTimeout time.Duration
}

// Run starts an evaluation and returns its event stream. Errors are returned
// only for invalid options or input; once the channel is handed out, every
// outcome (including cancellation) is reported as events, ending with exactly
// one terminal event before the channel closes.
func Run(ctx context.Context, opts Options) (<-chan types.Event, error) {
	r, err := newRunner(opts)
	if err != nil {
		return nil, err
	}

	events := make(chan types.Event, r.eventBuffer)
	go r.loop(ctx, events)
	return events, nil
}

type runner struct {
	input       *types.CandidateInput
	criteria    types.HiringCriteria
	tasks       map[string]agents.ScoringTask
	graph       *graph.Graph
	log         *zap.Logger
	recorder    Recorder
	eventBuffer int
	taskTimeout time.Duration
	state       *RunState
}

func newRunner(opts Options) (*runner, error) {
	if opts.Input == nil {
		return nil, fmt.Errorf("candidate input is required")
	}
	if err := validator.New().Struct(opts.Input); err != nil {
		return nil, fmt.Errorf("invalid candidate input: %w", err)
	}

	g := opts.Graph
	if g == nil {
		g = graph.Hiring()
	}

	tasks := make(map[string]agents.ScoringTask, len(opts.Tasks))
	for _, task := range opts.Tasks {
		name := task.Name()
		if !g.Contains(name) {
			return nil, fmt.Errorf("task %q is not a graph node", name)
		}
		if _, dup := tasks[name]; dup {
			return nil, fmt.Errorf("duplicate task %q", name)
		}
		tasks[name] = task
	}
	if len(tasks) != g.Len() {
		return nil, fmt.Errorf("graph has %d nodes but %d tasks were provided", g.Len(), len(tasks))
	}

	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	eventBuffer := opts.EventBuffer
	if eventBuffer <= 0 {
		eventBuffer = defaultEventBuffer
	}
	taskTimeout := opts.TaskTimeout
	if taskTimeout <= 0 {
		taskTimeout = defaultTaskTimeout
	}

	return &runner{
		input:       opts.Input,
		criteria:    opts.Criteria.Normalize(),
		tasks:       tasks,
		graph:       g,
		log:         log,
		recorder:    opts.Recorder,
		eventBuffer: eventBuffer,
		taskTimeout: taskTimeout,
		state:       NewRunState(),
	}, nil
}

// loop is the scheduler: it launches every task whose dependencies have
// completed, collects completions as they arrive, and emits one event per
// completion in real-time order. It always closes the channel after exactly
// one terminal event.
func (r *runner) loop(ctx context.Context, events chan<- types.Event) {
	defer close(events)

	runID := r.startPersistence(ctx)

	completed := make(map[string]bool, r.graph.Len())
	launched := make(map[string]bool, r.graph.Len())
	results := make(chan *types.TaskResult, r.graph.Len())
	inFlight := 0

	launchReady := func() {
		for _, node := range r.graph.Nodes() {
			if launched[node.Name] || !r.graph.Ready(node.Name, completed) {
				continue
			}
			task := r.tasks[node.Name]
			launched[node.Name] = true
			inFlight++
			r.log.Debug("launching task", zap.String("task", node.Name))
			go func() {
				taskCtx, cancel := context.WithTimeout(ctx, r.taskTimeout)
				defer cancel()
				results <- task.Execute(taskCtx, r.input, r.criteria, r.state)
			}()
		}
	}

	launchReady()

	cancelled := false
	for inFlight > 0 {
		var result *types.TaskResult
		if cancelled {
			// Stop launching, but drain what is in flight: per-task contexts
			// are children of ctx, so running tasks return their cancelled
			// fallbacks promptly.
			result = <-results
		} else {
			select {
			case result = <-results:
			case <-ctx.Done():
				cancelled = true
				r.log.Warn("run cancelled", zap.Error(ctx.Err()))
				continue
			}
		}

		inFlight--
		r.handleCompletion(ctx, runID, result, events)
		completed[result.Task] = true
		if !cancelled {
			launchReady()
		}
	}

	// A cancellation that arrives after the last completion is already
	// buffered changes nothing: a fully delivered stream ends complete.
	if len(completed) != r.graph.Len() {
		reason := "run did not complete"
		if ctx.Err() != nil {
			reason = ctx.Err().Error()
		}
		events <- types.Event{
			Source:  "system",
			Message: "Evaluation aborted: " + reason,
			Status:  types.StatusError,
			Kind:    types.EventError,
			Failure: &types.TaskFailure{Kind: types.FailureCancelled, Message: reason},
		}
		return
	}

	events <- types.Event{
		Source:  "system",
		Message: "Evaluation complete",
		Status:  types.StatusComplete,
		Kind:    types.EventSystem,
	}
}

func (r *runner) handleCompletion(ctx context.Context, runID uuid.UUID, result *types.TaskResult, events chan<- types.Event) {
	if err := r.state.Record(result); err != nil {
		r.log.Error("failed to record result", zap.String("task", result.Task), zap.Error(err))
	}
	r.persistResult(ctx, runID, result)

	if result.Task == types.TaskFinalVerdict {
		events <- r.verdictEvent(ctx, runID, result)
		return
	}
	events <- analysisEvent(result)
}

// analysisEvent covers Layer-1 and Layer-2 completions. A fallback result
// still emits with status "done"; the failure rides along so consumers can
// tell a neutral score from a genuine one.
func analysisEvent(result *types.TaskResult) types.Event {
	event := types.Event{
		Source:  result.Task,
		Status:  types.StatusDone,
		Kind:    types.EventAnalysis,
		Failure: result.Failure,
	}

	if scored, ok := result.Payload.(types.Scored); ok {
		score := scored.ScoreValue()
		event.Score = &score
	}

	switch {
	case result.Failed():
		event.Message = fmt.Sprintf("%s fell back to its neutral result: %s", result.Task, result.Failure.Message)
	case event.Score != nil:
		event.Message = fmt.Sprintf("%s scored %.1f", result.Task, *event.Score)
	default:
		event.Message = fmt.Sprintf("%s completed", result.Task)
	}
	return event
}

func (r *runner) verdictEvent(ctx context.Context, runID uuid.UUID, result *types.TaskResult) types.Event {
	verdict, ok := result.Payload.(*types.Verdict)
	if !ok {
		r.log.Error("final verdict payload has unexpected type", zap.String("task", result.Task))
		return types.Event{
			Source:  result.Task,
			Message: "final verdict unavailable",
			Status:  types.StatusDone,
			Kind:    types.EventVerdict,
			Failure: result.Failure,
		}
	}

	r.completePersistence(ctx, runID, verdict)

	finalScore := verdict.FinalScore
	return types.Event{
		Source:      result.Task,
		Message:     fmt.Sprintf("Final verdict: %s (score %.2f)", verdict.Verdict, verdict.FinalScore),
		Status:      types.StatusDone,
		Kind:        types.EventVerdict,
		Verdict:     string(verdict.Verdict),
		FinalScore:  &finalScore,
		FullVerdict: verdict,
		Failure:     result.Failure,
	}
}

func (r *runner) startPersistence(ctx context.Context) uuid.UUID {
	if r.recorder == nil {
		return uuid.Nil
	}
	jd := r.input.JobDescription
	runID, err := r.recorder.StartEvaluation(ctx, r.input.PersonalInfo.Name, jd.Role, jd.CompanyName)
	if err != nil {
		r.log.Warn("failed to start evaluation record, continuing without persistence", zap.Error(err))
		return uuid.Nil
	}
	return runID
}

func (r *runner) persistResult(ctx context.Context, runID uuid.UUID, result *types.TaskResult) {
	if r.recorder == nil || runID == uuid.Nil {
		return
	}
	if err := r.recorder.SaveTaskResult(ctx, runID, result); err != nil {
		r.log.Warn("failed to persist task result", zap.String("task", result.Task), zap.Error(err))
	}
}

func (r *runner) completePersistence(ctx context.Context, runID uuid.UUID, verdict *types.Verdict) {
	if r.recorder == nil || runID == uuid.Nil {
		return
	}
	if err := r.recorder.CompleteEvaluation(ctx, runID, verdict); err != nil {
		r.log.Warn("failed to complete evaluation record", zap.Error(err))
	}
}
