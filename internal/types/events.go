//nolint:revive // types is a standard Go package name pattern
package types

// EventKind distinguishes the payload shape carried by an Event.
type EventKind string

// Event kinds. A stream carries zero or more "analysis" events, at most one
// "verdict" event, and exactly one terminal "system" or "error" event.
const (
	EventAnalysis EventKind = "analysis"
	EventVerdict  EventKind = "verdict"
	EventSystem   EventKind = "system"
	EventError    EventKind = "error"
)

// EventStatus reflects the state a source reached when the event was emitted.
type EventStatus string

// Event statuses.
const (
	StatusDone     EventStatus = "done"
	StatusComplete EventStatus = "complete"
	StatusError    EventStatus = "error"
)

// Event is one entry in the ordered stream a run produces. Events are emitted
// in the real-time order tasks complete; consumers must not assume a fixed
// source order within Layer 1.
type Event struct {
	Source      string       `json:"agent"`
	Message     string       `json:"message"`
	Status      EventStatus  `json:"status"`
	Kind        EventKind    `json:"type"`
	Score       *float64     `json:"score,omitempty"`
	Verdict     string       `json:"verdict,omitempty"`
	FinalScore  *float64     `json:"final_score,omitempty"`
	FullVerdict *Verdict     `json:"full_verdict,omitempty"`
	Failure     *TaskFailure `json:"failure,omitempty"`
}

// Terminal reports whether this event ends the stream.
func (e Event) Terminal() bool {
	return e.Kind == EventSystem || e.Kind == EventError
}
