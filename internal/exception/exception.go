// Package exception implements spec.md §4.7 (C7): per-VM exception
// state, distinguishing a Haxe-thrown exception (carries a message)
// from a bridge-side error (resolution failed, arity mismatch, call
// failed with no thrown value).
package exception

import (
	"sync"

	"github.com/corvidhx/hlbridge/internal/handle"
	"github.com/corvidhx/hlbridge/internal/hlrt"
	"github.com/corvidhx/hlbridge/internal/invoke"
	"github.com/corvidhx/hlbridge/internal/value"
)

// State tracks the most recent exception for one VM instance.
type State struct {
	mu      sync.Mutex
	handles *handle.Registry
	pending bool
	message string
	trace   []string
	value   *handle.Handle
}

// NewState creates an empty exception state. handles roots the raw
// exception value Value() returns for the caller's inspection.
func NewState(handles *handle.Registry) *State {
	return &State{handles: handles}
}

// Outcome selects which fields of a TryCallStatic Result are
// meaningful: Value for OutcomeOK, Message and Err for
// OutcomeException, Err alone for OutcomeError.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeException
	OutcomeError
)

type Result struct {
	Outcome Outcome
	Value   *handle.Handle
	Message string
	Err     error
}

// TryCallStatic wraps invoke.Engine.CallStatic, additionally checking
// the VM's per-thread exception flag. On a thrown exception, the
// exception's message (via its to-string method) is recorded on s and
// Outcome is OutcomeException rather than a Go error — callers that
// only care about success/failure can still check Result.Err == nil,
// but code that wants to handle Haxe exceptions specially can switch
// on Outcome.
func (s *State) TryCallStatic(eng *invoke.Engine, className, methodName string, argv []*handle.Handle) Result {
	v, err := eng.CallStatic(className, methodName, argv)
	if err == nil {
		return Result{Outcome: OutcomeOK, Value: v}
	}
	if hlrtExceptionPending() {
		msg := s.captureFromVM()
		return Result{Outcome: OutcomeException, Message: msg, Err: err}
	}
	return Result{Outcome: OutcomeError, Err: err}
}

func hlrtExceptionPending() bool {
	return hlrt.ThreadExceptionPending()
}

// captureFromVM copies the current thread's exception value's message
// string and trace (if available, spec.md §4.7) into host-owned state,
// roots the raw exception value for later inspection, and clears the
// VM-side flag.
func (s *State) captureFromVM() string {
	excVal := hlrt.ThreadException()
	msgVal := hlrt.ToString(excVal)
	msg := value.FromUTF16(hlrt.StringUnits(msgVal))
	trace := captureTrace()

	rooted, err := s.handles.WrapRooted(excVal)
	if err != nil {
		rooted = nil
	}

	s.mu.Lock()
	old := s.value
	s.pending = true
	s.message = msg
	s.trace = trace
	s.value = rooted
	s.mu.Unlock()
	old.Release()

	hlrt.ClearThreadException()
	return msg
}

func captureTrace() []string {
	frames := hlrt.ThreadExceptionTraceValues()
	if len(frames) == 0 {
		return nil
	}
	out := make([]string, len(frames))
	for i, f := range frames {
		out[i] = value.FromUTF16(hlrt.StringUnits(f))
	}
	return out
}

// HasException reports whether an exception is currently recorded.
func (s *State) HasException() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Message returns the most recently recorded exception message, or ""
// if none.
func (s *State) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

// Trace returns the stack trace captured with the most recent
// exception, one frame per entry, most recent first. Nil if the
// runtime captured none (spec.md §4.7 — trace is "if available").
func (s *State) Trace() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.trace
}

// Value returns the raw VM value of the most recently recorded
// exception, or nil if none — for callers that need the thrown value
// itself rather than just its string message (e.g. to check its
// runtime type).
func (s *State) Value() *handle.Handle {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Clear resets the recorded exception state and releases the rooted
// exception value, if any.
func (s *State) Clear() {
	s.mu.Lock()
	old := s.value
	s.pending = false
	s.message = ""
	s.trace = nil
	s.value = nil
	s.mu.Unlock()
	old.Release()
}
