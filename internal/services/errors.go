package services

import (
  "errors"
  "fmt"
)

// ErrInvalidPrompt marks a malformed completion request. This is a
// programmer error, not a transient fault: the invoker never retries it.
var ErrInvalidPrompt = errors.New("invalid completion prompt")

// ModelCallError wraps a failed or timed-out call to the generation model
// service. Retryable by the invoker, fatal once retries are exhausted.
type ModelCallError struct {
  Op  string
  Err error
}

func (e *ModelCallError) Error() string {
  return fmt.Sprintf("model call %s failed: %v", e.Op, e.Err)
}

func (e *ModelCallError) Unwrap() error { return e.Err }

// ResponseParseError means model output could not be coerced into a JSON
// object even after repair.
type ResponseParseError struct {
  Reason string
}

func (e *ResponseParseError) Error() string {
  return fmt.Sprintf("unable to recover JSON object from model output: %s", e.Reason)
}

// IncompleteResponseError means the JSON parsed but failed semantic
// validation (missing fields, fewer phases than required).
type IncompleteResponseError struct {
  Reason string
}

func (e *IncompleteResponseError) Error() string {
  return fmt.Sprintf("incomplete model response: %s", e.Reason)
}

// NotFoundError covers a referenced goal/roadmap/phase/task that does not
// exist or does not belong to the caller. Surfaced immediately, never
// retried.
type NotFoundError struct {
  Resource string
}

func (e *NotFoundError) Error() string {
  return e.Resource + " not found"
}

// SchedulingInvariantViolation trips on input that valid callers can
// never produce (e.g. scheduling an empty phase list).
type SchedulingInvariantViolation struct {
  Reason string
}

func (e *SchedulingInvariantViolation) Error() string {
  return "scheduling invariant violated: " + e.Reason
}
