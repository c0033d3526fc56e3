package services

import (
  "context"
  "errors"
  "fmt"
  "testing"
  "time"

  "github.com/yungbote/goalpath-backend/internal/logger"
)

func testLogger(t *testing.T) *logger.Logger {
  t.Helper()
  log, err := logger.New("development")
  if err != nil {
    t.Fatalf("logger init: %v", err)
  }
  return log
}

type fakeModelClient struct {
  calls    int
  failures int
  err      error
  output   string
}

func (f *fakeModelClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
  f.calls++
  if f.calls <= f.failures {
    return "", f.err
  }
  return f.output, nil
}

func (f *fakeModelClient) ModelName() string { return "fake-model" }

func TestInvoker_SucceedsAfterTransientFailures(t *testing.T) {
  client := &fakeModelClient{
    failures: 2,
    err:      &ModelCallError{Op: "overview", Err: errors.New("upstream 500")},
    output:   `{"ok": true}`,
  }
  iv := NewInvoker(testLogger(t), client, time.Millisecond)

  out, err := iv.Complete(context.Background(), CompletionRequest{Op: "overview", User: "x"})
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if out != `{"ok": true}` {
    t.Fatalf("unexpected output %q", out)
  }
  if client.calls != 3 {
    t.Fatalf("expected 3 calls, got %d", client.calls)
  }
}

func TestInvoker_StopsAfterThreeAttempts(t *testing.T) {
  wantErr := &ModelCallError{Op: "stages", Err: errors.New("timeout")}
  client := &fakeModelClient{failures: 10, err: wantErr}
  iv := NewInvoker(testLogger(t), client, time.Millisecond)

  _, err := iv.Complete(context.Background(), CompletionRequest{Op: "stages", User: "x"})
  if err == nil {
    t.Fatalf("expected error after exhausting retries")
  }
  var mc *ModelCallError
  if !errors.As(err, &mc) {
    t.Fatalf("expected ModelCallError, got %v", err)
  }
  if client.calls != 3 {
    t.Fatalf("expected exactly 3 attempts, got %d", client.calls)
  }
}

func TestInvoker_InvalidPromptNeverRetried(t *testing.T) {
  client := &fakeModelClient{
    failures: 10,
    err:      fmt.Errorf("%w: empty user prompt", ErrInvalidPrompt),
  }
  iv := NewInvoker(testLogger(t), client, time.Millisecond)

  _, err := iv.Complete(context.Background(), CompletionRequest{Op: "overview"})
  if !errors.Is(err, ErrInvalidPrompt) {
    t.Fatalf("expected ErrInvalidPrompt, got %v", err)
  }
  if client.calls != 1 {
    t.Fatalf("expected a single attempt, got %d", client.calls)
  }
}

func TestInvoker_LinearBackoffBetweenAttempts(t *testing.T) {
  base := 30 * time.Millisecond
  client := &fakeModelClient{failures: 10, err: &ModelCallError{Op: "x", Err: errors.New("boom")}}
  iv := NewInvoker(testLogger(t), client, base)

  start := time.Now()
  _, _ = iv.Complete(context.Background(), CompletionRequest{Op: "x", User: "y"})
  elapsed := time.Since(start)

  // Waits are 1x base then 2x base.
  if elapsed < 3*base {
    t.Fatalf("expected at least %v of backoff, elapsed %v", 3*base, elapsed)
  }
}

func TestInvoker_ContextCancelAbortsBackoff(t *testing.T) {
  client := &fakeModelClient{failures: 10, err: &ModelCallError{Op: "x", Err: errors.New("boom")}}
  iv := NewInvoker(testLogger(t), client, time.Minute)

  ctx, cancel := context.WithCancel(context.Background())
  go func() {
    time.Sleep(10 * time.Millisecond)
    cancel()
  }()

  start := time.Now()
  _, err := iv.Complete(ctx, CompletionRequest{Op: "x", User: "y"})
  if !errors.Is(err, context.Canceled) {
    t.Fatalf("expected context.Canceled, got %v", err)
  }
  if time.Since(start) > 5*time.Second {
    t.Fatalf("cancel did not abort the backoff wait")
  }
}
