package services

import (
  "context"
  "errors"
  "time"

  "github.com/yungbote/goalpath-backend/internal/logger"
)

const invokerMaxAttempts = 3

// Invoker wraps the model client with bounded retries and linear backoff:
// at most 3 attempts total, waiting attempt x baseDelay between them.
// Input-validation errors are never retried. On exhaustion the last
// observed error is returned; callers decide whether that is fatal.
type Invoker struct {
  log         *logger.Logger
  client      ModelClient
  maxAttempts int
  baseDelay   time.Duration
}

func NewInvoker(log *logger.Logger, client ModelClient, baseDelay time.Duration) *Invoker {
  if baseDelay <= 0 {
    baseDelay = 400 * time.Millisecond
  }
  return &Invoker{
    log:         log.With("service", "Invoker"),
    client:      client,
    maxAttempts: invokerMaxAttempts,
    baseDelay:   baseDelay,
  }
}

func (iv *Invoker) ModelName() string { return iv.client.ModelName() }

func (iv *Invoker) Complete(ctx context.Context, req CompletionRequest) (string, error) {
  var lastErr error
  for attempt := 1; attempt <= iv.maxAttempts; attempt++ {
    out, err := iv.client.Complete(ctx, req)
    if err == nil {
      return out, nil
    }
    if errors.Is(err, ErrInvalidPrompt) {
      return "", err
    }
    lastErr = err
    if attempt == iv.maxAttempts {
      break
    }

    wait := time.Duration(attempt) * iv.baseDelay
    iv.log.Warn("Model call failed, retrying",
      "op", req.Op,
      "attempt", attempt,
      "max_attempts", iv.maxAttempts,
      "wait", wait.String(),
      "error", err.Error(),
    )
    select {
    case <-ctx.Done():
      return "", ctx.Err()
    case <-time.After(wait):
    }
  }
  return "", lastErr
}
