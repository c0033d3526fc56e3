package ssedata

import (
  "context"
  "github.com/yungbote/goalpath-backend/internal/sse"
)

type key struct{}

var sseDataKey key

type SSEData struct {
  Messages []sse.SSEMessage
}

func WithSSEData(ctx context.Context) context.Context {
  data := &SSEData{
    Messages: make([]sse.SSEMessage, 0),
  }
  return context.WithValue(ctx, sseDataKey, data)
}

// Detach hides the request's SSE buffer from derived contexts. Background
// continuations outlive the request that would flush the buffer, so they
// broadcast directly instead of appending to it.
func Detach(ctx context.Context) context.Context {
  return context.WithValue(ctx, sseDataKey, (*SSEData)(nil))
}

func GetSSEData(ctx context.Context) *SSEData {
  val := ctx.Value(sseDataKey)
  ssd, ok := val.(*SSEData)
  if !ok || ssd == nil {
    return nil
  }
  return ssd
}

func (d *SSEData) AppendMessage(msg sse.SSEMessage) {
  d.Messages = append(d.Messages, msg)
}
