package ssedata

import (
  "context"
  "testing"

  "github.com/yungbote/goalpath-backend/internal/sse"
)

func TestAppendMessageCollectsInOrder(t *testing.T) {
  ctx := WithSSEData(context.Background())
  ssd := GetSSEData(ctx)
  if ssd == nil {
    t.Fatalf("no buffer on prepared context")
  }
  ssd.AppendMessage(sse.SSEMessage{Channel: "a"})
  ssd.AppendMessage(sse.SSEMessage{Channel: "b"})
  if len(ssd.Messages) != 2 || ssd.Messages[0].Channel != "a" || ssd.Messages[1].Channel != "b" {
    t.Fatalf("unexpected buffer contents: %+v", ssd.Messages)
  }
}

func TestGetSSEDataWithoutBuffer(t *testing.T) {
  if GetSSEData(context.Background()) != nil {
    t.Fatalf("expected nil buffer on bare context")
  }
}

func TestDetachHidesBufferFromDerivedContext(t *testing.T) {
  ctx := WithSSEData(context.Background())
  GetSSEData(ctx).AppendMessage(sse.SSEMessage{Channel: "a"})

  detached := Detach(ctx)
  if GetSSEData(detached) != nil {
    t.Fatalf("detached context still exposes the buffer")
  }
  if got := len(GetSSEData(ctx).Messages); got != 1 {
    t.Fatalf("original buffer changed, has %d messages", got)
  }
}
