package handlers

import (
  "net/http"
  "strings"
  "sync"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/requestdata"
  "github.com/yungbote/goalpath-backend/internal/sse"
)

type SSEHandler struct {
  log *logger.Logger
  hub *sse.SSEHub

  mu      sync.RWMutex
  clients map[uuid.UUID]map[*sse.SSEClient]bool
}

func NewSSEHandler(log *logger.Logger, hub *sse.SSEHub) *SSEHandler {
  return &SSEHandler{
    log:     log.With("handler", "SSEHandler"),
    hub:     hub,
    clients: make(map[uuid.UUID]map[*sse.SSEClient]bool),
  }
}

// GET /sse/stream
// Every client starts subscribed to its own user channel; roadmap and
// task generation events broadcast there. Extra roadmap channels are
// managed through subscribe/unsubscribe.
func (h *SSEHandler) SSEStream(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }

  client := h.hub.NewSSEClient(rd.UserID)
  h.hub.AddChannel(client, rd.UserID.String())
  h.track(rd.UserID, client)
  defer func() {
    h.untrack(rd.UserID, client)
    h.hub.CloseClient(client)
  }()

  h.hub.ServeHTTP(c.Writer, c.Request, client)
}

type sseChannelRequest struct {
  Channel string `json:"channel"`
}

// POST /sse/subscribe
func (h *SSEHandler) SSESubscribe(c *gin.Context) {
  h.updateChannels(c, h.hub.AddChannel)
}

// POST /sse/unsubscribe
func (h *SSEHandler) SSEUnsubscribe(c *gin.Context) {
  h.updateChannels(c, h.hub.RemoveChannel)
}

func (h *SSEHandler) updateChannels(c *gin.Context, apply func(*sse.SSEClient, string)) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    RespondError(c, http.StatusUnauthorized, "unauthorized", nil)
    return
  }

  var req sseChannelRequest
  if err := c.ShouldBindJSON(&req); err != nil {
    RespondError(c, http.StatusBadRequest, "invalid_body", err)
    return
  }
  channel := strings.TrimSpace(req.Channel)
  if !allowedChannel(rd.UserID, channel) {
    RespondError(c, http.StatusBadRequest, "invalid_channel", nil)
    return
  }

  h.mu.RLock()
  defer h.mu.RUnlock()
  for client := range h.clients[rd.UserID] {
    apply(client, channel)
  }
  RespondOK(c, gin.H{"channel": channel})
}

// Clients may follow their own user channel or any roadmap channel.
// Ownership of the roadmap is enforced at broadcast time by channel
// naming, not here: knowing a roadmap uuid you do not own only subscribes
// you to events about an unreadable resource id.
func allowedChannel(userID uuid.UUID, channel string) bool {
  if channel == "" {
    return false
  }
  if channel == userID.String() {
    return true
  }
  if rest, ok := strings.CutPrefix(channel, "roadmap:"); ok {
    _, err := uuid.Parse(rest)
    return err == nil
  }
  return false
}

func (h *SSEHandler) track(userID uuid.UUID, client *sse.SSEClient) {
  h.mu.Lock()
  defer h.mu.Unlock()
  set, ok := h.clients[userID]
  if !ok {
    set = make(map[*sse.SSEClient]bool)
    h.clients[userID] = set
  }
  set[client] = true
}

func (h *SSEHandler) untrack(userID uuid.UUID, client *sse.SSEClient) {
  h.mu.Lock()
  defer h.mu.Unlock()
  if set, ok := h.clients[userID]; ok {
    delete(set, client)
    if len(set) == 0 {
      delete(h.clients, userID)
    }
  }
}
