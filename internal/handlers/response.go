package handlers

import (
  "errors"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/yungbote/goalpath-backend/internal/services"
  "github.com/yungbote/goalpath-backend/internal/sse"
  "github.com/yungbote/goalpath-backend/internal/ssedata"
)

type APIError struct {
  Message string `json:"message"`
  Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
  Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
  msg := "unknown error"
  if err != nil {
    msg = err.Error()
  }
  c.JSON(status, ErrorEnvelope{
    Error: APIError{
      Message: msg,
      Code:    code,
    },
  })
}

func RespondOK(c *gin.Context, payload any) {
  c.JSON(http.StatusOK, payload)
}

// flushSSEMessages drains request-buffered SSE messages to the hub.
func flushSSEMessages(c *gin.Context, hub *sse.SSEHub) {
  ssd := ssedata.GetSSEData(c.Request.Context())
  if ssd == nil || len(ssd.Messages) == 0 {
    return
  }
  for _, msg := range ssd.Messages {
    hub.Broadcast(msg)
  }
  ssd.Messages = nil
}

// RespondServiceError maps the service error taxonomy onto HTTP. Missing
// or foreign resources are 404, upstream model trouble is 502, everything
// unrecognized is 500.
func RespondServiceError(c *gin.Context, err error) {
  var notFound *services.NotFoundError
  if errors.As(err, &notFound) {
    RespondError(c, http.StatusNotFound, "not_found", err)
    return
  }
  var modelCall *services.ModelCallError
  if errors.As(err, &modelCall) {
    RespondError(c, http.StatusBadGateway, "model_call_failed", err)
    return
  }
  var parseErr *services.ResponseParseError
  if errors.As(err, &parseErr) {
    RespondError(c, http.StatusBadGateway, "model_response_unusable", err)
    return
  }
  var incomplete *services.IncompleteResponseError
  if errors.As(err, &incomplete) {
    RespondError(c, http.StatusBadGateway, "model_response_incomplete", err)
    return
  }
  RespondError(c, http.StatusInternalServerError, "internal_error", err)
}
