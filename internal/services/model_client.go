package services

import (
  "bytes"
  "context"
  "encoding/json"
  "fmt"
  "io"
  "net/http"
  "strings"
  "time"

  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/utils"
)

// CompletionRequest is one structured-output call to the generation model.
// The response is contractually a single JSON object (response_format
// json_object at the API boundary).
type CompletionRequest struct {
  Op        string
  System    string
  User      string
  MaxTokens int
  Timeout   time.Duration
}

// ModelClient is the thin, fallible call to the generation model service.
// It does not retry and does not repair output; that is the invoker's and
// the repair routine's job.
type ModelClient interface {
  Complete(ctx context.Context, req CompletionRequest) (string, error)
  ModelName() string
}

type openAIModelClient struct {
  log        *logger.Logger
  baseURL    string
  apiKey     string
  model      string
  httpClient *http.Client
}

func NewOpenAIModelClient(log *logger.Logger) (ModelClient, error) {
  apiKey := utils.GetEnv("OPENAI_API_KEY", "", nil)
  if apiKey == "" {
    return nil, fmt.Errorf("missing OPENAI_API_KEY")
  }
  baseURL := utils.GetEnv("OPENAI_BASE_URL", "https://api.openai.com", log)
  model := utils.GetEnv("OPENAI_MODEL", "gpt-4o-mini", log)

  return &openAIModelClient{
    log:     log.With("service", "ModelClient"),
    baseURL: baseURL,
    apiKey:  apiKey,
    model:   model,
    // Per-request timeouts come from CompletionRequest; the client-level
    // timeout is only a hard upper bound.
    httpClient: &http.Client{Timeout: 5 * time.Minute},
  }, nil
}

func (c *openAIModelClient) ModelName() string { return c.model }

type chatCompletionRequest struct {
  Model    string `json:"model"`
  Messages []struct {
    Role    string `json:"role"`
    Content string `json:"content"`
  } `json:"messages"`
  MaxTokens      int            `json:"max_tokens,omitempty"`
  Temperature    float64        `json:"temperature"`
  ResponseFormat map[string]any `json:"response_format"`
}

type chatCompletionResponse struct {
  Choices []struct {
    Message struct {
      Content string `json:"content"`
      Refusal string `json:"refusal,omitempty"`
    } `json:"message"`
    FinishReason string `json:"finish_reason"`
  } `json:"choices"`
}

func (c *openAIModelClient) Complete(ctx context.Context, req CompletionRequest) (string, error) {
  if strings.TrimSpace(req.User) == "" {
    return "", fmt.Errorf("%w: empty user prompt", ErrInvalidPrompt)
  }

  timeout := req.Timeout
  if timeout <= 0 {
    timeout = 30 * time.Second
  }
  callCtx, cancel := context.WithTimeout(ctx, timeout)
  defer cancel()

  body := chatCompletionRequest{
    Model:       c.model,
    MaxTokens:   req.MaxTokens,
    Temperature: 0.2,
    ResponseFormat: map[string]any{
      "type": "json_object",
    },
  }
  body.Messages = []struct {
    Role    string `json:"role"`
    Content string `json:"content"`
  }{
    {Role: "system", Content: req.System},
    {Role: "user", Content: req.User},
  }

  var buf bytes.Buffer
  if err := json.NewEncoder(&buf).Encode(body); err != nil {
    return "", &ModelCallError{Op: req.Op, Err: err}
  }

  httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, c.baseURL+"/v1/chat/completions", &buf)
  if err != nil {
    return "", &ModelCallError{Op: req.Op, Err: err}
  }
  httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
  httpReq.Header.Set("Content-Type", "application/json")

  resp, err := c.httpClient.Do(httpReq)
  if err != nil {
    return "", &ModelCallError{Op: req.Op, Err: err}
  }
  raw, readErr := io.ReadAll(resp.Body)
  _ = resp.Body.Close()
  if readErr != nil {
    return "", &ModelCallError{Op: req.Op, Err: readErr}
  }
  if resp.StatusCode < 200 || resp.StatusCode >= 300 {
    return "", &ModelCallError{Op: req.Op, Err: fmt.Errorf("http %d: %s", resp.StatusCode, string(raw))}
  }

  var out chatCompletionResponse
  if err := json.Unmarshal(raw, &out); err != nil {
    return "", &ModelCallError{Op: req.Op, Err: fmt.Errorf("decode response: %w", err)}
  }
  if len(out.Choices) == 0 {
    return "", &ModelCallError{Op: req.Op, Err: fmt.Errorf("no choices in response")}
  }
  if refusal := out.Choices[0].Message.Refusal; refusal != "" {
    return "", &ModelCallError{Op: req.Op, Err: fmt.Errorf("model refused: %s", refusal)}
  }
  text := out.Choices[0].Message.Content
  if strings.TrimSpace(text) == "" {
    return "", &ModelCallError{Op: req.Op, Err: fmt.Errorf("empty completion text")}
  }
  return text, nil
}
