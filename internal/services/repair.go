package services

import (
  "encoding/json"
  "strings"
)

// RepairJSONObject recovers the JSON object embedded in raw model output.
// Models occasionally wrap the object in prose or truncate it mid-stream;
// this strips the wrapping and cuts truncated text back to the last
// complete top-level object. Best effort: a successfully parsed object may
// still be semantically incomplete, which callers must check separately.
func RepairJSONObject(raw string) ([]byte, error) {
  s := strings.TrimSpace(raw)
  if s == "" {
    return nil, &ResponseParseError{Reason: "empty response text"}
  }

  // Fast path: the whole text is the object.
  if strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") {
    if b, ok := parseJSONObject(s); ok {
      return b, nil
    }
  }

  // Leading/trailing prose: slice between the first '{' and last '}'.
  first := strings.Index(s, "{")
  last := strings.LastIndex(s, "}")
  if first >= 0 && last > first {
    if b, ok := parseJSONObject(s[first : last+1]); ok {
      return b, nil
    }
  }

  // Truncated output: keep the prefix up to the last point where brace
  // depth returns to zero. If the top-level object never closes there is
  // nothing valid to salvage.
  if first >= 0 {
    if end := lastBalancedIndex(s[first:]); end > 0 {
      if b, ok := parseJSONObject(s[first : first+end]); ok {
        return b, nil
      }
    }
  }

  return nil, &ResponseParseError{Reason: "no parseable JSON object in text"}
}

func parseJSONObject(s string) ([]byte, bool) {
  var obj map[string]any
  if err := json.Unmarshal([]byte(s), &obj); err != nil {
    return nil, false
  }
  return []byte(s), true
}

// lastBalancedIndex scans s counting brace depth (string literals and
// escapes respected) and returns the index just past the last position
// where depth returns to zero after having been positive. Returns 0 when
// the text never closes its top-level object.
func lastBalancedIndex(s string) int {
  depth := 0
  opened := false
  inString := false
  escaped := false
  end := 0

  for i := 0; i < len(s); i++ {
    ch := s[i]
    if inString {
      switch {
      case escaped:
        escaped = false
      case ch == '\\':
        escaped = true
      case ch == '"':
        inString = false
      }
      continue
    }
    switch ch {
    case '"':
      inString = true
    case '{':
      depth++
      opened = true
    case '}':
      depth--
      if depth == 0 && opened {
        end = i + 1
      }
    }
  }
  return end
}
