package services

import (
  "encoding/json"
  "errors"
  "testing"
)

func TestRepairJSONObject_CleanObjectPassesThrough(t *testing.T) {
  raw := `{"title": "Learn Spanish", "expected_phase_count": 4}`
  got, err := RepairJSONObject(raw)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  if string(got) != raw {
    t.Fatalf("clean object was modified: %s", got)
  }
}

func TestRepairJSONObject_StripsSurroundingProse(t *testing.T) {
  raw := "Sure! Here is the plan:\n```json\n{\"title\": \"x\", \"overview\": \"y\"}\n```\nLet me know."
  got, err := RepairJSONObject(raw)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  var obj map[string]any
  if err := json.Unmarshal(got, &obj); err != nil {
    t.Fatalf("repaired output does not parse: %v", err)
  }
  if obj["title"] != "x" {
    t.Fatalf("unexpected object: %v", obj)
  }
}

func TestRepairJSONObject_RecoversTruncatedTail(t *testing.T) {
  // A nested object closed, then the stream cut off mid-key.
  raw := `{"phases": [{"title": "a", "duration_weeks": 2}], "extra`
  _, err := RepairJSONObject(raw)
  if err == nil {
    t.Fatalf("top-level object never closes, expected failure")
  }

  // Here the top-level object does close before trailing garbage.
  raw = `{"phases": [{"title": "a"}]} trailing junk {`
  got, err := RepairJSONObject(raw)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  var obj map[string]any
  if err := json.Unmarshal(got, &obj); err != nil {
    t.Fatalf("repaired output does not parse: %v", err)
  }
  if _, ok := obj["phases"]; !ok {
    t.Fatalf("lost phases field: %v", obj)
  }
}

func TestRepairJSONObject_BracesInsideStringsIgnored(t *testing.T) {
  raw := `prefix {"note": "use {curly} braces \" and } here", "n": 1} suffix`
  got, err := RepairJSONObject(raw)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  var obj map[string]any
  if err := json.Unmarshal(got, &obj); err != nil {
    t.Fatalf("repaired output does not parse: %v", err)
  }
  if obj["n"] != float64(1) {
    t.Fatalf("unexpected object: %v", obj)
  }
}

func TestRepairJSONObject_UnsalvageableTextFails(t *testing.T) {
  for _, raw := range []string{
    "",
    "   ",
    "no json here at all",
    `{"never": "closes"`,
  } {
    _, err := RepairJSONObject(raw)
    var parseErr *ResponseParseError
    if !errors.As(err, &parseErr) {
      t.Fatalf("input %q: expected ResponseParseError, got %v", raw, err)
    }
  }
}

func TestRepairJSONObject_Idempotent(t *testing.T) {
  raw := "noise {\"a\": [1, 2, {\"b\": true}]} more noise"
  once, err := RepairJSONObject(raw)
  if err != nil {
    t.Fatalf("unexpected error: %v", err)
  }
  twice, err := RepairJSONObject(string(once))
  if err != nil {
    t.Fatalf("unexpected error on second pass: %v", err)
  }
  if string(once) != string(twice) {
    t.Fatalf("repair is not idempotent: %s vs %s", once, twice)
  }
}
