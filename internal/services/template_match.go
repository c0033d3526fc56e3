package services

import (
  "strings"
  "unicode"

  "github.com/yungbote/goalpath-backend/internal/types"
)

// Match resolves a raw goal title to a catalog template, or nil. The title
// is lowercased and trimmed; an exact substring match against catalog key
// phrases wins immediately, otherwise title tokens are checked against the
// fixed keyword groups. No fuzzy scoring: matching is deterministic and
// explainable.
func (tc *TemplateCatalog) Match(title string) *types.Template {
  normalized := strings.ToLower(strings.TrimSpace(title))
  if normalized == "" {
    return nil
  }

  for _, key := range tc.keys {
    if strings.Contains(normalized, key.Phrase) {
      return tc.templates[key.TemplateID]
    }
  }

  tokens := strings.FieldsFunc(normalized, func(r rune) bool {
    return !unicode.IsLetter(r) && !unicode.IsDigit(r)
  })
  for _, group := range tc.groups {
    for _, token := range tokens {
      if group.Words[token] {
        return tc.templates[group.TemplateID]
      }
    }
  }
  return nil
}
