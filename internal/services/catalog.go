package services

import (
  _ "embed"
  "fmt"

  "gopkg.in/yaml.v3"

  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/types"
)

//go:embed templates.yaml
var templatesYAML []byte

// TemplateCatalog is the static, curated template data. Initialized once at
// startup and never mutated afterwards, so it needs no synchronization.
type TemplateCatalog struct {
  log       *logger.Logger
  templates map[string]*types.Template
  keys      []catalogKey
  groups    []keywordGroup
}

type catalogKey struct {
  Phrase     string
  TemplateID string
}

type keywordGroup struct {
  TemplateID string
  Words      map[string]bool
}

type catalogFile struct {
  Templates   []*types.Template `yaml:"templates"`
  CatalogKeys []struct {
    Phrase   string `yaml:"phrase"`
    Template string `yaml:"template"`
  } `yaml:"catalog_keys"`
  KeywordGroups []struct {
    Template string   `yaml:"template"`
    Words    []string `yaml:"words"`
  } `yaml:"keyword_groups"`
}

func NewTemplateCatalog(log *logger.Logger) (*TemplateCatalog, error) {
  var file catalogFile
  if err := yaml.Unmarshal(templatesYAML, &file); err != nil {
    return nil, fmt.Errorf("parse template catalog: %w", err)
  }
  if len(file.Templates) == 0 {
    return nil, fmt.Errorf("template catalog is empty")
  }

  tc := &TemplateCatalog{
    log:       log.With("service", "TemplateCatalog"),
    templates: make(map[string]*types.Template, len(file.Templates)),
  }
  for _, tpl := range file.Templates {
    if tpl == nil || tpl.ID == "" {
      return nil, fmt.Errorf("template catalog entry missing id")
    }
    if len(tpl.Phases) == 0 {
      return nil, fmt.Errorf("template %s has no phases", tpl.ID)
    }
    tc.templates[tpl.ID] = tpl
  }

  // Keys and groups keep their file order so matching stays deterministic.
  for _, k := range file.CatalogKeys {
    if _, ok := tc.templates[k.Template]; !ok {
      return nil, fmt.Errorf("catalog key %q references unknown template %s", k.Phrase, k.Template)
    }
    tc.keys = append(tc.keys, catalogKey{Phrase: k.Phrase, TemplateID: k.Template})
  }
  for _, g := range file.KeywordGroups {
    if _, ok := tc.templates[g.Template]; !ok {
      return nil, fmt.Errorf("keyword group references unknown template %s", g.Template)
    }
    words := make(map[string]bool, len(g.Words))
    for _, w := range g.Words {
      words[w] = true
    }
    tc.groups = append(tc.groups, keywordGroup{TemplateID: g.Template, Words: words})
  }

  tc.log.Info("Template catalog loaded",
    "templates", len(tc.templates),
    "keys", len(tc.keys),
    "keyword_groups", len(tc.groups),
  )
  return tc, nil
}

func (tc *TemplateCatalog) Get(id string) *types.Template {
  return tc.templates[id]
}
