package services

import (
  "encoding/json"

  "gorm.io/datatypes"

  "github.com/yungbote/goalpath-backend/internal/types"
)

func mustJSON(v any) datatypes.JSON {
  b, _ := json.Marshal(v)
  return datatypes.JSON(b)
}

func stringListJSON(list []string) datatypes.JSON {
  if list == nil {
    list = []string{}
  }
  return mustJSON(list)
}

func seedBlueprints(seeds []types.TaskSeed) []types.TaskBlueprint {
  if len(seeds) == 0 {
    return nil
  }
  out := make([]types.TaskBlueprint, 0, len(seeds))
  for _, seed := range seeds {
    out = append(out, types.TaskBlueprint{
      Title:            seed.Title,
      Description:      seed.Description,
      Type:             seed.Type,
      EstimatedMinutes: seed.EstimatedMinutes,
    })
  }
  return out
}

func decodeStringList(js datatypes.JSON) []string {
  if len(js) == 0 {
    return nil
  }
  var out []string
  if err := json.Unmarshal(js, &out); err != nil {
    return nil
  }
  return out
}
