package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/types"
)

type RoadmapRepo interface {
  Create(ctx context.Context, tx *gorm.DB, roadmaps []*types.Roadmap) ([]*types.Roadmap, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Roadmap, error)

  // Latest roadmap for a goal; createPlan may be re-invoked after a failure,
  // each attempt is its own row.
  GetLatestByGoalID(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) (*types.Roadmap, error)

  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error

  // SetStatus transitions generation_status. Terminal states are never
  // overwritten: the WHERE clause excludes completed and failed, so the
  // status can only move forward.
  SetStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, updates map[string]interface{}) error
}

type roadmapRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewRoadmapRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapRepo {
  return &roadmapRepo{db: db, log: baseLog.With("repo", "RoadmapRepo")}
}

func (r *roadmapRepo) Create(ctx context.Context, tx *gorm.DB, roadmaps []*types.Roadmap) ([]*types.Roadmap, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(roadmaps) == 0 {
    return []*types.Roadmap{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&roadmaps).Error; err != nil {
    return nil, err
  }
  return roadmaps, nil
}

func (r *roadmapRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Roadmap, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Roadmap
  if len(ids) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("id IN ?", ids).
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *roadmapRepo) GetLatestByGoalID(ctx context.Context, tx *gorm.DB, goalID uuid.UUID) (*types.Roadmap, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if goalID == uuid.Nil {
    return nil, nil
  }

  var roadmap types.Roadmap
  err := transaction.WithContext(ctx).
    Where("goal_id = ?", goalID).
    Order("created_at DESC").
    Limit(1).
    Find(&roadmap).Error
  if err != nil {
    return nil, err
  }
  if roadmap.ID == uuid.Nil {
    return nil, nil
  }
  return &roadmap, nil
}

func (r *roadmapRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if id == uuid.Nil {
    return nil
  }
  if updates == nil {
    updates = map[string]interface{}{}
  }
  if _, ok := updates["updated_at"]; !ok {
    updates["updated_at"] = time.Now()
  }
  return transaction.WithContext(ctx).
    Model(&types.Roadmap{}).
    Where("id = ?", id).
    Updates(updates).Error
}

func (r *roadmapRepo) SetStatus(ctx context.Context, tx *gorm.DB, id uuid.UUID, status string, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if id == uuid.Nil {
    return nil
  }
  if updates == nil {
    updates = map[string]interface{}{}
  }
  updates["generation_status"] = status
  if _, ok := updates["updated_at"]; !ok {
    updates["updated_at"] = time.Now()
  }
  return transaction.WithContext(ctx).
    Model(&types.Roadmap{}).
    Where("id = ? AND generation_status NOT IN ?", id, []string{
      types.RoadmapStatusCompleted,
      types.RoadmapStatusFailed,
    }).
    Updates(updates).Error
}
