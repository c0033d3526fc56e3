package repos

import (
  "context"
  "time"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/types"
)

type TaskRepo interface {
  Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Task, error)
  GetByPhaseID(ctx context.Context, tx *gorm.DB, phaseID uuid.UUID) ([]*types.Task, error)

  // CountByPhaseID backs the derived "has tasks" check; task existence is
  // never stored as a flag on the phase.
  CountByPhaseID(ctx context.Context, tx *gorm.DB, phaseID uuid.UUID) (int64, error)

  MarkCompleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, completedAt time.Time) error
}

type taskRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewTaskRepo(db *gorm.DB, baseLog *logger.Logger) TaskRepo {
  return &taskRepo{db: db, log: baseLog.With("repo", "TaskRepo")}
}

func (r *taskRepo) Create(ctx context.Context, tx *gorm.DB, tasks []*types.Task) ([]*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(tasks) == 0 {
    return []*types.Task{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&tasks).Error; err != nil {
    return nil, err
  }
  return tasks, nil
}

func (r *taskRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Task
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

func (r *taskRepo) GetByPhaseID(ctx context.Context, tx *gorm.DB, phaseID uuid.UUID) ([]*types.Task, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Task
  if phaseID == uuid.Nil {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("phase_id = ?", phaseID).
    Order("scheduled_date ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *taskRepo) CountByPhaseID(ctx context.Context, tx *gorm.DB, phaseID uuid.UUID) (int64, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if phaseID == uuid.Nil {
    return 0, nil
  }
  var count int64
  if err := transaction.WithContext(ctx).
    Model(&types.Task{}).
    Where("phase_id = ?", phaseID).
    Count(&count).Error; err != nil {
    return 0, err
  }
  return count, nil
}

func (r *taskRepo) MarkCompleted(ctx context.Context, tx *gorm.DB, id uuid.UUID, completedAt time.Time) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if id == uuid.Nil {
    return nil
  }
  return transaction.WithContext(ctx).
    Model(&types.Task{}).
    Where("id = ?", id).
    Updates(map[string]interface{}{
      "completed":    true,
      "completed_at": completedAt,
      "updated_at":   time.Now(),
    }).Error
}
