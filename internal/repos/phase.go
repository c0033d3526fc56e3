package repos

import (
  "context"

  "github.com/google/uuid"
  "gorm.io/gorm"
  "gorm.io/gorm/clause"

  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/types"
)

type PhaseRepo interface {
  Create(ctx context.Context, tx *gorm.DB, phases []*types.Phase) ([]*types.Phase, error)
  GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Phase, error)
  GetByRoadmapIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) ([]*types.Phase, error)

  // LockByID loads one phase row under FOR UPDATE so concurrent task
  // generation for the same phase serializes inside a transaction.
  LockByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Phase, error)
}

type phaseRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewPhaseRepo(db *gorm.DB, baseLog *logger.Logger) PhaseRepo {
  return &phaseRepo{db: db, log: baseLog.With("repo", "PhaseRepo")}
}

func (r *phaseRepo) Create(ctx context.Context, tx *gorm.DB, phases []*types.Phase) ([]*types.Phase, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(phases) == 0 {
    return []*types.Phase{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&phases).Error; err != nil {
    return nil, err
  }
  return phases, nil
}

func (r *phaseRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Phase, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Phase
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

func (r *phaseRepo) GetByRoadmapIDs(ctx context.Context, tx *gorm.DB, roadmapIDs []uuid.UUID) ([]*types.Phase, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var results []*types.Phase
  if len(roadmapIDs) == 0 {
    return results, nil
  }
  if err := transaction.WithContext(ctx).
    Where("roadmap_id IN ?", roadmapIDs).
    Order("phase_number ASC").
    Find(&results).Error; err != nil {
    return nil, err
  }
  return results, nil
}

func (r *phaseRepo) LockByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Phase, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if id == uuid.Nil {
    return nil, nil
  }
  var phase types.Phase
  err := transaction.WithContext(ctx).
    Clauses(clause.Locking{Strength: "UPDATE"}).
    Where("id = ?", id).
    Limit(1).
    Find(&phase).Error
  if err != nil {
    return nil, err
  }
  if phase.ID == uuid.Nil {
    return nil, nil
  }
  return &phase, nil
}
