package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/repos"
  "github.com/yungbote/goalpath-backend/internal/requestdata"
  "github.com/yungbote/goalpath-backend/internal/types"
)

// RoadmapWithPhases is the read model handed to API consumers.
type RoadmapWithPhases struct {
  Roadmap *types.Roadmap `json:"roadmap"`
  Phases  []*types.Phase `json:"phases"`
}

// GenerationStatus summarizes where a roadmap is in its lifecycle
// without shipping the full plan payload.
type GenerationStatus struct {
  RoadmapID       uuid.UUID `json:"roadmap_id"`
  Status          string    `json:"status"`
  Terminal        bool      `json:"terminal"`
  PhaseCount      int       `json:"phase_count"`
  ModelIdentifier string    `json:"model_identifier,omitempty"`
  Error           string    `json:"error,omitempty"`
}

type RoadmapStatusService interface {
  GetRoadmap(ctx context.Context, roadmapID uuid.UUID) (*RoadmapWithPhases, error)
  GetGenerationStatus(ctx context.Context, roadmapID uuid.UUID) (*GenerationStatus, error)
  GetLatestForGoal(ctx context.Context, goalID uuid.UUID) (*RoadmapWithPhases, error)
}

type roadmapStatusService struct {
  db  *gorm.DB
  log *logger.Logger

  goalRepo    repos.GoalRepo
  roadmapRepo repos.RoadmapRepo
  phaseRepo   repos.PhaseRepo
}

func NewRoadmapStatusService(
  db *gorm.DB,
  baseLog *logger.Logger,
  goalRepo repos.GoalRepo,
  roadmapRepo repos.RoadmapRepo,
  phaseRepo repos.PhaseRepo,
) RoadmapStatusService {
  return &roadmapStatusService{
    db:          db,
    log:         baseLog.With("service", "RoadmapStatusService"),
    goalRepo:    goalRepo,
    roadmapRepo: roadmapRepo,
    phaseRepo:   phaseRepo,
  }
}

func (s *roadmapStatusService) GetRoadmap(ctx context.Context, roadmapID uuid.UUID) (*RoadmapWithPhases, error) {
  roadmap, err := s.loadOwnedRoadmap(ctx, roadmapID)
  if err != nil {
    return nil, err
  }
  return s.withPhases(ctx, roadmap)
}

func (s *roadmapStatusService) GetGenerationStatus(ctx context.Context, roadmapID uuid.UUID) (*GenerationStatus, error) {
  roadmap, err := s.loadOwnedRoadmap(ctx, roadmapID)
  if err != nil {
    return nil, err
  }
  phases, err := s.phaseRepo.GetByRoadmapIDs(ctx, nil, []uuid.UUID{roadmap.ID})
  if err != nil {
    return nil, fmt.Errorf("load phases: %w", err)
  }
  return &GenerationStatus{
    RoadmapID:       roadmap.ID,
    Status:          roadmap.GenerationStatus,
    Terminal:        types.RoadmapStatusTerminal(roadmap.GenerationStatus),
    PhaseCount:      len(phases),
    ModelIdentifier: roadmap.ModelIdentifier,
    Error:           roadmap.Error,
  }, nil
}

func (s *roadmapStatusService) GetLatestForGoal(ctx context.Context, goalID uuid.UUID) (*RoadmapWithPhases, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("not authenticated")
  }

  goals, err := s.goalRepo.GetByIDs(ctx, nil, []uuid.UUID{goalID})
  if err != nil {
    return nil, fmt.Errorf("load goal: %w", err)
  }
  if len(goals) == 0 || goals[0] == nil || goals[0].UserID != rd.UserID {
    return nil, &NotFoundError{Resource: "goal"}
  }

  roadmap, err := s.roadmapRepo.GetLatestByGoalID(ctx, nil, goalID)
  if err != nil {
    return nil, fmt.Errorf("load roadmap: %w", err)
  }
  if roadmap == nil {
    return nil, &NotFoundError{Resource: "roadmap"}
  }
  return s.withPhases(ctx, roadmap)
}

func (s *roadmapStatusService) withPhases(ctx context.Context, roadmap *types.Roadmap) (*RoadmapWithPhases, error) {
  phases, err := s.phaseRepo.GetByRoadmapIDs(ctx, nil, []uuid.UUID{roadmap.ID})
  if err != nil {
    return nil, fmt.Errorf("load phases: %w", err)
  }
  return &RoadmapWithPhases{Roadmap: roadmap, Phases: phases}, nil
}

func (s *roadmapStatusService) loadOwnedRoadmap(ctx context.Context, roadmapID uuid.UUID) (*types.Roadmap, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return nil, fmt.Errorf("not authenticated")
  }
  roadmaps, err := s.roadmapRepo.GetByIDs(ctx, nil, []uuid.UUID{roadmapID})
  if err != nil {
    return nil, fmt.Errorf("load roadmap: %w", err)
  }
  if len(roadmaps) == 0 || roadmaps[0] == nil || roadmaps[0].UserID != rd.UserID {
    return nil, &NotFoundError{Resource: "roadmap"}
  }
  return roadmaps[0], nil
}
