package services

import (
  "context"
  "time"

  "github.com/google/uuid"
  "github.com/redis/go-redis/v9"

  "github.com/yungbote/goalpath-backend/internal/logger"
  "github.com/yungbote/goalpath-backend/internal/utils"
)

// releaseLockScript deletes the lock only if we still own it.
var releaseLockScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
  return redis.call("del", KEYS[1])
end
return 0
`)

// PhaseLock serializes task generation per phase across replicas. Without
// a configured Redis the lock degrades to a no-op and the transactional
// count check inside task generation is the only guard, which is still
// correct for a single replica.
type PhaseLock struct {
  log    *logger.Logger
  client *redis.Client
  ttl    time.Duration
}

func NewPhaseLock(log *logger.Logger) *PhaseLock {
  pl := &PhaseLock{
    log: log.With("service", "PhaseLock"),
    ttl: 90 * time.Second,
  }
  addr := utils.GetEnv("REDIS_ADDR", "", log)
  if addr == "" {
    pl.log.Info("REDIS_ADDR not set, phase lock disabled")
    return pl
  }
  pl.client = redis.NewClient(&redis.Options{
    Addr:     addr,
    Password: utils.GetEnv("REDIS_PASSWORD", "", nil),
  })
  return pl
}

// Acquire takes the per-phase lock. The returned release func is always
// safe to call. A Redis outage degrades to no locking rather than
// blocking task generation.
func (pl *PhaseLock) Acquire(ctx context.Context, phaseID uuid.UUID) (release func(), err error) {
  noop := func() {}
  if pl.client == nil {
    return noop, nil
  }

  key := "goalpath:phase-tasks-lock:" + phaseID.String()
  token := uuid.NewString()

  for attempt := 0; attempt < 20; attempt++ {
    ok, err := pl.client.SetNX(ctx, key, token, pl.ttl).Result()
    if err != nil {
      pl.log.Warn("Phase lock unavailable, proceeding without it", "error", err)
      return noop, nil
    }
    if ok {
      return func() {
        relCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
        defer cancel()
        if err := releaseLockScript.Run(relCtx, pl.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
          pl.log.Warn("Phase lock release failed", "phase_id", phaseID, "error", err)
        }
      }, nil
    }
    select {
    case <-ctx.Done():
      return noop, ctx.Err()
    case <-time.After(500 * time.Millisecond):
    }
  }
  // Lock holder is taking too long; fall through and let the count check
  // decide.
  return noop, nil
}
