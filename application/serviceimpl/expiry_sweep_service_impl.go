package serviceimpl

import (
	"context"
	"fmt"
	"time"

	"tasklist-api/domain/ports"
	"tasklist-api/domain/repositories"
	"tasklist-api/domain/services"
	"tasklist-api/pkg/logger"
	"tasklist-api/pkg/scheduler"
)

const expirySweepJobID = "expiry-sweep"

type ExpirySweepServiceImpl struct {
	taskRepo  repositories.TaskRepository
	publisher ports.EventPublisherPort
	scheduler scheduler.EventScheduler
	cronExpr  string
	warnAhead time.Duration
	now       func() time.Time
}

func NewExpirySweepService(
	taskRepo repositories.TaskRepository,
	publisher ports.EventPublisherPort,
	eventScheduler scheduler.EventScheduler,
	cronExpr string,
	warnAhead time.Duration,
) services.ExpirySweepService {
	return &ExpirySweepServiceImpl{
		taskRepo:  taskRepo,
		publisher: publisher,
		scheduler: eventScheduler,
		cronExpr:  cronExpr,
		warnAhead: warnAhead,
		now:       time.Now,
	}
}

func (s *ExpirySweepServiceImpl) Sweep(ctx context.Context) (int, error) {
	from := s.now().UTC()
	to := from.Add(s.warnAhead)

	tasks, err := s.taskRepo.ListExpiringBetween(ctx, from, to)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to list expiring tasks", "error", err)
		return 0, fmt.Errorf("list expiring tasks: %w", err)
	}

	// group ตาม user แล้วส่ง event เดียวต่อ user
	byUser := make(map[string][]uint)
	var order []string
	for _, task := range tasks {
		if _, seen := byUser[task.UserID]; !seen {
			order = append(order, task.UserID)
		}
		byUser[task.UserID] = append(byUser[task.UserID], task.ID)
	}

	for _, userID := range order {
		publishChange(ctx, s.publisher, &ports.ChangeEvent{
			Type:       ports.EventTasksExpiring,
			UserID:     userID,
			TaskIDs:    byUser[userID],
			OccurredAt: from,
		})
	}

	logger.InfoContext(ctx, "Expiry sweep finished", "tasks", len(tasks), "users", len(order), "window", s.warnAhead.String())
	return len(tasks), nil
}

// RegisterSweepJob ลง job กับ scheduler ถ้า cron ว่างถือว่าปิดไว้
func (s *ExpirySweepServiceImpl) RegisterSweepJob() error {
	if s.cronExpr == "" || s.scheduler == nil {
		logger.Info("Expiry sweep disabled")
		return nil
	}

	return s.scheduler.AddJob(expirySweepJobID, s.cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if _, err := s.Sweep(ctx); err != nil {
			logger.Error("Scheduled expiry sweep failed", "error", err)
		}
	})
}
