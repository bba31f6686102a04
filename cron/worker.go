package cron

import (
	"context"
	"fmt"
	"time"

	"freightadmin/config"
	"freightadmin/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypePriceListExpire = "pricelist:expire"

// Expirer deactivates price lists whose validity window has ended.
type Expirer interface {
	ExpireLapsed(ctx context.Context, now time.Time) (int64, error)
}

// ExpiryWorker schedules and processes the price-list expiry task.
type ExpiryWorker struct {
	scheduler *asynq.Scheduler
	server    *asynq.Server
	mux       *asynq.ServeMux
}

func redisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewExpiryWorker registers the periodic task under spec (cron syntax or "@every 1h").
func NewExpiryWorker(expirer Expirer, spec string) (*ExpiryWorker, error) {
	opt := redisOpt()

	scheduler := asynq.NewScheduler(opt, &asynq.SchedulerOpts{Location: time.UTC})
	task := asynq.NewTask(TypePriceListExpire, nil)
	if _, err := scheduler.Register(spec, task, asynq.Unique(time.Minute)); err != nil {
		return nil, fmt.Errorf("register %s with spec %q: %w", TypePriceListExpire, spec, err)
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: 1,
		Queues: map[string]int{
			"default": 1,
		},
	})

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypePriceListExpire, HandleExpireTask(expirer, time.Now))

	return &ExpiryWorker{scheduler: scheduler, server: server, mux: mux}, nil
}

// Start runs the scheduler and worker in the background.
func (w *ExpiryWorker) Start() error {
	logger := utils.GetLogger()
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("start expiry worker: %w", err)
	}
	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return fmt.Errorf("start expiry scheduler: %w", err)
	}
	logger.Info("Price list expiry worker started")
	return nil
}

func (w *ExpiryWorker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

// HandleExpireTask returns the task handler. now is injectable for tests.
func HandleExpireTask(expirer Expirer, now func() time.Time) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()
		n, err := expirer.ExpireLapsed(ctx, now().UTC())
		if err != nil {
			logger.Error("Price list expiry failed", zap.String("task", task.Type()), zap.Error(err))
			return err
		}
		logger.Debug("Price list expiry finished", zap.Int64("deactivated", n))
		return nil
	}
}
