package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hibiken/asynq"
)

type fakeExpirer struct {
	at  time.Time
	err error
}

func (f *fakeExpirer) ExpireLapsed(_ context.Context, now time.Time) (int64, error) {
	f.at = now
	return 3, f.err
}

func TestHandleExpireTaskPassesUTCNow(t *testing.T) {
	riyadh := time.FixedZone("AST", 3*3600)
	fixed := time.Date(2026, 5, 1, 9, 0, 0, 0, riyadh)
	exp := &fakeExpirer{}

	handler := HandleExpireTask(exp, func() time.Time { return fixed })
	if err := handler.ProcessTask(context.Background(), asynq.NewTask(TypePriceListExpire, nil)); err != nil {
		t.Fatalf("ProcessTask: %v", err)
	}
	if !exp.at.Equal(fixed) || exp.at.Location() != time.UTC {
		t.Fatalf("expirer got %v, want %v in UTC", exp.at, fixed)
	}
}

func TestHandleExpireTaskReturnsErrorForRetry(t *testing.T) {
	exp := &fakeExpirer{err: errors.New("mongo unavailable")}
	handler := HandleExpireTask(exp, time.Now)
	if err := handler.ProcessTask(context.Background(), asynq.NewTask(TypePriceListExpire, nil)); err == nil {
		t.Fatalf("expected error so asynq retries the task")
	}
}
