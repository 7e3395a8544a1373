package outbox

import (
	"context"
	"sync"
	"time"

	"github.com/dmkorzh/contacts-backend/internal/domain"
)

var _ outboxRepo = &outboxRepoMock{}

type outboxRepoMock struct {
	ListPendingFunc           func(ctx context.Context, limit int) ([]*domain.OutboxRecord, error)
	ListRetryReadyFunc        func(ctx context.Context, now time.Time, limit int) ([]*domain.OutboxRecord, error)
	UpdateFunc                func(ctx context.Context, rec *domain.OutboxRecord) error
	DeleteProcessedBeforeFunc func(ctx context.Context, cutoff time.Time) (int, error)
	CountByStatusFunc         func(ctx context.Context) (map[domain.OutboxStatus]int, error)

	calls struct {
		ListPending []struct {
			Ctx   context.Context
			Limit int
		}
		ListRetryReady []struct {
			Ctx   context.Context
			Now   time.Time
			Limit int
		}
		Update []struct {
			Ctx context.Context
			Rec *domain.OutboxRecord
		}
		DeleteProcessedBefore []struct {
			Ctx    context.Context
			Cutoff time.Time
		}
		CountByStatus []struct {
			Ctx context.Context
		}
	}
	lockListPending           sync.RWMutex
	lockListRetryReady        sync.RWMutex
	lockUpdate                sync.RWMutex
	lockDeleteProcessedBefore sync.RWMutex
	lockCountByStatus         sync.RWMutex
}

func (mock *outboxRepoMock) ListPending(ctx context.Context, limit int) ([]*domain.OutboxRecord, error) {
	if mock.ListPendingFunc == nil {
		panic("outboxRepoMock.ListPendingFunc: method is nil but outboxRepo.ListPending was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Limit int
	}{Ctx: ctx, Limit: limit}
	mock.lockListPending.Lock()
	mock.calls.ListPending = append(mock.calls.ListPending, callInfo)
	mock.lockListPending.Unlock()
	return mock.ListPendingFunc(ctx, limit)
}

func (mock *outboxRepoMock) ListPendingCalls() []struct {
	Ctx   context.Context
	Limit int
} {
	mock.lockListPending.RLock()
	calls := mock.calls.ListPending
	mock.lockListPending.RUnlock()
	return calls
}

func (mock *outboxRepoMock) ListRetryReady(ctx context.Context, now time.Time, limit int) ([]*domain.OutboxRecord, error) {
	if mock.ListRetryReadyFunc == nil {
		panic("outboxRepoMock.ListRetryReadyFunc: method is nil but outboxRepo.ListRetryReady was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Now   time.Time
		Limit int
	}{Ctx: ctx, Now: now, Limit: limit}
	mock.lockListRetryReady.Lock()
	mock.calls.ListRetryReady = append(mock.calls.ListRetryReady, callInfo)
	mock.lockListRetryReady.Unlock()
	return mock.ListRetryReadyFunc(ctx, now, limit)
}

func (mock *outboxRepoMock) ListRetryReadyCalls() []struct {
	Ctx   context.Context
	Now   time.Time
	Limit int
} {
	mock.lockListRetryReady.RLock()
	calls := mock.calls.ListRetryReady
	mock.lockListRetryReady.RUnlock()
	return calls
}

func (mock *outboxRepoMock) Update(ctx context.Context, rec *domain.OutboxRecord) error {
	if mock.UpdateFunc == nil {
		panic("outboxRepoMock.UpdateFunc: method is nil but outboxRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec *domain.OutboxRecord
	}{Ctx: ctx, Rec: rec}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, rec)
}

func (mock *outboxRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	Rec *domain.OutboxRecord
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *outboxRepoMock) DeleteProcessedBefore(ctx context.Context, cutoff time.Time) (int, error) {
	if mock.DeleteProcessedBeforeFunc == nil {
		panic("outboxRepoMock.DeleteProcessedBeforeFunc: method is nil but outboxRepo.DeleteProcessedBefore was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
	}{Ctx: ctx, Cutoff: cutoff}
	mock.lockDeleteProcessedBefore.Lock()
	mock.calls.DeleteProcessedBefore = append(mock.calls.DeleteProcessedBefore, callInfo)
	mock.lockDeleteProcessedBefore.Unlock()
	return mock.DeleteProcessedBeforeFunc(ctx, cutoff)
}

func (mock *outboxRepoMock) DeleteProcessedBeforeCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
} {
	mock.lockDeleteProcessedBefore.RLock()
	calls := mock.calls.DeleteProcessedBefore
	mock.lockDeleteProcessedBefore.RUnlock()
	return calls
}

func (mock *outboxRepoMock) CountByStatus(ctx context.Context) (map[domain.OutboxStatus]int, error) {
	if mock.CountByStatusFunc == nil {
		panic("outboxRepoMock.CountByStatusFunc: method is nil but outboxRepo.CountByStatus was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockCountByStatus.Lock()
	mock.calls.CountByStatus = append(mock.calls.CountByStatus, callInfo)
	mock.lockCountByStatus.Unlock()
	return mock.CountByStatusFunc(ctx)
}

func (mock *outboxRepoMock) CountByStatusCalls() []struct {
	Ctx context.Context
} {
	mock.lockCountByStatus.RLock()
	calls := mock.calls.CountByStatus
	mock.lockCountByStatus.RUnlock()
	return calls
}
