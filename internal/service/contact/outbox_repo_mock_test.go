package contact

import (
	"context"
	"sync"

	"github.com/dmkorzh/contacts-backend/internal/domain"
)

var _ outboxRepo = &outboxRepoMock{}

type outboxRepoMock struct {
	CreateFunc func(ctx context.Context, rec *domain.OutboxRecord) error

	calls struct {
		Create []struct {
			Ctx context.Context
			Rec *domain.OutboxRecord
		}
	}
	lockCreate sync.RWMutex
}

func (mock *outboxRepoMock) Create(ctx context.Context, rec *domain.OutboxRecord) error {
	if mock.CreateFunc == nil {
		panic("outboxRepoMock.CreateFunc: method is nil but outboxRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec *domain.OutboxRecord
	}{Ctx: ctx, Rec: rec}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, rec)
}

func (mock *outboxRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Rec *domain.OutboxRecord
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
