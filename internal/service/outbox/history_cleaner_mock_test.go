package outbox

import (
	"context"
	"sync"
)

var _ historyCleaner = &historyCleanerMock{}

type historyCleanerMock struct {
	CleanupFunc func(ctx context.Context) (int, error)

	calls struct {
		Cleanup []struct {
			Ctx context.Context
		}
	}
	lockCleanup sync.RWMutex
}

func (mock *historyCleanerMock) Cleanup(ctx context.Context) (int, error) {
	if mock.CleanupFunc == nil {
		panic("historyCleanerMock.CleanupFunc: method is nil but historyCleaner.Cleanup was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockCleanup.Lock()
	mock.calls.Cleanup = append(mock.calls.Cleanup, callInfo)
	mock.lockCleanup.Unlock()
	return mock.CleanupFunc(ctx)
}

func (mock *historyCleanerMock) CleanupCalls() []struct {
	Ctx context.Context
} {
	mock.lockCleanup.RLock()
	calls := mock.calls.Cleanup
	mock.lockCleanup.RUnlock()
	return calls
}
