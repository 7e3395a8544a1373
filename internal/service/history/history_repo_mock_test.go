package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmkorzh/contacts-backend/internal/domain"
)

var _ historyRepo = &historyRepoMock{}

type historyRepoMock struct {
	CreateFunc              func(ctx context.Context, rec *domain.HistoryRecord) error
	ListBySubjectFunc       func(ctx context.Context, subjectID uuid.UUID) ([]*domain.HistoryRecord, error)
	ListByCorrelationIDFunc func(ctx context.Context, correlationID string) ([]*domain.HistoryRecord, error)
	ListByDateRangeFunc     func(ctx context.Context, from, to time.Time) ([]*domain.HistoryRecord, error)
	DeleteBeforeFunc        func(ctx context.Context, cutoff time.Time) (int, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			Rec *domain.HistoryRecord
		}
		ListBySubject []struct {
			Ctx       context.Context
			SubjectID uuid.UUID
		}
		ListByCorrelationID []struct {
			Ctx           context.Context
			CorrelationID string
		}
		ListByDateRange []struct {
			Ctx  context.Context
			From time.Time
			To   time.Time
		}
		DeleteBefore []struct {
			Ctx    context.Context
			Cutoff time.Time
		}
	}
	lockCreate              sync.RWMutex
	lockListBySubject       sync.RWMutex
	lockListByCorrelationID sync.RWMutex
	lockListByDateRange     sync.RWMutex
	lockDeleteBefore        sync.RWMutex
}

func (mock *historyRepoMock) Create(ctx context.Context, rec *domain.HistoryRecord) error {
	if mock.CreateFunc == nil {
		panic("historyRepoMock.CreateFunc: method is nil but historyRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec *domain.HistoryRecord
	}{Ctx: ctx, Rec: rec}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, rec)
}

func (mock *historyRepoMock) CreateCalls() []struct {
	Ctx context.Context
	Rec *domain.HistoryRecord
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *historyRepoMock) ListBySubject(ctx context.Context, subjectID uuid.UUID) ([]*domain.HistoryRecord, error) {
	if mock.ListBySubjectFunc == nil {
		panic("historyRepoMock.ListBySubjectFunc: method is nil but historyRepo.ListBySubject was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SubjectID uuid.UUID
	}{Ctx: ctx, SubjectID: subjectID}
	mock.lockListBySubject.Lock()
	mock.calls.ListBySubject = append(mock.calls.ListBySubject, callInfo)
	mock.lockListBySubject.Unlock()
	return mock.ListBySubjectFunc(ctx, subjectID)
}

func (mock *historyRepoMock) ListBySubjectCalls() []struct {
	Ctx       context.Context
	SubjectID uuid.UUID
} {
	mock.lockListBySubject.RLock()
	calls := mock.calls.ListBySubject
	mock.lockListBySubject.RUnlock()
	return calls
}

func (mock *historyRepoMock) ListByCorrelationID(ctx context.Context, correlationID string) ([]*domain.HistoryRecord, error) {
	if mock.ListByCorrelationIDFunc == nil {
		panic("historyRepoMock.ListByCorrelationIDFunc: method is nil but historyRepo.ListByCorrelationID was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		CorrelationID string
	}{Ctx: ctx, CorrelationID: correlationID}
	mock.lockListByCorrelationID.Lock()
	mock.calls.ListByCorrelationID = append(mock.calls.ListByCorrelationID, callInfo)
	mock.lockListByCorrelationID.Unlock()
	return mock.ListByCorrelationIDFunc(ctx, correlationID)
}

func (mock *historyRepoMock) ListByCorrelationIDCalls() []struct {
	Ctx           context.Context
	CorrelationID string
} {
	mock.lockListByCorrelationID.RLock()
	calls := mock.calls.ListByCorrelationID
	mock.lockListByCorrelationID.RUnlock()
	return calls
}

func (mock *historyRepoMock) ListByDateRange(ctx context.Context, from, to time.Time) ([]*domain.HistoryRecord, error) {
	if mock.ListByDateRangeFunc == nil {
		panic("historyRepoMock.ListByDateRangeFunc: method is nil but historyRepo.ListByDateRange was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		From time.Time
		To   time.Time
	}{Ctx: ctx, From: from, To: to}
	mock.lockListByDateRange.Lock()
	mock.calls.ListByDateRange = append(mock.calls.ListByDateRange, callInfo)
	mock.lockListByDateRange.Unlock()
	return mock.ListByDateRangeFunc(ctx, from, to)
}

func (mock *historyRepoMock) ListByDateRangeCalls() []struct {
	Ctx  context.Context
	From time.Time
	To   time.Time
} {
	mock.lockListByDateRange.RLock()
	calls := mock.calls.ListByDateRange
	mock.lockListByDateRange.RUnlock()
	return calls
}

func (mock *historyRepoMock) DeleteBefore(ctx context.Context, cutoff time.Time) (int, error) {
	if mock.DeleteBeforeFunc == nil {
		panic("historyRepoMock.DeleteBeforeFunc: method is nil but historyRepo.DeleteBefore was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Cutoff time.Time
	}{Ctx: ctx, Cutoff: cutoff}
	mock.lockDeleteBefore.Lock()
	mock.calls.DeleteBefore = append(mock.calls.DeleteBefore, callInfo)
	mock.lockDeleteBefore.Unlock()
	return mock.DeleteBeforeFunc(ctx, cutoff)
}

func (mock *historyRepoMock) DeleteBeforeCalls() []struct {
	Ctx    context.Context
	Cutoff time.Time
} {
	mock.lockDeleteBefore.RLock()
	calls := mock.calls.DeleteBefore
	mock.lockDeleteBefore.RUnlock()
	return calls
}
