package history

import (
	"context"
	"sync"

	"github.com/dmkorzh/contacts-backend/internal/domain"
)

var _ complianceLog = &complianceLogMock{}

type complianceLogMock struct {
	RecordFunc func(ctx context.Context, rec *domain.HistoryRecord) error

	calls struct {
		Record []struct {
			Ctx context.Context
			Rec *domain.HistoryRecord
		}
	}
	lockRecord sync.RWMutex
}

func (mock *complianceLogMock) Record(ctx context.Context, rec *domain.HistoryRecord) error {
	if mock.RecordFunc == nil {
		panic("complianceLogMock.RecordFunc: method is nil but complianceLog.Record was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec *domain.HistoryRecord
	}{Ctx: ctx, Rec: rec}
	mock.lockRecord.Lock()
	mock.calls.Record = append(mock.calls.Record, callInfo)
	mock.lockRecord.Unlock()
	return mock.RecordFunc(ctx, rec)
}

func (mock *complianceLogMock) RecordCalls() []struct {
	Ctx context.Context
	Rec *domain.HistoryRecord
} {
	mock.lockRecord.RLock()
	calls := mock.calls.Record
	mock.lockRecord.RUnlock()
	return calls
}
