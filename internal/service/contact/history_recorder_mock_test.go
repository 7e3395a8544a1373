package contact

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmkorzh/contacts-backend/internal/domain"
)

var _ historyRecorder = &historyRecorderMock{}

type historyRecorderMock struct {
	AppendFunc func(ctx context.Context, subjectID uuid.UUID, op domain.OperationType, snapshot *domain.ContactSnapshot) error

	calls struct {
		Append []struct {
			Ctx       context.Context
			SubjectID uuid.UUID
			Op        domain.OperationType
			Snapshot  *domain.ContactSnapshot
		}
	}
	lockAppend sync.RWMutex
}

func (mock *historyRecorderMock) Append(ctx context.Context, subjectID uuid.UUID, op domain.OperationType, snapshot *domain.ContactSnapshot) error {
	if mock.AppendFunc == nil {
		panic("historyRecorderMock.AppendFunc: method is nil but historyRecorder.Append was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		SubjectID uuid.UUID
		Op        domain.OperationType
		Snapshot  *domain.ContactSnapshot
	}{Ctx: ctx, SubjectID: subjectID, Op: op, Snapshot: snapshot}
	mock.lockAppend.Lock()
	mock.calls.Append = append(mock.calls.Append, callInfo)
	mock.lockAppend.Unlock()
	return mock.AppendFunc(ctx, subjectID, op, snapshot)
}

func (mock *historyRecorderMock) AppendCalls() []struct {
	Ctx       context.Context
	SubjectID uuid.UUID
	Op        domain.OperationType
	Snapshot  *domain.ContactSnapshot
} {
	mock.lockAppend.RLock()
	calls := mock.calls.Append
	mock.lockAppend.RUnlock()
	return calls
}
