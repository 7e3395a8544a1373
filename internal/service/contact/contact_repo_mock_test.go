package contact

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/dmkorzh/contacts-backend/internal/domain"
)

var _ contactRepo = &contactRepoMock{}

type contactRepoMock struct {
	CreateFunc  func(ctx context.Context, c *domain.Contact) error
	UpdateFunc  func(ctx context.Context, c *domain.Contact) error
	DeleteFunc  func(ctx context.Context, id uuid.UUID) error
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Contact, error)
	ListFunc    func(ctx context.Context, limit, offset int) ([]*domain.Contact, int, error)

	calls struct {
		Create []struct {
			Ctx context.Context
			C   *domain.Contact
		}
		Update []struct {
			Ctx context.Context
			C   *domain.Contact
		}
		Delete []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx    context.Context
			Limit  int
			Offset int
		}
	}
	lockCreate  sync.RWMutex
	lockUpdate  sync.RWMutex
	lockDelete  sync.RWMutex
	lockGetByID sync.RWMutex
	lockList    sync.RWMutex
}

func (mock *contactRepoMock) Create(ctx context.Context, c *domain.Contact) error {
	if mock.CreateFunc == nil {
		panic("contactRepoMock.CreateFunc: method is nil but contactRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   *domain.Contact
	}{Ctx: ctx, C: c}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, c)
}

func (mock *contactRepoMock) CreateCalls() []struct {
	Ctx context.Context
	C   *domain.Contact
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *contactRepoMock) Update(ctx context.Context, c *domain.Contact) error {
	if mock.UpdateFunc == nil {
		panic("contactRepoMock.UpdateFunc: method is nil but contactRepo.Update was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   *domain.Contact
	}{Ctx: ctx, C: c}
	mock.lockUpdate.Lock()
	mock.calls.Update = append(mock.calls.Update, callInfo)
	mock.lockUpdate.Unlock()
	return mock.UpdateFunc(ctx, c)
}

func (mock *contactRepoMock) UpdateCalls() []struct {
	Ctx context.Context
	C   *domain.Contact
} {
	mock.lockUpdate.RLock()
	calls := mock.calls.Update
	mock.lockUpdate.RUnlock()
	return calls
}

func (mock *contactRepoMock) Delete(ctx context.Context, id uuid.UUID) error {
	if mock.DeleteFunc == nil {
		panic("contactRepoMock.DeleteFunc: method is nil but contactRepo.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, id)
}

func (mock *contactRepoMock) DeleteCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *contactRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Contact, error) {
	if mock.GetByIDFunc == nil {
		panic("contactRepoMock.GetByIDFunc: method is nil but contactRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *contactRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *contactRepoMock) List(ctx context.Context, limit, offset int) ([]*domain.Contact, int, error) {
	if mock.ListFunc == nil {
		panic("contactRepoMock.ListFunc: method is nil but contactRepo.List was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Limit  int
		Offset int
	}{Ctx: ctx, Limit: limit, Offset: offset}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, limit, offset)
}

func (mock *contactRepoMock) ListCalls() []struct {
	Ctx    context.Context
	Limit  int
	Offset int
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}
