package contact

import (
	"context"
	"sync"
)

var _ cache = &cacheMock{}

type cacheMock struct {
	GetFunc           func(ctx context.Context, key string) ([]byte, error)
	SetFunc           func(ctx context.Context, key string, value []byte) error
	DeleteFunc        func(ctx context.Context, key string) error
	DeletePatternFunc func(ctx context.Context, pattern string) error

	calls struct {
		Get []struct {
			Ctx context.Context
			Key string
		}
		Set []struct {
			Ctx   context.Context
			Key   string
			Value []byte
		}
		Delete []struct {
			Ctx context.Context
			Key string
		}
		DeletePattern []struct {
			Ctx     context.Context
			Pattern string
		}
	}
	lockGet           sync.RWMutex
	lockSet           sync.RWMutex
	lockDelete        sync.RWMutex
	lockDeletePattern sync.RWMutex
}

func (mock *cacheMock) Get(ctx context.Context, key string) ([]byte, error) {
	if mock.GetFunc == nil {
		panic("cacheMock.GetFunc: method is nil but cache.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, key)
}

func (mock *cacheMock) GetCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *cacheMock) Set(ctx context.Context, key string, value []byte) error {
	if mock.SetFunc == nil {
		panic("cacheMock.SetFunc: method is nil but cache.Set was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Key   string
		Value []byte
	}{Ctx: ctx, Key: key, Value: value}
	mock.lockSet.Lock()
	mock.calls.Set = append(mock.calls.Set, callInfo)
	mock.lockSet.Unlock()
	return mock.SetFunc(ctx, key, value)
}

func (mock *cacheMock) SetCalls() []struct {
	Ctx   context.Context
	Key   string
	Value []byte
} {
	mock.lockSet.RLock()
	calls := mock.calls.Set
	mock.lockSet.RUnlock()
	return calls
}

func (mock *cacheMock) Delete(ctx context.Context, key string) error {
	if mock.DeleteFunc == nil {
		panic("cacheMock.DeleteFunc: method is nil but cache.Delete was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Key string
	}{Ctx: ctx, Key: key}
	mock.lockDelete.Lock()
	mock.calls.Delete = append(mock.calls.Delete, callInfo)
	mock.lockDelete.Unlock()
	return mock.DeleteFunc(ctx, key)
}

func (mock *cacheMock) DeleteCalls() []struct {
	Ctx context.Context
	Key string
} {
	mock.lockDelete.RLock()
	calls := mock.calls.Delete
	mock.lockDelete.RUnlock()
	return calls
}

func (mock *cacheMock) DeletePattern(ctx context.Context, pattern string) error {
	if mock.DeletePatternFunc == nil {
		panic("cacheMock.DeletePatternFunc: method is nil but cache.DeletePattern was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Pattern string
	}{Ctx: ctx, Pattern: pattern}
	mock.lockDeletePattern.Lock()
	mock.calls.DeletePattern = append(mock.calls.DeletePattern, callInfo)
	mock.lockDeletePattern.Unlock()
	return mock.DeletePatternFunc(ctx, pattern)
}

func (mock *cacheMock) DeletePatternCalls() []struct {
	Ctx     context.Context
	Pattern string
} {
	mock.lockDeletePattern.RLock()
	calls := mock.calls.DeletePattern
	mock.lockDeletePattern.RUnlock()
	return calls
}
