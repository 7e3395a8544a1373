package outbox

import (
	"context"
	"sync"
)

var _ publisher = &publisherMock{}

type publisherMock struct {
	PublishFunc func(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error

	calls struct {
		Publish []struct {
			Ctx     context.Context
			Topic   string
			Key     string
			Payload []byte
			Headers map[string]string
		}
	}
	lockPublish sync.RWMutex
}

func (mock *publisherMock) Publish(ctx context.Context, topic string, key string, payload []byte, headers map[string]string) error {
	if mock.PublishFunc == nil {
		panic("publisherMock.PublishFunc: method is nil but publisher.Publish was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Topic   string
		Key     string
		Payload []byte
		Headers map[string]string
	}{Ctx: ctx, Topic: topic, Key: key, Payload: payload, Headers: headers}
	mock.lockPublish.Lock()
	mock.calls.Publish = append(mock.calls.Publish, callInfo)
	mock.lockPublish.Unlock()
	return mock.PublishFunc(ctx, topic, key, payload, headers)
}

func (mock *publisherMock) PublishCalls() []struct {
	Ctx     context.Context
	Topic   string
	Key     string
	Payload []byte
	Headers map[string]string
} {
	mock.lockPublish.RLock()
	calls := mock.calls.Publish
	mock.lockPublish.RUnlock()
	return calls
}
