package livehub_test

import "askmego/backend/internal/models"

type MockClient struct {
	id          string
	requestID   uint
	RecvChannel chan models.ThreadEvent
	closed      bool
}

func newMockClient(id string, requestID uint) *MockClient {
	return &MockClient{
		id:          id,
		requestID:   requestID,
		RecvChannel: make(chan models.ThreadEvent, 10),
	}
}

func (c *MockClient) GetID() string {
	return c.id
}

func (c *MockClient) GetRequestID() uint {
	return c.requestID
}

func (c *MockClient) GetSendChannel() chan<- models.ThreadEvent {
	return c.RecvChannel
}

func (c *MockClient) Run() {
	// Not needed for testing
}

func (c *MockClient) Close() {
	c.closed = true
}
