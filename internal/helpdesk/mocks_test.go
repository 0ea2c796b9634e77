package helpdesk_test

import (
	"askmego/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockStore is a testify mock covering everything the helpdesk services
// need from storage.
type MockStore struct {
	mock.Mock
}

// Project operations
func (m *MockStore) CreateProject(p *models.Project) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockStore) GetProjectByID(id uint) (*models.Project, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Project), args.Error(1)
}

func (m *MockStore) ListProjects(onlyVisible bool) ([]models.Project, error) {
	args := m.Called(onlyVisible)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Project), args.Error(1)
}

func (m *MockStore) UpdateProject(p *models.Project) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockStore) DeleteProjectCascade(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// Request operations
func (m *MockStore) CreateRequest(r *models.Request) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockStore) GetRequestByID(id uint) (*models.Request, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Request), args.Error(1)
}

func (m *MockStore) ListRequestsForOwner(projectID uint, address string) ([]models.Request, error) {
	args := m.Called(projectID, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Request), args.Error(1)
}

func (m *MockStore) ListAllRequests() ([]models.Request, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Request), args.Error(1)
}

func (m *MockStore) UpdateRequestModeration(id uint, status, tags string, blocked bool) error {
	args := m.Called(id, status, tags, blocked)
	return args.Error(0)
}

func (m *MockStore) DeleteRequestCascade(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// Message operations
func (m *MockStore) CreateMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStore) ListMessagesForRequest(requestID uint) ([]models.Message, error) {
	args := m.Called(requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// Live channel
func (m *MockStore) PublishThreadEvent(event models.ThreadEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

// MockIdentity resolves display names without a database.
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) DisplayName(address string) (string, error) {
	args := m.Called(address)
	return args.String(0), args.Error(1)
}

// MockNotifier records admin notifications.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyNewRequest(projectName string, req *models.Request) {
	m.Called(projectName, req)
}

func (m *MockNotifier) NotifyUserMessage(req *models.Request, msg *models.Message) {
	m.Called(req, msg)
}
