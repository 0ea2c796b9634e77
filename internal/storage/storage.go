package storage

import (
	"context"

	"askmego/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ProjectStore covers project rows.
type ProjectStore interface {
	CreateProject(p *models.Project) error
	GetProjectByID(id uint) (*models.Project, error)
	ListProjects(onlyVisible bool) ([]models.Project, error)
	UpdateProject(p *models.Project) error
	DeleteProjectCascade(id uint) error
}

// RequestStore covers request rows.
type RequestStore interface {
	CreateRequest(r *models.Request) error
	GetRequestByID(id uint) (*models.Request, error)
	ListRequestsForOwner(projectID uint, address string) ([]models.Request, error)
	ListAllRequests() ([]models.Request, error)
	UpdateRequestModeration(id uint, status, tags string, blocked bool) error
	DeleteRequestCascade(id uint) error
}

// MessageStore covers thread messages. Messages are append-only; deletion
// happens solely through the cascade paths on RequestStore and ProjectStore.
type MessageStore interface {
	CreateMessage(m *models.Message) error
	ListMessagesForRequest(requestID uint) ([]models.Message, error)
}

// PreferenceStore covers the per-address preference rows.
type PreferenceStore interface {
	GetOrCreatePreference(key string) (*models.Preference, error)
	UpdatePreference(key string, fields map[string]interface{}) error
}

// SessionStore keeps the server-side session state in Redis: the admin flag
// and the one-shot flash notices.
type SessionStore interface {
	SetSessionAdmin(sid string) error
	IsSessionAdmin(sid string) (bool, error)
	ClearSessionAdmin(sid string) error
	PushFlash(sid, notice string) error
	PopFlashes(sid string) ([]string, error)
}

// ThreadPublisher broadcasts new thread messages over Redis Pub/Sub so the
// live hub can fan them out to connected browsers.
type ThreadPublisher interface {
	PublishThreadEvent(event models.ThreadEvent) error
}

type Storage interface {
	ProjectStore
	RequestStore
	MessageStore
	PreferenceStore
	SessionStore
	ThreadPublisher
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}
