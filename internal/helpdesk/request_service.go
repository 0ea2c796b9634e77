package helpdesk

import (
	"errors"
	"log"

	"askmego/backend/internal/config"
	"askmego/backend/internal/models"
	"askmego/backend/internal/storage"

	"gorm.io/gorm"
)

// Identity resolves the display name for a caller address.
type Identity interface {
	DisplayName(address string) (string, error)
}

// Notifier pushes moderation-relevant events to the admin, e.g. over
// Telegram. Implementations must tolerate being called from the request
// path, so they should not block.
type Notifier interface {
	NotifyNewRequest(projectName string, req *models.Request)
	NotifyUserMessage(req *models.Request, msg *models.Message)
}

// Thread is a request joined with its ordered message list.
type Thread struct {
	Request  models.Request   `json:"request"`
	Messages []models.Message `json:"messages"`
}

// ProjectThreads groups the admin dashboard view by project.
type ProjectThreads struct {
	Project  models.Project `json:"project"`
	Requests []Thread       `json:"requests"`
}

// RequestStore is what the RequestService needs from storage.
type RequestStore interface {
	storage.ProjectStore
	storage.RequestStore
	storage.MessageStore
	storage.ThreadPublisher
}

// RequestService handles the visitor/admin request and thread lifecycle.
type RequestService struct {
	Store    RequestStore
	Identity Identity
	Notifier Notifier // optional
}

func NewRequestService(store RequestStore, id Identity) *RequestService {
	return &RequestService{Store: store, Identity: id}
}

// CreateRequest files a new request against a visible project. A non-empty
// description is duplicated into the thread as the first "user" message:
// the description field and the opening chat message are intentionally the
// same content, so the chat view is the canonical presentation.
func (s *RequestService) CreateRequest(projectID uint, address, title, description string) (*models.Request, error) {
	project, err := s.visibleProject(projectID)
	if err != nil {
		return nil, err
	}

	username, err := s.Identity.DisplayName(address)
	if err != nil {
		return nil, err
	}

	req := &models.Request{
		ProjectID:   projectID,
		Username:    username,
		UserIP:      address,
		Title:       title,
		Description: description,
	}
	if err := s.Store.CreateRequest(req); err != nil {
		return nil, err
	}

	if description != "" {
		msg := &models.Message{
			RequestID:  req.ID,
			SenderType: models.SenderUser,
			SenderName: username,
			Body:       description,
		}
		if err := s.Store.CreateMessage(msg); err != nil {
			return nil, err
		}
		s.publish(msg)
	}

	if s.Notifier != nil {
		s.Notifier.NotifyNewRequest(project.Name, req)
	}
	return req, nil
}

// ListForOwner returns the visible project and the caller's own, unblocked
// request threads, newest request first, messages oldest first.
func (s *RequestService) ListForOwner(projectID uint, address string) (*models.Project, []Thread, error) {
	project, err := s.visibleProject(projectID)
	if err != nil {
		return nil, nil, err
	}

	requests, err := s.Store.ListRequestsForOwner(projectID, address)
	if err != nil {
		return nil, nil, err
	}

	threads, err := s.loadThreads(requests)
	if err != nil {
		return nil, nil, err
	}
	return project, threads, nil
}

// ListForAdmin returns every request grouped by project, full threads, no
// lock or block filtering.
func (s *RequestService) ListForAdmin() ([]ProjectThreads, error) {
	projects, err := s.Store.ListProjects(false)
	if err != nil {
		return nil, err
	}
	requests, err := s.Store.ListAllRequests()
	if err != nil {
		return nil, err
	}

	byProject := make(map[uint][]Thread, len(projects))
	for _, req := range requests {
		messages, err := s.Store.ListMessagesForRequest(req.ID)
		if err != nil {
			return nil, err
		}
		byProject[req.ProjectID] = append(byProject[req.ProjectID], Thread{Request: req, Messages: messages})
	}

	grouped := make([]ProjectThreads, 0, len(projects))
	for _, project := range projects {
		grouped = append(grouped, ProjectThreads{
			Project:  project,
			Requests: byProject[project.ID],
		})
	}
	return grouped, nil
}

// AddUserMessage appends a visitor reply. The request must exist, belong to
// the caller and not be blocked; all three failures read as the same
// ErrRequestNotFound.
func (s *RequestService) AddUserMessage(requestID uint, address, text string) (*models.Request, *models.Message, error) {
	req, err := s.ownedRequest(requestID, address)
	if err != nil {
		return nil, nil, err
	}

	name, err := s.Identity.DisplayName(address)
	if err != nil {
		return nil, nil, err
	}

	msg := &models.Message{
		RequestID:  requestID,
		SenderType: models.SenderUser,
		SenderName: name,
		Body:       text,
	}
	if err := s.Store.CreateMessage(msg); err != nil {
		return nil, nil, err
	}
	s.publish(msg)

	if s.Notifier != nil {
		s.Notifier.NotifyUserMessage(req, msg)
	}
	return req, msg, nil
}

// AddAdminMessage appends an admin reply. No ownership check.
func (s *RequestService) AddAdminMessage(requestID uint, text string) (*models.Message, error) {
	if _, err := s.Store.GetRequestByID(requestID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}

	msg := &models.Message{
		RequestID:  requestID,
		SenderType: models.SenderAdmin,
		SenderName: config.AdminSenderName,
		Body:       text,
	}
	if err := s.Store.CreateMessage(msg); err != nil {
		return nil, err
	}
	s.publish(msg)
	return msg, nil
}

// UpdateRequest overwrites status, tags and the block flag. No diffing, no
// history; the prior moderation state is lost.
func (s *RequestService) UpdateRequest(requestID uint, status, tags string, isBlocked bool) error {
	err := s.Store.UpdateRequestModeration(requestID, status, tags, isBlocked)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRequestNotFound
	}
	return err
}

// DeleteRequest removes the request and its messages.
func (s *RequestService) DeleteRequest(requestID uint) error {
	err := s.Store.DeleteRequestCascade(requestID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrRequestNotFound
	}
	return err
}

// CanView reports whether a caller may watch a request thread. Admins see
// everything; a visitor only their own, unblocked requests.
func (s *RequestService) CanView(requestID uint, address string, isAdmin bool) (bool, error) {
	if isAdmin {
		_, err := s.Store.GetRequestByID(requestID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return err == nil, err
	}
	_, err := s.ownedRequest(requestID, address)
	if errors.Is(err, ErrRequestNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *RequestService) visibleProject(id uint) (*models.Project, error) {
	project, err := s.Store.GetProjectByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if project.IsLocked {
		return nil, ErrProjectNotFound
	}
	return project, nil
}

func (s *RequestService) ownedRequest(id uint, address string) (*models.Request, error) {
	req, err := s.Store.GetRequestByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if req.UserIP != address || req.IsBlocked {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

func (s *RequestService) loadThreads(requests []models.Request) ([]Thread, error) {
	threads := make([]Thread, 0, len(requests))
	for _, req := range requests {
		messages, err := s.Store.ListMessagesForRequest(req.ID)
		if err != nil {
			return nil, err
		}
		threads = append(threads, Thread{Request: req, Messages: messages})
	}
	return threads, nil
}

// publish mirrors a stored message onto the live channel. Delivery is best
// effort; a Redis failure must not fail the write that already happened.
func (s *RequestService) publish(msg *models.Message) {
	event := models.ThreadEvent{
		RequestID:  msg.RequestID,
		SenderType: msg.SenderType,
		SenderName: msg.SenderName,
		Body:       msg.Body,
		CreatedAt:  msg.CreatedAt,
	}
	if err := s.Store.PublishThreadEvent(event); err != nil {
		log.Printf("ERROR: Failed to publish thread event for request %d: %v", msg.RequestID, err)
	}
}
