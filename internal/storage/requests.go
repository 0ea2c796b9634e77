package storage

import (
	"log"

	"askmego/backend/internal/config"
	"askmego/backend/internal/models"

	"gorm.io/gorm"
)

func (s *Service) CreateRequest(r *models.Request) error {
	if r.Status == "" {
		r.Status = config.DefaultRequestStatus
	}
	if err := s.DB.Create(r).Error; err != nil {
		log.Printf("ERROR: Failed to save request for project %d: %v", r.ProjectID, err)
		return err
	}
	return nil
}

func (s *Service) GetRequestByID(id uint) (*models.Request, error) {
	var req models.Request
	if err := s.DB.First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

// ListRequestsForOwner returns the caller's own, unblocked requests for a
// project, newest first. Blocked requests are invisible to their creator.
func (s *Service) ListRequestsForOwner(projectID uint, address string) ([]models.Request, error) {
	var requests []models.Request
	err := s.DB.
		Where("project_id = ? AND user_ip = ? AND is_blocked = ?", projectID, address, false).
		Order("created_at desc").
		Find(&requests).Error
	if err != nil {
		log.Printf("ERROR: Failed to list requests for project %d: %v", projectID, err)
		return nil, err
	}
	return requests, nil
}

// ListAllRequests is the admin view: every request, no block or lock
// filtering, newest first.
func (s *Service) ListAllRequests() ([]models.Request, error) {
	var requests []models.Request
	if err := s.DB.Order("created_at desc").Find(&requests).Error; err != nil {
		log.Printf("ERROR: Failed to list all requests: %v", err)
		return nil, err
	}
	return requests, nil
}

// UpdateRequestModeration overwrites the moderation fields. No history is
// kept; the previous status, tags and block flag are gone after this.
func (s *Service) UpdateRequestModeration(id uint, status, tags string, blocked bool) error {
	res := s.DB.Model(&models.Request{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"tags":       tags,
			"is_blocked": blocked,
			"updated_at": gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteRequestCascade removes the request and its messages in one
// transaction, messages first.
func (s *Service) DeleteRequestCascade(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("request_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Request{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (s *Service) CreateMessage(m *models.Message) error {
	if err := s.DB.Create(m).Error; err != nil {
		log.Printf("ERROR: Failed to save message for request %d: %v", m.RequestID, err)
		return err
	}
	return nil
}

// ListMessagesForRequest loads a thread oldest first.
func (s *Service) ListMessagesForRequest(requestID uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.DB.Where("request_id = ?", requestID).Order("created_at asc, id asc").Find(&messages).Error
	if err != nil {
		log.Printf("ERROR: Failed to get thread for request %d: %v", requestID, err)
		return nil, err
	}
	return messages, nil
}
