package storage

import (
	"log"

	"askmego/backend/internal/models"

	"gorm.io/gorm"
)

// CreateProject inserts a new project. A duplicate name surfaces as
// gorm.ErrDuplicatedKey (the DB must be opened with TranslateError).
func (s *Service) CreateProject(p *models.Project) error {
	return s.DB.Create(p).Error
}

func (s *Service) GetProjectByID(id uint) (*models.Project, error) {
	var project models.Project
	err := s.DB.First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListProjects returns projects newest first. With onlyVisible it skips
// locked projects, which is the unauthenticated view.
func (s *Service) ListProjects(onlyVisible bool) ([]models.Project, error) {
	var projects []models.Project
	q := s.DB.Order("created_at desc")
	if onlyVisible {
		q = q.Where("is_locked = ?", false)
	}
	if err := q.Find(&projects).Error; err != nil {
		log.Printf("ERROR: Failed to list projects: %v", err)
		return nil, err
	}
	return projects, nil
}

func (s *Service) UpdateProject(p *models.Project) error {
	return s.DB.Save(p).Error
}

// DeleteProjectCascade removes the project, its requests and all their
// messages inside one transaction. The schema carries no enforced
// cascades, so the order matters: messages, then requests, then the
// project itself.
func (s *Service) DeleteProjectCascade(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		sub := tx.Model(&models.Request{}).Select("id").Where("project_id = ?", id)
		if err := tx.Where("request_id IN (?)", sub).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Request{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Project{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
