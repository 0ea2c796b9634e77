// Package helpdesk implements the request/message lifecycle: projects the
// admin curates, requests anonymous visitors file against them, and the
// message threads the two sides exchange.
package helpdesk

import (
	"errors"

	"askmego/backend/internal/models"
	"askmego/backend/internal/storage"

	"gorm.io/gorm"
)

// ProjectService handles project CRUD and moderation.
type ProjectService struct {
	Store storage.ProjectStore
}

func NewProjectService(store storage.ProjectStore) *ProjectService {
	return &ProjectService{Store: store}
}

// ListVisible returns the projects an unauthenticated visitor may see.
func (s *ProjectService) ListVisible() ([]models.Project, error) {
	return s.Store.ListProjects(true)
}

// ListAll is the admin view: every project, locked or not.
func (s *ProjectService) ListAll() ([]models.Project, error) {
	return s.Store.ListProjects(false)
}

// Create inserts a new, unlocked project. A name that is already taken
// fails with ErrDuplicateName and leaves the table unchanged.
func (s *ProjectService) Create(name, description string) (*models.Project, error) {
	project := &models.Project{
		Name:        name,
		Description: description,
	}
	if err := s.Store.CreateProject(project); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateName
		}
		return nil, err
	}
	return project, nil
}

// VisibleProject fetches a project as a visitor sees it: a locked or
// missing project is the same ErrProjectNotFound.
func (s *ProjectService) VisibleProject(id uint) (*models.Project, error) {
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

// ToggleLock flips the lock flag. The fetch-then-update window means a
// concurrent delete can surface here as not-found, which is handled, not
// propagated as a fault.
func (s *ProjectService) ToggleLock(id uint) (*models.Project, error) {
	project, err := s.Store.GetProjectByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	project.IsLocked = !project.IsLocked
	if err := s.Store.UpdateProject(project); err != nil {
		return nil, err
	}
	return project, nil
}

// Edit renames and redescribes a project, with the same duplicate-name
// failure as Create.
func (s *ProjectService) Edit(id uint, name, description string) error {
	project, err := s.Store.GetProjectByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	project.Name = name
	project.Description = description
	if err := s.Store.UpdateProject(project); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateName
		}
		return err
	}
	return nil
}

// Delete removes the project together with its requests and their messages.
func (s *ProjectService) Delete(id uint) error {
	err := s.Store.DeleteProjectCascade(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrProjectNotFound
	}
	return err
}
