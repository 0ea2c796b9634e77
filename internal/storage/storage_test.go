package storage_test

import (
	"fmt"
	"testing"
	"time"

	"askmego/backend/internal/models"
	"askmego/backend/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB spins up an isolated in-memory SQLite database with the full
// schema. Each test gets its own database, named after the test so shared
// cache never bleeds between tests.
func openTestDB(t *testing.T) *storage.Service {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Project{},
		&models.Request{},
		&models.Message{},
		&models.Preference{},
	))

	return storage.NewStorageService(db, nil)
}

func countRows(t *testing.T, s *storage.Service, model interface{}, query string, args ...interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, s.DB.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

func seedThread(t *testing.T, s *storage.Service, projectID uint, userIP string, messages int) *models.Request {
	t.Helper()
	req := &models.Request{ProjectID: projectID, Username: "user_aabbccdd", UserIP: userIP, Title: "help"}
	require.NoError(t, s.CreateRequest(req))
	for i := 0; i < messages; i++ {
		require.NoError(t, s.CreateMessage(&models.Message{
			RequestID:  req.ID,
			SenderType: models.SenderUser,
			SenderName: "user_aabbccdd",
			Body:       fmt.Sprintf("message %d", i),
		}))
	}
	return req
}

func TestCreateProject_DuplicateName(t *testing.T) {
	// Arrange
	s := openTestDB(t)
	require.NoError(t, s.CreateProject(&models.Project{Name: "Support"}))

	// Act
	err := s.CreateProject(&models.Project{Name: "Support"})

	// Assert
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
	assert.EqualValues(t, 1, countRows(t, s, &models.Project{}, "name = ?", "Support"))
}

func TestDeleteProjectCascade(t *testing.T) {
	t.Run("leaves no orphaned requests or messages", func(t *testing.T) {
		// Arrange
		s := openTestDB(t)
		doomed := &models.Project{Name: "Doomed"}
		survivor := &models.Project{Name: "Survivor"}
		require.NoError(t, s.CreateProject(doomed))
		require.NoError(t, s.CreateProject(survivor))

		seedThread(t, s, doomed.ID, "10.0.0.1", 2)
		seedThread(t, s, doomed.ID, "10.0.0.2", 3)
		kept := seedThread(t, s, survivor.ID, "10.0.0.1", 1)

		// Act
		err := s.DeleteProjectCascade(doomed.ID)

		// Assert
		assert.NoError(t, err)
		assert.EqualValues(t, 0, countRows(t, s, &models.Project{}, "id = ?", doomed.ID))
		assert.EqualValues(t, 0, countRows(t, s, &models.Request{}, "project_id = ?", doomed.ID))
		// Every remaining message must still have a live parent request.
		assert.EqualValues(t, 0, countRows(t, s, &models.Message{},
			"request_id NOT IN (?)", s.DB.Model(&models.Request{}).Select("id")))

		// The sibling project and its thread are untouched.
		assert.EqualValues(t, 1, countRows(t, s, &models.Request{}, "project_id = ?", survivor.ID))
		assert.EqualValues(t, 1, countRows(t, s, &models.Message{}, "request_id = ?", kept.ID))
	})

	t.Run("missing project reports record not found", func(t *testing.T) {
		// Arrange
		s := openTestDB(t)

		// Act
		err := s.DeleteProjectCascade(9999)

		// Assert
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestDeleteRequestCascade(t *testing.T) {
	t.Run("removes the request and only its messages", func(t *testing.T) {
		// Arrange
		s := openTestDB(t)
		project := &models.Project{Name: "Support"}
		require.NoError(t, s.CreateProject(project))
		doomed := seedThread(t, s, project.ID, "10.0.0.1", 2)
		kept := seedThread(t, s, project.ID, "10.0.0.2", 2)

		// Act
		err := s.DeleteRequestCascade(doomed.ID)

		// Assert
		assert.NoError(t, err)
		assert.EqualValues(t, 0, countRows(t, s, &models.Request{}, "id = ?", doomed.ID))
		assert.EqualValues(t, 0, countRows(t, s, &models.Message{}, "request_id = ?", doomed.ID))
		assert.EqualValues(t, 2, countRows(t, s, &models.Message{}, "request_id = ?", kept.ID))
	})

	t.Run("missing request reports record not found", func(t *testing.T) {
		// Arrange
		s := openTestDB(t)

		// Act
		err := s.DeleteRequestCascade(9999)

		// Assert
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestListProjects_Ordering(t *testing.T) {
	// Arrange
	s := openTestDB(t)
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, s.CreateProject(&models.Project{Name: "Oldest", CreatedAt: base}))
	require.NoError(t, s.CreateProject(&models.Project{Name: "Locked", IsLocked: true, CreatedAt: base.Add(time.Hour)}))
	require.NoError(t, s.CreateProject(&models.Project{Name: "Newest", CreatedAt: base.Add(2 * time.Hour)}))

	// Act
	all, err := s.ListProjects(false)
	require.NoError(t, err)
	visible, err := s.ListProjects(true)
	require.NoError(t, err)

	// Assert: newest first, and the visible view skips locked projects.
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Newest", "Locked", "Oldest"},
		[]string{all[0].Name, all[1].Name, all[2].Name})

	require.Len(t, visible, 2)
	assert.Equal(t, []string{"Newest", "Oldest"},
		[]string{visible[0].Name, visible[1].Name})
}

func TestListRequestsForOwner(t *testing.T) {
	// Arrange
	s := openTestDB(t)
	project := &models.Project{Name: "Support"}
	require.NoError(t, s.CreateProject(project))

	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mine := &models.Request{ProjectID: project.ID, Username: "u", UserIP: "10.0.0.1", Title: "first", CreatedAt: base}
	mineLater := &models.Request{ProjectID: project.ID, Username: "u", UserIP: "10.0.0.1", Title: "second", CreatedAt: base.Add(time.Hour)}
	blocked := &models.Request{ProjectID: project.ID, Username: "u", UserIP: "10.0.0.1", Title: "hidden", IsBlocked: true, CreatedAt: base.Add(2 * time.Hour)}
	theirs := &models.Request{ProjectID: project.ID, Username: "v", UserIP: "10.0.0.2", Title: "not mine", CreatedAt: base}
	for _, r := range []*models.Request{mine, mineLater, blocked, theirs} {
		require.NoError(t, s.CreateRequest(r))
	}

	// Act
	requests, err := s.ListRequestsForOwner(project.ID, "10.0.0.1")

	// Assert: own unblocked requests only, newest first.
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "second", requests[0].Title)
	assert.Equal(t, "first", requests[1].Title)
}

func TestListMessagesForRequest_Ordering(t *testing.T) {
	// Arrange
	s := openTestDB(t)
	project := &models.Project{Name: "Support"}
	require.NoError(t, s.CreateProject(project))
	req := seedThread(t, s, project.ID, "10.0.0.1", 0)

	// Identical timestamps: insertion order must still win via the id
	// tiebreak.
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	for _, body := range []string{"one", "two", "three"} {
		require.NoError(t, s.CreateMessage(&models.Message{
			RequestID:  req.ID,
			SenderType: models.SenderUser,
			SenderName: "u",
			Body:       body,
			CreatedAt:  at,
		}))
	}

	// Act
	messages, err := s.ListMessagesForRequest(req.ID)

	// Assert
	require.NoError(t, err)
	require.Len(t, messages, 3)
	assert.Equal(t, []string{"one", "two", "three"},
		[]string{messages[0].Body, messages[1].Body, messages[2].Body})
}

func TestGetOrCreatePreference(t *testing.T) {
	t.Run("first access inserts the defaults", func(t *testing.T) {
		// Arrange
		s := openTestDB(t)

		// Act
		pref, err := s.GetOrCreatePreference("10.0.0.1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "en", pref.Language)
		assert.Equal(t, "light", pref.Theme)
		assert.Empty(t, pref.Nickname)
	})

	t.Run("lookup matches a row with changed settings", func(t *testing.T) {
		// Arrange
		s := openTestDB(t)
		_, err := s.GetOrCreatePreference("10.0.0.1")
		require.NoError(t, err)
		require.NoError(t, s.UpdatePreference("10.0.0.1", map[string]interface{}{
			"language": "uk",
			"theme":    "dark",
		}))

		// Act
		pref, err := s.GetOrCreatePreference("10.0.0.1")

		// Assert: the changed row is found, not re-inserted.
		require.NoError(t, err)
		assert.Equal(t, "uk", pref.Language)
		assert.Equal(t, "dark", pref.Theme)
		assert.EqualValues(t, 1, countRows(t, s, &models.Preference{}, "user_ip = ?", "10.0.0.1"))
	})

	t.Run("partial update leaves other fields alone", func(t *testing.T) {
		// Arrange
		s := openTestDB(t)
		require.NoError(t, s.UpdatePreference("10.0.0.1", map[string]interface{}{
			"nickname": "Olena",
		}))

		// Act
		pref, err := s.GetOrCreatePreference("10.0.0.1")

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Olena", pref.Nickname)
		assert.Equal(t, "en", pref.Language)
		assert.Equal(t, "light", pref.Theme)
	})
}
