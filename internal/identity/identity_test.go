package identity_test

import (
	"strings"
	"testing"

	"askmego/backend/internal/identity"
	"askmego/backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockPreferenceStore is a testify mock for the preference rows.
type MockPreferenceStore struct {
	mock.Mock
}

func (m *MockPreferenceStore) GetOrCreatePreference(key string) (*models.Preference, error) {
	args := m.Called(key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Preference), args.Error(1)
}

func (m *MockPreferenceStore) UpdatePreference(key string, fields map[string]interface{}) error {
	args := m.Called(key, fields)
	return args.Error(0)
}

// TestDeriveUsername_Deterministic verifies the handle is stable for the
// same address and different across addresses.
func TestDeriveUsername_Deterministic(t *testing.T) {
	a := identity.DeriveUsername("1.2.3.4")
	b := identity.DeriveUsername("1.2.3.4")
	c := identity.DeriveUsername("5.6.7.8")

	assert.Equal(t, a, b, "same address must derive the same username")
	assert.NotEqual(t, a, c, "different addresses should derive different usernames")
}

// TestDeriveUsername_Shape verifies the prefix and fixed hex width.
func TestDeriveUsername_Shape(t *testing.T) {
	name := identity.DeriveUsername("10.0.0.1")

	assert.True(t, strings.HasPrefix(name, "user_"), "handle should carry the user_ prefix")
	assert.Len(t, name, len("user_")+8, "hex part should be truncated to 8 chars")
	assert.Equal(t, strings.ToLower(name), name, "hex part should be lowercase")
}

// TestDisplayName_NicknameOverride verifies a stored nickname wins over the
// derived username.
func TestDisplayName_NicknameOverride(t *testing.T) {
	// Arrange
	prefs := new(MockPreferenceStore)
	svc := identity.NewService(prefs)
	prefs.On("GetOrCreatePreference", "1.2.3.4").
		Return(&models.Preference{UserIP: "1.2.3.4", Nickname: "alice"}, nil)

	// Act
	name, err := svc.DisplayName("1.2.3.4")

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, "alice", name)
	prefs.AssertExpectations(t)
}

// TestDisplayName_FallsBackToDerived verifies an empty nickname falls back
// to the derived handle, without affecting other addresses.
func TestDisplayName_FallsBackToDerived(t *testing.T) {
	prefs := new(MockPreferenceStore)
	svc := identity.NewService(prefs)
	prefs.On("GetOrCreatePreference", "5.6.7.8").
		Return(&models.Preference{UserIP: "5.6.7.8"}, nil)

	name, err := svc.DisplayName("5.6.7.8")

	assert.NoError(t, err)
	assert.Equal(t, identity.DeriveUsername("5.6.7.8"), name)
}

// TestUpdatePreferences_AllowList verifies only set fields reach the store
// and a no-op update never touches it.
func TestUpdatePreferences_AllowList(t *testing.T) {
	prefs := new(MockPreferenceStore)
	svc := identity.NewService(prefs)

	nickname := "bob"
	language := "uk"
	prefs.On("UpdatePreference", "1.2.3.4", map[string]interface{}{
		"nickname": "bob",
		"language": "uk",
	}).Return(nil).Once()

	err := svc.UpdatePreferences("1.2.3.4", identity.Fields{Nickname: &nickname, Language: &language})
	assert.NoError(t, err)

	// No fields set: the store must not be called.
	err = svc.UpdatePreferences("1.2.3.4", identity.Fields{})
	assert.NoError(t, err)

	prefs.AssertExpectations(t)
}
