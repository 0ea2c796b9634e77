package config

import "time"

const (
	// Identity
	UsernamePrefix  = "user_"
	UsernameHashLen = 8

	// Preference defaults
	DefaultLanguage = "en"
	DefaultTheme    = "light"

	// AdminPreferenceKey is the reserved preference row for admin-scoped
	// settings. The colon keeps it outside the space of valid addresses.
	AdminPreferenceKey = "admin:settings"

	// Requests
	DefaultRequestStatus = "pending"
	AdminSenderName      = "Admin"

	// Sessions
	SessionCookie    = "askme_session"
	IdentityCookie   = "askme_identity"
	SessionTTL       = 12 * time.Hour
	IdentityTokenTTL = 72 * time.Hour
)
