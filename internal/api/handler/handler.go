package handler

import (
	"net/http"
	"strconv"

	"askmego/backend/internal/config"
	"askmego/backend/internal/helpdesk"
	"askmego/backend/internal/identity"
	"askmego/backend/internal/livehub"
	"askmego/backend/internal/localization"
	"askmego/backend/internal/session"

	"github.com/gin-gonic/gin"
)

// Handler wires the services to the HTTP surface.
type Handler struct {
	Projects  *helpdesk.ProjectService
	Requests  *helpdesk.RequestService
	Identity  *identity.Service
	Sessions  *session.Manager
	Loc       *localization.Localizer
	Hub       *livehub.Manager
	JWTSecret []byte
}

func NewHandler(
	projects *helpdesk.ProjectService,
	requests *helpdesk.RequestService,
	id *identity.Service,
	sessions *session.Manager,
	loc *localization.Localizer,
	hub *livehub.Manager,
	jwtSecret []byte,
) *Handler {
	return &Handler{
		Projects:  projects,
		Requests:  requests,
		Identity:  id,
		Sessions:  sessions,
		Loc:       loc,
		Hub:       hub,
		JWTSecret: jwtSecret,
	}
}

const sessionIDKey = "session_id"

// sid returns the caller's session ID, minting one (and the cookie) on
// first contact. The minted ID is cached on the context so every call
// within one request sees the same session.
func (h *Handler) sid(c *gin.Context) string {
	if v, ok := c.Get(sessionIDKey); ok {
		return v.(string)
	}
	sid, err := c.Cookie(config.SessionCookie)
	if err != nil || sid == "" {
		sid = h.Sessions.NewSID()
		c.SetCookie(config.SessionCookie, sid, int(config.SessionTTL.Seconds()), "/", "", false, true)
	}
	c.Set(sessionIDKey, sid)
	return sid
}

// flash queues a one-shot notice key for the caller's session. Failures
// only cost the notice, never the request.
func (h *Handler) flash(c *gin.Context, key string) {
	if err := h.Sessions.Flash(h.sid(c), key); err != nil {
		c.Error(err)
	}
}

// notices drains the pending flash keys and localizes them with the
// caller's preferred language.
func (h *Handler) notices(c *gin.Context) []string {
	keys, err := h.Sessions.TakeFlashes(h.sid(c))
	if err != nil || len(keys) == 0 {
		return nil
	}
	lang := h.lang(c)
	out := make([]string, 0, len(keys))
	for _, key := range keys {
		out = append(out, h.Loc.T(lang, key))
	}
	return out
}

func (h *Handler) lang(c *gin.Context) string {
	pref, err := h.Identity.GetOrCreatePreferences(h.preferenceKey(c))
	if err != nil {
		return config.DefaultLanguage
	}
	return pref.Language
}

// preferenceKey scopes preferences: admins get the reserved settings row,
// visitors their address row.
func (h *Handler) preferenceKey(c *gin.Context) string {
	if h.isAdmin(c) {
		return config.AdminPreferenceKey
	}
	return CallerAddress(c)
}

func (h *Handler) isAdmin(c *gin.Context) bool {
	ok, err := h.Sessions.IsAdmin(h.sid(c))
	return err == nil && ok
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// seeOther is the POST-redirect-GET hop used after every mutation.
func seeOther(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}
