package handler

import (
	"net/http"
	"time"

	"askmego/backend/internal/config"

	"github.com/gin-gonic/gin"

	jwt "github.com/golang-jwt/jwt/v5"
)

const callerAddrKey = "caller_addr"

// generateIdentityToken signs the caller address so the identity survives
// NAT churn for as long as the cookie lives.
func generateIdentityToken(address string, secret []byte) (string, error) {
	claims := jwt.MapClaims{
		"addr": address,
		"exp":  time.Now().Add(config.IdentityTokenTTL).Unix(),
		"iss":  "askmego-service",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseIdentityToken(tokenString string, secret []byte) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return secret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", jwt.ErrTokenInvalidClaims
	}
	addr, _ := claims["addr"].(string)
	if addr == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return addr, nil
}

// IdentityMiddleware resolves the caller's opaque identity token. A valid
// signed cookie pins the identity to the first-seen address; otherwise the
// transport address is used and a fresh cookie is minted.
func (h *Handler) IdentityMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Cookie(config.IdentityCookie); err == nil {
			if addr, err := parseIdentityToken(cookie, h.JWTSecret); err == nil {
				c.Set(callerAddrKey, addr)
				c.Next()
				return
			}
		}

		addr := c.ClientIP()
		if token, err := generateIdentityToken(addr, h.JWTSecret); err == nil {
			c.SetCookie(config.IdentityCookie, token,
				int(config.IdentityTokenTTL.Seconds()), "/", "", false, true)
		}
		c.Set(callerAddrKey, addr)
		c.Next()
	}
}

// CallerAddress returns the identity resolved by IdentityMiddleware.
func CallerAddress(c *gin.Context) string {
	if addr, ok := c.Get(callerAddrKey); ok {
		return addr.(string)
	}
	return c.ClientIP()
}

// RequireAdmin guards the admin surface. Failures are a redirect to the
// login page, not an error.
func (h *Handler) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !h.isAdmin(c) {
			c.Redirect(http.StatusSeeOther, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// LoginPage serves the pending notices for the login view.
func (h *Handler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notices": h.notices(c)})
}

type loginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

// Login runs the credential check and flags the session on success. The
// mismatch notice is deliberately generic.
func (h *Handler) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		h.flash(c, "notice.missing_fields")
		seeOther(c, "/admin/login")
		return
	}

	ok, err := h.Sessions.Login(h.sid(c), form.Username, form.Password)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to open session"})
		return
	}
	if !ok {
		h.flash(c, "notice.invalid_credentials")
		seeOther(c, "/admin/login")
		return
	}
	seeOther(c, "/admin")
}

// Logout clears the admin flag and sends the visitor home.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.Sessions.Logout(h.sid(c)); err != nil {
		c.Error(err)
	}
	h.flash(c, "notice.logged_out")
	seeOther(c, "/")
}
