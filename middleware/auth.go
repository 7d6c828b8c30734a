package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
)

// ErrUnauthorized is returned by verifiers when credentials do not match.
var ErrUnauthorized = errors.New("unauthorized")

// CredentialVerifier checks a credential pair and returns the authenticated
// identity. The static implementation below is a placeholder; swap in a real
// user store before production use.
type CredentialVerifier interface {
	Verify(username, password string) (string, error)
}

// StaticCredentialVerifier accepts exactly one fixed username/password pair.
type StaticCredentialVerifier struct {
	Username string
	Password string
}

// NewStaticVerifierFromEnv builds the fixed-pair verifier from AUTH_USERNAME
// and AUTH_PASSWORD, defaulting both to "admin".
func NewStaticVerifierFromEnv() *StaticCredentialVerifier {
	username := os.Getenv("AUTH_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("AUTH_PASSWORD")
	if password == "" {
		password = "admin"
	}
	return &StaticCredentialVerifier{Username: username, Password: password}
}

func (v *StaticCredentialVerifier) Verify(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(v.Username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(v.Password)) == 1
	if !userOK || !passOK {
		return "", ErrUnauthorized
	}
	return username, nil
}

// BasicAuthMiddleware enforces HTTP Basic credentials on every request.
func BasicAuthMiddleware(verifier CredentialVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="scholar-monitor"`)
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header is required"})
			c.Abort()
			return
		}

		identity, err := verifier.Verify(username, password)
		if err != nil {
			c.Header("WWW-Authenticate", `Basic realm="scholar-monitor"`)
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid credentials"})
			c.Abort()
			return
		}

		c.Set("username", identity)
		c.Next()
	}
}
