package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"plazoleta-api/identity"
	"plazoleta-api/models"
	"plazoleta-api/policy"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// TimestampLayout formats the timestamp of every error body.
const TimestampLayout = "2006-01-02T15:04:05"

const (
	bearerPrefix  = "Bearer "
	identityIDKey = "identityID"
	authorityKey  = "authority"
)

var (
	ErrInvalidCredential = errors.New("invalid credential")
	ErrExpiredCredential = errors.New("expired credential")
	// ErrNoSubject marks a well-formed credential that names nobody. Callers
	// treat it as if no credential was sent.
	ErrNoSubject = errors.New("credential has no subject")
)

// Claims carries the role as a pointer so an absent claim can be told apart
// from an empty one.
type Claims struct {
	Role *string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// Credential is the verified content of a bearer token.
type Credential struct {
	IdentityID int64
	Authority  string
}

// Verifier checks HMAC-signed bearer tokens against a pre-shared key.
type Verifier struct {
	secret []byte
	parser *jwt.Parser
}

func NewVerifier(secret []byte, opts ...jwt.ParserOption) *Verifier {
	opts = append([]jwt.ParserOption{
		jwt.WithValidMethods([]string{
			jwt.SigningMethodHS256.Alg(),
			jwt.SigningMethodHS384.Alg(),
			jwt.SigningMethodHS512.Alg(),
		}),
	}, opts...)
	return &Verifier{secret: secret, parser: jwt.NewParser(opts...)}
}

// Verify validates token and extracts its subject and authority.
func (v *Verifier) Verify(token string) (Credential, error) {
	claims := &Claims{}
	_, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return v.secret, nil
	})
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return Credential{}, ErrExpiredCredential
	case err != nil:
		return Credential{}, ErrInvalidCredential
	}

	if claims.Subject == "" {
		return Credential{}, ErrNoSubject
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Credential{}, ErrInvalidCredential
	}

	role := models.DefaultRoleName
	if claims.Role != nil {
		role = *claims.Role
	}
	return Credential{IdentityID: id, Authority: NormalizeAuthority(role)}, nil
}

// NormalizeAuthority prefixes a bare role name with the authority scheme.
func NormalizeAuthority(role string) string {
	if strings.HasPrefix(role, models.AuthorityPrefix) {
		return role
	}
	return models.AuthorityPrefix + role
}

// Authenticate verifies the bearer token, when one is sent, and populates the
// identity for the rest of the request. Rejected credentials stop the chain.
func Authenticate(v *Verifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			c.Next()
			return
		}
		token := strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix))

		cred, err := v.Verify(token)
		switch {
		case errors.Is(err, ErrNoSubject):
			c.Next()
			return
		case err != nil:
			abortWithError(c, http.StatusUnauthorized, err.Error())
			return
		}

		c.Set(identityIDKey, cred.IdentityID)
		c.Set(authorityKey, cred.Authority)
		c.Request = c.Request.WithContext(identity.WithAuthorization(c.Request.Context(), authHeader))
		c.Next()
	}
}

// RoleRequired lets the request through only when the caller's role may
// perform action.
func RoleRequired(action policy.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, ok := CurrentRole(c)
		if !ok {
			abortWithError(c, http.StatusUnauthorized, "authentication required")
			return
		}
		if err := policy.Check(action, models.ParseRole(role)); err != nil {
			abortWithError(c, http.StatusForbidden, "role not allowed for "+string(action))
			return
		}
		c.Next()
	}
}

// CurrentIdentityID returns the verified caller id for this request.
func CurrentIdentityID(c *gin.Context) (int64, bool) {
	val, ok := c.Get(identityIDKey)
	if !ok {
		return 0, false
	}
	id, ok := val.(int64)
	return id, ok
}

// CurrentRole returns the caller's role name without the authority prefix.
func CurrentRole(c *gin.Context) (string, bool) {
	val, ok := c.Get(authorityKey)
	if !ok {
		return "", false
	}
	authority, ok := val.(string)
	if !ok || authority == "" {
		return "", false
	}
	return strings.TrimPrefix(authority, models.AuthorityPrefix), true
}

// abortWithError stops the chain with the same body the handlers use for
// failures.
func abortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"timestamp": time.Now().Format(TimestampLayout),
		"status":    status,
		"error":     http.StatusText(status),
		"message":   message,
	})
}
