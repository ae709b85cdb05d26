package admin

import (
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const tokenTTL = 24 * time.Hour

var (
	// ErrLoginDisabled is returned when no admin password is configured
	ErrLoginDisabled = errors.New("admin login disabled")
	// ErrInvalidCredentials is returned for a wrong user name or password
	ErrInvalidCredentials = errors.New("invalid credentials")
)

var jwtAlgorithm = jwt.SigningMethodHS256

// Claims represents the JWT claims
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// AuthConfig provides the admin credentials
type AuthConfig interface {
	GetAdminUser() string
	GetAdminPassword() string
	GetJWTSecret() string
}

// Authenticator checks the admin password and issues bearer tokens
type Authenticator struct {
	logger       *zap.Logger
	username     string
	passwordHash []byte
	secret       []byte
	now          func() time.Time
}

// NewAuthenticator hashes the configured password once at startup.
// Without a configured secret a random one is generated, so tokens do not survive a restart.
func NewAuthenticator(logger *zap.Logger, cfg AuthConfig) (*Authenticator, error) {
	a := &Authenticator{
		logger:   logger,
		username: cfg.GetAdminUser(),
		secret:   []byte(cfg.GetJWTSecret()),
		now:      time.Now,
	}

	if password := cfg.GetAdminPassword(); password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("failed to hash admin password: %w", err)
		}
		a.passwordHash = hash
	} else {
		logger.Warn("No admin password configured, admin login disabled")
	}

	if len(a.secret) == 0 {
		a.secret = make([]byte, 32)
		if _, err := rand.Read(a.secret); err != nil {
			return nil, fmt.Errorf("failed to generate token secret: %w", err)
		}
		logger.Warn("No JWT secret configured, using an ephemeral one")
	}

	return a, nil
}

// Login checks the credentials and returns a signed token
func (a *Authenticator) Login(username, password string) (string, error) {
	if a.passwordHash == nil {
		return "", ErrLoginDisabled
	}
	if username != a.username {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	now := a.now()
	claims := &Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token, err := jwt.NewWithClaims(jwtAlgorithm, claims).SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

// Verify parses a token and checks its signature and expiry
func (a *Authenticator) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwtAlgorithm {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}

// Middleware verifies the bearer token for admin routes
func (a *Authenticator) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		claims, err := a.Verify(token)
		if err != nil {
			a.logger.Debug("Rejected token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}
