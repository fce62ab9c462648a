package server

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	adminCookie   = "admin_token"
	adminIssuer   = "homepage"
	adminUsername = "admin"
)

var errInvalidCredentials = errors.New("invalid credentials")

type adminClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// adminAuth checks the single admin account and issues signed session
// cookies.
type adminAuth struct {
	username     string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
}

// newAdminAuth hashes the configured password. Missing settings get
// random values: an unset password locks the admin area unless the
// generated one is read from the debug log.
func newAdminAuth(username, password, secret string, ttl time.Duration, debug bool, logger *zap.Logger) (*adminAuth, error) {
	if username == "" {
		username = adminUsername
	}
	if password == "" {
		generated, err := randomToken(16)
		if err != nil {
			return nil, err
		}
		password = generated
		logger.Warn("ADMIN_PASSWORD not set, generated a one-off password")
		if debug {
			logger.Info("admin password (dev only)", zap.String("password", password))
		}
	}
	if secret == "" {
		generated, err := randomToken(32)
		if err != nil {
			return nil, err
		}
		secret = generated
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash admin password: %w", err)
	}
	return &adminAuth{
		username:     username,
		passwordHash: hash,
		secret:       []byte(secret),
		ttl:          ttl,
	}, nil
}

// login checks the credentials and returns a signed token.
func (a *adminAuth) login(username, password string) (string, error) {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passErr := bcrypt.CompareHashAndPassword(a.passwordHash, []byte(password))
	if !userOK || passErr != nil {
		return "", errInvalidCredentials
	}

	now := time.Now()
	claims := &adminClaims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(a.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    adminIssuer,
			Subject:   username,
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

func (a *adminAuth) validate(token string) (*adminClaims, error) {
	claims := &adminClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return a.secret, nil
	}, jwt.WithIssuer(adminIssuer))
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.Username != a.username {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// middleware sends visitors without a valid session to the login page.
func (a *adminAuth) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(adminCookie)
		if err != nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		if _, err := a.validate(token); err != nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
