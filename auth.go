package main

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"examhub/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const (
	sessionCookie = "session"
	sessionTTL    = 7 * 24 * time.Hour
	ctxUserKey    = "currentUser"
)

var (
	errDuplicateEmail   = errors.New("e-mail already registered")
	errWrongCredentials = errors.New("wrong credentials")
)

func hashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(h), err
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// registerUser creates a User with a hashed password. Returns
// errDuplicateEmail when the address is taken, including when the pre-check
// loses the race to a concurrent insert.
func (a *App) registerUser(email, name, password string) (models.User, error) {
	email = strings.TrimSpace(email)
	var existing models.User
	if err := a.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return models.User{}, errDuplicateEmail
	}
	hash, err := hashPassword(password)
	if err != nil {
		return models.User{}, err
	}
	user := models.User{Email: email, Name: name, PasswordHash: hash}
	if err := a.db.Create(&user).Error; err != nil {
		if isUniqueConstraintError(err) {
			return models.User{}, errDuplicateEmail
		}
		return models.User{}, err
	}
	return user, nil
}

// authenticate verifies email+password. The error never reveals which of the
// two checks failed.
func (a *App) authenticate(email, password string) (models.User, error) {
	var user models.User
	if err := a.db.Where("email = ?", strings.TrimSpace(email)).First(&user).Error; err != nil {
		return models.User{}, errWrongCredentials
	}
	if !checkPassword(user.PasswordHash, password) {
		return models.User{}, errWrongCredentials
	}
	return user, nil
}

func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "duplicate key") || strings.Contains(s, "unique constraint") || strings.Contains(s, "already exists")
}

// signSessionToken mints the HS256 token carried in the session cookie. The
// subject is the user ID.
func signSessionToken(secret []byte, userID uint, ttl time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(userID), 10),
		"exp": time.Now().Add(ttl).Unix(),
	})
	return token.SignedString(secret)
}

func parseSessionToken(secret []byte, raw string) (uint, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrInvalidKeyType
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return 0, errors.New("invalid session token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, errors.New("invalid claims")
	}
	sub, _ := claims["sub"].(string)
	id, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid subject")
	}
	return uint(id), nil
}

func (a *App) startSession(c *gin.Context, user models.User) error {
	tok, err := signSessionToken([]byte(a.cfg.SecretKey), user.ID, sessionTTL)
	if err != nil {
		return err
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, tok, int(sessionTTL/time.Second), "/", "", false, true)
	return nil
}

func (a *App) endSession(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, "", -1, "/", "", false, true)
}

// currentUser resolves the session cookie to a User and stashes it in the
// request context. A missing or invalid cookie means anonymous, never an
// error.
func (a *App) currentUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw, err := c.Cookie(sessionCookie); err == nil && raw != "" {
			if id, err := parseSessionToken([]byte(a.cfg.SecretKey), raw); err == nil {
				var user models.User
				if err := a.db.First(&user, id).Error; err == nil {
					c.Set(ctxUserKey, &user)
				}
			}
		}
		c.Next()
	}
}

func userFrom(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil, false
	}
	u, ok := v.(*models.User)
	return u, ok && u != nil
}

// requireAuth redirects anonymous requests to the login page.
func (a *App) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := userFrom(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
