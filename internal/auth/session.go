package auth

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const CookieName = "auth-token"

var ErrInvalidSession = errors.New("invalid session")

// Session is what the signed cookie carries.
type Session struct {
	StoreID   string `json:"storeId"`
	StoreName string `json:"storeName"`
}

type claims struct {
	StoreName string `json:"storeName"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies HS256 session tokens and the cookie that
// transports them.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	secure bool
	now    func() time.Time
}

func NewSessions(secret string, ttl time.Duration, secure bool) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl, secure: secure, now: time.Now}
}

func (s *Sessions) Issue(sess Session) (string, error) {
	now := s.now()
	c := claims{
		StoreName: sess.StoreName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.StoreID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.secret)
}

func (s *Sessions) Verify(token string) (Session, error) {
	var c claims
	_, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	if c.Subject == "" {
		return Session{}, ErrInvalidSession
	}
	return Session{StoreID: c.Subject, StoreName: c.StoreName}, nil
}

// SetCookie issues a token for sess and attaches it to the response.
func (s *Sessions) SetCookie(w http.ResponseWriter, sess Session) error {
	token, err := s.Issue(sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(s.ttl / time.Second),
	})
	return nil
}

func (s *Sessions) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// FromRequest reads and verifies the session cookie.
func (s *Sessions) FromRequest(r *http.Request) (Session, error) {
	c, err := r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return Session{}, ErrInvalidSession
	}
	return s.Verify(c.Value)
}
