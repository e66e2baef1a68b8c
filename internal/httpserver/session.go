// internal/httpserver/session.go
//
// Player sessions.
// A session is an HS256 JWT carrying the player's display name. It is issued
// by POST /session, sent back as cookie or bearer token, and is optional on
// every game route: without one the player is recorded as "Guest".

package httpserver

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hangdle/go-server/internal/leaderboard"
)

// GuestName is used for rounds played without a session.
const GuestName = "Guest"

// sessionClaims is the JWT payload.
type sessionClaims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// ctxPlayerKey is the context key type for the player name.
type ctxPlayerKey struct{}

func playerFrom(ctx context.Context) string {
	if name, _ := ctx.Value(ctxPlayerKey{}).(string); name != "" {
		return name
	}
	return GuestName
}

// normalizeName trims the name and checks it can appear on the leaderboard.
func normalizeName(name string) (string, error) {
	name = strings.Join(strings.Fields(name), " ")
	if n := utf8.RuneCountInString(name); n < 1 || n > 24 {
		return "", errors.New("name must be 1-24 chars")
	}
	if strings.Contains(name, ",") {
		return "", errors.New("name must not contain commas")
	}
	if leaderboard.IsEmpty(name) {
		return "", errors.New("name is reserved")
	}
	return name, nil
}

// signSession creates a session token for name.
func (s *Server) signSession(name string) (string, time.Time, error) {
	now := s.now()
	exp := now.Add(s.cfg.SessionTTL)
	claims := sessionClaims{
		Name: name,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := t.SignedString(s.cfg.SessionSecret)
	return ss, exp, err
}

// verifySession parses and validates a session token.
func (s *Server) verifySession(token string) (*sessionClaims, error) {
	t, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (any, error) {
		return s.cfg.SessionSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	claims, ok := t.Claims.(*sessionClaims)
	if !ok || !t.Valid || claims.Name == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// withOptionalSession decorates requests with the player name if a valid
// token is present. It never rejects a request.
func (s *Server) withOptionalSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if tok := s.bearerOrCookie(r); tok != "" {
			if claims, err := s.verifySession(tok); err == nil {
				r = r.WithContext(context.WithValue(r.Context(), ctxPlayerKey{}, claims.Name))
			}
		}
		next.ServeHTTP(w, r)
	})
}

// bearerOrCookie extracts a token from the Authorization header or cookie.
func (s *Server) bearerOrCookie(r *http.Request) string {
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(s.cfg.CookieName); err == nil {
		return c.Value
	}
	return ""
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, exp time.Time) {
	sameSite := http.SameSiteLaxMode
	if s.cfg.SecureCookies {
		sameSite = http.SameSiteNoneMode
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: sameSite,
		Expires:  exp,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		MaxAge:   -1,
	})
}

type sessionReq struct {
	Name string `json:"name"`
}

type sessionRes struct {
	Name      string    `json:"name"`
	Token     string    `json:"token,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
}

// handleCreateSession issues a session for the requested display name.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionReq
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_json")
		return
	}
	name, err := normalizeName(req.Name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	tok, exp, err := s.signSession(name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sign_failed")
		return
	}
	s.setSessionCookie(w, tok, exp)
	writeJSON(w, http.StatusOK, sessionRes{Name: name, Token: tok, ExpiresAt: exp})
}

// handleGetSession reports the current player name ("Guest" without a session).
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, sessionRes{Name: playerFrom(r.Context())})
}

// handleDeleteSession clears the session cookie.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
