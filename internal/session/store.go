package session

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"go-shakti-admin/internal/model"
	"go-shakti-admin/internal/repository"
	"go-shakti-admin/pkg/apiclient"
	"go-shakti-admin/pkg/crypt"
	"go-shakti-admin/pkg/jwt"

	"go.uber.org/zap"
)

const (
	// CookieName is the browser cookie carrying the session token.
	CookieName = "jwtToken"
	// TTL is the fixed cookie/session lifetime.
	TTL = time.Hour
)

var (
	ErrLoginFailed  = errors.New("login failed")
	ErrNotLoggedIn  = errors.New("no active session")
	ErrBadLoginData = errors.New("unreadable login response")
)

// AuthAPI is the slice of the auth domain service the store drives.
type AuthAPI interface {
	Login(ctx context.Context, sealed string) (*apiclient.Envelope, error)
	Logout(ctx context.Context) (*apiclient.Envelope, error)
	Captcha(ctx context.Context) (*apiclient.Envelope, error)
}

// Announcer publishes the cross-tab logout signal.
type Announcer interface {
	AnnounceLogout(userCode string)
}

// Credentials is the login form as entered by the operator.
type Credentials struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
	Captcha  string `json:"captchaResponse" validate:"required"`
}

type loginData struct {
	Token string            `json:"token"`
	User  model.UserProfile `json:"user"`
	Menu  []model.MenuEntry `json:"menu"`
}

// LoginResult carries what the handler needs to finish the login: the token
// for the cookie plus the profile and menu for the shell. On failure Message
// holds the server-supplied text and Captcha a freshly fetched challenge.
type LoginResult struct {
	Token   string            `json:"token,omitempty"`
	User    model.UserProfile `json:"user"`
	Menu    []model.MenuEntry `json:"menu,omitempty"`
	Message string            `json:"message,omitempty"`
	Captcha json.RawMessage   `json:"captcha,omitempty"`
}

type sessionState struct {
	user model.UserProfile
	menu []model.MenuEntry
}

// Store caches per-session state keyed by token hash. The cookie the browser
// holds is the authoritative half of each session; these entries are a cache
// of what the login response delivered, rebuilt from token claims on restore.
// No entry is ever ambient: every lookup takes the request's own token.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*sessionState

	auth   AuthAPI
	sealer *crypt.Sealer
	repo   repository.SessionRepository
	hub    Announcer
	log    *zap.Logger
	now    func() time.Time
}

func NewStore(auth AuthAPI, sealer *crypt.Sealer, repo repository.SessionRepository, hub Announcer, log *zap.Logger) *Store {
	return &Store{
		sessions: make(map[string]*sessionState),
		auth:     auth,
		sealer:   sealer,
		repo:     repo,
		hub:      hub,
		log:      log,
		now:      time.Now,
	}
}

// HashToken is the digest stored in the session registry in place of the raw
// token.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Login seals the credentials, posts them, and on success registers the new
// session in both the cache and the registry. On a business failure nothing
// is registered and a fresh captcha is fetched for the retry.
func (s *Store) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	sealed, err := s.sealer.EncryptJSON(creds)
	if err != nil {
		return nil, err
	}

	env, err := s.auth.Login(ctx, sealed)
	if err != nil {
		return nil, err
	}

	if !env.OK() {
		res := &LoginResult{Message: env.Message}
		if res.Message == "" {
			res.Message = "login rejected"
		}
		if challenge, err := s.auth.Captcha(ctx); err == nil && challenge.OK() {
			res.Captcha = challenge.Data
		} else if err != nil {
			s.log.Warn("captcha refresh failed", zap.Error(err))
		}
		return res, ErrLoginFailed
	}

	var data loginData
	if err := json.Unmarshal(env.Data, &data); err != nil || data.Token == "" {
		return nil, ErrBadLoginData
	}

	s.mu.Lock()
	s.sessions[HashToken(data.Token)] = &sessionState{user: data.User, menu: data.Menu}
	s.mu.Unlock()

	now := s.now()
	rec := &model.SessionRecord{
		UserCode:  data.User.UserCode,
		TokenHash: HashToken(data.Token),
		IssuedAt:  now,
		ExpiresAt: now.Add(TTL),
	}
	if err := s.repo.Create(rec); err != nil {
		s.log.Warn("session registry write failed", zap.Error(err))
	}

	return &LoginResult{Token: data.Token, User: data.User, Menu: data.Menu}, nil
}

// Logout ends the given session: backend best-effort, then unconditionally
// drop the cache entry, revoke the registry row, and broadcast the cross-tab
// signal. A blank token is a no-op.
func (s *Store) Logout(ctx context.Context, token string) {
	if token == "" {
		return
	}
	hash := HashToken(token)

	s.mu.Lock()
	state := s.sessions[hash]
	delete(s.sessions, hash)
	s.mu.Unlock()

	userCode := ""
	if state != nil {
		userCode = state.user.UserCode
	} else if claims, err := jwt.Decode(token); err == nil {
		userCode = claims.UserCode
	}

	if _, err := s.auth.Logout(apiclient.WithToken(ctx, token)); err != nil {
		s.log.Warn("backend logout failed, local session cleared anyway", zap.Error(err))
	}
	if err := s.repo.Revoke(hash, s.now()); err != nil {
		s.log.Warn("session revoke failed", zap.Error(err))
	}
	s.hub.AnnounceLogout(userCode)
}

// User returns the cached profile for the session behind the token.
func (s *Store) User(token string) model.UserProfile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.sessions[HashToken(token)]; ok {
		return state.user
	}
	return model.UserProfile{}
}

// Menu returns the navigation tree delivered at that session's login.
func (s *Store) Menu(token string) []model.MenuEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if state, ok := s.sessions[HashToken(token)]; ok {
		return state.menu
	}
	return nil
}

// IsValid reports whether the token is well-formed and unexpired, decoded
// locally without contacting the backend.
func (s *Store) IsValid(token string) bool {
	return jwt.IsValid(token)
}

// RestoreFromCookie rebuilds the cache entry for a valid cookie token after a
// reload or restart, deriving the profile from the token claims. The menu
// stays empty until the next login delivers it. Invalid tokens restore
// nothing.
func (s *Store) RestoreFromCookie(cookieToken string) bool {
	if cookieToken == "" || !jwt.IsValid(cookieToken) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	hash := HashToken(cookieToken)
	if _, ok := s.sessions[hash]; !ok {
		state := &sessionState{}
		if claims, err := jwt.Decode(cookieToken); err == nil {
			state.user = model.UserProfile{UserCode: claims.UserCode, FullName: claims.FullName, RoleCode: claims.RoleCode}
		}
		s.sessions[hash] = state
	}
	return true
}

// Discard drops one session's cache entry without touching the backend or the
// registry. Used when the backend or the registry rejects the token.
func (s *Store) Discard(token string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	delete(s.sessions, HashToken(token))
	s.mu.Unlock()
}
