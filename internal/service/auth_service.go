package service

import (
	"context"

	"go-shakti-admin/pkg/apiclient"
)

// AuthService maps console auth actions onto backend calls. Like every
// service here it is a pass-through: callers hand it prepared (sealed where
// mutating) data and get the raw envelope back.
type AuthService struct {
	api *apiclient.Client
}

func NewAuthService(api *apiclient.Client) *AuthService {
	return &AuthService{api: api}
}

func (s *AuthService) Login(ctx context.Context, sealed string) (*apiclient.Envelope, error) {
	return s.api.PostEncrypted(ctx, "/auth/login", sealed)
}

func (s *AuthService) Logout(ctx context.Context) (*apiclient.Envelope, error) {
	return s.api.PostJSON(ctx, "/auth/logout", map[string]string{})
}

func (s *AuthService) Captcha(ctx context.Context) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/auth/captcha", nil)
}
