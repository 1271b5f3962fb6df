package service

import (
	"context"
	"net/url"

	"go-shakti-admin/pkg/apiclient"
)

type APAService struct {
	api *apiclient.Client
}

func NewAPAService(api *apiclient.Client) *APAService {
	return &APAService{api: api}
}

func (s *APAService) List(ctx context.Context) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/apa/list", nil)
}

func (s *APAService) Detail(ctx context.Context, sealedID string) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/apa/detail", url.Values{"payload": {sealedID}})
}

// Register submits a new associate registration.
func (s *APAService) Register(ctx context.Context, sealed string) (*apiclient.Envelope, error) {
	return s.api.PostEncrypted(ctx, "/apa/register", sealed)
}

func (s *APAService) ToggleStatus(ctx context.Context, sealedID string) (*apiclient.Envelope, error) {
	return s.api.PostEncrypted(ctx, "/apa/status", sealedID)
}
