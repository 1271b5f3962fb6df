package service

import (
	"context"
	"net/url"

	"go-shakti-admin/pkg/apiclient"
)

type FAQService struct {
	api *apiclient.Client
}

func NewFAQService(api *apiclient.Client) *FAQService {
	return &FAQService{api: api}
}

func (s *FAQService) List(ctx context.Context) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/faq/list", nil)
}

func (s *FAQService) Detail(ctx context.Context, sealedID string) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/faq/detail", url.Values{"payload": {sealedID}})
}

func (s *FAQService) Save(ctx context.Context, sealed string) (*apiclient.Envelope, error) {
	return s.api.PostEncrypted(ctx, "/faq/update", sealed)
}

func (s *FAQService) ToggleStatus(ctx context.Context, sealedID string) (*apiclient.Envelope, error) {
	return s.api.PostEncrypted(ctx, "/faq/status", sealedID)
}
