package service

import (
	"context"
	"net/url"

	"go-shakti-admin/pkg/apiclient"
)

type CategoryService struct {
	api *apiclient.Client
}

func NewCategoryService(api *apiclient.Client) *CategoryService {
	return &CategoryService{api: api}
}

func (s *CategoryService) List(ctx context.Context) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/category/list", nil)
}

func (s *CategoryService) Detail(ctx context.Context, sealedID string) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/category/detail", url.Values{"payload": {sealedID}})
}

func (s *CategoryService) Save(ctx context.Context, sealed string) (*apiclient.Envelope, error) {
	return s.api.PostEncrypted(ctx, "/category/update", sealed)
}

func (s *CategoryService) ToggleStatus(ctx context.Context, sealedID string) (*apiclient.Envelope, error) {
	return s.api.PostEncrypted(ctx, "/category/status", sealedID)
}
