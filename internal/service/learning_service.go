package service

import (
	"context"
	"net/url"

	"go-shakti-admin/pkg/apiclient"
)

type LearningService struct {
	api *apiclient.Client
}

func NewLearningService(api *apiclient.Client) *LearningService {
	return &LearningService{api: api}
}

func (s *LearningService) List(ctx context.Context) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/learning/list", nil)
}

func (s *LearningService) Detail(ctx context.Context, sealedID string) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/learning/detail", url.Values{"payload": {sealedID}})
}

func (s *LearningService) Save(ctx context.Context, sealed string) (*apiclient.Envelope, error) {
	return s.api.PostEncrypted(ctx, "/learning/update", sealed)
}

func (s *LearningService) ToggleStatus(ctx context.Context, sealedID string) (*apiclient.Envelope, error) {
	return s.api.PostEncrypted(ctx, "/learning/status", sealedID)
}
