package service

import (
	"context"
	"io"
	"net/url"

	"go-shakti-admin/pkg/apiclient"
)

type KnowledgeService struct {
	api *apiclient.Client
}

func NewKnowledgeService(api *apiclient.Client) *KnowledgeService {
	return &KnowledgeService{api: api}
}

func (s *KnowledgeService) List(ctx context.Context) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/knowledge/list", nil)
}

func (s *KnowledgeService) Detail(ctx context.Context, sealedID string) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/knowledge/detail", url.Values{"payload": {sealedID}})
}

// Upload sends the document file with its sealed metadata as a multipart form.
func (s *KnowledgeService) Upload(ctx context.Context, fileName string, file io.Reader, sealedMeta string) (*apiclient.Envelope, error) {
	return s.api.PostMultipart(ctx, "/knowledge/upload", fileName, file, sealedMeta)
}

// Blob fetches the stored document for inline viewing.
func (s *KnowledgeService) Blob(ctx context.Context, sealedID string) (string, []byte, error) {
	return s.api.GetBlob(ctx, "/knowledge/view", url.Values{"payload": {sealedID}})
}

func (s *KnowledgeService) ToggleStatus(ctx context.Context, sealedID string) (*apiclient.Envelope, error) {
	return s.api.PostEncrypted(ctx, "/knowledge/status", sealedID)
}
