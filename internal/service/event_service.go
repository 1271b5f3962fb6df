package service

import (
	"context"
	"net/url"

	"go-shakti-admin/pkg/apiclient"
)

type EventService struct {
	api *apiclient.Client
}

func NewEventService(api *apiclient.Client) *EventService {
	return &EventService{api: api}
}

func (s *EventService) List(ctx context.Context) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/event/list", nil)
}

func (s *EventService) Detail(ctx context.Context, sealedID string) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/event/detail", url.Values{"payload": {sealedID}})
}

func (s *EventService) Save(ctx context.Context, sealed string) (*apiclient.Envelope, error) {
	return s.api.PostEncrypted(ctx, "/event/update", sealed)
}

func (s *EventService) ToggleStatus(ctx context.Context, sealedID string) (*apiclient.Envelope, error) {
	return s.api.PostEncrypted(ctx, "/event/status", sealedID)
}
