package service

import (
	"context"
	"net/url"

	"go-shakti-admin/pkg/apiclient"
)

type IncidentService struct {
	api *apiclient.Client
}

func NewIncidentService(api *apiclient.Client) *IncidentService {
	return &IncidentService{api: api}
}

func (s *IncidentService) List(ctx context.Context) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/incident/list", nil)
}

func (s *IncidentService) Detail(ctx context.Context, sealedID string) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/incident/detail", url.Values{"payload": {sealedID}})
}

// StageRules fetches the forward-action rules for the incident's current
// stage. The console only filters these, it never invents transitions.
func (s *IncidentService) StageRules(ctx context.Context, sealedID string) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/incident/stage-rules", url.Values{"payload": {sealedID}})
}

// Forward executes one allowed stage transition.
func (s *IncidentService) Forward(ctx context.Context, sealed string) (*apiclient.Envelope, error) {
	return s.api.PostEncrypted(ctx, "/incident/forward", sealed)
}
