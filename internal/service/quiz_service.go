package service

import (
	"context"
	"net/url"

	"go-shakti-admin/pkg/apiclient"
)

type QuizService struct {
	api *apiclient.Client
}

func NewQuizService(api *apiclient.Client) *QuizService {
	return &QuizService{api: api}
}

func (s *QuizService) List(ctx context.Context) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/quiz/list", nil)
}

func (s *QuizService) Detail(ctx context.Context, sealedID string) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/quiz/detail", url.Values{"payload": {sealedID}})
}

func (s *QuizService) Save(ctx context.Context, sealed string) (*apiclient.Envelope, error) {
	return s.api.PostEncrypted(ctx, "/quiz/update", sealed)
}

func (s *QuizService) ToggleStatus(ctx context.Context, sealedID string) (*apiclient.Envelope, error) {
	return s.api.PostEncrypted(ctx, "/quiz/status", sealedID)
}

// Questions lists the questions authored under one quiz.
func (s *QuizService) Questions(ctx context.Context, sealedQuizID string) (*apiclient.Envelope, error) {
	return s.api.Get(ctx, "/quiz/questions", url.Values{"payload": {sealedQuizID}})
}

func (s *QuizService) SaveQuestion(ctx context.Context, sealed string) (*apiclient.Envelope, error) {
	return s.api.PostEncrypted(ctx, "/quiz/question/update", sealed)
}
