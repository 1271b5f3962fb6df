package controller

import (
	"context"
	"encoding/json"

	"go-shakti-admin/internal/model"
	"go-shakti-admin/pkg/apiclient"
)

// The adapters below turn envelope-returning service calls into the plain
// functions Config wants, applying the one success rule everywhere: a call
// succeeds only on a transport-level success AND an outcome flag that is
// either absent or true.

func envErr(env *apiclient.Envelope, err error) error {
	if err != nil {
		return err
	}
	if !env.OK() {
		msg := env.Message
		if msg == "" {
			msg = "request rejected"
		}
		return &BusinessError{Message: msg}
	}
	return nil
}

// ListFunc adapts a list call whose envelope data is a JSON array of T.
func ListFunc[T model.Record](call func(ctx context.Context) (*apiclient.Envelope, error)) func(ctx context.Context) ([]model.Record, error) {
	return func(ctx context.Context) ([]model.Record, error) {
		env, err := call(ctx)
		if e := envErr(env, err); e != nil {
			return nil, e
		}
		var items []T
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &items); err != nil {
				return nil, err
			}
		}
		out := make([]model.Record, len(items))
		for i, it := range items {
			out[i] = it
		}
		return out, nil
	}
}

// EditFunc adapts a detail fetch; the raw data becomes the form state.
func EditFunc(call func(ctx context.Context, sealedID string) (*apiclient.Envelope, error)) func(ctx context.Context, sealedID string) (json.RawMessage, error) {
	return func(ctx context.Context, sealedID string) (json.RawMessage, error) {
		env, err := call(ctx, sealedID)
		if e := envErr(env, err); e != nil {
			return nil, e
		}
		return env.Data, nil
	}
}

// WriteFunc adapts save and toggle calls.
func WriteFunc(call func(ctx context.Context, sealed string) (*apiclient.Envelope, error)) func(ctx context.Context, sealed string) error {
	return func(ctx context.Context, sealed string) error {
		env, err := call(ctx, sealed)
		return envErr(env, err)
	}
}
