// Package apiclient is the single HTTP client every domain service goes
// through to reach the program backend.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
)

var (
	ErrUnauthorized = errors.New("backend rejected session token")
	ErrBadResponse  = errors.New("malformed backend response")
)

// TokenSource supplies a fallback session token for outgoing requests.
// Empty string means no token is attached.
type TokenSource func() string

type tokenCtxKey struct{}

// WithToken binds a session token to the context of one request. A token set
// this way always wins over the client's TokenSource, so concurrent requests
// from different operators never share credentials.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenCtxKey{}, token)
}

func tokenFrom(ctx context.Context) string {
	tok, _ := ctx.Value(tokenCtxKey{}).(string)
	return tok
}

// Envelope is the backend's uniform response shape. Outcome is the
// business-level success flag; legacy endpoints omit it entirely.
type Envelope struct {
	Outcome *bool           `json:"outcome,omitempty"`
	Message string          `json:"message,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
}

// OK reports business-level success: an explicit outcome true, or an absent
// outcome on a 2xx response (legacy endpoints).
func (e *Envelope) OK() bool {
	return e.Outcome == nil || *e.Outcome
}

type Client struct {
	baseURL string
	http    *http.Client
	token   TokenSource
}

func New(baseURL string, token TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		token:   token,
	}
}

func (c *Client) bearer(ctx context.Context) string {
	if tok := tokenFrom(ctx); tok != "" {
		return tok
	}
	if c.token != nil {
		return c.token()
	}
	return ""
}

func (c *Client) do(req *http.Request) (*Envelope, error) {
	if tok := c.bearer(req.Context()); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, ErrUnauthorized
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var env Envelope
	if len(body) > 0 {
		if err := json.Unmarshal(body, &env); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := env.Message
		if msg == "" {
			msg = resp.Status
		}
		return nil, fmt.Errorf("backend returned %d: %s", resp.StatusCode, msg)
	}

	return &env, nil
}

// Get performs a plain GET with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (*Envelope, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	return c.do(req)
}

// PostJSON sends a plaintext JSON body. Only non-mutating calls (captcha
// fetch, token echo) use this; everything that writes goes through
// PostEncrypted.
func (c *Client) PostJSON(ctx context.Context, path string, body any) (*Envelope, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

// PostEncrypted sends an already-sealed payload as {"payload": "<cipher>"}.
func (c *Client) PostEncrypted(ctx context.Context, path, sealed string) (*Envelope, error) {
	return c.PostJSON(ctx, path, map[string]string{"payload": sealed})
}

// PostMultipart uploads a file alongside a sealed metadata field.
func (c *Client) PostMultipart(ctx context.Context, path, fileName string, file io.Reader, sealedMeta string) (*Envelope, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile("file", fileName)
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, err
	}
	if err := w.WriteField("payload", sealedMeta); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.do(req)
}

// GetBlob fetches a binary document (PDF, video, image) for inline viewing.
func (c *Client) GetBlob(ctx context.Context, path string, query url.Values) (string, []byte, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", nil, err
	}
	if tok := c.bearer(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return "", nil, ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", nil, fmt.Errorf("backend returned %d fetching blob", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", nil, err
	}
	return resp.Header.Get("Content-Type"), data, nil
}
