package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-shakti-admin/internal/controller"
	"go-shakti-admin/internal/model"
	"go-shakti-admin/internal/session"
	"go-shakti-admin/internal/view"
	"go-shakti-admin/pkg/apiclient"
	"go-shakti-admin/pkg/crypt"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var testSealer = crypt.NewSealer("test-secret", "test-salt")

// pageBackend stands in for the remote resource behind one console page.
type pageBackend struct {
	records map[string]*model.FAQ
	order   []string

	editCalls int
	saveErr   error
	listErr   error
}

func newPageBackend(n int) *pageBackend {
	b := &pageBackend{records: make(map[string]*model.FAQ)}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("FAQ-%03d", i)
		b.records[id] = &model.FAQ{
			FAQTypeCode: id,
			FAQType:     "general",
			Question:    fmt.Sprintf("Question number %d", i),
			IsActive:    true,
		}
		b.order = append(b.order, id)
	}
	return b
}

func (b *pageBackend) config() controller.Config {
	return controller.Config{
		List: func(ctx context.Context) ([]model.Record, error) {
			if b.listErr != nil {
				return nil, b.listErr
			}
			out := make([]model.Record, 0, len(b.order))
			for _, id := range b.order {
				out = append(out, *b.records[id])
			}
			return out, nil
		},
		Edit: func(ctx context.Context, sealedID string) (json.RawMessage, error) {
			b.editCalls++
			id, err := testSealer.Open(sealedID)
			if err != nil {
				return nil, err
			}
			return json.Marshal(b.records[string(id)])
		},
		Save: func(ctx context.Context, sealed string) error {
			return b.saveErr
		},
		Toggle: func(ctx context.Context, sealedID string) error {
			id, err := testSealer.Open(sealedID)
			if err != nil {
				return err
			}
			rec, ok := b.records[string(id)]
			if !ok {
				return &controller.BusinessError{Message: "not found"}
			}
			rec.IsActive = !rec.IsActive
			return nil
		},
		SearchFields: []string{"question"},
		IDField:      "faqTypeCode",
		FocusField:   "question",
		PageSize:     10,
	}
}

func newPageApp(b *pageBackend) *fiber.App {
	mgr := controller.NewManager(b.config(), testSealer, zap.NewNop())
	h := NewResourceHandler("FAQ", mgr, []view.Column{
		{Key: "question", Label: "Question", Sortable: true},
		{Key: "faqType", Label: "Type"},
	}, nil, zap.NewNop())

	app := fiber.New()
	// Stand-in for the session guard.
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("session_token", "tok-test")
		return c.Next()
	})
	h.Register(app.Group("/faqs"))
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (int, map[string]any) {
	t.Helper()
	var rd io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, rd)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var parsed map[string]any
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &parsed))
	}
	return resp.StatusCode, parsed
}

func TestList_PaginatesAndSearches(t *testing.T) {
	t.Parallel()

	app := newPageApp(newPageBackend(25))

	status, body := doJSON(t, app, http.MethodGet, "/faqs/?page=3", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["outcome"])
	require.EqualValues(t, 25, body["total"])
	table := body["table"].(map[string]any)
	require.Len(t, table["rows"].([]any), 5)

	status, body = doJSON(t, app, http.MethodGet, "/faqs/?search=number+7", nil)
	require.Equal(t, http.StatusOK, status)
	require.EqualValues(t, 1, body["total"])
}

func TestEditFlow_OverHTTP(t *testing.T) {
	t.Parallel()

	b := newPageBackend(5)
	app := newPageApp(b)

	// Prime the controller.
	status, _ := doJSON(t, app, http.MethodGet, "/faqs/", nil)
	require.Equal(t, http.StatusOK, status)

	// Edit click returns the dialog without fetching the record.
	status, body := doJSON(t, app, http.MethodPost, "/faqs/FAQ-002/edit", nil)
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body["dialog"].(map[string]any)["description"], "FAQ-002")
	require.Zero(t, b.editCalls)

	// Confirming fires the detail fetch and returns the form plus focus hint.
	status, body = doJSON(t, app, http.MethodPost, "/faqs/edit/confirm", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, 1, b.editCalls)
	require.Equal(t, "question", body["focusField"])
	form := body["form"].(map[string]any)
	require.Equal(t, "FAQ-002", form["faqTypeCode"])

	// Save round-trips through the page.
	status, body = doJSON(t, app, http.MethodPost, "/faqs/", map[string]any{"faqTypeCode": "FAQ-002", "question": "updated?"})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["outcome"])
}

func TestEditFlow_CancelOverHTTP(t *testing.T) {
	t.Parallel()

	b := newPageBackend(5)
	app := newPageApp(b)
	doJSON(t, app, http.MethodGet, "/faqs/", nil)

	doJSON(t, app, http.MethodPost, "/faqs/FAQ-001/edit", nil)
	status, body := doJSON(t, app, http.MethodPost, "/faqs/edit/cancel", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["outcome"])
	require.Zero(t, b.editCalls)
}

func TestSubmit_BusinessFailureIsOutcomeFalse(t *testing.T) {
	t.Parallel()

	b := newPageBackend(3)
	b.saveErr = &controller.BusinessError{Message: "duplicate question"}
	app := newPageApp(b)
	doJSON(t, app, http.MethodGet, "/faqs/", nil)

	status, body := doJSON(t, app, http.MethodPost, "/faqs/", map[string]any{"question": "x"})
	require.Equal(t, http.StatusOK, status, "business failures are 200s")
	require.Equal(t, false, body["outcome"])
	require.Equal(t, "duplicate question", body["message"])
}

func TestSubmit_ReadOnlyPageRejectsWithoutPanic(t *testing.T) {
	t.Parallel()

	// Pages like the document repository mount the shared routes but
	// configure no save; posting to them must fail soft.
	b := newPageBackend(3)
	mgr := controller.NewManager(controller.Config{
		List: func(ctx context.Context) ([]model.Record, error) {
			out := make([]model.Record, 0, len(b.order))
			for _, id := range b.order {
				out = append(out, *b.records[id])
			}
			return out, nil
		},
		SearchFields: []string{"question"},
		IDField:      "faqTypeCode",
	}, testSealer, zap.NewNop())
	h := NewResourceHandler("Documents", mgr, []view.Column{{Key: "question", Label: "Question"}}, nil, zap.NewNop())

	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		c.Locals("session_token", "tok-test")
		return c.Next()
	})
	h.Register(app.Group("/docs"))

	doJSON(t, app, http.MethodGet, "/docs/", nil)

	status, body := doJSON(t, app, http.MethodPost, "/docs/", map[string]any{"question": "x"})
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, false, body["outcome"])
	require.NotEmpty(t, body["message"])

	status, body = doJSON(t, app, http.MethodPost, "/docs/FAQ-001/status", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, false, body["outcome"])
}

func TestList_RetriesAfterError(t *testing.T) {
	t.Parallel()

	b := newPageBackend(3)
	b.listErr = errors.New("connection refused")
	app := newPageApp(b)

	status, _ := doJSON(t, app, http.MethodGet, "/faqs/", nil)
	require.Equal(t, http.StatusBadGateway, status)

	// The next plain view retries on its own; the page never stays stuck.
	b.listErr = nil
	status, body := doJSON(t, app, http.MethodGet, "/faqs/", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["outcome"])
	require.EqualValues(t, 3, body["total"])
}

func TestList_BackendTokenRejectionEndsSession(t *testing.T) {
	t.Parallel()

	b := newPageBackend(3)
	b.listErr = apiclient.ErrUnauthorized
	app := newPageApp(b)

	req := httptest.NewRequest(http.MethodGet, "/faqs/", nil)
	req.Header.Set("Accept", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var cookieCleared bool
	for _, sc := range resp.Header.Values("Set-Cookie") {
		if strings.HasPrefix(sc, session.CookieName+"=") {
			cookieCleared = true
		}
	}
	require.True(t, cookieCleared, "backend rejection must expire the session cookie")

	// Browser navigations bounce to login instead.
	nav := httptest.NewRequest(http.MethodGet, "/faqs/", nil)
	nav.Header.Set("Accept", "text/html")
	resp, err = app.Test(nav)
	require.NoError(t, err)
	require.Equal(t, http.StatusFound, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestList_TransportFailureIs502(t *testing.T) {
	t.Parallel()

	b := newPageBackend(3)
	b.listErr = errors.New("connection refused")
	app := newPageApp(b)

	status, body := doJSON(t, app, http.MethodGet, "/faqs/", nil)
	require.Equal(t, http.StatusBadGateway, status)
	require.Equal(t, false, body["outcome"])
	require.Equal(t, "something went wrong, please retry", body["message"])
}

func TestToggle_FlipsFlag(t *testing.T) {
	t.Parallel()

	b := newPageBackend(3)
	app := newPageApp(b)
	doJSON(t, app, http.MethodGet, "/faqs/", nil)

	status, body := doJSON(t, app, http.MethodPost, "/faqs/FAQ-001/status", nil)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["outcome"])
	require.False(t, b.records["FAQ-001"].IsActive)
}
