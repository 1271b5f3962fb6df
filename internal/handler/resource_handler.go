package handler

import (
	"errors"
	"time"

	"go-shakti-admin/internal/controller"
	"go-shakti-admin/internal/model"
	"go-shakti-admin/internal/session"
	"go-shakti-admin/internal/view"
	"go-shakti-admin/pkg/apiclient"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ResourceHandler serves one list/detail console page. Every resource page
// (FAQ, events, quizzes, categories, learning content, registrations...) is
// this same handler with a different controller config and column set.
type ResourceHandler struct {
	label   string
	mgr     *controller.Manager
	columns []view.Column
	store   *session.Store
	log     *zap.Logger
}

func NewResourceHandler(label string, mgr *controller.Manager, columns []view.Column, store *session.Store, log *zap.Logger) *ResourceHandler {
	return &ResourceHandler{label: label, mgr: mgr, columns: columns, store: store, log: log}
}

// Register mounts the page's routes on the given group.
func (h *ResourceHandler) Register(r fiber.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Submit)
	r.Post("/:id/edit", h.BeginEdit)
	r.Post("/edit/confirm", h.ConfirmEdit)
	r.Post("/edit/cancel", h.CancelEdit)
	r.Post("/:id/status", h.Toggle)
}

func sessionID(c *fiber.Ctx) string {
	tok, _ := c.Locals("session_token").(string)
	return session.HashToken(tok)
}

func (h *ResourceHandler) ctl(c *fiber.Ctx) *controller.Controller {
	return h.mgr.For(sessionID(c))
}

// respond translates the error taxonomy: business failures come back as
// outcome=false with the verbatim message, a backend token rejection ends the
// session, everything else is a generic 502.
func (h *ResourceHandler) respond(c *fiber.Ctx, err error) error {
	var be *controller.BusinessError
	if errors.As(err, &be) {
		return c.JSON(fiber.Map{"outcome": false, "message": be.Message})
	}
	if errors.Is(err, apiclient.ErrUnauthorized) {
		// The backend stopped honoring the token; end the session here the
		// same way the guard would have.
		token, _ := c.Locals("session_token").(string)
		h.store.Discard(token)
		h.mgr.Drop(sessionID(c))
		expireSessionCookie(c)
		if c.Accepts("html", "json") == "html" {
			return c.Redirect("/login", fiber.StatusFound)
		}
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"outcome": false, "message": "session expired, please log in again"})
	}
	h.log.Error("backend call failed", zap.String("page", h.label), zap.Error(err))
	return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"outcome": false, "message": "something went wrong, please retry"})
}

func expireSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
	})
}

// List loads (or reloads) the list and returns the filtered, paginated slice
// as a table model. A page left in the error state retries on the next view.
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	ctl := h.ctl(c)

	state := ctl.State()
	if state == controller.StateIdle || state == controller.StateError || c.QueryBool("reload") {
		if err := ctl.Load(c.UserContext()); err != nil {
			return h.respond(c, err)
		}
	}

	page := ctl.Page(c.Query("search"), c.QueryInt("page", 1))
	table := view.BuildTable(h.columns, page.Rows)
	if key := c.Query("sort"); key != "" {
		table = view.Sorted(table, key, c.Query("dir", "asc") == "asc")
	}

	return c.JSON(fiber.Map{
		"outcome": true,
		"heading": view.PageHeading{Title: h.label},
		"table":   table,
		"actions": rowActions(page.Rows),
		"total":   page.Total,
		"page":    page.Page,
		"state":   page.State,
	})
}

// BeginEdit stores the pending selection and returns the confirmation dialog.
// The detail fetch does not fire until the dialog is confirmed.
func (h *ResourceHandler) BeginEdit(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.ctl(c).BeginEdit(id); err != nil {
		return h.respond(c, err)
	}
	return c.JSON(fiber.Map{
		"outcome": true,
		"dialog":  view.EditConfirm(h.label, id),
	})
}

func (h *ResourceHandler) ConfirmEdit(c *fiber.Ctx) error {
	form, focus, err := h.ctl(c).ConfirmEdit(c.UserContext())
	if err != nil {
		return h.respond(c, err)
	}
	return c.JSON(fiber.Map{"outcome": true, "form": form, "focusField": focus})
}

func (h *ResourceHandler) CancelEdit(c *fiber.Ctx) error {
	h.ctl(c).CancelEdit()
	return c.JSON(fiber.Map{"outcome": true})
}

// Submit seals the posted form and saves it; the controller reloads the list
// on success.
func (h *ResourceHandler) Submit(c *fiber.Ctx) error {
	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if err := h.ctl(c).Submit(c.UserContext(), payload); err != nil {
		return h.respond(c, err)
	}
	return c.JSON(fiber.Map{"outcome": true})
}

// Toggle flips a record's active flag. No confirmation step.
func (h *ResourceHandler) Toggle(c *fiber.Ctx) error {
	if err := h.ctl(c).ToggleStatus(c.UserContext(), c.Params("id")); err != nil {
		return h.respond(c, err)
	}
	return c.JSON(fiber.Map{"outcome": true})
}

// Drop releases per-session controller state; called on logout.
func (h *ResourceHandler) Drop(sessionHash string) {
	h.mgr.Drop(sessionHash)
}

// rowActions is exposed for shells that render the per-row buttons
// server-side.
func rowActions(recs []model.Record) []view.ActionButtons {
	out := make([]view.ActionButtons, len(recs))
	for i, r := range recs {
		out[i] = view.RowActions(r.Active())
	}
	return out
}
