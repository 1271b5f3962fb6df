// Package controller implements the one list/detail workflow every console
// page follows: load a list, filter and paginate it in memory, gate edits
// behind an explicit confirmation, seal payloads before they leave, and
// reload after every successful write.
package controller

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"go-shakti-admin/internal/model"
	"go-shakti-admin/pkg/crypt"

	"go.uber.org/zap"
)

// State of a page controller.
type State string

const (
	StateIdle           State = "Idle"
	StateLoading        State = "Loading"
	StateLoaded         State = "Loaded"
	StateSubmitting     State = "Submitting"
	StateConfirmingEdit State = "ConfirmingEdit"
	StateError          State = "Error"
)

// BusinessError carries the backend's human-readable message for a 2xx
// response whose outcome flag was false. Handlers surface it verbatim.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string { return e.Message }

// Config parametrizes one resource page. The same controller serves every
// resource; pages differ only in these functions and field lists.
type Config struct {
	// List fetches the full record list.
	List func(ctx context.Context) ([]model.Record, error)
	// Edit fetches the full record for the form, given a sealed identifier.
	Edit func(ctx context.Context, sealedID string) (json.RawMessage, error)
	// Save submits a sealed form payload.
	Save func(ctx context.Context, sealed string) error
	// Toggle flips the record's active flag, given a sealed identifier.
	Toggle func(ctx context.Context, sealedID string) error

	// SearchFields are matched case-insensitively by the list filter.
	SearchFields []string
	// IDField names the resource's identifier field (faqTypeCode, eventCode...).
	IDField string
	// FocusField is the form field the console scrolls to after a confirmed
	// edit loads.
	FocusField string
	PageSize   int
}

// PageResult is one rendered slice of the filtered list.
type PageResult struct {
	Rows     []model.Record `json:"rows"`
	Total    int            `json:"total"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	State    State          `json:"state"`
}

// Controller owns one page's transient state for one session. All methods
// are safe for concurrent use; each controller serializes its own
// fetch-edit-save sequence the way the console's loading flags did.
type Controller struct {
	mu     sync.Mutex
	cfg    Config
	sealer *crypt.Sealer
	log    *zap.Logger

	state   State
	records []model.Record
	pending model.Record
	form    json.RawMessage
	lastMsg string
}

func New(cfg Config, sealer *crypt.Sealer, log *zap.Logger) *Controller {
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}
	return &Controller{cfg: cfg, sealer: sealer, log: log, state: StateIdle}
}

func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// LastMessage returns the most recent business failure message ("" if none).
func (c *Controller) LastMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastMsg
}

// Load fetches the list. Idle/Loaded -> Loading -> Loaded, or Error on a
// transport failure. The loading state is always left on a terminal state.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	c.state = StateLoading
	c.mu.Unlock()

	recs, err := c.cfg.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.state = StateError
		c.lastMsg = messageOf(err)
		return err
	}
	c.records = recs
	c.state = StateLoaded
	c.lastMsg = ""
	return nil
}

// Page filters the cached list by a case-insensitive substring match over the
// configured search fields and returns the requested slice. A page past the
// end yields an empty slice, never an error.
func (c *Controller) Page(search string, page int) PageResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	filtered := filterRecords(c.records, c.cfg.SearchFields, search)

	if page < 1 {
		page = 1
	}
	size := c.cfg.PageSize
	start := (page - 1) * size
	end := start + size
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return PageResult{
		Rows:     filtered[start:end],
		Total:    len(filtered),
		Page:     page,
		PageSize: size,
		State:    c.state,
	}
}

func filterRecords(records []model.Record, fields []string, search string) []model.Record {
	if search == "" {
		return records
	}
	needle := strings.ToLower(search)
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		for _, f := range fields {
			if strings.Contains(strings.ToLower(r.DisplayField(f)), needle) {
				out = append(out, r)
				break
			}
		}
	}
	return out
}

// BeginEdit stores the row as the pending selection and opens the
// confirmation step. No network call happens here; the detail fetch waits
// for ConfirmEdit.
func (c *Controller) BeginEdit(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, r := range c.records {
		if r.RecordID() == id {
			c.pending = r
			c.state = StateConfirmingEdit
			return nil
		}
	}
	return &BusinessError{Message: "record not found: " + id}
}

// ConfirmEdit fires the deferred detail fetch and loads the working copy into
// form state. Returns the form plus the field to focus.
func (c *Controller) ConfirmEdit(ctx context.Context) (json.RawMessage, string, error) {
	c.mu.Lock()
	if c.cfg.Edit == nil {
		c.mu.Unlock()
		return nil, "", &BusinessError{Message: "editing is not supported on this page"}
	}
	if c.state != StateConfirmingEdit || c.pending == nil {
		c.mu.Unlock()
		return nil, "", &BusinessError{Message: "no pending edit selection"}
	}
	id := c.pending.RecordID()
	c.state = StateSubmitting
	c.mu.Unlock()

	sealedID, err := c.sealer.EncryptString(id)
	if err == nil {
		var detail json.RawMessage
		detail, err = c.cfg.Edit(ctx, sealedID)
		if err == nil {
			c.mu.Lock()
			c.form = detail
			c.pending = nil
			c.state = StateLoaded
			c.mu.Unlock()
			return detail, c.cfg.FocusField, nil
		}
	}

	c.mu.Lock()
	c.state = StateLoaded
	c.lastMsg = messageOf(err)
	c.mu.Unlock()
	return nil, "", err
}

// CancelEdit discards the pending selection. Zero network calls.
func (c *Controller) CancelEdit() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pending = nil
	if c.state == StateConfirmingEdit {
		c.state = StateLoaded
	}
}

// Submit seals the form payload, saves it, and on success clears the form and
// reloads the list. On failure the form state is kept for correction. The
// input payload is never mutated.
func (c *Controller) Submit(ctx context.Context, payload any) error {
	c.mu.Lock()
	c.state = StateSubmitting
	c.mu.Unlock()

	err := c.submit(ctx, payload)

	c.mu.Lock()
	c.state = StateLoaded
	if err != nil {
		c.lastMsg = messageOf(err)
	}
	c.mu.Unlock()

	if err != nil {
		return err
	}
	return c.Load(ctx)
}

func (c *Controller) submit(ctx context.Context, payload any) error {
	if c.cfg.Save == nil {
		return &BusinessError{Message: "saving is not supported on this page"}
	}
	sealed, err := c.sealer.EncryptJSON(payload)
	if err != nil {
		return err
	}
	if err := c.cfg.Save(ctx, sealed); err != nil {
		return err
	}
	c.mu.Lock()
	c.form = nil
	c.mu.Unlock()
	return nil
}

// ToggleStatus flips one record's active flag and reloads. No confirmation
// step, independent of the edit flow.
func (c *Controller) ToggleStatus(ctx context.Context, id string) error {
	c.mu.Lock()
	c.state = StateSubmitting
	c.mu.Unlock()

	err := c.toggle(ctx, id)

	c.mu.Lock()
	c.state = StateLoaded
	if err != nil {
		c.lastMsg = messageOf(err)
	}
	c.mu.Unlock()

	if err != nil {
		return err
	}
	return c.Load(ctx)
}

func (c *Controller) toggle(ctx context.Context, id string) error {
	if c.cfg.Toggle == nil {
		return &BusinessError{Message: "status changes are not supported on this page"}
	}
	sealedID, err := c.sealer.EncryptString(id)
	if err != nil {
		return err
	}
	return c.cfg.Toggle(ctx, sealedID)
}

// Form returns the current working copy (nil when no edit is in progress).
func (c *Controller) Form() json.RawMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

func messageOf(err error) string {
	if err == nil {
		return ""
	}
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Message
	}
	return "something went wrong, please retry"
}
