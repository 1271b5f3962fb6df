package handler

import (
	"encoding/json"

	"go-shakti-admin/internal/model"
	"go-shakti-admin/internal/service"
	"go-shakti-admin/pkg/crypt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// IncidentHandler drives the incident-report triage page. Listing reuses the
// generic resource flow; on top of it sit the stage-rule lookup and the
// forward action, where the backend owns the transition table and the console
// only filters it.
type IncidentHandler struct {
	res    *ResourceHandler
	svc    *service.IncidentService
	sealer *crypt.Sealer
	log    *zap.Logger
}

func NewIncidentHandler(res *ResourceHandler, svc *service.IncidentService, sealer *crypt.Sealer, log *zap.Logger) *IncidentHandler {
	return &IncidentHandler{res: res, svc: svc, sealer: sealer, log: log}
}

func (h *IncidentHandler) Register(r fiber.Router) {
	r.Get("/", h.res.List)
	r.Post("/:id/edit", h.res.BeginEdit)
	r.Post("/edit/confirm", h.res.ConfirmEdit)
	r.Post("/edit/cancel", h.res.CancelEdit)
	r.Get("/:id", h.Detail)
	r.Post("/:id/forward", h.Forward)
}

// Detail returns the incident with the action buttons allowed for its current
// stage: only pending incidents, only visible rules whose source stage equals
// the incident's stage.
func (h *IncidentHandler) Detail(c *fiber.Ctx) error {
	sealedID, err := h.sealer.EncryptString(c.Params("id"))
	if err != nil {
		return h.res.respond(c, err)
	}

	env, err := h.svc.Detail(c.UserContext(), sealedID)
	if err != nil {
		return h.res.respond(c, err)
	}
	if !env.OK() {
		return c.JSON(fiber.Map{"outcome": false, "message": env.Message})
	}

	var inc model.Incident
	if err := json.Unmarshal(env.Data, &inc); err != nil {
		return h.res.respond(c, err)
	}

	rulesEnv, err := h.svc.StageRules(c.UserContext(), sealedID)
	if err != nil {
		return h.res.respond(c, err)
	}
	var rules []model.StageRule
	if rulesEnv.OK() && len(rulesEnv.Data) > 0 {
		if err := json.Unmarshal(rulesEnv.Data, &rules); err != nil {
			return h.res.respond(c, err)
		}
	}

	return c.JSON(fiber.Map{
		"outcome":        true,
		"incident":       inc,
		"allowedActions": model.AllowedActions(inc, rules),
	})
}

type forwardRequest struct {
	RuleCode string `json:"ruleCode"`
	Remarks  string `json:"remarks"`
}

// Forward executes one allowed stage transition and refreshes the list.
func (h *IncidentHandler) Forward(c *fiber.Ctx) error {
	var req forwardRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.RuleCode == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "ruleCode is required"})
	}

	sealed, err := h.sealer.EncryptJSON(map[string]string{
		"incidentCode": c.Params("id"),
		"ruleCode":     req.RuleCode,
		"remarks":      req.Remarks,
	})
	if err != nil {
		return h.res.respond(c, err)
	}

	env, err := h.svc.Forward(c.UserContext(), sealed)
	if err != nil {
		return h.res.respond(c, err)
	}
	if !env.OK() {
		return c.JSON(fiber.Map{"outcome": false, "message": env.Message})
	}

	// Stage moved; drop the cached list so the next view refetches.
	if err := h.res.ctl(c).Load(c.UserContext()); err != nil {
		h.log.Warn("incident list reload failed", zap.Error(err))
	}

	return c.JSON(fiber.Map{"outcome": true, "message": env.Message})
}
