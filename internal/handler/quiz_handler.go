package handler

import (
	"encoding/json"

	"go-shakti-admin/internal/model"
	"go-shakti-admin/internal/service"
	"go-shakti-admin/pkg/crypt"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler extends the generic resource page with question authoring.
type QuizHandler struct {
	res    *ResourceHandler
	svc    *service.QuizService
	sealer *crypt.Sealer
}

func NewQuizHandler(res *ResourceHandler, svc *service.QuizService, sealer *crypt.Sealer) *QuizHandler {
	return &QuizHandler{res: res, svc: svc, sealer: sealer}
}

func (h *QuizHandler) Register(r fiber.Router) {
	h.res.Register(r)
	r.Get("/:id/questions", h.Questions)
	r.Post("/:id/questions", h.SaveQuestion)
}

// Questions lists the questions authored under one quiz.
func (h *QuizHandler) Questions(c *fiber.Ctx) error {
	sealedID, err := h.sealer.EncryptString(c.Params("id"))
	if err != nil {
		return h.res.respond(c, err)
	}

	env, err := h.svc.Questions(c.UserContext(), sealedID)
	if err != nil {
		return h.res.respond(c, err)
	}
	if !env.OK() {
		return c.JSON(fiber.Map{"outcome": false, "message": env.Message})
	}

	var questions []model.QuizQuestion
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &questions); err != nil {
			return h.res.respond(c, err)
		}
	}
	return c.JSON(fiber.Map{"outcome": true, "data": questions})
}

// SaveQuestion seals and submits one question form.
func (h *QuizHandler) SaveQuestion(c *fiber.Ctx) error {
	var payload map[string]any
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	payload["quizCode"] = c.Params("id")

	sealed, err := h.sealer.EncryptJSON(payload)
	if err != nil {
		return h.res.respond(c, err)
	}

	env, err := h.svc.SaveQuestion(c.UserContext(), sealed)
	if err != nil {
		return h.res.respond(c, err)
	}
	if !env.OK() {
		return c.JSON(fiber.Map{"outcome": false, "message": env.Message})
	}
	return c.JSON(fiber.Map{"outcome": true, "message": env.Message})
}
