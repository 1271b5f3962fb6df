package handler

import (
	"fmt"

	"go-shakti-admin/internal/service"
	"go-shakti-admin/pkg/crypt"
	"go-shakti-admin/pkg/validator"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// maxUploadBytes bounds knowledge-document uploads (25 MB).
const maxUploadBytes = 25 << 20

// KnowledgeHandler extends the generic resource page with document upload and
// inline viewing.
type KnowledgeHandler struct {
	res    *ResourceHandler
	svc    *service.KnowledgeService
	sealer *crypt.Sealer
	log    *zap.Logger
}

func NewKnowledgeHandler(res *ResourceHandler, svc *service.KnowledgeService, sealer *crypt.Sealer, log *zap.Logger) *KnowledgeHandler {
	return &KnowledgeHandler{res: res, svc: svc, sealer: sealer, log: log}
}

func (h *KnowledgeHandler) Register(r fiber.Router) {
	h.res.Register(r)
	r.Post("/upload", h.Upload)
	r.Get("/:id/view", h.View)
}

type uploadMeta struct {
	Title   string `json:"title" form:"title" validate:"required"`
	DocType string `json:"docType" form:"docType" validate:"required,doctype"`
}

// Upload sends the document and its sealed metadata to the backend as one
// multipart request. Validation happens before anything leaves the gateway.
func (h *KnowledgeHandler) Upload(c *fiber.Ctx) error {
	meta := uploadMeta{
		Title:   c.FormValue("title"),
		DocType: c.FormValue("docType"),
	}
	if errs := validator.ValidateStruct(meta); len(errs) > 0 {
		first := errs[0]
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("Validation failed: field '%s' failed on tag '%s'", first.FailedField, first.Tag),
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file is required"})
	}
	if fileHeader.Size > maxUploadBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "file exceeds 25 MB limit"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return h.res.respond(c, err)
	}
	defer file.Close()

	sealedMeta, err := h.sealer.EncryptJSON(meta)
	if err != nil {
		return h.res.respond(c, err)
	}

	env, err := h.svc.Upload(c.UserContext(), fileHeader.Filename, file, sealedMeta)
	if err != nil {
		return h.res.respond(c, err)
	}
	if !env.OK() {
		return c.JSON(fiber.Map{"outcome": false, "message": env.Message})
	}

	if err := h.res.ctl(c).Load(c.UserContext()); err != nil {
		h.log.Warn("knowledge list reload failed", zap.Error(err))
	}

	return c.JSON(fiber.Map{"outcome": true, "message": env.Message})
}

// View streams the stored document inline with its original content type.
func (h *KnowledgeHandler) View(c *fiber.Ctx) error {
	sealedID, err := h.sealer.EncryptString(c.Params("id"))
	if err != nil {
		return h.res.respond(c, err)
	}

	contentType, data, err := h.svc.Blob(c.UserContext(), sealedID)
	if err != nil {
		return h.res.respond(c, err)
	}

	if contentType != "" {
		c.Set("Content-Type", contentType)
	}
	c.Set("Content-Disposition", "inline")
	return c.Send(data)
}
