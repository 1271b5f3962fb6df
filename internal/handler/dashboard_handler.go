package handler

import (
	"context"
	"encoding/json"

	"go-shakti-admin/pkg/apiclient"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ListCall is any resource list endpoint usable for dashboard counts.
type ListCall func(ctx context.Context) (*apiclient.Envelope, error)

// DashboardHandler builds the landing-page summary by counting records from
// the resource list endpoints. Counts degrade per tile: one failing resource
// shows -1, the rest still render.
type DashboardHandler struct {
	sources map[string]ListCall
	log     *zap.Logger
}

func NewDashboardHandler(sources map[string]ListCall, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{sources: sources, log: log}
}

type tile struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// Stats returns per-resource totals.
// GET /dashboard/stats
func (h *DashboardHandler) Stats(c *fiber.Ctx) error {
	out := make(map[string]tile, len(h.sources))

	for name, call := range h.sources {
		env, err := call(c.UserContext())
		if err != nil || !env.OK() {
			h.log.Warn("dashboard source failed", zap.String("resource", name), zap.Error(err))
			out[name] = tile{Total: -1, Active: -1}
			continue
		}
		var items []struct {
			IsActive bool `json:"isActive"`
		}
		if len(env.Data) > 0 {
			if err := json.Unmarshal(env.Data, &items); err != nil {
				out[name] = tile{Total: -1, Active: -1}
				continue
			}
		}
		t := tile{Total: len(items)}
		for _, it := range items {
			if it.IsActive {
				t.Active++
			}
		}
		out[name] = t
	}

	return c.JSON(fiber.Map{"outcome": true, "data": out})
}
