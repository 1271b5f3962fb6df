package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-shakti-admin/internal/config"
	"go-shakti-admin/internal/controller"
	"go-shakti-admin/internal/handler"
	"go-shakti-admin/internal/middleware"
	"go-shakti-admin/internal/model"
	"go-shakti-admin/internal/repository"
	"go-shakti-admin/internal/service"
	"go-shakti-admin/internal/session"
	"go-shakti-admin/internal/view"
	"go-shakti-admin/internal/ws"
	"go-shakti-admin/pkg/apiclient"
	"go-shakti-admin/pkg/crypt"
	"go-shakti-admin/pkg/database"
	"go-shakti-admin/pkg/logger"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

func main() {
	// 1. Config & logging
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}
	zl := logger.New()
	defer zl.Sync()

	// 2. Payload sealing
	sealer := crypt.NewSealer(cfg.PayloadSecret, cfg.PayloadSalt)

	// 3. Session registry (Postgres when configured, memory otherwise)
	var repo repository.SessionRepository
	if cfg.SessionDBDSN != "" {
		db, err := database.Connect(cfg.SessionDBDSN)
		if err != nil {
			zl.Fatal("session db connect failed", zap.Error(err))
		}
		if err := db.AutoMigrate(&model.SessionRecord{}); err != nil {
			zl.Fatal("session db migrate failed", zap.Error(err))
		}
		repo = repository.NewSessionRepo(db)
	} else {
		zl.Warn("no SESSION_DB_DSN set, using in-memory session registry")
		repo = repository.NewMemorySessionRepo()
	}

	// 4. Cross-tab signal hub
	hub := ws.NewHub(zl)
	go hub.Run()

	// 5. Backend client. Tokens travel per request on the context, attached
	// by the session guard; no ambient fallback.
	api := apiclient.New(cfg.BackendBaseURL, nil)

	// 6. Domain services (one per backend resource)
	authSvc := service.NewAuthService(api)
	faqSvc := service.NewFAQService(api)
	eventSvc := service.NewEventService(api)
	learnSvc := service.NewLearningService(api)
	quizSvc := service.NewQuizService(api)
	catSvc := service.NewCategoryService(api)
	knowSvc := service.NewKnowledgeService(api)
	incSvc := service.NewIncidentService(api)
	apaSvc := service.NewAPAService(api)

	store := session.NewStore(authSvc, sealer, repo, hub, zl)

	// 7. Page controllers: one config per resource, one instance per session
	faqMgr := controller.NewManager(controller.Config{
		List:         controller.ListFunc[model.FAQ](faqSvc.List),
		Edit:         controller.EditFunc(faqSvc.Detail),
		Save:         controller.WriteFunc(faqSvc.Save),
		Toggle:       controller.WriteFunc(faqSvc.ToggleStatus),
		SearchFields: []string{"faqType", "question", "answer"},
		IDField:      "faqTypeCode",
		FocusField:   "question",
	}, sealer, zl)

	eventMgr := controller.NewManager(controller.Config{
		List:         controller.ListFunc[model.Event](eventSvc.List),
		Edit:         controller.EditFunc(eventSvc.Detail),
		Save:         controller.WriteFunc(eventSvc.Save),
		Toggle:       controller.WriteFunc(eventSvc.ToggleStatus),
		SearchFields: []string{"eventName", "venue", "district"},
		IDField:      "eventCode",
		FocusField:   "eventName",
	}, sealer, zl)

	learnMgr := controller.NewManager(controller.Config{
		List:         controller.ListFunc[model.LearningContent](learnSvc.List),
		Edit:         controller.EditFunc(learnSvc.Detail),
		Save:         controller.WriteFunc(learnSvc.Save),
		Toggle:       controller.WriteFunc(learnSvc.ToggleStatus),
		SearchFields: []string{"title", "contentType", "language"},
		IDField:      "contentCode",
		FocusField:   "title",
	}, sealer, zl)

	quizMgr := controller.NewManager(controller.Config{
		List:         controller.ListFunc[model.Quiz](quizSvc.List),
		Edit:         controller.EditFunc(quizSvc.Detail),
		Save:         controller.WriteFunc(quizSvc.Save),
		Toggle:       controller.WriteFunc(quizSvc.ToggleStatus),
		SearchFields: []string{"quizName", "categoryCode", "language"},
		IDField:      "quizCode",
		FocusField:   "quizName",
	}, sealer, zl)

	catMgr := controller.NewManager(controller.Config{
		List:         controller.ListFunc[model.Category](catSvc.List),
		Edit:         controller.EditFunc(catSvc.Detail),
		Save:         controller.WriteFunc(catSvc.Save),
		Toggle:       controller.WriteFunc(catSvc.ToggleStatus),
		SearchFields: []string{"categoryName"},
		IDField:      "categoryCode",
		FocusField:   "categoryName",
	}, sealer, zl)

	knowMgr := controller.NewManager(controller.Config{
		List:         controller.ListFunc[model.KnowledgeDoc](knowSvc.List),
		Edit:         controller.EditFunc(knowSvc.Detail),
		Toggle:       controller.WriteFunc(knowSvc.ToggleStatus),
		SearchFields: []string{"title", "docType", "fileName"},
		IDField:      "docCode",
		FocusField:   "title",
	}, sealer, zl)

	incMgr := controller.NewManager(controller.Config{
		List:         controller.ListFunc[model.Incident](incSvc.List),
		Edit:         controller.EditFunc(incSvc.Detail),
		SearchFields: []string{"subject", "district", "status", "stage"},
		IDField:      "incidentCode",
		FocusField:   "subject",
	}, sealer, zl)

	apaMgr := controller.NewManager(controller.Config{
		List:         controller.ListFunc[model.APARegistration](apaSvc.List),
		Edit:         controller.EditFunc(apaSvc.Detail),
		Save:         controller.WriteFunc(apaSvc.Register),
		Toggle:       controller.WriteFunc(apaSvc.ToggleStatus),
		SearchFields: []string{"fullName", "district", "phone"},
		IDField:      "apaCode",
		FocusField:   "fullName",
	}, sealer, zl)

	// 8. Handlers
	faqRes := handler.NewResourceHandler("FAQs", faqMgr, []view.Column{
		{Key: "faqType", Label: "Type", Sortable: true},
		{Key: "question", Label: "Question", Sortable: true},
	}, store, zl)
	eventRes := handler.NewResourceHandler("Events", eventMgr, []view.Column{
		{Key: "eventName", Label: "Event", Sortable: true},
		{Key: "venue", Label: "Venue", Sortable: true},
		{Key: "district", Label: "District", Sortable: true},
	}, store, zl)
	learnRes := handler.NewResourceHandler("Learning Content", learnMgr, []view.Column{
		{Key: "title", Label: "Title", Sortable: true},
		{Key: "contentType", Label: "Type", Sortable: true},
		{Key: "language", Label: "Language", Sortable: true},
	}, store, zl)
	quizRes := handler.NewResourceHandler("Quizzes", quizMgr, []view.Column{
		{Key: "quizName", Label: "Quiz", Sortable: true},
		{Key: "categoryCode", Label: "Category", Sortable: true},
	}, store, zl)
	catRes := handler.NewResourceHandler("Categories", catMgr, []view.Column{
		{Key: "categoryName", Label: "Category", Sortable: true},
	}, store, zl)
	knowRes := handler.NewResourceHandler("Knowledge Documents", knowMgr, []view.Column{
		{Key: "title", Label: "Title", Sortable: true},
		{Key: "docType", Label: "Type", Sortable: true},
		{Key: "fileName", Label: "File", Sortable: false},
	}, store, zl)
	incRes := handler.NewResourceHandler("Incident Reports", incMgr, []view.Column{
		{Key: "subject", Label: "Subject", Sortable: true},
		{Key: "district", Label: "District", Sortable: true},
		{Key: "status", Label: "Status", Sortable: true},
		{Key: "stage", Label: "Stage", Sortable: true},
	}, store, zl)
	apaRes := handler.NewResourceHandler("APA Registrations", apaMgr, []view.Column{
		{Key: "fullName", Label: "Name", Sortable: true},
		{Key: "district", Label: "District", Sortable: true},
		{Key: "phone", Label: "Phone", Sortable: false},
	}, store, zl)

	authHandler := handler.NewAuthHandler(store, authSvc, cfg.CookieDomain, cfg.CookieSecure, zl)
	quizHandler := handler.NewQuizHandler(quizRes, quizSvc, sealer)
	knowHandler := handler.NewKnowledgeHandler(knowRes, knowSvc, sealer, zl)
	incHandler := handler.NewIncidentHandler(incRes, incSvc, sealer, zl)
	dashHandler := handler.NewDashboardHandler(map[string]handler.ListCall{
		"faqs":       faqSvc.List,
		"events":     eventSvc.List,
		"learning":   learnSvc.List,
		"quizzes":    quizSvc.List,
		"categories": catSvc.List,
		"knowledge":  knowSvc.List,
		"incidents":  incSvc.List,
		"apa":        apaSvc.List,
	}, zl)

	// Logout releases every page's per-session controller state
	for _, mgr := range []*controller.Manager{faqMgr, eventMgr, learnMgr, quizMgr, catMgr, knowMgr, incMgr, apaMgr} {
		authHandler.OnLogout(mgr.Drop)
	}

	// 9. Fiber setup
	app := fiber.New(fiber.Config{
		AppName: "Shakti Admin Console v1.0",
	})

	app.Use(fiberlogger.New())
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.AllowedOrigin, AllowCredentials: cfg.AllowedOrigin != "*"}))
	app.Use(middleware.FrameGuard())

	// ============ PUBLIC ROUTES ============
	app.Get("/login", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"outcome": false, "message": "login required"})
	})
	auth := app.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/captcha", authHandler.Captcha)
	app.Get("/session", authHandler.Session)

	// ============ PROTECTED ROUTES ============
	protected := app.Group("/admin", middleware.RequireSession(store, repo, zl))

	protected.Get("/dashboard/stats", dashHandler.Stats)

	faqRes.Register(protected.Group("/faqs"))
	eventRes.Register(protected.Group("/events"))
	learnRes.Register(protected.Group("/learning"))
	quizHandler.Register(protected.Group("/quizzes"))
	catRes.Register(protected.Group("/categories"))
	knowHandler.Register(protected.Group("/knowledge"))
	incHandler.Register(protected.Group("/incidents"))
	apaRes.Register(protected.Group("/apa"))

	// WebSocket route: every open console tab subscribes for session signals.
	// Only authenticated operators may connect; inbound frames are drained
	// for liveness and never applied, signals originate server-side on logout.
	app.Use("/ws", middleware.RequireSession(store, repo, zl), func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		hub.Register <- c
		defer func() { hub.Unregister <- c }()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 10. Graceful shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Fatal("listen failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("shutting down")
	if err := app.Shutdown(); err != nil {
		zl.Error("forced shutdown", zap.Error(err))
	}
}
