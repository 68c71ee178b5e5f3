// Package server wires handlers and middleware into the Fiber app.
package server

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/config"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/handlers"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/middleware"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/models"
	"github.com/Windi-Fikriyansyah/tele_freelance_hub/internal/realtime"
)

type Dashboard interface {
	handlers.Dashboard
	handlers.SubmitResetter
}

type Admin interface {
	handlers.AdminPanel
	middleware.ProfileResolver
}

type Deps struct {
	Config    config.Config
	Log       *zap.Logger
	Bridge    handlers.BridgeState
	Catalog   handlers.Catalog
	Orders    handlers.OrderSubmitter
	Dashboard Dashboard
	Admin     Admin
	Hub       *realtime.Hub
}

func New(d Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "tele-freelance-hub",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins(d.Config.FrontendBaseURL),
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		ExposeHeaders:    "Content-Length",
		AllowCredentials: true,
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"success": true})
	})

	authH := &handlers.AuthHandler{
		Bridge:      d.Bridge,
		BotToken:    d.Config.Telegram.BotToken,
		JWTSecret:   d.Config.JWTSecret,
		Expires:     d.Config.JWTExpiresMin,
		InitDataTTL: d.Config.Telegram.InitDataTTL,
		Secure:      d.Config.AppEnv == "production",
		Log:         d.Log.Named("auth"),
	}
	catalogH := handlers.NewCatalogHandler(d.Catalog)
	orderH := handlers.NewOrderHandler(d.Orders, d.Dashboard, d.Log)
	dashH := handlers.NewDashboardHandler(d.Dashboard)
	adminH := handlers.NewAdminHandler(d.Admin)

	api := app.Group("/api")

	// public
	api.Post("/bridge/init", authH.Init)
	api.Post("/bridge/logout", authH.Logout)
	api.Get("/services", catalogH.ListServices)
	api.Get("/categories", catalogH.GetCategories)

	// identitas dari cookie, fallback demo user
	session := api.Group("/",
		middleware.JWTFromCookie(d.Config.JWTSecret),
		middleware.AttachIdentity(),
	)

	session.Get("/bridge", authH.State)
	session.Post("/orders", orderH.Submit)

	dash := session.Group("/dashboard")
	dash.Get("/", dashH.Current)
	dash.Post("/select", dashH.SelectService)
	dash.Patch("/draft", dashH.UpdateDraft)
	dash.Post("/back", dashH.Back)
	dash.Post("/admin", dashH.OpenAdmin)

	managers := middleware.RequireRoles(d.Admin, models.RoleAdmin, models.RoleFreelancer)

	adm := session.Group("/admin", managers)
	adm.Get("/", adminH.Panel)
	adm.Post("/orders/:id/edit", adminH.StartEdit)
	adm.Delete("/edit", adminH.CancelEdit)
	adm.Patch("/orders/:id", adminH.Update)

	if d.Hub != nil {
		wsH := handlers.NewRealtimeHandler(d.Hub, d.Log)
		app.Get("/ws/admin",
			wsH.Upgrade,
			middleware.JWTFromCookie(d.Config.JWTSecret),
			middleware.AttachIdentity(),
			managers,
			websocket.New(wsH.Stream),
		)
	}

	return app
}

func allowOrigins(frontend string) string {
	origins := []string{"http://127.0.0.1:5173", "http://localhost:5173"}
	if f := strings.TrimRight(strings.TrimSpace(frontend), "/"); f != "" && f != origins[1] {
		origins = append(origins, f)
	}
	return strings.Join(origins, ", ")
}
