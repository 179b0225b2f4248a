package main

import (
	"log"
	"net/http"
	"os"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"

	"costestimation/collections"
	"costestimation/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateDefaultEstimateSettings(app); err != nil {
			log.Printf("Warning: estimate settings migration failed: %v", err)
		}
		if err := collections.MigratePruneStaleTakeoffLines(app); err != nil {
			log.Printf("Warning: takeoff line pruning failed: %v", err)
		}
		return se.Next()
	})

	// Serve static files from ./static
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		se.Router.GET("/static/{path...}", apis.Static(os.DirFS("./static"), false))

		// Apply active project middleware globally
		se.Router.BindFunc(handlers.ActiveProjectMiddleware(app))

		// ── Project activation ───────────────────────────────────
		se.Router.POST("/projects/{id}/activate", handlers.HandleProjectActivate(app))
		se.Router.POST("/projects/deactivate", handlers.HandleProjectDeactivate(app))

		// ── Project CRUD ─────────────────────────────────────────
		se.Router.GET("/projects", handlers.HandleProjectList(app))
		se.Router.GET("/projects/create", handlers.HandleProjectCreate(app))
		se.Router.POST("/projects", handlers.HandleProjectSave(app))
		se.Router.GET("/projects/{id}/edit", handlers.HandleProjectEdit(app))
		se.Router.POST("/projects/{id}/edit", handlers.HandleProjectUpdate(app))
		se.Router.DELETE("/projects/{id}", handlers.HandleProjectDelete(app))
		se.Router.GET("/projects/{id}/settings", handlers.HandleProjectSettings(app))
		se.Router.POST("/projects/{id}/settings", handlers.HandleProjectSettingsSave(app))

		// ── Grid lines and levels ────────────────────────────────
		se.Router.POST("/projects/{id}/grids", handlers.HandleGridLineCreate(app))
		se.Router.DELETE("/projects/{id}/grids/{gridId}", handlers.HandleGridLineDelete(app))
		se.Router.POST("/projects/{id}/levels", handlers.HandleLevelCreate(app))
		se.Router.DELETE("/projects/{id}/levels/{levelId}", handlers.HandleLevelDelete(app))

		// ── Element templates and instances ──────────────────────
		se.Router.GET("/projects/{id}/elements", handlers.HandleElementList(app))
		se.Router.POST("/projects/{id}/templates", handlers.HandleTemplateCreate(app))
		se.Router.DELETE("/projects/{id}/templates/{templateId}", handlers.HandleTemplateDelete(app))
		se.Router.POST("/projects/{id}/instances", handlers.HandleInstanceCreate(app))
		se.Router.DELETE("/projects/{id}/instances/{instanceId}", handlers.HandleInstanceDelete(app))

		// ── Quantity takeoff ─────────────────────────────────────
		se.Router.GET("/projects/{id}/takeoff", handlers.HandleTakeoffView(app))
		se.Router.POST("/projects/{id}/takeoff/run", handlers.HandleTakeoffRun(app))

		// ── Roof and truss designers ─────────────────────────────
		se.Router.GET("/projects/{id}/roof", handlers.HandleRoofDesigner(app))
		se.Router.POST("/projects/{id}/roof", handlers.HandleRoofGenerate(app))
		se.Router.GET("/projects/{id}/truss", handlers.HandleTrussDesigner(app))
		se.Router.POST("/projects/{id}/truss", handlers.HandleTrussDesign(app))

		// ── Cost estimate ────────────────────────────────────────
		se.Router.GET("/projects/{id}/estimate", handlers.HandleEstimateView(app))
		se.Router.POST("/projects/{id}/dupa", handlers.HandleDUPACreate(app))
		se.Router.DELETE("/projects/{id}/dupa/{dupaId}", handlers.HandleDUPADelete(app))
		se.Router.GET("/projects/{id}/estimate/export/excel", handlers.HandleEstimateExportExcel(app))
		se.Router.GET("/projects/{id}/estimate/export/pdf", handlers.HandleEstimateExportPDF(app))

		// Project view (after specific /projects/{id}/* routes)
		se.Router.GET("/projects/{id}", handlers.HandleProjectView(app))

		// Redirect home to projects list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/projects")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
