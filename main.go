package main

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"billgen/collections"
	"billgen/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// ── Bill generation workflow ─────────────────────────────
		se.Router.GET("/bills", handlers.HandleBillList(app))
		se.Router.GET("/bills/new", handlers.HandleBillNew(app))
		se.Router.POST("/bills", handlers.HandleBillGenerate(app))

		// ── Document downloads ───────────────────────────────────
		se.Router.GET("/bills/{id}/export/excel", handlers.HandleBillExportExcel(app))
		se.Router.GET("/bills/{id}/export/pdf", handlers.HandleBillExportPDF(app))
		se.Router.GET("/bills/{id}/export/csv", handlers.HandleBillExportCSV(app))
		se.Router.GET("/bills/{id}/download", handlers.HandleBillDownloadAll(app))

		se.Router.DELETE("/bills/{id}", handlers.HandleBillDelete(app))

		// Redirect home to the bills list
		se.Router.GET("/", func(e *core.RequestEvent) error {
			return e.Redirect(http.StatusFound, "/bills")
		})

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
