package routes

import (
	"github.com/gofiber/fiber/v2"

	"dentledger-backend/controllers"
	"dentledger-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth; subject is the active dentist)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard for replayed form submissions
	protected.Use(middlewares.Idempotency())

	// Status log for the presentation layer to poll
	protected.Get("/log", controllers.GetLog)

	// Procedure catalog
	protected.Get("/procedures", controllers.GetProcedures)
	protected.Post("/procedure", controllers.CreateProcedure)
	protected.Put("/procedures/:id", controllers.UpdateProcedure)
	protected.Delete("/procedures/:id", controllers.DeleteProcedure)

	// Patients
	protected.Get("/patients", controllers.GetPatients)
	protected.Get("/patients/:id", controllers.GetPatient)
	protected.Post("/patient", controllers.CreatePatient)
	protected.Delete("/patients/:id", controllers.DeletePatient)
	protected.Post("/patients/save", controllers.SavePatients)

	// Invoices, line items and payments (all index-addressed)
	protected.Post("/patients/:id/invoices", controllers.CreateInvoice)
	protected.Delete("/patients/:id/invoices/:inv", controllers.DeleteInvoice)
	protected.Post("/patients/:id/invoices/:inv/procedures", controllers.AddInvoiceProcedure)
	protected.Delete("/patients/:id/invoices/:inv/procedures/:proc", controllers.DeleteInvoiceProcedure)
	protected.Post("/patients/:id/invoices/:inv/payments", controllers.CreatePayment)
	protected.Delete("/patients/:id/invoices/:inv/payments/:pay", controllers.DeletePayment)

	// Reports
	protected.Post("/report", controllers.CreateReport)
}
