package routes

import (
	"github.com/gofiber/fiber/v2"

	"contractorhub-backend/controllers"
	"contractorhub-backend/middlewares"
)

// Register wires all HTTP routes.
func Register(app *fiber.App) {
	api := app.Group("/api")

	// Public auth endpoints
	api.Post("/registration", controllers.Register)
	api.Post("/login", controllers.Login)
	api.Post("/logout", controllers.Logout)

	// Protected endpoints (JWT auth)
	protected := api.Group("")
	protected.Use(middlewares.IsAuthenticatedHeader())

	// Idempotency guard FIRST (not tied to request TX)
	protected.Use(middlewares.Idempotency())

	// Then per-request tenant transaction (pins search_path and commits/rolls back)
	protected.Use(middlewares.TenantTx())

	// Clients
	protected.Post("/client", controllers.CreateClient)
	protected.Get("/clients", controllers.GetClients)
	protected.Get("/client/:id", controllers.GetClient)
	protected.Put("/client/:id", controllers.UpdateClient)

	// Item catalog
	protected.Post("/item", controllers.CreateItems) // batch create
	protected.Get("/items", controllers.GetItems)
	protected.Put("/item/:id", controllers.UpdateItem)

	// Projects
	protected.Post("/project", controllers.CreateProject)
	protected.Get("/projects", controllers.GetProjects)
	protected.Get("/project/:id", controllers.GetProject)
	protected.Put("/project/:id", controllers.UpdateProject)

	// Bids
	protected.Post("/bid", controllers.CreateBid)
	protected.Get("/bids", controllers.GetBids)
	protected.Get("/bid/:id", controllers.GetBid)
	protected.Put("/bid/:id", controllers.UpdateBid)
	protected.Post("/bid/:id/line-item", controllers.AddBidLineItem)
	protected.Delete("/bid/:id/line-item/:itemId", controllers.RemoveBidLineItem)
	protected.Put("/bid/:id/send", controllers.SendBid)
	protected.Put("/bid/:id/view", controllers.MarkBidViewed)
	protected.Put("/bid/:id/accept", controllers.AcceptBid)
	protected.Put("/bid/:id/reject", controllers.RejectBid)
	protected.Get("/bid/:id/versions", controllers.GetBidVersions)

	// Invoices
	protected.Post("/invoice", controllers.CreateInvoice)
	protected.Get("/invoices", controllers.GetInvoices)
	protected.Get("/invoice/:id", controllers.GetInvoice)
	protected.Put("/invoice/:id", controllers.UpdateInvoice)
	protected.Post("/invoice/:id/line-item", controllers.AddInvoiceLineItem)
	protected.Delete("/invoice/:id/line-item/:itemId", controllers.RemoveInvoiceLineItem)
	protected.Put("/invoice/:id/send", controllers.SendInvoice)
	protected.Put("/invoice/:id/view", controllers.MarkInvoiceViewed)
	protected.Put("/invoice/:id/cancel", controllers.CancelInvoice)
	protected.Get("/invoice/:id/versions", controllers.GetInvoiceVersions)

	// Payments & reminders
	protected.Post("/invoice/:id/payments", controllers.RecordPayment)
	protected.Get("/invoice/:id/payments", controllers.ListInvoicePayments)
	protected.Get("/invoice/:id/reminders", controllers.ListInvoiceReminders)
	protected.Get("/payments", controllers.ListPayments)

	// Notifications
	protected.Get("/notifications", controllers.GetNotifications)
	protected.Get("/notifications/unread-count", controllers.GetUnreadCount)
	protected.Put("/notification/:id/read", controllers.MarkNotificationRead)
	protected.Put("/notifications/read-all", controllers.MarkAllNotificationsRead)
	protected.Delete("/notification/:id", controllers.DeleteNotification)
	protected.Get("/notification-preferences", controllers.GetNotificationPreferences)
	protected.Put("/notification-preferences", controllers.UpdateNotificationPreferences)

	// Business settings
	protected.Get("/settings", controllers.GetSettings)
	protected.Put("/settings", controllers.UpdateSettings)
}
