package router

import (
	"context"

	"event_management_service/internal/api/handlers"
	chatapp "event_management_service/internal/chat/app"
	"event_management_service/pkg/middlewares"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes wire all HTTP and websocket routes
// @title Event Management Service API
// @version 1.0
// @description API documentation for Event Management Service
// @host localhost:8080
// @BasePath /
func RegisterRoutes(
	app *fiber.App,
	accountHandler *handlers.AccountHandler,
	forumHandler *handlers.ForumHandler,
	eventHandler *handlers.EventHandler,
	vendorHandler *handlers.VendorHandler,
	chatHandler *handlers.ChatHandler,
	chatWebsocket *chatapp.ChatWebsocketHandler,
) {
	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/", handlers.ConnectCheck)
	app.Post("/debug", handlers.DebugLogFlag)

	accountRoutes := app.Group("/account")
	accountRoutes.Post("/register", accountHandler.Register)
	accountRoutes.Post("/login", accountHandler.Login)
	accountRoutes.Post("/password/forgot", accountHandler.ForgotPassword)
	accountRoutes.Post("/password/reset", accountHandler.ResetPassword)

	accountRoutes.Use(middlewares.JWTMiddleware())
	accountRoutes.Post("/logout", accountHandler.Logout)
	accountRoutes.Post("/password/change", accountHandler.ChangePassword)
	accountRoutes.Get("/profile", accountHandler.GetProfile)
	accountRoutes.Put("/profile", accountHandler.UpdateProfile)
	accountRoutes.Delete("/profile", accountHandler.DeleteProfile)
	accountRoutes.Post("/profile/image", accountHandler.UploadProfileImage)
	accountRoutes.Get("/managers", accountHandler.ListEventManagers)

	forumRoutes := app.Group("/forum")
	forumRoutes.Get("/testimonials", forumHandler.ListTestimonials)
	forumRoutes.Get("/questions", forumHandler.ListQuestions)

	forumRoutes.Use(middlewares.JWTMiddleware())
	forumRoutes.Post("/testimonials", forumHandler.AddTestimonial)
	forumRoutes.Put("/testimonials/:id", forumHandler.UpdateTestimonial)
	forumRoutes.Delete("/testimonials/:id", forumHandler.DeleteTestimonial)
	forumRoutes.Post("/questions", forumHandler.AskQuestion)

	forumRoutes.Put("/questions/:id/answer", middlewares.EventManagerOnly(), forumHandler.AnswerQuestion)
	forumRoutes.Delete("/questions/:id", middlewares.EventManagerOnly(), forumHandler.DeleteQuestion)

	eventRoutes := app.Group("/event")
	eventRoutes.Get("/categories", eventHandler.ListCategories)
	eventRoutes.Get("/ideas", eventHandler.ListIdeas)
	eventRoutes.Get("/:id/images", eventHandler.ListEventImages)
	eventRoutes.Get("/:id/reviews", eventHandler.ListReviews)
	eventRoutes.Get("/:id", eventHandler.GetEvent)
	eventRoutes.Get("/", eventHandler.SearchEvents)

	eventRoutes.Use(middlewares.JWTMiddleware())
	eventRoutes.Post("/:id/reviews", eventHandler.AddReview)
	eventRoutes.Put("/reviews/:id", eventHandler.UpdateReview)
	eventRoutes.Delete("/reviews/:id", eventHandler.DeleteReview)

	eventRoutes.Use(middlewares.EventManagerOnly())
	eventRoutes.Post("/categories", eventHandler.CreateCategory)
	eventRoutes.Put("/categories/:id", eventHandler.UpdateCategory)
	eventRoutes.Delete("/categories/:id", eventHandler.DeleteCategory)
	eventRoutes.Post("/", eventHandler.CreateEvent)
	eventRoutes.Put("/:id", eventHandler.UpdateEvent)
	eventRoutes.Delete("/:id", eventHandler.DeleteEvent)
	eventRoutes.Post("/ideas", eventHandler.CreateIdea)
	eventRoutes.Put("/ideas/:id", eventHandler.UpdateIdea)
	eventRoutes.Delete("/ideas/:id", eventHandler.DeleteIdea)
	eventRoutes.Post("/:id/images", eventHandler.UploadEventImage)
	eventRoutes.Put("/images/:id", eventHandler.UpdateEventImage)
	eventRoutes.Delete("/images/:id", eventHandler.DeleteEventImage)

	vendorRoutes := app.Group("/vendor")
	vendorRoutes.Get("/categories", vendorHandler.ListCategories)
	vendorRoutes.Get("/:id", vendorHandler.GetVendor)
	vendorRoutes.Get("/", vendorHandler.ListVendors)

	vendorRoutes.Use(middlewares.JWTMiddleware())
	vendorRoutes.Post("/register", vendorHandler.RegisterVendor)
	vendorRoutes.Put("/:id", vendorHandler.UpdateVendor)
	vendorRoutes.Delete("/:id", vendorHandler.DeleteVendor)
	vendorRoutes.Post("/:id/images", vendorHandler.UploadVendorImage)
	vendorRoutes.Put("/images/:id", vendorHandler.UpdateVendorImage)
	vendorRoutes.Delete("/images/:id", vendorHandler.DeleteVendorImage)

	vendorRoutes.Post("/categories", middlewares.EventManagerOnly(), vendorHandler.CreateCategory)
	vendorRoutes.Put("/categories/:id", middlewares.EventManagerOnly(), vendorHandler.UpdateCategory)
	vendorRoutes.Delete("/categories/:id", middlewares.EventManagerOnly(), vendorHandler.DeleteCategory)
	vendorRoutes.Post("/:id/approve", middlewares.EventManagerOnly(), vendorHandler.ApproveVendor)

	chatRoutes := app.Group("/chat", middlewares.JWTMiddleware())
	chatRoutes.Post("/rooms", chatHandler.ResolveRoom)
	chatRoutes.Get("/rooms", chatHandler.ListRooms)
	chatRoutes.Post("/messages", chatHandler.SendMessage)
	chatRoutes.Get("/messages", chatHandler.ListMessages)

	app.Use("/ws", middlewares.JWTMiddleware())
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		chatWebsocket.HandleConnection(context.Background(), c)
	}))
}
