package server

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"provideo-rentals/internal/handler"
	"provideo-rentals/internal/service"
)

type Server struct {
	echo            *echo.Echo
	authService     service.AuthService
	catalogHandler  *handler.CatalogHandler
	checkoutHandler *handler.CheckoutHandler
	orderHandler    *handler.OrderHandler
	webhookHandler  *handler.WebhookHandler
	authHandler     *handler.AuthHandler
	blogHandler     *handler.BlogHandler
	contactHandler  *handler.ContactHandler
}

func NewServer(
	authService service.AuthService,
	catalogHandler *handler.CatalogHandler,
	checkoutHandler *handler.CheckoutHandler,
	orderHandler *handler.OrderHandler,
	webhookHandler *handler.WebhookHandler,
	authHandler *handler.AuthHandler,
	blogHandler *handler.BlogHandler,
	contactHandler *handler.ContactHandler,
) *Server {
	e := echo.New()

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		authService:     authService,
		catalogHandler:  catalogHandler,
		checkoutHandler: checkoutHandler,
		orderHandler:    orderHandler,
		webhookHandler:  webhookHandler,
		authHandler:     authHandler,
		blogHandler:     blogHandler,
		contactHandler:  contactHandler,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- storefront --------
	api.GET("/catalog", s.catalogHandler.Get)
	api.POST("/checkout-session", s.checkoutHandler.CreateSession)
	api.POST("/orders", s.orderHandler.Create)
	api.GET("/orders/confirmation", s.orderHandler.Confirmation)
	api.POST("/contact", s.contactHandler.Submit)
	api.GET("/blog", s.blogHandler.ListPublished)
	api.GET("/blog/:slug", s.blogHandler.GetBySlug)

	// -------- payment webhooks --------
	api.POST("/webhooks/payment", s.webhookHandler.HandlePayment)

	// -------- customer auth --------
	api.POST("/login", s.authHandler.Login)
	api.GET("/auth/verify", s.authHandler.Verify)
	api.GET("/my-orders", s.orderHandler.MyOrders, handler.CustomerSession(s.authService))

	// -------- admin --------
	api.POST("/admin/login", s.authHandler.AdminLogin)

	admin := api.Group("/admin", handler.AdminAuth(s.authService))
	admin.PUT("/catalog", s.catalogHandler.Replace)
	admin.GET("/orders", s.orderHandler.List)
	admin.GET("/orders/:id", s.orderHandler.Get)
	admin.PUT("/orders/:id/trash", s.orderHandler.Trash)
	admin.DELETE("/orders/:id", s.orderHandler.Delete)
	admin.GET("/blog", s.blogHandler.ListAll)
	admin.POST("/blog", s.blogHandler.Create)
	admin.PUT("/blog/:id", s.blogHandler.Update)
	admin.DELETE("/blog/:id", s.blogHandler.Delete)
	admin.GET("/contacts", s.contactHandler.List)
	admin.PUT("/contacts/:id/read", s.contactHandler.MarkRead)
	admin.DELETE("/contacts/:id", s.contactHandler.Delete)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown() error {
	return s.echo.Close()
}
