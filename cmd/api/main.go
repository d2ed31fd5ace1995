package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"provideo-rentals/internal/client"
	"provideo-rentals/internal/config"
	"provideo-rentals/internal/handler"
	"provideo-rentals/internal/repository"
	"provideo-rentals/internal/server"
	"provideo-rentals/internal/service"
)

func main() {
	// load .env into os.Environ
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found (ok in prod)")
	}

	cfg := &config.Config{}
	if err := env.Parse(cfg); err != nil {
		fmt.Printf("Failed to parse config: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Printf("Invalid config: %v\n", err)
		os.Exit(1)
	}

	db := client.InitSQLiteClient(cfg.DatabaseURL)
	paymentClient, webhookVerifier := client.NewStripeClient(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret)

	catalogRepo := repository.NewCatalogRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	authTokenRepo := repository.NewAuthTokenRepository(db)
	contactRepo := repository.NewContactRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	webhookEventRepo := repository.NewWebhookEventRepository(db)

	mailer := service.NewMailer(cfg.SMTP)
	catalogService := service.NewCatalogService(catalogRepo)
	checkoutService := service.NewCheckoutService(paymentClient, cfg.SuccessURL(), cfg.CancelURL())
	orderService := service.NewOrderService(db, orderRepo, mailer)
	webhookService := service.NewWebhookService(webhookVerifier, orderService, webhookEventRepo)
	authService := service.NewAuthService(
		orderRepo, customerRepo, authTokenRepo, mailer,
		cfg.BaseURL, cfg.Auth.JWTSecret, cfg.Auth.AdminPassword,
	)
	blogService := service.NewBlogService(blogRepo)
	contactService := service.NewContactService(contactRepo, mailer)

	srv := server.NewServer(
		authService,
		handler.NewCatalogHandler(catalogService),
		handler.NewCheckoutHandler(checkoutService),
		handler.NewOrderHandler(orderService),
		handler.NewWebhookHandler(webhookService),
		handler.NewAuthHandler(authService, cfg.BaseURL, cfg.Environment.Name != "development"),
		handler.NewBlogHandler(blogService),
		handler.NewContactHandler(contactService),
	)

	serverAddr := cfg.HTTP.Host + ":" + cfg.HTTP.Port

	log.Println("Starting HTTP server on", serverAddr)
	go func() {
		if err := srv.Start(serverAddr); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	<-sigChan
	log.Println("Signal received, starting graceful shutdown...")

	if err := srv.Shutdown(); err != nil {
		log.Fatal("HTTP server shutdown error")
	}
}
