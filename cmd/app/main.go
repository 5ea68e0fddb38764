package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/joho/godotenv"
	"github.com/wichananm65/spaceship-store/internal/cart"
	"github.com/wichananm65/spaceship-store/internal/category"
	"github.com/wichananm65/spaceship-store/internal/checkout"
	"github.com/wichananm65/spaceship-store/internal/config"
	"github.com/wichananm65/spaceship-store/internal/database"
	"github.com/wichananm65/spaceship-store/internal/home"
	"github.com/wichananm65/spaceship-store/internal/logkey"
	"github.com/wichananm65/spaceship-store/internal/order"
	"github.com/wichananm65/spaceship-store/internal/payment"
	"github.com/wichananm65/spaceship-store/internal/product"
	"github.com/wichananm65/spaceship-store/internal/sessionstore"
	"github.com/wichananm65/spaceship-store/internal/web"
)

// repositories groups the storage backends selected at startup.
type repositories struct {
	categories category.Repository
	products   product.Repository
	orders     order.Repository
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	slog.SetDefault(web.NewLogger(os.Stdout, cfg.LogLevel, cfg.LogFormat))

	ctx := context.Background()

	repos, db := mustOpenRepositories(ctx, cfg)
	if db != nil {
		defer db.Close()
	}

	var storage fiber.Storage
	if cfg.RedisURL != "" {
		rs, err := sessionstore.Open(ctx, cfg.RedisURL)
		if err != nil {
			fatal("failed to connect to redis", err)
		}
		defer rs.Close()
		storage = rs
		slog.Info("sessions stored in redis")
	}

	gateway, err := payment.New(cfg.PaymentProvider)
	if err != nil {
		fatal("failed to configure payments", err)
	}

	productService := product.NewService(repos.products, repos.categories)
	cartStore := cart.NewStore(productService)
	orderService := order.NewService(repos.orders)
	checkoutService := checkout.NewService(cartStore, gateway, orderService)

	metrics := web.NewServerMetrics()
	app := web.NewApp(web.NewSessionStore(storage, cfg.SessionTTL),
		recover.New(),
		requestid.New(),
		web.RequestLogger(),
		metrics.Middleware(),
		setupCSRF(storage),
	)

	app.Get("/healthz", healthCheck(db))
	app.Get("/metrics", metrics.Handler())
	app.Static("/css", "./public/css")
	app.Static("/images", "./public/images")

	cartHandler := cart.NewHandler(cartStore, productService)
	app.Use(cartHandler.Badge)

	home.NewHandler(productService, cfg.FeaturedCount).RegisterPublicRoutes(app)
	product.NewHandler(productService).RegisterPublicRoutes(app)
	cartHandler.RegisterPublicRoutes(app)
	checkout.NewHandler(checkoutService).RegisterPublicRoutes(app)

	if cfg.AdminAPI {
		admin := app.Group("/api", setupCORS())
		category.NewHandler(category.NewService(repos.categories)).RegisterAdminRoutes(admin)
		product.NewHandler(productService).RegisterAdminRoutes(admin)
		order.NewHandler(orderService).RegisterAdminRoutes(admin)
		slog.Warn("admin API enabled without authentication")
	}

	go func() {
		slog.Info("starting server", slog.String("addr", cfg.Addr), slog.String(logkey.Provider, cfg.PaymentProvider))
		if err := app.Listen(cfg.Addr); err != nil {
			fatal("server stopped", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	if err := app.ShutdownWithTimeout(cfg.ShutdownTimeout); err != nil {
		slog.Error("forced shutdown", slog.String(logkey.Error, err.Error()))
	}
}

// mustOpenRepositories connects to Postgres and migrates it when a database
// is configured; otherwise it serves the seeded catalog from memory.
func mustOpenRepositories(ctx context.Context, cfg config.Config) (repositories, *sql.DB) {
	if cfg.UsesMemoryCatalog() {
		slog.Warn("DATABASE_URL is not set, using the in-memory catalog")
		seed := database.SeedCategories()
		categories := category.NewInMemoryRepository(seed)
		products := product.NewInMemoryRepository(database.SeedProducts())
		orders := order.NewInMemoryRepository()

		products.CategoryNames = database.CategoryNames(seed)
		products.InUse = orders.ReferencesProduct
		categories.InUse = products.HasCategory
		return repositories{categories: categories, products: products, orders: orders}, nil
	}

	if err := database.Migrate(cfg.DatabaseURL); err != nil {
		fatal("failed to migrate database", err)
	}
	db, err := database.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		fatal("failed to open database", err)
	}
	return repositories{
		categories: category.NewPostgresRepository(db),
		products:   product.NewPostgresRepository(db),
		orders:     order.NewPostgresRepository(db),
	}, db
}

func setupCSRF(storage fiber.Storage) fiber.Handler {
	return csrf.New(csrf.Config{
		KeyLookup:      "form:_csrf",
		CookieName:     "store_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: true,
		ContextKey:     "csrf",
		Expiration:     time.Hour,
		Storage:        storage,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/")
		},
	})
}

func setupCORS() fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Origin, Content-Type, Accept",
	})
}

func healthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unavailable"})
			}
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}

func fatal(msg string, err error) {
	slog.Error(msg, slog.String(logkey.Error, err.Error()))
	os.Exit(1)
}
