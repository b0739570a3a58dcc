package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// serveCmd serves the generated report plus a small read-only catalog API.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report and a read-only catalog API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, l, err := setup()
		if err != nil {
			return err
		}
		defer l.Sync()
		zap.ReplaceGlobals(l)

		db, err := openDatabase(cfg)
		if err != nil {
			return err
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// Request id (must be first to trace everything)
		app.Use(func(c *fiber.Ctx) error {
			id := c.Get("X-Request-ID")
			if id == "" {
				id = uuid.NewString()
			}
			c.Locals("requestID", id)
			c.Set("X-Request-ID", id)
			return c.Next()
		})

		// Logging middleware (Zap + request id)
		app.Use(func(c *fiber.Ctx) error {
			rl := l.With(zap.String("request_id", c.Locals("requestID").(string)))
			rl.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				rl.Error("Request error", zap.Error(err))
			}
			return err
		})

		app.Get("/api/games", func(c *fiber.Ctx) error {
			return c.JSON(db.GameList)
		})
		app.Get("/api/games/:id", func(c *fiber.Ctx) error {
			g, ok := db.Games[c.Params("id")]
			if !ok {
				return fiber.NewError(fiber.StatusNotFound, "unknown game id")
			}
			return c.JSON(g)
		})
		app.Get("/api/duplicates", func(c *fiber.Ctx) error {
			return c.JSON(db.Duplicates)
		})
		app.Static("/", cfg.Serve.ReportDir)

		go func() {
			l.Info("Starting server", zap.String("port", cfg.Serve.Port))
			if err := app.Listen(":" + cfg.Serve.Port); err != nil {
				l.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// Graceful shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		l.Info("Shutting down server...")
		return app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
