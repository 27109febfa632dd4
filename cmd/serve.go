package cmd

import (
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nguyenvanduocit/zhtrans/pkg/session"
	"github.com/nguyenvanduocit/zhtrans/pkg/translator"
)

var Serve = &cobra.Command{
	Use:     "serve",
	Short:   "Serve Chinese/English auto-detecting translation over HTTP",
	Example: "zhtrans serve -p 3000",
	Args:    cobra.NoArgs,
	RunE:    runServe,
}

func init() {
	Serve.Flags().StringP("port", "p", "3000", "port to listen on")
}

type TranslateRequest struct {
	Text string `json:"text"`
}

func newServer(tr translator.Translator, logger *logrus.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Post("/api/translate", func(c *fiber.Ctx) error {
		var req TranslateRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
		}

		text := strings.TrimSpace(req.Text)
		if text == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "text is required"})
		}

		res, err := session.Dispatch(c.UserContext(), tr, text)
		if err != nil {
			if translator.IsServiceError(err) {
				logger.WithError(err).Warn("translation failed")
				return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{"error": err.Error()})
			}
			logger.WithError(err).Error("unexpected translation failure")
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		}

		return c.JSON(res)
	})

	return app
}

func runServe(cmd *cobra.Command, args []string) error {
	tr, logger, cleanup, err := setup()
	if err != nil {
		return err
	}
	defer cleanup()

	app := newServer(tr, logger)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		<-sigChan
		logger.Info("Interrupt received, shutting down")
		if err := app.Shutdown(); err != nil {
			logger.WithError(err).Error("shutdown failed")
		}
	}()

	port := cmd.Flag("port").Value.String()
	logger.WithField("addr", "http://localhost:"+port+"/api/translate").Info("listening")

	return app.Listen(net.JoinHostPort("", port))
}
