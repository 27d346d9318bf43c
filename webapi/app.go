// Package webapi assembles the Fiber application over the core services.
package webapi

import (
	"time"

	"github.com/amirasaad/banking/pkg/authz"
	"github.com/amirasaad/banking/pkg/config"
	"github.com/amirasaad/banking/pkg/repository"
	accountssvc "github.com/amirasaad/banking/pkg/service/accounts"
	listingsvc "github.com/amirasaad/banking/pkg/service/listing"
	movementsvc "github.com/amirasaad/banking/pkg/service/movement"
	"github.com/amirasaad/banking/webapi/account"
	"github.com/amirasaad/banking/webapi/common"
	"github.com/amirasaad/banking/webapi/user"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewApp builds the HTTP application with rate limiting, panic recovery and
// all routes registered.
func NewApp(
	movement *movementsvc.Service,
	accounts *accountssvc.Service,
	listing *listingsvc.Service,
	authzSvc *authz.Service,
	uow repository.UnitOfWork,
	cfg *config.AppConfig,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			status := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			}
			return common.ErrorResponseJSON(c, status, "Internal Server Error", err.Error())
		},
	})

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return common.ErrorResponseJSON(c, fiber.StatusTooManyRequests, "Too Many Requests", "Rate limit exceeded")
		},
	}))
	app.Use(recover.New())

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	account.Routes(app, movement, accounts, listing, cfg)
	user.Routes(app, listing, authzSvc, uow, cfg)

	return app
}
