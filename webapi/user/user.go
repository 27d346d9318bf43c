// Package user exposes the user listing route.
package user

import (
	"time"

	"github.com/amirasaad/banking/pkg/authz"
	"github.com/amirasaad/banking/pkg/config"
	"github.com/amirasaad/banking/pkg/domain"
	domainuser "github.com/amirasaad/banking/pkg/domain/user"
	"github.com/amirasaad/banking/pkg/repository"
	listingsvc "github.com/amirasaad/banking/pkg/service/listing"
	"github.com/amirasaad/banking/webapi/common"
	"github.com/amirasaad/banking/webapi/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// UserResponse is the wire shape of a user.
type UserResponse struct {
	ID        string    `json:"id"`
	BankID    string    `json:"bank_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}

// Routes registers the user routes.
func Routes(app *fiber.App, listing *listingsvc.Service, authzSvc *authz.Service, uow repository.UnitOfWork, cfg *config.AppConfig) {
	app.Get("/users", middleware.JwtProtected(cfg.Jwt), ListUsers(listing))
	app.Get("/user/:id", middleware.JwtProtected(cfg.Jwt), GetUser(authzSvc, uow))
}

// GetUser returns a single user after a policy check on the actor's scope.
func GetUser(authzSvc *authz.Service, uow repository.UnitOfWork) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromContext(c)
		if err != nil {
			return err
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.DomainErrorJSON(c, domain.Validationf("invalid user id"))
		}
		if err := authzSvc.CanViewUser(c.Context(), actor, id); err != nil {
			return common.DomainErrorJSON(c, err)
		}
		users, err := uow.Users()
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		target, err := users.Get(c.Context(), id)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "User fetched", mapUser(target))
	}
}

// ListUsers returns the users visible to the actor plus a total count.
func ListUsers(listing *listingsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromContext(c)
		if err != nil {
			return err
		}
		page := repository.Page{
			Limit:  c.QueryInt("limit", 50),
			Offset: c.QueryInt("offset", 0),
		}
		rows, total, err := listing.Users(c.Context(), actor, repository.UserFilter{}, page)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		resp := make([]UserResponse, 0, len(rows))
		for _, u := range rows {
			resp = append(resp, mapUser(u))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Users fetched", fiber.Map{
			"users": resp,
			"total": total,
		})
	}
}

func mapUser(u *domainuser.User) UserResponse {
	return UserResponse{
		ID:        u.ID.String(),
		BankID:    u.BankID.String(),
		Email:     u.Email,
		Role:      string(u.Role),
		Active:    u.Active,
		CreatedAt: u.CreatedAt,
	}
}
