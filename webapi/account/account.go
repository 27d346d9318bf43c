// Package account exposes the account HTTP routes: provisioning, money
// movement, balance and listings. Handlers stay thin; every decision lives
// in the core services.
package account

import (
	"github.com/amirasaad/banking/pkg/config"
	domainaccount "github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/repository"
	accountssvc "github.com/amirasaad/banking/pkg/service/accounts"
	listingsvc "github.com/amirasaad/banking/pkg/service/listing"
	movementsvc "github.com/amirasaad/banking/pkg/service/movement"
	"github.com/amirasaad/banking/webapi/common"
	"github.com/amirasaad/banking/webapi/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
)

// Routes registers the account routes. All routes require a valid bearer token.
func Routes(
	app *fiber.App,
	movement *movementsvc.Service,
	accounts *accountssvc.Service,
	listing *listingsvc.Service,
	cfg *config.AppConfig,
) {
	app.Post("/account", middleware.JwtProtected(cfg.Jwt), Open(accounts))
	app.Delete("/account/:id", middleware.JwtProtected(cfg.Jwt), Delete(accounts))
	app.Post("/account/:id/deposit", middleware.JwtProtected(cfg.Jwt), Deposit(movement))
	app.Post("/account/:id/withdraw", middleware.JwtProtected(cfg.Jwt), Withdraw(movement))
	app.Post("/account/:id/transfer", middleware.JwtProtected(cfg.Jwt), Transfer(movement))
	app.Get("/account/:id/balance", middleware.JwtProtected(cfg.Jwt), GetBalance(movement))
	app.Get("/account/:id/transactions", middleware.JwtProtected(cfg.Jwt), ListTransactions(listing))
	app.Get("/accounts", middleware.JwtProtected(cfg.Jwt), ListAccounts(listing))
}

// Open creates an account for the requested user.
func Open(accounts *accountssvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromContext(c)
		if err != nil {
			return err
		}
		input, err := common.BindAndValidate[OpenRequest](c)
		if input == nil {
			return err
		}
		userID, err := uuid.Parse(input.UserID)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid user id", err.Error())
		}
		a, err := accounts.Open(c.Context(), actor, accountssvc.OpenRequest{
			UserID:         userID,
			CurrencyCode:   input.Currency,
			Type:           domainaccount.Type(input.Type),
			OverdraftLimit: input.OverdraftLimit,
			InterestRate:   input.InterestRate,
			InterestType:   domainaccount.InterestType(input.InterestType),
		})
		if err != nil {
			log.Errorf("Failed to open account: %v", err)
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusCreated, "Account created", mapAccount(a))
	}
}

// Delete removes an account with a zero balance.
func Delete(accounts *accountssvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromContext(c)
		if err != nil {
			return err
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account id", err.Error())
		}
		if err := accounts.Delete(c.Context(), actor, accountID); err != nil {
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Account deleted", nil)
	}
}

// Deposit adds funds to an account.
func Deposit(movement *movementsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromContext(c)
		if err != nil {
			return err
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account id", err.Error())
		}
		input, err := common.BindAndValidate[MoveRequest](c)
		if input == nil {
			return err
		}
		tx, err := movement.Deposit(c.Context(), actor, accountID, input.Amount)
		if err != nil {
			log.Errorf("Deposit failed: %v", err)
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Deposit successful", mapTransaction(tx))
	}
}

// Withdraw removes funds from an account.
func Withdraw(movement *movementsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromContext(c)
		if err != nil {
			return err
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account id", err.Error())
		}
		input, err := common.BindAndValidate[MoveRequest](c)
		if input == nil {
			return err
		}
		tx, err := movement.Withdraw(c.Context(), actor, accountID, input.Amount)
		if err != nil {
			log.Errorf("Withdraw failed: %v", err)
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Withdrawal successful", mapTransaction(tx))
	}
}

// Transfer moves funds between two accounts.
func Transfer(movement *movementsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromContext(c)
		if err != nil {
			return err
		}
		sourceID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account id", err.Error())
		}
		input, err := common.BindAndValidate[TransferRequest](c)
		if input == nil {
			return err
		}
		targetID, err := uuid.Parse(input.TargetAccountID)
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid target account id", err.Error())
		}
		tx, err := movement.Transfer(c.Context(), actor, sourceID, targetID, input.Amount)
		if err != nil {
			log.Errorf("Transfer failed: %v", err)
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transfer successful", mapTransaction(tx))
	}
}

// GetBalance returns the authorization-checked balance.
func GetBalance(movement *movementsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromContext(c)
		if err != nil {
			return err
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account id", err.Error())
		}
		balance, err := movement.GetBalance(c.Context(), actor, accountID)
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Balance fetched", fiber.Map{"balance": balance})
	}
}

// ListAccounts returns the accounts visible to the actor plus a total count.
func ListAccounts(listing *listingsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromContext(c)
		if err != nil {
			return err
		}
		rows, total, err := listing.Accounts(c.Context(), actor, repository.AccountFilter{}, pageFromQuery(c))
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		resp := make([]AccountResponse, 0, len(rows))
		for _, a := range rows {
			resp = append(resp, mapAccount(a))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Accounts fetched", fiber.Map{
			"accounts": resp,
			"total":    total,
		})
	}
}

// ListTransactions returns the ledger entries touching one account, scoped
// to the actor's visibility, plus a total count.
func ListTransactions(listing *listingsvc.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := middleware.ActorFromContext(c)
		if err != nil {
			return err
		}
		accountID, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return common.ErrorResponseJSON(c, fiber.StatusBadRequest, "Invalid account id", err.Error())
		}
		rows, total, err := listing.Transactions(c.Context(), actor, repository.TransactionFilter{AccountID: &accountID}, pageFromQuery(c))
		if err != nil {
			return common.DomainErrorJSON(c, err)
		}
		resp := make([]TransactionResponse, 0, len(rows))
		for _, tx := range rows {
			resp = append(resp, mapTransaction(tx))
		}
		return common.SuccessResponseJSON(c, fiber.StatusOK, "Transactions fetched", fiber.Map{
			"transactions": resp,
			"total":        total,
		})
	}
}

func pageFromQuery(c *fiber.Ctx) repository.Page {
	return repository.Page{
		Limit:  c.QueryInt("limit", 50),
		Offset: c.QueryInt("offset", 0),
	}
}
