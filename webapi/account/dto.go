package account

import (
	"time"

	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/shopspring/decimal"
)

// MoveRequest is the body for deposit and withdraw.
type MoveRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required"`
}

// TransferRequest is the body for transfers.
type TransferRequest struct {
	TargetAccountID string          `json:"target_account_id" validate:"required,uuid4"`
	Amount          decimal.Decimal `json:"amount" validate:"required"`
}

// OpenRequest is the body for opening an account.
type OpenRequest struct {
	UserID         string          `json:"user_id" validate:"required,uuid4"`
	Currency       string          `json:"currency" validate:"required,len=3"`
	Type           string          `json:"type" validate:"required,oneof=Checking Savings"`
	OverdraftLimit decimal.Decimal `json:"overdraft_limit"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	InterestType   string          `json:"interest_type" validate:"omitempty,oneof=Simple Compound"`
}

// LegResponse is the wire shape of one transaction leg.
type LegResponse struct {
	AccountID string          `json:"account_id"`
	Role      string          `json:"role"`
	Amount    decimal.Decimal `json:"amount"`
	Fee       decimal.Decimal `json:"fee"`
	Currency  string          `json:"currency"`
}

// TransactionResponse is the wire shape of a ledger entry.
type TransactionResponse struct {
	ID        string        `json:"id"`
	Type      string        `json:"type"`
	CreatedAt time.Time     `json:"created_at"`
	Legs      []LegResponse `json:"legs"`
}

// AccountResponse is the wire shape of an account.
type AccountResponse struct {
	ID       string          `json:"id"`
	Number   string          `json:"number"`
	UserID   string          `json:"user_id"`
	Type     string          `json:"type"`
	Balance  decimal.Decimal `json:"balance"`
	Active   bool            `json:"active"`
	Currency string          `json:"currency_id"`
}

func mapTransaction(tx *account.Transaction) TransactionResponse {
	resp := TransactionResponse{
		ID:        tx.ID.String(),
		Type:      string(tx.Type),
		CreatedAt: tx.CreatedAt,
		Legs:      make([]LegResponse, 0, len(tx.Legs)),
	}
	for _, leg := range tx.Legs {
		resp.Legs = append(resp.Legs, LegResponse{
			AccountID: leg.AccountID.String(),
			Role:      string(leg.Role),
			Amount:    leg.Amount,
			Fee:       leg.Fee,
			Currency:  leg.CurrencyCode,
		})
	}
	return resp
}

func mapAccount(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:       a.ID.String(),
		Number:   a.Number,
		UserID:   a.UserID.String(),
		Type:     string(a.Type),
		Balance:  a.Balance,
		Active:   a.Active,
		Currency: a.CurrencyID.String(),
	}
}
