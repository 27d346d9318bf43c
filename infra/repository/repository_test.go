package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/banking/pkg/domain"
	"github.com/amirasaad/banking/pkg/domain/account"
	"github.com/amirasaad/banking/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })

	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func TestAccountRepository_Get(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}

	accountID := uuid.New()
	userID := uuid.New()
	currencyID := uuid.New()

	rows := sqlmock.NewRows([]string{
		"id", "number", "user_id", "currency_id", "type",
		"balance", "overdraft_limit", "interest_rate", "interest_type",
		"active", "version", "created_at", "updated_at",
	}).AddRow(
		accountID, "CHK-0a1b2c3d", userID, currencyID, "Checking",
		"150.25", "50", "0", "",
		true, 7, time.Now().UTC(), time.Now().UTC(),
	)
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2`).
		WithArgs(accountID, 1).WillReturnRows(rows)

	acct, err := repo.Get(context.Background(), accountID)
	require.NoError(err)
	require.Equal(accountID, acct.ID)
	require.Equal(userID, acct.UserID)
	require.True(acct.Balance.Equal(decimal.RequireFromString("150.25")))
	require.EqualValues(7, acct.Version)

	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 ORDER BY "accounts"\."id" LIMIT \$2`).
		WithArgs(sqlmock.AnyArg(), 1).WillReturnError(gorm.ErrRecordNotFound)

	_, err = repo.Get(context.Background(), uuid.New())
	require.ErrorIs(err, domain.ErrNotFound)
	require.NoError(mock.ExpectationsWereMet())
}

func TestAccountRepository_UpdateVersionCAS(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := accountRepository{db: db}

	acct := sampleAccount(t)
	acct.Version = 3

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET .+ WHERE id = \$\d+ AND version = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(repo.Update(context.Background(), acct))
	assert.EqualValues(t, 4, acct.Version, "a committed update advances the in-memory token")

	// A concurrent writer already bumped the version: zero rows matched.
	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts" SET .+ WHERE id = \$\d+ AND version = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.Update(context.Background(), acct)
	require.ErrorIs(err, domain.ErrConflict)
	assert.EqualValues(t, 4, acct.Version, "a conflicted update leaves the token alone")
	require.NoError(mock.ExpectationsWereMet())
}

func TestCurrencyRepository_GetByCode(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	repo := currencyRepository{db: db}

	currencyID := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "code", "rate", "is_base", "active", "created_at", "updated_at"}).
		AddRow(currencyID, "EUR", "0.8", false, true, time.Now().UTC(), time.Now().UTC())
	mock.ExpectQuery(`SELECT \* FROM "currencies" WHERE code = \$1 ORDER BY "currencies"\."id" LIMIT \$2`).
		WithArgs("EUR", 1).WillReturnRows(rows)

	cur, err := repo.GetByCode(context.Background(), "eur")
	require.NoError(err)
	require.Equal("EUR", cur.Code)
	require.True(cur.Rate.Equal(decimal.RequireFromString("0.8")))
	require.NoError(mock.ExpectationsWereMet())
}

func TestUoW_DoRollsBackOnError(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectRollback()

	wantErr := errors.New("boom")
	err := uow.Do(context.Background(), func(repository.UnitOfWork) error {
		return wantErr
	})
	require.ErrorIs(err, wantErr)
	require.NoError(mock.ExpectationsWereMet())
}

func TestUoW_DoCommits(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	uow := NewUoW(db)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(inner repository.UnitOfWork) error {
		accounts, err := inner.Accounts()
		require.NoError(err)
		require.NotNil(accounts)
		return nil
	})
	require.NoError(err)
	require.NoError(mock.ExpectationsWereMet())
}

func sampleAccount(t *testing.T) *account.Account {
	t.Helper()
	acct, err := mapAccountModel(&AccountModel{
		ID:         uuid.New(),
		Number:     "CHK-deadbeef",
		UserID:     uuid.New(),
		CurrencyID: uuid.New(),
		Type:       "Checking",
		Balance:    decimal.NewFromInt(100),
		Active:     true,
	})
	require.NoError(t, err)
	return acct
}
