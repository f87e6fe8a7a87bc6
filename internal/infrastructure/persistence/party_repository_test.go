package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/ledgerbook/backend/internal/domain/ledger"
	"github.com/ledgerbook/backend/internal/domain/shared"
)

// newMockPartyRepository creates a GormPartyRepository with a mocked SQL connection
func newMockPartyRepository(t *testing.T) (*GormPartyRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormPartyRepository(gormDB), mock, mockDB
}

func TestNewGormPartyRepository(t *testing.T) {
	t.Run("creates repository with valid DB", func(t *testing.T) {
		repo, _, mockDB := newMockPartyRepository(t)
		defer mockDB.Close()

		assert.NotNil(t, repo)
		assert.NotNil(t, repo.db)
	})
}

func TestGormPartyRepository_FindByID(t *testing.T) {
	t.Run("finds existing party", func(t *testing.T) {
		repo, mock, mockDB := newMockPartyRepository(t)
		defer mockDB.Close()

		partyID := uuid.New()
		now := time.Now()

		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "version", "name", "contact_name", "phone", "email", "address", "notes", "credit_balance"}).
			AddRow(partyID, now, now, 1, "Karim Traders", "Karim", "01711000000", "", "", "", decimal.Zero)

		mock.ExpectQuery(`SELECT \* FROM "parties" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(partyID, 1).
			WillReturnRows(rows)

		party, err := repo.FindByID(context.Background(), partyID)

		assert.NoError(t, err)
		assert.NotNil(t, party)
		assert.Equal(t, partyID, party.ID)
		assert.Equal(t, "Karim Traders", party.Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns error for non-existent party", func(t *testing.T) {
		repo, mock, mockDB := newMockPartyRepository(t)
		defer mockDB.Close()

		partyID := uuid.New()

		mock.ExpectQuery(`SELECT \* FROM "parties" WHERE id = \$1 ORDER BY .* LIMIT .*`).
			WithArgs(partyID, 1).
			WillReturnError(gorm.ErrRecordNotFound)

		party, err := repo.FindByID(context.Background(), partyID)

		assert.Error(t, err)
		assert.Nil(t, party)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPartyRepository_FindAll(t *testing.T) {
	t.Run("filters by search pattern on name and phone", func(t *testing.T) {
		repo, mock, mockDB := newMockPartyRepository(t)
		defer mockDB.Close()

		partyID := uuid.New()
		now := time.Now()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "parties" WHERE name LIKE \$1 OR phone LIKE \$2`).
			WithArgs("%Karim%", "%Karim%").
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		rows := sqlmock.NewRows([]string{"id", "created_at", "updated_at", "version", "name", "contact_name", "phone", "email", "address", "notes", "credit_balance"}).
			AddRow(partyID, now, now, 1, "Karim Traders", "", "", "", "", "", decimal.Zero)

		mock.ExpectQuery(`SELECT \* FROM "parties" WHERE name LIKE \$1 OR phone LIKE \$2 ORDER BY name ASC`).
			WithArgs("%Karim%", "%Karim%").
			WillReturnRows(rows)

		parties, total, err := repo.FindAll(context.Background(), shared.Filter{Search: "Karim"})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, parties, 1)
		assert.Equal(t, "Karim Traders", parties[0].Name)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPartyRepository_SaveWithLock(t *testing.T) {
	newVersionedParty := func(t *testing.T) *ledger.Party {
		party, err := ledger.NewParty("Karim Traders")
		require.NoError(t, err)
		party.Version = 2
		return party
	}

	t.Run("updates row when version matches", func(t *testing.T) {
		repo, mock, mockDB := newMockPartyRepository(t)
		defer mockDB.Close()

		party := newVersionedParty(t)

		mock.ExpectExec(`UPDATE "parties" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.SaveWithLock(context.Background(), party)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns concurrency conflict when no row matches", func(t *testing.T) {
		repo, mock, mockDB := newMockPartyRepository(t)
		defer mockDB.Close()

		party := newVersionedParty(t)

		mock.ExpectExec(`UPDATE "parties" SET .* WHERE id = \$\d+ AND version = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SaveWithLock(context.Background(), party)

		assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
