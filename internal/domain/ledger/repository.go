package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/ledgerbook/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PartyRepository defines the interface for party persistence
type PartyRepository interface {
	// Create creates a new party
	Create(ctx context.Context, party *Party) error

	// FindByID finds a party by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Party, error)

	// FindAll lists parties with filtering
	FindAll(ctx context.Context, filter shared.Filter) ([]Party, int64, error)

	// Save updates an existing party
	Save(ctx context.Context, party *Party) error

	// SaveWithLock updates a party with an optimistic version check
	SaveWithLock(ctx context.Context, party *Party) error

	// Count returns the number of parties
	Count(ctx context.Context) (int64, error)
}

// TransactionRepository defines the interface for transaction and
// sell/buy item persistence
type TransactionRepository interface {
	// Create persists a transaction together with its items
	Create(ctx context.Context, transaction *Transaction) error

	// FindByID finds a transaction with its items
	FindByID(ctx context.Context, id uuid.UUID) (*Transaction, error)

	// FindByPartyID lists a party's transactions with their items,
	// most recent first
	FindByPartyID(ctx context.Context, partyID uuid.UUID) ([]Transaction, error)

	// FindSellItemByID finds a single sell item
	FindSellItemByID(ctx context.Context, id uuid.UUID) (*SellItem, error)

	// FindOpenSellItemsByParty returns the party's sell items with
	// balance_left > 0 in FIFO order: owning transaction date
	// ascending, then transaction id ascending as the stable tie-break.
	// Each returned item carries its TransactionDate.
	FindOpenSellItemsByParty(ctx context.Context, partyID uuid.UUID) ([]SellItem, error)

	// SaveSellItem updates a sell item's payment fields with an
	// optimistic version check
	SaveSellItem(ctx context.Context, item *SellItem) error

	// LedgerTotals returns business-wide selling, received and
	// outstanding totals across all sell items
	LedgerTotals(ctx context.Context) (totalSelling, totalReceived, balanceLeft decimal.Decimal, err error)
}
