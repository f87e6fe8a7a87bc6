package persistence

import (
	"context"

	apppayment "github.com/ledgerbook/backend/internal/application/payment"
	"github.com/ledgerbook/backend/internal/domain/ledger"
	"github.com/ledgerbook/backend/internal/domain/payment"
	"gorm.io/gorm"
)

// GormTransactionScope implements the payment TransactionScope using
// GORM transactions. Every repository handed to the callback shares one
// database transaction, so an allocation or reversal run commits all of
// its writes together or not at all.
type GormTransactionScope struct {
	db *gorm.DB
}

// NewGormTransactionScope creates a new GormTransactionScope
func NewGormTransactionScope(db *gorm.DB) *GormTransactionScope {
	return &GormTransactionScope{db: db}
}

// Execute runs the given function within a database transaction.
// If the function returns an error, the transaction is rolled back.
func (s *GormTransactionScope) Execute(ctx context.Context, fn func(repos apppayment.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormTransactionalRepositories{tx: tx}
		return fn(repos)
	})
}

// gormTransactionalRepositories provides repositories bound to one
// open transaction
type gormTransactionalRepositories struct {
	tx *gorm.DB
}

// Parties returns the party repository scoped to the current transaction
func (r *gormTransactionalRepositories) Parties() ledger.PartyRepository {
	return NewGormPartyRepository(r.tx)
}

// Transactions returns the transaction repository scoped to the current transaction
func (r *gormTransactionalRepositories) Transactions() ledger.TransactionRepository {
	return NewGormTransactionRepository(r.tx)
}

// Payments returns the direct payment repository scoped to the current transaction
func (r *gormTransactionalRepositories) Payments() payment.PaymentRepository {
	return NewGormPaymentRepository(r.tx)
}

// PartyPayments returns the party payment repository scoped to the current transaction
func (r *gormTransactionalRepositories) PartyPayments() payment.PartyPaymentRepository {
	return NewGormPartyPaymentRepository(r.tx)
}

var _ apppayment.TransactionScope = (*GormTransactionScope)(nil)
var _ apppayment.TransactionalRepositories = (*gormTransactionalRepositories)(nil)
