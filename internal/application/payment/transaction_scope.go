package payment

import (
	"context"

	"github.com/ledgerbook/backend/internal/domain/ledger"
	"github.com/ledgerbook/backend/internal/domain/payment"
)

// TransactionScope provides transactional access to the repositories the
// payment engines touch. When a function is executed within a scope, all
// repository operations are part of the same database transaction and
// commit or roll back atomically. Partial application of an allocation or
// reversal run is a correctness violation, so every multi-write sequence
// in this package goes through a scope.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the repositories within a
// transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// Parties returns the party repository scoped to the current transaction
	Parties() ledger.PartyRepository
	// Transactions returns the transaction repository scoped to the current transaction
	Transactions() ledger.TransactionRepository
	// Payments returns the direct payment repository scoped to the current transaction
	Payments() payment.PaymentRepository
	// PartyPayments returns the party payment repository scoped to the current transaction
	PartyPayments() payment.PartyPaymentRepository
}

// NoOpTransactionScope runs the function against plain repositories with
// no real transaction. Useful in tests that assert pure service behavior.
type NoOpTransactionScope struct {
	PartyRepo        ledger.PartyRepository
	TransactionRepo  ledger.TransactionRepository
	PaymentRepo      payment.PaymentRepository
	PartyPaymentRepo payment.PartyPaymentRepository
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// Parties returns the party repository
func (s *NoOpTransactionScope) Parties() ledger.PartyRepository { return s.PartyRepo }

// Transactions returns the transaction repository
func (s *NoOpTransactionScope) Transactions() ledger.TransactionRepository {
	return s.TransactionRepo
}

// Payments returns the direct payment repository
func (s *NoOpTransactionScope) Payments() payment.PaymentRepository { return s.PaymentRepo }

// PartyPayments returns the party payment repository
func (s *NoOpTransactionScope) PartyPayments() payment.PartyPaymentRepository {
	return s.PartyPaymentRepo
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
