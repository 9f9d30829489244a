package repositories

import "context"

// TxFn is a function that runs within a transaction
type TxFn func(ctx context.Context) error

// TransactionManager handles database transactions.
// Course relationship writes run validate-then-commit inside one
// transaction so a concurrent edge insertion cannot slip a cycle in
// between validation and persistence.
type TransactionManager interface {
	// ExecTx executes a function within a transaction
	ExecTx(ctx context.Context, fn TxFn) error
}
