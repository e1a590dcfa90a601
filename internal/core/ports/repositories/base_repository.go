package repositories

import "context"

// TransactionManager supplies the atomic unit of work the transfer path
// requires. Repository calls made with the callback's context join the same
// unit; when fn returns an error every write made inside it is rolled back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// RepositoryWithTx is a marker interface for repositories that support
// transactional units of work.
type RepositoryWithTx interface {
	TransactionManager
}
