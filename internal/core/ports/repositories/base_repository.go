package repositories

import (
	"context"
)

// TxRunner runs a unit of work atomically. If fn returns an error every write
// made through tx is discarded; otherwise all of them become visible together.
// Row locks taken through tx are held until RunInTx returns.
type TxRunner interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx LedgerTx) error) error
}

// LedgerTx is the transactional view of the ledger. Implementations take locks
// in the order entry, tenant sequence, accounts (ascending id).
type LedgerTx interface {
	AccountTx
	JournalTx
}
