package csv

import (
	"bufio"
	"fmt"
	"io"
	"sort"

	"github.com/CedrusPay/sluice/pkg/mmodel"
)

// SnapshotWriter renders the final account snapshot as
// client,available,held,total,locked rows.
type SnapshotWriter struct {
	writer io.Writer
}

// NewSnapshotWriter creates a writer emitting to w.
func NewSnapshotWriter(w io.Writer) *SnapshotWriter {
	return &SnapshotWriter{writer: w}
}

// Write emits the header and one row per account, sorted by client id so the
// output is stable run to run.
func (w *SnapshotWriter) Write(accounts []*mmodel.Account) error {
	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].AccountID < accounts[j].AccountID
	})

	buffered := bufio.NewWriter(w.writer)

	if _, err := fmt.Fprintln(buffered, "client,available,held,total,locked"); err != nil {
		return err
	}

	for _, account := range accounts {
		total, err := account.Total()
		if err != nil {
			return fmt.Errorf("snapshot for client [%d]: %w", account.AccountID, err)
		}

		_, err = fmt.Fprintf(buffered, "%d,%s,%s,%s,%t\n",
			account.AccountID, account.Available, account.Held, total, account.Locked)
		if err != nil {
			return err
		}
	}

	return buffered.Flush()
}
