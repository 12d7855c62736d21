package csv

import (
	"context"
	gocsv "encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	libCommons "github.com/LerianStudio/lib-commons/v2/commons"

	"github.com/CedrusPay/sluice/pkg/mmodel"
)

// TransactionSource streams transactions parsed from a header-led
// character-separated file with fields type,client,tx,amount.
type TransactionSource struct {
	path string
}

// NewTransactionSource creates a source reading from the file at path.
func NewTransactionSource(path string) *TransactionSource {
	return &TransactionSource{path: path}
}

// Run parses records until end of file and pushes well-formed transactions
// into out, blocking when the channel is full. Malformed records are logged
// at error and skipped; only the file-open failure is returned. The channel
// is closed on return.
func (s *TransactionSource) Run(ctx context.Context, out chan<- *mmodel.Transaction) error {
	defer close(out)

	logger := libCommons.NewLoggerFromContext(ctx)

	file, err := os.Open(s.path)
	if err != nil {
		return fmt.Errorf("opening input at path %s: %w", s.path, err)
	}

	defer file.Close()

	reader := gocsv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header := true

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			logger.Errorf("skipping malformed record: %v", err)

			continue
		}

		if header {
			header = false

			if len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "type") {
				continue
			}
		}

		transaction, err := parseRecord(record)
		if err != nil {
			logger.Errorf("skipping record %v: %v", record, err)

			continue
		}

		select {
		case out <- transaction:
		case <-ctx.Done():
			return nil
		}
	}
}

// parseRecord converts one raw record into a typed transaction. The amount
// field may be missing or empty for the dispute family.
func parseRecord(record []string) (*mmodel.Transaction, error) {
	if len(record) < 3 || len(record) > 4 {
		return nil, fmt.Errorf("expected 3 or 4 fields, got %d", len(record))
	}

	kind, err := mmodel.ParseTransactionType(record[0])
	if err != nil {
		return nil, err
	}

	accountID, err := strconv.ParseUint(strings.TrimSpace(record[1]), 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid client id %q: %w", record[1], err)
	}

	transactionID, err := strconv.ParseUint(strings.TrimSpace(record[2]), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid transaction id %q: %w", record[2], err)
	}

	transaction := &mmodel.Transaction{
		Type:          kind,
		AccountID:     uint16(accountID),
		TransactionID: uint32(transactionID),
	}

	if len(record) == 4 && strings.TrimSpace(record[3]) != "" {
		amount, err := mmodel.ParseMonetary(record[3])
		if err != nil {
			return nil, err
		}

		transaction.Amount = &amount
	}

	return transaction, nil
}
