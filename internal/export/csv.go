// Package export builds CSV files from already fetched transactions. It is a
// pure projection, no network calls are involved.
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"github.com/cashflow-zero/client/internal/models"
	"github.com/cashflow-zero/client/internal/types"
)

var ErrNoTransactions = errors.New("no transactions to export")

// header is the fixed column order of the export.
var header = []string{"Date", "Type", "Amount", "Currency", "Description", "Category/Status"}

// Write renders the transactions as CSV. Exporting an empty list is an
// error so that callers do not silently produce a header-only file.
func Write(w io.Writer, transactions []models.Transaction) error {
	if len(transactions) == 0 {
		return ErrNoTransactions
	}

	out := csv.NewWriter(w)
	if err := out.Write(header); err != nil {
		return err
	}

	for _, t := range transactions {
		record := []string{
			t.TransactionDate.String(),
			string(t.Type),
			t.Amount.String(),
			t.CurrencyCode,
			t.Description,
			t.Status(),
		}

		if err := out.Write(record); err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}

// Filename returns the download name for an export created today.
func Filename(today types.Date) string {
	return fmt.Sprintf("cashflow_export_%s.csv", today)
}
