package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
	"tradesim/types"
)

// WriteJournalCSV writes every submitted order to a CSV file at path.
func (e *Engine) WriteJournalCSV(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create journal file: %w", err)
	}
	defer f.Close()

	return writeJournalCSV(f, e.journal)
}

// writeJournalCSV writes execution reports to any io.Writer as CSV.
func writeJournalCSV(w io.Writer, reports []types.ExecutionReport) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"order_id",
		"tick",
		"ticker",
		"side",
		"status",
		"quantity",
		"price",
		"value",
		"realized_pnl",
		"cash_after",
		"reject_reason",
		"report_time", // RFC3339
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, er := range reports {
		if err := writeExecutionRow(cw, er); err != nil {
			return err
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}

func writeExecutionRow(cw *csv.Writer, er types.ExecutionReport) error {
	record := []string{
		er.OrderId,
		strconv.Itoa(er.Tick),
		er.Ticker,
		string(er.Side),
		string(er.Status),
		strconv.FormatInt(er.Quantity, 10),
		er.Price.StringFixed(pricePlaces),
		er.Value.StringFixed(pricePlaces),
		er.RealizedPnL.StringFixed(pricePlaces),
		er.CashAfter.StringFixed(pricePlaces),
		er.RejectReason,
		er.ReportTime.Format(time.RFC3339),
	}
	if err := cw.Write(record); err != nil {
		return fmt.Errorf("write execution %s: %w", er.OrderId, err)
	}
	return nil
}
