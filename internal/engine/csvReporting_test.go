package engine

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteJournalCSV(t *testing.T) {
	e := mockEngine(t, fixedSampler(0.5))
	if _, err := e.Buy("Stock", 2); err != nil {
		t.Fatalf("Buy() error = %v", err)
	}
	if _, err := e.Sell("Crypto", 1); err == nil {
		t.Fatalf("Sell() expected rejection")
	}

	var buf bytes.Buffer
	if err := writeJournalCSV(&buf, e.Journal()); err != nil {
		t.Fatalf("writeJournalCSV() error = %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("len(records) = %d, want 3", len(records))
	}
	if records[0][0] != "order_id" || records[0][11] != "report_time" {
		t.Errorf("header = %v", records[0])
	}

	filled := records[1]
	want := []string{"0", "Stock", "BUY", "ORDER_FILLED", "2", "100.00", "200.00", "0.00", "800.00", "", "2024-01-02T15:04:05Z"}
	for i, w := range want {
		if filled[i+1] != w {
			t.Errorf("filled column %s = %q, want %q", records[0][i+1], filled[i+1], w)
		}
	}
	if filled[0] == "" {
		t.Errorf("filled order has no id")
	}

	rejected := records[2]
	if rejected[4] != "ORDER_REJECTED" || rejected[10] != ErrInsufficientHoldings.Error() || rejected[9] != "800.00" {
		t.Errorf("rejected row = %v", rejected)
	}
}

func TestEngine_WriteJournalCSV(t *testing.T) {
	e := mockEngine(t, fixedSampler(0.5))
	if _, err := e.Buy("Crypto", 1); err != nil {
		t.Fatalf("Buy() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "journal.csv")
	if err := e.WriteJournalCSV(path); err != nil {
		t.Fatalf("WriteJournalCSV() error = %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 2 || records[1][2] != "Crypto" {
		t.Errorf("records = %v", records)
	}

	if err := e.WriteJournalCSV(filepath.Join(t.TempDir(), "missing", "journal.csv")); err == nil {
		t.Errorf("WriteJournalCSV() into missing dir expected error")
	}
}
