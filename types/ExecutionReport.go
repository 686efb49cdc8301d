package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type ExecutionReport struct {
	OrderId      string
	Tick         int
	Ticker       string
	Side         Side
	Status       OrderStatus
	Quantity     int64
	Price        decimal.Decimal
	Value        decimal.Decimal
	RealizedPnL  decimal.Decimal
	CashAfter    decimal.Decimal
	RejectReason string
	ReportTime   time.Time
}

func (er ExecutionReport) Filled() bool {
	return er.Status == OrderFilled
}
