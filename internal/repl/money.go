package repl

import (
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// MoneyFormatter renders decimal amounts in a currency's display format,
// e.g. $1,234.50 for USD.
type MoneyFormatter struct {
	currency *money.Currency
}

func NewMoneyFormatter(code string) MoneyFormatter {
	code = strings.ToUpper(code)
	cur := money.GetCurrency(code)
	if cur == nil {
		// to get a never nil currency I need to call the Money constructor
		cur = money.New(0, code).Currency()
	}
	return MoneyFormatter{currency: cur}
}

func (f MoneyFormatter) Format(amount decimal.Decimal) string {
	minor := amount.Shift(int32(f.currency.Fraction)).Round(0)
	return f.currency.Formatter().Format(minor.IntPart())
}
