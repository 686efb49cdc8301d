// Package repl runs the text interface of the simulator: every round moves the
// market one tick, shows the prices and carries out one user command.
package repl

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"tradesim/internal/engine"
	"tradesim/types"
)

// Session reads commands from an input stream and writes results to an output
// stream.
type Session struct {
	engine  *engine.Engine
	in      *bufio.Scanner
	out     io.Writer
	money   engine.MoneyFormatter
	prompts bool
}

type SessionOption func(*Session)

// WithPrompts controls whether questions are written before each read.
// Prompts only make sense when a person is typing.
func WithPrompts(enabled bool) SessionOption {
	return func(s *Session) { s.prompts = enabled }
}

func NewSession(e *engine.Engine, in io.Reader, out io.Writer, money engine.MoneyFormatter, opts ...SessionOption) *Session {
	s := &Session{
		engine:  e,
		in:      bufio.NewScanner(in),
		out:     out,
		money:   money,
		prompts: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run plays rounds until the user exits or input ends. Both end the session
// with a nil error; a non-nil error means the session state is unusable.
func (s *Session) Run() error {
	for {
		if err := s.engine.Tick(); err != nil {
			return fmt.Errorf("tick: %w", err)
		}
		s.printPrices()

		action, ok := s.ask("\nDo you want to [buy], [sell], [view] portfolio, or [exit]? ")
		if !ok {
			return s.in.Err()
		}

		switch strings.ToLower(action) {
		case "buy":
			if !s.trade(types.SideTypeBuy) {
				return s.in.Err()
			}
		case "sell":
			if !s.trade(types.SideTypeSell) {
				return s.in.Err()
			}
		case "view":
			if err := s.printPortfolio(); err != nil {
				return err
			}
		case "exit":
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid action")
		}
	}
}

// trade asks for an asset and an amount and submits the order. It returns
// false when input ran out.
func (s *Session) trade(side types.Side) bool {
	verb := strings.ToLower(string(side))

	name, ok := s.ask(fmt.Sprintf("Which asset do you want to %s (%s)? ", verb, strings.Join(s.engine.AssetNames(), "/")))
	if !ok {
		return false
	}
	asset, found := s.engine.Resolve(name)
	if !found {
		fmt.Fprintln(s.out, "Invalid asset name")
		return true
	}

	answer, ok := s.ask(fmt.Sprintf("How many units of %s do you want to %s? ", asset.Name(), verb))
	if !ok {
		return false
	}
	amount, err := strconv.ParseInt(answer, 10, 64)
	if err != nil || amount <= 0 {
		fmt.Fprintln(s.out, "Invalid amount")
		return true
	}

	var report types.ExecutionReport
	if side == types.SideTypeBuy {
		report, err = s.engine.Buy(asset.Name(), amount)
	} else {
		report, err = s.engine.Sell(asset.Name(), amount)
	}
	switch {
	case err == nil && side == types.SideTypeBuy:
		fmt.Fprintf(s.out, "Bought %d of %s\n", report.Quantity, report.Ticker)
	case err == nil:
		fmt.Fprintf(s.out, "Sold %d of %s\n", report.Quantity, report.Ticker)
	case errors.Is(err, engine.ErrInsufficientCash):
		fmt.Fprintln(s.out, "Not enough cash to complete the purchase")
	case errors.Is(err, engine.ErrInsufficientHoldings):
		fmt.Fprintln(s.out, "Not enough holdings to complete the sale")
	default:
		fmt.Fprintf(s.out, "Order rejected: %s\n", report.RejectReason)
	}
	return true
}

func (s *Session) printPrices() {
	fmt.Fprintln(s.out, "\nCurrent Prices:")
	for _, q := range s.engine.Prices() {
		fmt.Fprintf(s.out, "%s: %s\n", q.Ticker, s.money.Format(q.Price))
	}
}

func (s *Session) printPortfolio() error {
	view, err := s.engine.View()
	if err != nil {
		return fmt.Errorf("view portfolio: %w", err)
	}
	fmt.Fprintln(s.out, "\nYour Portfolio:")
	fmt.Fprintf(s.out, "Cash: %s\n", s.money.Format(view.Cash))
	for _, pos := range view.Positions {
		fmt.Fprintf(s.out, "%s: %d units at %s each (Total: %s)\n",
			pos.Symbol, pos.Quantity, s.money.Format(pos.LastPrice), s.money.Format(pos.Value))
	}
	fmt.Fprintf(s.out, "Total Portfolio Value: %s\n\n", s.money.Format(view.Total))
	return nil
}

// ask writes prompt when prompting is enabled and reads one trimmed line.
func (s *Session) ask(prompt string) (string, bool) {
	if s.prompts {
		fmt.Fprint(s.out, prompt)
	}
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}
