package engine

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"tradesim/types"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	ErrNoAssets       = errors.New("at least one asset is required")
	ErrDuplicateAsset = errors.New("duplicate asset name")
	ErrUnknownSide    = errors.New("unknown order side")
)

// Engine owns the state of one simulation run: the traded assets, a single
// portfolio, and the record of everything that happened to them.
type Engine struct {
	assets      []*Asset
	byName      map[string]*Asset
	portfolio   *Portfolio
	initialCash decimal.Decimal

	sampler  Sampler
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time

	tick      int
	journal   []types.ExecutionReport
	snapshots []types.PortfolioView
	candles   map[string]*types.Candle
}

type Option func(*Engine)

func WithSampler(s Sampler) Option {
	return func(e *Engine) { e.sampler = s }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(assetConfigs []AssetConfig, portfolioConfig *PortfolioConfig, opts ...Option) (*Engine, error) {
	if len(assetConfigs) == 0 {
		return nil, ErrNoAssets
	}
	if portfolioConfig == nil {
		portfolioConfig = NewPortfolioConfig(DefaultInitialCash)
	}

	e := &Engine{
		byName:      make(map[string]*Asset, len(assetConfigs)),
		portfolio:   NewPortfolio(portfolioConfig.initialCash),
		initialCash: portfolioConfig.initialCash,
		logger:      slog.Default(),
		recorder:    nopRecorder{},
		now:         time.Now,
		candles:     make(map[string]*types.Candle, len(assetConfigs)),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.sampler == nil {
		e.sampler = NewSampler(0)
	}

	for _, cfg := range assetConfigs {
		if _, ok := e.byName[cfg.name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAsset, cfg.name)
		}
		a := NewAsset(cfg.name, cfg.initialPrice)
		e.assets = append(e.assets, a)
		e.byName[a.Name()] = a

		candle := types.NewCandle(a.Name(), a.Price(), 0)
		e.candles[a.Name()] = &candle
		e.recorder.ObservePrice(a.Name(), a.Price())
	}

	if err := e.snapshot(); err != nil {
		return nil, err
	}
	return e, nil
}

// Tick moves every asset price once, in configuration order, and records the
// resulting portfolio value.
func (e *Engine) Tick() error {
	e.tick++
	for _, a := range e.assets {
		a.Fluctuate(e.sampler)
		e.candles[a.Name()].Update(a.Price(), e.tick)
		e.recorder.ObservePrice(a.Name(), a.Price())
	}
	e.recorder.ObserveTick(e.tick)
	e.logger.Debug("tick", "tick", e.tick, slog.Group("prices", e.quoteAttrs()...))
	return e.snapshot()
}

func (e *Engine) snapshot() error {
	view, err := e.View()
	if err != nil {
		return err
	}
	e.snapshots = append(e.snapshots, view)
	e.recorder.ObservePortfolioValue(view.Total)
	return nil
}

// Submit executes order against the portfolio at the current price of its
// asset. The returned report is also appended to the journal; the error is
// non-nil exactly when the order was rejected.
func (e *Engine) Submit(order types.Order) (types.ExecutionReport, error) {
	report := types.ExecutionReport{
		OrderId:    uuid.NewString(),
		Tick:       e.tick,
		Ticker:     order.Ticker,
		Side:       order.Side,
		Quantity:   order.Quantity,
		ReportTime: e.now(),
	}

	fill, err := e.execute(order)
	if err != nil {
		report.Status = types.OrderRejected
		report.RejectReason = rejectReason(err)
		report.CashAfter = e.portfolio.Cash()
		if a, ok := e.byName[order.Ticker]; ok {
			report.Price = a.Price()
		}
		e.logger.Info("order rejected", "tick", e.tick, "ticker", order.Ticker, "side", order.Side, "quantity", order.Quantity, "reason", report.RejectReason)
	} else {
		report.Status = types.OrderFilled
		report.Price = fill.Price
		report.Value = fill.Value
		report.RealizedPnL = fill.RealizedPnL
		report.CashAfter = fill.CashAfter
		e.logger.Debug("order filled", "tick", e.tick, "ticker", fill.Ticker, "side", fill.Side, "quantity", fill.Quantity, "price", fill.Price.StringFixed(pricePlaces))
	}

	e.journal = append(e.journal, report)
	e.recorder.ObserveOrder(report.Side, report.Status)
	e.recorder.ObservePortfolioValue(e.portfolioValue())
	return report, err
}

func (e *Engine) execute(order types.Order) (Fill, error) {
	a, ok := e.byName[order.Ticker]
	if !ok {
		return Fill{}, fmt.Errorf("%w: %s", ErrUnknownAsset, order.Ticker)
	}
	switch order.Side {
	case types.SideTypeBuy:
		return e.portfolio.Buy(a, order.Quantity)
	case types.SideTypeSell:
		return e.portfolio.Sell(a, order.Quantity)
	default:
		return Fill{}, fmt.Errorf("%w: %q", ErrUnknownSide, order.Side)
	}
}

// Buy and Sell are shorthands for Submit at the current tick.
func (e *Engine) Buy(ticker string, qty int64) (types.ExecutionReport, error) {
	return e.Submit(types.NewOrder(ticker, qty, types.SideTypeBuy, e.now()))
}

func (e *Engine) Sell(ticker string, qty int64) (types.ExecutionReport, error) {
	return e.Submit(types.NewOrder(ticker, qty, types.SideTypeSell, e.now()))
}

// View values the portfolio at current prices.
func (e *Engine) View() (types.PortfolioView, error) {
	view, err := e.portfolio.Valuation(e.byName)
	if err != nil {
		return types.PortfolioView{}, err
	}
	view.Tick = e.tick
	return view, nil
}

func (e *Engine) portfolioValue() decimal.Decimal {
	view, err := e.View()
	if err != nil {
		return e.portfolio.Cash()
	}
	return view.Total
}

// Resolve finds an asset by user supplied name. Matching ignores case and
// surrounding space.
func (e *Engine) Resolve(name string) (*Asset, bool) {
	name = strings.TrimSpace(name)
	if a, ok := e.byName[name]; ok {
		return a, true
	}
	if a, ok := e.byName[cases.Title(language.Und).String(strings.ToLower(name))]; ok {
		return a, true
	}
	for _, a := range e.assets {
		if strings.EqualFold(a.Name(), name) {
			return a, true
		}
	}
	return nil, false
}

// Prices returns the current quote of every asset in configuration order.
func (e *Engine) Prices() []types.Quote {
	quotes := make([]types.Quote, 0, len(e.assets))
	for _, a := range e.assets {
		quotes = append(quotes, types.Quote{Ticker: a.Name(), Price: a.Price(), Tick: e.tick})
	}
	return quotes
}

func (e *Engine) AssetNames() []string {
	names := make([]string, 0, len(e.assets))
	for _, a := range e.assets {
		names = append(names, a.Name())
	}
	return names
}

func (e *Engine) CurrentTick() int { return e.tick }

func (e *Engine) Portfolio() *Portfolio { return e.portfolio }

// Journal returns every order submitted so far, oldest first.
func (e *Engine) Journal() []types.ExecutionReport {
	return append([]types.ExecutionReport(nil), e.journal...)
}

func (e *Engine) quoteAttrs() []any {
	attrs := make([]any, 0, len(e.assets))
	for _, a := range e.assets {
		attrs = append(attrs, slog.String(a.Name(), a.Price().StringFixed(pricePlaces)))
	}
	return attrs
}

func rejectReason(err error) string {
	for _, known := range []error{ErrInsufficientCash, ErrInsufficientHoldings, ErrNonPositiveQuantity, ErrUnknownAsset, ErrUnknownSide} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return err.Error()
}
