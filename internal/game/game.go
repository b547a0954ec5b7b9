package game

import (
	"context"
	"io"
	"math/rand/v2"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"FishingDay/internal/config"
	"FishingDay/internal/economy"
	"FishingDay/internal/model"
	"FishingDay/internal/pond"
	"FishingDay/internal/rng"
	"FishingDay/internal/strategy"
)

// ErrQuit is returned by PlayDay when the player quits from the equipment menu.
var ErrQuit = errors.New("player quit")

// State is a step of the day lifecycle.
type State int

const (
	StateEquipmentSelection State = iota
	StateShopping
	StateResolution
	StateEvaluation
	StateReset
	StateQuit
)

func (s State) String() string {
	switch s {
	case StateEquipmentSelection:
		return "equipment_selection"
	case StateShopping:
		return "shopping"
	case StateResolution:
		return "resolution"
	case StateEvaluation:
		return "evaluation"
	case StateReset:
		return "reset"
	case StateQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Options wires the collaborators of a Game. Controller is required.
type Options struct {
	Controller Controller
	Listener   Listener
	Delayer    Delayer
	Hooks      []DayHook
	Rand       *rand.Rand
	Logger     *zap.Logger
	SessionID  string
}

// Game sequences the days. It is not safe for concurrent use.
type Game struct {
	cfg       config.Game
	rng       *rand.Rand
	pond      *pond.Pond
	forecast  *pond.Generator
	shop      *economy.Shop
	advisor   *economy.Advisor
	ctrl      Controller
	listener  Listener
	delayer   Delayer
	hooks     []DayHook
	log       *zap.Logger
	sessionID string

	day    int
	wealth int
}

// New creates a Game from the game settings.
func New(cfg config.Game, opts Options) *Game {
	if opts.Rand == nil {
		opts.Rand = rng.New(cfg.Seed)
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Listener == nil {
		opts.Listener = nopListener{}
	}
	if opts.Delayer == nil {
		opts.Delayer = SleepDelayer{}
	}
	if opts.SessionID == "" {
		opts.SessionID = uuid.NewString()
	}
	shop := economy.NewShop(cfg)
	return &Game{
		cfg:       cfg,
		rng:       opts.Rand,
		pond:      pond.New(opts.Rand),
		forecast:  pond.NewGenerator(cfg, opts.Rand, opts.Logger),
		shop:      shop,
		advisor:   economy.NewAdvisor(shop, cfg, opts.Logger),
		ctrl:      opts.Controller,
		listener:  opts.Listener,
		delayer:   opts.Delayer,
		hooks:     opts.Hooks,
		log:       opts.Logger,
		sessionID: opts.SessionID,
		wealth:    cfg.StartingWealth,
	}
}

// SessionID identifies this run in the journal.
func (g *Game) SessionID() string { return g.sessionID }

// Wealth returns the opening wealth of the next day.
func (g *Game) Wealth() int { return g.wealth }

// Day returns the number of days started so far.
func (g *Game) Day() int { return g.day }

// Run plays days until the player quits or declines to continue.
// Cancelling ctx stops the loop between days only.
func (g *Game) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		report, err := g.PlayDay(ctx)
		if err != nil {
			if isQuit(err) {
				return nil
			}
			return err
		}
		more, err := g.ctrl.Continue(ctx, report)
		if err != nil {
			if isQuit(err) {
				return nil
			}
			return errors.Wrap(err, "continue prompt")
		}
		if !more {
			return nil
		}
	}
}

func isQuit(err error) bool {
	return errors.Is(err, ErrQuit) || errors.Is(err, io.EOF)
}

// dayState is everything owned by the day in progress.
type dayState struct {
	player    *model.Player
	evaluator *strategy.Evaluator
	report    DayReport
	choice    Choice
}

// PlayDay runs one day through the state machine and returns its report.
// It returns ErrQuit, with a partial report, when the player quits.
func (g *Game) PlayDay(ctx context.Context) (DayReport, error) {
	g.day++
	d := &dayState{
		player:    model.NewPlayer(g.wealth),
		evaluator: strategy.NewEvaluator(g.wealth),
		report: DayReport{
			SessionID:     g.sessionID,
			DayID:         uuid.NewString(),
			Day:           g.day,
			OpeningWealth: g.wealth,
			Outcome:       model.OutcomeTie,
			StartedAt:     time.Now(),
		},
	}
	g.log.Info("day started", zap.Int("day", g.day), zap.Int("wealth", g.wealth))
	g.listener.Notice(Event{Kind: EventDayStart, Day: g.day, Wealth: g.wealth})

	fc := g.forecast.Generate(g.pond)
	d.report.Forecast = fc
	g.listener.Notice(Event{Kind: EventForecast, Day: g.day, Forecast: &fc})

	var (
		state   = StateEquipmentSelection
		stepErr error
	)
	for {
		g.log.Debug("state", zap.Int("day", g.day), zap.Stringer("state", state))
		switch state {
		case StateEquipmentSelection:
			state, stepErr = g.selectEquipment(ctx, d)
		case StateShopping:
			state, stepErr = g.shopping(ctx, d)
		case StateResolution:
			state, stepErr = g.resolve(ctx, d)
		case StateEvaluation:
			state = g.evaluate(d)
		case StateReset:
			g.reset(ctx, d)
			return d.report, nil
		case StateQuit:
			d.report.Reason = EndQuit
			d.report.ClosingWealth = d.player.Wealth
			d.report.Pole = d.player.Pole
			d.report.EndedAt = time.Now()
			g.log.Info("player quit", zap.Int("day", g.day))
			g.runHooks(ctx, d.report)
			return d.report, ErrQuit
		}
		if stepErr != nil {
			if isQuit(stepErr) {
				state, stepErr = StateQuit, nil
				continue
			}
			return d.report, errors.Wrapf(stepErr, "day %d", g.day)
		}
	}
}

func (g *Game) view(d *dayState) View {
	v := View{
		Day:      g.day,
		Wealth:   d.player.Wealth,
		Baits:    d.player.BaitCounts(),
		Pond:     g.pond.Counts(),
		Forecast: d.report.Forecast,
	}
	if d.player.Pole != nil {
		pole := *d.player.Pole
		v.Pole = &pole
	}
	return v
}

func (g *Game) selectEquipment(ctx context.Context, d *dayState) (State, error) {
	choice, err := g.ctrl.ChooseEquipment(ctx, g.view(d))
	if err != nil {
		return StateQuit, err
	}
	d.choice = choice
	d.report.Choice = choice

	switch choice {
	case ChooseQuit:
		return StateQuit, nil
	case ChooseSkip:
		d.report.Reason = EndSkipped
		g.listener.Notice(Event{Kind: EventSkipped, Day: g.day, Wealth: d.player.Wealth})
		return StateReset, nil
	case ChooseAuto:
		plan := g.advisor.AutoAllocate(g.pond, d.player)
		for _, pu := range plan.Purchases {
			g.record(d, pu.Item, pu.Err)
		}
		g.listener.Notice(Event{Kind: EventAutoPlan, Day: g.day, Wealth: d.player.Wealth, Plan: &plan})
	default:
		size, ok := choice.Size()
		if !ok {
			return StateEquipmentSelection, nil
		}
		rental := economy.Rental{Pole: g.shop.Pole(size)}
		g.record(d, rental, economy.Acquire(d.player, rental))
	}

	if !g.viable(d) {
		d.report.Reason = EndNoViable
		g.listener.Notice(Event{Kind: EventNoViable, Day: g.day, Wealth: d.player.Wealth})
		return StateReset, nil
	}
	if choice == ChooseAuto {
		return StateResolution, nil
	}
	return StateShopping, nil
}

// viable rejects days that provably cannot catch anything: no pole at all, or a
// smallest-tier pole with nothing but base bait while the pond holds no such fish.
func (g *Game) viable(d *dayState) bool {
	pole := d.player.Pole
	if pole == nil {
		return false
	}
	smallest, base := model.Sizes[0], model.Colors[0]
	if pole.Size == smallest && d.player.HasOnlyBait(base) && !g.pond.HasSpecific(smallest, base) {
		return false
	}
	return true
}

func (g *Game) record(d *dayState, item economy.Acquirable, err error) {
	d.report.Purchases = append(d.report.Purchases, PurchaseRecord{
		Item:     item.String(),
		Price:    item.Price(),
		Accepted: err == nil,
	})
	if err != nil {
		g.log.Debug("acquisition rejected", zap.Stringer("item", item), zap.Error(err))
		g.listener.Notice(Event{Kind: EventRejected, Day: g.day, Wealth: d.player.Wealth, Item: item, Err: err})
		return
	}
	g.listener.Notice(Event{Kind: EventAcquired, Day: g.day, Wealth: d.player.Wealth, Item: item})
}

func (g *Game) shopping(ctx context.Context, d *dayState) (State, error) {
	for d.player.Wealth > 0 && d.player.Wealth >= g.shop.CheapestBait() {
		order, ok, err := g.ctrl.NextOrder(ctx, g.view(d))
		if err != nil {
			return StateQuit, err
		}
		if !ok {
			break
		}
		item := economy.BaitPurchase{Bait: g.shop.Bait(order.Color), Quantity: order.Quantity}
		g.record(d, item, g.shop.Buy(d.player, order.Color, order.Quantity))
	}
	return StateResolution, nil
}

func (g *Game) resolve(ctx context.Context, d *dayState) (State, error) {
	d.report.DidFish = true
	pole := d.player.Pole

	for len(d.player.Baits) > 0 && g.pond.HasAny() {
		if !g.pond.CanBeCaughtBy(pole.Size) {
			g.listener.Notice(Event{Kind: EventNoFishOnPole, Day: g.day, Wealth: d.player.Wealth})
			break
		}

		color, ok, err := g.ctrl.ChooseBait(ctx, g.view(d))
		if err != nil {
			return StateQuit, err
		}
		if !ok {
			g.listener.Notice(Event{Kind: EventEndedEarly, Day: g.day, Wealth: d.player.Wealth})
			break
		}
		if !d.player.HasBait(color) {
			g.listener.Notice(Event{Kind: EventRejected, Day: g.day, Wealth: d.player.Wealth,
				Err: errors.Wrapf(pond.ErrNoBait, "color %s", color)})
			continue
		}

		if g.castGate() {
			if err := g.ctrl.Cast(ctx); err != nil {
				return StateQuit, err
			}
		}
		g.listener.Notice(Event{Kind: EventCasting, Day: g.day, Wealth: d.player.Wealth})
		g.pause(g.cfg.CastingDelayMS)

		res, err := pond.Attempt(g.pond, d.player, color)
		if err != nil {
			return StateReset, err
		}
		d.player.Wealth += res.Reward()
		d.report.Casts = append(d.report.Casts, res)

		g.log.Debug("cast resolved",
			zap.Int("day", g.day),
			zap.Stringer("color", color),
			zap.Bool("caught", res.Caught),
			zap.Int("reward", res.Reward()),
			zap.Int("wealth", d.player.Wealth),
		)
		g.listener.Notice(Event{Kind: EventCast, Day: g.day, Wealth: d.player.Wealth, Cast: &res})
	}
	return StateEvaluation, nil
}

func (g *Game) evaluate(d *dayState) State {
	if d.report.DidFish {
		g.listener.Notice(Event{Kind: EventJudging, Day: g.day, Wealth: d.player.Wealth})
		g.pause(g.cfg.JudgingDelayMS)
	}
	d.report.Outcome = d.evaluator.Evaluate(d.player.Wealth, d.report.DidFish)
	d.report.Reason = EndPlayed
	return StateReset
}

func (g *Game) reset(ctx context.Context, d *dayState) {
	d.report.ClosingWealth = d.player.Wealth
	d.report.Pole = d.player.Pole
	d.report.EndedAt = time.Now()

	if g.cfg.CarryWealth {
		g.wealth = d.player.Wealth
	} else {
		g.wealth = g.cfg.StartingWealth
	}

	g.log.Info("day ended",
		zap.Int("day", d.report.Day),
		zap.String("outcome", string(d.report.Outcome)),
		zap.String("reason", string(d.report.Reason)),
		zap.Int("closing_wealth", d.report.ClosingWealth),
		zap.Int("casts", len(d.report.Casts)),
	)
	report := d.report
	g.listener.Notice(Event{Kind: EventDayEnd, Day: report.Day, Wealth: report.ClosingWealth, Report: &report})

	g.runHooks(ctx, report)
}

// runHooks tells every hook about a finished or quit day. Failures are logged only.
func (g *Game) runHooks(ctx context.Context, report DayReport) {
	for _, h := range g.hooks {
		if err := h.DayEnded(ctx, report); err != nil {
			g.log.Error("day hook failed", zap.Int("day", report.Day), zap.Error(err))
		}
	}
}

func (g *Game) castGate() bool {
	return g.cfg.CastGate == nil || *g.cfg.CastGate
}

func (g *Game) pause(r config.Range) {
	ms := rng.IntRange(g.rng, r.Min, r.Max)
	g.delayer.Delay(time.Duration(ms) * time.Millisecond)
}
