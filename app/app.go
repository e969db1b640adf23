// Package app hosts one game on a tcell screen.
//
// The App owns the frame loop and the terminal event loop, lays out the grid and
// HUD, starts and collects rounds, and launches click sequences off the loop.
// Every blocking remote call runs in its own goroutine tracked by a WaitGroup.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/lixenwraith/minetower/anim"
	"github.com/lixenwraith/minetower/clock"
	"github.com/lixenwraith/minetower/config"
	"github.com/lixenwraith/minetower/core"
	"github.com/lixenwraith/minetower/grid"
	"github.com/lixenwraith/minetower/hud"
	"github.com/lixenwraith/minetower/parameter"
	"github.com/lixenwraith/minetower/play"
	"github.com/lixenwraith/minetower/remote"
	"github.com/lixenwraith/minetower/render"
	"github.com/lixenwraith/minetower/render/renderer"
	"github.com/lixenwraith/minetower/session"
	"github.com/lixenwraith/minetower/status"
)

// ErrNoScreen and ErrNoRemote are returned by New for missing collaborators
var (
	ErrNoScreen = errors.New("app: screen required")
	ErrNoRemote = errors.New("app: remote required")
)

// Remote is the adjudicator surface used by the host
type Remote interface {
	play.Adjudicator
	StartRound(ctx context.Context, bet decimal.Decimal, rows, cols int) (remote.Response, error)
	Collect(ctx context.Context) (remote.Response, error)
	SetObserver(fn remote.Observer)
}

// Audio plays effects and owns the mute switch
type Audio interface {
	play.Sound
	ToggleMute() bool
	IsMuted() bool
}

// Options configures an App
type Options struct {
	Screen tcell.Screen
	Remote Remote

	// Audio is optional; nil runs silent
	Audio Audio

	Grid   config.GridConfig
	Clock  clock.TimeProvider
	Logger *zap.Logger
}

// App is the game host
type App struct {
	screen tcell.Screen
	remote Remote
	audio  Audio
	cfg    config.GridConfig
	clock  clock.TimeProvider
	log    *zap.Logger

	session  *session.Session
	grid     *grid.Grid
	gate     *hud.Gate
	status   *hud.StatusLine
	buttons  *hud.Buttons
	animator *anim.Animator
	phase    *hud.Phase
	registry *status.Registry
	handler  *play.ClickHandler
	orch     *render.RenderOrchestrator

	ctx       context.Context
	cancel    context.CancelFunc
	wg        sync.WaitGroup
	closeOnce sync.Once

	// roundBusy is set while a start or collect request is in flight
	roundBusy atomic.Bool
	// clicks counts launched click sequences that have not returned
	clicks atomic.Int32

	// Loop-owned
	lastButtons tcell.ButtonMask
}

// New builds the grid, HUD, click handler and render pipeline for the screen size
func New(opts Options) (*App, error) {
	if opts.Screen == nil {
		return nil, ErrNoScreen
	}
	if opts.Remote == nil {
		return nil, ErrNoRemote
	}
	if opts.Clock == nil {
		opts.Clock = clock.NewRealTimeProvider()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Audio == nil {
		opts.Audio = silent{}
	}

	a := &App{
		screen:   opts.Screen,
		remote:   opts.Remote,
		audio:    opts.Audio,
		cfg:      opts.Grid,
		clock:    opts.Clock,
		log:      opts.Logger.Named("app"),
		session:  session.New(opts.Grid.Rows, opts.Grid.Cols),
		gate:     hud.NewGate(),
		status:   hud.NewStatusLine(),
		buttons:  hud.NewButtons(opts.Clock),
		animator: anim.NewAnimator(opts.Clock),
		registry: status.NewRegistry(),
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())

	w, h := a.screen.Size()
	gw, gh := gridArea(w, h)
	g, err := grid.New(grid.Options{
		Width:       gw,
		Height:      gh,
		Rows:        opts.Grid.Rows,
		Cols:        opts.Grid.Cols,
		CellSize:    opts.Grid.CellSize,
		BaseY:       parameter.GridTopMargin,
		Multipliers: opts.Grid.Multipliers,
		OnTap:       a.launchClick,
		Clock:       opts.Clock,
		Logger:      opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("build grid: %w", err)
	}
	a.grid = g
	a.buttons.Layout(w, h)

	a.phase = hud.NewPhase(a.gate, a.buttons, a.animator, opts.Logger)
	a.handler, err = play.New(play.Deps{
		Board:       a.grid,
		Session:     a.session,
		Adjudicator: a.remote,
		Host:        a.phase,
		Gate:        a.gate,
		Sound:       a.audio,
		Status:      a.status,
		Activity:    a.registry,
		Buttons:     a.buttons,
		Logger:      opts.Logger,
	})
	if err != nil {
		return nil, fmt.Errorf("click handler: %w", err)
	}

	a.remote.SetObserver(a.observe)

	a.orch = render.NewRenderOrchestrator(a.screen)
	a.orch.Register(renderer.NewCellRenderer(), render.PriorityGrid)
	a.orch.Register(renderer.NewIndicatorRenderer(), render.PriorityIndicator)
	a.orch.Register(renderer.NewLabelRenderer(), render.PriorityLabel)
	a.orch.Register(renderer.NewForwardRenderer(), render.PriorityEffect)
	a.orch.Register(renderer.NewHUDRenderer(), render.PriorityUI)

	a.registry.Bools.Get(status.KeyAudioMuted).Store(a.audio.IsMuted())
	return a, nil
}

// gridArea is the screen minus the title and bottom HUD rows
func gridArea(w, h int) (int, int) {
	return max(w, 1), max(h-parameter.GridTopMargin-parameter.GridBottomMargin, 1)
}

// Registry exposes the game counters
func (a *App) Registry() *status.Registry {
	return a.registry
}

// Run drives the frame ticker and the terminal event loop until quit or ctx ends
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close()

	a.animator.Run(ctx, parameter.FrameUpdateInterval)

	frameTicker := time.NewTicker(parameter.FrameUpdateInterval)
	defer frameTicker.Stop()

	eventChan := make(chan tcell.Event, parameter.EventChannelSize)
	core.Go(func() { a.poll(eventChan) })

	a.Frame()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-eventChan:
			if !ok {
				return nil
			}
			if !a.HandleEvent(ev) {
				return nil
			}

		case <-frameTicker.C:
			a.Frame()
		}
	}
}

// poll forwards terminal events; PollEvent returns nil once the screen is finalized
func (a *App) poll(out chan<- tcell.Event) {
	defer close(out)
	for {
		ev := a.screen.PollEvent()
		if ev == nil {
			return
		}
		out <- ev
	}
}

// Close cancels in-flight sequences and waits for them to return; safe to repeat
func (a *App) Close() {
	a.closeOnce.Do(func() {
		a.cancel()
		a.animator.Stop()
		a.wg.Wait()
		a.animator.Wait()
		a.grid.Destroy()
		a.log.Info("game closed", zap.Strings("metrics", a.registry.Lines()))
	})
}

// Wait blocks until every launched click, start and collect returned
func (a *App) Wait() {
	a.wg.Wait()
}

// HandleEvent processes one terminal event; false means quit
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventMouse:
		a.handleMouse(ev)
	case *tcell.EventResize:
		a.Resize(ev.Size())
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyEnter:
		a.StartRound()
		return true
	case tcell.KeyRune:
	default:
		return true
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return false
	case 's', 'S':
		a.StartRound()
	case 'c', 'C':
		a.Collect()
	case 'm', 'M':
		a.ToggleMute()
	}
	return true
}

// handleMouse hovers on every event and acts on left-button press edges only
func (a *App) handleMouse(ev *tcell.EventMouse) {
	x, y := ev.Position()
	btns := ev.Buttons()
	pressed := btns&tcell.Button1 != 0 && a.lastButtons&tcell.Button1 == 0
	a.lastButtons = btns

	a.grid.SetHover(x, y)
	if !pressed {
		return
	}

	switch a.buttons.ButtonAt(x, y) {
	case hud.ButtonStart:
		a.StartRound()
		return
	case hud.ButtonCollect:
		a.Collect()
		return
	}

	if !a.gate.Enabled() {
		return
	}
	a.grid.TapAt(x, y)
}

// launchClick is bound to every indicator tap
func (a *App) launchClick(row, col int) {
	a.clicks.Add(1)
	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.clicks.Add(-1)
		result := a.handler.HandleClick(a.ctx, row, col)
		a.registry.RecordResult(result)
		a.registry.Strings.Get(status.KeyPhase).Store(a.handler.Phase())
		switch result {
		case play.ResultMineHit:
			a.registry.Inc(status.KeyRoundsLost)
		case play.ResultCompleted:
			a.registry.Inc(status.KeyRoundsWon)
		}
	}()
}

// clickPending reports a click sequence launched or running
func (a *App) clickPending() bool {
	return a.clicks.Load() > 0 || a.handler.Busy()
}

// observe folds server progress into the session before callers see the response
func (a *App) observe(op remote.Op, resp remote.Response) {
	if resp.Reward != nil {
		a.registry.Strings.Get(status.KeyLastReward).Store(resp.Reward.StringFixed(2))
	}
	// Start responses are applied after the session restarts
	if op == remote.OpStart {
		return
	}
	a.session.Apply(session.Update{Revealed: resp.Revealed, Reward: resp.Reward})
}

// StartRound requests a new round unless one is running; false when refused
func (a *App) StartRound() bool {
	if a.session.Started() || a.phase.InFlight() || a.clickPending() {
		a.log.Debug("start ignored, round in progress")
		return false
	}
	if !a.roundBusy.CompareAndSwap(false, true) {
		return false
	}
	a.status.Set(parameter.TextConnecting, hud.ToneNeutral)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.roundBusy.Store(false)
		a.startRound()
	}()
	return true
}

func (a *App) startRound() {
	rows, cols := a.grid.Dimensions()
	resp, err := a.remote.StartRound(a.ctx, a.cfg.Bet, rows, cols)
	if err != nil {
		a.log.Warn("round start failed", zap.Error(err))
		a.status.Failed(parameter.TextStartFail, err)
		return
	}

	multipliers := resp.Multipliers
	if len(multipliers) == 0 {
		multipliers = a.cfg.Multipliers
	}
	if err := a.grid.SetMultipliers(multipliers); err != nil {
		a.log.Warn("row multipliers ignored", zap.Error(err))
	}

	a.grid.Reset()
	a.session.Start(rows, cols, a.cfg.Bet)
	a.session.Apply(session.Update{Revealed: resp.Revealed, Reward: resp.Reward})

	current := a.session.CurrentRow()
	a.grid.ShowRowIndicators(current)
	a.grid.SetRowBackground(current, true)
	a.grid.UpdateTints(current)
	a.gate.EnableContainer()

	a.status.PickCell()
	a.registry.Inc(status.KeyRoundsStarted)
	a.log.Info("round started",
		zap.Int("rows", rows),
		zap.Int("cols", cols),
		zap.String("bet", a.cfg.Bet.String()),
	)
}

// Collect cashes out a running round between clicks; false when refused
func (a *App) Collect() bool {
	if !a.session.Started() || a.phase.InFlight() || a.clickPending() {
		a.log.Debug("collect ignored, nothing to collect")
		return false
	}
	if !a.roundBusy.CompareAndSwap(false, true) {
		return false
	}
	a.gate.DisableContainer()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		defer a.roundBusy.Store(false)
		a.collect()
	}()
	return true
}

func (a *App) collect() {
	resp, err := a.remote.Collect(a.ctx)
	if err != nil {
		a.log.Warn("collect failed", zap.Error(err))
		a.status.Failed(parameter.TextCollectFail, err)
		a.gate.EnableContainer()
		return
	}

	reward := a.session.Reward()
	if resp.Reward != nil {
		reward = *resp.Reward
	}

	a.session.Reset()
	a.grid.Reset()
	a.grid.UpdateTints(-1)
	a.gate.EnableContainer()

	a.status.Collected(reward)
	a.buttons.TemporarilyHideButtons(parameter.ButtonHideDuration)
	a.audio.Play(core.SoundGameComplete)
	a.registry.Inc(status.KeyCollects)
	a.log.Info("round collected", zap.String("reward", reward.String()))
}

// ToggleMute flips audio output and records the new state
func (a *App) ToggleMute() bool {
	muted := a.audio.ToggleMute()
	a.registry.Bools.Get(status.KeyAudioMuted).Store(muted)
	return muted
}

// Resize lays out grid, buttons and the frame buffer for a new screen size
func (a *App) Resize(w, h int) {
	gw, gh := gridArea(w, h)
	if err := a.grid.Resize(gw, gh, a.cfg.CellSize); err != nil {
		a.log.Warn("grid resize failed", zap.Error(err))
	}
	a.buttons.Layout(w, h)
	a.orch.Resize(w, h)
}

// Frame draws the current state
func (a *App) Frame() {
	a.orch.RenderFrame(a.renderContext())
}

func (a *App) renderContext() render.RenderContext {
	w, h := a.screen.Size()
	text, tone := a.status.Text()
	forward, forwarding := a.animator.Progress(hud.AnimForward)
	return render.RenderContext{
		Now:          a.clock.Now(),
		ScreenWidth:  w,
		ScreenHeight: h,
		Grid:         a.grid.Snapshot(),
		Started:      a.session.Started(),
		CurrentRow:   a.session.CurrentRow(),
		Buttons:      a.buttons.Views(),
		Status:       text,
		Tone:         tone,
		Muted:        a.audio.IsMuted(),
		Forwarding:   forwarding,
		Forward:      forward,
	}
}

// silent stands in when no audio service is wired
type silent struct{}

func (silent) Play(core.SoundType) {}
func (silent) ToggleMute() bool    { return true }
func (silent) IsMuted() bool       { return true }
