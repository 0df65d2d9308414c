// Package view holds the campaign analysis screen state machine. A
// Controller owns one session's ViewState, form fields, progress stages,
// active tab, notifications and the rendered result document. Every change
// goes through a single apply method, and every timer belongs to the
// analysis run that armed it, so callbacks from an abandoned run are no-ops.
package view

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ignite/campaign-insights/internal/config"
	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/pkg/logger"
)

var (
	// ErrClosed is returned by every operation after Close.
	ErrClosed = errors.New("view controller closed")
	// ErrUnknownTab is returned by SwitchTab for ids outside domain.Tabs.
	ErrUnknownTab = errors.New("unknown tab")
)

// Notification messages.
const (
	msgDemoLoaded     = "Demo data loaded successfully!"
	msgAnalysisDone   = "Analysis completed successfully!"
	msgAnalysisFailed = "Analysis failed. Please try again."
	msgAnalysisBusy   = "Another analysis is running for this session. Please try again shortly."
	msgFieldsRequired = "Please fill in all required fields"
)

// Source produces analysis results. See package source.
type Source interface {
	Analyze(ctx context.Context, form domain.CampaignForm) (*domain.AnalysisResult, error)
}

// Gate serializes analyses beyond a single controller. Acquire blocks or
// fails; the returned release func must be called exactly once.
type Gate interface {
	Acquire(ctx context.Context) (release func(), err error)
}

// Config holds the controller timings.
type Config struct {
	StageCount      int
	StageInterval   time.Duration
	MinDisplay      time.Duration
	NotificationTTL time.Duration
	AnalysisTimeout time.Duration
}

// DefaultConfig returns the stock timings: four stages 700ms apart, a
// 3s minimum on the analyzing screen and 3s notifications.
func DefaultConfig() Config {
	return Config{
		StageCount:      len(domain.StageNames),
		StageInterval:   700 * time.Millisecond,
		MinDisplay:      3 * time.Second,
		NotificationTTL: 3 * time.Second,
		AnalysisTimeout: 30 * time.Second,
	}
}

// ConfigFrom converts the file configuration.
func ConfigFrom(v config.ViewConfig, a config.AnalysisConfig) Config {
	return Config{
		StageCount:      v.StageCount,
		StageInterval:   v.StageInterval(),
		MinDisplay:      v.MinDisplay(),
		NotificationTTL: v.NotificationTTL(),
		AnalysisTimeout: a.Timeout(),
	}
}

// Option configures a Controller.
type Option func(*Controller)

// WithGate routes every analysis through g.
func WithGate(g Gate) Option {
	return func(c *Controller) { c.gate = g }
}

// WithName tags the controller's log lines, usually with a session id.
func WithName(name string) Option {
	return func(c *Controller) { c.name = name }
}

// Controller is safe for concurrent use.
type Controller struct {
	cfg    Config
	source Source
	gate   Gate
	name   string
	log    *logger.Logger

	mu      sync.Mutex
	st      record
	gen     uint64
	run     *run
	notes   map[string]*time.Timer
	closed  bool
	changes chan struct{}

	wg sync.WaitGroup
}

type record struct {
	state     domain.ViewState
	form      domain.RawForm
	doc       *Document
	activeTab domain.TabID
	stages    []domain.Stage
	notes     []domain.Notification
	renders   int
	updated   time.Time
}

// run is the cancellation token of one analysis. Everything it armed
// carries its generation and is ignored once the run is no longer current.
type run struct {
	gen       uint64
	ctx       context.Context
	cancel    context.CancelFunc
	timers    []*time.Timer
	started   time.Time
	floorDone bool
	result    *domain.AnalysisResult
	release   func() // gate hold; nil until acquired
}

// New creates a controller on the form screen.
func New(cfg Config, src Source, opts ...Option) *Controller {
	def := DefaultConfig()
	if cfg.StageCount <= 0 || cfg.StageCount > len(domain.StageNames) {
		cfg.StageCount = def.StageCount
	}
	if cfg.AnalysisTimeout <= 0 {
		cfg.AnalysisTimeout = def.AnalysisTimeout
	}
	if cfg.NotificationTTL <= 0 {
		cfg.NotificationTTL = def.NotificationTTL
	}

	c := &Controller{
		cfg:     cfg,
		source:  src,
		notes:   make(map[string]*time.Timer),
		changes: make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = logger.Named("view")
	c.st = record{
		state:     domain.StateForm,
		activeTab: domain.Tabs[0],
		updated:   time.Now(),
	}
	return c
}

// Submit parses and validates raw input. A valid form moves the screen to
// Analyzing and starts the progress stages, the display floor and the
// result fetch together. An invalid form lands on the form screen, dropping
// any previous results, raises one error notification and returns the
// *domain.ValidationError.
// Submitting while an analysis runs returns domain.ErrAnalysisInFlight.
func (c *Controller) Submit(raw domain.RawForm) error {
	return c.apply(submitted{raw: raw})
}

// SwitchTab activates one results tab. Tabs carry no data so any state
// accepts a switch.
func (c *Controller) SwitchTab(tab domain.TabID) error {
	return c.apply(tabSelected{tab: tab})
}

// LoadDemo fills the form with a sample campaign and returns to the form
// screen. It is refused while an analysis runs.
func (c *Controller) LoadDemo(form domain.CampaignForm) error {
	return c.apply(demoLoaded{form: form})
}

// Reset returns to an empty form. A running analysis is abandoned: its
// request is canceled and its timers become no-ops.
func (c *Controller) Reset() error {
	return c.apply(resetRequested{})
}

// Changes delivers a signal after each state change. Signals coalesce; the
// channel is closed by Close.
func (c *Controller) Changes() <-chan struct{} {
	return c.changes
}

// Close cancels the running analysis, stops every timer and waits for
// callbacks already in flight. It is idempotent.
func (c *Controller) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.stopRunLocked()
	for id, t := range c.notes {
		c.stopTimer(t)
		delete(c.notes, id)
	}
	close(c.changes)
	c.mu.Unlock()

	c.wg.Wait()
}

// Events accepted by apply.
type (
	event interface{ isEvent() }

	submitted      struct{ raw domain.RawForm }
	tabSelected    struct{ tab domain.TabID }
	demoLoaded     struct{ form domain.CampaignForm }
	resetRequested struct{}
	stageElapsed   struct {
		gen   uint64
		index int
	}
	floorElapsed  struct{ gen uint64 }
	resultArrived struct {
		gen    uint64
		result *domain.AnalysisResult
		err    error
	}
	noticeExpired struct{ id string }
)

func (submitted) isEvent()      {}
func (tabSelected) isEvent()    {}
func (demoLoaded) isEvent()     {}
func (resetRequested) isEvent() {}
func (stageElapsed) isEvent()   {}
func (floorElapsed) isEvent()   {}
func (resultArrived) isEvent()  {}
func (noticeExpired) isEvent()  {}

// apply is the only place state changes.
func (c *Controller) apply(ev event) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	changed, err := c.reduceLocked(ev)
	if changed {
		c.st.updated = time.Now()
		select {
		case c.changes <- struct{}{}:
		default:
		}
	}
	return err
}

func (c *Controller) reduceLocked(ev event) (bool, error) {
	switch ev := ev.(type) {
	case submitted:
		return c.onSubmitLocked(ev)

	case tabSelected:
		if !ev.tab.Valid() {
			return false, fmt.Errorf("%w: %q", ErrUnknownTab, ev.tab)
		}
		c.st.activeTab = ev.tab
		return true, nil

	case demoLoaded:
		if c.st.state == domain.StateAnalyzing {
			return false, domain.ErrAnalysisInFlight
		}
		c.st.form = ev.form.Raw()
		c.toFormLocked()
		c.notifyLocked(domain.NotifySuccess, msgDemoLoaded)
		return true, nil

	case resetRequested:
		if c.run != nil {
			c.log.Info("analysis abandoned", "controller", c.name, "generation", c.run.gen)
		}
		c.st.form = domain.RawForm{}
		c.toFormLocked()
		return true, nil

	case stageElapsed:
		if !c.currentLocked(ev.gen) {
			return false, nil
		}
		// Marking every earlier stage keeps completion ordered even if two
		// timers fire back to back.
		for i := 0; i < ev.index && i < len(c.st.stages); i++ {
			c.st.stages[i].Complete = true
		}
		return true, nil

	case floorElapsed:
		if !c.currentLocked(ev.gen) {
			return false, nil
		}
		c.run.floorDone = true
		return c.maybeFinishLocked(), nil

	case resultArrived:
		if !c.currentLocked(ev.gen) {
			return false, nil
		}
		if ev.err != nil {
			c.failLocked(ev.err)
			return true, nil
		}
		c.run.result = ev.result
		return c.maybeFinishLocked(), nil

	case noticeExpired:
		delete(c.notes, ev.id)
		for i, n := range c.st.notes {
			if n.ID == ev.id {
				c.st.notes = append(c.st.notes[:i:i], c.st.notes[i+1:]...)
				return true, nil
			}
		}
		return false, nil

	default:
		panic(fmt.Sprintf("view: unhandled event %T", ev))
	}
}

func (c *Controller) onSubmitLocked(ev submitted) (bool, error) {
	if c.st.state == domain.StateAnalyzing {
		return false, domain.ErrAnalysisInFlight
	}

	form, err := ev.raw.Parse()
	if err != nil {
		if c.st.state == domain.StateResults {
			c.toFormLocked()
		}
		c.st.form = ev.raw
		c.notifyLocked(domain.NotifyError, msgFieldsRequired)
		return true, err
	}

	c.st.form = ev.raw
	c.st.state = domain.StateAnalyzing
	c.st.doc = nil
	c.st.stages = freshStages(c.cfg.StageCount)
	c.startRunLocked(form)
	return true, nil
}

func (c *Controller) currentLocked(gen uint64) bool {
	return c.run != nil && c.run.gen == gen
}

// startRunLocked arms the stage timers, the display floor and the fetch.
func (c *Controller) startRunLocked(form domain.CampaignForm) {
	c.gen++
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.AnalysisTimeout)
	r := &run{gen: c.gen, ctx: ctx, cancel: cancel, started: time.Now()}
	c.run = r

	for i := 1; i <= c.cfg.StageCount; i++ {
		r.timers = append(r.timers, c.afterLocked(time.Duration(i)*c.cfg.StageInterval, stageElapsed{gen: r.gen, index: i}))
	}
	r.timers = append(r.timers, c.afterLocked(c.cfg.MinDisplay, floorElapsed{gen: r.gen}))

	c.log.Info("analysis started",
		"controller", c.name,
		"generation", r.gen,
		"campaign", form.CampaignName,
		"platform", form.Platform,
	)

	c.wg.Add(1)
	go c.fetch(r, form)
}

func (c *Controller) fetch(r *run, form domain.CampaignForm) {
	defer c.wg.Done()

	if c.gate != nil {
		release, err := c.gate.Acquire(r.ctx)
		if err != nil {
			_ = c.apply(resultArrived{gen: r.gen, err: err})
			return
		}
		release = sync.OnceFunc(release)
		defer release()
		if !c.holdGate(r, release) {
			return
		}
	}

	res, err := c.source.Analyze(r.ctx, form)
	if err == nil && res == nil {
		err = &domain.TransportError{Op: "analyze", Err: errors.New("empty result")}
	}
	_ = c.apply(resultArrived{gen: r.gen, result: res, err: err})
}

// holdGate hands the gate to the run so that abandoning the run frees the
// gate at once, even while the source is still unwinding. It reports false
// when the run was already abandoned.
func (c *Controller) holdGate(r *run, release func()) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.run != r {
		return false
	}
	r.release = release
	return true
}

// maybeFinishLocked enters Results once both the result and the display
// floor are in. The document is rendered before any state is touched.
func (c *Controller) maybeFinishLocked() bool {
	r := c.run
	if !r.floorDone || r.result == nil {
		return false
	}

	doc := Render(r.result)
	elapsed := time.Since(r.started)

	c.st.doc = doc
	c.st.renders++
	c.st.state = domain.StateResults
	for i := range c.st.stages {
		c.st.stages[i].Complete = true
	}
	c.stopRunLocked()
	c.notifyLocked(domain.NotifySuccess, msgAnalysisDone)

	c.log.Info("analysis rendered",
		"controller", c.name,
		"generation", r.gen,
		"campaign", doc.CampaignName,
		"elapsed_ms", elapsed.Milliseconds(),
	)
	return true
}

// failLocked returns to the form without waiting for the display floor.
func (c *Controller) failLocked(err error) {
	gen := c.run.gen
	c.toFormLocked()

	msg := msgAnalysisFailed
	if errors.Is(err, domain.ErrAnalysisInFlight) {
		msg = msgAnalysisBusy
	}
	c.notifyLocked(domain.NotifyError, msg)
	c.log.Error("analysis failed", "controller", c.name, "generation", gen, "error", err)
}

func (c *Controller) toFormLocked() {
	c.stopRunLocked()
	c.st.state = domain.StateForm
	c.st.doc = nil
	c.st.stages = nil
}

// stopRunLocked invalidates the current run. Callbacks that already fired
// find a different generation and do nothing.
func (c *Controller) stopRunLocked() {
	r := c.run
	if r == nil {
		return
	}
	c.run = nil
	r.cancel()
	for _, t := range r.timers {
		c.stopTimer(t)
	}
	if r.release != nil {
		r.release()
	}
}

func (c *Controller) notifyLocked(kind domain.NotificationKind, msg string) {
	n := domain.Notification{
		ID:        uuid.NewString(),
		Kind:      kind,
		Message:   msg,
		CreatedAt: time.Now(),
	}
	c.st.notes = append(c.st.notes, n)
	c.notes[n.ID] = c.afterLocked(c.cfg.NotificationTTL, noticeExpired{id: n.ID})
}

// afterLocked schedules ev. The wait group covers the callback until it
// either runs or is stopped.
func (c *Controller) afterLocked(d time.Duration, ev event) *time.Timer {
	c.wg.Add(1)
	return time.AfterFunc(d, func() {
		defer c.wg.Done()
		_ = c.apply(ev)
	})
}

func (c *Controller) stopTimer(t *time.Timer) {
	if t.Stop() {
		c.wg.Done()
	}
}

func freshStages(n int) []domain.Stage {
	stages := make([]domain.Stage, n)
	for i := range stages {
		stages[i] = domain.Stage{Index: i + 1, Name: domain.StageNames[i]}
	}
	return stages
}
