package view

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/ignite/campaign-insights/internal/domain"
	"github.com/ignite/campaign-insights/internal/source"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeSource answers with the demo payload. When gate is set, each call
// waits for a value on it or for cancellation.
type fakeSource struct {
	calls    int32
	gate     chan struct{}
	err      error
	canceled chan struct{}
}

func (f *fakeSource) Analyze(ctx context.Context, form domain.CampaignForm) (*domain.AnalysisResult, error) {
	atomic.AddInt32(&f.calls, 1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			if f.canceled != nil {
				close(f.canceled)
			}
			return nil, &domain.TransportError{Op: "fake", Err: ctx.Err()}
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	res := source.DemoResult()
	res.CampaignName = form.CampaignName
	return res, nil
}

func validRaw() domain.RawForm {
	return domain.RawForm{
		CampaignName:   "Summer Product Launch 2025",
		Platform:       "Facebook",
		Budget:         "50000",
		TargetAudience: "Tech-savvy millennials aged 25-35",
		Industry:       "Technology",
		Objectives:     []string{"Brand Awareness", "Lead Generation"},
	}
}

func fastConfig() Config {
	return Config{
		StageCount:      4,
		StageInterval:   10 * time.Millisecond,
		MinDisplay:      80 * time.Millisecond,
		NotificationTTL: time.Hour,
		AnalysisTimeout: 5 * time.Second,
	}
}

func newController(t *testing.T, cfg Config, src Source, opts ...Option) *Controller {
	t.Helper()
	c := New(cfg, src, opts...)
	t.Cleanup(c.Close)
	return c
}

func waitState(t *testing.T, c *Controller, want domain.ViewState) Snapshot {
	t.Helper()
	require.Eventually(t, func() bool {
		return c.Snapshot().State == want
	}, 2*time.Second, 5*time.Millisecond, "never reached %s", want)
	return c.Snapshot()
}

func messages(s Snapshot) []string {
	out := make([]string, 0, len(s.Notifications))
	for _, n := range s.Notifications {
		out = append(out, n.Message)
	}
	return out
}

func TestNewStartsOnForm(t *testing.T) {
	c := newController(t, fastConfig(), &fakeSource{})
	s := c.Snapshot()

	assert.Equal(t, domain.StateForm, s.State)
	assert.Equal(t, PanelForm, s.VisiblePanel())
	assert.Equal(t, domain.TabAudience, s.ActiveTab)
	assert.Nil(t, s.Document)
	assert.Empty(t, s.Stages)
}

func TestSubmitInvalidFormStaysOnForm(t *testing.T) {
	src := &fakeSource{}
	c := newController(t, fastConfig(), src)

	raw := validRaw()
	raw.Budget = ""
	err := c.Submit(raw)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	var verr *domain.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, domain.FieldBudget, verr.Field)

	s := c.Snapshot()
	assert.Equal(t, domain.StateForm, s.State)
	assert.Empty(t, s.Stages)
	require.Len(t, s.Notifications, 1)
	assert.Equal(t, domain.NotifyError, s.Notifications[0].Kind)
	assert.Equal(t, "", s.Form.Budget, "typed values are kept")
	assert.Equal(t, raw.CampaignName, s.Form.CampaignName)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), atomic.LoadInt32(&src.calls))
}

func TestSubmitWaitsForDisplayFloor(t *testing.T) {
	cfg := fastConfig()
	cfg.MinDisplay = 150 * time.Millisecond
	c := newController(t, cfg, &fakeSource{})

	start := time.Now()
	require.NoError(t, c.Submit(validRaw()))

	s := c.Snapshot()
	assert.Equal(t, domain.StateAnalyzing, s.State)
	assert.Equal(t, PanelStatus, s.VisiblePanel())
	require.Len(t, s.Stages, 4)
	assert.Equal(t, 0, s.CompletedStages())

	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, domain.StateAnalyzing, c.Snapshot().State, "result is in but the floor has not elapsed")

	s = waitState(t, c, domain.StateResults)
	assert.GreaterOrEqual(t, time.Since(start), cfg.MinDisplay)
	assert.Equal(t, PanelResults, s.VisiblePanel())
	assert.Equal(t, 1, s.Renders)
	assert.Equal(t, 4, s.CompletedStages())
	require.NotNil(t, s.Document)
	assert.Equal(t, "Summer Product Launch 2025", s.Document.CampaignName)
	assert.Contains(t, messages(s), msgAnalysisDone)
}

func TestSlowSourceKeepsAnalyzingPastFloor(t *testing.T) {
	src := &fakeSource{gate: make(chan struct{})}
	c := newController(t, fastConfig(), src)

	require.NoError(t, c.Submit(validRaw()))
	require.Eventually(t, func() bool {
		return c.Snapshot().CompletedStages() == 4
	}, time.Second, 5*time.Millisecond)

	time.Sleep(2 * fastConfig().MinDisplay)
	assert.Equal(t, domain.StateAnalyzing, c.Snapshot().State)

	close(src.gate)
	s := waitState(t, c, domain.StateResults)
	assert.Equal(t, 1, s.Renders)
}

func TestStagesCompleteInOrder(t *testing.T) {
	cfg := fastConfig()
	cfg.StageInterval = 15 * time.Millisecond
	src := &fakeSource{gate: make(chan struct{})}
	c := newController(t, cfg, src)

	require.NoError(t, c.Submit(validRaw()))

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		s := c.Snapshot()
		done := s.CompletedStages()
		for i, st := range s.Stages {
			assert.Equal(t, i < done, st.Complete, "stage %d out of order", st.Index)
		}
		if done == len(s.Stages) {
			break
		}
		time.Sleep(2 * time.Millisecond)
	}
	assert.Equal(t, 4, c.Snapshot().CompletedStages())
	close(src.gate)
}

func TestTransportFailureReturnsToFormWithoutWaiting(t *testing.T) {
	cfg := fastConfig()
	cfg.MinDisplay = time.Hour
	src := &fakeSource{err: &domain.TransportError{Op: "POST /api/analyze-campaign", StatusCode: 500}}
	c := newController(t, cfg, src)

	require.NoError(t, c.Submit(validRaw()))
	s := waitState(t, c, domain.StateForm)

	assert.Nil(t, s.Document)
	assert.Empty(t, s.Stages)
	assert.Equal(t, 0, s.Renders)
	var errs []string
	for _, n := range s.Notifications {
		if n.Kind == domain.NotifyError {
			errs = append(errs, n.Message)
		}
	}
	assert.Equal(t, []string{msgAnalysisFailed}, errs)
	assert.Equal(t, validRaw().CampaignName, s.Form.CampaignName, "form keeps the submitted values")

	// The form accepts a new submission right away.
	src.err = nil
	require.NoError(t, c.Submit(validRaw()))
}

func TestSubmitWhileAnalyzingIsRejected(t *testing.T) {
	src := &fakeSource{gate: make(chan struct{})}
	c := newController(t, fastConfig(), src)

	require.NoError(t, c.Submit(validRaw()))
	require.Eventually(t, func() bool { return atomic.LoadInt32(&src.calls) == 1 }, time.Second, time.Millisecond)

	err := c.Submit(validRaw())
	assert.ErrorIs(t, err, domain.ErrAnalysisInFlight)
	assert.ErrorIs(t, c.LoadDemo(domain.CampaignForm{CampaignName: "x"}), domain.ErrAnalysisInFlight)

	close(src.gate)
	s := waitState(t, c, domain.StateResults)
	assert.Equal(t, 1, s.Renders)
	assert.Equal(t, int32(1), atomic.LoadInt32(&src.calls))
}

func TestResetAbandonsRunningAnalysis(t *testing.T) {
	src := &fakeSource{gate: make(chan struct{}), canceled: make(chan struct{})}
	c := newController(t, fastConfig(), src)

	require.NoError(t, c.Submit(validRaw()))
	require.NoError(t, c.Reset())

	select {
	case <-src.canceled:
	case <-time.After(time.Second):
		t.Fatal("request was not canceled")
	}

	// Let every timer of the abandoned run fire.
	time.Sleep(2 * fastConfig().MinDisplay)

	s := c.Snapshot()
	assert.Equal(t, domain.StateForm, s.State)
	assert.Empty(t, s.Stages)
	assert.Equal(t, 0, s.Renders)
	assert.Equal(t, domain.RawForm{}, s.Form)
	assert.NotContains(t, messages(s), msgAnalysisFailed, "canceled run reports nothing")
}

func TestStaleCallbacksAreIgnored(t *testing.T) {
	c := newController(t, fastConfig(), &fakeSource{})

	require.NoError(t, c.Submit(validRaw()))
	waitState(t, c, domain.StateResults)
	before := c.Snapshot()

	require.NoError(t, c.apply(stageElapsed{gen: 1, index: 1}))
	require.NoError(t, c.apply(floorElapsed{gen: 1}))
	require.NoError(t, c.apply(resultArrived{gen: 1, err: errors.New("late")}))
	require.NoError(t, c.apply(resultArrived{gen: 99, result: source.DemoResult()}))

	after := c.Snapshot()
	assert.Equal(t, domain.StateResults, after.State)
	assert.Equal(t, before.Renders, after.Renders)
	assert.Same(t, before.Document, after.Document)
}

func TestResubmitFromResults(t *testing.T) {
	c := newController(t, fastConfig(), &fakeSource{})

	require.NoError(t, c.Submit(validRaw()))
	first := waitState(t, c, domain.StateResults)

	raw := validRaw()
	raw.CampaignName = "Holiday Sales Campaign"
	require.NoError(t, c.Submit(raw))
	s := c.Snapshot()
	assert.Equal(t, domain.StateAnalyzing, s.State)
	assert.Nil(t, s.Document, "old results are cleared while analyzing")

	s = waitState(t, c, domain.StateResults)
	assert.Equal(t, 2, s.Renders)
	assert.NotSame(t, first.Document, s.Document)
	assert.Equal(t, "Holiday Sales Campaign", s.Document.CampaignName)
}

func TestSwitchTab(t *testing.T) {
	c := newController(t, fastConfig(), &fakeSource{})

	for _, tab := range domain.Tabs {
		require.NoError(t, c.SwitchTab(tab))
		s := c.Snapshot()
		active := 0
		for _, tv := range s.Tabs() {
			if tv.Active {
				active++
				assert.Equal(t, tab, tv.ID)
				assert.Equal(t, string(tab)+"-tab", tv.PanelID)
			}
		}
		assert.Equal(t, 1, active)
	}

	err := c.SwitchTab("pricing")
	assert.ErrorIs(t, err, ErrUnknownTab)
	assert.Equal(t, domain.TabTrends, c.Snapshot().ActiveTab)
}

func TestLoadDemoFillsForm(t *testing.T) {
	c := newController(t, fastConfig(), &fakeSource{})

	demo := domain.CampaignForm{
		CampaignName:   "Holiday Sales Campaign",
		Platform:       "Google Ads",
		Budget:         250000,
		TargetAudience: "Families with children aged 5-15",
		Industry:       "E-commerce",
		Objectives:     []string{"Sales"},
	}
	require.NoError(t, c.LoadDemo(demo))

	s := c.Snapshot()
	assert.Equal(t, domain.StateForm, s.State)
	assert.Equal(t, "250000", s.Form.Budget)
	assert.Equal(t, []string{"Sales"}, s.Form.Objectives)
	assert.Equal(t, []string{msgDemoLoaded}, messages(s))

	// The loaded form submits as-is.
	require.NoError(t, c.Submit(s.Form))
}

func TestNotificationsExpire(t *testing.T) {
	cfg := fastConfig()
	cfg.NotificationTTL = 30 * time.Millisecond
	c := newController(t, cfg, &fakeSource{})

	_ = c.Submit(domain.RawForm{})
	require.Len(t, c.Snapshot().Notifications, 1)

	require.Eventually(t, func() bool {
		return len(c.Snapshot().Notifications) == 0
	}, time.Second, 5*time.Millisecond)
}

func TestChangesSignal(t *testing.T) {
	c := New(fastConfig(), &fakeSource{})

	require.NoError(t, c.SwitchTab(domain.TabCreative))
	select {
	case <-c.Changes():
	case <-time.After(time.Second):
		t.Fatal("no change signal")
	}

	c.Close()
	_, open := <-c.Changes()
	assert.False(t, open)
}

func TestCloseCancelsAndRejects(t *testing.T) {
	src := &fakeSource{gate: make(chan struct{}), canceled: make(chan struct{})}
	c := New(fastConfig(), src)

	require.NoError(t, c.Submit(validRaw()))
	c.Close()
	c.Close()

	select {
	case <-src.canceled:
	default:
		t.Fatal("close returned before the request was canceled")
	}
	assert.ErrorIs(t, c.Submit(validRaw()), ErrClosed)
	assert.ErrorIs(t, c.SwitchTab(domain.TabTrends), ErrClosed)
}

type fakeGate struct {
	mu       sync.Mutex
	err      error
	acquired int
	released int
}

func (g *fakeGate) Acquire(ctx context.Context) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.err != nil {
		return nil, g.err
	}
	g.acquired++
	return func() {
		g.mu.Lock()
		g.released++
		g.mu.Unlock()
	}, nil
}

func TestGateWrapsEveryAnalysis(t *testing.T) {
	g := &fakeGate{}
	c := newController(t, fastConfig(), &fakeSource{}, WithGate(g), WithName("test"))

	require.NoError(t, c.Submit(validRaw()))
	waitState(t, c, domain.StateResults)

	require.Eventually(t, func() bool {
		g.mu.Lock()
		defer g.mu.Unlock()
		return g.released == 1
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, g.acquired)
}

func TestGateRefusalReturnsToForm(t *testing.T) {
	g := &fakeGate{err: domain.ErrAnalysisInFlight}
	src := &fakeSource{}
	c := newController(t, fastConfig(), src, WithGate(g))

	require.NoError(t, c.Submit(validRaw()))
	s := waitState(t, c, domain.StateForm)

	assert.Contains(t, messages(s), msgAnalysisBusy)
	assert.Equal(t, int32(0), atomic.LoadInt32(&src.calls))
}

func TestNewAppliesDefaults(t *testing.T) {
	c := New(Config{StageCount: 9}, &fakeSource{})
	defer c.Close()

	assert.Equal(t, len(domain.StageNames), c.cfg.StageCount)
	assert.Equal(t, DefaultConfig().AnalysisTimeout, c.cfg.AnalysisTimeout)
	assert.Equal(t, DefaultConfig().NotificationTTL, c.cfg.NotificationTTL)
}

func TestInvalidSubmitFromResultsReturnsToForm(t *testing.T) {
	c := newController(t, fastConfig(), &fakeSource{})
	require.NoError(t, c.Submit(validRaw()))
	waitState(t, c, domain.StateResults)

	bad := validRaw()
	bad.Budget = "-5"
	err := c.Submit(bad)
	require.ErrorIs(t, err, domain.ErrValidation)

	s := c.Snapshot()
	assert.Equal(t, domain.StateForm, s.State)
	assert.Nil(t, s.Document)
	assert.Equal(t, "-5", s.Form.Budget)
	assert.Equal(t, msgFieldsRequired, s.Notifications[len(s.Notifications)-1].Message)
}

// lockGate admits one holder at a time, like the session lock.
type lockGate struct {
	mu   sync.Mutex
	held bool
}

func (g *lockGate) Acquire(ctx context.Context) (func(), error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.held {
		return nil, domain.ErrAnalysisInFlight
	}
	g.held = true
	return func() {
		g.mu.Lock()
		g.held = false
		g.mu.Unlock()
	}, nil
}

// slowUnwindSource blocks its first call until canceled and then takes a
// while to return, as a real HTTP exchange does.
type slowUnwindSource struct {
	calls int32
}

func (s *slowUnwindSource) Analyze(ctx context.Context, form domain.CampaignForm) (*domain.AnalysisResult, error) {
	if atomic.AddInt32(&s.calls, 1) == 1 {
		<-ctx.Done()
		time.Sleep(100 * time.Millisecond)
		return nil, ctx.Err()
	}
	return source.DemoResult(), nil
}

func TestResetFreesGateBeforeSourceReturns(t *testing.T) {
	src := &slowUnwindSource{}
	c := newController(t, fastConfig(), src, WithGate(&lockGate{}))

	require.NoError(t, c.Submit(validRaw()))
	require.Eventually(t, func() bool { return atomic.LoadInt32(&src.calls) == 1 }, time.Second, time.Millisecond)

	require.NoError(t, c.Reset())
	require.NoError(t, c.Submit(validRaw()))

	s := waitState(t, c, domain.StateResults)
	assert.NotContains(t, messages(s), msgAnalysisBusy)
	assert.Equal(t, int32(2), atomic.LoadInt32(&src.calls))
}
