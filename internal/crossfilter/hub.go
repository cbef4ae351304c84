package crossfilter

import (
	"time"

	"go.uber.org/zap"

	"github.com/keilerkonzept/condemned-dash/internal/dataset"
)

// Frame is what a view receives on refresh.
type Frame struct {
	// Records passed the view's Honors mask.
	Records []dataset.Record
	// State is a snapshot for highlight styling; mutating it has no effect.
	State *State
	// SliderYear is the current slider position. It drives period selection for
	// views that bucket years themselves.
	SliderYear int
	// Changed lists the dimensions that triggered this refresh.
	Changed Mask
}

// View is a chart that redraws from a Frame.
type View interface {
	Refresh(Frame)
}

// ViewFunc adapts a function to View.
type ViewFunc func(Frame)

// Refresh calls f.
func (f ViewFunc) Refresh(fr Frame) { f(fr) }

// RefreshStat describes one view refresh.
type RefreshStat struct {
	View    string
	Records int
	Took    time.Duration
	Changed Mask
}

type subscription struct {
	name    string
	honors  Mask
	watches Mask
	view    View
}

// Hub owns the filter state and dispatches changes to registered views.
// Every call runs to completion synchronously; Hub is not safe for concurrent use.
type Hub struct {
	records    []dataset.Record
	state      *State
	sliderYear int
	resetYear  int
	subs       []subscription

	logger  *zap.Logger
	observe func(RefreshStat)
	now     func() time.Time
}

// Option configures a Hub.
type Option func(*Hub)

// WithLogger sets the logger. The default is a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(h *Hub) {
		if l != nil {
			h.logger = l
		}
	}
}

// WithResetYear sets the slider year applied by Reset.
func WithResetYear(year int) Option {
	return func(h *Hub) { h.resetYear = year }
}

// WithObserver receives a RefreshStat after every view refresh.
func WithObserver(fn func(RefreshStat)) Option {
	return func(h *Hub) { h.observe = fn }
}

// NewHub creates a hub over records with an unfiltered state.
func NewHub(records []dataset.Record, opts ...Option) *Hub {
	h := &Hub{
		records: records,
		state:   NewState(),
		logger:  zap.NewNop(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register adds a view. honors is applied to the view's records; the view is
// refreshed whenever a dimension in watches changes.
func (h *Hub) Register(name string, honors, watches Mask, v View) {
	h.subs = append(h.subs, subscription{name: name, honors: honors, watches: watches, view: v})
	h.logger.Debug("view registered",
		zap.String("view", name),
		zap.String("honors", honors.String()),
		zap.String("watches", watches.String()))
}

// State exposes the live state for reads. Mutate it only through the Hub.
func (h *Hub) State() *State { return h.state }

// SliderYear is the last year set through SetYear, or the reset year after Reset.
func (h *Hub) SliderYear() int { return h.sliderYear }

// Records is the full dataset.
func (h *Hub) Records() []dataset.Record { return h.records }

// Start sets the initial year window and refreshes every view.
func (h *Hub) Start(initialYear int) {
	h.state.SetYearRange(initialYear)
	h.sliderYear = initialYear
	h.notify(All)
}

// ToggleGender toggles g and refreshes views watching gender.
func (h *Hub) ToggleGender(g string) {
	h.state.ToggleGender(g)
	h.logger.Debug("toggle gender", zap.String("gender", g), zap.Bool("active", h.state.HasGender(g)))
	h.notify(MaskOf(Gender))
}

// ToggleRace toggles r and refreshes views watching race.
func (h *Hub) ToggleRace(r string) {
	h.state.ToggleRace(r)
	h.logger.Debug("toggle race", zap.String("race", r), zap.Bool("active", h.state.HasRace(r)))
	h.notify(MaskOf(Race))
}

// SetYear moves the slider to startYear, sets the year range and refreshes
// views watching year.
func (h *Hub) SetYear(startYear int) {
	h.state.SetYearRange(startYear)
	h.sliderYear = startYear
	h.logger.Debug("set year", zap.Int("start", startYear))
	h.notify(MaskOf(Year))
}

// Reset clears every filter, moves the slider to the reset year and
// refreshes every view.
func (h *Hub) Reset() {
	h.state.ResetAll()
	h.sliderYear = h.resetYear
	h.logger.Debug("reset", zap.Int("sliderYear", h.resetYear))
	h.notify(All)
}

func (h *Hub) notify(changed Mask) {
	snapshot := h.state.Clone()
	for _, sub := range h.subs {
		if !sub.watches.Intersects(changed) {
			continue
		}
		start := h.now()
		records := ComputeView(h.records, h.state, sub.honors)
		sub.view.Refresh(Frame{
			Records:    records,
			State:      snapshot,
			SliderYear: h.sliderYear,
			Changed:    changed,
		})
		took := h.now().Sub(start)
		if h.observe != nil {
			h.observe(RefreshStat{View: sub.name, Records: len(records), Took: took, Changed: changed})
		}
		h.logger.Debug("view refreshed",
			zap.String("view", sub.name),
			zap.Int("records", len(records)),
			zap.Duration("took", took))
	}
}
