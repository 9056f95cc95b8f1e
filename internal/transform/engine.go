package transform

import (
	"math"

	"github.com/alexiusacademia/steelcct/internal/alloy"
	"github.com/alexiusacademia/steelcct/internal/kinetics"
	"github.com/alexiusacademia/steelcct/internal/logging"
	"github.com/sirupsen/logrus"
)

// maxSegmentSteps bounds the subdivision of a single cycle segment
const maxSegmentSteps = 1_000_000

// Settings controls the discretisation of the additivity integration
type Settings struct {
	MaxTempStep     float64 // largest temperature change per step (°C)
	MinSegmentSteps int     // minimum steps per cycle segment, resolves holds
	Workers         int     // concurrent runs in a sweep (0 = one per CPU)
	MinAustenite    float64 // start crossings are recorded only above this austenite fraction
}

// DefaultSettings returns the integration settings used by the CLI
func DefaultSettings() Settings {
	return Settings{
		MaxTempStep:     1.0,
		MinSegmentSteps: 100,
		Workers:         0,
		MinAustenite:    0.01,
	}
}

func (s Settings) normalized() Settings {
	d := DefaultSettings()
	if !(s.MaxTempStep > 0) {
		s.MaxTempStep = d.MaxTempStep
	}
	if s.MinSegmentSteps < 1 {
		s.MinSegmentSteps = 1
	}
	if s.Workers < 0 {
		s.Workers = 0
	}
	if s.MinAustenite < 0 {
		s.MinAustenite = 0
	}
	return s
}

// Engine converts isothermal kinetics into behaviour along thermal paths.
// It holds no mutable state and can be shared between goroutines.
type Engine struct {
	model    *kinetics.Model
	settings Settings
	log      logrus.FieldLogger
}

// Option configures an Engine
type Option func(*Engine)

// WithSettings overrides the integration settings
func WithSettings(s Settings) Option {
	return func(e *Engine) {
		e.settings = s.normalized()
	}
}

// WithLogger sets the logger used for sweep progress
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// NewEngine builds the kinetics of the alloy and returns an engine for it
func NewEngine(a *alloy.Alloy, opts ...Option) *Engine {
	e := &Engine{
		model:    kinetics.New(a),
		settings: DefaultSettings(),
		log:      logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Model returns the kinetics model
func (e *Engine) Model() *kinetics.Model { return e.model }

// Alloy returns the alloy the engine was built for
func (e *Engine) Alloy() *alloy.Alloy { return e.model.Alloy() }

// Settings returns the integration settings
func (e *Engine) Settings() Settings { return e.settings }

// steps returns the number of integration steps for a segment
func (e *Engine) steps(T0, T1 float64) int {
	n := e.settings.MinSegmentSteps
	dT := T1 - T0
	if dT < 0 {
		dT = -dT
	}
	byTemp := dT / e.settings.MaxTempStep
	if byTemp > maxSegmentSteps {
		return maxSegmentSteps
	}
	if m := int(math.Ceil(byTemp)); m > n {
		n = m
	}
	return n
}
