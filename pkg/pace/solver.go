package pace

import (
	"errors"
	"fmt"
	"math"

	"github.com/aarondl/opt/omit"

	"github.com/mpapenbr/triathlon-pacer/pkg/model"
)

type (
	// DisciplineInput holds the parsed values of a discipline.
	// A value counts as present if it is set and greater than zero.
	DisciplineInput struct {
		Distance    omit.Val[float64] // meters
		Duration    omit.Val[int]     // seconds
		PaceOrSpeed omit.Val[float64] // sec per unit distance (swim, run) or km/h (bike)
	}

	// Field identifies one of the three values of a discipline
	Field int

	// Result of a solver run. Text holds the values to display, the numeric
	// values are derived from Text.
	Result struct {
		Discipline  model.Discipline     `json:"discipline"`
		Text        model.DisciplineText `json:"text"`
		DistanceM   float64              `json:"distanceM"`
		DurationS   int                  `json:"durationS"`
		PaceOrSpeed float64              `json:"paceOrSpeed"`
		Computed    Field                `json:"computed"`
		Err         error                `json:"-"`
	}

	SolveError struct {
		Discipline model.Discipline
		Kind       error
	}

	Option       func(*solverConfig)
	solverConfig struct {
		speedCap float64
	}

	// leg encapsulates the unit conventions of a discipline
	leg interface {
		paceOrSpeed(distance, duration float64) (float64, bool)
		duration(distance, paceOrSpeed float64) (float64, bool)
		distance(duration, paceOrSpeed float64) (float64, bool)
		formatPaceOrSpeed(v float64) string
		parsePaceOrSpeed(text string) omit.Val[float64]
		// value used for the numeric side channel, must not clamp
		reparsePaceOrSpeed(text string) float64
		paceOrSpeedLabel() string
	}
	pacedLeg struct {
		unit float64 // meters the pace refers to
	}
	speedLeg struct {
		speedCap float64
	}
)

const (
	FieldNone Field = iota
	FieldDistance
	FieldDuration
	FieldPaceOrSpeed
)

var (
	ErrTooManyFields     = errors.New("too many fields")
	ErrInsufficientData  = errors.New("insufficient data")
	ErrUnknownDiscipline = errors.New("unknown discipline")
)

var (
	_ leg = (*pacedLeg)(nil)
	_ leg = (*speedLeg)(nil)
)

func WithSpeedCap(speedCap float64) Option {
	return func(cfg *solverConfig) {
		if speedCap > 0 {
			cfg.speedCap = speedCap
		}
	}
}

func newSolverConfig(opts ...Option) *solverConfig {
	cfg := &solverConfig{speedCap: DefaultSpeedCap}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

func (f Field) String() string {
	switch f {
	case FieldDistance:
		return "distance"
	case FieldDuration:
		return "time"
	case FieldPaceOrSpeed:
		return "paceOrSpeed"
	default:
		return "none"
	}
}

func (f Field) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Field) UnmarshalText(text []byte) error {
	for _, candidate := range []Field{FieldDistance, FieldDuration, FieldPaceOrSpeed} {
		if candidate.String() == string(text) {
			*f = candidate
			return nil
		}
	}
	*f = FieldNone
	return nil
}

func (e *SolveError) Error() string {
	var l leg
	if e.Discipline == model.Bike {
		l = &speedLeg{}
	} else {
		l = &pacedLeg{}
	}
	switch {
	case errors.Is(e.Kind, ErrTooManyFields):
		return fmt.Sprintf("%s: enter only two of distance, time and %s",
			e.Discipline.Label(), l.paceOrSpeedLabel())
	case errors.Is(e.Kind, ErrInsufficientData):
		return fmt.Sprintf("%s: enter two of distance, time and %s",
			e.Discipline.Label(), l.paceOrSpeedLabel())
	default:
		return fmt.Sprintf("%s: %v", e.Discipline.Label(), e.Kind)
	}
}

func (e *SolveError) Unwrap() error { return e.Kind }

func legFor(d model.Discipline, cfg *solverConfig) (leg, error) {
	switch d {
	case model.Swim:
		return &pacedLeg{unit: 100}, nil
	case model.Run:
		return &pacedLeg{unit: 1000}, nil
	case model.Bike:
		return &speedLeg{speedCap: cfg.speedCap}, nil
	default:
		return nil, ErrUnknownDiscipline
	}
}

// ParseInput converts the raw text of a discipline into a DisciplineInput
func ParseInput(d model.Discipline, text model.DisciplineText, opts ...Option) (
	DisciplineInput, error,
) {
	l, err := legFor(d, newSolverConfig(opts...))
	if err != nil {
		return DisciplineInput{}, err
	}
	return DisciplineInput{
		Distance:    ParseDistance(text.Distance),
		Duration:    DurationFromText(text.Time),
		PaceOrSpeed: l.parsePaceOrSpeed(text.PaceOrSpeed),
	}, nil
}

// SolveText parses the text of a discipline and solves it.
// If nothing can be derived the text is returned unchanged.
func SolveText(d model.Discipline, text model.DisciplineText, opts ...Option) *Result {
	in, err := ParseInput(d, text, opts...)
	if err != nil {
		return &Result{Discipline: d, Text: text, Err: &SolveError{Discipline: d, Kind: err}}
	}
	ret := Solve(d, in, opts...)
	if ret.Computed == FieldNone {
		ret.Text = text
	}
	return ret
}

// Solve derives the missing value of a discipline from the other two.
//
//nolint:funlen // three derivations per leg
func Solve(d model.Discipline, in DisciplineInput, opts ...Option) *Result {
	ret := &Result{Discipline: d}
	l, err := legFor(d, newSolverConfig(opts...))
	if err != nil {
		ret.Err = &SolveError{Discipline: d, Kind: err}
		return ret
	}

	distance, hasDistance := present(in.Distance)
	durationInt, hasDuration := present(in.Duration)
	duration := float64(durationInt)
	paceOrSpeed, hasPaceOrSpeed := present(in.PaceOrSpeed)

	count := 0
	for _, b := range []bool{hasDistance, hasDuration, hasPaceOrSpeed} {
		if b {
			count++
		}
	}
	switch {
	case count > 2:
		ret.Err = &SolveError{Discipline: d, Kind: ErrTooManyFields}
	case count == 1:
		ret.Err = &SolveError{Discipline: d, Kind: ErrInsufficientData}
	}
	if count != 2 {
		ret.DistanceM = in.Distance.GetOr(0)
		ret.DurationS = in.Duration.GetOr(0)
		ret.PaceOrSpeed = in.PaceOrSpeed.GetOr(0)
		ret.Text = model.DisciplineText{
			Distance:    formatIfPresent(distance, hasDistance, FormatDistance),
			Time:        formatIfPresent(duration, hasDuration, FormatDuration),
			PaceOrSpeed: formatIfPresent(paceOrSpeed, hasPaceOrSpeed, l.formatPaceOrSpeed),
		}
		return ret
	}

	var derived float64
	var ok bool
	switch {
	case !hasPaceOrSpeed:
		ret.Computed = FieldPaceOrSpeed
		derived, ok = l.paceOrSpeed(distance, duration)
		if ok {
			paceOrSpeed = derived
		}
	case !hasDuration:
		ret.Computed = FieldDuration
		derived, ok = l.duration(distance, paceOrSpeed)
		if ok {
			duration = derived
		}
	case !hasDistance:
		ret.Computed = FieldDistance
		derived, ok = l.distance(duration, paceOrSpeed)
		if ok {
			distance = derived
		}
	}

	ret.Text = model.DisciplineText{
		Distance:    formatIfPresent(distance, ok || ret.Computed != FieldDistance, FormatDistance),
		Time:        formatIfPresent(duration, ok || ret.Computed != FieldDuration, FormatDuration),
		PaceOrSpeed: formatIfPresent(paceOrSpeed, ok || ret.Computed != FieldPaceOrSpeed, l.formatPaceOrSpeed),
	}
	// numeric values are taken from what is displayed
	if v, ok := parseDecimal(ret.Text.Distance); ok {
		ret.DistanceM = v.InexactFloat64()
	}
	if v, ok := parseClock(ret.Text.Time); ok {
		ret.DurationS = v
	}
	ret.PaceOrSpeed = l.reparsePaceOrSpeed(ret.Text.PaceOrSpeed)
	if !ok || ret.value(ret.Computed) <= 0 {
		// a derived value rounding to zero stays unset
		ret.unset(ret.Computed)
		ret.Computed = FieldNone
	}
	return ret
}

func (r *Result) value(f Field) float64 {
	switch f {
	case FieldDistance:
		return r.DistanceM
	case FieldDuration:
		return float64(r.DurationS)
	case FieldPaceOrSpeed:
		return r.PaceOrSpeed
	default:
		return 0
	}
}

func (r *Result) unset(f Field) {
	switch f {
	case FieldDistance:
		r.DistanceM, r.Text.Distance = 0, ""
	case FieldDuration:
		r.DurationS, r.Text.Time = 0, ""
	case FieldPaceOrSpeed:
		r.PaceOrSpeed, r.Text.PaceOrSpeed = 0, ""
	case FieldNone:
	}
}

// Solved reports if the result carries a usable duration
func (r *Result) Solved() bool {
	return r != nil && r.Err == nil && r.Computed != FieldNone
}

type number interface{ ~int | ~float64 }

func present[T number](v omit.Val[T]) (T, bool) {
	if x, ok := v.Get(); ok && x > 0 {
		return x, true
	}
	var zero T
	return zero, false
}

func formatIfPresent(v float64, ok bool, format func(float64) string) string {
	if !ok || v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return ""
	}
	return format(v)
}

func (p *pacedLeg) paceOrSpeed(distance, duration float64) (float64, bool) {
	if distance <= 0 {
		return 0, false
	}
	return duration / distance * p.unit, true
}

func (p *pacedLeg) duration(distance, pace float64) (float64, bool) {
	return pace / p.unit * distance, true
}

func (p *pacedLeg) distance(duration, pace float64) (float64, bool) {
	perMeter := pace / p.unit
	if perMeter <= 0 {
		return 0, false
	}
	return duration / perMeter, true
}

func (p *pacedLeg) formatPaceOrSpeed(v float64) string { return FormatPace(v) }

func (p *pacedLeg) parsePaceOrSpeed(text string) omit.Val[float64] {
	d := DurationFromText(text)
	if v, ok := d.Get(); ok {
		return omit.From(float64(v))
	}
	return omit.Val[float64]{}
}

func (p *pacedLeg) reparsePaceOrSpeed(text string) float64 {
	v, _ := parseClock(text)
	return float64(v)
}

func (p *pacedLeg) paceOrSpeedLabel() string { return "pace" }

func (s *speedLeg) paceOrSpeed(distance, duration float64) (float64, bool) {
	if duration <= 0 {
		return 0, false
	}
	return (distance / 1000) / (duration / 3600), true
}

func (s *speedLeg) duration(distance, speed float64) (float64, bool) {
	if speed <= 0 {
		return 0, false
	}
	return (distance / 1000) / speed * 3600, true
}

func (s *speedLeg) distance(duration, speed float64) (float64, bool) {
	return speed * (duration / 3600) * 1000, true
}

func (s *speedLeg) formatPaceOrSpeed(v float64) string { return FormatSpeed(v) }

func (s *speedLeg) parsePaceOrSpeed(text string) omit.Val[float64] {
	return ParseSpeed(text, s.speedCap)
}

func (s *speedLeg) reparsePaceOrSpeed(text string) float64 {
	v, _ := parseDecimal(text)
	return v.InexactFloat64()
}

func (s *speedLeg) paceOrSpeedLabel() string { return "speed" }
