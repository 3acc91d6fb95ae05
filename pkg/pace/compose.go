package pace

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/mpapenbr/triathlon-pacer/pkg/model"
)

type (
	Total struct {
		Seconds int    `json:"seconds"`
		Display string `json:"display"`
	}

	// Calculation is the outcome of solving a complete race form
	Calculation struct {
		// Form holds the entered values with derived values filled in
		Form       model.RaceForm `json:"form"`
		Swim       *Result        `json:"swim"`
		T1Seconds  int            `json:"t1Seconds"`
		Bike       *Result        `json:"bike"`
		T2Seconds  int            `json:"t2Seconds"`
		Run        *Result        `json:"run"`
		Total      Total          `json:"total"`
		FinishTime string         `json:"finishTime,omitempty"`
		Errors     []string       `json:"errors,omitempty"`
		// Err joins all discipline errors
		Err error `json:"-"`
	}
)

var startTimePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):([0-5][0-9])$`)

// Computed reports if there is a total worth displaying or saving.
// A total of zero means nothing was entered.
func (t Total) Computed() bool {
	return t.Seconds > 0
}

// ComposeTotal sums up all segments. Failed or unsolved disciplines contribute 0.
func ComposeTotal(swim *Result, t1 int, bike *Result, t2 int, run *Result) Total {
	total := contribution(swim) + max(0, t1) + contribution(bike) + max(0, t2) +
		contribution(run)
	return Total{Seconds: total, Display: FormatDuration(float64(total))}
}

func contribution(r *Result) int {
	if !r.Solved() {
		return 0
	}
	return max(0, r.DurationS)
}

// ParseTransition returns the seconds of a transition, 0 for blank or invalid text
func ParseTransition(t model.TransitionText) int {
	return ParseDuration(t.Time)
}

// ParseStartTime parses HH:MM into minutes after midnight
func ParseStartTime(text string) (int, bool) {
	m := startTimePattern.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	h, _ := strconv.Atoi(m[1])
	mins, _ := strconv.Atoi(m[2])
	return h*60 + mins, true
}

// FinishTime returns the clock time HH:MM after totalSeconds have passed since start.
func FinishTime(startTime string, totalSeconds int) (string, bool) {
	start, ok := ParseStartTime(startTime)
	if !ok || totalSeconds <= 0 {
		return "", false
	}
	base := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	finish := base.Add(time.Duration(start)*time.Minute +
		time.Duration(totalSeconds)*time.Second)
	return finish.Format("15:04"), true
}

// Calculate solves all disciplines of the form and composes the total.
// Errors of all disciplines are collected.
func Calculate(form model.RaceForm, opts ...Option) *Calculation {
	ret := &Calculation{
		Swim:      SolveText(model.Swim, form.Swim, opts...),
		T1Seconds: ParseTransition(form.T1),
		Bike:      SolveText(model.Bike, form.Bike, opts...),
		T2Seconds: ParseTransition(form.T2),
		Run:       SolveText(model.Run, form.Run, opts...),
	}
	ret.Form = model.RaceForm{
		StartTime: form.StartTime,
		Swim:      ret.Swim.Text,
		T1:        form.T1,
		Bike:      ret.Bike.Text,
		T2:        form.T2,
		Run:       ret.Run.Text,
	}
	ret.Total = ComposeTotal(ret.Swim, ret.T1Seconds, ret.Bike, ret.T2Seconds, ret.Run)
	if finish, ok := FinishTime(form.StartTime, ret.Total.Seconds); ok {
		ret.FinishTime = finish
	}

	errs := lo.FilterMap([]*Result{ret.Swim, ret.Bike, ret.Run},
		func(r *Result, _ int) (error, bool) {
			return r.Err, r.Err != nil
		})
	ret.Err = errors.Join(errs...)
	ret.Errors = lo.Map(errs, func(err error, _ int) string { return err.Error() })
	return ret
}

func (c *Calculation) String() string {
	return fmt.Sprintf("total=%s (%ds) errors=%d", c.Total.Display, c.Total.Seconds,
		len(c.Errors))
}
