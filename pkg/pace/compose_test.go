package pace

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/mpapenbr/triathlon-pacer/pkg/model"
)

func sampleForm() model.RaceForm {
	return model.RaceForm{
		StartTime: "07:00",
		Swim:      model.DisciplineText{Distance: "1500", PaceOrSpeed: "01:40"},
		T1:        model.TransitionText{Time: "2:00"},
		Bike:      model.DisciplineText{Distance: "40000", Time: "1:05:00"},
		T2:        model.TransitionText{Time: "1:30"},
		Run:       model.DisciplineText{Distance: "10000", Time: "50:00"},
	}
}

func TestComposeTotal(t *testing.T) {
	f := sampleForm()
	swim := SolveText(model.Swim, f.Swim)
	bike := SolveText(model.Bike, f.Bike)
	run := SolveText(model.Run, f.Run)

	tests := []struct {
		name string
		swim *Result
		t1   int
		bike *Result
		t2   int
		run  *Result
		want Total
	}{
		{
			name: "full race",
			swim: swim, t1: 120, bike: bike, t2: 90, run: run,
			want: Total{Seconds: 8610, Display: "02:23:30"},
		},
		{
			name: "run only",
			run:  run,
			want: Total{Seconds: 3000, Display: "50:00"},
		},
		{
			name: "transitions only",
			t1:   120, t2: 90,
			want: Total{Seconds: 210, Display: "03:30"},
		},
		{
			name: "failed discipline contributes nothing",
			swim: SolveText(model.Swim, model.DisciplineText{Distance: "1500", Time: "25:00", PaceOrSpeed: "1:40"}),
			run:  run,
			want: Total{Seconds: 3000, Display: "50:00"},
		},
		{
			name: "derived zero time contributes nothing",
			bike: SolveText(model.Bike, model.DisciplineText{Distance: "10", PaceOrSpeed: "100"}),
			want: Total{Seconds: 0, Display: ""},
		},
		{
			name: "nothing entered",
			swim: SolveText(model.Swim, model.DisciplineText{}),
			want: Total{Seconds: 0, Display: ""},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComposeTotal(tt.swim, tt.t1, tt.bike, tt.t2, tt.run)
			assert.DeepEqual(t, got, tt.want)
			assert.Equal(t, got.Computed(), tt.want.Seconds > 0)
		})
	}
}

func TestCalculate(t *testing.T) {
	got := Calculate(sampleForm())
	assert.NilError(t, got.Err)
	assert.Equal(t, got.Total.Seconds, 8610)
	assert.Equal(t, got.Total.Display, "02:23:30")
	assert.Equal(t, got.FinishTime, "09:23")
	assert.Equal(t, got.T1Seconds, 120)
	assert.Equal(t, got.T2Seconds, 90)
	assert.Equal(t, got.Form.Swim.Time, "25:00")
	assert.Equal(t, got.Form.Bike.PaceOrSpeed, "36.92")
	assert.Equal(t, got.Form.Run.PaceOrSpeed, "05:00")
	assert.Equal(t, got.Form.T1.Time, "2:00")
	assert.Check(t, is.Len(got.Errors, 0))
}

func TestCalculateCollectsErrors(t *testing.T) {
	f := sampleForm()
	f.Swim.Time = "25:00"
	f.Bike = model.DisciplineText{Distance: "40000"}
	got := Calculate(f)

	assert.Check(t, errors.Is(got.Err, ErrTooManyFields))
	assert.Check(t, errors.Is(got.Err, ErrInsufficientData))
	assert.DeepEqual(t, got.Errors, []string{
		"Swim: enter only two of distance, time and pace",
		"Bike: enter two of distance, time and speed",
	})
	// swim and bike are left out
	assert.Equal(t, got.Total.Seconds, 120+90+3000)
	// entered values stay untouched
	assert.DeepEqual(t, got.Form.Swim, f.Swim)
}

func TestFinishTime(t *testing.T) {
	tests := []struct {
		name   string
		start  string
		total  int
		want   string
		wantOk bool
	}{
		{name: "same day", start: "07:00", total: 8610, want: "09:23", wantOk: true},
		{name: "past midnight", start: "23:30", total: 3600, want: "00:30", wantOk: true},
		{name: "single digit hour", start: "7:05", total: 60, want: "07:06", wantOk: true},
		{name: "invalid start", start: "25:00", total: 60},
		{name: "blank start", start: "", total: 60},
		{name: "no total", start: "07:00", total: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FinishTime(tt.start, tt.total)
			assert.Equal(t, ok, tt.wantOk)
			assert.Equal(t, got, tt.want)
		})
	}
}

func TestRaceFormClear(t *testing.T) {
	f := sampleForm()
	f.Clear()
	assert.DeepEqual(t, f, model.RaceForm{})
}
