//nolint:funlen // ok for tests
package pace

import (
	"errors"
	"testing"

	"github.com/aarondl/opt/omit"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/mpapenbr/triathlon-pacer/pkg/model"
)

func TestSolveText(t *testing.T) {
	tests := []struct {
		name       string
		discipline model.Discipline
		text       model.DisciplineText
		want       *Result
		wantErr    error
	}{
		{
			name:       "run pace from distance and time",
			discipline: model.Run,
			text:       model.DisciplineText{Distance: "10000", Time: "50:00"},
			want: &Result{
				Discipline: model.Run,
				Text: model.DisciplineText{
					Distance: "10000", Time: "50:00", PaceOrSpeed: "05:00",
				},
				DistanceM: 10000, DurationS: 3000, PaceOrSpeed: 300,
				Computed: FieldPaceOrSpeed,
			},
		},
		{
			name:       "swim time from distance and pace",
			discipline: model.Swim,
			text:       model.DisciplineText{Distance: "1500", PaceOrSpeed: "01:40"},
			want: &Result{
				Discipline: model.Swim,
				Text: model.DisciplineText{
					Distance: "1500", Time: "25:00", PaceOrSpeed: "01:40",
				},
				DistanceM: 1500, DurationS: 1500, PaceOrSpeed: 100,
				Computed: FieldDuration,
			},
		},
		{
			name:       "swim pace from distance and time",
			discipline: model.Swim,
			text:       model.DisciplineText{Distance: "1500", Time: "25:00"},
			want: &Result{
				Discipline: model.Swim,
				Text: model.DisciplineText{
					Distance: "1500", Time: "25:00", PaceOrSpeed: "01:40",
				},
				DistanceM: 1500, DurationS: 1500, PaceOrSpeed: 100,
				Computed: FieldPaceOrSpeed,
			},
		},
		{
			name:       "run distance from time and pace",
			discipline: model.Run,
			text:       model.DisciplineText{Time: "50:00", PaceOrSpeed: "5:00"},
			want: &Result{
				Discipline: model.Run,
				Text: model.DisciplineText{
					Distance: "10000", Time: "50:00", PaceOrSpeed: "05:00",
				},
				DistanceM: 10000, DurationS: 3000, PaceOrSpeed: 300,
				Computed: FieldDistance,
			},
		},
		{
			name:       "bike speed from distance and time",
			discipline: model.Bike,
			text:       model.DisciplineText{Distance: "40000", Time: "1:05:00"},
			want: &Result{
				Discipline: model.Bike,
				Text: model.DisciplineText{
					Distance: "40000", Time: "01:05:00", PaceOrSpeed: "36.92",
				},
				DistanceM: 40000, DurationS: 3900, PaceOrSpeed: 36.92,
				Computed: FieldPaceOrSpeed,
			},
		},
		{
			name:       "bike time from distance and speed",
			discipline: model.Bike,
			text:       model.DisciplineText{Distance: "40000", PaceOrSpeed: "40"},
			want: &Result{
				Discipline: model.Bike,
				Text: model.DisciplineText{
					Distance: "40000", Time: "01:00:00", PaceOrSpeed: "40.00",
				},
				DistanceM: 40000, DurationS: 3600, PaceOrSpeed: 40,
				Computed: FieldDuration,
			},
		},
		{
			name:       "bike distance from time and speed",
			discipline: model.Bike,
			text:       model.DisciplineText{Time: "1:00:00", PaceOrSpeed: "36"},
			want: &Result{
				Discipline: model.Bike,
				Text: model.DisciplineText{
					Distance: "36000", Time: "01:00:00", PaceOrSpeed: "36.00",
				},
				DistanceM: 36000, DurationS: 3600, PaceOrSpeed: 36,
				Computed: FieldDistance,
			},
		},
		{
			name:       "bike speed is clamped on input",
			discipline: model.Bike,
			text:       model.DisciplineText{Distance: "100000", PaceOrSpeed: "250"},
			want: &Result{
				Discipline: model.Bike,
				Text: model.DisciplineText{
					Distance: "100000", Time: "01:00:00", PaceOrSpeed: "100.00",
				},
				DistanceM: 100000, DurationS: 3600, PaceOrSpeed: 100,
				Computed: FieldDuration,
			},
		},
		{
			name:       "zero counts as not entered",
			discipline: model.Run,
			text:       model.DisciplineText{Distance: "0", Time: "50:00", PaceOrSpeed: "05:00"},
			want: &Result{
				Discipline: model.Run,
				Text: model.DisciplineText{
					Distance: "10000", Time: "50:00", PaceOrSpeed: "05:00",
				},
				DistanceM: 10000, DurationS: 3000, PaceOrSpeed: 300,
				Computed: FieldDistance,
			},
		},
		{
			name:       "all three entered",
			discipline: model.Run,
			text:       model.DisciplineText{Distance: "10000", Time: "50:00", PaceOrSpeed: "4:00"},
			want: &Result{
				Discipline: model.Run,
				Text: model.DisciplineText{
					Distance: "10000", Time: "50:00", PaceOrSpeed: "4:00",
				},
				DistanceM: 10000, DurationS: 3000, PaceOrSpeed: 240,
			},
			wantErr: ErrTooManyFields,
		},
		{
			name:       "single value",
			discipline: model.Swim,
			text:       model.DisciplineText{Distance: "1500"},
			want: &Result{
				Discipline: model.Swim,
				Text:       model.DisciplineText{Distance: "1500"},
				DistanceM:  1500,
			},
			wantErr: ErrInsufficientData,
		},
		{
			name:       "nothing entered",
			discipline: model.Bike,
			text:       model.DisciplineText{},
			want:       &Result{Discipline: model.Bike},
		},
		{
			name:       "invalid text is treated as absent",
			discipline: model.Run,
			text:       model.DisciplineText{Distance: "ten", Time: "50:00"},
			want: &Result{
				Discipline: model.Run,
				Text:       model.DisciplineText{Distance: "ten", Time: "50:00"},
				DurationS:  3000,
			},
			wantErr: ErrInsufficientData,
		},
		{
			name:       "derived time rounding to zero stays unset",
			discipline: model.Bike,
			text:       model.DisciplineText{Distance: "10", PaceOrSpeed: "100"},
			want: &Result{
				Discipline:  model.Bike,
				Text:        model.DisciplineText{Distance: "10", PaceOrSpeed: "100"},
				DistanceM:   10,
				PaceOrSpeed: 100,
			},
		},
		{
			name:       "derived pace rounding to zero stays unset",
			discipline: model.Run,
			text:       model.DisciplineText{Distance: "10000", Time: "1"},
			want: &Result{
				Discipline: model.Run,
				Text:       model.DisciplineText{Distance: "10000", Time: "1"},
				DistanceM:  10000,
				DurationS:  1,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SolveText(tt.discipline, tt.text)
			if !errors.Is(got.Err, tt.wantErr) || (tt.wantErr == nil && got.Err != nil) {
				t.Errorf("SolveText() error = %v, wantErr %v", got.Err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got,
				cmpopts.IgnoreFields(Result{}, "Err"),
				cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Errorf("SolveText() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSolveKeepsValuesOnError(t *testing.T) {
	in := DisciplineInput{
		Distance:    omit.From(1500.0),
		Duration:    omit.From(1500),
		PaceOrSpeed: omit.From(100.0),
	}
	got := Solve(model.Swim, in)
	if !errors.Is(got.Err, ErrTooManyFields) {
		t.Fatalf("Solve() error = %v, want %v", got.Err, ErrTooManyFields)
	}
	if got.Computed != FieldNone || got.Solved() {
		t.Errorf("Solve() computed = %v, want none", got.Computed)
	}
	if got.DistanceM != 1500 || got.DurationS != 1500 || got.PaceOrSpeed != 100 {
		t.Errorf("Solve() numeric values = %v/%v/%v, want all input values",
			got.DistanceM, got.DurationS, got.PaceOrSpeed)
	}
	want := model.DisciplineText{Distance: "1500", Time: "25:00", PaceOrSpeed: "01:40"}
	if diff := cmp.Diff(want, got.Text); diff != "" {
		t.Errorf("Solve() text mismatch (-want +got):\n%s", diff)
	}
}

func TestSolveUnknownDiscipline(t *testing.T) {
	got := Solve(model.Discipline("rowing"), DisciplineInput{})
	if !errors.Is(got.Err, ErrUnknownDiscipline) {
		t.Errorf("Solve() error = %v, want %v", got.Err, ErrUnknownDiscipline)
	}
}

func TestSolveErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  *SolveError
		want string
	}{
		{
			name: "too many run",
			err:  &SolveError{Discipline: model.Run, Kind: ErrTooManyFields},
			want: "Run: enter only two of distance, time and pace",
		},
		{
			name: "insufficient bike",
			err:  &SolveError{Discipline: model.Bike, Kind: ErrInsufficientData},
			want: "Bike: enter two of distance, time and speed",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSolveWithSpeedCap(t *testing.T) {
	got := SolveText(model.Bike,
		model.DisciplineText{Distance: "150000", PaceOrSpeed: "250"},
		WithSpeedCap(150))
	if got.Text.PaceOrSpeed != "150.00" || got.DurationS != 3600 {
		t.Errorf("SolveText() = %+v, want speed 150.00 and 3600s", got)
	}
}

func TestSolveZeroDerivedIsNotSolved(t *testing.T) {
	in := DisciplineInput{Distance: omit.From(10.0), PaceOrSpeed: omit.From(100.0)}
	got := Solve(model.Bike, in)
	if got.Err != nil || got.Solved() {
		t.Errorf("Solve() err = %v solved = %v, want no error and not solved",
			got.Err, got.Solved())
	}
	if got.Text.Time != "" || got.DurationS != 0 {
		t.Errorf("Solve() time = %q (%ds), want unset", got.Text.Time, got.DurationS)
	}
}
