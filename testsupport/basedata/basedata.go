package basedata

import (
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mpapenbr/triathlon-pacer/pkg/model"
)

func TestTime() time.Time {
	t, _ := time.Parse(time.RFC3339, "2025-06-01T07:00:00Z")
	return t
}

// SampleForm is an olympic distance race which totals 02:23:30
func SampleForm() model.RaceForm {
	return model.RaceForm{
		StartTime: "07:00",
		Swim:      model.DisciplineText{Distance: "1500", PaceOrSpeed: "01:40"},
		T1:        model.TransitionText{Time: "2:00"},
		Bike:      model.DisciplineText{Distance: "40000", Time: "1:05:00"},
		T2:        model.TransitionText{Time: "1:30"},
		Run:       model.DisciplineText{Distance: "10000", Time: "50:00"},
	}
}

// SolvedSampleForm is SampleForm with all derived values filled in
func SolvedSampleForm() model.RaceForm {
	return model.RaceForm{
		StartTime: "07:00",
		Swim: model.DisciplineText{
			Distance: "1500", Time: "25:00", PaceOrSpeed: "01:40",
		},
		T1: model.TransitionText{Time: "2:00"},
		Bike: model.DisciplineText{
			Distance: "40000", Time: "01:05:00", PaceOrSpeed: "36.92",
		},
		T2: model.TransitionText{Time: "1:30"},
		Run: model.DisciplineText{
			Distance: "10000", Time: "50:00", PaceOrSpeed: "05:00",
		},
	}
}

// SamplePaceSet returns an unsaved pace set of the solved sample form
func SamplePaceSet(name string) *model.PaceSet {
	f := SolvedSampleForm()
	return &model.PaceSet{
		Name:         name,
		StartTime:    f.StartTime,
		Swim:         f.Swim,
		T1:           f.T1,
		Bike:         f.Bike,
		T2:           f.T2,
		Run:          f.Run,
		TotalTime:    "02:23:30",
		TotalSeconds: 8610,
	}
}

// SequentialIDs returns an id generator yielding id-1, id-2, ...
func SequentialIDs() func() (string, error) {
	var n atomic.Int64
	return func() (string, error) {
		return fmt.Sprintf("id-%d", n.Add(1)), nil
	}
}

// SteppingClock returns a clock starting at TestTime advancing a minute per call
func SteppingClock() func() time.Time {
	var mu sync.Mutex
	current := TestTime()
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		ret := current
		current = current.Add(time.Minute)
		return ret
	}
}
