package model

import "time"

type (
	Discipline string

	// DisciplineText holds the raw text entered for a discipline.
	// PaceOrSpeed is a pace (MM:SS per unit distance) for swim and run
	// and a speed in km/h for bike.
	DisciplineText struct {
		Distance    string `json:"distance" yaml:"distance"`
		Time        string `json:"time" yaml:"time"`
		PaceOrSpeed string `json:"paceOrSpeed" yaml:"paceOrSpeed"`
	}
	TransitionText struct {
		Time string `json:"time" yaml:"time"`
	}

	RaceForm struct {
		StartTime string         `json:"startTime" yaml:"startTime"`
		Swim      DisciplineText `json:"swim" yaml:"swim"`
		T1        TransitionText `json:"t1" yaml:"t1"`
		Bike      DisciplineText `json:"bike" yaml:"bike"`
		T2        TransitionText `json:"t2" yaml:"t2"`
		Run       DisciplineText `json:"run" yaml:"run"`
	}

	PaceSet struct {
		ID           string         `json:"id" yaml:"id"`
		Name         string         `json:"name" yaml:"name"`
		StartTime    string         `json:"startTime" yaml:"startTime"`
		Swim         DisciplineText `json:"swim" yaml:"swim"`
		T1           TransitionText `json:"t1" yaml:"t1"`
		Bike         DisciplineText `json:"bike" yaml:"bike"`
		T2           TransitionText `json:"t2" yaml:"t2"`
		Run          DisciplineText `json:"run" yaml:"run"`
		TotalTime    string         `json:"totalTime" yaml:"totalTime"`
		TotalSeconds int            `json:"totalSeconds" yaml:"totalSeconds"`
		CreatedAt    time.Time      `json:"createdAt" yaml:"createdAt"`
	}
)

const (
	Swim Discipline = "swim"
	Bike Discipline = "bike"
	Run  Discipline = "run"
)

func (d Discipline) String() string { return string(d) }

// Label is the display name used in user facing messages
func (d Discipline) Label() string {
	switch d {
	case Swim:
		return "Swim"
	case Bike:
		return "Bike"
	case Run:
		return "Run"
	default:
		return string(d)
	}
}

func (d Discipline) Valid() bool {
	return d == Swim || d == Bike || d == Run
}

// Clear resets all entered values
func (f *RaceForm) Clear() {
	*f = RaceForm{}
}

// Form returns the race form this pace set was created from
func (p *PaceSet) Form() RaceForm {
	return RaceForm{
		StartTime: p.StartTime,
		Swim:      p.Swim,
		T1:        p.T1,
		Bike:      p.Bike,
		T2:        p.T2,
		Run:       p.Run,
	}
}
