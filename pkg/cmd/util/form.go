package util

import (
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mpapenbr/triathlon-pacer/pkg/model"
)

// FormFlags collects a race form from a file and command line flags.
// Flags take precedence over values of the file.
type FormFlags struct {
	File  string
	flags model.RaceForm
}

func AddFormFlags(cmd *cobra.Command, f *FormFlags) {
	fs := cmd.Flags()
	fs.StringVarP(&f.File, "form", "f", "",
		"yaml or json file containing the race form")
	fs.StringVar(&f.flags.StartTime, "start-time", "", "start time (HH:MM)")
	fs.StringVar(&f.flags.Swim.Distance, "swim-distance", "", "swim distance in meters")
	fs.StringVar(&f.flags.Swim.Time, "swim-time", "", "swim time (HH:MM:SS)")
	fs.StringVar(&f.flags.Swim.PaceOrSpeed, "swim-pace", "", "swim pace per 100m (MM:SS)")
	fs.StringVar(&f.flags.T1.Time, "t1", "", "time of first transition")
	fs.StringVar(&f.flags.Bike.Distance, "bike-distance", "", "bike distance in meters")
	fs.StringVar(&f.flags.Bike.Time, "bike-time", "", "bike time (HH:MM:SS)")
	fs.StringVar(&f.flags.Bike.PaceOrSpeed, "bike-speed", "", "bike speed in km/h")
	fs.StringVar(&f.flags.T2.Time, "t2", "", "time of second transition")
	fs.StringVar(&f.flags.Run.Distance, "run-distance", "", "run distance in meters")
	fs.StringVar(&f.flags.Run.Time, "run-time", "", "run time (HH:MM:SS)")
	fs.StringVar(&f.flags.Run.PaceOrSpeed, "run-pace", "", "run pace per km (MM:SS)")
}

// Form returns the race form of the file merged with the flags
func (f *FormFlags) Form() (model.RaceForm, error) {
	var ret model.RaceForm
	if f.File != "" {
		data, err := os.ReadFile(f.File)
		if err != nil {
			return ret, err
		}
		// yaml is a superset of json
		if err := yaml.Unmarshal(data, &ret); err != nil {
			return ret, err
		}
	}
	override(&ret.StartTime, f.flags.StartTime)
	overrideDiscipline(&ret.Swim, f.flags.Swim)
	override(&ret.T1.Time, f.flags.T1.Time)
	overrideDiscipline(&ret.Bike, f.flags.Bike)
	override(&ret.T2.Time, f.flags.T2.Time)
	overrideDiscipline(&ret.Run, f.flags.Run)
	return ret, nil
}

func overrideDiscipline(dst *model.DisciplineText, src model.DisciplineText) {
	override(&dst.Distance, src.Distance)
	override(&dst.Time, src.Time)
	override(&dst.PaceOrSpeed, src.PaceOrSpeed)
}

func override(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
