package paceset

import (
	"errors"
	"strings"

	"github.com/gofrs/uuid/v5"

	"github.com/mpapenbr/triathlon-pacer/pkg/model"
	"github.com/mpapenbr/triathlon-pacer/pkg/pace"
)

var (
	ErrEmptyName     = errors.New("empty name")
	ErrNothingToSave = errors.New("nothing to save")
)

// BuildRecord creates a pace set from a form snapshot.
// ID and CreatedAt are assigned when the record is saved.
//
//nolint:whitespace // can't make both editor and linter happy
func BuildRecord(
	name string,
	form model.RaceForm,
	totalDisplay string,
	totalSeconds int,
) (*model.PaceSet, error) {
	ret := &model.PaceSet{
		Name:         strings.TrimSpace(name),
		StartTime:    form.StartTime,
		Swim:         form.Swim,
		T1:           form.T1,
		Bike:         form.Bike,
		T2:           form.T2,
		Run:          form.Run,
		TotalTime:    totalDisplay,
		TotalSeconds: totalSeconds,
	}
	if err := validate(ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// FromCalculation builds the record for a calculated race form
func FromCalculation(name string, calc *pace.Calculation) (*model.PaceSet, error) {
	return BuildRecord(name, calc.Form, calc.Total.Display, calc.Total.Seconds)
}

// NewID returns a time ordered unique id
func NewID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

func validate(rec *model.PaceSet) error {
	if strings.TrimSpace(rec.Name) == "" {
		return ErrEmptyName
	}
	if rec.TotalSeconds <= 0 {
		return ErrNothingToSave
	}
	return nil
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
