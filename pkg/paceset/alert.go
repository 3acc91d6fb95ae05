package paceset

import (
	"errors"
	"fmt"
	"strings"
)

type (
	ChoiceStyle string
	Action      string

	// Choice is one button of an alert
	Choice struct {
		Label  string      `json:"label" yaml:"label"`
		Style  ChoiceStyle `json:"style" yaml:"style"`
		Action Action      `json:"action" yaml:"action"`
	}
	// Alert is a notification the user has to acknowledge or decide on
	Alert struct {
		Title   string   `json:"title" yaml:"title"`
		Message string   `json:"message" yaml:"message"`
		Choices []Choice `json:"choices" yaml:"choices"`
	}
)

const (
	StyleCancel      ChoiceStyle = "cancel"
	StyleDefault     ChoiceStyle = "default"
	StyleDestructive ChoiceStyle = "destructive"
)

const (
	ActionCancel    Action = "cancel"
	ActionOK        Action = "ok"
	ActionOverwrite Action = "overwrite"
	ActionDelete    Action = "delete"
)

var (
	cancelChoice = Choice{Label: "Cancel", Style: StyleCancel, Action: ActionCancel}
	okChoice     = Choice{Label: "OK", Style: StyleDefault, Action: ActionOK}
)

func OverwriteAlert(name string) Alert {
	return Alert{
		Title:   "Overwrite pace set?",
		Message: fmt.Sprintf("A pace set named %q already exists. Replace it?", name),
		Choices: []Choice{
			cancelChoice,
			{Label: "Overwrite", Style: StyleDestructive, Action: ActionOverwrite},
		},
	}
}

func DeleteAlert(name string) Alert {
	return Alert{
		Title:   "Confirm delete",
		Message: fmt.Sprintf("Do you really want to delete the pace set %q?", name),
		Choices: []Choice{
			cancelChoice,
			{Label: "Delete", Style: StyleDestructive, Action: ActionDelete},
		},
	}
}

// StorageFailureAlert reports a failed load, save or delete
func StorageFailureAlert(operation string) Alert {
	return Alert{
		Title:   "Error",
		Message: fmt.Sprintf("Could not %s the pace sets.", operation),
		Choices: []Choice{okChoice},
	}
}

// SolverAlert lists all discipline errors of a calculation in one alert
func SolverAlert(messages []string) Alert {
	return Alert{
		Title:   "Check your input",
		Message: strings.Join(messages, "\n"),
		Choices: []Choice{okChoice},
	}
}

// AlertFor maps errors of this package to the alert presented to the user.
// operation is used for storage failures.
func AlertFor(err error, operation string) (Alert, bool) {
	var conflict *ConflictError
	switch {
	case err == nil:
		return Alert{}, false
	case errors.As(err, &conflict):
		return OverwriteAlert(conflict.Existing.Name), true
	case errors.Is(err, ErrEmptyName):
		return Alert{
			Title:   "Name missing",
			Message: "Please enter a name for the pace set.",
			Choices: []Choice{okChoice},
		}, true
	case errors.Is(err, ErrNothingToSave):
		return Alert{
			Title:   "Nothing to save",
			Message: "Calculate a total time before saving.",
			Choices: []Choice{okChoice},
		}, true
	case errors.Is(err, ErrNotFound):
		return Alert{
			Title:   "Not found",
			Message: "The pace set does not exist anymore.",
			Choices: []Choice{okChoice},
		}, true
	case errors.Is(err, ErrStorageFailure):
		return StorageFailureAlert(operation), true
	default:
		return Alert{}, false
	}
}
