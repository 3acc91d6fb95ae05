package util

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"
	"gopkg.in/yaml.v3"

	"github.com/mpapenbr/triathlon-pacer/pkg/config"
	"github.com/mpapenbr/triathlon-pacer/pkg/paceset"
)

const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// WriteOutput writes v in the format selected by config.Output.
// text is used for the text format.
func WriteOutput(w io.Writer, v any, text func(io.Writer) error) error {
	switch config.Output {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	case OutputText, "":
		return text(w)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Output)
	}
}

// WriteJSONPath writes the values selected by expr, one per line.
// Strings are written without quotes.
func WriteJSONPath(w io.Writer, v any, expr string) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	obj, err := oj.Parse(data)
	if err != nil {
		return err
	}
	path, err := jp.ParseString(expr)
	if err != nil {
		return err
	}
	for _, res := range path.Get(obj) {
		if s, ok := res.(string); ok {
			fmt.Fprintln(w, s)
		} else {
			fmt.Fprintln(w, oj.JSON(res))
		}
	}
	return nil
}

// Confirm presents alert and reports if the primary (last) choice was taken.
// Only an answer of y or yes confirms.
func Confirm(in io.Reader, out io.Writer, alert paceset.Alert) (bool, error) {
	primary := alert.Choices[len(alert.Choices)-1]
	fmt.Fprintf(out, "%s\n%s\n%s? [y/N]: ", alert.Title, alert.Message, primary.Label)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

// PrintAlert writes an informational alert
func PrintAlert(out io.Writer, alert paceset.Alert) {
	fmt.Fprintf(out, "%s: %s\n", alert.Title, alert.Message)
}
