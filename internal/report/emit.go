// Package report writes the JSON and spreadsheet artifacts for a result set.
package report

import (
	"errors"
	"fmt"
	"io"

	"tftcomps/internal/results"
	"tftcomps/internal/storage"

	json "github.com/goccy/go-json"
)

const (
	DefaultJSONPath = "output.json"
	DefaultXLSXPath = "output.xlsx"
)

// ErrArtifactWrite wraps any failure to produce an output file
var ErrArtifactWrite = errors.New("artifact write failed")

// WriteJSON writes the result set as an object keyed by display name, in iteration order
func WriteJSON(w io.Writer, o *results.Ordered) error {
	data, err := json.MarshalIndent(o, "", "    ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	_, err = w.Write(data)
	return err
}

// Emitter writes both artifacts for one run
type Emitter struct {
	JSONPath string
	XLSXPath string
}

// NewEmitter creates an Emitter, defaulting empty paths
func NewEmitter(jsonPath, xlsxPath string) *Emitter {
	if jsonPath == "" {
		jsonPath = DefaultJSONPath
	}
	if xlsxPath == "" {
		xlsxPath = DefaultXLSXPath
	}
	return &Emitter{JSONPath: jsonPath, XLSXPath: xlsxPath}
}

// Emit writes the JSON artifact and the spreadsheet laid out by plan.
// Both files are replaced together or left untouched.
func (e *Emitter) Emit(o *results.Ordered, plan results.ColumnPlan) error {
	table := BuildTable(o, plan)

	stage := storage.NewStage()
	defer stage.Abort()

	jsonFile, err := stage.Create(e.JSONPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrArtifactWrite, err)
	}
	if err := WriteJSON(jsonFile, o); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrArtifactWrite, e.JSONPath, err)
	}

	xlsxFile, err := stage.Create(e.XLSXPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrArtifactWrite, err)
	}
	if err := WriteXLSX(xlsxFile, table); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrArtifactWrite, e.XLSXPath, err)
	}

	if err := stage.Commit(); err != nil {
		return fmt.Errorf("%w: %w", ErrArtifactWrite, err)
	}
	return nil
}
