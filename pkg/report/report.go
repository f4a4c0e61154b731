// Package report renders the ordered user aggregate into persisted
// artifacts: a plain-text document, a CSV spreadsheet and an HTML chart.
package report

import (
	"github.com/Sternrassler/user-analytics/pkg/model"
)

// Artifacts holds the locations of the rendered outputs.
type Artifacts struct {
	DocumentPath    string
	SpreadsheetPath string
	ChartPath       string
}

// Sink consumes an ordered user aggregate and persists it. The pipeline
// only inspects the returned paths, never the artifact contents.
type Sink interface {
	Generate(users []*model.User, baseName string) (Artifacts, error)
}
