package report

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/rs/zerolog"

	"github.com/Sternrassler/user-analytics/pkg/logging"
	"github.com/Sternrassler/user-analytics/pkg/model"
	"github.com/Sternrassler/user-analytics/pkg/process"
)

const timestampLayout = "20060102_150405"

// Generator is the production Sink. It writes all artifacts into a single
// output directory, stamping file names with the generation time.
type Generator struct {
	outputDir string
	logger    zerolog.Logger
	clock     func() time.Time
}

// NewGenerator creates a Generator, ensuring the output directory exists.
func NewGenerator(outputDir string) (*Generator, error) {
	if outputDir == "" {
		outputDir = "output"
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	return &Generator{
		outputDir: outputDir,
		logger:    logging.NewLogger("report"),
		clock:     time.Now,
	}, nil
}

// Generate renders the document, spreadsheet and chart for an ordered user
// aggregate. Any file-level failure aborts with a wrapped error.
func (g *Generator) Generate(users []*model.User, baseName string) (Artifacts, error) {
	stamp := g.clock().Format(timestampLayout)

	artifacts := Artifacts{
		DocumentPath:    filepath.Join(g.outputDir, fmt.Sprintf("%s_%s.txt", baseName, stamp)),
		SpreadsheetPath: filepath.Join(g.outputDir, fmt.Sprintf("%s_%s.csv", baseName, stamp)),
		ChartPath:       filepath.Join(g.outputDir, fmt.Sprintf("%s_%s.html", baseName, stamp)),
	}

	if err := g.writeDocument(users, artifacts.DocumentPath); err != nil {
		return Artifacts{}, fmt.Errorf("write document: %w", err)
	}
	if err := g.writeSpreadsheet(users, artifacts.SpreadsheetPath); err != nil {
		return Artifacts{}, fmt.Errorf("write spreadsheet: %w", err)
	}
	if err := g.writeChart(users, artifacts.ChartPath); err != nil {
		return Artifacts{}, fmt.Errorf("write chart: %w", err)
	}

	g.logArtifact("document", artifacts.DocumentPath)
	g.logArtifact("spreadsheet", artifacts.SpreadsheetPath)
	g.logArtifact("chart", artifacts.ChartPath)

	return artifacts, nil
}

// writeDocument renders the summary and the per-user table as plain text.
func (g *Generator) writeDocument(users []*model.User, path string) error {
	totalPosts := 0
	for _, u := range users {
		totalPosts += u.PostCount
	}
	active := process.FilterActive(users, 1)

	header := fmt.Sprintf(
		"USER POST ANALYTICS\nGenerated: %s\n\nUsers analyzed: %s\nActive users (>=1 post): %s\nTotal posts: %s\nAverage characters per post: %.2f\n\n",
		g.clock().Format(time.RFC1123),
		humanize.Comma(int64(len(users))),
		humanize.Comma(int64(len(active))),
		humanize.Comma(int64(totalPosts)),
		process.OverallAvgChars(users),
	)

	tbl := g.buildTable(users)
	tbl.SetStyle(table.StyleLight)

	content := header + tbl.Render() + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return err
	}
	return nil
}

// writeSpreadsheet renders the same table as CSV.
func (g *Generator) writeSpreadsheet(users []*model.User, path string) error {
	tbl := g.buildTable(users)
	return os.WriteFile(path, []byte(tbl.RenderCSV()+"\n"), 0o644)
}

// buildTable assembles the per-user ranking table.
func (g *Generator) buildTable(users []*model.User) table.Writer {
	tbl := table.NewWriter()
	tbl.AppendHeader(table.Row{"Rank", "ID", "Name", "Username", "Email", "Posts", "Avg Chars"})
	for i, u := range users {
		tbl.AppendRow(table.Row{
			i + 1,
			u.ID,
			u.Name,
			u.Username,
			u.Email,
			u.PostCount,
			fmt.Sprintf("%.2f", u.AvgChars),
		})
	}
	tbl.AppendFooter(table.Row{"", "", "", "", "", "", fmt.Sprintf("%d users", len(users))})
	return tbl
}

// writeChart renders a posts-per-user bar chart as a standalone HTML page.
func (g *Generator) writeChart(users []*model.User, path string) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Posts per User",
			Subtitle: "Ordered by post count",
		}),
	)

	names := make([]string, 0, len(users))
	values := make([]opts.BarData, 0, len(users))
	for _, u := range users {
		names = append(names, u.Username)
		values = append(values, opts.BarData{Value: u.PostCount})
	}

	bar.SetXAxis(names).AddSeries("Posts", values)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return bar.Render(f)
}

// logArtifact reports one written artifact with its size.
func (g *Generator) logArtifact(kind, path string) {
	event := g.logger.Info().Str("kind", kind).Str("path", path)
	if info, err := os.Stat(path); err == nil {
		event = event.Str("size", humanize.Bytes(uint64(info.Size())))
	}
	event.Msg("Artifact written")
}
