package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"golang.org/x/sync/errgroup"

	"github.com/filip867/Karl-Filip/internal/domain/entity"
	"github.com/filip867/Karl-Filip/internal/domain/repository"
	"github.com/filip867/Karl-Filip/internal/shared/types"
	"github.com/filip867/Karl-Filip/pkg/console"
)

// RunReport imports the configured export, prints the report and writes the
// requested exports.
func (uc *ReportUseCase) RunReport(ctx context.Context, args *types.CLIArgs) error {
	cfg, err := uc.Configure(args)
	if err != nil {
		return err
	}
	if cfg.Input == "" {
		return types.ErrNoInput
	}

	status := uc.console.Status(fmt.Sprintf("Importing %s...", cfg.Input))
	if _, err := uc.Import(ctx, cfg.Input); err != nil {
		status.Stop()
		return err
	}
	status.Update("Building listing table...")
	report, err := uc.Export()
	status.Stop()
	if err != nil {
		return err
	}

	uc.DisplayReport(report)
	if cfg.Trend {
		uc.DisplayTrends(report.Model)
	}

	if cfg.ReportName != "" {
		uc.exportReports(ctx, report, cfg.ReportName, cfg.Dir, cfg.ReportType)
	}
	return nil
}

// exportReports writes every requested format concurrently. A failed export
// is logged and does not stop the others.
func (uc *ReportUseCase) exportReports(ctx context.Context, report repository.ReportExport, name, dir string, reportTypes []string) {
	exporters := map[string]struct {
		label string
		write func(repository.ReportExport, string, string) (string, error)
	}{
		"csv":  {"CSV", uc.exportRepo.ExportToCSV},
		"json": {"JSON", uc.exportRepo.ExportToJSON},
		"pdf":  {"PDF", uc.exportRepo.ExportToPDF},
	}

	type outcome struct {
		label string
		path  string
		err   error
	}
	outcomes := make([]outcome, len(reportTypes))

	g, _ := errgroup.WithContext(ctx)
	for i, reportType := range reportTypes {
		i := i
		exp, ok := exporters[reportType]
		if !ok {
			continue
		}
		g.Go(func() error {
			path, err := exp.write(report, name, dir)
			outcomes[i] = outcome{label: exp.label, path: path, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for _, o := range outcomes {
		switch {
		case o.label == "":
		case o.err != nil:
			uc.console.LogError("Failed to export to %s: %s", o.label, o.err)
		default:
			uc.console.LogSuccess("Successfully exported to %s: %s", o.label, o.path)
		}
	}
}

// DisplayReport prints the metric, listing and total tables.
func (uc *ReportUseCase) DisplayReport(report repository.ReportExport) {
	model := report.Model
	uc.console.Println(pterm.FgYellow.Sprintf("%s  %s", model.ClientName, model.ReportDate))

	uc.console.Println(uc.metricTable(model).Render())
	uc.console.Println(uc.listingTable(report).Render())

	prior, current := model.Prior.Revenue.Sum(), model.Current.Revenue.Sum()
	totals := fmt.Sprintf("Total %d: %s · Total %d: %s",
		model.Prior.Year, console.FormatKr(prior), model.Current.Year, console.FormatKr(current))
	if pc := model.PercentChange(); pc != nil {
		change := console.FormatChange(*pc)
		if *pc >= 0 {
			change = console.BrightGreen(change)
		} else {
			change = console.BrightRed(change)
		}
		totals += fmt.Sprintf(" (%s)", change)
	}
	uc.console.Println(totals)
	uc.console.Println(qualityLine(model.Quality))
}

func (uc *ReportUseCase) metricTable(model *entity.ReportModel) types.TableInterface {
	table := uc.console.CreateTable()
	table.AddColumn("Metric")
	table.AddColumn("Year")
	months := model.ChartMonths
	if len(months) == 0 {
		months = entity.Calendar()
	}
	for _, m := range months {
		table.AddColumn(m.String())
	}

	add := func(name string, y entity.YearFigures, series entity.MonthlySeries, format func(int64) string) {
		cells := []interface{}{name, strconv.Itoa(y.Year)}
		for _, m := range months {
			v, ok := series.Get(m)
			cells = append(cells, console.FormatOptional(v, ok, format))
		}
		table.AddRow(cells...)
	}
	years := []entity.YearFigures{model.Current}
	if model.ShowPrior {
		years = []entity.YearFigures{model.Prior, model.Current}
	}
	for _, y := range years {
		add("Owner Revenue", y, y.Revenue, console.FormatNumber)
	}
	for _, y := range years {
		add("Occupancy", y, y.Occupancy, console.FormatPercent)
	}
	for _, y := range years {
		add("ANR", y, y.Rate, console.FormatNumber)
	}
	return table
}

func (uc *ReportUseCase) listingTable(report repository.ReportExport) types.TableInterface {
	window := report.Model.ListingWindow.Months()

	table := uc.console.CreateTable()
	table.AddColumn("Listing")
	table.AddColumn("m²")
	for _, m := range window {
		table.AddColumn(m.String())
	}

	for _, row := range report.Listings {
		cells := []interface{}{row.ID, strconv.FormatFloat(row.Area, 'f', -1, 64)}
		for _, m := range window {
			v, ok := row.Revenue.Get(m)
			cell := console.FormatOptional(v, ok, console.FormatNumber)
			e := report.Extremes.For(m)
			switch {
			case ok && e.IsBest(v):
				cell = console.BrightGreen(cell)
			case ok && e.IsWorst(v):
				cell = console.BrightRed(cell)
			}
			cells = append(cells, cell)
		}
		table.AddRow(cells...)
	}
	return table
}

func qualityLine(q entity.QualityScores) string {
	scores := []struct {
		label string
		value float64
	}{
		{"Overall", q.Overall},
		{"Cleanliness", q.Cleanliness},
		{"Accuracy", q.Accuracy},
		{"Location", q.Location},
		{"Check-in", q.CheckIn},
		{"Communication", q.Communication},
		{"Value", q.Value},
	}
	parts := make([]string, len(scores))
	for i, s := range scores {
		v := fmt.Sprintf("%.2f", s.value)
		if s.value >= entity.HighlightThreshold {
			v = console.BrightGreen(v)
		}
		parts[i] = fmt.Sprintf("%s %s", s.label, v)
	}
	return "Quality: " + strings.Join(parts, " · ")
}

// DisplayTrends draws revenue, occupancy and rate bars for the current year.
func (uc *ReportUseCase) DisplayTrends(model *entity.ReportModel) {
	uc.console.LogInfo("Analysing monthly trends...")
	charts := []struct {
		title  string
		series entity.MonthlySeries
	}{
		{"Owner Revenue", model.Current.Revenue},
		{"Occupancy %", model.Current.Occupancy},
		{"ANR", model.Current.Rate},
	}
	for _, c := range charts {
		uc.console.DisplayTrendBars(fmt.Sprintf("%s %d", c.title, model.Current.Year), TrendPoints(c.series))
	}
}

// TrendPoints lays a series out over the calendar year.
func TrendPoints(series entity.MonthlySeries) []types.TrendPoint {
	points := make([]types.TrendPoint, 0, entity.MonthsInYear)
	for _, m := range entity.Calendar() {
		v, ok := series.Get(m)
		points = append(points, types.TrendPoint{Month: m.String(), Value: float64(v), Present: ok})
	}
	return points
}
