package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/filip867/Karl-Filip/internal/domain/entity"
	"github.com/filip867/Karl-Filip/internal/domain/repository"
)

// ExportRepositoryImpl implements ExportRepository.
type ExportRepositoryImpl struct {
	now func() time.Time
}

// NewExportRepository creates a new ExportRepository.
func NewExportRepository() repository.ExportRepository {
	return &ExportRepositoryImpl{now: time.Now}
}

// ExportToCSV writes the monthly metrics, the listing table and the totals as
// consecutive blocks separated by blank lines.
func (r *ExportRepositoryImpl) ExportToCSV(report repository.ReportExport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "csv")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating CSV file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.WriteAll(csvRecords(report)); err != nil {
		return "", fmt.Errorf("error writing CSV file: %w", err)
	}

	return filepath.Abs(outputFilename)
}

func csvRecords(report repository.ReportExport) [][]string {
	model := report.Model
	calendar := entity.Calendar()

	header := []string{"Metric", "Year"}
	for _, m := range calendar {
		header = append(header, m.String())
	}
	header = append(header, "Total")
	records := [][]string{header}

	metric := func(name string, year int, series entity.MonthlySeries, withTotal bool) []string {
		row := []string{name, strconv.Itoa(year)}
		for _, m := range calendar {
			row = append(row, optional(series, m))
		}
		if withTotal {
			row = append(row, strconv.FormatInt(series.Sum(), 10))
		} else {
			row = append(row, "")
		}
		return row
	}
	for _, y := range []entity.YearFigures{model.Prior, model.Current} {
		records = append(records, metric("Owner Revenue", y.Year, y.Revenue, true))
	}
	for _, y := range []entity.YearFigures{model.Prior, model.Current} {
		records = append(records, metric("Occupancy %", y.Year, y.Occupancy, false))
	}
	for _, y := range []entity.YearFigures{model.Prior, model.Current} {
		records = append(records, metric("ANR", y.Year, y.Rate, false))
	}

	window := model.ListingWindow.Months()
	records = append(records, []string{})
	listingHeader := []string{"Listing", "Area m2"}
	for _, m := range window {
		listingHeader = append(listingHeader, m.String())
	}
	listingHeader = append(listingHeader, "Total")
	records = append(records, listingHeader)

	for _, row := range report.Listings {
		rec := []string{row.ID, strconv.FormatFloat(row.Area, 'f', -1, 64)}
		var sum int64
		for _, m := range window {
			rec = append(rec, optional(row.Revenue, m))
			v, _ := row.Revenue.Get(m)
			sum += v
		}
		rec = append(rec, strconv.FormatInt(sum, 10))
		records = append(records, rec)
	}

	minRow, maxRow := []string{"Lowest", ""}, []string{"Highest", ""}
	for _, m := range window {
		e := report.Extremes.For(m)
		minRow = append(minRow, optionalPtr(e.Min))
		maxRow = append(maxRow, optionalPtr(e.Max))
	}
	records = append(records, minRow, maxRow)

	records = append(records, []string{})
	records = append(records, []string{"Total revenue", strconv.Itoa(model.Prior.Year), strconv.FormatInt(model.Prior.Revenue.Sum(), 10)})
	records = append(records, []string{"Total revenue", strconv.Itoa(model.Current.Year), strconv.FormatInt(model.Current.Revenue.Sum(), 10)})
	change := ""
	if pc := model.PercentChange(); pc != nil {
		change = strconv.FormatInt(*pc, 10)
	}
	records = append(records, []string{"Change %", "", change})

	if len(report.Unlisted) > 0 {
		records = append(records, []string{})
		unlisted := append([]string{"Not in listing table"}, report.Unlisted...)
		records = append(records, unlisted)
	}
	return records
}

func optional(series entity.MonthlySeries, m entity.Month) string {
	v, ok := series.Get(m)
	if !ok {
		return ""
	}
	return strconv.FormatInt(v, 10)
}

func optionalPtr(v *int64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatInt(*v, 10)
}

// jsonReport is the document written by ExportToJSON.
type jsonReport struct {
	GeneratedAt   time.Time           `json:"generated_at"`
	Model         *entity.ReportModel `json:"model"`
	Listings      []entity.ListingRow `json:"listings"`
	Extremes      entity.Extremes     `json:"extremes"`
	Unlisted      []string            `json:"unlisted"`
	PercentChange *int64              `json:"percent_change"`
}

func (r *ExportRepositoryImpl) ExportToJSON(report repository.ReportExport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "json")
	if err != nil {
		return "", err
	}

	file, err := os.Create(outputFilename)
	if err != nil {
		return "", fmt.Errorf("error creating JSON file: %w", err)
	}
	defer file.Close()

	unlisted := report.Unlisted
	if unlisted == nil {
		unlisted = []string{}
	}
	doc := jsonReport{
		GeneratedAt:   r.now().UTC(),
		Model:         report.Model,
		Listings:      report.Listings,
		Extremes:      report.Extremes,
		Unlisted:      unlisted,
		PercentChange: report.Model.PercentChange(),
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return "", fmt.Errorf("error encoding JSON data: %w", err)
	}

	return filepath.Abs(outputFilename)
}

// --- Helpers ---

// generateFilename builds a timestamped file name and makes sure the directory exists.
func (r *ExportRepositoryImpl) generateFilename(base, dir, ext string) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("could not get current working directory: %w", err)
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("error creating output directory '%s': %w", dir, err)
	}
	timestamp := r.now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", base, timestamp, ext)
	return filepath.Join(dir, filename), nil
}

// Matches pterm rich tags and ANSI color or style sequences.
var richTagRegex = regexp.MustCompile(`\[/?([a-zA-Z]+|#[0-9a-fA-F]{6})\]`)
var ansiRegex = regexp.MustCompile(`\x1B\[[0-9;]*[A-Za-z]`)

// cleanRichTags strips pterm formatting tags and ANSI sequences.
func cleanRichTags(text string) string {
	text = richTagRegex.ReplaceAllString(text, "")
	text = ansiRegex.ReplaceAllString(text, "")
	return text
}
