package repository

import (
	"github.com/filip867/Karl-Filip/internal/domain/entity"
)

// ReportExport bundles what an exporter needs besides the model itself.
type ReportExport struct {
	Model    *entity.ReportModel
	Listings []entity.ListingRow
	Extremes entity.Extremes
	Unlisted []string
}

type ExportRepository interface {
	ExportToCSV(report ReportExport, filename string, outputDir string) (string, error)
	ExportToJSON(report ReportExport, filename string, outputDir string) (string, error)
	ExportToPDF(report ReportExport, filename string, outputDir string) (string, error)
}
