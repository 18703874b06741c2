package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/filip867/Karl-Filip/internal/domain/entity"
	"github.com/filip867/Karl-Filip/internal/domain/repository"
	"github.com/filip867/Karl-Filip/pkg/console"
)

// Slide geometry, A4 landscape in mm.
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginX      = 15.0
	contentWidth = pageWidth - 2*marginX
)

type rgb [3]int

var (
	headerColor   = rgb{24, 48, 72}
	headerText    = rgb{255, 255, 255}
	bodyTextColor = rgb{50, 50, 50}
	mutedColor    = rgb{128, 128, 128}
	priorColor    = rgb{180, 190, 200}
	currentColor  = rgb{40, 110, 170}
	bestColor     = rgb{198, 239, 206}
	worstColor    = rgb{255, 199, 206}
	highlightText = rgb{0, 128, 0}
	lineColor     = rgb{200, 200, 200}
)

// deck wraps a gofpdf document with the slide helpers.
type deck struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string
	report repository.ReportExport
	footer string
	page   int
}

func (r *ExportRepositoryImpl) ExportToPDF(report repository.ReportExport, filename, outputDir string) (string, error) {
	outputFilename, err := r.generateFilename(filename, outputDir, "pdf")
	if err != nil {
		return "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	d := &deck{
		pdf:    pdf,
		tr:     pdf.UnicodeTranslatorFromDescriptor(""),
		report: report,
		footer: fmt.Sprintf("%s | %s", report.Model.ClientName, r.now().Format("2006-01-02")),
	}

	d.cover()
	d.metricSlide("Owners Revenue", "kr", func(y entity.YearFigures) entity.MonthlySeries { return y.Revenue }, report.Model.Bullets.Revenue)
	d.metricSlide("Beläggning", "%", func(y entity.YearFigures) entity.MonthlySeries { return y.Occupancy }, report.Model.Bullets.Occupancy)
	d.metricSlide("ANR", "kr", func(y entity.YearFigures) entity.MonthlySeries { return y.Rate }, report.Model.Bullets.Rate)
	d.listingsSlide()
	d.totalSlide()
	d.qualitySlide()
	d.actionsSlide()

	if err := pdf.OutputFileAndClose(outputFilename); err != nil {
		return "", fmt.Errorf("error writing PDF file: %w", err)
	}
	return filepath.Abs(outputFilename)
}

func (d *deck) setText(c rgb) { d.pdf.SetTextColor(c[0], c[1], c[2]) }
func (d *deck) setFill(c rgb) { d.pdf.SetFillColor(c[0], c[1], c[2]) }

// slide starts a page with a title bar and returns the y below it.
func (d *deck) slide(title string) float64 {
	d.page++
	d.pdf.AddPage()

	d.setFill(headerColor)
	d.setText(headerText)
	d.pdf.SetFont("Arial", "B", 18)
	d.pdf.SetXY(0, 0)
	d.pdf.CellFormat(pageWidth, 18, d.tr("  "+title), "", 1, "L", true, 0, "")

	d.pdf.SetY(pageHeight - 12)
	d.pdf.SetX(marginX)
	d.pdf.SetFont("Arial", "I", 8)
	d.setText(mutedColor)
	d.pdf.CellFormat(contentWidth/2, 8, d.tr(d.footer), "", 0, "L", false, 0, "")
	d.pdf.CellFormat(contentWidth/2, 8, fmt.Sprintf("Page %d", d.page), "", 0, "R", false, 0, "")

	d.setText(bodyTextColor)
	return 26
}

func (d *deck) bullets(y float64, items []string) {
	if len(items) == 0 {
		return
	}
	d.pdf.SetFont("Arial", "", 11)
	d.setText(bodyTextColor)
	d.pdf.SetXY(marginX, y)
	for _, item := range items {
		item = strings.TrimSpace(cleanRichTags(item))
		if item == "" {
			continue
		}
		d.pdf.SetX(marginX)
		d.pdf.MultiCell(contentWidth, 6, d.tr("• "+item), "", "L", false)
	}
}

func (d *deck) cover() {
	d.page++
	d.pdf.AddPage()
	d.setFill(headerColor)
	d.pdf.Rect(0, 0, pageWidth, pageHeight, "F")

	model := d.report.Model
	d.setText(headerText)
	d.pdf.SetFont("Arial", "B", 32)
	d.pdf.SetXY(marginX, 70)
	d.pdf.CellFormat(contentWidth, 16, d.tr(model.ClientName), "", 1, "L", false, 0, "")
	d.pdf.SetFont("Arial", "", 16)
	d.pdf.SetX(marginX)
	d.pdf.CellFormat(contentWidth, 10, d.tr(fmt.Sprintf("Rapport %d", model.Current.Year)), "", 1, "L", false, 0, "")
	if model.ReportDate != "" {
		d.pdf.SetX(marginX)
		d.pdf.CellFormat(contentWidth, 10, d.tr(model.ReportDate), "", 1, "L", false, 0, "")
	}
	if model.LastImport != nil {
		d.pdf.SetFont("Arial", "I", 10)
		d.pdf.SetX(marginX)
		d.pdf.CellFormat(contentWidth, 8, d.tr(fmt.Sprintf("Source: %s", model.LastImport.Source)), "", 1, "L", false, 0, "")
	}
}

// metricSlide draws prior and current bars for each chart month.
func (d *deck) metricSlide(title, unit string, pick func(entity.YearFigures) entity.MonthlySeries, bullets []string) {
	y := d.slide(title)
	model := d.report.Model
	prior, current := pick(model.Prior), pick(model.Current)
	months := model.ChartMonths
	if len(months) == 0 {
		months = entity.Calendar()
	}

	chartTop, chartHeight := y+8, 95.0
	maxValue := int64(0)
	for _, m := range months {
		if v, ok := current.Get(m); ok && v > maxValue {
			maxValue = v
		}
		if model.ShowPrior {
			if v, ok := prior.Get(m); ok && v > maxValue {
				maxValue = v
			}
		}
	}

	slotWidth := contentWidth / float64(len(months))
	barWidth := slotWidth * 0.35
	baseline := chartTop + chartHeight

	d.pdf.SetDrawColor(lineColor[0], lineColor[1], lineColor[2])
	d.pdf.Line(marginX, baseline, marginX+contentWidth, baseline)

	bar := func(x float64, v int64, ok bool, c rgb) {
		if !ok {
			d.pdf.SetFont("Arial", "", 8)
			d.setText(mutedColor)
			d.pdf.SetXY(x, baseline-6)
			d.pdf.CellFormat(barWidth, 5, d.tr(console.Placeholder), "", 0, "C", false, 0, "")
			return
		}
		h := 0.0
		if maxValue > 0 && v > 0 {
			h = float64(v) / float64(maxValue) * (chartHeight - 10)
		}
		d.setFill(c)
		d.pdf.Rect(x, baseline-h, barWidth, h, "F")
		d.pdf.SetFont("Arial", "", 7)
		d.setText(bodyTextColor)
		d.pdf.SetXY(x-4, baseline-h-5)
		d.pdf.CellFormat(barWidth+8, 5, d.tr(formatValue(v, unit)), "", 0, "C", false, 0, "")
	}

	for i, m := range months {
		slotX := marginX + float64(i)*slotWidth
		if model.ShowPrior {
			v, ok := prior.Get(m)
			bar(slotX+slotWidth*0.12, v, ok, priorColor)
		}
		v, ok := current.Get(m)
		bar(slotX+slotWidth*0.53, v, ok, currentColor)

		d.pdf.SetFont("Arial", "B", 9)
		d.setText(bodyTextColor)
		d.pdf.SetXY(slotX, baseline+1)
		d.pdf.CellFormat(slotWidth, 6, d.tr(m.String()), "", 0, "C", false, 0, "")
	}

	d.legend(baseline + 9)
	d.bullets(baseline+17, bullets)
}

func (d *deck) legend(y float64) {
	model := d.report.Model
	x := marginX
	item := func(c rgb, label string) {
		d.setFill(c)
		d.pdf.Rect(x, y+1, 4, 4, "F")
		d.pdf.SetXY(x+5, y)
		d.pdf.SetFont("Arial", "", 9)
		d.setText(bodyTextColor)
		d.pdf.CellFormat(30, 6, d.tr(label), "", 0, "L", false, 0, "")
		x += 36
	}
	if model.ShowPrior {
		item(priorColor, fmt.Sprint(model.Prior.Year))
	}
	item(currentColor, fmt.Sprint(model.Current.Year))
}

func (d *deck) listingsSlide() {
	y := d.slide("Listings")
	window := d.report.Model.ListingWindow.Months()

	idWidth, areaWidth := 40.0, 25.0
	cellWidth := (contentWidth - idWidth - areaWidth) / float64(len(window)+1)

	d.pdf.SetXY(marginX, y)
	d.pdf.SetFont("Arial", "B", 10)
	d.setFill(rgb{240, 240, 240})
	d.pdf.CellFormat(idWidth, 7, "Listing", "B", 0, "L", true, 0, "")
	d.pdf.CellFormat(areaWidth, 7, d.tr("m²"), "B", 0, "R", true, 0, "")
	for _, m := range window {
		d.pdf.CellFormat(cellWidth, 7, d.tr(m.String()), "B", 0, "R", true, 0, "")
	}
	d.pdf.CellFormat(cellWidth, 7, "Total", "B", 1, "R", true, 0, "")

	rowHeight := 6.5
	if n := len(d.report.Listings); n > 18 {
		rowHeight = 120 / float64(n)
	}

	d.pdf.SetFont("Arial", "", 9)
	for _, row := range d.report.Listings {
		d.pdf.SetX(marginX)
		d.setText(bodyTextColor)
		d.pdf.CellFormat(idWidth, rowHeight, d.tr(row.ID), "", 0, "L", false, 0, "")
		d.pdf.CellFormat(areaWidth, rowHeight, fmt.Sprintf("%g", row.Area), "", 0, "R", false, 0, "")

		var sum int64
		for _, m := range window {
			v, ok := row.Revenue.Get(m)
			e := d.report.Extremes.For(m)
			fill := false
			switch {
			case ok && e.IsBest(v):
				d.setFill(bestColor)
				fill = true
			case ok && e.IsWorst(v):
				d.setFill(worstColor)
				fill = true
			}
			text := console.Placeholder
			if ok {
				text = console.FormatNumber(v)
				sum += v
			}
			d.pdf.CellFormat(cellWidth, rowHeight, d.tr(text), "", 0, "R", fill, 0, "")
		}
		d.pdf.CellFormat(cellWidth, rowHeight, d.tr(console.FormatNumber(sum)), "", 1, "R", false, 0, "")
	}

	if len(d.report.Unlisted) > 0 {
		d.pdf.Ln(3)
		d.pdf.SetX(marginX)
		d.pdf.SetFont("Arial", "I", 8)
		d.setText(mutedColor)
		d.pdf.MultiCell(contentWidth, 5, d.tr("Not in listing table: "+strings.Join(d.report.Unlisted, ", ")), "", "L", false)
	}
	d.bullets(d.pdf.GetY()+4, d.report.Model.Bullets.Listings)
}

func (d *deck) totalSlide() {
	y := d.slide("Total Revenue")
	model := d.report.Model

	boxWidth := contentWidth / 2
	d.pdf.SetXY(marginX, y+15)
	d.pdf.SetFont("Arial", "", 14)
	d.setText(mutedColor)
	if model.ShowPrior {
		d.pdf.CellFormat(boxWidth, 10, fmt.Sprint(model.Prior.Year), "", 0, "C", false, 0, "")
	}
	d.pdf.CellFormat(boxWidth, 10, fmt.Sprint(model.Current.Year), "", 1, "C", false, 0, "")

	d.pdf.SetX(marginX)
	d.pdf.SetFont("Arial", "B", 28)
	d.setText(bodyTextColor)
	if model.ShowPrior {
		d.pdf.CellFormat(boxWidth, 18, d.tr(console.FormatKr(model.Prior.Revenue.Sum())), "", 0, "C", false, 0, "")
	}
	d.pdf.CellFormat(boxWidth, 18, d.tr(console.FormatKr(model.Current.Revenue.Sum())), "", 1, "C", false, 0, "")

	if pc := model.PercentChange(); pc != nil {
		d.pdf.SetX(marginX)
		d.pdf.SetFont("Arial", "B", 20)
		if *pc >= 0 {
			d.setText(highlightText)
		} else {
			d.setText(rgb{192, 0, 0})
		}
		d.pdf.CellFormat(contentWidth, 14, console.FormatChange(*pc), "", 1, "C", false, 0, "")
	}
	d.bullets(d.pdf.GetY()+10, model.Bullets.Total)
}

func (d *deck) qualitySlide() {
	y := d.slide("Quality")
	q := d.report.Model.Quality
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

	d.pdf.SetXY(marginX, y+4)
	for _, s := range scores {
		d.pdf.SetX(marginX)
		d.pdf.SetFont("Arial", "", 12)
		d.setText(bodyTextColor)
		d.pdf.CellFormat(60, 9, s.label, "", 0, "L", false, 0, "")
		if s.value >= entity.HighlightThreshold {
			d.pdf.SetFont("Arial", "B", 12)
			d.setText(highlightText)
		}
		d.pdf.CellFormat(30, 9, fmt.Sprintf("%.2f", s.value), "", 1, "R", false, 0, "")
	}
	d.bullets(d.pdf.GetY()+6, d.report.Model.Bullets.Quality)
}

func (d *deck) actionsSlide() {
	y := d.slide("Actions")
	d.bullets(y+4, d.report.Model.Bullets.Actions)
}

func formatValue(v int64, unit string) string {
	if unit == "%" {
		return console.FormatPercent(v)
	}
	return console.FormatNumber(v)
}
