package console

import (
	"fmt"
	"math"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/filip867/Karl-Filip/internal/shared/types"
)

// Console implements ConsoleInterface.
type Console struct{}

// NewConsole creates a new Console.
func NewConsole() *Console {
	return &Console{}
}

// Print prints to the console.
func (c *Console) Print(a ...interface{}) {
	fmt.Print(a...)
}

// Printf prints a formatted string to the console.
func (c *Console) Printf(format string, a ...interface{}) {
	fmt.Printf(format, a...)
}

// Println prints to the console followed by a newline.
func (c *Console) Println(a ...interface{}) {
	fmt.Println(a...)
}

// LogInfo logs an informational message.
func (c *Console) LogInfo(format string, a ...interface{}) {
	pterm.Info.Printfln(format, a...)
}

// LogWarning logs a warning.
func (c *Console) LogWarning(format string, a ...interface{}) {
	pterm.Warning.Printfln(format, a...)
}

// LogError logs an error.
func (c *Console) LogError(format string, a ...interface{}) {
	pterm.Error.Printfln(format, a...)
}

// LogSuccess logs a success message.
func (c *Console) LogSuccess(format string, a ...interface{}) {
	pterm.Success.Printfln(format, a...)
}

// statusHandle implements StatusHandle.
type statusHandle struct {
	spinner *pterm.SpinnerPrinter
}

// Status starts a spinner showing message.
func (c *Console) Status(message string) types.StatusHandle {
	spinner, _ := pterm.DefaultSpinner.Start(message)
	return &statusHandle{spinner: spinner}
}

// Highlight colors for best/worst cells and percent changes.
var (
	BrightGreen = color.New(color.FgGreen, color.Bold).SprintFunc()
	BrightRed   = color.New(color.FgRed, color.Bold).SprintFunc()
)

// Update replaces the status message.
func (h *statusHandle) Update(message string) {
	if h.spinner != nil {
		h.spinner.UpdateText(message)
	}
}

// Stop stops the spinner.
func (h *statusHandle) Stop() {
	if h.spinner != nil {
		h.spinner.Stop()
	}
}

// Table implements TableInterface.
type Table struct {
	columns []string
	rows    [][]string
}

// CreateTable creates a new table.
func (c *Console) CreateTable() types.TableInterface {
	return &Table{
		columns: []string{},
		rows:    [][]string{},
	}
}

// AddColumn adds a column to the table.
func (t *Table) AddColumn(name string, options ...interface{}) {
	t.columns = append(t.columns, name)
}

// AddRow adds a row to the table.
func (t *Table) AddRow(cells ...interface{}) {
	processedCells := make([]string, len(cells))
	for i, cell := range cells {
		processedCells[i] = fmt.Sprint(cell)
	}
	t.rows = append(t.rows, processedCells)
}

// Render renders the table as a string.
func (t *Table) Render() string {
	tableData := pterm.TableData{t.columns}
	for _, row := range t.rows {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.
		WithHasHeader().
		WithBoxed().
		WithHeaderStyle(pterm.NewStyle(pterm.FgLightCyan)).
		WithData(tableData)

	renderedTable, _ := table.Srender()
	return renderedTable
}

// TrendRows builds the rows of a trend chart: month, value, bar and the
// change against the previous month that has data.
func TrendRows(points []types.TrendPoint, width int) [][]string {
	maxValue := 0.0
	for _, p := range points {
		if p.Present && p.Value > maxValue {
			maxValue = p.Value
		}
	}

	rows := make([][]string, 0, len(points))
	var prev *float64
	for _, p := range points {
		if !p.Present {
			rows = append(rows, []string{p.Month, Placeholder, "", ""})
			continue
		}

		barLength := 0
		if maxValue > 0 && p.Value > 0 {
			barLength = int(math.Round(p.Value / maxValue * float64(width)))
		}
		bar := strings.Repeat("█", barLength)
		barColor := pterm.FgBlue.Sprint(bar)
		change := ""

		if prev != nil {
			switch {
			case *prev <= 0:
				change = pterm.FgYellow.Sprint("N/A")
			default:
				changePercent := (p.Value - *prev) / *prev * 100.0
				switch {
				case math.Abs(changePercent) < 0.5:
					change = pterm.FgYellow.Sprint("0%")
					barColor = pterm.FgYellow.Sprint(bar)
				case changePercent > 0:
					change = pterm.FgGreen.Sprint(FormatChange(int64(math.Round(changePercent))))
					barColor = pterm.FgGreen.Sprint(bar)
				default:
					change = pterm.FgRed.Sprint(FormatChange(int64(math.Round(changePercent))))
					barColor = pterm.FgRed.Sprint(bar)
				}
			}
		}

		rows = append(rows, []string{p.Month, FormatNumber(int64(p.Value)), barColor, change})
		v := p.Value
		prev = &v
	}
	return rows
}

// DisplayTrendBars draws a bar chart of a monthly trend.
func (c *Console) DisplayTrendBars(title string, points []types.TrendPoint) {
	present := false
	for _, p := range points {
		if p.Present {
			present = true
			break
		}
	}
	if !present {
		pterm.Warning.Printfln("%s: no months with data", title)
		return
	}

	tableData := pterm.TableData{{"Month", "Value", "", "MoM Change"}}
	for _, row := range TrendRows(points, 40) {
		tableData = append(tableData, row)
	}

	table := pterm.DefaultTable.WithHasHeader().WithData(tableData)
	renderedTable, _ := table.Srender()

	panel := pterm.DefaultBox.WithTitle(title).WithBoxStyle(pterm.NewStyle(pterm.FgCyan)).Sprint(renderedTable)

	fmt.Println("\n" + panel)
}
