package types

// ConsoleInterface is the console output the application writes to.
type ConsoleInterface interface {
	Print(a ...interface{})
	Printf(format string, a ...interface{})
	Println(a ...interface{})

	LogInfo(format string, a ...interface{})
	LogWarning(format string, a ...interface{})
	LogError(format string, a ...interface{})
	LogSuccess(format string, a ...interface{})

	Status(message string) StatusHandle

	CreateTable() TableInterface
	DisplayTrendBars(title string, points []TrendPoint)
}

// StatusHandle updates a status message.
type StatusHandle interface {
	Update(message string)
	Stop()
}

// TableInterface builds and renders a table.
type TableInterface interface {
	AddColumn(name string, options ...interface{})
	AddRow(cells ...interface{})
	Render() string
}

// TrendPoint is one bar of a monthly trend chart. Months without data have
// Present set to false and are drawn as "—".
type TrendPoint struct {
	Month   string  `json:"month"`
	Value   float64 `json:"value"`
	Present bool    `json:"present"`
}
