package types

// CLIArgs represents the command-line arguments.
type CLIArgs struct {
	ConfigFile string
	Input      string
	Profile    string
	Year       int
	ReportName string
	ReportType []string
	Dir        string
	StartMonth string
	Months     int
	ClientName string
	ReportDate string
	Trend      bool
}
