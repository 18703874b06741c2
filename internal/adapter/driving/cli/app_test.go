package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {
	app := NewCLIApp("1.0.0")
	cmd := app.rootCmd
	require.NoError(t, cmd.ParseFlags([]string{
		"-C", "report.yaml",
		"-i", "s3://bucket/export.csv",
		"--profile", "reports",
		"--year", "2027",
		"-n", "rapport",
		"-y", "pdf,json",
		"-d", "out",
		"--start-month", "Mar",
		"--months", "6",
		"--client", "Test Client",
		"--report-date", "April 2027",
		"--trend",
	}))

	args, err := app.parseArgs(cmd)
	require.NoError(t, err)

	abs, _ := filepath.Abs("out")
	assert.Equal(t, "report.yaml", args.ConfigFile)
	assert.Equal(t, "s3://bucket/export.csv", args.Input)
	assert.Equal(t, "reports", args.Profile)
	assert.Equal(t, 2027, args.Year)
	assert.Equal(t, "rapport", args.ReportName)
	assert.Equal(t, []string{"pdf", "json"}, args.ReportType)
	assert.Equal(t, abs, args.Dir)
	assert.Equal(t, "Mar", args.StartMonth)
	assert.Equal(t, 6, args.Months)
	assert.Equal(t, "Test Client", args.ClientName)
	assert.Equal(t, "April 2027", args.ReportDate)
	assert.True(t, args.Trend)
}

func TestParseArgs_DefaultsStayZero(t *testing.T) {
	app := NewCLIApp("1.0.0")
	cmd := app.rootCmd
	require.NoError(t, cmd.ParseFlags(nil))

	args, err := app.parseArgs(cmd)
	require.NoError(t, err)
	assert.Nil(t, args.ReportType, "unset --report-type leaves the config value alone")
	assert.Empty(t, args.Dir)
	assert.Zero(t, args.Year)
}

func TestServeCommandRegistered(t *testing.T) {
	app := NewCLIApp("1.0.0")
	serve, _, err := app.rootCmd.Find([]string{"serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())
	assert.NotNil(t, serve.Flags().Lookup("addr"))
}
