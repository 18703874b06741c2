package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/filip867/Karl-Filip/internal/adapter/driving/httpapi"
	"github.com/filip867/Karl-Filip/internal/application/usecase"
	"github.com/filip867/Karl-Filip/internal/shared/types"
	"github.com/filip867/Karl-Filip/pkg/version"
)

// CLIApp represents the command-line interface application.
type CLIApp struct {
	rootCmd       *cobra.Command
	reportUseCase *usecase.ReportUseCase
	version       string
	quiet         bool
}

// NewCLIApp creates a new CLI application.
func NewCLIApp(versionStr string) *CLIApp {
	app := &CLIApp{
		version: versionStr,
	}

	formattedVersion := version.FormatVersion()

	rootCmd := &cobra.Command{
		Use:          "rapport",
		Short:        "Owner report builder for short-term rental exports",
		Version:      formattedVersion,
		SilenceUsage: true,
		RunE:         app.runCommand,
	}

	rootCmd.SetVersionTemplate(`{{printf "rapport version: %s\n" .Version}}`)

	flags := rootCmd.PersistentFlags()
	flags.StringP("config-file", "C", "", "Path to a TOML, YAML, or JSON configuration file")
	flags.StringP("input", "i", "", "Export to import: a .csv/.txt/.xlsx path or s3://bucket/key")
	flags.String("profile", "", "AWS shared-config profile for s3:// inputs")
	flags.Int("year", 0, "Year the report covers (default from config)")
	flags.StringP("report-name", "n", "", "Specify the base name for the report file (without extension)")
	flags.StringSliceP("report-type", "y", []string{"csv"}, "Specify report types: csv, json, pdf")
	flags.StringP("dir", "d", "", "Directory to save the report files (default: current directory)")
	flags.String("start-month", "", "First month of the listing table, e.g. Jan")
	flags.Int("months", 0, "Number of months in the listing table (1-12)")
	flags.String("client", "", "Client name shown on the cover")
	flags.String("report-date", "", "Report date shown on the cover")
	flags.Bool("trend", false, "Display monthly trend bars for the report year")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the report session over HTTP",
		RunE:  app.runServe,
	}
	serveCmd.Flags().String("addr", "", "Listen address (default from config, :8080)")
	serveCmd.Flags().BoolVarP(&app.quiet, "quiet", "q", false, "Skip the banner")
	rootCmd.AddCommand(serveCmd)

	app.rootCmd = rootCmd
	return app
}

// Execute runs the CLI application.
func (app *CLIApp) Execute() error {
	return app.rootCmd.ExecuteContext(context.Background())
}

// SetArgs overrides the command-line arguments, for tests.
func (app *CLIApp) SetArgs(args []string) {
	app.rootCmd.SetArgs(args)
}

// parseArgs parses command-line arguments into a CLIArgs struct. Flags left
// at their defaults stay zero so the configuration file can supply them.
func (app *CLIApp) parseArgs(cmd *cobra.Command) (*types.CLIArgs, error) {
	flags := cmd.Flags()
	configFile, _ := flags.GetString("config-file")
	input, _ := flags.GetString("input")
	profile, _ := flags.GetString("profile")
	year, _ := flags.GetInt("year")
	reportName, _ := flags.GetString("report-name")
	dir, _ := flags.GetString("dir")
	startMonth, _ := flags.GetString("start-month")
	months, _ := flags.GetInt("months")
	clientName, _ := flags.GetString("client")
	reportDate, _ := flags.GetString("report-date")
	trend, _ := flags.GetBool("trend")

	var reportType []string
	if flags.Changed("report-type") {
		reportType, _ = flags.GetStringSlice("report-type")
	}

	if dir != "" {
		absDir, err := filepath.Abs(dir)
		if err != nil {
			return nil, err
		}
		dir = absDir
	}

	return &types.CLIArgs{
		ConfigFile: configFile,
		Input:      input,
		Profile:    profile,
		Year:       year,
		ReportName: reportName,
		ReportType: reportType,
		Dir:        dir,
		StartMonth: startMonth,
		Months:     months,
		ClientName: clientName,
		ReportDate: reportDate,
		Trend:      trend,
	}, nil
}

// runCommand is the entry point of the root command.
func (app *CLIApp) runCommand(cmd *cobra.Command, args []string) error {
	displayWelcomeBanner(app.version)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go version.CheckLatestVersion(ctx, app.version)

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	return app.reportUseCase.RunReport(ctx, cliArgs)
}

// runServe configures the session, imports the configured export if there is
// one and serves the HTTP API until interrupted.
func (app *CLIApp) runServe(cmd *cobra.Command, args []string) error {
	if !app.quiet {
		displayWelcomeBanner(app.version)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cliArgs, err := app.parseArgs(cmd)
	if err != nil {
		return err
	}

	cfg, err := app.reportUseCase.Configure(cliArgs)
	if err != nil {
		return err
	}
	if cfg.Input != "" {
		if _, err := app.reportUseCase.Import(ctx, cfg.Input); err != nil {
			return err
		}
	}

	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = cfg.Server.Addr
	}
	if addr == "" {
		addr = ":8080"
	}

	server := httpapi.NewServer(app.reportUseCase,
		httpapi.WithImportLimit(cfg.Server.ImportRate, cfg.Server.ImportBurst),
		httpapi.WithImportLocations(cfg.Server.ImportDir, cfg.Server.ImportS3Prefix))
	cmd.Printf("Serving report API on %s\n", addr)
	return server.ListenAndServe(ctx, addr)
}

// SetReportUseCase sets the report use case for the CLI app.
func (app *CLIApp) SetReportUseCase(useCase *usecase.ReportUseCase) {
	app.reportUseCase = useCase
}
