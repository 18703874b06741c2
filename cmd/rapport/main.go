package main

import (
	"fmt"
	"os"

	"github.com/filip867/Karl-Filip/internal/adapter/driven/config"
	"github.com/filip867/Karl-Filip/internal/adapter/driven/export"
	"github.com/filip867/Karl-Filip/internal/adapter/driven/source"
	"github.com/filip867/Karl-Filip/internal/adapter/driving/cli"
	"github.com/filip867/Karl-Filip/internal/application/usecase"
	"github.com/filip867/Karl-Filip/pkg/console"
	"github.com/filip867/Karl-Filip/pkg/version"
)

func main() {
	// Inicializa o aplicativo CLI
	app := cli.NewCLIApp(version.Version)

	// Inicializa os repositórios
	exportRepo := export.NewExportRepository()
	configRepo := config.NewConfigRepository()
	consoleImpl := console.NewConsole()

	// Inicializa o caso de uso
	reportUseCase := usecase.NewReportUseCase(
		source.NewSourceRepository,
		exportRepo,
		configRepo,
		consoleImpl,
	)

	app.SetReportUseCase(reportUseCase)

	// Executa o aplicativo
	if err := app.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
