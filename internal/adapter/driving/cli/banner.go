package cli

import (
	"fmt"

	"github.com/fatih/color"

	"github.com/filip867/Karl-Filip/pkg/version"
)

// displayWelcomeBanner exibe o banner de boas-vindas com informações de versão.
func displayWelcomeBanner(versionStr string) {
	banner := `
         ____                              _
        |  _ \ __ _ _ __  _ __   ___  _ __| |_
        | |_) / _' | '_ \| '_ \ / _ \| '__| __|
        |  _ < (_| | |_) | |_) | (_) | |  | |_
        |_| \_\__,_| .__/| .__/ \___/|_|   \__|
                   |_|   |_|
        `
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(cyan(banner))
	fmt.Println(blue(fmt.Sprintf("Owner report builder (v%s)", version.FormatVersion())))
}
