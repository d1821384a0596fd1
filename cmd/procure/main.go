package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/planwise/procure/pkg/interfaces/cli/commands"
	"github.com/planwise/procure/pkg/logging"
)

func main() {
	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			"",
			"Path to scenario directory containing CSV files",
		)
		projectsFile  = flag.String("projects", "", "Path to projects CSV file")
		itemsFile     = flag.String("items", "", "Path to items CSV file")
		optionsFile   = flag.String("options", "", "Path to options CSV file")
		budgetsFile   = flag.String("budgets", "", "Path to budgets CSV file")
		ratesFile     = flag.String("rates", "", "Path to exchange rates CSV file (optional)")
		relationsFile = flag.String("relations", "", "Path to relations CSV file (optional)")
		configFile    = flag.String("config", "", "Path to YAML run configuration (optional)")
		outputDir     = flag.String("output", "", "Output directory for results (optional)")
		format        = flag.String("format", "text", "Output format: text, json")
		verbose       = flag.Bool("verbose", false, "Enable verbose output")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	if *verbose {
		logging.SetupWithLevel(slog.LevelDebug)
	} else {
		logging.Setup()
	}

	config := commands.Config{
		ScenarioDir:   *scenarioDir,
		ProjectsFile:  *projectsFile,
		ItemsFile:     *itemsFile,
		OptionsFile:   *optionsFile,
		BudgetsFile:   *budgetsFile,
		RatesFile:     *ratesFile,
		RelationsFile: *relationsFile,
		ConfigFile:    *configFile,
		OutputDir:     *outputDir,
		Format:        *format,
		Verbose:       *verbose,
		Help:          *help,
	}

	cmd := commands.NewOptimizeCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
