package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/planwise/procure/pkg/config"
	"github.com/planwise/procure/pkg/infrastructure/repositories/csv"
	"github.com/planwise/procure/pkg/infrastructure/repositories/memory"
	"github.com/planwise/procure/pkg/interfaces/cli/output"
	"github.com/planwise/procure/pkg/optimizer"
)

// Config holds configuration for the optimize command
type Config struct {
	ScenarioDir   string
	ProjectsFile  string
	ItemsFile     string
	OptionsFile   string
	BudgetsFile   string
	RatesFile     string
	RelationsFile string
	ConfigFile    string
	OutputDir     string
	Format        string
	Verbose       bool
	Help          bool
}

// OptimizeCommand loads a scenario, runs the optimization engine, and renders
// the resulting proposals
type OptimizeCommand struct {
	config Config
}

// NewOptimizeCommand creates a new optimize command with the given configuration
func NewOptimizeCommand(config Config) *OptimizeCommand {
	return &OptimizeCommand{config: config}
}

// Execute runs the optimize command
func (c *OptimizeCommand) Execute(ctx context.Context) error {
	if c.config.Help {
		c.showHelp()
		return nil
	}

	if err := c.validateInputs(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	files, err := c.resolveInputFiles()
	if err != nil {
		return fmt.Errorf("failed to resolve input files: %w", err)
	}

	runCfg := optimizer.DefaultRunConfig()
	if c.config.ConfigFile != "" {
		runCfg, err = config.Load(c.config.ConfigFile)
		if err != nil {
			return err
		}
	}

	snap, err := c.loadSnapshot(files)
	if err != nil {
		return err
	}

	engine := optimizer.NewEngine(slog.Default())
	result, err := engine.Run(ctx, snap, runCfg)
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}

	return output.Generate(result, output.Config{
		Format:    c.config.Format,
		OutputDir: c.config.OutputDir,
		Verbose:   c.config.Verbose,
	})
}

// loadSnapshot parses the scenario CSVs into memory repositories and takes
// the engine's input snapshot from them
func (c *OptimizeCommand) loadSnapshot(files map[string]string) (*optimizer.Snapshot, error) {
	loader := csv.NewLoader()

	projects, err := loader.LoadProjects(files["Projects"])
	if err != nil {
		return nil, fmt.Errorf("error loading projects: %w", err)
	}
	items, err := loader.LoadItems(files["Items"])
	if err != nil {
		return nil, fmt.Errorf("error loading items: %w", err)
	}
	options, err := loader.LoadOptions(files["Options"])
	if err != nil {
		return nil, fmt.Errorf("error loading options: %w", err)
	}
	budgets, err := loader.LoadBudgetPeriods(files["Budgets"])
	if err != nil {
		return nil, fmt.Errorf("error loading budgets: %w", err)
	}

	projectRepo := memory.NewProjectRepository(len(projects))
	if err := projectRepo.LoadProjects(projects); err != nil {
		return nil, fmt.Errorf("failed to load projects into repository: %w", err)
	}
	itemRepo := memory.NewItemRepository(len(items))
	if err := itemRepo.LoadItems(items); err != nil {
		return nil, fmt.Errorf("failed to load items into repository: %w", err)
	}
	optionRepo := memory.NewOptionRepository(len(options))
	if err := optionRepo.LoadOptions(options); err != nil {
		return nil, fmt.Errorf("failed to load options into repository: %w", err)
	}
	budgetRepo := memory.NewBudgetRepository()
	if err := budgetRepo.LoadBudgetPeriods(budgets); err != nil {
		return nil, fmt.Errorf("failed to load budgets into repository: %w", err)
	}

	rateRepo := memory.NewRateRepository()
	if path, ok := files["Rates"]; ok {
		loaded, err := loader.LoadRates(path)
		if err != nil {
			return nil, fmt.Errorf("error loading rates: %w", err)
		}
		if err := rateRepo.LoadRates(loaded); err != nil {
			return nil, fmt.Errorf("failed to load rates into repository: %w", err)
		}
	}

	relationRepo := memory.NewRelationRepository()
	if path, ok := files["Relations"]; ok {
		relations, err := loader.LoadRelations(path)
		if err != nil {
			return nil, fmt.Errorf("error loading relations: %w", err)
		}
		if err := relationRepo.LoadRelations(relations); err != nil {
			return nil, fmt.Errorf("failed to load relations into repository: %w", err)
		}
	}

	if c.config.Verbose {
		fmt.Printf("Data loaded: %d projects, %d items, %d options, %d budget periods\n",
			len(projects), len(items), len(options), len(budgets))
	}

	return optimizer.TakeSnapshot(
		time.Now().UTC().Truncate(24*time.Hour),
		itemRepo, projectRepo, optionRepo, budgetRepo, rateRepo, relationRepo,
	)
}

// validateInputs checks that the command has a usable input specification
func (c *OptimizeCommand) validateInputs() error {
	if c.config.ScenarioDir == "" &&
		(c.config.ProjectsFile == "" || c.config.ItemsFile == "" ||
			c.config.OptionsFile == "" || c.config.BudgetsFile == "") {
		return fmt.Errorf("either -scenario or all of -projects, -items, -options, -budgets must be provided")
	}
	switch c.config.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unsupported format: %s (expected text or json)", c.config.Format)
	}
	return nil
}

// resolveInputFiles maps input names to file paths, from the scenario
// directory or explicit flags. Rates and relations are optional.
func (c *OptimizeCommand) resolveInputFiles() (map[string]string, error) {
	files := make(map[string]string)

	if c.config.ScenarioDir != "" {
		required := map[string]string{
			"Projects": "projects.csv",
			"Items":    "items.csv",
			"Options":  "options.csv",
			"Budgets":  "budgets.csv",
		}
		for name, base := range required {
			path := filepath.Join(c.config.ScenarioDir, base)
			if _, err := os.Stat(path); err != nil {
				return nil, fmt.Errorf("scenario file missing: %s", path)
			}
			files[name] = path
		}
		for name, base := range map[string]string{
			"Rates":     "rates.csv",
			"Relations": "relations.csv",
		} {
			path := filepath.Join(c.config.ScenarioDir, base)
			if _, err := os.Stat(path); err == nil {
				files[name] = path
			}
		}
		return files, nil
	}

	files["Projects"] = c.config.ProjectsFile
	files["Items"] = c.config.ItemsFile
	files["Options"] = c.config.OptionsFile
	files["Budgets"] = c.config.BudgetsFile
	if c.config.RatesFile != "" {
		files["Rates"] = c.config.RatesFile
	}
	if c.config.RelationsFile != "" {
		files["Relations"] = c.config.RelationsFile
	}
	return files, nil
}

func (c *OptimizeCommand) showHelp() {
	fmt.Println(`procure - multi-project procurement optimizer

Usage:
  procure -scenario DIR [options]
  procure -projects FILE -items FILE -options FILE -budgets FILE [options]

Scenario directory layout:
  projects.csv   project_id,name,priority_weight
  items.csv      project_id,item_code,description,quantity,delivery_window
  options.csv    option_id,item_code,supplier,unit_cost,currency,
                 lead_time_periods,bundle_threshold,bundle_discount_percent,
                 payment_terms
  budgets.csv    offset_periods,available
  rates.csv      date,from_currency,to_currency,rate        (optional)
  relations.csv  from_item,to_item,kind                     (optional)

Options:
  -config FILE   YAML run configuration (strategies, solver, limits)
  -format FMT    Output format: text, json (default text)
  -output DIR    Write results to DIR as JSON
  -verbose       Verbose output
  -help          Show this message`)
}
