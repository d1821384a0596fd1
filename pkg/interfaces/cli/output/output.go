package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/planwise/procure/pkg/application/dto"
	"github.com/planwise/procure/pkg/domain/entities"
)

// Config holds configuration for output generation
type Config struct {
	Format    string
	OutputDir string
	Verbose   bool
	Writer    io.Writer
}

// Generate renders a run result in the specified format
func Generate(result *dto.RunResult, config Config) error {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *dto.RunResult, config Config) error {
	w := config.Writer

	fmt.Fprintf(w, "Procurement Optimization Results\n")
	fmt.Fprintf(w, "================================\n\n")
	fmt.Fprintf(w, "Run ID: %s\n", result.RunID)
	fmt.Fprintf(w, "Status: %s\n", result.Status)
	fmt.Fprintf(w, "Items: %d total, %d optimized, %d unschedulable\n",
		result.ItemsTotal, result.ItemsOptimized, len(result.Unschedulable))
	fmt.Fprintf(w, "Best Total Cost: %s\n", result.TotalCost.StringFixed(2))
	fmt.Fprintf(w, "Execution Time: %.3fs\n\n", result.ExecutionTimeSeconds)

	for i := range result.Proposals {
		printProposal(w, &result.Proposals[i])
	}

	if len(result.Unschedulable) > 0 {
		fmt.Fprintf(w, "Unschedulable Items:\n")
		for _, u := range result.Unschedulable {
			fmt.Fprintf(w, "  %s/%s: %s\n", u.ProjectID, u.ItemCode, u.Reason)
		}
		fmt.Fprintln(w)
	}

	if result.CriticalPath != nil && result.CriticalPath.TotalPaths > 0 {
		printCriticalPaths(w, result)
	}

	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		filename := filepath.Join(config.OutputDir, "proposals.json")
		if err := writeJSONFile(result, filename); err != nil {
			return err
		}
		if config.Verbose {
			fmt.Fprintf(w, "Results saved to: %s\n", filename)
		}
	}
	return nil
}

func printProposal(w io.Writer, p *entities.Proposal) {
	fmt.Fprintf(w, "Proposal: %s (%s, solver %s)\n", p.Strategy, p.Status, p.SolverName)
	fmt.Fprintf(w, "  Total Cost: %s  Weighted Cost: %s  Cashflow Spread: %s\n",
		p.TotalCost.StringFixed(2), p.WeightedCost.StringFixed(2), p.CashflowSpread.StringFixed(2))
	if p.Degraded {
		fmt.Fprintf(w, "  NOTE: degraded (post-solve repair or bundle repricing)\n")
	}

	if len(p.Decisions) > 0 {
		fmt.Fprintf(w, "  %-10s %-12s %-10s %-12s %-6s %-12s %-12s %-12s %-7s\n",
			"Project", "Item", "Option", "Supplier", "Qty", "Purchase", "Delivery", "Cost", "Bundle")
		fmt.Fprintf(w, "  %-10s %-12s %-10s %-12s %-6s %-12s %-12s %-12s %-7s\n",
			"----------", "------------", "----------", "------------", "------",
			"------------", "------------", "------------", "-------")
		for _, d := range p.Decisions {
			bundle := ""
			if d.BundleApplied {
				bundle = "yes"
			}
			fmt.Fprintf(w, "  %-10s %-12s %-10s %-12s %-6d %-12s %-12s %-12s %-7s\n",
				d.ProjectID,
				d.ItemCode,
				d.OptionID,
				d.Supplier,
				d.Quantity,
				d.PurchaseDate.Format("2006-01-02"),
				d.DeliveryDate.Format("2006-01-02"),
				d.FinalCost.StringFixed(2),
				bundle)
		}
	}

	for _, b := range p.Bunches {
		codes := make([]string, 0, len(b.Decisions))
		for _, d := range b.Decisions {
			codes = append(codes, string(d.ProjectID)+"/"+string(d.ItemCode))
		}
		fmt.Fprintf(w, "  %s: %v\n", b.Tag, codes)
	}

	if len(p.Skipped) > 0 {
		fmt.Fprintf(w, "  Skipped:\n")
		for _, s := range p.Skipped {
			fmt.Fprintf(w, "    %s/%s: %s\n", s.ProjectID, s.ItemCode, s.Reason)
		}
	}
	fmt.Fprintln(w)
}

func printCriticalPaths(w io.Writer, result *dto.RunResult) {
	fmt.Fprintf(w, "Dependency Analysis (%d paths):\n", result.CriticalPath.TotalPaths)
	for i, path := range result.CriticalPath.TopPaths {
		fmt.Fprintf(w, "  #%d: %v (total lead %d, bottleneck %s)\n",
			i+1, path.Items, path.TotalWeight, path.Bottleneck)
	}
	fmt.Fprintln(w)
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *dto.RunResult, config Config) error {
	if config.OutputDir != "" {
		if err := os.MkdirAll(config.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		filename := filepath.Join(config.OutputDir, "proposals.json")
		if err := writeJSONFile(result, filename); err != nil {
			return err
		}
		if config.Verbose {
			fmt.Fprintf(config.Writer, "JSON results saved to: %s\n", filename)
		}
		return nil
	}

	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Fprintln(config.Writer, string(jsonData))
	return nil
}

func writeJSONFile(result *dto.RunResult, filename string) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write JSON file: %w", err)
	}
	return nil
}
