package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/shiproute/routing/pkg/application/services"
)

// Config holds configuration for output generation
type Config struct {
	Format     string
	OutputPath string
	Verbose    bool
	Elapsed    time.Duration
}

// Generate renders a batch result in the configured format
func Generate(result *services.BatchResult, config Config) error {
	switch config.Format {
	case "text":
		return generateTextOutput(result, config)
	case "json":
		return generateJSONOutput(result, config)
	case "csv":
		return generateCSVOutput(result, config)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// generateTextOutput creates human-readable text output
func generateTextOutput(result *services.BatchResult, config Config) error {
	fmt.Printf("📦 Routing Results Summary\n")
	fmt.Printf("==========================\n\n")

	fmt.Printf("Run ID: %s\n", result.RunID)
	fmt.Printf("Orders: %d\n", len(result.Decisions))
	fmt.Printf("Routed: %d\n", result.Routed)
	fmt.Printf("Unfulfillable: %d\n", result.Unfulfilled)
	if config.Elapsed > 0 {
		fmt.Printf("Routing Time: %v\n", config.Elapsed)
	}
	fmt.Println()

	if len(result.Decisions) > 0 {
		fmt.Printf("📋 Decisions:\n")
		fmt.Printf("%-12s %-22s %-12s %-10s %s\n",
			"Order", "Status", "Warehouse", "Distance", "Detail")
		fmt.Printf("%-12s %-22s %-12s %-10s %s\n",
			"------------", "----------------------", "------------", "----------", "------")

		for _, od := range result.Decisions {
			d := od.Decision
			if d.Recommended {
				detail := ""
				if od.Estimate != nil {
					detail = fmt.Sprintf("%s kg / %s cm3", od.Estimate.WeightKg, od.Estimate.VolumeCm3)
					if !od.Estimate.Complete {
						detail += " (partial)"
					}
				}
				fmt.Printf("%-12s %-22s %-12s %-10.1f %s\n",
					od.OrderID, "Routed", d.WarehouseID, d.DistanceKm, detail)
			} else {
				fmt.Printf("%-12s %-22s %-12s %-10s %s\n",
					od.OrderID, d.Reason, "-", "-", d.Summary())
			}
		}
		fmt.Println()
	}

	if result.Unfulfilled > 0 && config.Verbose {
		fmt.Printf("⚠️  Unfulfillable Detail:\n")
		for _, od := range result.Decisions {
			d := od.Decision
			if d.Recommended {
				continue
			}
			fmt.Printf("  %s: %s\n", od.OrderID, d.Summary())
			for _, sf := range d.Shortfalls {
				if sf.Blocked {
					fmt.Printf("    %s: blocked\n", sf.WarehouseID)
					continue
				}
				for _, line := range sf.Lines {
					fmt.Printf("    %s: %s short %d (have %d, need %d)\n",
						sf.WarehouseID, line.SKU, line.Short, line.Available, line.Requested)
				}
			}
		}
		fmt.Println()
	}

	return nil
}

// generateJSONOutput creates JSON output
func generateJSONOutput(result *services.BatchResult, config Config) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if config.OutputPath == "" {
		fmt.Println(string(data))
		return nil
	}

	if err := os.WriteFile(config.OutputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write results: %w", err)
	}
	if config.Verbose {
		fmt.Printf("💾 Results saved to: %s\n", config.OutputPath)
	}
	return nil
}

// generateCSVOutput creates CSV output with one row per order, each
// carrying either the recommendation or the unfulfillable reason
func generateCSVOutput(result *services.BatchResult, config Config) error {
	out := os.Stdout
	if config.OutputPath != "" {
		file, err := os.Create(config.OutputPath)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	writer := csv.NewWriter(out)
	defer writer.Flush()

	header := []string{"order_id", "status", "warehouse_id", "distance_km", "weight_kg", "volume_cm3", "detail"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, od := range result.Decisions {
		d := od.Decision
		row := make([]string, len(header))
		row[0] = od.OrderID

		if d.Recommended {
			row[1] = "routed"
			row[2] = string(d.WarehouseID)
			row[3] = strconv.FormatFloat(d.DistanceKm, 'f', 1, 64)
			if od.Estimate != nil {
				row[4] = od.Estimate.WeightKg.String()
				row[5] = od.Estimate.VolumeCm3.String()
			}
		} else {
			row[1] = "unfulfillable"
			row[6] = d.Summary()
		}

		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	if config.Verbose && config.OutputPath != "" {
		fmt.Printf("💾 Results saved to: %s\n", config.OutputPath)
	}
	return nil
}
