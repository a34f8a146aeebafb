package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/shiproute/routing/pkg/interfaces/cli/commands"
)

// envOr returns the environment variable value or a default. A .env
// file in the working directory seeds the environment for local runs.
func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func main() {
	// Missing .env is fine; flags and real env still apply
	_ = godotenv.Load()

	// Command line flags
	var (
		scenarioDir = flag.String(
			"scenario",
			envOr("ROUTER_SCENARIO", ""),
			"Path to scenario directory containing CSV files",
		)
		warehouseFile = flag.String("warehouses", "", "Path to warehouse CSV file")
		inventoryFile = flag.String("inventory", "", "Path to inventory CSV file")
		skuFile       = flag.String("skus", "", "Path to SKU attribute CSV file (optional)")
		ordersFile    = flag.String("orders", "", "Path to orders CSV file")
		outputPath    = flag.String("output", "", "Output file for results (optional)")
		format        = flag.String("format", envOr("ROUTER_FORMAT", "text"), "Output format: text, json, csv")
		blocked       = flag.String("blocked", envOr("ROUTER_BLOCKED", ""), "Comma-separated warehouse IDs to exclude")
		blockedStates = flag.String("blocked-states", envOr("ROUTER_BLOCKED_STATES", ""), "Comma-separated states to exclude")
		epsilonKm     = flag.Float64("epsilon", envFloatOr("ROUTER_EPSILON_KM", 0), "Distance window treated as a tie, in km")
		verbose       = flag.Bool("verbose", false, "Enable verbose output")
		help          = flag.Bool("help", false, "Show help message")
	)

	flag.Parse()

	// Create command configuration
	config := commands.Config{
		ScenarioDir:       *scenarioDir,
		WarehouseFile:     *warehouseFile,
		InventoryFile:     *inventoryFile,
		SKUFile:           *skuFile,
		OrdersFile:        *ordersFile,
		OutputPath:        *outputPath,
		Format:            *format,
		BlockedWarehouses: *blocked,
		BlockedStates:     *blockedStates,
		EpsilonKm:         *epsilonKm,
		Verbose:           *verbose,
		Help:              *help,
	}

	// Create and execute command
	cmd := commands.NewRouteCommand(config)
	ctx := context.Background()

	if err := cmd.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
