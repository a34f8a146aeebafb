package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/shiproute/routing/pkg/application/services"
	"github.com/shiproute/routing/pkg/domain/entities"
	domainservices "github.com/shiproute/routing/pkg/domain/services"
	"github.com/shiproute/routing/pkg/infrastructure/repositories/csv"
	"github.com/shiproute/routing/pkg/infrastructure/repositories/memory"
	"github.com/shiproute/routing/pkg/interfaces/cli/output"
	"github.com/shiproute/routing/pkg/routing"
)

// Config holds configuration for the route command
type Config struct {
	ScenarioDir       string
	WarehouseFile     string
	InventoryFile     string
	SKUFile           string
	OrdersFile        string
	OutputPath        string
	Format            string
	BlockedWarehouses string
	BlockedStates     string
	EpsilonKm         float64
	Verbose           bool
	Help              bool
}

// RouteCommand handles the batch routing execution logic
type RouteCommand struct {
	config Config
}

// NewRouteCommand creates a new route command with the given configuration
func NewRouteCommand(config Config) *RouteCommand {
	return &RouteCommand{
		config: config,
	}
}

// Execute runs the route command
func (c *RouteCommand) Execute(ctx context.Context) error {
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

	if c.config.Verbose {
		c.printHeader(files)
	}

	// Load data from CSV files
	if c.config.Verbose {
		fmt.Println("📂 Loading data from CSV files...")
	}

	csvLoader := csv.NewLoader()

	warehouses, err := csvLoader.LoadWarehouses(files["Warehouses"])
	if err != nil {
		return fmt.Errorf("error loading warehouses: %w", err)
	}

	inventory, err := csvLoader.LoadInventory(files["Inventory"])
	if err != nil {
		return fmt.Errorf("error loading inventory: %w", err)
	}

	orders, err := csvLoader.LoadOrders(files["Orders"])
	if err != nil {
		return fmt.Errorf("error loading orders: %w", err)
	}

	var skuAttrs []*entities.SKUAttributes
	if files["SKUs"] != "" {
		skuAttrs, err = csvLoader.LoadSKUAttributes(files["SKUs"])
		if err != nil {
			return fmt.Errorf("error loading SKU attributes: %w", err)
		}
	}

	if c.config.Verbose {
		fmt.Printf("✅ Data loaded successfully:\n")
		fmt.Printf("  Warehouses: %d\n", len(warehouses))
		fmt.Printf("  Inventory Records: %d\n", len(inventory))
		fmt.Printf("  SKU Attributes: %d\n", len(skuAttrs))
		fmt.Printf("  Orders: %d\n", len(orders))
		fmt.Println()
	}

	// Create repositories
	warehouseRepo := memory.NewWarehouseRepository()
	if err := warehouseRepo.LoadWarehouses(warehouses); err != nil {
		return fmt.Errorf("failed to load warehouses into repository: %w", err)
	}

	inventoryRepo := memory.NewInventoryRepository(warehouseRepo)
	if err := inventoryRepo.LoadRecords(inventory); err != nil {
		return fmt.Errorf("failed to load inventory into repository: %w", err)
	}

	attrRepo := memory.NewSKUAttributeRepository()
	if err := attrRepo.LoadAttributes(skuAttrs); err != nil {
		return fmt.Errorf("failed to load SKU attributes into repository: %w", err)
	}

	// Create engine and batch service
	engineConfig, err := c.buildEngineConfig()
	if err != nil {
		return fmt.Errorf("invalid engine configuration: %w", err)
	}

	engine := routing.NewEngineWithConfig(
		warehouseRepo,
		inventoryRepo,
		domainservices.Haversine,
		engineConfig,
	)

	var logger *log.Logger
	if c.config.Verbose {
		logger = log.New(os.Stderr, "route: ", log.LstdFlags)
	}

	batchService := services.NewBatchRoutingService(engine, warehouseRepo, attrRepo, logger)

	// Route the batch
	if c.config.Verbose {
		fmt.Println("🔄 Routing orders...")
	}

	startTime := time.Now()
	result, err := batchService.RouteBatch(ctx, orders)
	elapsed := time.Since(startTime)

	if err != nil {
		return fmt.Errorf("error routing orders: %w", err)
	}

	if c.config.Verbose {
		fmt.Printf("✅ Routing completed in %v\n\n", elapsed)
	}

	// Generate output
	outputConfig := output.Config{
		Format:     c.config.Format,
		OutputPath: c.config.OutputPath,
		Verbose:    c.config.Verbose,
		Elapsed:    elapsed,
	}

	if err := output.Generate(result, outputConfig); err != nil {
		return fmt.Errorf("error generating output: %w", err)
	}

	if c.config.Verbose {
		fmt.Println("🏁 Routing complete!")
	}

	return nil
}

// buildEngineConfig translates the flag-level blocking lists into an
// engine configuration
func (c *RouteCommand) buildEngineConfig() (routing.EngineConfig, error) {
	config := routing.DefaultEngineConfig()
	config.EpsilonKm = c.config.EpsilonKm

	for _, id := range splitList(c.config.BlockedWarehouses) {
		config.BlockedWarehouses = append(config.BlockedWarehouses, entities.WarehouseID(id))
	}

	for _, state := range splitList(c.config.BlockedStates) {
		code, ok := domainservices.StateAbbreviation(state)
		if !ok {
			return config, fmt.Errorf("unknown state: %q", state)
		}
		config.BlockedStates = append(config.BlockedStates, code)
	}

	return config, nil
}

// splitList splits a comma-separated flag value, trimming whitespace
// and dropping empty entries
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// validateInputs validates the command configuration
func (c *RouteCommand) validateInputs() error {
	if c.config.ScenarioDir == "" &&
		(c.config.WarehouseFile == "" || c.config.InventoryFile == "" ||
			c.config.OrdersFile == "") {
		return fmt.Errorf("must specify either -scenario directory or individual CSV files")
	}

	switch c.config.Format {
	case "text", "json", "csv":
	default:
		return fmt.Errorf("unsupported output format: %s", c.config.Format)
	}

	if c.config.EpsilonKm < 0 {
		return fmt.Errorf("epsilon must be non-negative, got %v", c.config.EpsilonKm)
	}

	return nil
}

// resolveInputFiles determines the actual file paths to use. The SKU
// attribute file is optional in both modes.
func (c *RouteCommand) resolveInputFiles() (map[string]string, error) {
	var warehousePath, inventoryPath, skuPath, ordersPath string

	if c.config.ScenarioDir != "" {
		warehousePath = filepath.Join(c.config.ScenarioDir, "warehouses.csv")
		inventoryPath = filepath.Join(c.config.ScenarioDir, "inventory.csv")
		skuPath = filepath.Join(c.config.ScenarioDir, "skus.csv")
		ordersPath = filepath.Join(c.config.ScenarioDir, "orders.csv")

		if _, err := os.Stat(skuPath); os.IsNotExist(err) {
			skuPath = ""
		}
	} else {
		warehousePath = c.config.WarehouseFile
		inventoryPath = c.config.InventoryFile
		skuPath = c.config.SKUFile
		ordersPath = c.config.OrdersFile
	}

	files := map[string]string{
		"Warehouses": warehousePath,
		"Inventory":  inventoryPath,
		"SKUs":       skuPath,
		"Orders":     ordersPath,
	}

	for name, path := range files {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return nil, fmt.Errorf("%s file not found: %s", name, path)
		}
	}

	return files, nil
}

// printHeader prints the command header information
func (c *RouteCommand) printHeader(files map[string]string) {
	fmt.Printf("🚀 Warehouse Routing CLI\n")
	fmt.Printf("Input files:\n")
	fmt.Printf("  Warehouses: %s\n", files["Warehouses"])
	fmt.Printf("  Inventory: %s\n", files["Inventory"])
	if files["SKUs"] != "" {
		fmt.Printf("  SKU Attributes: %s\n", files["SKUs"])
	}
	fmt.Printf("  Orders: %s\n", files["Orders"])
	fmt.Printf("Output format: %s\n", c.config.Format)
	if c.config.OutputPath != "" {
		fmt.Printf("Output path: %s\n", c.config.OutputPath)
	}
	fmt.Println()
}

// showHelp displays the help message
func (c *RouteCommand) showHelp() {
	fmt.Printf(`Warehouse Routing CLI - Deterministic order-to-warehouse assignment

USAGE:
    router -scenario <directory>               # Use scenario directory with CSV files
    router -warehouses <file> -inventory <file> -orders <file>

OPTIONS:
    -scenario <dir>        Path to scenario directory containing CSV files
    -warehouses <file>     Path to warehouse CSV file
    -inventory <file>      Path to inventory CSV file
    -skus <file>           Path to SKU attribute CSV file (optional)
    -orders <file>         Path to orders CSV file
    -output <path>         Output file for results (optional, stdout otherwise)
    -format <fmt>          Output format: text, json, csv (default: text)
    -blocked <ids>         Comma-separated warehouse IDs to exclude
    -blocked-states <sts>  Comma-separated states to exclude (names or codes)
    -epsilon <km>          Distance window treated as a tie (default: 0)
    -verbose               Enable verbose output
    -help                  Show this help message

SCENARIO DIRECTORY STRUCTURE:
    scenario_name/
    ├── warehouses.csv   # Warehouse directory
    ├── inventory.csv    # Per-warehouse stock levels
    ├── skus.csv         # SKU dimensions and weights (optional)
    └── orders.csv       # Orders to route

CSV FILE FORMATS:

warehouses.csv:
    warehouse_id,state,latitude,longitude,priority
    WH-CA,California,36.1162,-119.6816,0
    WH-TN,TN,,,5

inventory.csv:
    warehouse_id,sku,quantity
    WH-CA,SKU-123,40

skus.csv:
    sku,length_cm,width_cm,height_cm,unit_weight_kg
    SKU-123,30,20,10,1.5

orders.csv:
    order_id,destination_state,destination_lat,destination_lon,lines
    ORD-1,Texas,,,SKU-123*2+SKU-456

EXAMPLES:
    # Route a scenario directory
    router -scenario examples/west_coast -verbose

    # Route with individual files and JSON output
    router -warehouses data/warehouses.csv -inventory data/inventory.csv -orders data/orders.csv -format json

    # Exclude warehouses in specific states
    router -scenario examples/west_coast -blocked-states "Texas,GA"

    # Treat distances within 5 km as ties
    router -scenario examples/west_coast -epsilon 5
`)
}
