// Command cabplan turns a cabinet schedule into a manufacturable cutting
// list and writes it as CSV, Excel, PDF, DXF, part labels or JSON.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/piwi3910/cabplan/internal/config"
	"github.com/piwi3910/cabplan/internal/costing"
	"github.com/piwi3910/cabplan/internal/cutlist"
	"github.com/piwi3910/cabplan/internal/export"
	"github.com/piwi3910/cabplan/internal/importer"
	"github.com/piwi3910/cabplan/internal/intake"
	"github.com/piwi3910/cabplan/internal/logger"
	"github.com/piwi3910/cabplan/internal/model"
	"github.com/piwi3910/cabplan/internal/project"
)

const (
	exitOK    = 0
	exitUsage = 1
	exitBuild = 2
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(exitUsage)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}

	log, err := logger.Init(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(exitUsage)
	}

	code := dispatch(cfg, log, os.Args[1], os.Args[2:])
	_ = log.Sync()
	os.Exit(code)
}

func dispatch(cfg *config.Config, log *zap.Logger, cmd string, args []string) int {
	switch cmd {
	case "build":
		return runBuild(cfg, log, args)
	case "styles":
		return runStyles()
	case "types":
		return runTypes()
	case "help", "-h", "-help", "--help":
		usage()
		return exitOK
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", cmd)
		usage()
		return exitUsage
	}
}

func runBuild(cfg *config.Config, log *zap.Logger, args []string) int {
	fs := flag.NewFlagSet("build", flag.ContinueOnError)
	var (
		input     = fs.String("in", "", "Input schedule: .json, .csv or .xlsx (required)")
		output    = fs.String("out", "", "Output file; the extension selects the format when -format is unset")
		format    = fs.String("format", "", "Output format: csv, xlsx, pdf, dxf, labels, json")
		styleName = fs.String("style", cfg.Build.Style, "Construction style name (see the styles command)")
		mode      = fs.String("mode", cfg.Build.BackMode, "Back construction mode: overlay or inset (default: the style's own)")
		fronts    = fs.Bool("fronts", cfg.Build.Fronts, "Calculate doors and drawer fronts")
		estimate  = fs.Bool("estimate", false, "Print a sheet purchase estimate after the build")
	)
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if *input == "" {
		fmt.Fprintln(os.Stderr, "Error: -in <schedule> is required")
		fs.Usage()
		return exitUsage
	}

	style, ok := resolveStyle(log, *styleName, *mode)
	if !ok {
		return exitUsage
	}

	res, err := loadSchedule(*input)
	if err != nil {
		log.Error("failed to read schedule", zap.String("path", *input), zap.Error(err))
		return exitBuild
	}
	for _, w := range res.Warnings {
		log.Warn(w)
	}
	for _, e := range res.Errors {
		log.Warn("schedule row rejected", zap.String("error", e))
	}
	if len(res.Cabinets) == 0 {
		log.Error("no usable cabinets in schedule",
			zap.String("path", *input),
			zap.Int("rejected_rows", len(res.Errors)))
		return exitBuild
	}

	records, warnings := intake.New(log).Normalize(res.Cabinets)
	for _, w := range warnings {
		log.Warn(w)
	}

	builder := cutlist.New(style, cutlist.WithLogger(log), cutlist.WithFronts(*fronts))
	result, err := builder.Build(records)
	if err != nil {
		log.Error("build failed", zap.Error(err))
		return exitBuild
	}

	if err := writeOutput(result, *format, *output); err != nil {
		log.Error("failed to write output", zap.Error(err))
		return exitBuild
	}
	if *output != "" {
		fmt.Printf("Wrote %s (%d components, %d pieces, %.2f m²)\n",
			*output,
			result.Summary.TotalComponents,
			result.Summary.TotalPieces,
			result.Summary.TotalAreaM2)
	}

	if *estimate {
		sheets, _, err := project.LoadOrCreateSheets()
		if err != nil {
			log.Warn("could not load sheet catalog, using defaults", zap.Error(err))
		}
		if len(sheets) == 0 {
			sheets = costing.DefaultSheets()
		}
		printEstimate(costing.CalculatePurchase(
			result.Components,
			sheets,
			cfg.Costing.KerfWidth,
			cfg.Costing.WastePercent))
	}
	return exitOK
}

// resolveStyle looks up the named construction style and applies a back mode
// override when one is given.
func resolveStyle(log *zap.Logger, name, mode string) (model.ConstructionStyle, bool) {
	store, err := project.OpenDefaultStore()
	if err != nil {
		log.Warn("could not load saved styles, using built-ins", zap.Error(err))
		store = &project.StyleStore{}
	}

	named := store.FindByName(name)
	if named == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown style %q. Available: %s\n",
			name, strings.Join(store.Names(), ", "))
		return model.ConstructionStyle{}, false
	}

	style := named.Style
	if mode != "" {
		parsed, ok := model.ParseBackMode(mode)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown back mode %q (want overlay or inset)\n", mode)
			return model.ConstructionStyle{}, false
		}
		style.BackMode = parsed
	}
	return style, true
}

// loadSchedule reads the input file in whichever format its extension names.
func loadSchedule(path string) (importer.ImportResult, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return importer.ImportCSV(path), nil
	case ".xlsx":
		return importer.ImportExcel(path), nil
	case ".json":
		cabinets, err := loadJSONSchedule(path)
		if err != nil {
			return importer.ImportResult{}, err
		}
		return importer.ImportResult{Cabinets: cabinets}, nil
	default:
		return importer.ImportResult{}, fmt.Errorf("unsupported schedule format %q (want .json, .csv or .xlsx)", filepath.Ext(path))
	}
}

// loadJSONSchedule accepts either a bare cabinet array or a {"cabinets": []}
// wrapper object.
func loadJSONSchedule(path string) ([]intake.RawCabinet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cabinets []intake.RawCabinet
	if err := json.Unmarshal(data, &cabinets); err == nil {
		return cabinets, nil
	}

	var wrapper struct {
		Cabinets []intake.RawCabinet `json:"cabinets"`
	}
	if err := json.Unmarshal(data, &wrapper); err != nil {
		return nil, fmt.Errorf("failed to parse schedule JSON: %w", err)
	}
	return wrapper.Cabinets, nil
}

func writeOutput(result cutlist.Result, format, path string) error {
	format = strings.ToLower(format)
	if format == "" {
		format = formatFromExt(path)
	}
	if format == "" {
		return fmt.Errorf("cannot infer output format from %q, use -format", path)
	}
	if format != "json" && path == "" {
		return fmt.Errorf("%s output requires -out <file>", format)
	}

	switch format {
	case "json":
		return writeJSON(result, path)
	case "csv":
		return export.ExportCSV(path, result)
	case "xlsx":
		return export.ExportExcel(path, result)
	case "pdf":
		return export.ExportPDF(path, result)
	case "dxf":
		return export.ExportDXF(path, result)
	case "labels":
		return export.ExportLabels(path, result)
	default:
		return fmt.Errorf("unknown output format %q (want csv, xlsx, pdf, dxf, labels or json)", format)
	}
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return "csv"
	case ".xlsx":
		return "xlsx"
	case ".pdf":
		return "pdf"
	case ".dxf":
		return "dxf"
	case ".json", "":
		return "json"
	default:
		return ""
	}
}

// writeJSON prints to stdout when no path is given, so the build command can
// be piped.
func writeJSON(result cutlist.Result, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func printEstimate(est costing.Estimate) {
	fmt.Println()
	fmt.Println("Sheet purchase estimate:")
	for _, line := range est.Materials {
		if line.SheetName == "" {
			fmt.Printf("  %-10s %d pieces, no stocked sheet\n", line.Material, line.PieceCount)
			continue
		}
		fmt.Printf("  %-10s %d pieces -> %d x %s @ %s\n",
			line.Material, line.PieceCount, line.SheetsWithWaste,
			line.SheetName, line.PricePerSheet.StringFixed(2))
	}
	fmt.Printf("  Total: %s\n", est.TotalCost.StringFixed(2))
}

func runStyles() int {
	store, err := project.OpenDefaultStore()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not load saved styles: %v\n", err)
		store = &project.StyleStore{}
	}

	fmt.Println("Available construction styles:")
	for _, s := range store.All() {
		marker := ""
		if s.IsBuiltIn {
			marker = " [built-in]"
		}
		fmt.Printf("  %-20s %s%s\n", s.Name, s.Description, marker)
	}
	return exitOK
}

func runTypes() int {
	fmt.Println("Cabinet types:")
	for _, info := range model.CabinetTypes {
		fmt.Printf("  %-10s %-16s %s (typical width %s)\n",
			info.Value, info.Label, info.Description, info.TypicalWidth)
	}
	fmt.Println()
	fmt.Println("Back construction modes:")
	for _, m := range model.BackModes {
		fmt.Printf("  %-10s %s\n", m.Value, m.Description)
	}
	return exitOK
}

func usage() {
	fmt.Printf(`cabplan - cabinet cutting list calculator

USAGE:
    cabplan build -in <schedule> [options]   # Build a cutting list
    cabplan styles                           # List construction styles
    cabplan types                            # List cabinet types and back modes

BUILD OPTIONS:
    -in <file>        Input schedule: .json, .csv or .xlsx (required)
    -out <file>       Output file; the extension selects the format
    -format <fmt>     Output format: csv, xlsx, pdf, dxf, labels, json
                      (default: json to stdout)
    -style <name>     Construction style (default: Standard Overlay)
    -mode <mode>      Back construction mode: overlay or inset
    -fronts           Calculate doors and drawer fronts
    -estimate         Print a sheet purchase estimate after the build

SCHEDULE COLUMNS (CSV/XLSX):
    id, type, width, height, depth, shelves, drawers, doors, qty, notes
    Width is required; height and depth fall back to standard carcass sizes.

EXAMPLES:
    # Cutting list as JSON on stdout
    cabplan build -in kitchen.csv

    # Excel workbook with doors and drawer fronts
    cabplan build -in kitchen.xlsx -fronts -out cutting_list.xlsx

    # Workshop PDF with an inset back
    cabplan build -in kitchen.json -mode inset -out kitchen.pdf

    # Part labels with QR codes
    cabplan build -in kitchen.csv -format labels -out labels.pdf

    # DXF rectangles for nesting software
    cabplan build -in kitchen.csv -out panels.dxf

    # Sheet purchase estimate alongside the cutting list
    cabplan build -in kitchen.csv -estimate -out kitchen.csv
`)
}
