package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"

	flag "github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	osemf "github.com/chrwm/OSEMF-Comparison"
	"github.com/chrwm/OSEMF-Comparison/internal/catalog"
	"github.com/chrwm/OSEMF-Comparison/internal/config"
	"github.com/chrwm/OSEMF-Comparison/internal/dispatch"
	"github.com/chrwm/OSEMF-Comparison/internal/energy"
	"github.com/chrwm/OSEMF-Comparison/internal/engine"
	"github.com/chrwm/OSEMF-Comparison/internal/log"
	"github.com/chrwm/OSEMF-Comparison/internal/lp"
	"github.com/chrwm/OSEMF-Comparison/internal/output"
	"github.com/chrwm/OSEMF-Comparison/internal/report"
	"github.com/chrwm/OSEMF-Comparison/internal/rule"
	"github.com/chrwm/OSEMF-Comparison/internal/series"

	// Import all rule packages so their init() functions register rules.
	_ "github.com/chrwm/OSEMF-Comparison/internal/rules/backstoppricing"
	_ "github.com/chrwm/OSEMF-Comparison/internal/rules/busconnectivity"
	_ "github.com/chrwm/OSEMF-Comparison/internal/rules/conversionfactors"
	_ "github.com/chrwm/OSEMF-Comparison/internal/rules/costsanity"
	_ "github.com/chrwm/OSEMF-Comparison/internal/rules/demandcoverage"
	_ "github.com/chrwm/OSEMF-Comparison/internal/rules/excesssink"
	_ "github.com/chrwm/OSEMF-Comparison/internal/rules/flowendpoints"
	_ "github.com/chrwm/OSEMF-Comparison/internal/rules/investmentcandidates"
	_ "github.com/chrwm/OSEMF-Comparison/internal/rules/profilebounds"
	_ "github.com/chrwm/OSEMF-Comparison/internal/rules/profilelength"
	_ "github.com/chrwm/OSEMF-Comparison/internal/rules/uniquelabels"
	_ "github.com/chrwm/OSEMF-Comparison/internal/rules/weightsum"
)

func main() {
	os.Exit(run())
}

const usageText = `Usage: resctl <command> [flags] [variants...]

Commands:
  check     Validate model variants against the built-in rules
  list      List the model variants in the catalog
  show      Show the component graph of one variant
  dispatch  Run merit-order dispatch and write result CSV files
  export    Write model variants as CPLEX LP files
  help      Show help for rules and topics
  init      Generate a default .resctl.yml config file
  version   Print version and exit

Global flags:
  -h, --help      Show this help

Run 'resctl <command> --help' for more information on a command.
`

func run() int {
	// Handle no arguments: print usage, exit 0.
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	first := os.Args[1]

	switch first {
	case "--help", "-h":
		fmt.Fprint(os.Stderr, usageText)
		return 0
	}

	// Dispatch to subcommand.
	switch first {
	case "check":
		return runCheck(os.Args[2:])
	case "list":
		return runList(os.Args[2:])
	case "show":
		return runShow(os.Args[2:])
	case "dispatch":
		return runDispatch(os.Args[2:])
	case "export":
		return runExport(os.Args[2:])
	case "help":
		return runHelp(os.Args[2:])
	case "init":
		return runInit(os.Args[2:])
	case "version":
		printVersion()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "resctl: unknown command %q\n\n%s", first, usageText)
		return 2
	}
}

func printVersion() {
	version := "(devel)"
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		version = info.Main.Version
	}
	fmt.Printf("resctl %s\n", version)
}

// runCheck implements the "check" subcommand: validate variants.
func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	var (
		configPath string
		dataDir    string
		format     string
		noColor    bool
		quiet      bool
		verbose    bool
	)

	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&dataDir, "data-dir", "d", "", "Directory holding profile CSV files")
	fs.StringVarP(&format, "format", "f", "text", "Output format: text, json")
	fs.BoolVar(&noColor, "no-color", false, "Disable ANSI colors")
	fs.BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: resctl check [flags] [variants...]\n\n"+
			"Validate model variants against the built-in rules.\n\n"+
			"With no variant arguments, all variants in the catalog are checked.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	variants, err := resolveVariants(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "resctl: %v\n", err)
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resctl: %v\n", err)
		return 2
	}

	logger := &log.Logger{Enabled: verbose, W: os.Stderr}
	runner := &engine.Runner{
		Config: cfg,
		Rules:  rule.All(),
		Data:   datasetLoader(cfg, dataDir, logger),
	}

	result := runner.Run(variants)

	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "resctl: %v\n", e)
	}

	if len(result.Errors) > 0 && len(result.Diagnostics) == 0 {
		return 2
	}

	if !quiet && len(result.Diagnostics) > 0 {
		var formatter output.Formatter
		switch format {
		case "json":
			formatter = &output.JSONFormatter{}
		default:
			formatter = &output.TextFormatter{Color: !noColor}
		}

		if err := formatter.Format(os.Stderr, result.Diagnostics); err != nil {
			fmt.Fprintf(os.Stderr, "resctl: error writing output: %v\n", err)
			return 2
		}
	}

	if hasErrorDiagnostic(result.Diagnostics) {
		return 1
	}

	return 0
}

// runList implements the "list" subcommand.
func runList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: resctl list\n\n"+
			"List the model variants in the catalog.\n")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "resctl: list takes no arguments\n")
		return 2
	}

	for _, v := range catalog.All() {
		fmt.Printf("%-8s %-12s %5d timesteps\n", v, v.Mode(), v.Timesteps())
	}
	return 0
}

// runShow implements the "show" subcommand: print the component graph of
// one variant.
func runShow(args []string) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	var dataDir string
	fs.StringVarP(&dataDir, "data-dir", "d", "", "Directory holding profile CSV files")
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: resctl show [flags] <variant>\n\n"+
			"Show the buses, sources, sinks and converters of one variant.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "resctl: show takes exactly one variant\n")
		return 2
	}

	v, err := catalog.Parse(fs.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "resctl: %v\n", err)
		return 2
	}

	cfg, err := loadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "resctl: %v\n", err)
		return 2
	}

	s, err := buildVariant(cfg, dataDir, v, &log.Logger{W: os.Stderr})
	if err != nil {
		fmt.Fprintf(os.Stderr, "resctl: %v\n", err)
		return 2
	}

	printSystem(s)
	return 0
}

func printSystem(s *energy.System) {
	fmt.Printf("%s: %d timesteps, %.0f weighted hours\n", s.Label, s.Timesteps, s.Weights.Sum())

	for _, b := range s.Buses() {
		fmt.Printf("bus %s\n", b.Label)
		for _, n := range s.Producers(b.Label) {
			fmt.Printf("  <- %s\n", describeNode(n, b.Label))
		}
		for _, n := range s.Consumers(b.Label) {
			fmt.Printf("  -> %s\n", describeNode(n, b.Label))
		}
	}
}

func describeNode(n energy.Node, bus string) string {
	var f energy.Flow
	kind := "?"
	switch v := n.(type) {
	case *energy.Source:
		kind = "source"
		f = v.Output
	case *energy.Sink:
		kind = "sink"
		f = v.Input
	case *energy.Converter:
		kind = "converter"
		for _, out := range append(v.Inputs, v.Outputs...) {
			if out.Bus == bus {
				f = out
			}
		}
	}

	desc := fmt.Sprintf("%s %s", kind, n.NodeLabel())
	if f.Nominal > 0 {
		desc += fmt.Sprintf(" cap=%g", f.Nominal)
	}
	if f.VariableCost != 0 {
		desc += fmt.Sprintf(" vc=%g", f.VariableCost)
	}
	if f.Fixed() {
		desc += " fixed"
	}
	if f.Invest != nil {
		desc += fmt.Sprintf(" invest(ep=%.2f)", f.Invest.EPCost)
	}
	return desc
}

// runDispatch implements the "dispatch" subcommand: run merit-order
// dispatch and write result CSVs.
func runDispatch(args []string) int {
	fs := flag.NewFlagSet("dispatch", flag.ContinueOnError)
	var (
		configPath string
		dataDir    string
		outDir     string
		metricList string
		quiet      bool
		verbose    bool
	)

	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&dataDir, "data-dir", "d", "", "Directory holding profile CSV files")
	fs.StringVarP(&outDir, "out", "o", "results", "Directory for result CSV files")
	fs.StringVarP(&metricList, "metrics", "m", "", "Comma-separated report metrics (IDs or names)")
	fs.BoolVarP(&quiet, "quiet", "q", false, "Suppress the metric report")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: resctl dispatch [flags] [variants...]\n\n"+
			"Run merit-order dispatch for dispatch-mode variants and write\n"+
			"per-variant result CSV files.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	variants, err := resolveVariants(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "resctl: %v\n", err)
		return 2
	}

	defs, err := report.Resolve(report.SplitList(metricList))
	if err != nil {
		fmt.Fprintf(os.Stderr, "resctl: %v\n", err)
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resctl: %v\n", err)
		return 2
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "resctl: creating %s: %v\n", outDir, err)
		return 2
	}

	logger := &log.Logger{Enabled: verbose, W: os.Stderr}
	failed := false
	for _, v := range variants {
		if v.Mode() == catalog.ModeInvestment {
			logger.Printf("skipping %s: investment variants have no fixed capacity to dispatch", v)
			continue
		}

		s, err := buildVariant(cfg, dataDir, v, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "resctl: %v\n", err)
			failed = true
			continue
		}

		res, err := dispatch.Run(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "resctl: dispatching %s: %v\n", v, err)
			failed = true
			continue
		}

		path := filepath.Join(outDir, string(v)+".csv")
		if err := dispatch.WriteCSV(res, path); err != nil {
			fmt.Fprintf(os.Stderr, "resctl: %v\n", err)
			failed = true
			continue
		}
		logger.Printf("dispatched %s (run %s), results in %s", v, res.RunID, path)

		if !quiet {
			printReport(res, defs)
		}
	}

	if failed {
		return 2
	}
	return 0
}

// printReport renders the selected metrics for one dispatch run.
func printReport(res *dispatch.Results, defs []report.Definition) {
	fmt.Printf("%s:\n", res.Model)
	for _, def := range defs {
		val, err := def.Compute(res)
		if err != nil {
			fmt.Fprintf(os.Stderr, "resctl: computing %s: %v\n", def.Name, err)
			continue
		}
		fmt.Printf("  %-7s %-22s %s\n", def.ID, def.Name, val.Render(def.Kind, def.Precision))
	}
}

// runExport implements the "export" subcommand: write LP files.
func runExport(args []string) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	var (
		configPath string
		dataDir    string
		outDir     string
		verbose    bool
	)

	fs.StringVarP(&configPath, "config", "c", "", "Override config file path")
	fs.StringVarP(&dataDir, "data-dir", "d", "", "Directory holding profile CSV files")
	fs.StringVarP(&outDir, "out", "o", "lp", "Directory for LP files")
	fs.BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: resctl export [flags] [variants...]\n\n"+
			"Formulate model variants as linear programs and write them in\n"+
			"CPLEX LP format, one file per variant.\n\n"+
			"Flags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	variants, err := resolveVariants(fs.Args())
	if err != nil {
		fmt.Fprintf(os.Stderr, "resctl: %v\n", err)
		return 2
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resctl: %v\n", err)
		return 2
	}

	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "resctl: creating %s: %v\n", outDir, err)
		return 2
	}

	logger := &log.Logger{Enabled: verbose, W: os.Stderr}
	failed := false
	for _, v := range variants {
		s, err := buildVariant(cfg, dataDir, v, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "resctl: %v\n", err)
			failed = true
			continue
		}

		p, err := lp.FromSystem(s)
		if err != nil {
			fmt.Fprintf(os.Stderr, "resctl: formulating %s: %v\n", v, err)
			failed = true
			continue
		}

		path := filepath.Join(outDir, string(v)+".lp")
		if err := p.WriteFile(path); err != nil {
			fmt.Fprintf(os.Stderr, "resctl: %v\n", err)
			failed = true
			continue
		}
		logger.Printf("wrote %s", path)
	}

	if failed {
		return 2
	}
	return 0
}

// runInit implements the "init" subcommand: generate .resctl.yml.
func runInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: resctl init\n\n"+
			"Generate a default .resctl.yml config file in the current directory.\n")
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(os.Stderr, "resctl: init takes no arguments\n")
		return 2
	}

	const configFile = ".resctl.yml"

	// Check if config file already exists.
	if _, err := os.Stat(configFile); err == nil {
		fmt.Fprintf(os.Stderr, "resctl: %s already exists\n", configFile)
		return 2
	}

	cfg := config.DumpDefaults()
	cfg.DataDir = "data"

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resctl: marshalling config: %v\n", err)
		return 2
	}

	if err := os.WriteFile(configFile, data, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "resctl: writing %s: %v\n", configFile, err)
		return 2
	}

	fmt.Fprintf(os.Stderr, "resctl: created %s\n", configFile)
	return 0
}

const helpUsageText = `Usage: resctl help <topic>

Topics:
  rule [id|name]   Show rule documentation
`

// runHelp implements the "help" subcommand.
func runHelp(args []string) int {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, helpUsageText)
		return 0
	}

	switch args[0] {
	case "rule":
		return runHelpRule(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "resctl: help: unknown topic %q\n", args[0])
		return 2
	}
}

// runHelpRule implements "help rule [id|name]".
func runHelpRule(args []string) int {
	if len(args) == 0 {
		return listAllRules()
	}
	return showRule(args[0])
}

func listAllRules() int {
	rules, err := osemf.ListRules()
	if err != nil {
		fmt.Fprintf(os.Stderr, "resctl: %v\n", err)
		return 2
	}

	for _, r := range rules {
		fmt.Printf("%-6s %-24s %s\n", r.ID, r.Name, r.Description)
	}
	return 0
}

func showRule(query string) int {
	content, err := osemf.LookupRule(query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "resctl: %v\n", err)
		return 2
	}
	fmt.Print(content)
	return 0
}

// resolveVariants parses variant name arguments; no arguments selects
// the full catalog.
func resolveVariants(args []string) ([]catalog.Variant, error) {
	if len(args) == 0 {
		return catalog.All(), nil
	}

	seen := make(map[catalog.Variant]struct{}, len(args))
	variants := make([]catalog.Variant, 0, len(args))
	for _, raw := range args {
		v, err := catalog.Parse(strings.TrimSpace(raw))
		if err != nil {
			return nil, err
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		variants = append(variants, v)
	}
	return variants, nil
}

// datasetLoader returns the Data hook for the engine runner. The CSV for
// a variant is looked up as <data-dir>/<variant>.csv; the flag overrides
// the configured directory.
func datasetLoader(cfg *config.Config, dataDir string, logger *log.Logger) func(catalog.Variant) (*series.Dataset, error) {
	dir := dataDir
	if dir == "" {
		dir = cfg.DataDir
	}
	if dir == "" {
		dir = "data"
	}

	return func(v catalog.Variant) (*series.Dataset, error) {
		if !v.NeedsDataset() {
			return nil, nil
		}
		path := filepath.Join(dir, string(v)+".csv")
		logger.Printf("loading %s", path)
		return series.LoadCSV(path)
	}
}

// buildVariant loads the variant's dataset (if it needs one) and builds
// the system.
func buildVariant(cfg *config.Config, dataDir string, v catalog.Variant, logger *log.Logger) (*energy.System, error) {
	load := datasetLoader(cfg, dataDir, logger)
	data, err := load(v)
	if err != nil {
		return nil, fmt.Errorf("loading data for %s: %w", v, err)
	}
	s, err := catalog.Build(v, data)
	if err != nil {
		return nil, fmt.Errorf("building %s: %w", v, err)
	}
	return s, nil
}

// hasErrorDiagnostic reports whether any diagnostic has error severity.
// Warnings alone do not fail a check run.
func hasErrorDiagnostic(diags []energy.Diagnostic) bool {
	for _, d := range diags {
		if d.Severity == energy.Error {
			return true
		}
	}
	return false
}

// loadConfig loads configuration by either using the specified path or
// discovering a config file from the current directory.
func loadConfig(configPath string) (*config.Config, error) {
	defaults := config.Defaults()

	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		return config.Merge(defaults, loaded), nil
	}

	// Try to discover a config file.
	cwd, err := os.Getwd()
	if err != nil {
		return config.Merge(defaults, nil), nil
	}

	discovered, err := config.Discover(cwd)
	if err != nil {
		return config.Merge(defaults, nil), nil
	}

	if discovered == "" {
		return config.Merge(defaults, nil), nil
	}

	loaded, err := config.Load(discovered)
	if err != nil {
		return nil, err
	}

	return config.Merge(defaults, loaded), nil
}
