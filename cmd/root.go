// =============================================================================
// TR-181 Excelifier - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. Unlike multi-stage
// tools, the converter has exactly one pipeline, so the root command runs
// the conversion itself:
//
//   excelifier -f model.xml [-o output.xlsx]
//
// COBRA CLI STRUCTURE:
//   rootCmd (excelifier)
//   ├── checkCmd (excelifier check)
//   └── versionCmd (excelifier version)
//
// CONFIGURATION:
//   The root command is responsible for:
//   1. Setting up global flags (--config, --verbose)
//   2. Loading the optional styling configuration
//   3. Setting up logging
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tr181tools/excelifier/internal/config"
	"github.com/tr181tools/excelifier/internal/converter"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// cfgFile holds the path to the optional configuration file.
// This can be overridden using the --config flag.
var cfgFile string

// verbose enables debug logging when set to true.
var verbose bool

// inputFile is the path to the input device-model XML file.
var inputFile string

// outputFile is the path of the workbook to write.
var outputFile string

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command. Running it performs the conversion.
var rootCmd = &cobra.Command{
	Use:   "excelifier",
	Short: "TR-181 Excelifier - Convert device-model XML into a spreadsheet",
	Long: `TR-181 Excelifier converts Broadband Forum device-model XML files
(the TR-181 "Device" data model family) into a human-readable xlsx
workbook: one sheet per data model and one sheet per profile.

Each data-model sheet holds one row per parameter with its fully
qualified dotted path, declared type, access, syntax constraints,
default value and description. Profile sheets hold one row per
referenced object or parameter with its requirement level.

Markdown markup inside description text is preserved as raw text;
rendering it is out of scope.

Example Usage:
  excelifier -f tr-181-2-15-1.xml                  # writes output.xlsx
  excelifier -f tr-181-2-15-1.xml -o device.xlsx   # custom output path
  excelifier check -f tr-181-2-15-1.xml            # parse and lint only`,

	// Cobra still prints usage for flag errors (which happen before RunE);
	// runtime failures suppress it inside RunE so the error is not buried.
	// Errors are printed once, by Execute.
	SilenceErrors: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		cmd.SilenceUsage = true
		return runConvert(cmd)
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// =============================================================================
// INITIALIZATION
// =============================================================================

// init sets up the global and conversion flags.
func init() {
	// Persistent flags are available to this command and all subcommands.
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultPath,
		"Path to the optional configuration file",
	)

	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable verbose output for debugging",
	)

	// Conversion flags live on the root command itself.
	rootCmd.Flags().StringVarP(
		&inputFile,
		"file",
		"f",
		"",
		"Path to the input device-model XML file (required)",
	)
	rootCmd.Flags().StringVarP(
		&outputFile,
		"output",
		"o",
		"output.xlsx",
		"Path of the workbook to write",
	)

	rootCmd.MarkFlagRequired("file")
}

// =============================================================================
// CONVERSION RUN
// =============================================================================

// runConvert executes the full pipeline for the flagged input file.
func runConvert(cmd *cobra.Command) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	result := converter.New(inputFile, outputFile, cfg, logger).Run()
	if !result.Success {
		return result.Error
	}

	printSummary(result)
	return nil
}

// printSummary writes the run summary to stdout.
func printSummary(result converter.Result) {
	fmt.Printf("%s -> %s\n", result.InputFile, result.OutputFile)
	fmt.Printf("Models:          %d\n", result.Stats.Models)
	fmt.Printf("Profiles:        %d\n", result.Stats.Profiles)
	fmt.Printf("Parameter rows:  %d\n", result.Stats.ParameterRows)
	fmt.Printf("Profile rows:    %d\n", result.Stats.ProfileRows)
	if result.Stats.Warnings > 0 {
		fmt.Printf("Warnings:        %d (see log output)\n", result.Stats.Warnings)
	}
	fmt.Printf("Time elapsed:    %s\n", result.Stats.Duration.Round(time.Millisecond))
}

// =============================================================================
// SHARED SETUP
// =============================================================================

// setup loads the configuration and builds the logger. It is shared by the
// root and check commands.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	explicit := cmd.Flags().Changed("config") || cmd.InheritedFlags().Changed("config")

	cfg, err := config.Load(cfgFile, explicit)
	if err != nil {
		return nil, nil, err
	}

	logger, err := buildLogger(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}

	return cfg, logger, nil
}

// buildLogger constructs the zap logger. --verbose forces debug-level
// development output regardless of the configured level.
func buildLogger(level string) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}

	zapLevel, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(zapLevel)
	zcfg.OutputPaths = []string{"stderr"}

	return zcfg.Build()
}
