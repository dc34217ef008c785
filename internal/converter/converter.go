// =============================================================================
// TR-181 Excelifier - Converter Module
// =============================================================================
//
// This module contains the core conversion logic. It orchestrates the
// pipeline for a single file, from XML parsing to workbook writing.
//
// CONVERSION PIPELINE:
//   1. Load and parse the device-model XML
//   2. Extract model and profile row sets
//   3. Lint the rows (warnings only)
//   4. Write the workbook
//
// The pipeline is a single synchronous call chain with no shared mutable
// state beyond the in-memory tree and the row sets derived from it. The
// first fatal error wins; no partial output is produced on failure.
//
// =============================================================================

package converter

import (
	"time"

	"go.uber.org/zap"

	"github.com/tr181tools/excelifier/internal/config"
	"github.com/tr181tools/excelifier/internal/dmxml"
	"github.com/tr181tools/excelifier/internal/extractor"
	"github.com/tr181tools/excelifier/internal/validation"
	"github.com/tr181tools/excelifier/internal/xlsxwriter"
)

// =============================================================================
// RESULT STRUCTURE
// =============================================================================

// Result represents the outcome of converting a single file.
type Result struct {
	// InputFile is the path to the XML file that was processed.
	InputFile string

	// OutputFile is the path to the generated workbook.
	// This is empty if processing failed.
	OutputFile string

	// Success indicates whether the conversion completed.
	Success bool

	// Error contains the error if the conversion failed, nil otherwise.
	Error error

	// Stats contains processing statistics.
	Stats Stats
}

// Stats contains statistics about one conversion run.
type Stats struct {
	// Models is the number of data models found in the input.
	Models int

	// Profiles is the number of profiles found in the input.
	Profiles int

	// ParameterRows is the total number of parameter rows emitted.
	ParameterRows int

	// ProfileRows is the total number of profile-entry rows emitted.
	ProfileRows int

	// Warnings is the number of lint findings. Warnings never fail a run.
	Warnings int

	// Duration is the time taken for the whole pipeline.
	Duration time.Duration
}

// =============================================================================
// CONVERTER STRUCTURE
// =============================================================================

// Converter handles the conversion of a single device-model XML file.
type Converter struct {
	inputPath  string
	outputPath string
	cfg        *config.Config
	logger     *zap.Logger
}

// New creates a Converter. A nil config uses defaults; a nil logger
// disables logging.
func New(inputPath, outputPath string, cfg *config.Config, logger *zap.Logger) *Converter {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Converter{
		inputPath:  inputPath,
		outputPath: outputPath,
		cfg:        cfg,
		logger:     logger,
	}
}

// =============================================================================
// PIPELINE
// =============================================================================

// Run executes the full pipeline and returns the outcome.
func (c *Converter) Run() Result {
	start := time.Now()

	result := Result{InputFile: c.inputPath}
	fail := func(err error) Result {
		result.Error = err
		result.Stats.Duration = time.Since(start)
		return result
	}

	c.logger.Debug("loading input", zap.String("file", c.inputPath))
	doc, err := dmxml.Load(c.inputPath)
	if err != nil {
		return fail(err)
	}

	models, profiles := extractor.Extract(doc)
	result.Stats.Models = len(models)
	result.Stats.Profiles = len(profiles)
	for _, m := range models {
		result.Stats.ParameterRows += len(m.Rows)
	}
	for _, p := range profiles {
		result.Stats.ProfileRows += len(p.Rows)
	}

	c.logger.Debug("extraction complete",
		zap.Int("models", result.Stats.Models),
		zap.Int("profiles", result.Stats.Profiles),
		zap.Int("parameter_rows", result.Stats.ParameterRows),
		zap.Int("profile_rows", result.Stats.ProfileRows),
	)

	lint := validation.Lint(models, profiles)
	result.Stats.Warnings = len(lint.Findings)
	for _, finding := range lint.Findings {
		c.logger.Warn("lint", zap.String("finding", finding.String()))
	}

	if err := xlsxwriter.New(c.cfg).Write(c.outputPath, models, profiles); err != nil {
		return fail(err)
	}

	result.OutputFile = c.outputPath
	result.Success = true
	result.Stats.Duration = time.Since(start)

	c.logger.Info("conversion complete",
		zap.String("input", c.inputPath),
		zap.String("output", c.outputPath),
		zap.Duration("elapsed", result.Stats.Duration),
	)

	return result
}
