// =============================================================================
// TR-181 Excelifier - XLSX Writer Module
// =============================================================================
//
// This module materializes the extracted row sets into an xlsx workbook.
// Each data model becomes one sheet, each profile becomes one sheet, in
// extractor order.
//
// SHEET LAYOUT:
//   Model sheets:   Path | Type | Access | Syntax | Default | Flags | Version | Description
//   Profile sheets: Path | Requirement | Base | Extends
//
//   The header row is bold (configurable) and column widths are sized from
//   the longest cell in each column, clamped to configured bounds.
//
// SHEET NAMING:
//   Workbook sheet names are limited to 31 characters and may not contain
//   / \ ? * [ ] or :. Model and profile names are sanitized accordingly;
//   two names that sanitize identically are disambiguated with a
//   deterministic _2, _3, ... suffix in first-come order, never silently
//   overwritten.
//
// OUTPUT:
//   The workbook is written atomically (temp file + rename) so a failed
//   write never leaves a partial file behind. An existing output file is
//   replaced silently.
//
// =============================================================================

package xlsxwriter

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/tr181tools/excelifier/internal/config"
	"github.com/tr181tools/excelifier/internal/types"
	"github.com/tr181tools/excelifier/pkg/utils"
)

// ErrOutputWrite indicates the workbook could not be written to the
// requested output path.
var ErrOutputWrite = errors.New("failed to write output file")

// maxSheetNameLen is the workbook format's sheet-name limit.
const maxSheetNameLen = 31

// sheetNameForbidden are the characters the format rejects in sheet names.
const sheetNameForbidden = `/\?*[]:`

// Column headers for the two sheet kinds.
var (
	modelHeader   = []string{"Path", "Type", "Access", "Syntax", "Default", "Flags", "Version", "Description"}
	profileHeader = []string{"Path", "Requirement", "Base", "Extends"}
)

// =============================================================================
// WRITER
// =============================================================================

// Writer builds and saves workbooks according to the configuration.
type Writer struct {
	cfg *config.Config
}

// New creates a Writer. A nil config uses the built-in defaults.
func New(cfg *config.Config) *Writer {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Writer{cfg: cfg}
}

// Write materializes the tables into a workbook at path. With no tables at
// all, the workbook keeps a single empty placeholder sheet; the file is
// written either way.
func (w *Writer) Write(path string, models []types.ModelTable, profiles []types.ProfileTable) error {
	book, err := w.build(models, profiles)
	if err != nil {
		return err
	}
	defer book.Close()

	if err := utils.EnsureDir(path); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	err = utils.WriteFileAtomic(path, func(out io.Writer) error {
		return book.Write(out)
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	return nil
}

// build assembles the in-memory workbook.
func (w *Writer) build(models []types.ModelTable, profiles []types.ProfileTable) (*excelize.File, error) {
	book := excelize.NewFile()
	names := newSheetNamer()

	for _, model := range models {
		rows := make([][]string, 0, len(model.Rows))
		for _, r := range model.Rows {
			rows = append(rows, []string{
				r.Path, r.Type, r.Access, r.Syntax, r.Default, r.Flags, r.Version, r.Description,
			})
		}

		if err := w.writeSheet(book, names.claim(model.Name), modelHeader, rows); err != nil {
			return nil, err
		}
	}

	for _, profile := range profiles {
		rows := make([][]string, 0, len(profile.Rows))
		for _, r := range profile.Rows {
			rows = append(rows, []string{r.Path, r.Requirement, r.Base, r.Extends})
		}

		if err := w.writeSheet(book, names.claim(profile.Name), profileHeader, rows); err != nil {
			return nil, err
		}
	}

	// The default sheet only survives as the placeholder for empty input.
	if len(models)+len(profiles) > 0 {
		if err := book.DeleteSheet("Sheet1"); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}
		book.SetActiveSheet(0)
	} else if w.cfg.PlaceholderSheet != "Sheet1" {
		if err := book.SetSheetName("Sheet1", w.cfg.PlaceholderSheet); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}
	}

	return book, nil
}

// writeSheet creates one sheet with a header row plus data rows and applies
// the light formatting: bold header, content-based column widths.
func (w *Writer) writeSheet(book *excelize.File, name string, header []string, rows [][]string) error {
	if _, err := book.NewSheet(name); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	if err := book.SetSheetRow(name, "A1", &header); err != nil {
		return fmt.Errorf("%w: %v", ErrOutputWrite, err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}
		if err := book.SetSheetRow(name, cell, &row); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}
	}

	if w.cfg.HeaderBold() {
		style, err := book.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}

		last, err := excelize.CoordinatesToCellName(len(header), 1)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}
		if err := book.SetCellStyle(name, "A1", last, style); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}
	}

	return w.sizeColumns(book, name, header, rows)
}

// sizeColumns widens each column to its longest cell, clamped to the
// configured bounds.
func (w *Writer) sizeColumns(book *excelize.File, name string, header []string, rows [][]string) error {
	for col := range header {
		longest := len(header[col])
		for _, row := range rows {
			if col < len(row) && len(row[col]) > longest {
				longest = len(row[col])
			}
		}

		width := float64(longest) + 2
		if width < w.cfg.MinColumnWidth {
			width = w.cfg.MinColumnWidth
		}
		if width > w.cfg.MaxColumnWidth {
			width = w.cfg.MaxColumnWidth
		}

		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}
		if err := book.SetColWidth(name, colName, colName, width); err != nil {
			return fmt.Errorf("%w: %v", ErrOutputWrite, err)
		}
	}

	return nil
}

// =============================================================================
// SHEET NAME SANITIZATION
// =============================================================================

// sheetNamer hands out unique, format-legal sheet names. Names are matched
// case-insensitively, as the workbook format does.
type sheetNamer struct {
	used map[string]struct{}
}

func newSheetNamer() *sheetNamer {
	// The default sheet exists until it is deleted or renamed, so its
	// name is reserved up front.
	return &sheetNamer{used: map[string]struct{}{"sheet1": {}}}
}

// claim sanitizes the given name and reserves a unique variant of it.
// Collisions get a _2, _3, ... suffix, re-truncated so the suffix always
// survives the length limit.
func (n *sheetNamer) claim(name string) string {
	base := sanitizeSheetName(name)

	candidate := truncateRunes(base, maxSheetNameLen)
	for i := 2; n.taken(candidate); i++ {
		suffix := fmt.Sprintf("_%d", i)
		candidate = truncateRunes(base, maxSheetNameLen-len(suffix)) + suffix
	}

	n.used[strings.ToLower(candidate)] = struct{}{}
	return candidate
}

func (n *sheetNamer) taken(name string) bool {
	_, ok := n.used[strings.ToLower(name)]
	return ok
}

// sanitizeSheetName replaces forbidden characters with underscores. An
// empty name gets a generic fallback.
func sanitizeSheetName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Sheet"
	}

	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(sheetNameForbidden, r) {
			return '_'
		}
		return r
	}, name)
}

// truncateRunes shortens a string to at most n runes.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
