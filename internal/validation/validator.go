// =============================================================================
// TR-181 Excelifier - Row Lint
// =============================================================================
//
// This module performs best-effort checks over the extracted row sets.
// All findings are warnings: the conversion is a read-and-report tool, so
// lint results are surfaced to the user but never change the outcome of a
// run.
//
// CHECKS:
//   1. Duplicate parameter paths within one model (paths are expected to
//      be unique per model)
//   2. Profile rows whose path matches no extracted parameter or object
//      path prefix (references are copied verbatim and may legitimately
//      point outside the file, hence informational)
//   3. Profiles with no entries at all
//
// ERROR HANDLING:
//   - Findings are collected, not thrown
//   - Each finding carries enough context to locate the row
//
// =============================================================================

package validation

import (
	"fmt"
	"strings"

	"github.com/tr181tools/excelifier/internal/types"
)

// =============================================================================
// FINDINGS
// =============================================================================

// Finding is a single lint observation.
type Finding struct {
	// Sheet is the model or profile name the finding belongs to.
	Sheet string

	// Path is the row path involved, empty for sheet-level findings.
	Path string

	// Message is a human-readable description of the observation.
	Message string
}

// String renders the finding for log or console output.
func (f Finding) String() string {
	if f.Path == "" {
		return fmt.Sprintf("%s: %s", f.Sheet, f.Message)
	}
	return fmt.Sprintf("%s: %s: %s", f.Sheet, f.Path, f.Message)
}

// Result contains all findings from one lint pass.
type Result struct {
	// Findings in discovery order.
	Findings []Finding

	// RowsChecked is the total number of rows examined.
	RowsChecked int
}

// =============================================================================
// LINT PASS
// =============================================================================

// Lint checks the extracted tables and returns all findings.
func Lint(models []types.ModelTable, profiles []types.ProfileTable) Result {
	var res Result

	// Known paths across all models, used to resolve profile references.
	known := make(map[string]struct{})

	for _, model := range models {
		seen := make(map[string]struct{}, len(model.Rows))

		for _, row := range model.Rows {
			res.RowsChecked++

			if _, dup := seen[row.Path]; dup {
				res.Findings = append(res.Findings, Finding{
					Sheet:   model.Name,
					Path:    row.Path,
					Message: "duplicate parameter path",
				})
			}
			seen[row.Path] = struct{}{}
			known[row.Path] = struct{}{}

			// Object paths are addressable by profiles too.
			if i := strings.LastIndex(row.Path, "."); i >= 0 {
				known[row.Path[:i+1]] = struct{}{}
			}
		}
	}

	for _, profile := range profiles {
		if len(profile.Rows) == 0 {
			res.Findings = append(res.Findings, Finding{
				Sheet:   profile.Name,
				Message: "profile has no entries",
			})
			continue
		}

		for _, row := range profile.Rows {
			res.RowsChecked++

			if !pathKnown(known, row.Path) {
				res.Findings = append(res.Findings, Finding{
					Sheet:   profile.Name,
					Path:    row.Path,
					Message: "reference does not match any extracted path",
				})
			}
		}
	}

	return res
}

// pathKnown reports whether a profile reference matches an extracted
// parameter path, an object path, or a prefix of one (object references
// cover their whole subtree).
func pathKnown(known map[string]struct{}, path string) bool {
	if path == "" {
		return false
	}
	if _, ok := known[path]; ok {
		return true
	}

	// An object reference like "Device.WiFi." is satisfied by any
	// parameter underneath it.
	if strings.HasSuffix(path, ".") {
		for k := range known {
			if strings.HasPrefix(k, path) {
				return true
			}
		}
	}

	return false
}
