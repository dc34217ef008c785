// =============================================================================
// TR-181 Excelifier - Extractor Module
// =============================================================================
//
// This module flattens a parsed device-model tree into tabular row sets:
//   - One ModelTable per <model>, one ParameterRow per parameter
//   - One ProfileTable per <profile>, one ProfileRow per reference
//
// FLATTENING RULES:
//   - Object nodes emit no row of their own; hierarchy is preserved in the
//     dotted Path column of their parameters.
//   - Traversal is depth-first in document order, implemented with an
//     explicit stack so deeply nested models cannot exhaust the call stack.
//   - Row order equals document order of the corresponding parameters;
//     output is deterministic for identical input.
//   - Profile references are copied verbatim; they are never resolved
//     against the model tree.
//   - Anomalies (missing description, parameter without syntax, object
//     without children) are normalized to empty values, never errors.
//
// =============================================================================

package extractor

import (
	"regexp"
	"strings"

	"github.com/tr181tools/excelifier/internal/dmxml"
	"github.com/tr181tools/excelifier/internal/types"
)

// whitespaceRuns collapses runs of spaces/newlines in description text,
// matching the source tool's normalization. Markdown markup is left as-is.
var whitespaceRuns = regexp.MustCompile(`\s+`)

// =============================================================================
// EXTRACTION ENTRY POINT
// =============================================================================

// Extract flattens every model and profile in the document.
// Tables come back in document order.
func Extract(doc *dmxml.Document) ([]types.ModelTable, []types.ProfileTable) {
	var models []types.ModelTable
	var profiles []types.ProfileTable

	for _, model := range doc.Models {
		models = append(models, extractModel(model))

		for _, profile := range model.Profiles {
			profiles = append(profiles, extractProfile(profile))
		}
	}

	return models, profiles
}

// =============================================================================
// MODEL EXTRACTION
// =============================================================================

// item is one pending node on the traversal stack: either a parameter to
// emit or an object to descend into, paired with the resolved path of its
// parent. Keeping both kinds on one stack preserves their interleaving.
type item struct {
	param      *dmxml.Parameter
	object     *dmxml.Object
	parentPath string
}

// extractModel walks one model's object tree depth-first and emits one row
// per parameter, in document order.
func extractModel(model dmxml.Model) types.ModelTable {
	table := types.ModelTable{Name: model.Name}
	version := modelVersion(model.Name)

	// Seed the stack in reverse so popping yields document order.
	stack := make([]item, 0, len(model.Objects))
	for i := len(model.Objects) - 1; i >= 0; i-- {
		stack = append(stack, item{object: &model.Objects[i]})
	}

	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if it.param != nil {
			table.Rows = append(table.Rows, parameterRow(it.parentPath, *it.param, version))
			continue
		}

		objPath := joinPath(it.parentPath, it.object.Name)

		for i := len(it.object.Children) - 1; i >= 0; i-- {
			child := it.object.Children[i]
			stack = append(stack, item{
				param:      child.Parameter,
				object:     child.Object,
				parentPath: objPath,
			})
		}
	}

	return table
}

// parameterRow builds the row for one parameter under the given object path.
func parameterRow(objPath string, param dmxml.Parameter, version string) types.ParameterRow {
	row := types.ParameterRow{
		Path:        joinParam(objPath, param.Name),
		Access:      strings.TrimSpace(param.Access),
		Flags:       parameterFlags(param),
		Version:     version,
		Description: normalizeText(param.Description.Text),
	}

	if param.Syntax != nil {
		row.Type = param.Syntax.Type
		row.Syntax = syntaxSummary(param.Syntax)
		row.Default = param.Syntax.Default
	}

	return row
}

// parameterFlags joins the status/activeNotify/forcedInform attributes,
// in that order, space-separated.
func parameterFlags(param dmxml.Parameter) string {
	var flags []string
	for _, v := range []string{param.Status, param.ActiveNotify, param.ForcedInform} {
		if v = strings.TrimSpace(v); v != "" {
			flags = append(flags, v)
		}
	}
	return strings.Join(flags, " ")
}

// syntaxSummary renders the syntax constraints as a single readable cell.
func syntaxSummary(s *dmxml.Syntax) string {
	var parts []string

	if s.List {
		parts = append(parts, "list")
	}
	if s.MaxLength != "" {
		parts = append(parts, "maxLength="+s.MaxLength)
	}
	if s.Min != "" || s.Max != "" {
		parts = append(parts, "range="+s.Min+".."+s.Max)
	}
	if len(s.Enumerations) > 0 {
		parts = append(parts, "enum("+strings.Join(s.Enumerations, "|")+")")
	}
	if len(s.Patterns) > 0 {
		parts = append(parts, "pattern("+strings.Join(s.Patterns, "|")+")")
	}

	return strings.Join(parts, " ")
}

// =============================================================================
// PROFILE EXTRACTION
// =============================================================================

// extractProfile flattens one profile: one row per referenced object and one
// per referenced parameter, document order. Parameter references nested
// under an object reference are qualified with the object's ref.
func extractProfile(profile dmxml.Profile) types.ProfileTable {
	table := types.ProfileTable{Name: profile.Name}

	addRow := func(path, requirement string) {
		table.Rows = append(table.Rows, types.ProfileRow{
			Path:        path,
			Requirement: strings.TrimSpace(requirement),
			Base:        profile.Base,
			Extends:     profile.Extends,
		})
	}

	for _, obj := range profile.Objects {
		addRow(obj.Ref, obj.Requirement)

		for _, param := range obj.Parameters {
			addRow(joinParam(obj.Ref, param.Ref), param.Requirement)
		}
	}

	// Top-level parameter references (rare, but the shape allows them).
	for _, param := range profile.Parameters {
		addRow(param.Ref, param.Requirement)
	}

	return table
}

// =============================================================================
// PATH HELPERS
// =============================================================================

// joinPath resolves an object name against its parent path. Published
// TR-181 files use absolute dotted names ending in "." even for nested
// objects, so a name that already extends the parent is taken verbatim.
func joinPath(parent, name string) string {
	name = strings.TrimSpace(name)

	switch {
	case parent == "":
		return name
	case strings.HasPrefix(name, parent):
		return name
	case strings.HasSuffix(parent, "."):
		return parent + name
	default:
		return parent + "." + name
	}
}

// joinParam appends a parameter's local name to its object path.
func joinParam(objPath, name string) string {
	name = strings.TrimSpace(name)

	switch {
	case objPath == "":
		return name
	case strings.HasSuffix(objPath, "."):
		return objPath + name
	default:
		return objPath + "." + name
	}
}

// modelVersion extracts the version part of a model name such as
// "Device:2.15". Empty when the name carries no version suffix.
func modelVersion(name string) string {
	if i := strings.LastIndex(name, ":"); i >= 0 {
		return name[i+1:]
	}
	return ""
}

// normalizeText trims a description and collapses internal whitespace runs
// to single spaces. A missing description yields "".
func normalizeText(text string) string {
	return whitespaceRuns.ReplaceAllString(strings.TrimSpace(text), " ")
}
