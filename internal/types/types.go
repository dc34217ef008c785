// =============================================================================
// TR-181 Excelifier - Shared Types
// =============================================================================
//
// This package contains shared types used across multiple modules to avoid
// import cycles. Types defined here are used by:
//   - extractor
//   - validation
//   - xlsxwriter
//   - converter
//
// =============================================================================

package types

// =============================================================================
// DATA MODEL ROWS
// =============================================================================

// ParameterRow is one flattened parameter from a data model. One row per
// parameter in the model's sheet; hierarchy is preserved in the dotted Path
// rather than by nesting.
type ParameterRow struct {
	// Path is the fully qualified dotted path, e.g. "Device.WiFi.Channel".
	Path string

	// Type is the declared syntax type (string, unsignedInt, boolean,
	// dateTime, a named dataType reference, ...). Empty when the parameter
	// carries no recognizable syntax element.
	Type string

	// Access is the declared access level (readOnly/readWrite).
	Access string

	// Syntax is a human-readable summary of the syntax constraints:
	// size limits, numeric ranges, enumerated values, patterns, list-ness.
	Syntax string

	// Default is the declared default value, empty if none.
	Default string

	// Flags carries the status/activeNotify/forcedInform attributes,
	// space-joined, in that order. Empty when none are set.
	Flags string

	// Version is the owning model's version string (e.g. "2.15").
	Version string

	// Description is the parameter description with whitespace runs
	// collapsed. Empty string when the source has no description.
	Description string
}

// ModelTable is one data model flattened into rows, in document order.
type ModelTable struct {
	// Name is the model name as declared in the XML, e.g. "Device:2.15".
	Name string

	// Rows contains one entry per parameter, document order.
	Rows []ParameterRow
}

// =============================================================================
// PROFILE ROWS
// =============================================================================

// ProfileRow is one reference inside a profile. References are copied
// verbatim from the source; they are never resolved against the model tree.
type ProfileRow struct {
	// Path is the referenced object or parameter path.
	Path string

	// Requirement is the required access level for the referenced item.
	Requirement string

	// Base is the profile's base attribute, repeated on every row.
	Base string

	// Extends is the profile's extends attribute, repeated on every row.
	Extends string
}

// ProfileTable is one profile flattened into rows, in document order.
type ProfileTable struct {
	// Name is the profile name as declared in the XML, e.g. "Baseline:1".
	Name string

	// Rows contains one entry per referenced object or parameter.
	Rows []ProfileRow
}
