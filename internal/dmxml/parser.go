// =============================================================================
// TR-181 Excelifier - Device Model XML Parser
// =============================================================================
//
// This module is responsible for parsing Broadband Forum device-model XML
// files (the TR-181 / cwmp-datamodel family) into an in-memory tree. The
// parser extracts:
//   - Data models (<model>) with their nested <object> / <parameter> trees
//   - Profiles (<profile>) with their object and parameter references
//   - Parameter syntax declarations (<syntax>) including type, size, range,
//     enumeration, pattern, list and default information
//
// DOCUMENT STRUCTURE (Expected Shape):
//
//   <document>
//     <model name="Device:2.15">
//       <object name="Device.WiFi." access="readOnly" minEntries="1" maxEntries="1">
//         <description>...</description>
//         <parameter name="Channel" access="readOnly">
//           <description>Current channel</description>
//           <syntax><unsignedInt><range minInclusive="1" maxInclusive="255"/></unsignedInt></syntax>
//         </parameter>
//       </object>
//       <profile name="Baseline:1">
//         <object ref="Device.WiFi." requirement="present">
//           <parameter ref="Channel" requirement="readOnly"/>
//         </object>
//       </profile>
//     </model>
//   </document>
//
// PARSING POLICY:
//   No schema validation is performed. Content that is well-formed XML but
//   does not match the expected shape produces empty or partial structures
//   instead of errors; downstream stages treat those best-effort.
//
// =============================================================================

package dmxml

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
)

// =============================================================================
// ERROR TAXONOMY
// =============================================================================

var (
	// ErrInputNotFound indicates the input file does not exist or cannot
	// be opened.
	ErrInputNotFound = errors.New("input file not found")

	// ErrInputParse indicates the input file is not well-formed XML.
	ErrInputParse = errors.New("input is not well-formed XML")
)

// =============================================================================
// DOCUMENT STRUCTURES
// =============================================================================

// Document is the root of a parsed device-model file. The root element name
// is not checked; any root carrying <model> children is accepted.
type Document struct {
	XMLName xml.Name
	Spec    string  `xml:"spec,attr"`
	Models  []Model `xml:"model"`
}

// Model is one data model definition, e.g. name="Device:2.15".
type Model struct {
	Name     string    `xml:"name,attr"`
	Base     string    `xml:"base,attr"`
	Objects  []Object  `xml:"object"`
	Profiles []Profile `xml:"profile"`
}

// Object is one object node in the model tree. Objects may contain nested
// objects (generic-shape support) or appear as a flat list with full dotted
// names, which is how published TR-181 files are laid out.
//
// Object implements xml.Unmarshaler: parameter and nested-object children
// land in one ordered Children list, because row order downstream must
// match document order and struct tags would split the two kinds into
// separate slices, losing their interleaving.
type Object struct {
	Name        string
	Access      string
	MinEntries  string
	MaxEntries  string
	Version     string
	Description Description
	Children    []ObjectChild
}

// ObjectChild is one child of an object, exactly one field set.
type ObjectChild struct {
	Parameter *Parameter
	Object    *Object
}

// Parameters returns the object's direct parameter children, document order.
func (o *Object) Parameters() []Parameter {
	var params []Parameter
	for _, c := range o.Children {
		if c.Parameter != nil {
			params = append(params, *c.Parameter)
		}
	}
	return params
}

// Objects returns the object's nested object children, document order.
func (o *Object) Objects() []Object {
	var objects []Object
	for _, c := range o.Children {
		if c.Object != nil {
			objects = append(objects, *c.Object)
		}
	}
	return objects
}

// UnmarshalXML decodes an <object> element, keeping parameter and nested
// object children in one document-ordered list. Unknown child elements are
// skipped, never fatal.
func (o *Object) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for _, a := range start.Attr {
		switch a.Name.Local {
		case "name":
			o.Name = a.Value
		case "access":
			o.Access = a.Value
		case "minEntries":
			o.MinEntries = a.Value
		case "maxEntries":
			o.MaxEntries = a.Value
		case "version":
			o.Version = a.Value
		}
	}

	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "description":
				if err := d.DecodeElement(&o.Description, &t); err != nil {
					return err
				}
			case "parameter":
				var p Parameter
				if err := d.DecodeElement(&p, &t); err != nil {
					return err
				}
				o.Children = append(o.Children, ObjectChild{Parameter: &p})
			case "object":
				var child Object
				if err := d.DecodeElement(&child, &t); err != nil {
					return err
				}
				o.Children = append(o.Children, ObjectChild{Object: &child})
			default:
				if err := d.Skip(); err != nil {
					return err
				}
			}

		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
}

// Parameter is one leaf field under an object.
type Parameter struct {
	Name         string      `xml:"name,attr"`
	Access       string      `xml:"access,attr"`
	Status       string      `xml:"status,attr"`
	ActiveNotify string      `xml:"activeNotify,attr"`
	ForcedInform string      `xml:"forcedInform,attr"`
	Description  Description `xml:"description"`
	Syntax       *Syntax     `xml:"syntax"`
}

// Description holds a description element's raw text. Markdown-style markup
// inside descriptions is preserved as-is; rendering it is out of scope.
type Description struct {
	Text string `xml:",chardata"`
}

// Profile is one named profile definition with references into the model.
type Profile struct {
	Name       string             `xml:"name,attr"`
	Base       string             `xml:"base,attr"`
	Extends    string             `xml:"extends,attr"`
	Version    string             `xml:"version,attr"`
	Objects    []ProfileObject    `xml:"object"`
	Parameters []ProfileParameter `xml:"parameter"`
}

// ProfileObject is an object reference inside a profile.
type ProfileObject struct {
	Ref         string             `xml:"ref,attr"`
	Requirement string             `xml:"requirement,attr"`
	Parameters  []ProfileParameter `xml:"parameter"`
}

// ProfileParameter is a parameter reference inside a profile or profile object.
type ProfileParameter struct {
	Ref         string `xml:"ref,attr"`
	Requirement string `xml:"requirement,attr"`
}

// =============================================================================
// SYNTAX STRUCTURE
// =============================================================================

// Syntax is a parameter's syntax declaration. The declared type is encoded
// in the source as "whichever child element is present" (<string/>,
// <unsignedInt/>, <dataType ref="IPAddress"/>, ...) rather than as a fixed
// tag, so Syntax implements xml.Unmarshaler and walks its subtree by token.
type Syntax struct {
	// Type is the declared type: the name of the first type element found,
	// or the ref attribute for <dataType> references.
	Type string

	// List is true when the value is list-valued (<list/> wrapper).
	List bool

	// Default is the declared default value (<default value="..."/>).
	Default string

	// MaxLength is the maximum size constraint (<size maxLength="..."/>).
	MaxLength string

	// Min and Max are the inclusive range bounds (<range .../>).
	Min string
	Max string

	// Enumerations are the allowed values (<enumeration value="..."/>),
	// in document order.
	Enumerations []string

	// Patterns are the declared value patterns (<pattern value="..."/>).
	Patterns []string
}

// UnmarshalXML decodes a <syntax> element. Unknown child elements are
// skipped, never fatal.
func (s *Syntax) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "list":
				s.List = true
				if err := s.collectConstraints(d); err != nil {
					return err
				}
			case "default":
				if s.Default == "" {
					s.Default = attrValue(t, "value")
				}
				if err := d.Skip(); err != nil {
					return err
				}
			case "dataType":
				if s.Type == "" {
					s.Type = attrValue(t, "ref")
				}
				if err := d.Skip(); err != nil {
					return err
				}
			default:
				// First unreserved child element names the type; its
				// children carry the constraints.
				if s.Type == "" {
					s.Type = t.Name.Local
				}
				if err := s.collectConstraints(d); err != nil {
					return err
				}
			}

		case xml.EndElement:
			if t.Name.Local == start.Name.Local {
				return nil
			}
		}
	}
}

// collectConstraints consumes the subtree of a type (or list) element and
// records any recognized constraint children. It returns when the enclosing
// element ends.
func (s *Syntax) collectConstraints(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "size":
				if v := attrValue(t, "maxLength"); v != "" {
					s.MaxLength = v
				}
			case "range":
				if v := attrValue(t, "minInclusive"); v != "" {
					s.Min = v
				}
				if v := attrValue(t, "maxInclusive"); v != "" {
					s.Max = v
				}
			case "enumeration":
				if v := attrValue(t, "value"); v != "" {
					s.Enumerations = append(s.Enumerations, v)
				}
			case "pattern":
				if v := attrValue(t, "value"); v != "" {
					s.Patterns = append(s.Patterns, v)
				}
			case "default":
				if s.Default == "" {
					s.Default = attrValue(t, "value")
				}
			}

			// Constraint elements carry everything in attributes; the
			// subtree is consumed regardless so unknown shapes are skipped.
			if err := d.Skip(); err != nil {
				return err
			}

		case xml.EndElement:
			return nil
		}
	}
}

// attrValue returns the value of the named attribute (local name match),
// or "" when absent.
func attrValue(el xml.StartElement, name string) string {
	for _, a := range el.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// =============================================================================
// LOADING FUNCTIONS
// =============================================================================

// Load reads and parses a device-model XML file.
//
// Failure modes:
//   - a missing file wraps ErrInputNotFound
//   - any other open failure (e.g. permissions) reports the cause directly
//   - malformed XML wraps ErrInputParse
func Load(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	doc, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Parse decodes a device-model document from a reader.
func Parse(r io.Reader) (*Document, error) {
	var doc Document

	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInputParse, err)
	}

	return &doc, nil
}
