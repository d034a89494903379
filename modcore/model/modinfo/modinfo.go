/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package modinfo defines the canonical, generation-agnostic model of a mod
// descriptor (ModInfo.xml).
//
// Modinfo is the hub every schema generation converts into and out of. It
// holds the superset of the fields of all generations and has no notion of
// which generation it was read from: conversions are always computed fresh
// from the current field values.
//
// # Invariants
//
//   - Name MUST be non-empty after trimming whitespace.
//   - Version MUST be a valid semantic version (it always is when obtained
//     through semver.ParseVersion or Set).
//   - Website, when set, MUST parse as a URL reference.
//   - Every Dependency ID MUST be non-empty after trimming whitespace.
//   - Every text field MUST hold XML 1.0 characters only (see IsXMLChar).
//
// Validate reports every violated invariant, each as a
// *errors.ValidationError naming the field.
//
// # Concurrency
//
// Modinfo is a plain value record. Concurrent reads are safe; mutation
// (Set, BumpVersion, direct field writes) requires the caller to exclude
// concurrent readers of the same instance. Clone yields an independent copy.
package modinfo

import (
	"encoding/json"
	"fmt"
	"net/url"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"dirpx.dev/modinfo/modcore/errors"
	"dirpx.dev/modinfo/modcore/model"
	"dirpx.dev/modinfo/modcore/model/change"
	"dirpx.dev/modinfo/modcore/model/semver"
	"dirpx.dev/rxmerr"
	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// DefaultVersion is the Version of a freshly constructed Modinfo.
var DefaultVersion = semver.Version{Major: 0, Minor: 1, Patch: 0}

// Modinfo is the canonical descriptor record.
type Modinfo struct {
	// Name is the internal mod identifier (the mod's folder-level name).
	Name string `json:"name" yaml:"name" toml:"name"`

	// DisplayName is the human-facing title. v2 only; a v1 downgrade drops
	// it. See Title for a value that is always populated.
	DisplayName string `json:"display_name,omitempty" yaml:"display_name,omitempty" toml:"display_name,omitempty"`

	// Version is the mod's own version (not the descriptor generation).
	Version semver.Version `json:"version" yaml:"version" toml:"version"`

	// Description is free text.
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`

	// Author is free text, often "Name" or "Name <mail>".
	Author string `json:"author,omitempty" yaml:"author,omitempty" toml:"author,omitempty"`

	// Website is a URL. v2 only; a v1 downgrade drops it.
	Website string `json:"website,omitempty" yaml:"website,omitempty" toml:"website,omitempty"`

	// Compat is the game-compatibility tag carried next to the version
	// (for example "A21"). Both generations represent it.
	Compat string `json:"compat,omitempty" yaml:"compat,omitempty" toml:"compat,omitempty"`

	// Dependencies lists declared dependencies in declaration order.
	Dependencies []Dependency `json:"dependencies,omitempty" yaml:"dependencies,omitempty" toml:"dependencies,omitempty"`
}

var (
	_ model.Model               = (*Modinfo)(nil)
	_ model.Comparable[Modinfo] = Modinfo{}
	_ model.Cloneable[Modinfo]  = Modinfo{}
)

// New returns an empty Modinfo with Version set to DefaultVersion.
//
// The result is not valid until Name is set.
func New() Modinfo {
	return Modinfo{Version: DefaultVersion}
}

// TypeName returns "Modinfo".
func (m Modinfo) TypeName() string {
	return "Modinfo"
}

// String returns a compact human-readable representation.
func (m Modinfo) String() string {
	return fmt.Sprintf("Modinfo{Name:%s, Version:%s, Author:%s, Website:%s, Dependencies:%d}",
		m.Name, m.Version, m.Author, m.Website, len(m.Dependencies))
}

// Redacted is like String but masks Author and reduces Website to its host,
// since both frequently carry personal contact details.
func (m Modinfo) Redacted() string {
	return fmt.Sprintf("Modinfo{Name:%s, Version:%s, Author:%s, Website:%s, Dependencies:%d}",
		m.Name, m.Version, redactText(m.Author), redactURL(m.Website), len(m.Dependencies))
}

func redactText(s string) string {
	if s == "" {
		return "[empty]"
	}
	r := []rune(s)
	return string(r[0]) + "***"
}

func redactURL(s string) string {
	if s == "" {
		return "[empty]"
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" {
		return "[redacted]"
	}
	return u.Scheme + "://" + u.Host + "/***"
}

// IsZero reports whether every field holds its zero value.
func (m Modinfo) IsZero() bool {
	return m.Name == "" && m.DisplayName == "" && m.Description == "" &&
		m.Author == "" && m.Website == "" && m.Compat == "" &&
		m.Version.IsZero() && len(m.Dependencies) == 0
}

// Equal reports whether m and other hold the same field values. Version is
// compared structurally, and a nil Dependencies slice equals an empty one.
func (m Modinfo) Equal(other Modinfo) bool {
	return m.Name == other.Name &&
		m.DisplayName == other.DisplayName &&
		m.Description == other.Description &&
		m.Author == other.Author &&
		m.Website == other.Website &&
		m.Compat == other.Compat &&
		m.Version.Equal(other.Version) &&
		slices.Equal(m.Dependencies, other.Dependencies)
}

// Clone returns a deep copy of m.
func (m Modinfo) Clone() Modinfo {
	out := m
	out.Dependencies = slices.Clone(m.Dependencies)
	return out
}

// Validate checks the canonical invariants. Every violation is reported as a
// *errors.ValidationError naming the field; several violations are combined
// into one error with rxmerr, so errors.As still finds the individual
// ValidationError values.
//
// Text fields MUST consist of XML 1.0 characters only: a control character
// such as U+0001 cannot survive a write and read of the descriptor, so a
// model holding one is invalid rather than silently altered on output.
// Dependency entries are checked with model.ValidateAll and reported as a
// single violation on field Dependencies that wraps every failing entry.
func (m Modinfo) Validate() error {
	c := rxmerr.NewCollector()
	add := func(err error) {
		if err != nil {
			c.Append(err)
		}
	}
	typ := m.TypeName()

	add(checkText(typ, "Name", m.Name, true))
	add(checkText(typ, "DisplayName", m.DisplayName, false))

	if err := m.Version.Validate(); err != nil {
		c.Append(&errors.ValidationError{
			Type:   typ,
			Field:  "Version",
			Reason: err.Error(),
			Value:  m.Version.String(),
			Err:    err,
		})
	}

	add(checkText(typ, "Description", m.Description, false))
	add(checkText(typ, "Author", m.Author, false))

	if err := checkText(typ, "Website", m.Website, false); err != nil {
		add(err)
	} else if m.Website != "" {
		if _, err := url.Parse(m.Website); err != nil {
			c.Append(&errors.ValidationError{
				Type:   typ,
				Field:  "Website",
				Reason: "is not a valid URL",
				Value:  m.Website,
				Err:    err,
			})
		}
	}

	add(checkText(typ, "Compat", m.Compat, false))

	if err := model.ValidateAll(m.Dependencies); err != nil {
		c.Append(&errors.ValidationError{
			Type:   typ,
			Field:  "Dependencies",
			Reason: err.Error(),
			Err:    err,
		})
	}

	return c.Err()
}

// Title returns DisplayName, or Name split into capitalized words when
// DisplayName is blank ("SomeInternalName" becomes "Some Internal Name").
// The derived value is never stored.
func (m Modinfo) Title() string {
	if strings.TrimSpace(m.DisplayName) != "" {
		return m.DisplayName
	}
	return titleCase(m.Name)
}

// titleCase splits s into lower-case words with strcase, which breaks on
// "_", "-", "." and spaces as well as on case changes, then capitalizes the
// first rune of each word.
func titleCase(s string) string {
	words := strings.Fields(strcase.ToDelimited(s, ' '))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// Value returns the text of a scalar field. The second result is false for
// FieldDependencies and unknown fields.
func (m Modinfo) Value(f Field) (string, bool) {
	switch f {
	case FieldName:
		return m.Name, true
	case FieldDisplayName:
		return m.DisplayName, true
	case FieldVersion:
		return m.Version.String(), true
	case FieldDescription:
		return m.Description, true
	case FieldAuthor:
		return m.Author, true
	case FieldWebsite:
		return m.Website, true
	case FieldCompat:
		return m.Compat, true
	default:
		return "", false
	}
}

// Get is Value addressed by canonical key ("name", "Display_Name", ...).
func (m Modinfo) Get(key string) (string, bool) {
	f, err := ParseField(key)
	if err != nil {
		return "", false
	}
	return m.Value(f)
}

// SetValue assigns the text of a scalar field. Version is parsed leniently;
// an unparseable version returns the *errors.VersionError and leaves m
// unchanged. FieldDependencies and unknown fields return a
// *errors.ParseError.
func (m *Modinfo) SetValue(f Field, value string) error {
	switch f {
	case FieldName:
		m.Name = value
	case FieldDisplayName:
		m.DisplayName = value
	case FieldVersion:
		v, err := semver.ParseVersion(value)
		if err != nil {
			return err
		}
		m.Version = v
	case FieldDescription:
		m.Description = value
	case FieldAuthor:
		m.Author = value
	case FieldWebsite:
		m.Website = value
	case FieldCompat:
		m.Compat = value
	default:
		return &errors.ParseError{Type: "Field", Value: f.String()}
	}
	return nil
}

// Set is SetValue addressed by canonical key.
func (m *Modinfo) Set(key, value string) error {
	f, err := ParseField(key)
	if err != nil {
		return err
	}
	return m.SetValue(f, value)
}

// SetVersion parses s leniently and stores it as Version.
func (m *Modinfo) SetVersion(s string) error {
	return m.SetValue(FieldVersion, s)
}

// BumpVersion applies b to Version, clearing pre-release and metadata.
func (m *Modinfo) BumpVersion(b change.Bump) {
	m.Version = b.Apply(m.Version)
}

// SetPrerelease replaces the pre-release of Version.
func (m *Modinfo) SetPrerelease(pre string) error {
	v, err := m.Version.WithPrerelease(pre)
	if err != nil {
		return err
	}
	m.Version = v
	return nil
}

// SetMetadata replaces the build metadata of Version.
func (m *Modinfo) SetMetadata(build string) error {
	v, err := m.Version.WithMetadata(build)
	if err != nil {
		return err
	}
	m.Version = v
	return nil
}

// AddDependency appends a dependency after validating it. Duplicates are
// kept.
func (m *Modinfo) AddDependency(id string, required bool) error {
	d := Dependency{ID: id, Required: required}
	if err := d.Validate(); err != nil {
		return err
	}
	m.Dependencies = append(m.Dependencies, d)
	return nil
}

// RemoveDependency drops every dependency whose ID equals id and reports
// whether any was removed.
func (m *Modinfo) RemoveDependency(id string) bool {
	n := len(m.Dependencies)
	m.Dependencies = slices.DeleteFunc(m.Dependencies, func(d Dependency) bool { return d.ID == id })
	return len(m.Dependencies) != n
}

// DependsOn reports whether a dependency with the given ID is declared.
func (m Modinfo) DependsOn(id string) bool {
	return slices.ContainsFunc(m.Dependencies, func(d Dependency) bool { return d.ID == id })
}

// MarshalJSON implements json.Marshaler, rejecting invalid values.
func (m Modinfo) MarshalJSON() ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	type modinfo Modinfo
	return json.Marshal(modinfo(m))
}

// UnmarshalJSON implements json.Unmarshaler and validates the result.
func (m *Modinfo) UnmarshalJSON(data []byte) error {
	type modinfo Modinfo
	if err := json.Unmarshal(data, (*modinfo)(m)); err != nil {
		return &errors.UnmarshalError{Type: m.TypeName(), Data: data, Reason: err.Error()}
	}
	if err := m.Validate(); err != nil {
		return &errors.UnmarshalError{Type: m.TypeName(), Data: data, Reason: fmt.Sprintf("validation failed: %v", err)}
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler, rejecting invalid values.
func (m Modinfo) MarshalYAML() (interface{}, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	type modinfo Modinfo
	return modinfo(m), nil
}

// UnmarshalYAML implements yaml.Unmarshaler and validates the result.
func (m *Modinfo) UnmarshalYAML(node *yaml.Node) error {
	type modinfo Modinfo
	if err := node.Decode((*modinfo)(m)); err != nil {
		return &errors.UnmarshalError{Type: m.TypeName(), Data: []byte(node.Value), Reason: err.Error()}
	}
	if err := m.Validate(); err != nil {
		return &errors.UnmarshalError{Type: m.TypeName(), Data: []byte(node.Value), Reason: fmt.Sprintf("validation failed: %v", err)}
	}
	return nil
}
