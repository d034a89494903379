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

package modinfo

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/modinfo/modcore/errors"
	"dirpx.dev/modinfo/modcore/model"
	"gopkg.in/yaml.v3"
)

// Dependency is one declared dependency of a mod.
//
// The library only records what the descriptor declares. It does not
// resolve load order or dependency graphs, and it does not de-duplicate:
// two entries with the same ID are preserved as given.
type Dependency struct {
	// ID is the identifier (internal Name) of the mod depended upon.
	// It MUST be non-empty after trimming whitespace.
	ID string `json:"id" yaml:"id" toml:"id"`

	// Required marks a hard dependency that must be loaded before this mod.
	// Only v2 descriptors can express it; a v1 downgrade drops it.
	Required bool `json:"required,omitempty" yaml:"required,omitempty" toml:"required,omitempty"`
}

var (
	_ model.Model                  = (*Dependency)(nil)
	_ model.Comparable[Dependency] = Dependency{}
)

// TypeName returns "Dependency".
func (d Dependency) TypeName() string {
	return "Dependency"
}

// String returns a human-readable representation.
func (d Dependency) String() string {
	return fmt.Sprintf("Dependency{ID:%s, Required:%t}", d.ID, d.Required)
}

// Redacted returns String(); dependency identifiers are public mod names.
func (d Dependency) Redacted() string {
	return d.String()
}

// IsZero reports whether d is the zero Dependency.
func (d Dependency) IsZero() bool {
	return d == Dependency{}
}

// Equal reports whether d and other are identical.
func (d Dependency) Equal(other Dependency) bool {
	return d == other
}

// Validate reports a *errors.ValidationError on field ID if the ID is blank
// after trimming or contains a character XML cannot carry.
func (d Dependency) Validate() error {
	return checkText(d.TypeName(), "ID", d.ID, true)
}

// MarshalJSON implements json.Marshaler, rejecting invalid values.
func (d Dependency) MarshalJSON() ([]byte, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", d.TypeName(), err)
	}
	type dependency Dependency
	return json.Marshal(dependency(d))
}

// UnmarshalJSON implements json.Unmarshaler and validates the result.
func (d *Dependency) UnmarshalJSON(data []byte) error {
	type dependency Dependency
	if err := json.Unmarshal(data, (*dependency)(d)); err != nil {
		return &errors.UnmarshalError{Type: d.TypeName(), Data: data, Reason: err.Error()}
	}
	if err := d.Validate(); err != nil {
		return &errors.UnmarshalError{Type: d.TypeName(), Data: data, Reason: fmt.Sprintf("validation failed: %v", err)}
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler, rejecting invalid values.
func (d Dependency) MarshalYAML() (interface{}, error) {
	if err := d.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", d.TypeName(), err)
	}
	type dependency Dependency
	return dependency(d), nil
}

// UnmarshalYAML implements yaml.Unmarshaler and validates the result.
func (d *Dependency) UnmarshalYAML(node *yaml.Node) error {
	type dependency Dependency
	if err := node.Decode((*dependency)(d)); err != nil {
		return &errors.UnmarshalError{Type: d.TypeName(), Data: []byte(node.Value), Reason: err.Error()}
	}
	if err := d.Validate(); err != nil {
		return &errors.UnmarshalError{Type: d.TypeName(), Data: []byte(node.Value), Reason: fmt.Sprintf("validation failed: %v", err)}
	}
	return nil
}
