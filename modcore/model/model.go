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

// Package model defines the contracts shared by every modinfo value type:
// the canonical Modinfo record, its Dependency entries, the lenient Version,
// and the enum-like Generation, Bump and Field values.
//
// Every such type SHOULD implement the Model interface or its constituent
// parts (Validatable, Serializable, Loggable, Identifiable, ZeroCheckable).
// These interfaces establish a common contract for validation, JSON/YAML
// projection, logging and identity that enables the generic helpers in this
// package (ValidateAll, SafeString, ToJSON, ToYAML, FromJSON, FromYAML).
//
// Model types are value records without internal cross-references. They are
// safe for concurrent reads; a caller mutating an instance MUST NOT do so
// concurrently with another reader of the same instance. The library
// provides no locking.
//
// Note that JSON and YAML are projections for tooling (inspection, diffing,
// configuration). The descriptor's own wire format is XML and is produced by
// the codec package, never by these marshalers.
package model

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Model is the root interface combining all fundamental contracts required
// for modinfo value types.
//
// Example implementation:
//
//	type MyModel struct {
//	    Field string
//	}
//
//	func (m MyModel) Validate() error {
//	    if m.Field == "" {
//	        return errors.New("field required")
//	    }
//	    return nil
//	}
//
//	func (m MyModel) TypeName() string { return "MyModel" }
//	func (m MyModel) IsZero() bool { return m.Field == "" }
//	func (m MyModel) Redacted() string { return "MyModel{...}" }
//	func (m MyModel) String() string { return "MyModel{Field:" + m.Field + "}" }
//	// ... MarshalJSON, UnmarshalJSON, MarshalYAML, UnmarshalYAML
//
//	var _ Model = (*MyModel)(nil)  // Compile-time check
type Model interface {
	Validatable
	Serializable
	Loggable
	Identifiable
	ZeroCheckable
}

// Validatable defines the contract for types that validate their own state.
//
// Validate MUST check every invariant of the type and return nil if and only
// if the instance is fully valid. When validation fails, the returned error
// MUST name what is invalid; the core returns *errors.ValidationError values
// carrying the type and field. Validate MUST be fast, deterministic and free
// of side effects, and MUST NOT mutate the receiver.
type Validatable interface {
	// Validate checks that the instance satisfies all invariants.
	Validate() error
}

// Serializable defines the contract for types that can be projected to and
// from JSON and YAML.
//
// Implementations MUST call Validate before marshaling so invalid states are
// never emitted, and SHOULD validate after unmarshaling. The usual pattern
// is a local type alias to avoid infinite recursion:
//
//	func (d Dependency) MarshalJSON() ([]byte, error) {
//	    if err := d.Validate(); err != nil {
//	        return nil, err
//	    }
//	    type dependency Dependency
//	    return json.Marshal(dependency(d))
//	}
type Serializable interface {
	json.Marshaler
	json.Unmarshaler
	yaml.Marshaler
	yaml.Unmarshaler
}

// Loggable defines the contract for types that can be written to logs.
type Loggable interface {
	// Redacted returns a representation safe for production logs. For
	// descriptor types this masks free-form text that may carry contact
	// details (author, website).
	Redacted() string

	// String returns the full human-readable representation.
	String() string
}

// Identifiable defines the contract for types that report a canonical
// type name, used in error messages and logs.
type Identifiable interface {
	// TypeName returns the CamelCase name of the type without a package
	// prefix. It SHOULD return a string constant.
	TypeName() string
}

// ZeroCheckable defines the contract for types that can detect their zero
// (empty) state.
type ZeroCheckable interface {
	// IsZero reports whether this instance contains no meaningful data.
	IsZero() bool
}

// Checked is the part of Model the validation helpers rely on.
//
// Model types implement their unmarshalers on the pointer receiver, so only
// *T satisfies Model. Checked needs value-receiver methods only, which lets
// ValidateAll accept plain value slices.
type Checked interface {
	Validatable
	Identifiable
}

// Comparable defines value equality for a type. Edit flows use it with
// Cloneable to detect whether a mutation changed anything.
type Comparable[T any] interface {
	// Equal reports whether this instance represents the same logical value
	// as other.
	Equal(other T) bool
}

// Cloneable defines deep copying for a type.
type Cloneable[T any] interface {
	// Clone creates a deep copy that shares no references with the receiver.
	Clone() T
}
