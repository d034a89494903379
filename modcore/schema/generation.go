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

package schema

import (
	"encoding/json"
	"strings"

	"dirpx.dev/modinfo/modcore/errors"
	"dirpx.dev/modinfo/modcore/model"
	"gopkg.in/yaml.v3"
)

// Generation identifies one of the incompatible ModInfo.xml schema
// generations.
//
// Generation implements model.Model so it can travel through configuration
// files and JSON/YAML output like any other value. The numeric values MUST
// NOT be persisted; the string forms "v1" and "v2" are the stable encoding.
// Marshalling an invalid Generation fails with a *errors.MarshalError rather
// than writing "unknown".
type Generation int

const (
	// GenerationUnknown is the zero value. It is never a valid target.
	GenerationUnknown Generation = iota

	// V1 is the legacy layout: a <ModInfo> root, no XML declaration and
	// flat <Dependency value=".."/> entries.
	V1

	// V2 is the current layout: an XML declaration, an <xml> root and
	// dependencies nested under <Dependencies>.
	V2
)

// String constants for Generation values used in serialization, CLI flags
// and configuration.
const (
	// GenerationUnknownStr is what String returns for an invalid value. It
	// is never accepted by ParseGeneration.
	GenerationUnknownStr = "unknown"

	// V1Str is the canonical string form of V1.
	V1Str = "v1"

	// V2Str is the canonical string form of V2.
	V2Str = "v2"
)

// Latest is the generation new descriptors are written in by default. The
// CLI uses it for "init" and as the default conversion target. It MUST
// always name a valid generation.
const Latest = V2

// Generations returns every valid generation, oldest first. A fresh slice
// is returned on every call.
func Generations() []Generation {
	return []Generation{V1, V2}
}

// ParseGeneration converts "v1", "V2", "1" or "2" into a Generation.
// Matching is case-insensitive and ignores surrounding whitespace. Any other
// input, including "unknown", returns GenerationUnknown and a
// *errors.ParseError.
func ParseGeneration(s string) (Generation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case V1Str, "1":
		return V1, nil
	case V2Str, "2":
		return V2, nil
	default:
		return GenerationUnknown, &errors.ParseError{Type: "Generation", Value: s}
	}
}

// String returns "v1", "v2" or "unknown". It never fails, which makes it
// safe in log output even for invalid values.
func (g Generation) String() string {
	switch g {
	case V1:
		return V1Str
	case V2:
		return V2Str
	default:
		return GenerationUnknownStr
	}
}

// Valid reports whether g is V1 or V2. Every exported function that takes a
// target Generation MUST reject an invalid one.
func (g Generation) Valid() bool {
	return g == V1 || g == V2
}

// TypeName returns "Generation".
func (g Generation) TypeName() string {
	return "Generation"
}

// Redacted returns String(). A Generation carries nothing sensitive.
func (g Generation) Redacted() string {
	return g.String()
}

// IsZero reports whether g is GenerationUnknown.
func (g Generation) IsZero() bool {
	return g == GenerationUnknown
}

// Equal reports whether other is a Generation (or non-nil *Generation) with
// the same value.
func (g Generation) Equal(other any) bool {
	switch v := other.(type) {
	case Generation:
		return g == v
	case *Generation:
		return v != nil && g == *v
	default:
		return false
	}
}

// Validate returns a *errors.ValidationError unless g is V1 or V2. The
// error carries the raw integer as Value since no name exists for it.
func (g Generation) Validate() error {
	if !g.Valid() {
		return &errors.ValidationError{
			Type:   g.TypeName(),
			Reason: "invalid Generation value",
			Value:  int(g),
		}
	}
	return nil
}

// MarshalJSON encodes g as "v1" or "v2".
func (g Generation) MarshalJSON() ([]byte, error) {
	if !g.Valid() {
		return nil, &errors.MarshalError{Type: g.TypeName(), Value: int(g)}
	}
	return json.Marshal(g.String())
}

// UnmarshalJSON accepts the string forms understood by ParseGeneration. A
// JSON value that is not a string yields a *errors.UnmarshalError. On any
// error g is left unchanged.
func (g *Generation) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &errors.UnmarshalError{Type: "Generation", Data: data, Reason: err.Error()}
	}
	parsed, err := ParseGeneration(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// MarshalYAML encodes g as "v1" or "v2".
func (g Generation) MarshalYAML() (any, error) {
	if !g.Valid() {
		return nil, &errors.MarshalError{Type: g.TypeName(), Value: int(g)}
	}
	return g.String(), nil
}

// UnmarshalYAML accepts the string forms understood by ParseGeneration. On
// any error g is left unchanged.
func (g *Generation) UnmarshalYAML(node *yaml.Node) error {
	var s string
	if err := node.Decode(&s); err != nil {
		return &errors.UnmarshalError{Type: "Generation", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseGeneration(s)
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler. It is what viper, pflag
// and go-toml see, so the text form MUST match MarshalJSON.
func (g Generation) MarshalText() ([]byte, error) {
	if !g.Valid() {
		return nil, &errors.MarshalError{Type: g.TypeName(), Value: int(g)}
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseGeneration.
func (g *Generation) UnmarshalText(text []byte) error {
	parsed, err := ParseGeneration(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

var _ model.Model = (*Generation)(nil)
