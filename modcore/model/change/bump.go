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

// Package change defines the version increments a mod author can apply to
// the Version recorded in a descriptor.
//
// A Bump is a small enumerated value that implements model.Model, so it can
// be read from configuration files, passed on the command line and logged
// like the other models. Apply is the only operation with semantics; the
// remaining methods exist to move a Bump across those boundaries. All
// methods are safe for concurrent use.
package change

import (
	"encoding/json"
	"strings"

	"dirpx.dev/modinfo/modcore/errors"
	"dirpx.dev/modinfo/modcore/model"
	"dirpx.dev/modinfo/modcore/model/semver"
	"gopkg.in/yaml.v3"
)

// Bump represents the semantic version increment applied to a mod's
// current version when preparing a new release of the mod.
//
// The zero value is BumpNone, which is valid. Values are ordered by
// significance, so BumpMajor > BumpMinor > BumpPatch > BumpNone and callers
// MAY combine several requested increments with max. The numeric values
// MUST NOT be persisted except through UnmarshalJSON's numeric form, which
// exists for hand-written configuration.
type Bump int

const (
	// BumpNone leaves the version unchanged.
	BumpNone Bump = iota

	// BumpPatch increments Patch: X.Y.Z becomes X.Y.(Z+1).
	BumpPatch

	// BumpMinor increments Minor and resets Patch: X.Y.Z becomes X.(Y+1).0.
	BumpMinor

	// BumpMajor increments Major and resets Minor and Patch: X.Y.Z becomes
	// (X+1).0.0.
	BumpMajor
)

// String constants for Bump values used in serialization, parsing, CLI
// arguments and human-facing output.
const (
	// BumpNoneStr is the name of BumpNone.
	BumpNoneStr = "none"

	// BumpPatchStr is the name of BumpPatch.
	BumpPatchStr = "patch"

	// BumpMinorStr is the name of BumpMinor.
	BumpMinorStr = "minor"

	// BumpMajorStr is the name of BumpMajor.
	BumpMajorStr = "major"
)

// ParseBump converts a textual representation into a Bump value.
//
// The vocabulary is "none", "patch", "minor" and "major", matched
// case-insensitively. Surrounding whitespace is not trimmed, since every
// caller passes a single CLI argument or a decoded scalar. Any other input
// returns BumpNone and a *errors.ParseError; callers MUST check the error
// rather than rely on the returned value.
func ParseBump(s string) (Bump, error) {
	switch strings.ToLower(s) {
	case BumpNoneStr:
		return BumpNone, nil
	case BumpPatchStr:
		return BumpPatch, nil
	case BumpMinorStr:
		return BumpMinor, nil
	case BumpMajorStr:
		return BumpMajor, nil
	default:
		return BumpNone, &errors.ParseError{Type: "Bump", Value: s}
	}
}

// Apply returns v incremented according to b.
//
// Any increment (BumpPatch, BumpMinor, BumpMajor) clears the pre-release and
// build metadata: bumping 1.2.3-foo+bar by BumpPatch yields 1.2.4. BumpNone
// and invalid Bump values return v unchanged, including any pre-release or
// metadata.
//
// Apply does not validate v. A malformed pre-release on v is discarded by
// any increment, so Apply never produces an invalid Version from a valid
// one.
func (b Bump) Apply(v semver.Version) semver.Version {
	switch b {
	case BumpPatch:
		return semver.Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	case BumpMinor:
		return semver.Version{Major: v.Major, Minor: v.Minor + 1}
	case BumpMajor:
		return semver.Version{Major: v.Major + 1}
	default:
		return v
	}
}

// bumpNames is indexed by Bump and MUST stay in step with the constants.
var bumpNames = [...]string{
	BumpNone:  BumpNoneStr,
	BumpPatch: BumpPatchStr,
	BumpMinor: BumpMinorStr,
	BumpMajor: BumpMajorStr,
}

// String returns the increment name, or "unknown" for an invalid value.
// It never fails, so it is safe in log output.
func (b Bump) String() string {
	if b.Valid() {
		return bumpNames[b]
	}
	return "unknown"
}

// Valid reports whether b is one of the defined increments. Negative
// values and values above BumpMajor are invalid.
func (b Bump) Valid() bool {
	return b >= BumpNone && b <= BumpMajor
}

// TypeName returns "Bump".
func (b Bump) TypeName() string { return "Bump" }

// Redacted returns String. A Bump carries nothing sensitive.
func (b Bump) Redacted() string { return b.String() }

// IsZero reports whether b is BumpNone, which is still a valid increment.
func (b Bump) IsZero() bool { return b == BumpNone }

// Equal accepts a Bump or a non-nil *Bump. Any other type, including a nil
// *Bump, compares unequal.
func (b Bump) Equal(other any) bool {
	if p, ok := other.(*Bump); ok && p != nil {
		other = *p
	}
	o, ok := other.(Bump)
	return ok && o == b
}

// Validate rejects values outside the defined increments with a
// *errors.ValidationError carrying the raw integer.
func (b Bump) Validate() error {
	if b.Valid() {
		return nil
	}
	return &errors.ValidationError{Type: b.TypeName(), Reason: "invalid Bump value", Value: int(b)}
}

// marshalError is the error every marshaller returns for an invalid b.
func (b Bump) marshalError() error {
	return &errors.MarshalError{Type: b.TypeName(), Value: int(b)}
}

// MarshalJSON writes the increment name as a JSON string. An invalid b
// fails with a *errors.MarshalError.
func (b Bump) MarshalJSON() ([]byte, error) {
	if !b.Valid() {
		return nil, b.marshalError()
	}
	return json.Marshal(b.String())
}

// UnmarshalJSON reads an increment name ("minor") or, for hand-written
// config, its number (2). A number MUST be integral and in range. On any
// error b is left unchanged.
func (b *Bump) UnmarshalJSON(data []byte) error {
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return &errors.UnmarshalError{Type: "Bump", Data: data, Reason: err.Error()}
	}

	switch v := raw.(type) {
	case string:
		parsed, err := ParseBump(v)
		if err != nil {
			return err
		}
		*b = parsed
	case float64:
		n := Bump(v)
		if float64(n) != v || !n.Valid() {
			return &errors.UnmarshalError{Type: "Bump", Data: data, Reason: "invalid numeric value"}
		}
		*b = n
	default:
		return &errors.UnmarshalError{Type: "Bump", Data: data, Reason: "want a string or a number"}
	}
	return nil
}

// MarshalYAML writes the increment name.
func (b Bump) MarshalYAML() (any, error) {
	if !b.Valid() {
		return nil, b.marshalError()
	}
	return b.String(), nil
}

// UnmarshalYAML reads an increment name. Unlike UnmarshalJSON it does not
// accept numbers. On any error b is left unchanged.
func (b *Bump) UnmarshalYAML(node *yaml.Node) error {
	var str string
	if err := node.Decode(&str); err != nil {
		return &errors.UnmarshalError{Type: "Bump", Data: []byte(node.Value), Reason: err.Error()}
	}
	parsed, err := ParseBump(str)
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

// MarshalText makes Bump usable as a flag value and map key.
func (b Bump) MarshalText() ([]byte, error) {
	if !b.Valid() {
		return nil, b.marshalError()
	}
	return []byte(b.String()), nil
}

// UnmarshalText is ParseBump. It lets pflag and viper decode a Bump
// directly.
func (b *Bump) UnmarshalText(text []byte) error {
	parsed, err := ParseBump(string(text))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}

var _ model.Model = (*Bump)(nil)
