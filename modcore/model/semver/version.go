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

// Package semver provides the Version value carried by a mod descriptor.
//
// Mod authors rarely write strict Semantic Versioning 2.0.0 strings: "1",
// "1.2", "v1.2.3", "1_2_3", "1.0 beta" and "21.2.0.1" all appear in the wild.
// ParseVersion accepts these through an explicit set of lenient rules and
// normalizes them into a strict SemVer value; ordering and validation of the
// normalized value are delegated to github.com/blang/semver/v4.
package semver

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	moderrors "dirpx.dev/modinfo/modcore/errors"
	bsemver "github.com/blang/semver/v4"

	"gopkg.in/yaml.v3"
)

// Version represents a semantic version according to Semantic Versioning 2.0.0
// (https://semver.org), as carried by the Version element of a descriptor.
//
// Version supports the full SemVer 2.0.0 format: Major.Minor.Patch[-Prerelease][+Metadata]
//
// Ordering and comparison follow SemVer 2.0.0 rules:
//   - Versions with prerelease have lower precedence than release versions:
//     1.0.0-alpha < 1.0.0
//   - Prerelease identifiers are compared by dot-separated parts:
//     1.0.0-alpha < 1.0.0-alpha.1 < 1.0.0-beta
//   - Build metadata does NOT affect precedence:
//     Compare(1.0.0+build1, 1.0.0+build2) == 0
//
// Equality (Equal, ==) is structural and does include Metadata.
//
// Version is an immutable value: every operation returns a new Version. The
// zero value corresponds to 0.0.0.
type Version struct {
	// Major is the first component of the semantic version.
	Major int

	// Minor is the second component of the semantic version. Lenient parsing
	// sets it to 0 when the input has a single numeric component.
	Minor int

	// Patch is the third component of the semantic version. Lenient parsing
	// sets it to 0 when the input has fewer than three numeric components.
	Patch int

	// Prerelease is an optional pre-release identifier according to SemVer 2.0.0.
	//
	// When non-empty, it is a series of dot-separated identifiers containing
	// only ASCII alphanumerics and hyphens [0-9A-Za-z-]. Numeric identifiers
	// carry no leading zeroes.
	//
	// Examples: "alpha", "alpha.1", "rc.1", "beta.2"
	Prerelease string

	// Metadata is optional build metadata according to SemVer 2.0.0.
	//
	// Build metadata is ignored when determining version precedence.
	//
	// Examples: "build.123", "20130313144700", "4" (from "1.2.3.4")
	Metadata string
}

// ParseVersion parses a version string leniently into a Version value.
//
// The following rules are applied in order, and are the complete set of
// deviations from strict SemVer 2.0.0 that are tolerated:
//
//  1. Surrounding whitespace is trimmed. Empty input is rejected.
//  2. A single leading non-numeric prefix character (a letter such as "v"
//     or "V", or "=") is stripped.
//  3. Build metadata is everything after the first "+".
//  4. The numeric core is one or more runs of digits joined by ".", "_" or
//     ",". Missing Minor and Patch default to 0 ("1" is 1.0.0, "1.2" is
//     1.2.0). Leading zeroes are accepted ("1.02" is 1.2.0).
//  5. Numeric components after Patch are moved in front of the build
//     metadata ("1.2.3.4" is 1.2.3+4).
//  6. Whatever follows the numeric core is the pre-release, after removing
//     one leading "-", ".", "_" or space ("1.2.3beta", "1.2.3-beta" and
//     "1.0 beta" all carry pre-release "beta").
//  7. In pre-release and build identifiers, characters outside
//     [0-9A-Za-z-] become "-", empty identifiers are dropped and leading
//     zeroes of numeric pre-release identifiers are removed.
//
// Examples:
//
//	ParseVersion("1")            -> 1.0.0
//	ParseVersion("1.2")          -> 1.2.0
//	ParseVersion("v1.2.3")       -> 1.2.3
//	ParseVersion("1_2_3")        -> 1.2.3
//	ParseVersion("21.2.0.1")     -> 21.2.0+1
//	ParseVersion("1.0 RC2")      -> 1.0.0-RC2
//	ParseVersion("2.0.0-rc.1+b") -> 2.0.0-rc.1+b
//
// Input that has no numeric major component, or whose components do not fit
// in an int, is rejected with a *errors.VersionError.
func ParseVersion(s string) (Version, error) {
	input := s

	s = strings.TrimSpace(s)
	if s == "" {
		return Version{}, &moderrors.VersionError{Value: input, Reason: "empty version string"}
	}

	if c := s[0]; !isDigit(c) && (isLetter(c) || c == '=') {
		s = s[1:]
	}

	var build string
	if i := strings.IndexByte(s, '+'); i >= 0 {
		build = s[i+1:]
		s = s[:i]
	}

	var nums []int
	for {
		j := 0
		for j < len(s) && isDigit(s[j]) {
			j++
		}
		if j == 0 {
			break
		}
		n, err := strconv.Atoi(s[:j])
		if err != nil {
			return Version{}, &moderrors.VersionError{Value: input, Reason: fmt.Sprintf("component %q out of range", s[:j])}
		}
		nums = append(nums, n)
		s = s[j:]

		if len(s) >= 2 && isCoreSeparator(s[0]) && isDigit(s[1]) {
			s = s[1:]
			continue
		}
		break
	}
	if len(nums) == 0 {
		return Version{}, &moderrors.VersionError{Value: input, Reason: "no numeric major component"}
	}

	v := Version{Major: nums[0]}
	if len(nums) > 1 {
		v.Minor = nums[1]
	}
	if len(nums) > 2 {
		v.Patch = nums[2]
	}

	var extra []string
	for _, n := range nums[min(len(nums), 3):] {
		extra = append(extra, strconv.Itoa(n))
	}
	if build != "" {
		extra = append(extra, build)
	}
	v.Metadata = normalizeIdentifiers(strings.Join(extra, "."), false)

	if s != "" && strings.IndexByte("-._ ", s[0]) >= 0 {
		s = s[1:]
	}
	v.Prerelease = normalizeIdentifiers(strings.TrimSpace(s), true)

	if err := v.Validate(); err != nil {
		return Version{}, &moderrors.VersionError{Value: input, Reason: err.Error()}
	}

	return v, nil
}

// MustParseVersion is like ParseVersion but panics on error. It is intended
// for fixtures and package-level defaults.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }

func isCoreSeparator(c byte) bool { return c == '.' || c == '_' || c == ',' }

// normalizeIdentifiers applies rule 7 of ParseVersion to a dot-separated
// identifier list.
func normalizeIdentifiers(s string, prerelease bool) string {
	if s == "" {
		return ""
	}

	parts := strings.Split(s, ".")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		b := []byte(p)
		for i, c := range b {
			if !isDigit(c) && !isLetter(c) && c != '-' {
				b[i] = '-'
			}
		}
		id := string(b)
		if id == "" {
			continue
		}
		if prerelease && isNumeric(id) {
			id = strings.TrimLeft(id, "0")
			if id == "" {
				id = "0"
			}
		}
		out = append(out, id)
	}
	return strings.Join(out, ".")
}

func isNumeric(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return s != ""
}

// String returns the canonical textual representation of the Version
// according to SemVer 2.0.0: "Major.Minor.Patch[-Prerelease][+Metadata]".
//
// This is the form written back into descriptors, so a lenient input such
// as "v1.2" is re-emitted as "1.2.0".
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Metadata != "" {
		s += "+" + v.Metadata
	}
	return s
}

// toBlangSemver converts this Version to a blang/semver.Version.
func (v Version) toBlangSemver() (bsemver.Version, error) {
	bv, err := bsemver.Parse(v.String())
	if err != nil {
		return bsemver.Version{}, fmt.Errorf("failed to convert to blang/semver: %w", err)
	}
	return bv, nil
}

// Validate checks that the Version components are well-formed according to
// SemVer 2.0.0: non-negative numeric components and valid pre-release and
// metadata identifiers.
func (v Version) Validate() error {
	if v.Major < 0 {
		return fmt.Errorf("Major version component must be non-negative, got %d", v.Major)
	}
	if v.Minor < 0 {
		return fmt.Errorf("Minor version component must be non-negative, got %d", v.Minor)
	}
	if v.Patch < 0 {
		return fmt.Errorf("Patch version component must be non-negative, got %d", v.Patch)
	}

	if _, err := v.toBlangSemver(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	return nil
}

// IsZero reports whether the Version is exactly 0.0.0 with no prerelease
// or build metadata.
func (v Version) IsZero() bool {
	return v == Version{}
}

// Compare compares v with other and reports their ordering according to
// SemVer 2.0.0 precedence rules: -1 if v < other, 0 if equal precedence,
// +1 if v > other.
//
// Metadata is ignored. If either side is not a valid SemVer value (which
// ParseVersion never produces), the numeric cores are compared.
func (v Version) Compare(other Version) int {
	bv, err := v.toBlangSemver()
	if err != nil {
		return compareCore(v, other)
	}
	bother, err := other.toBlangSemver()
	if err != nil {
		return compareCore(v, other)
	}
	return bv.Compare(bother)
}

func compareCore(a, b Version) int {
	for _, d := range [3]int{a.Major - b.Major, a.Minor - b.Minor, a.Patch - b.Patch} {
		switch {
		case d < 0:
			return -1
		case d > 0:
			return 1
		}
	}
	return 0
}

// Less reports whether v has lower precedence than other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// Greater reports whether v has higher precedence than other.
func (v Version) Greater(other Version) bool {
	return v.Compare(other) > 0
}

// Equal reports whether v and other are structurally identical, metadata
// included. Use Compare(other) == 0 for precedence equality.
func (v Version) Equal(other Version) bool {
	return v == other
}

// WithPrerelease returns a copy of v carrying the given pre-release. The
// identifier is validated strictly.
func (v Version) WithPrerelease(pre string) (Version, error) {
	out := v
	out.Prerelease = pre
	if err := out.Validate(); err != nil {
		return v, &moderrors.VersionError{Value: out.String(), Reason: err.Error()}
	}
	return out, nil
}

// WithMetadata returns a copy of v carrying the given build metadata. The
// identifier is validated strictly.
func (v Version) WithMetadata(build string) (Version, error) {
	out := v
	out.Metadata = build
	if err := out.Validate(); err != nil {
		return v, &moderrors.VersionError{Value: out.String(), Reason: err.Error()}
	}
	return out, nil
}

// Release returns v without pre-release and build metadata.
func (v Version) Release() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
}

// MarshalText implements encoding.TextMarshaler for Version.
func (v Version) MarshalText() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler for Version using the
// lenient rules of ParseVersion.
func (v *Version) UnmarshalText(text []byte) error {
	parsed, err := ParseVersion(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalJSON implements json.Marshaler for Version.
//
// A valid Version is serialized as a JSON string in canonical form. If the
// Version is not well-formed, the validation error is returned.
func (v Version) MarshalJSON() ([]byte, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return json.Marshal(v.String())
}

// UnmarshalJSON implements json.Unmarshaler for Version.
//
// The JSON value MUST be a string; it is parsed leniently via ParseVersion.
func (v *Version) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &moderrors.UnmarshalError{
			Type:   "Version",
			Data:   data,
			Reason: err.Error(),
		}
	}

	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler for Version.
func (v Version) MarshalYAML() (interface{}, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}
	return v.String(), nil
}

// UnmarshalYAML implements yaml.Unmarshaler for Version.
//
// The YAML value is expected to be a scalar; it is parsed leniently via
// ParseVersion, so both `1.2` (a YAML float) and `"v1.2.3"` are accepted.
func (v *Version) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return &moderrors.UnmarshalError{
			Type:   "Version",
			Data:   []byte(value.Value),
			Reason: err.Error(),
		}
	}

	parsed, err := ParseVersion(s)
	if err != nil {
		return err
	}

	*v = parsed
	return nil
}
