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

package semver_test

import (
	"encoding/json"
	"errors"
	"testing"

	moderrors "dirpx.dev/modinfo/modcore/errors"
	"dirpx.dev/modinfo/modcore/model/semver"
	"gopkg.in/yaml.v3"
)

func TestVersion_String(t *testing.T) {
	tests := []struct {
		name    string
		version semver.Version
		want    string
	}{
		{
			name:    "simple_version",
			version: semver.Version{Major: 1, Minor: 2, Patch: 3},
			want:    "1.2.3",
		},
		{
			name:    "with_prerelease",
			version: semver.Version{Major: 1, Minor: 0, Patch: 0, Prerelease: "alpha.1"},
			want:    "1.0.0-alpha.1",
		},
		{
			name:    "with_metadata",
			version: semver.Version{Major: 2, Minor: 0, Patch: 0, Metadata: "build.123"},
			want:    "2.0.0+build.123",
		},
		{
			name:    "with_prerelease_and_metadata",
			version: semver.Version{Major: 1, Minor: 0, Patch: 0, Prerelease: "rc.1", Metadata: "exp.sha.5114f85"},
			want:    "1.0.0-rc.1+exp.sha.5114f85",
		},
		{
			name:    "zero_version",
			version: semver.Version{},
			want:    "0.0.0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.version.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    semver.Version
		wantErr bool
	}{
		{name: "strict", input: "1.2.3", want: semver.Version{Major: 1, Minor: 2, Patch: 3}},
		{name: "major_only", input: "1", want: semver.Version{Major: 1}},
		{name: "major_minor", input: "1.2", want: semver.Version{Major: 1, Minor: 2}},
		{name: "v_prefix", input: "v1.2.3", want: semver.Version{Major: 1, Minor: 2, Patch: 3}},
		{name: "upper_v_prefix", input: "V2.0", want: semver.Version{Major: 2}},
		{name: "equals_prefix", input: "=3.1.4", want: semver.Version{Major: 3, Minor: 1, Patch: 4}},
		{name: "surrounding_whitespace", input: "  1.2.3\n", want: semver.Version{Major: 1, Minor: 2, Patch: 3}},
		{name: "underscore_separator", input: "1_2_3", want: semver.Version{Major: 1, Minor: 2, Patch: 3}},
		{name: "comma_separator", input: "1,4", want: semver.Version{Major: 1, Minor: 4}},
		{name: "leading_zeros", input: "1.02.003", want: semver.Version{Major: 1, Minor: 2, Patch: 3}},
		{name: "fourth_component", input: "21.2.0.1", want: semver.Version{Major: 21, Minor: 2, Metadata: "1"}},
		{name: "fourth_component_with_build", input: "1.2.3.4+b7", want: semver.Version{Major: 1, Minor: 2, Patch: 3, Metadata: "4.b7"}},
		{name: "prerelease", input: "1.0.0-alpha.1", want: semver.Version{Major: 1, Prerelease: "alpha.1"}},
		{name: "glued_prerelease", input: "1.2.3beta", want: semver.Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "beta"}},
		{name: "dotted_prerelease", input: "1.2.beta", want: semver.Version{Major: 1, Minor: 2, Prerelease: "beta"}},
		{name: "spaced_prerelease", input: "1.0 RC2", want: semver.Version{Major: 1, Prerelease: "RC2"}},
		{name: "prerelease_leading_zero", input: "1.0.0-rc.01", want: semver.Version{Major: 1, Prerelease: "rc.1"}},
		{name: "prerelease_bad_chars", input: "1.0.0-beta 2", want: semver.Version{Major: 1, Prerelease: "beta-2"}},
		{name: "full", input: "v2.0.0-rc.1+build.123", want: semver.Version{Major: 2, Prerelease: "rc.1", Metadata: "build.123"}},
		{name: "game_style", input: "A20", want: semver.Version{Major: 20}},
		{name: "empty", input: "", wantErr: true},
		{name: "blank", input: "   ", wantErr: true},
		{name: "no_digits", input: "latest", wantErr: true},
		{name: "prefix_only", input: "v", wantErr: true},
		{name: "two_letter_prefix", input: "ver1.0", wantErr: true},
		{name: "overflow", input: "99999999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := semver.ParseVersion(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVersion(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if tt.wantErr {
				var ve *moderrors.VersionError
				if !errors.As(err, &ve) {
					t.Fatalf("ParseVersion(%q) error type = %T, want *errors.VersionError", tt.input, err)
				}
				if ve.Value != tt.input {
					t.Errorf("VersionError.Value = %q, want %q", ve.Value, tt.input)
				}
				if moderrors.KindOf(err) != moderrors.KindInvalidVersion {
					t.Errorf("KindOf() = %v, want invalid-version", moderrors.KindOf(err))
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseVersion(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

// Lenient inputs normalize so that "1" < "1.2" < "1.2.3" == "v1.2.3".
func TestParseVersion_LenientOrdering(t *testing.T) {
	one := semver.MustParseVersion("1")
	oneTwo := semver.MustParseVersion("1.2")
	oneTwoThree := semver.MustParseVersion("1.2.3")
	prefixed := semver.MustParseVersion("v1.2.3")

	if one.String() != "1.0.0" {
		t.Errorf(`"1" normalizes to %q, want "1.0.0"`, one.String())
	}
	if !one.Less(oneTwo) {
		t.Errorf("%s should be < %s", one, oneTwo)
	}
	if !oneTwo.Less(oneTwoThree) {
		t.Errorf("%s should be < %s", oneTwo, oneTwoThree)
	}
	if oneTwoThree.Compare(prefixed) != 0 || !oneTwoThree.Equal(prefixed) {
		t.Errorf("%s should equal %s", oneTwoThree, prefixed)
	}
}

func TestVersion_Validate(t *testing.T) {
	tests := []struct {
		name    string
		version semver.Version
		wantErr bool
	}{
		{"valid_simple", semver.Version{Major: 1, Minor: 2, Patch: 3}, false},
		{"valid_with_prerelease", semver.Version{Major: 1, Prerelease: "alpha.1"}, false},
		{"valid_with_metadata", semver.Version{Major: 1, Metadata: "build.007"}, false},
		{"valid_zero", semver.Version{}, false},
		{"invalid_negative_major", semver.Version{Major: -1}, true},
		{"invalid_negative_minor", semver.Version{Major: 1, Minor: -1}, true},
		{"invalid_negative_patch", semver.Version{Major: 1, Patch: -1}, true},
		{"invalid_prerelease_chars", semver.Version{Major: 1, Prerelease: "alpha_1"}, true},
		{"invalid_prerelease_leading_zero", semver.Version{Major: 1, Prerelease: "01"}, true},
		{"invalid_empty_metadata_identifier", semver.Version{Major: 1, Metadata: "a..b"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.version.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestVersion_IsZero(t *testing.T) {
	tests := []struct {
		name    string
		version semver.Version
		want    bool
	}{
		{"zero", semver.Version{}, true},
		{"patch", semver.Version{Patch: 1}, false},
		{"prerelease_only", semver.Version{Prerelease: "alpha"}, false},
		{"metadata_only", semver.Version{Metadata: "build"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.version.IsZero(); got != tt.want {
				t.Errorf("IsZero() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestVersion_Compare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"equal", "1.2.3", "1.2.3", 0},
		{"major", "2.0.0", "1.9.9", 1},
		{"minor", "1.1.0", "1.2.0", -1},
		{"patch", "1.2.4", "1.2.3", 1},
		{"prerelease_below_release", "1.0.0-alpha", "1.0.0", -1},
		{"prerelease_ordering", "1.0.0-alpha", "1.0.0-alpha.1", -1},
		{"prerelease_numeric_vs_alpha", "1.0.0-1", "1.0.0-alpha", -1},
		{"alpha_vs_beta", "1.0.0-beta", "1.0.0-alpha.beta", 1},
		{"metadata_ignored", "1.0.0+build1", "1.0.0+build2", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := semver.MustParseVersion(tt.a)
			b := semver.MustParseVersion(tt.b)
			if got := a.Compare(b); got != tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", a, b, got, tt.want)
			}
			if got := b.Compare(a); got != -tt.want {
				t.Errorf("Compare(%s, %s) = %d, want %d", b, a, got, -tt.want)
			}
		})
	}
}

func TestVersion_Equal_IsStructural(t *testing.T) {
	a := semver.Version{Major: 1, Metadata: "build1"}
	b := semver.Version{Major: 1, Metadata: "build2"}

	if a.Equal(b) {
		t.Error("Equal() must include metadata")
	}
	if a.Compare(b) != 0 {
		t.Error("Compare() must ignore metadata")
	}
	if a.Less(b) || a.Greater(b) {
		t.Error("Less/Greater must ignore metadata")
	}
}

func TestVersion_WithPrereleaseAndMetadata(t *testing.T) {
	v := semver.Version{Major: 1, Minor: 2, Patch: 3}

	pre, err := v.WithPrerelease("foo")
	if err != nil {
		t.Fatalf("WithPrerelease() error = %v", err)
	}
	if pre.String() != "1.2.3-foo" {
		t.Errorf("WithPrerelease() = %s, want 1.2.3-foo", pre)
	}

	built, err := pre.WithMetadata("bar")
	if err != nil {
		t.Fatalf("WithMetadata() error = %v", err)
	}
	if built.String() != "1.2.3-foo+bar" {
		t.Errorf("WithMetadata() = %s, want 1.2.3-foo+bar", built)
	}

	if got := built.Release(); got != v {
		t.Errorf("Release() = %s, want %s", got, v)
	}

	unchanged, err := v.WithPrerelease("bad value")
	if err == nil {
		t.Fatal("WithPrerelease() with invalid identifier should fail")
	}
	if unchanged != v {
		t.Errorf("WithPrerelease() on error = %s, want receiver %s", unchanged, v)
	}
}

func TestVersion_JSON(t *testing.T) {
	v := semver.Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc.1"}

	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if string(data) != `"1.2.3-rc.1"` {
		t.Errorf("json.Marshal() = %s, want %q", data, "1.2.3-rc.1")
	}

	var decoded semver.Version
	if err := json.Unmarshal([]byte(`"v1.2"`), &decoded); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if decoded != (semver.Version{Major: 1, Minor: 2}) {
		t.Errorf("json.Unmarshal() = %+v, want 1.2.0", decoded)
	}

	if err := json.Unmarshal([]byte(`12`), &decoded); err == nil {
		t.Error("json.Unmarshal() of a number should fail")
	}
	if err := json.Unmarshal([]byte(`"nope"`), &decoded); err == nil {
		t.Error("json.Unmarshal() of a non-version string should fail")
	}

	if _, err := json.Marshal(semver.Version{Major: -1}); err == nil {
		t.Error("json.Marshal() of an invalid version should fail")
	}
}

func TestVersion_YAML(t *testing.T) {
	v := semver.Version{Major: 2, Minor: 3, Patch: 4, Metadata: "b1"}

	data, err := yaml.Marshal(v)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}
	if string(data) != "2.3.4+b1\n" {
		t.Errorf("yaml.Marshal() = %q, want %q", data, "2.3.4+b1\n")
	}

	var decoded semver.Version
	if err := yaml.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if decoded != v {
		t.Errorf("yaml round trip = %+v, want %+v", decoded, v)
	}

	if err := yaml.Unmarshal([]byte("version-less"), &decoded); err == nil {
		t.Error("yaml.Unmarshal() of a non-version string should fail")
	}
}

func TestVersion_Text(t *testing.T) {
	var v semver.Version
	if err := v.UnmarshalText([]byte("v3")); err != nil {
		t.Fatalf("UnmarshalText() error = %v", err)
	}
	text, err := v.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(text) != "3.0.0" {
		t.Errorf("MarshalText() = %q, want %q", text, "3.0.0")
	}
}
