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

package modinfo_test

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	moderrors "dirpx.dev/modinfo/modcore/errors"
	"dirpx.dev/modinfo/modcore/model/change"
	"dirpx.dev/modinfo/modcore/model/modinfo"
	"dirpx.dev/modinfo/modcore/model/semver"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func sample() modinfo.Modinfo {
	return modinfo.Modinfo{
		Name:        "SomeInternalName",
		DisplayName: "Official Mod Name",
		Version:     semver.Version{Major: 2, Minor: 3, Patch: 4},
		Description: "Mod to show format of ModInfo v2",
		Author:      "Name",
		Website:     "https://example.org/mods",
		Compat:      "A99",
		Dependencies: []modinfo.Dependency{
			{ID: "OtherMod", Required: true},
			{ID: "OptionalMod"},
		},
	}
}

func TestNew(t *testing.T) {
	m := modinfo.New()
	if !m.Version.Equal(modinfo.DefaultVersion) {
		t.Errorf("New().Version = %s, want %s", m.Version, modinfo.DefaultVersion)
	}
	if m.Name != "" || len(m.Dependencies) != 0 {
		t.Errorf("New() = %v, want empty fields", m)
	}
	if err := m.Validate(); err == nil {
		t.Error("New().Validate() = nil, want error for empty Name")
	}
}

func TestModinfo_Validate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*modinfo.Modinfo)
		wantFields []string
	}{
		{"valid", func(*modinfo.Modinfo) {}, nil},
		{"empty name", func(m *modinfo.Modinfo) { m.Name = "" }, []string{"Name"}},
		{"blank name", func(m *modinfo.Modinfo) { m.Name = " \t " }, []string{"Name"}},
		{"negative version", func(m *modinfo.Modinfo) { m.Version.Major = -1 }, []string{"Version"}},
		{"bad website", func(m *modinfo.Modinfo) { m.Website = "http://[::1" }, []string{"Website"}},
		{"relative website allowed", func(m *modinfo.Modinfo) { m.Website = "HP" }, nil},
		{"blank dependency", func(m *modinfo.Modinfo) { m.Dependencies[1].ID = " " }, []string{"Dependencies"}},
		{
			"several violations",
			func(m *modinfo.Modinfo) {
				m.Name = ""
				m.Dependencies[0].ID = ""
			},
			[]string{"Name", "Dependencies"},
		},
		{"control character in name", func(m *modinfo.Modinfo) { m.Name = "Mod\x00" }, []string{"Name"}},
		{"control character in display name", func(m *modinfo.Modinfo) { m.DisplayName = "a\x1bb" }, []string{"DisplayName"}},
		{"control character in description", func(m *modinfo.Modinfo) { m.Description = "ctl\x01x" }, []string{"Description"}},
		{"control character in author", func(m *modinfo.Modinfo) { m.Author = "\x7fok\x08" }, []string{"Author"}},
		{"control character in website", func(m *modinfo.Modinfo) { m.Website = "https://x/\x02" }, []string{"Website"}},
		{"noncharacter in compat", func(m *modinfo.Modinfo) { m.Compat = "A21\uFFFE" }, []string{"Compat"}},
		{"invalid UTF-8 in description", func(m *modinfo.Modinfo) { m.Description = "bad \xff byte" }, []string{"Description"}},
		{"control character in dependency", func(m *modinfo.Modinfo) { m.Dependencies[0].ID = "Other\x03" }, []string{"Dependencies"}},
		{"tab newline and unicode allowed", func(m *modinfo.Modinfo) { m.Description = "line\tone\nline two \u00e9 \U0001F600 \uFFFD" }, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := sample()
			tt.mutate(&m)

			err := m.Validate()
			if len(tt.wantFields) == 0 {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want violations on %v", tt.wantFields)
			}
			if !errors.Is(err, moderrors.ErrInvalid) {
				t.Errorf("errors.Is(err, ErrInvalid) = false for %v", err)
			}
			if got := moderrors.KindOf(err); got != moderrors.KindInvalid {
				t.Errorf("KindOf() = %v, want %v", got, moderrors.KindInvalid)
			}
			var ve *moderrors.ValidationError
			if !errors.As(err, &ve) || ve.Field != tt.wantFields[0] {
				t.Errorf("first ValidationError field = %v, want %s", ve, tt.wantFields[0])
			}
			for _, f := range tt.wantFields {
				if !strings.Contains(err.Error(), "Modinfo."+f) {
					t.Errorf("Validate() = %q, want mention of %s", err, f)
				}
			}
			if ve != nil && ve.Field == "Dependencies" {
				var dep *moderrors.ValidationError
				if !errors.As(errors.Unwrap(ve), &dep) || dep.Type != "Dependency" || dep.Field != "ID" {
					t.Errorf("Dependencies violation does not wrap the entry error: %v", ve)
				}
			}
		})
	}
}

func TestModinfo_Title(t *testing.T) {
	tests := []struct {
		name        string
		modName     string
		displayName string
		want        string
	}{
		{"display name wins", "SomeInternalName", "Official Mod Name", "Official Mod Name"},
		{"camel case", "SomeInternalName", "", "Some Internal Name"},
		{"blank display name", "SomeInternalName", "  ", "Some Internal Name"},
		{"snake case", "some_internal_name", "", "Some Internal Name"},
		{"kebab case", "some-mod", "", "Some Mod"},
		{"acronym run", "HTTPServerMod", "", "Http Server Mod"},
		{"dotted", "some.mod", "", "Some Mod"},
		{"surrounding space", "  spaced_out  ", "", "Spaced Out"},
		{"single word", "mod", "", "Mod"},
		{"empty", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := modinfo.Modinfo{Name: tt.modName, DisplayName: tt.displayName}
			if got := m.Title(); got != tt.want {
				t.Errorf("Title() = %q, want %q", got, tt.want)
			}
			if m.DisplayName != tt.displayName {
				t.Error("Title() must not store the derived value")
			}
		})
	}
}

func TestModinfo_Get(t *testing.T) {
	m := sample()

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"name", "SomeInternalName", true},
		{"display_name", "Official Mod Name", true},
		{"Display-Name", "Official Mod Name", true},
		{"author", "Name", true},
		{"compat", "A99", true},
		{"description", "Mod to show format of ModInfo v2", true},
		{"website", "https://example.org/mods", true},
		{"VERSION", "2.3.4", true},
		{"dependencies", "", false},
		{"foo", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := m.Get(tt.key)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Get(%q) = (%q, %t), want (%q, %t)", tt.key, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestModinfo_Set(t *testing.T) {
	m := sample()

	if err := m.Set("Author", "Someone Else"); err != nil {
		t.Fatalf("Set(author) error = %v", err)
	}
	if m.Author != "Someone Else" {
		t.Errorf("Author = %q after Set", m.Author)
	}

	if err := m.Set("version", "v1.2"); err != nil {
		t.Fatalf("Set(version) error = %v", err)
	}
	if got := m.Version.String(); got != "1.2.0" {
		t.Errorf("Version = %s after lenient Set, want 1.2.0", got)
	}

	before := m.Version
	err := m.Set("version", "not a version")
	if !errors.Is(err, moderrors.ErrInvalidVersion) {
		t.Errorf("Set(version, junk) error = %v, want ErrInvalidVersion", err)
	}
	if !m.Version.Equal(before) {
		t.Error("failed Set must leave Version unchanged")
	}

	var pe *moderrors.ParseError
	if err := m.Set("unknown", "x"); !errors.As(err, &pe) {
		t.Errorf("Set(unknown) error = %v, want *ParseError", err)
	}
	if err := m.SetValue(modinfo.FieldDependencies, "x"); !errors.As(err, &pe) {
		t.Errorf("SetValue(dependencies) error = %v, want *ParseError", err)
	}
}

func TestModinfo_VersionTools(t *testing.T) {
	m := sample()
	if err := m.SetPrerelease("beta.1"); err != nil {
		t.Fatalf("SetPrerelease() error = %v", err)
	}
	if err := m.SetMetadata("build.7"); err != nil {
		t.Fatalf("SetMetadata() error = %v", err)
	}
	if got := m.Version.String(); got != "2.3.4-beta.1+build.7" {
		t.Errorf("Version = %s", got)
	}

	if err := m.SetPrerelease("bad..id"); err == nil {
		t.Error("SetPrerelease() with empty identifier should fail")
	}

	m.BumpVersion(change.BumpMinor)
	if got := m.Version.String(); got != "2.4.0" {
		t.Errorf("BumpVersion(minor) = %s, want 2.4.0", got)
	}
	m.BumpVersion(change.BumpMajor)
	if got := m.Version.String(); got != "3.0.0" {
		t.Errorf("BumpVersion(major) = %s, want 3.0.0", got)
	}
}

func TestModinfo_Dependencies(t *testing.T) {
	m := modinfo.Modinfo{Name: "A", Version: modinfo.DefaultVersion}

	if err := m.AddDependency("B", true); err != nil {
		t.Fatalf("AddDependency() error = %v", err)
	}
	if err := m.AddDependency("B", false); err != nil {
		t.Fatalf("AddDependency() duplicate error = %v", err)
	}
	if err := m.AddDependency("  ", false); err == nil {
		t.Error("AddDependency() with blank id should fail")
	}
	if len(m.Dependencies) != 2 {
		t.Fatalf("len(Dependencies) = %d, want 2 (duplicates kept)", len(m.Dependencies))
	}
	if !m.DependsOn("B") || m.DependsOn("C") {
		t.Error("DependsOn() mismatch")
	}
	if !m.RemoveDependency("B") || len(m.Dependencies) != 0 {
		t.Errorf("RemoveDependency() left %v", m.Dependencies)
	}
	if m.RemoveDependency("B") {
		t.Error("RemoveDependency() of missing id reported true")
	}
}

func TestModinfo_CloneEqual(t *testing.T) {
	m := sample()
	c := m.Clone()

	if diff := cmp.Diff(m, c); diff != "" {
		t.Errorf("Clone() mismatch (-want +got):\n%s", diff)
	}

	c.Dependencies[0].ID = "Changed"
	if m.Dependencies[0].ID != "OtherMod" {
		t.Error("Clone() shares the Dependencies backing array")
	}
	if m.Equal(c) {
		t.Error("Equal() = true after mutating the clone")
	}

	a := modinfo.Modinfo{Name: "A"}
	b := modinfo.Modinfo{Name: "A", Dependencies: []modinfo.Dependency{}}
	if !a.Equal(b) {
		t.Error("nil and empty Dependencies must compare equal")
	}
}

func TestModinfo_StringRedacted(t *testing.T) {
	m := sample()

	s := m.String()
	if !strings.Contains(s, "Author:Name") || !strings.Contains(s, "Dependencies:2") {
		t.Errorf("String() = %q", s)
	}

	r := m.Redacted()
	if strings.Contains(r, "Author:Name") {
		t.Errorf("Redacted() leaks author: %q", r)
	}
	if strings.Contains(r, "/mods") || !strings.Contains(r, "https://example.org/***") {
		t.Errorf("Redacted() website = %q", r)
	}
	if m.TypeName() != "Modinfo" {
		t.Errorf("TypeName() = %q", m.TypeName())
	}
	if m.IsZero() || !(modinfo.Modinfo{}).IsZero() {
		t.Error("IsZero() mismatch")
	}
}

func TestModinfo_JSON(t *testing.T) {
	m := sample()

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if !strings.Contains(string(data), `"version":"2.3.4"`) {
		t.Errorf("json.Marshal() = %s, want version as string", data)
	}

	var got modinfo.Modinfo
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(m, got); diff != "" {
		t.Errorf("JSON round trip mismatch (-want +got):\n%s", diff)
	}

	if _, err := json.Marshal(modinfo.Modinfo{}); err == nil {
		t.Error("json.Marshal() of invalid Modinfo should fail")
	}
	if err := json.Unmarshal([]byte(`{"name":"","version":"1.0.0"}`), &got); err == nil {
		t.Error("json.Unmarshal() of invalid Modinfo should fail")
	}
}

func TestModinfo_YAML(t *testing.T) {
	m := sample()

	data, err := yaml.Marshal(m)
	if err != nil {
		t.Fatalf("yaml.Marshal() error = %v", err)
	}

	var got modinfo.Modinfo
	if err := yaml.Unmarshal(data, &got); err != nil {
		t.Fatalf("yaml.Unmarshal() error = %v", err)
	}
	if diff := cmp.Diff(m, got); diff != "" {
		t.Errorf("YAML round trip mismatch (-want +got):\n%s", diff)
	}

	if err := yaml.Unmarshal([]byte("name: X\nversion: 1.0.0\ndependencies:\n  - id: \"\"\n"), &got); err == nil {
		t.Error("yaml.Unmarshal() with blank dependency should fail")
	}
}
