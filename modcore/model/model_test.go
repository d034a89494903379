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

package model_test

import (
	"errors"
	"strings"
	"testing"

	moderrors "dirpx.dev/modinfo/modcore/errors"
	"dirpx.dev/modinfo/modcore/model"
	"dirpx.dev/modinfo/modcore/model/modinfo"
	"dirpx.dev/modinfo/modcore/model/semver"
)

func sample() *modinfo.Modinfo {
	return &modinfo.Modinfo{
		Name:         "SomeInternalName",
		DisplayName:  "Official Mod Name",
		Version:      semver.Version{Major: 2, Minor: 3, Patch: 4},
		Author:       "Jane Doe",
		Website:      "https://example.com/mods/some",
		Dependencies: []modinfo.Dependency{{ID: "Base", Required: true}, {ID: "Extras"}},
	}
}

func TestValidateAll(t *testing.T) {
	tests := []struct {
		name      string
		deps      []*modinfo.Dependency
		wantErr   bool
		wantIndex []string
	}{
		{
			name: "empty slice",
		},
		{
			name: "all valid",
			deps: []*modinfo.Dependency{{ID: "Base"}, {ID: "Extras", Required: true}},
		},
		{
			name:      "one invalid",
			deps:      []*modinfo.Dependency{{ID: "Base"}, {ID: "  "}},
			wantErr:   true,
			wantIndex: []string{"model[1]"},
		},
		{
			name:      "every failure reported",
			deps:      []*modinfo.Dependency{{ID: ""}, {ID: "Base"}, {ID: ""}},
			wantErr:   true,
			wantIndex: []string{"model[0]", "model[2]"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.ValidateAll(tt.deps)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAll() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			for _, idx := range tt.wantIndex {
				if !strings.Contains(err.Error(), idx) {
					t.Errorf("ValidateAll() error %q does not mention %s", err, idx)
				}
			}
			var ve *moderrors.ValidationError
			if !errors.As(err, &ve) || ve.Type != "Dependency" {
				t.Errorf("ValidateAll() error = %v, want a Dependency ValidationError", err)
			}
		})
	}
}

func TestValidateAll_ValueSlice(t *testing.T) {
	m := sample()
	if err := model.ValidateAll(m.Dependencies); err != nil {
		t.Fatalf("ValidateAll() error = %v", err)
	}

	m.Dependencies = append(m.Dependencies, modinfo.Dependency{ID: "Bad\x01"})
	err := model.ValidateAll(m.Dependencies)
	if !errors.Is(err, moderrors.ErrInvalid) || !strings.Contains(err.Error(), "model[2] (Dependency)") {
		t.Errorf("ValidateAll() error = %v, want ErrInvalid for model[2]", err)
	}
}

func TestSafeString(t *testing.T) {
	m := sample()

	if got := model.SafeString(m, true); !strings.Contains(got, "Jane Doe") {
		t.Errorf("SafeString(unsafe) = %q, want full author", got)
	}

	got := model.SafeString(m, false)
	if strings.Contains(got, "Jane Doe") || strings.Contains(got, "/mods/some") {
		t.Errorf("SafeString(safe) = %q leaks author or website path", got)
	}
	if !strings.Contains(got, "J***") || !strings.Contains(got, "https://example.com/***") {
		t.Errorf("SafeString(safe) = %q, want masked author and website", got)
	}
}

func TestJSON_RoundTrip(t *testing.T) {
	original := sample()

	data, err := model.ToJSON(original)
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	var decoded modinfo.Modinfo
	if err := model.FromJSON(data, &decoded); err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if !original.Equal(decoded) {
		t.Errorf("JSON round trip = %v, want %v", decoded, *original)
	}
}

func TestYAML_RoundTrip(t *testing.T) {
	original := sample()

	data, err := model.ToYAML(original)
	if err != nil {
		t.Fatalf("ToYAML() error = %v", err)
	}
	if !strings.Contains(string(data), "display_name: Official Mod Name") {
		t.Errorf("ToYAML() output missing display_name:\n%s", data)
	}

	var decoded modinfo.Modinfo
	if err := model.FromYAML(data, &decoded); err != nil {
		t.Fatalf("FromYAML() error = %v", err)
	}
	if !original.Equal(decoded) {
		t.Errorf("YAML round trip = %v, want %v", decoded, *original)
	}
}

func TestMarshal_FailsOnInvalid(t *testing.T) {
	invalid := &modinfo.Modinfo{Version: modinfo.DefaultVersion}

	if _, err := model.ToJSON(invalid); err == nil {
		t.Error("ToJSON() should fail on a model without a name")
	}
	if _, err := model.ToYAML(invalid); err == nil {
		t.Error("ToYAML() should fail on a model without a name")
	}
}

func TestUnmarshal_FailsOnInvalid(t *testing.T) {
	tests := []struct {
		name   string
		decode func() error
	}{
		{"json missing name", func() error {
			var m modinfo.Modinfo
			return model.FromJSON([]byte(`{"version":"1.0.0"}`), &m)
		}},
		{"json bad version", func() error {
			var m modinfo.Modinfo
			return model.FromJSON([]byte(`{"name":"A","version":"banana"}`), &m)
		}},
		{"yaml missing name", func() error {
			var m modinfo.Modinfo
			return model.FromYAML([]byte("version: 1.0.0\n"), &m)
		}},
		{"yaml blank dependency", func() error {
			var m modinfo.Modinfo
			return model.FromYAML([]byte("name: A\nversion: 1.0.0\ndependencies:\n  - id: \"\"\n"), &m)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.decode(); err == nil {
				t.Error("decode succeeded, want validation failure")
			}
		})
	}
}

func TestTypeName(t *testing.T) {
	tests := []struct {
		m    model.Model
		want string
	}{
		{sample(), "Modinfo"},
		{&modinfo.Dependency{ID: "Base"}, "Dependency"},
	}

	for _, tt := range tests {
		if got := tt.m.TypeName(); got != tt.want {
			t.Errorf("TypeName() = %q, want %q", got, tt.want)
		}
	}
}
