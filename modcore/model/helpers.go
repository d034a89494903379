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

package model

import (
	"encoding/json"
	"fmt"

	"dirpx.dev/rxmerr"
	"gopkg.in/yaml.v3"
)

// ValidateAll validates a slice of models and returns all validation errors
// encountered, rather than stopping at the first one.
//
// Each failure is wrapped with the model's position in the slice and its
// TypeName, then aggregated with rxmerr.Collector into a single error. If
// every model is valid (or the slice is empty), ValidateAll returns nil.
// errors.As still reaches the individual failures through the aggregate.
//
// The element type only needs to be Checked, so value slices such as
// Modinfo.Dependencies can be passed directly:
//
//	if err := model.ValidateAll(m.Dependencies); err != nil {
//	    return err
//	}
func ValidateAll[T Checked](models []T) error {
	c := rxmerr.NewCollector()

	for i, m := range models {
		if err := m.Validate(); err != nil {
			c.Append(fmt.Errorf("model[%d] (%s): %w", i, m.TypeName(), err))
		}
	}

	return c.Err()
}

// SafeString returns m.String() when unsafe is true and m.Redacted()
// otherwise.
//
// Log call sites SHOULD go through SafeString so that the decision to print
// personal data (authors, contact URLs) is made in one place, from
// configuration, and never per call.
func SafeString[T Loggable](m T, unsafe bool) string {
	if unsafe {
		return m.String()
	}
	return m.Redacted()
}

// ToJSON validates m and encodes it as JSON.
func ToJSON[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return json.Marshal(m)
}

// ToYAML validates m and encodes it as YAML.
func ToYAML[T Model](m T) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("cannot marshal invalid %s: %w", m.TypeName(), err)
	}
	return yaml.Marshal(m)
}

// FromJSON decodes data into the value m points to and validates the
// result. PT is inferred from m, so a plain model.FromJSON(data, &v) works.
//
// Fields absent from data keep the value they had in *m, which lets callers
// seed defaults (modinfo.New) before decoding.
func FromJSON[T any, PT interface {
	*T
	Model
}](data []byte, m PT) error {
	if err := json.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal JSON: %w", err)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}

// FromYAML is FromJSON for YAML input.
func FromYAML[T any, PT interface {
	*T
	Model
}](data []byte, m PT) error {
	if err := yaml.Unmarshal(data, m); err != nil {
		return fmt.Errorf("cannot unmarshal YAML: %w", err)
	}
	if err := m.Validate(); err != nil {
		return fmt.Errorf("unmarshaled model is invalid: %w", err)
	}
	return nil
}
