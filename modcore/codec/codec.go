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

// Package codec turns ModInfo.xml markup into the canonical model and back.
//
// Every conversion goes through modinfo.Modinfo: markup is sniffed, read
// into the matching generation's Descriptor, and lifted with ToCanonical.
// Output is produced by projecting the model with the target generation's
// FromCanonical and serializing the result. There is no direct v1 to v2
// path, so adding a generation means adding one variant package, not a
// conversion per pair.
//
// All functions are pure and safe for concurrent use.
package codec

import (
	"dirpx.dev/modinfo/modcore/model/modinfo"
	"dirpx.dev/modinfo/modcore/schema"
	v1 "dirpx.dev/modinfo/modcore/schema/v1"
	v2 "dirpx.dev/modinfo/modcore/schema/v2"
)

// Parse reads markup of either generation into a canonical Modinfo.
//
// Errors are *errors.FormatError when the generation cannot be determined,
// *errors.MalformedError when markup violates its generation's grammar, and
// *errors.ValidationError when the document lifts to a model that breaks an
// invariant. A model is returned only when err is nil.
func Parse(markup string) (modinfo.Modinfo, error) {
	m, _, err := Decode(markup)
	return m, err
}

// Decode is Parse that also reports the generation markup was written in.
//
// The generation is returned even when lifting fails, so callers MAY report
// which grammar a broken document claimed. It is GenerationUnknown only for
// a *errors.FormatError. modfile.Load uses Decode to remember the
// generation a file must be saved back in.
func Decode(markup string) (modinfo.Modinfo, schema.Generation, error) {
	g, err := Sniff(markup)
	if err != nil {
		return modinfo.Modinfo{}, schema.GenerationUnknown, err
	}
	m, err := ParseAs(g, markup)
	if err != nil {
		return modinfo.Modinfo{}, g, err
	}
	return m, g, nil
}

// ParseAs skips sniffing and reads markup as generation g. A document of the
// other generation is reported as malformed. An invalid g yields the
// *errors.ValidationError from Generation.Validate.
func ParseAs(g schema.Generation, markup string) (modinfo.Modinfo, error) {
	switch g {
	case schema.V1:
		d, err := v1.Deserialize(markup)
		if err != nil {
			return modinfo.Modinfo{}, err
		}
		return v1.ToCanonical(d)
	case schema.V2:
		d, err := v2.Deserialize(markup)
		if err != nil {
			return modinfo.Modinfo{}, err
		}
		return v2.ToCanonical(d)
	default:
		return modinfo.Modinfo{}, g.Validate()
	}
}

// Marshal renders m as markup of generation target.
//
// The projection is total: fields target cannot represent are dropped
// (see Lost) and v2-only structure is filled with defaults. m is not
// validated. The only error is a *errors.ValidationError for a target that
// is not V1 or V2.
func Marshal(m modinfo.Modinfo, target schema.Generation) (string, error) {
	switch target {
	case schema.V1:
		return v1.Serialize(v1.FromCanonical(m)), nil
	case schema.V2:
		return v2.Serialize(v2.FromCanonical(m)), nil
	default:
		return "", target.Validate()
	}
}

// Lost lists the populated fields of m that Marshal(m, target) discards.
// Only a downgrade to v1 loses information. Callers SHOULD warn when the
// result is non-empty; Marshal itself never does.
func Lost(m modinfo.Modinfo, target schema.Generation) []modinfo.Field {
	if target == schema.V1 {
		return v1.Dropped(m)
	}
	return nil
}

// Convert parses markup of either generation and re-emits it as target.
// Converting to the generation markup is already in normalizes it (field
// order, version text, indentation).
//
// target is checked before markup is read, so a bad target never masks a
// parse error or the reverse. Fields target cannot hold are dropped as in
// Marshal.
func Convert(markup string, target schema.Generation) (string, error) {
	if err := target.Validate(); err != nil {
		return "", err
	}
	m, err := Parse(markup)
	if err != nil {
		return "", err
	}
	return Marshal(m, target)
}
