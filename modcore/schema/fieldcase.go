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
	"strings"

	"dirpx.dev/modinfo/modcore/model/modinfo"
)

// Structural tag and attribute spellings shared by both generations.
const (
	// RootV1 is the root element of a v1 descriptor. A v1 descriptor may
	// also appear wrapped as <xml><ModInfo>...</ModInfo></xml>.
	RootV1 = "ModInfo"

	// RootV2 is the root element of a v2 descriptor.
	RootV2 = "xml"

	// ElementDependency is the per-entry dependency element in both
	// generations (flat in v1, nested under <Dependencies> in v2).
	ElementDependency = "Dependency"

	// AttrValue carries the text of every field element.
	AttrValue = "value"

	// AttrCompat carries the game-compatibility tag on the Version element.
	AttrCompat = "compat"

	// AttrName carries the dependency ID of a v2 <Dependency>.
	AttrName = "name"

	// AttrRequired carries the boolean required flag of a v2 <Dependency>.
	AttrRequired = "required"
)

// Spelling is the markup location of a canonical field in one generation:
// the element tag, and the attribute holding the text. Attr is empty for
// container elements whose content is a list of child elements.
type Spelling struct {
	// Element is the tag as emitted. Readers MUST compare it with SameTag,
	// since files in the wild vary in case.
	Element string

	// Attr names the attribute holding the field text, or is empty for a
	// container element.
	Attr string
}

// entry is one row of the spelling table.
type entry struct {
	field    modinfo.Field
	spelling Spelling
}

// spellings is the static translation table. Entries are listed in
// emission order; a field absent from a generation's list has no
// representation there.
//
// Each field MUST appear at most once per generation. Compat shares its
// element with Version and is therefore listed right after it, which keeps
// FieldOf from ever resolving the Version tag to FieldCompat.
var spellings = map[Generation][]entry{
	V1: {
		{modinfo.FieldName, Spelling{"Name", AttrValue}},
		{modinfo.FieldVersion, Spelling{"Version", AttrValue}},
		{modinfo.FieldCompat, Spelling{"Version", AttrCompat}},
		{modinfo.FieldDescription, Spelling{"Description", AttrValue}},
		{modinfo.FieldAuthor, Spelling{"Author", AttrValue}},
		{modinfo.FieldDependencies, Spelling{ElementDependency, AttrValue}},
	},
	V2: {
		{modinfo.FieldName, Spelling{"Name", AttrValue}},
		{modinfo.FieldDisplayName, Spelling{"DisplayName", AttrValue}},
		{modinfo.FieldVersion, Spelling{"Version", AttrValue}},
		{modinfo.FieldCompat, Spelling{"Version", AttrCompat}},
		{modinfo.FieldDescription, Spelling{"Description", AttrValue}},
		{modinfo.FieldAuthor, Spelling{"Author", AttrValue}},
		{modinfo.FieldWebsite, Spelling{"Website", AttrValue}},
		{modinfo.FieldDependencies, Spelling{"Dependencies", ""}},
	},
}

// SpellingOf returns where field f lives in generation g. The second result
// is false when g cannot represent f (for example Website in v1).
func SpellingOf(g Generation, f modinfo.Field) (Spelling, bool) {
	for _, e := range spellings[g] {
		if e.field == f {
			return e.spelling, true
		}
	}
	return Spelling{}, false
}

// Supports reports whether generation g has a representation for f. It is
// false for every field when g is not a valid generation.
func Supports(g Generation, f modinfo.Field) bool {
	_, ok := SpellingOf(g, f)
	return ok
}

// FieldsOf returns the fields generation g represents, in emission order.
// Serializers iterate this list so that element order is defined in one
// place. An invalid g yields an empty slice.
func FieldsOf(g Generation) []modinfo.Field {
	out := make([]modinfo.Field, 0, len(spellings[g]))
	for _, e := range spellings[g] {
		out = append(out, e.field)
	}
	return out
}

// FieldOf maps an element tag of generation g back to the canonical field
// whose primary text it carries. An exact match is preferred; otherwise the
// tag is matched case-insensitively. Attribute-only fields (Compat) are never
// returned, since they share their element with another field.
//
// The second result is false for tags g does not know. Callers skip such
// elements.
func FieldOf(g Generation, tag string) (modinfo.Field, bool) {
	for _, e := range spellings[g] {
		if e.spelling.Attr != AttrCompat && e.spelling.Element == tag {
			return e.field, true
		}
	}
	for _, e := range spellings[g] {
		if e.spelling.Attr != AttrCompat && strings.EqualFold(e.spelling.Element, tag) {
			return e.field, true
		}
	}
	return modinfo.FieldUnknown, false
}

// SameTag reports whether two element or attribute names match under the
// case-insensitive rule used throughout descriptor parsing.
func SameTag(a, b string) bool {
	return strings.EqualFold(a, b)
}
