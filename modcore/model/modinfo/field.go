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

package modinfo

import (
	"strings"

	"dirpx.dev/modinfo/modcore/errors"
)

// Field is a canonical, generation-independent descriptor field key.
//
// Field values are the keys of the static spelling table in package schema:
// every generation maps each Field it supports to exactly one tag spelling.
//
// The numeric values are an implementation detail and MUST NOT be persisted;
// use String and ParseField to store or exchange a Field. The zero value is
// FieldUnknown, which is never valid.
type Field int

const (
	// FieldUnknown is the zero value. It is returned by failed lookups and
	// never names a real field.
	FieldUnknown Field = iota

	// FieldName is the internal mod identifier. Both generations require it.
	FieldName

	// FieldDisplayName is the human-facing title. v2 only.
	FieldDisplayName

	// FieldVersion is the mod version. Both generations require it.
	FieldVersion

	// FieldDescription is the free-form description. v1 requires the
	// element; v2 treats it as optional.
	FieldDescription

	// FieldAuthor is the author credit. v1 requires the element; v2 treats
	// it as optional.
	FieldAuthor

	// FieldWebsite is the project URL. v2 only.
	FieldWebsite

	// FieldCompat is the game-build compatibility tag, carried as the compat
	// attribute of the Version element in both generations.
	FieldCompat

	// FieldDependencies is the list of declared dependencies. It is the only
	// field that is not a single text value (see Scalar).
	FieldDependencies
)

// Canonical key strings. These are the stable names accepted by ParseField,
// Modinfo.Value and Modinfo.Set, and printed by the CLI.
const (
	FieldNameKey         = "name"
	FieldDisplayNameKey  = "display_name"
	FieldVersionKey      = "version"
	FieldDescriptionKey  = "description"
	FieldAuthorKey       = "author"
	FieldWebsiteKey      = "website"
	FieldCompatKey       = "compat"
	FieldDependenciesKey = "dependencies"
)

// fieldKeys is indexed by Field. Its length MUST track the constant block
// above; String relies on Valid to stay in range.
var fieldKeys = [...]string{
	FieldUnknown:      "unknown",
	FieldName:         FieldNameKey,
	FieldDisplayName:  FieldDisplayNameKey,
	FieldVersion:      FieldVersionKey,
	FieldDescription:  FieldDescriptionKey,
	FieldAuthor:       FieldAuthorKey,
	FieldWebsite:      FieldWebsiteKey,
	FieldCompat:       FieldCompatKey,
	FieldDependencies: FieldDependenciesKey,
}

// Fields returns every known field in emission order.
//
// The element order of each generation lives in the schema field-case
// table, not here. A fresh slice is returned on every call, so callers MAY
// modify it.
func Fields() []Field {
	return []Field{
		FieldName,
		FieldDisplayName,
		FieldVersion,
		FieldDescription,
		FieldAuthor,
		FieldWebsite,
		FieldCompat,
		FieldDependencies,
	}
}

// ParseField resolves a canonical key. Matching is case-insensitive and
// treats "-" like "_", so "Display-Name" resolves to FieldDisplayName.
// Surrounding whitespace is ignored.
//
// Element spellings such as "DisplayName" are not keys; resolve those with
// schema.FieldOf. Unknown input returns FieldUnknown and a
// *errors.ParseError.
func ParseField(s string) (Field, error) {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")
	for _, f := range Fields() {
		if fieldKeys[f] == key {
			return f, nil
		}
	}
	return FieldUnknown, &errors.ParseError{Type: "Field", Value: s}
}

// String returns the canonical key, or "unknown" for FieldUnknown and any
// out-of-range value. The result round-trips through ParseField for every
// valid field.
func (f Field) String() string {
	if f.Valid() {
		return fieldKeys[f]
	}
	return fieldKeys[FieldUnknown]
}

// Valid reports whether f is a known field. FieldUnknown is not valid.
func (f Field) Valid() bool {
	return f > FieldUnknown && f <= FieldDependencies
}

// Scalar reports whether the field holds a single text value (every field
// except FieldDependencies). Only scalar fields are accepted by
// Modinfo.Value and Modinfo.SetValue.
func (f Field) Scalar() bool {
	return f.Valid() && f != FieldDependencies
}
