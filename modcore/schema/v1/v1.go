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

// Package v1 mirrors the legacy ModInfo.xml layout:
//
//	<ModInfo>
//	  <Name value="SomeInternalName" />
//	  <Version value="1.2.3" compat="A99" />
//	  <Description value="Mod to show format of ModInfo v1" />
//	  <Author value="Name" />
//	  <Dependency value="OtherMod" />
//	</ModInfo>
//
// Some legacy files wrap the same content as <xml><ModInfo>...</ModInfo></xml>;
// Descriptor.Wrapped records that so Serialize can reproduce it.
//
// Name, Version, Description and Author elements are mandatory at the markup
// level. Dependencies are flat and carry only an identifier.
//
// The package is a pure transport layer. It knows the literal element and
// attribute spellings of v1 (through the schema field-case table) and how to
// move between markup and Descriptor, and between Descriptor and the
// canonical modinfo.Modinfo. It performs no file I/O and holds no state, so
// every function is safe for concurrent use.
//
// A v1 document cannot hold DisplayName, Website or the Required flag of a
// dependency. FromCanonical drops them silently; callers that need to warn
// about the loss SHOULD consult Dropped before serializing.
package v1

import (
	"dirpx.dev/modinfo/modcore/errors"
	"dirpx.dev/modinfo/modcore/model/modinfo"
	"dirpx.dev/modinfo/modcore/model/semver"
	"dirpx.dev/modinfo/modcore/schema"
	"github.com/beevik/etree"
)

// Descriptor is the literal transport shape of a v1 document. Version is
// kept as text; ToCanonical parses it.
//
// A Descriptor is not validated on its own. Deserialize guarantees the
// mandatory elements were present, and ToCanonical enforces the canonical
// invariants. Values built by hand MAY hold anything and are only checked
// when lifted.
type Descriptor struct {
	// Wrapped is true when the document used the <xml><ModInfo> envelope.
	// Serialize reproduces the envelope when it is set.
	Wrapped bool

	// Name is the value attribute of <Name>. Deserialize requires the
	// element but accepts an empty value; ToCanonical rejects it.
	Name string

	// Version is the raw value attribute of <Version>, before lenient
	// parsing.
	Version string

	// Compat is the optional compat attribute of <Version>. Empty means the
	// attribute is absent, and Serialize omits it.
	Compat string

	// Description is the value attribute of <Description>.
	Description string

	// Author is the value attribute of <Author>.
	Author string

	// Dependencies holds the value attribute of every <Dependency> element in
	// document order. Duplicates are kept.
	Dependencies []string
}

// required lists the elements whose absence makes a document malformed.
var required = []modinfo.Field{
	modinfo.FieldName,
	modinfo.FieldVersion,
	modinfo.FieldDescription,
	modinfo.FieldAuthor,
}

// Deserialize reads v1 markup into a Descriptor.
//
// The root MUST be <ModInfo>, or <xml> whose first child element is
// <ModInfo>; tags and attribute names match case-insensitively. Unknown
// elements are skipped so that files written by newer tools still load.
// When an element repeats, the last occurrence wins, except Dependency,
// which accumulates in document order.
//
// Structural problems (bad syntax, wrong root, a missing mandatory element
// or a known element without its value attribute) return a
// *errors.MalformedError naming the element. Deserialize never inspects the
// content of a value, so an unparseable Version is reported later by
// ToCanonical.
func Deserialize(markup string) (Descriptor, error) {
	doc, err := schema.ReadDocument(schema.V1, markup)
	if err != nil {
		return Descriptor{}, err
	}

	var d Descriptor
	root := doc.Root()
	if schema.SameTag(root.Tag, schema.RootV2) {
		children := root.ChildElements()
		if len(children) == 0 || !schema.SameTag(children[0].Tag, schema.RootV1) {
			return Descriptor{}, &errors.MalformedError{
				Generation: schema.V1.String(),
				Element:    root.Tag,
				Reason:     "expected <" + schema.RootV1 + "> inside <" + root.Tag + ">",
			}
		}
		d.Wrapped = true
		root = children[0]
	}
	if !schema.SameTag(root.Tag, schema.RootV1) {
		return Descriptor{}, &errors.MalformedError{
			Generation: schema.V1.String(),
			Element:    root.Tag,
			Reason:     "wrong root element, expected <" + schema.RootV1 + ">",
		}
	}

	seen := make(map[modinfo.Field]bool, len(required))
	for _, el := range root.ChildElements() {
		f, ok := schema.FieldOf(schema.V1, el.Tag)
		if !ok {
			continue
		}
		value, err := schema.RequireAttr(schema.V1, el, schema.AttrValue)
		if err != nil {
			return Descriptor{}, err
		}
		seen[f] = true

		switch f {
		case modinfo.FieldName:
			d.Name = value
		case modinfo.FieldVersion:
			d.Version = value
			d.Compat, _ = schema.Attr(el, schema.AttrCompat)
		case modinfo.FieldDescription:
			d.Description = value
		case modinfo.FieldAuthor:
			d.Author = value
		case modinfo.FieldDependencies:
			d.Dependencies = append(d.Dependencies, value)
		}
	}

	for _, f := range required {
		if !seen[f] {
			sp, _ := schema.SpellingOf(schema.V1, f)
			return Descriptor{}, schema.Missing(schema.V1, sp.Element)
		}
	}

	return d, nil
}

// Serialize renders d as v1 markup.
//
// The output has no XML declaration, since legacy files never carried one.
// Elements follow the order of the field-case table, compat is written only
// when set, and every attribute value is escaped. Mandatory elements are
// always emitted, even with an empty value, so the output MAY fail to load
// again when d was not produced by FromCanonical from a valid model.
// Serialize never fails.
func Serialize(d Descriptor) string {
	doc := etree.NewDocument()
	var root *etree.Element
	if d.Wrapped {
		root = doc.CreateElement(schema.RootV2).CreateElement(schema.RootV1)
	} else {
		root = doc.CreateElement(schema.RootV1)
	}

	for _, f := range schema.FieldsOf(schema.V1) {
		sp, _ := schema.SpellingOf(schema.V1, f)
		switch f {
		case modinfo.FieldName:
			schema.AddValueElement(root, sp.Element, d.Name)
		case modinfo.FieldVersion:
			el := schema.AddValueElement(root, sp.Element, d.Version)
			if d.Compat != "" {
				el.CreateAttr(schema.AttrCompat, d.Compat)
			}
		case modinfo.FieldDescription:
			schema.AddValueElement(root, sp.Element, d.Description)
		case modinfo.FieldAuthor:
			schema.AddValueElement(root, sp.Element, d.Author)
		case modinfo.FieldDependencies:
			for _, id := range d.Dependencies {
				schema.AddValueElement(root, sp.Element, id)
			}
		}
	}

	return schema.WriteDocument(doc)
}

// ToCanonical lifts d into a Modinfo and enforces the canonical invariants.
//
// Version is parsed leniently, so "1.2" becomes 1.2.0. An unparseable
// Version is reported as a *errors.ValidationError on field Version wrapping
// the *errors.VersionError; it is never defaulted. Each dependency becomes a
// Dependency with Required false. Any other violation is the error returned
// by Modinfo.Validate. On error the zero Modinfo is returned.
func ToCanonical(d Descriptor) (modinfo.Modinfo, error) {
	v, err := semver.ParseVersion(d.Version)
	if err != nil {
		return modinfo.Modinfo{}, &errors.ValidationError{
			Type:   "Modinfo",
			Field:  "Version",
			Reason: "unparseable version",
			Value:  d.Version,
			Err:    err,
		}
	}

	m := modinfo.Modinfo{
		Name:        d.Name,
		Version:     v,
		Compat:      d.Compat,
		Description: d.Description,
		Author:      d.Author,
	}
	for _, id := range d.Dependencies {
		m.Dependencies = append(m.Dependencies, modinfo.Dependency{ID: id})
	}

	if err := m.Validate(); err != nil {
		return modinfo.Modinfo{}, err
	}
	return m, nil
}

// FromCanonical projects m onto the v1 shape. It never fails: DisplayName,
// Website and Dependency.Required have no v1 representation and are dropped.
//
// Version is rendered in canonical form and Wrapped is always false. m is
// not validated; callers SHOULD validate it first when the result is meant
// to be written to disk.
func FromCanonical(m modinfo.Modinfo) Descriptor {
	d := Descriptor{
		Name:        m.Name,
		Version:     m.Version.String(),
		Compat:      m.Compat,
		Description: m.Description,
		Author:      m.Author,
	}
	for _, dep := range m.Dependencies {
		d.Dependencies = append(d.Dependencies, dep.ID)
	}
	return d
}

// Dropped returns the canonical fields of m that FromCanonical discards
// because they are set but not representable in v1.
//
// The result is in field order and each field appears at most once.
// FieldDependencies is reported when any dependency is Required, since the
// flag is the part lost; the identifiers themselves survive. A nil result
// means the projection is lossless.
func Dropped(m modinfo.Modinfo) []modinfo.Field {
	var out []modinfo.Field
	if m.DisplayName != "" {
		out = append(out, modinfo.FieldDisplayName)
	}
	if m.Website != "" {
		out = append(out, modinfo.FieldWebsite)
	}
	for _, dep := range m.Dependencies {
		if dep.Required {
			out = append(out, modinfo.FieldDependencies)
			break
		}
	}
	return out
}
