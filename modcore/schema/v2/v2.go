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

// Package v2 mirrors the current ModInfo.xml layout:
//
//	<?xml version="1.0" encoding="UTF-8"?>
//	<xml>
//	  <Name value="SomeInternalName" />
//	  <DisplayName value="Official Mod Name" />
//	  <Version value="2.3.4" compat="A99" />
//	  <Description value="Mod to show format of ModInfo v2" />
//	  <Author value="Name" />
//	  <Website value="https://example.org" />
//	  <Dependencies>
//	    <Dependency name="OtherMod" required="true" />
//	  </Dependencies>
//	</xml>
//
// Only Name and Version are mandatory at the markup level.
//
// v2 is a superset of the canonical model: every modinfo.Modinfo field has a
// v2 spelling, so FromCanonical is lossless and a v2 round trip preserves a
// valid model exactly. Like package v1 this package is stateless and does
// no file I/O, and all functions are safe for concurrent use.
package v2

import (
	"dirpx.dev/modinfo/modcore/errors"
	"dirpx.dev/modinfo/modcore/model/modinfo"
	"dirpx.dev/modinfo/modcore/model/semver"
	"dirpx.dev/modinfo/modcore/schema"
	"github.com/beevik/etree"
)

// Dependency is one <Dependency> entry under <Dependencies>.
type Dependency struct {
	// Name is the name attribute, the identifier of the mod depended on.
	Name string

	// Required mirrors the required attribute. An absent attribute reads as
	// false, and Serialize writes the attribute only when it is true.
	Required bool
}

// Descriptor is the literal transport shape of a v2 document. Version is
// kept as text; ToCanonical parses it.
//
// As with v1, a Descriptor carries no invariants of its own. Deserialize
// guarantees only that <Name> and <Version> were present.
type Descriptor struct {
	// Name is the value attribute of <Name>, the internal mod identifier.
	Name string

	// DisplayName is the value attribute of <DisplayName>. Empty when the
	// element is absent or empty; the two are not distinguished.
	DisplayName string

	// Version is the raw value attribute of <Version>.
	Version string

	// Compat is the optional compat attribute of <Version>.
	Compat string

	// Description is the value attribute of <Description>.
	Description string

	// Author is the value attribute of <Author>.
	Author string

	// Website is the value attribute of <Website>. It is not checked here;
	// ToCanonical applies the canonical URL rule.
	Website string

	// Dependencies lists every <Dependency> under every <Dependencies>
	// block, in document order.
	Dependencies []Dependency
}

// required lists the elements whose absence makes a v2 document malformed.
var required = []modinfo.Field{
	modinfo.FieldName,
	modinfo.FieldVersion,
}

// Deserialize reads v2 markup into a Descriptor.
//
// The root MUST be <xml>; tags and attribute names match case-insensitively.
// Unknown elements, including unknown children of <Dependencies>, are
// skipped. Repeated scalar elements resolve to the last occurrence, and
// repeated <Dependencies> blocks accumulate.
//
// Structural problems return a *errors.MalformedError: bad syntax, a wrong
// root, a missing Name or Version, a missing value or name attribute, and a
// required flag that strconv.ParseBool rejects. Value content is not
// inspected here.
func Deserialize(markup string) (Descriptor, error) {
	doc, err := schema.ReadDocument(schema.V2, markup)
	if err != nil {
		return Descriptor{}, err
	}

	root := doc.Root()
	if !schema.SameTag(root.Tag, schema.RootV2) {
		return Descriptor{}, &errors.MalformedError{
			Generation: schema.V2.String(),
			Element:    root.Tag,
			Reason:     "wrong root element, expected <" + schema.RootV2 + ">",
		}
	}

	var d Descriptor
	seen := make(map[modinfo.Field]bool, len(required))
	for _, el := range root.ChildElements() {
		f, ok := schema.FieldOf(schema.V2, el.Tag)
		if !ok {
			continue
		}
		seen[f] = true

		if f == modinfo.FieldDependencies {
			deps, err := readDependencies(el)
			if err != nil {
				return Descriptor{}, err
			}
			d.Dependencies = append(d.Dependencies, deps...)
			continue
		}

		value, err := schema.RequireAttr(schema.V2, el, schema.AttrValue)
		if err != nil {
			return Descriptor{}, err
		}
		switch f {
		case modinfo.FieldName:
			d.Name = value
		case modinfo.FieldDisplayName:
			d.DisplayName = value
		case modinfo.FieldVersion:
			d.Version = value
			d.Compat, _ = schema.Attr(el, schema.AttrCompat)
		case modinfo.FieldDescription:
			d.Description = value
		case modinfo.FieldAuthor:
			d.Author = value
		case modinfo.FieldWebsite:
			d.Website = value
		}
	}

	for _, f := range required {
		if !seen[f] {
			sp, _ := schema.SpellingOf(schema.V2, f)
			return Descriptor{}, schema.Missing(schema.V2, sp.Element)
		}
	}

	return d, nil
}

// readDependencies collects the <Dependency> children of one <Dependencies>
// block. Each entry MUST carry a name attribute.
func readDependencies(container *etree.Element) ([]Dependency, error) {
	var deps []Dependency
	for _, el := range container.ChildElements() {
		if !schema.SameTag(el.Tag, schema.ElementDependency) {
			continue
		}
		name, err := schema.RequireAttr(schema.V2, el, schema.AttrName)
		if err != nil {
			return nil, err
		}
		req, err := schema.BoolAttr(schema.V2, el, schema.AttrRequired)
		if err != nil {
			return nil, err
		}
		deps = append(deps, Dependency{Name: name, Required: req})
	}
	return deps, nil
}

// Serialize renders d as v2 markup with an XML declaration. Every scalar
// element is written, empty or not, so optional fields survive a round
// trip. <Dependencies> is written only when d has entries, matching the
// files the game ships.
//
// The declaration always names UTF-8, whatever the source document
// declared. Element order follows the field-case table. Serialize never
// fails.
func Serialize(d Descriptor) string {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	root := doc.CreateElement(schema.RootV2)

	for _, f := range schema.FieldsOf(schema.V2) {
		sp, _ := schema.SpellingOf(schema.V2, f)
		switch f {
		case modinfo.FieldName:
			schema.AddValueElement(root, sp.Element, d.Name)
		case modinfo.FieldDisplayName:
			schema.AddValueElement(root, sp.Element, d.DisplayName)
		case modinfo.FieldVersion:
			el := schema.AddValueElement(root, sp.Element, d.Version)
			if d.Compat != "" {
				el.CreateAttr(schema.AttrCompat, d.Compat)
			}
		case modinfo.FieldDescription:
			schema.AddValueElement(root, sp.Element, d.Description)
		case modinfo.FieldAuthor:
			schema.AddValueElement(root, sp.Element, d.Author)
		case modinfo.FieldWebsite:
			schema.AddValueElement(root, sp.Element, d.Website)
		case modinfo.FieldDependencies:
			if len(d.Dependencies) == 0 {
				continue
			}
			container := root.CreateElement(sp.Element)
			for _, dep := range d.Dependencies {
				el := container.CreateElement(schema.ElementDependency)
				el.CreateAttr(schema.AttrName, dep.Name)
				if dep.Required {
					el.CreateAttr(schema.AttrRequired, "true")
				}
			}
		}
	}

	return schema.WriteDocument(doc)
}

// ToCanonical lifts d into a Modinfo and enforces the canonical invariants.
// An unparseable Version is reported as a *errors.ValidationError on field
// Version wrapping the *errors.VersionError; it is never defaulted.
//
// Every other field is copied as is, and the result MUST pass
// Modinfo.Validate or ToCanonical returns its error together with the zero
// Modinfo.
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
		DisplayName: d.DisplayName,
		Version:     v,
		Compat:      d.Compat,
		Description: d.Description,
		Author:      d.Author,
		Website:     d.Website,
	}
	for _, dep := range d.Dependencies {
		m.Dependencies = append(m.Dependencies, modinfo.Dependency{ID: dep.Name, Required: dep.Required})
	}

	if err := m.Validate(); err != nil {
		return modinfo.Modinfo{}, err
	}
	return m, nil
}

// FromCanonical projects m onto the v2 shape. It never fails. v2 is a
// superset of the canonical fields, so nothing is dropped; Dependencies is
// always non-nil, even when m declares none.
//
// m is not validated. Callers that write the result SHOULD validate m
// first, as modfile.Save does.
func FromCanonical(m modinfo.Modinfo) Descriptor {
	d := Descriptor{
		Name:         m.Name,
		DisplayName:  m.DisplayName,
		Version:      m.Version.String(),
		Compat:       m.Compat,
		Description:  m.Description,
		Author:       m.Author,
		Website:      m.Website,
		Dependencies: make([]Dependency, 0, len(m.Dependencies)),
	}
	for _, dep := range m.Dependencies {
		d.Dependencies = append(d.Dependencies, Dependency{Name: dep.ID, Required: dep.Required})
	}
	return d
}
