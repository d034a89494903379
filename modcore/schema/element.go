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
	"fmt"
	"io"
	"strconv"
	"strings"

	"dirpx.dev/modinfo/modcore/errors"
	"github.com/beevik/etree"
)

// IndentSpaces is the indentation width of emitted markup.
const IndentSpaces = 2

// DecodedCharset is an xml.Decoder CharsetReader for markup that is already
// held as a Go string. The encoding named by the XML declaration (for
// example ISO-8859-1 or windows-1252) describes the bytes the caller read
// from disk, not the string handed to this package, so the input is returned
// unchanged. Callers that read raw non-UTF-8 bytes MUST transcode them before
// parsing.
func DecodedCharset(label string, input io.Reader) (io.Reader, error) {
	return input, nil
}

// ReadDocument parses markup into an element tree. Leading and trailing
// whitespace is ignored, so an XML declaration preceded by blank lines is
// accepted. Any encoding named by the declaration is accepted (see
// DecodedCharset). Syntax errors and documents without a root element are
// reported as *errors.MalformedError for generation g.
func ReadDocument(g Generation, markup string) (*etree.Document, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = DecodedCharset
	if err := doc.ReadFromString(strings.TrimSpace(markup)); err != nil {
		return nil, &errors.MalformedError{Generation: g.String(), Reason: "invalid XML syntax", Err: err}
	}
	if doc.Root() == nil {
		return nil, &errors.MalformedError{Generation: g.String(), Reason: "no root element"}
	}
	return doc, nil
}

// Attr returns the value of the attribute named key, matched
// case-insensitively. The second result is false when el has no such
// attribute.
func Attr(el *etree.Element, key string) (string, bool) {
	for _, a := range el.Attr {
		if SameTag(a.Key, key) {
			return a.Value, true
		}
	}
	return "", false
}

// RequireAttr is Attr that reports a missing attribute as a
// *errors.MalformedError naming the element.
func RequireAttr(g Generation, el *etree.Element, key string) (string, error) {
	v, ok := Attr(el, key)
	if !ok {
		return "", &errors.MalformedError{
			Generation: g.String(),
			Element:    el.Tag,
			Reason:     fmt.Sprintf("missing %q attribute", key),
		}
	}
	return v, nil
}

// BoolAttr reads an optional boolean attribute. A missing attribute yields
// false; a value strconv.ParseBool rejects is a *errors.MalformedError.
func BoolAttr(g Generation, el *etree.Element, key string) (bool, error) {
	v, ok := Attr(el, key)
	if !ok {
		return false, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return false, &errors.MalformedError{
			Generation: g.String(),
			Element:    el.Tag,
			Reason:     fmt.Sprintf("attribute %q must be a boolean, got %q", key, v),
			Err:        err,
		}
	}
	return b, nil
}

// AddValueElement appends <tag value="v"/> to parent and returns the new
// element.
func AddValueElement(parent *etree.Element, tag, v string) *etree.Element {
	el := parent.CreateElement(tag)
	el.CreateAttr(AttrValue, v)
	return el
}

// WriteDocument renders doc indented by IndentSpaces. Childless elements
// are written self-closing.
func WriteDocument(doc *etree.Document) string {
	doc.WriteSettings.CanonicalEndTags = false
	doc.Indent(IndentSpaces)
	s, err := doc.WriteToString()
	if err != nil {
		// Writing to a strings.Builder cannot fail.
		panic(err)
	}
	return s
}

// Missing returns a *errors.MalformedError for a structurally required
// element that is absent.
func Missing(g Generation, tag string) error {
	return &errors.MalformedError{
		Generation: g.String(),
		Element:    tag,
		Reason:     "required element is missing",
	}
}
