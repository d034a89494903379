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

package codec

import (
	"encoding/xml"
	"io"
	"strings"

	"dirpx.dev/modinfo/modcore/errors"
	"dirpx.dev/modinfo/modcore/schema"
)

// Sniff decides which generation markup claims without deserializing it.
//
// Tokens are streamed only until the decision is made:
//
//   - a <ModInfo> root is v1;
//   - an <xml> root whose first child element is <ModInfo> is wrapped v1;
//   - any other <xml> root is v2, including an empty one;
//   - anything else, or no root element at all, is a *errors.FormatError.
//
// Tag names match case-insensitively. Once a recognised root has been read,
// later syntax errors do not change the answer: the claimed generation is
// returned and its deserializer reports the document as malformed. An
// encoding named by the XML declaration does not affect the answer.
func Sniff(markup string) (schema.Generation, error) {
	dec := xml.NewDecoder(strings.NewReader(strings.TrimSpace(markup)))
	dec.CharsetReader = schema.DecodedCharset

	var root string
	for {
		tok, err := dec.Token()
		if err != nil {
			if root != "" {
				// Only an <xml> root can still be undecided here.
				return schema.V2, nil
			}
			if err == io.EOF {
				return schema.GenerationUnknown, &errors.FormatError{Reason: "no root element"}
			}
			return schema.GenerationUnknown, &errors.FormatError{Reason: "invalid XML syntax: " + err.Error()}
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if root == "" {
				root = t.Name.Local
				switch {
				case schema.SameTag(root, schema.RootV1):
					return schema.V1, nil
				case schema.SameTag(root, schema.RootV2):
					continue
				default:
					return schema.GenerationUnknown, &errors.FormatError{
						Root:   root,
						Reason: "root element matches no descriptor generation",
					}
				}
			}
			if schema.SameTag(t.Name.Local, schema.RootV1) {
				return schema.V1, nil
			}
			return schema.V2, nil
		case xml.EndElement:
			// <xml/> or <xml></xml>: no children, so not a wrapper.
			return schema.V2, nil
		}
	}
}
