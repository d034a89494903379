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
	"fmt"
	"strings"
	"unicode/utf8"

	"dirpx.dev/modinfo/modcore/errors"
)

// IsXMLChar reports whether r matches the XML 1.0 Char production:
//
//	#x9 | #xA | #xD | [#x20-#xD7FF] | [#xE000-#xFFFD] | [#x10000-#x10FFFF]
//
// Every text field of a descriptor ends up in an attribute value, so a rune
// outside this set cannot be written and read back unchanged.
func IsXMLChar(r rune) bool {
	return r == 0x09 || r == 0x0A || r == 0x0D ||
		(r >= 0x20 && r <= 0xD7FF) ||
		(r >= 0xE000 && r <= 0xFFFD) ||
		(r >= 0x10000 && r <= 0x10FFFF)
}

// invalidXMLText returns the byte offset and rune of the first character of
// s that is not an XML Char, or -1. A byte sequence that is not valid UTF-8
// counts as invalid.
func invalidXMLText(s string) (int, rune) {
	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size <= 1 {
				return i, r
			}
			continue
		}
		if !IsXMLChar(r) {
			return i, r
		}
	}
	return -1, 0
}

// checkText validates one text field of typ.
//
// When required is true a value that is blank after trimming is rejected.
// Any value containing a character outside the XML Char production is
// rejected regardless. Violations are *errors.ValidationError naming field.
func checkText(typ, field, value string, required bool) error {
	if required && strings.TrimSpace(value) == "" {
		return &errors.ValidationError{
			Type:   typ,
			Field:  field,
			Reason: "must not be empty",
			Value:  value,
		}
	}
	if at, r := invalidXMLText(value); at >= 0 {
		return &errors.ValidationError{
			Type:   typ,
			Field:  field,
			Reason: fmt.Sprintf("character %U at byte %d is not allowed in XML", r, at),
			Value:  value,
		}
	}
	return nil
}
