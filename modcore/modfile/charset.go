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

package modfile

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// utf8BOM is stripped before the declaration is inspected.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// decodeText converts the raw bytes of a descriptor file to a Go string.
//
// A file whose XML declaration names an encoding other than UTF-8 (older
// tools write ISO-8859-1 or windows-1252) is transcoded with the matching
// decoder from golang.org/x/net/html/charset. The declaration is left in the
// text; the codec accepts any declared encoding for input that is already a
// string. Files without a declaration, or declaring UTF-8, are returned as
// is. An encoding label charset does not know is an error.
func decodeText(data []byte) (string, error) {
	data = bytes.TrimPrefix(data, utf8BOM)

	label := declaredEncoding(data)
	if label == "" || strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8") {
		return string(data), nil
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		return "", fmt.Errorf("unsupported encoding %q", label)
	}
	out, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(out), nil
}

// declaredEncoding returns the encoding label of the XML declaration at the
// start of data, or "" when there is none. encoding/xml hands the label to
// CharsetReader while it reads the declaration, so a single Token call is
// enough.
func declaredEncoding(data []byte) string {
	var label string
	dec := xml.NewDecoder(bytes.NewReader(bytes.TrimLeft(data, " \t\r\n")))
	dec.CharsetReader = func(l string, input io.Reader) (io.Reader, error) {
		label = l
		return input, nil
	}
	_, _ = dec.Token()
	return label
}
