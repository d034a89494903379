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

package cli

import (
	"fmt"
	"io"
	"strings"

	"dirpx.dev/modinfo/modcore/codec"
	"dirpx.dev/modinfo/modcore/model"
	"dirpx.dev/modinfo/modcore/model/modinfo"
	"dirpx.dev/modinfo/modcore/schema"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// Output formats accepted by --format.
const (
	formatYAML = "yaml"
	formatJSON = "json"
	formatTOML = "toml"
	formatXML  = "xml"
)

func (a *app) newShowCommand() *cobra.Command {
	var field string

	cmd := &cobra.Command{
		Use:   "show PATH",
		Short: "Print a descriptor as yaml, json, toml or xml",
		Long: `Print the canonical model of the descriptor at PATH (a ModInfo.xml file
or a mod folder). --format xml re-emits the descriptor in the generation
it was read in. --field prints a single value instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if field != "" {
				return printField(out, f.Modinfo, field)
			}
			return render(out, f.Modinfo, f.Generation, a.v.GetString(keyFormat))
		},
	}

	cmd.Flags().String(keyFormat, formatYAML, "output format: yaml, json, toml, xml")
	cmd.Flags().StringVar(&field, "field", "", "print only this field (name, display_name, version, ...)")
	_ = a.v.BindPFlag(keyFormat, cmd.Flags().Lookup(keyFormat))
	return cmd
}

// render writes m in the given format. xml uses generation g.
func render(w io.Writer, m modinfo.Modinfo, g schema.Generation, format string) error {
	var (
		data []byte
		err  error
	)
	switch strings.ToLower(format) {
	case formatYAML:
		data, err = model.ToYAML(&m)
	case formatJSON:
		data, err = model.ToJSON(&m)
		data = append(data, '\n')
	case formatTOML:
		data, err = toml.Marshal(m)
	case formatXML:
		var text string
		text, err = codec.Marshal(m, g)
		data = []byte(text)
	default:
		return fmt.Errorf("unknown output format %q (want yaml, json, toml or xml)", format)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// printField writes one field value, or one "id [required]" line per
// dependency for the dependencies key. The title key prints Modinfo.Title.
func printField(w io.Writer, m modinfo.Modinfo, key string) error {
	if strings.EqualFold(key, "title") {
		_, err := fmt.Fprintln(w, m.Title())
		return err
	}

	f, err := modinfo.ParseField(key)
	if err != nil {
		return err
	}
	if f == modinfo.FieldDependencies {
		for _, d := range m.Dependencies {
			line := d.ID
			if d.Required {
				line += " required"
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}
		return nil
	}

	v, _ := m.Value(f)
	_, err = fmt.Fprintln(w, v)
	return err
}
