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
	"path/filepath"
	"strings"

	moderrors "dirpx.dev/modinfo/modcore/errors"
	"dirpx.dev/modinfo/modcore/model"
	"dirpx.dev/modinfo/modcore/model/modinfo"
	"dirpx.dev/rxmerr"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func (a *app) newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate PATH...",
		Short: "Check that descriptors parse and satisfy the model invariants",
		Long: `Parse every descriptor given (files or mod folders) and report each
failure with its kind: unknown-format, malformed or invalid. The command
fails if any descriptor does, after checking all of them.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c := rxmerr.NewCollector()
			for _, path := range args {
				f, err := a.load(path)
				if err != nil {
					a.logger.Error("descriptor rejected", "path", path, "kind", moderrors.KindOf(err), "err", err)
					c.Append(err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%s, %s %s)\n", f.Path, f.Generation, f.Modinfo.Name, f.Modinfo.Version)
			}
			return c.Err()
		},
	}
}

// readModel decodes a canonical model from a json, yaml or toml file, chosen
// by extension (yaml when unknown). Decoding starts from modinfo.New, so a
// file without a version yields DefaultVersion. The result is validated.
func (a *app) readModel(path string) (modinfo.Modinfo, error) {
	m := modinfo.New()

	data, err := afero.ReadFile(a.fs, path)
	if err != nil {
		return m, err
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = model.FromJSON(data, &m)
	case ".toml":
		if err = toml.Unmarshal(data, &m); err == nil {
			err = m.Validate()
		}
	default:
		err = model.FromYAML(data, &m)
	}
	if err != nil {
		return modinfo.Modinfo{}, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
