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
	"errors"
	"io"
	"path/filepath"

	"dirpx.dev/modinfo/modcore/codec"
	"dirpx.dev/modinfo/modcore/modfile"
	"dirpx.dev/modinfo/modcore/schema"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

func (a *app) newConvertCommand() *cobra.Command {
	var (
		output  string
		inPlace bool
	)

	cmd := &cobra.Command{
		Use:   "convert PATH",
		Short: "Rewrite a descriptor in another schema generation",
		Long: `Convert the descriptor at PATH to the generation given by --to
(default v2, or MODINFO_TARGET). The result goes to stdout, to --output,
or back to the source file with --in-place.

Downgrading to v1 drops DisplayName, Website and the required flag of
dependencies; a warning lists what was dropped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if inPlace && output != "" {
				return errors.New("--in-place and --output are mutually exclusive")
			}
			target, err := schema.ParseGeneration(a.v.GetString(keyTarget))
			if err != nil {
				return err
			}

			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			a.logger.Debug("converting", "from", f.Generation, "to", target)
			f.Generation = target

			switch {
			case inPlace:
				return a.save(f)
			case output != "":
				f.Path = output
				return a.save(f)
			default:
				a.warnLost(f.Lost(), target.String())
				text, err := codec.Marshal(f.Modinfo, target)
				if err != nil {
					return err
				}
				_, err = io.WriteString(cmd.OutOrStdout(), text)
				return err
			}
		},
	}

	cmd.Flags().String("to", schema.Latest.String(), "target generation: v1 or v2")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	cmd.Flags().BoolVarP(&inPlace, "in-place", "i", false, "overwrite the source descriptor")
	_ = a.v.BindPFlag(keyTarget, cmd.Flags().Lookup("to"))
	return cmd
}

// newInitCommand creates a descriptor from flags or from a json, yaml or
// toml model file.
func (a *app) newInitCommand() *cobra.Command {
	var (
		name     string
		from     string
		gen      string
		force    bool
		required []string
	)

	cmd := &cobra.Command{
		Use:   "init PATH",
		Short: "Create a new descriptor",
		Long: `Create a ModInfo.xml at PATH (a file, or a folder that receives
ModInfo.xml). The model comes from --from (json, yaml or toml) or starts
empty at version 0.1.0 with --name set.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := schema.ParseGeneration(gen)
			if err != nil {
				return err
			}

			fsys := afero.Afero{Fs: a.fs}
			path := args[0]
			if isDir, _ := fsys.IsDir(path); isDir {
				path = filepath.Join(path, modfile.FileName)
			}
			if exists, _ := fsys.Exists(path); exists && !force {
				return errors.New(path + " already exists (use --force to overwrite)")
			}

			f := modfile.New(path)
			f.Generation = g
			if from != "" {
				m, err := a.readModel(from)
				if err != nil {
					return err
				}
				f.Modinfo = m
			}
			if name != "" {
				f.Modinfo.Name = name
			}
			for _, id := range required {
				if err := f.Modinfo.AddDependency(id, true); err != nil {
					return err
				}
			}
			return a.save(f)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "internal mod name")
	cmd.Flags().StringVar(&from, "from", "", "read the model from a json, yaml or toml file")
	cmd.Flags().StringVar(&gen, "generation", schema.Latest.String(), "generation to write: v1 or v2")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing descriptor")
	cmd.Flags().StringSliceVar(&required, "require", nil, "add a required dependency (repeatable)")
	return cmd
}
