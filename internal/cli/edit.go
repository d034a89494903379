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

	"dirpx.dev/modinfo/modcore/model/change"
	"dirpx.dev/modinfo/modcore/model/modinfo"
	"github.com/spf13/cobra"
)

func (a *app) newSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set PATH FIELD VALUE",
		Short: "Set one field of a descriptor",
		Long: `Set FIELD (name, display_name, version, description, author, website
or compat) to VALUE and save the descriptor in its current generation.
Versions are parsed leniently, so "v1.2" is stored as 1.2.0.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(args[0], func(m *modinfo.Modinfo) error {
				return m.Set(args[1], args[2])
			})
		},
	}
}

func (a *app) newBumpCommand() *cobra.Command {
	var pre, build string

	cmd := &cobra.Command{
		Use:   "bump PATH major|minor|patch|none",
		Short: "Increment the mod version",
		Long: `Increment the version of the descriptor at PATH. Any increment clears
the pre-release and build metadata; --pre and --build set them afterwards.
"none" keeps the numbers and only applies --pre and --build.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			b, err := change.ParseBump(args[1])
			if err != nil {
				return err
			}
			return a.edit(args[0], func(m *modinfo.Modinfo) error {
				from := m.Version
				m.BumpVersion(b)
				if pre != "" {
					if err := m.SetPrerelease(pre); err != nil {
						return err
					}
				}
				if build != "" {
					if err := m.SetMetadata(build); err != nil {
						return err
					}
				}
				fmt.Fprintln(cmd.OutOrStdout(), m.Version)
				a.logger.Debug("bumped version", "from", from, "to", m.Version, "bump", b)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&pre, "pre", "", "pre-release to set after bumping (e.g. beta.1)")
	cmd.Flags().StringVar(&build, "build", "", "build metadata to set after bumping")
	return cmd
}

func (a *app) newDepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dep",
		Short: "Manage declared dependencies",
	}

	var required bool
	add := &cobra.Command{
		Use:   "add PATH ID",
		Short: "Declare a dependency",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(args[0], func(m *modinfo.Modinfo) error {
				if m.DependsOn(args[1]) {
					a.logger.Warn("dependency already declared", "id", args[1])
				}
				return m.AddDependency(args[1], required)
			})
		},
	}
	add.Flags().BoolVar(&required, "required", false, "mark the dependency as required (v2 only)")

	rm := &cobra.Command{
		Use:     "rm PATH ID",
		Aliases: []string{"remove"},
		Short:   "Remove every declaration of a dependency",
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.edit(args[0], func(m *modinfo.Modinfo) error {
				if !m.RemoveDependency(args[1]) {
					return fmt.Errorf("%s does not depend on %s", m.Name, args[1])
				}
				return nil
			})
		},
	}

	ls := &cobra.Command{
		Use:   "ls PATH",
		Short: "List declared dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := a.load(args[0])
			if err != nil {
				return err
			}
			return printField(cmd.OutOrStdout(), f.Modinfo, modinfo.FieldDependenciesKey)
		},
	}

	cmd.AddCommand(add, rm, ls)
	return cmd
}
