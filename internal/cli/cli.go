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

// Package cli implements the modinfo command line tool on top of the
// modcore packages.
//
// Settings resolve in viper's usual order: flag, MODINFO_* environment
// variable, config file (--config), default.
package cli

import (
	"io"
	"os"
	"strings"

	"dirpx.dev/modinfo/modcore/model"
	"dirpx.dev/modinfo/modcore/model/modinfo"
	"dirpx.dev/modinfo/modcore/modfile"
	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Configuration keys. Each is bound to the flag of the same name and to
// MODINFO_<KEY> with dashes turned into underscores.
const (
	keyLogLevel = "log-level"
	keyFormat   = "format"
	keyTarget   = "target"
	keyConfig   = "config"

	// keyUnredacted turns off masking of author and website in debug logs.
	keyUnredacted = "unredacted"
)

// EnvPrefix prefixes every environment variable the tool reads.
const EnvPrefix = "MODINFO"

// app carries the dependencies shared by all subcommands.
type app struct {
	fs     afero.Fs
	v      *viper.Viper
	logger *log.Logger
}

// Execute runs the tool against the host filesystem and process streams.
func Execute() error {
	return NewRootCommand(afero.NewOsFs(), os.Stdout, os.Stderr).Execute()
}

// NewRootCommand builds the command tree. All file access goes through fsys,
// which lets tests run the commands against afero.NewMemMapFs.
func NewRootCommand(fsys afero.Fs, stdout, stderr io.Writer) *cobra.Command {
	a := &app{
		fs:     fsys,
		v:      viper.New(),
		logger: log.NewWithOptions(stderr, log.Options{Prefix: "modinfo"}),
	}

	root := &cobra.Command{
		Use:   "modinfo",
		Short: "Inspect, edit and convert ModInfo.xml descriptors",
		Long: `modinfo reads 7 Days to Die ModInfo.xml descriptors in either schema
generation (v1 <ModInfo> or v2 <xml>), edits them through one canonical
model and writes them back in the generation of your choice.

Examples:
  modinfo show Mods/MyMod
  modinfo show Mods/MyMod --format json
  modinfo convert Mods/MyMod --to v2 --in-place
  modinfo bump Mods/MyMod minor
  modinfo set Mods/MyMod author "Jane Doe"`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.configure()
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.String(keyConfig, "", "config file (yaml, json or toml)")
	flags.String(keyLogLevel, "info", "log level: debug, info, warn, error")
	_ = a.v.BindPFlag(keyConfig, flags.Lookup(keyConfig))
	flags.Bool(keyUnredacted, false, "log author and website unmasked")
	_ = a.v.BindPFlag(keyLogLevel, flags.Lookup(keyLogLevel))
	_ = a.v.BindPFlag(keyUnredacted, flags.Lookup(keyUnredacted))

	a.v.SetDefault(keyLogLevel, "info")
	a.v.SetDefault(keyFormat, "yaml")
	a.v.SetDefault(keyTarget, "v2")

	root.AddCommand(
		a.newShowCommand(),
		a.newConvertCommand(),
		a.newValidateCommand(),
		a.newInitCommand(),
		a.newSetCommand(),
		a.newBumpCommand(),
		a.newDepCommand(),
	)
	return root
}

// configure finishes viper setup once flags are parsed: environment binding,
// the optional config file and the log level.
func (a *app) configure() error {
	a.v.SetFs(a.fs)
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	if path := a.v.GetString(keyConfig); path != "" {
		a.v.SetConfigFile(path)
		if err := a.v.ReadInConfig(); err != nil {
			return err
		}
		a.logger.Debug("loaded config", "path", path)
	}

	level, err := log.ParseLevel(a.v.GetString(keyLogLevel))
	if err != nil {
		return err
	}
	a.logger.SetLevel(level)
	return nil
}

// load reads the descriptor at path and logs where it came from. The logged
// model is redacted unless --unredacted is set.
func (a *app) load(path string) (*modfile.File, error) {
	f, err := modfile.Load(a.fs, path)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("loaded descriptor", "path", f.Path, "generation", f.Generation,
		"modinfo", model.SafeString(f.Modinfo, a.v.GetBool(keyUnredacted)))
	return f, nil
}

// save writes f, warning about fields its generation cannot hold.
func (a *app) save(f *modfile.File) error {
	a.warnLost(f.Lost(), f.Generation.String())
	if err := modfile.Save(a.fs, f); err != nil {
		return err
	}
	a.logger.Info("saved descriptor", "path", f.Path, "generation", f.Generation, "version", f.Modinfo.Version)
	return nil
}

func (a *app) warnLost(lost []modinfo.Field, target string) {
	if len(lost) == 0 {
		return
	}
	names := make([]string, len(lost))
	for i, f := range lost {
		names[i] = f.String()
	}
	a.logger.Warn("fields not representable in target generation are dropped",
		"target", target, "fields", strings.Join(names, ","))
}

// edit loads path, applies fn and saves the result in the file's
// generation. When fn leaves the model unchanged the file is not rewritten.
func (a *app) edit(path string, fn func(*modinfo.Modinfo) error) error {
	f, err := a.load(path)
	if err != nil {
		return err
	}
	before := f.Modinfo.Clone()
	if err := fn(&f.Modinfo); err != nil {
		return err
	}
	if f.Modinfo.Equal(before) {
		a.logger.Info("descriptor unchanged", "path", f.Path)
		return nil
	}
	return a.save(f)
}
