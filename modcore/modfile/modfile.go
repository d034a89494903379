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

// Package modfile reads and writes ModInfo.xml files.
//
// It is the storage shell around package codec: the core works on text only,
// and modfile moves that text between an afero.Fs and the canonical model.
// A File remembers the path it was read from and the generation it was
// written in, so a load-modify-save cycle keeps the file's generation unless
// the caller changes it.
package modfile

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dirpx.dev/modinfo/modcore/codec"
	"dirpx.dev/modinfo/modcore/model/modinfo"
	"dirpx.dev/modinfo/modcore/schema"
	"github.com/spf13/afero"
)

// FileName is the conventional descriptor file name inside a mod folder.
// Lookups in a directory match it case-insensitively.
const FileName = "ModInfo.xml"

// FileMode is the permission used for newly written descriptors.
const FileMode os.FileMode = 0o644

// ErrNotFound is matched by errors.Is when no descriptor exists at the
// requested location.
var ErrNotFound = stderrors.New("modinfo: descriptor file not found")

// NotFoundError reports a missing descriptor file or a mod folder without
// one.
type NotFoundError struct {
	// Path is the file or directory that was searched.
	Path string

	// Err is the underlying filesystem error, if any.
	Err error
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	return "modinfo: descriptor file not found: " + e.Path
}

// Unwrap returns the underlying filesystem error.
func (e *NotFoundError) Unwrap() error { return e.Err }

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// File is a descriptor together with where it came from.
type File struct {
	// Path is the descriptor file path.
	Path string

	// Generation is the generation Save writes. Load sets it to the
	// generation the file was read in.
	Generation schema.Generation

	// Modinfo is the canonical model.
	Modinfo modinfo.Modinfo
}

// New returns a File for a descriptor that does not exist yet. The model
// is modinfo.New() and the generation is schema.Latest.
func New(path string) *File {
	return &File{
		Path:       path,
		Generation: schema.Latest,
		Modinfo:    modinfo.New(),
	}
}

// Locate resolves path to a descriptor file. A regular file is returned as
// is; for a directory the entry named FileName (in any letter case) is
// returned. A missing path or a directory without a descriptor yields a
// *NotFoundError.
func Locate(fsys afero.Fs, path string) (string, error) {
	info, err := fsys.Stat(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return "", &NotFoundError{Path: path, Err: err}
		}
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return path, nil
	}

	entries, err := afero.ReadDir(fsys, path)
	if err != nil {
		return "", fmt.Errorf("read directory %s: %w", path, err)
	}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(e.Name(), FileName) {
			return filepath.Join(path, e.Name()), nil
		}
	}
	return "", &NotFoundError{Path: path}
}

// Load reads and parses the descriptor at path (a file or a mod folder).
// Parse failures carry the codec error kinds wrapped with the file path.
//
// A file declaring a non-UTF-8 encoding such as ISO-8859-1 is transcoded
// before parsing. Save always writes UTF-8, and a v2 file says so in its
// declaration.
func Load(fsys afero.Fs, path string) (*File, error) {
	file, err := Locate(fsys, path)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(fsys, file)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Path: file, Err: err}
		}
		return nil, fmt.Errorf("read %s: %w", file, err)
	}

	text, err := decodeText(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	m, g, err := codec.Decode(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}

	return &File{Path: file, Generation: g, Modinfo: m}, nil
}

// Save writes f.Modinfo to f.Path in f.Generation, creating parent
// directories as needed. The model is validated first so an invalid
// descriptor is never written.
//
// The file is replaced in one WriteFile call with FileMode permissions.
// Fields f.Generation cannot represent are dropped silently; callers SHOULD
// consult Lost first when the loss matters.
func Save(fsys afero.Fs, f *File) error {
	if err := f.Modinfo.Validate(); err != nil {
		return err
	}
	text, err := codec.Marshal(f.Modinfo, f.Generation)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(f.Path); dir != "." {
		if err := fsys.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := afero.WriteFile(fsys, f.Path, []byte(text), FileMode); err != nil {
		return fmt.Errorf("write %s: %w", f.Path, err)
	}
	return nil
}

// Lost lists the populated fields Save would discard because f.Generation
// cannot represent them.
func (f *File) Lost() []modinfo.Field {
	return codec.Lost(f.Modinfo, f.Generation)
}
