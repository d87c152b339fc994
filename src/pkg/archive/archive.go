// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

// Package archive builds and reads the deterministic zip containers extpack produces.
package archive

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/mholt/archives"
)

// FixedTimestamp is stamped on every entry in every build. Archive bytes
// depend only on file content and file set, never on wall-clock time.
var FixedTimestamp = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	dirPerm  = fs.FileMode(0o755)
	filePerm = fs.FileMode(0o644)
)

// UnsupportedFileTypeError indicates the file set named something that is
// neither a regular file nor a directory.
type UnsupportedFileTypeError struct {
	Path string
}

func (e *UnsupportedFileTypeError) Error() string {
	return fmt.Sprintf("unsupported file type at %s, only regular files and directories can be archived", e.Path)
}

// Build archives the given project-relative paths from root into an in-memory
// zip. Directories are walked recursively. Entry modes and timestamps are
// normalized so the output is reproducible.
func Build(ctx context.Context, root string, paths []string) ([]byte, error) {
	var files []archives.FileInfo
	for _, rel := range paths {
		entries, err := collect(root, rel)
		if err != nil {
			return nil, err
		}
		files = append(files, entries...)
	}

	var buf bytes.Buffer
	if err := (archives.Zip{}).Archive(ctx, &buf, files); err != nil {
		return nil, fmt.Errorf("archive failed: %w", err)
	}
	return buf.Bytes(), nil
}

// collect resolves one file-set entry into archive entries, recursing into directories.
func collect(root, rel string) ([]archives.FileInfo, error) {
	abs := filepath.Join(root, rel)
	info, err := os.Lstat(abs)
	if err != nil {
		return nil, fmt.Errorf("unable to stat %s: %w", rel, err)
	}

	switch {
	case info.Mode().IsRegular():
		return []archives.FileInfo{newEntry(abs, rel, info.Size(), false)}, nil
	case info.IsDir():
		var entries []archives.FileInfo
		err := filepath.WalkDir(abs, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			sub, err := filepath.Rel(root, p)
			if err != nil {
				return err
			}
			switch {
			case d.IsDir():
				entries = append(entries, newEntry(p, sub, 0, true))
			case d.Type().IsRegular():
				fi, err := d.Info()
				if err != nil {
					return err
				}
				entries = append(entries, newEntry(p, sub, fi.Size(), false))
			default:
				return &UnsupportedFileTypeError{Path: sub}
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		return entries, nil
	default:
		return nil, &UnsupportedFileTypeError{Path: rel}
	}
}

// newEntry wraps a disk path in an archives.FileInfo carrying the fixed
// timestamp and a normalized mode instead of the source file's own.
func newEntry(abs, rel string, size int64, isDir bool) archives.FileInfo {
	return archives.FileInfo{
		FileInfo: entryInfo{
			name:  filepath.Base(rel),
			size:  size,
			isDir: isDir,
		},
		NameInArchive: filepath.ToSlash(rel),
		Open: func() (fs.File, error) {
			return os.Open(abs)
		},
	}
}

// entryInfo is an fs.FileInfo with content-independent metadata.
type entryInfo struct {
	name  string
	size  int64
	isDir bool
}

func (e entryInfo) Name() string { return e.name }
func (e entryInfo) Size() int64  { return e.size }
func (e entryInfo) Mode() fs.FileMode {
	if e.isDir {
		return dirPerm | fs.ModeDir
	}
	return filePerm
}
func (e entryInfo) ModTime() time.Time { return FixedTimestamp }
func (e entryInfo) IsDir() bool        { return e.isDir }
func (e entryInfo) Sys() any           { return nil }

// Entry describes one archive entry when listing an existing archive.
type Entry struct {
	Name     string
	Size     int64
	Modified time.Time
	IsDir    bool
}

// List returns the entries of an archive in the order they are stored.
func List(ctx context.Context, path string) (_ []Entry, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open archive %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	var entries []Entry
	handler := func(_ context.Context, fi archives.FileInfo) error {
		entries = append(entries, Entry{
			Name:     fi.NameInArchive,
			Size:     fi.Size(),
			Modified: fi.ModTime(),
			IsDir:    fi.IsDir(),
		})
		return nil
	}
	if err := (archives.Zip{}).Extract(ctx, f, handler); err != nil {
		return nil, fmt.Errorf("unable to read archive %s: %w", path, err)
	}
	return entries, nil
}

// ReadFile returns the content of a single named entry from an archive.
func ReadFile(ctx context.Context, path, name string) (_ []byte, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open archive %s: %w", path, err)
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()

	var content []byte
	found := false
	handler := func(_ context.Context, fi archives.FileInfo) error {
		if fi.NameInArchive != name || fi.IsDir() {
			return nil
		}
		r, err := fi.Open()
		if err != nil {
			return err
		}
		b, readErr := io.ReadAll(r)
		if err := errors.Join(readErr, r.Close()); err != nil {
			return err
		}
		content = b
		found = true
		return nil
	}
	if err := (archives.Zip{}).Extract(ctx, f, handler); err != nil {
		return nil, fmt.Errorf("unable to read archive %s: %w", path, err)
	}
	if !found {
		return nil, fmt.Errorf("file %q not found in archive %s", name, path)
	}
	return content, nil
}
