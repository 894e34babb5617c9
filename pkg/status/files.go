// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"unicode/utf8"

	"gitlab.com/tozd/go/errors"
)

// ErrNotText marks a file whose bytes are not valid UTF-8
var ErrNotText = errors.Base("not valid UTF-8 text")

// FileManager interface implementation

// 📖 ReadText reads a whole file and decodes it as UTF-8 text
func (m *Manager) ReadText(ctx context.Context, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", errors.Errorf("reading file: %w", err)
	}

	if !utf8.Valid(content) {
		return "", errors.Errorf("decoding %s: %w", path, ErrNotText)
	}

	return string(content), nil
}

// 💾 WriteFileAtomic replaces the file's bytes through a temp file and a rename.
// Existing permission bits are kept.
func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content string) error {
	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	} else if !os.IsNotExist(err) {
		return errors.Errorf("checking file existence: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	// Clean up temp file on any failure below
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tempPath)
		return err
	}

	if _, err := io.WriteString(tmp, content); err != nil {
		return fail(errors.Errorf("writing temp file: %w", err))
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail(errors.Errorf("setting temp file mode: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}

	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// 🗄️ BackupFile copies path to path.bak, if path exists
func (m *Manager) BackupFile(ctx context.Context, path string) error {
	backupPath := path + ".bak"

	// Only backup if file exists
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return errors.Errorf("checking file existence: %w", err)
	}

	if err := copyFile(path, backupPath); err != nil {
		return errors.Errorf("creating backup: %w", err)
	}

	return nil
}

// Helper functions

func copyFile(src, dst string) error {
	source, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source file: %w", err)
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return errors.Errorf("reading source file info: %w", err)
	}

	destination, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return errors.Errorf("creating destination file: %w", err)
	}
	defer destination.Close()

	if _, err := io.Copy(destination, source); err != nil {
		return errors.Errorf("copying file: %w", err)
	}

	return destination.Close()
}
