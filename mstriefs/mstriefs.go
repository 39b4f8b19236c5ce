// Package mstriefs provides the small, synchronous file-I/O helpers the
// mstrie core's persistence layer is built on, grounded on the teacher's
// common/util.go DumpToFile/UnDumpFromFile helpers and the original
// file_utils.cpp: whole-file reads before parsing, whole-content writes,
// both surfaced to the caller as plain errors with no partial mutation.
package mstriefs

import (
	"os"

	"golang.org/x/xerrors"
)

// Exists reports whether path refers to an existing file.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ReadAll reads the whole file at path into memory before returning.
func ReadAll(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", xerrors.Errorf("reading %s: %w", path, err)
	}
	return string(b), nil
}

// WriteAll writes content to path, replacing any existing file, after
// forming the whole content in memory (the caller already did that).
func WriteAll(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return xerrors.Errorf("writing %s: %w", path, err)
	}
	return nil
}
