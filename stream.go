// stream.go: byte-stream collaborator backed by a file
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package mnemo

import "os"

// fileStream is the default ByteStream: atomic whole-blob reads and
// writes against a file path. No retries; retry policy, if any,
// belongs here and not in the store.
type fileStream struct {
	path string
}

// NewFileStream returns a ByteStream reading and writing the file at
// path.
func NewFileStream(path string) ByteStream {
	return fileStream{path: path}
}

// Write replaces the file contents with data.
func (f fileStream) Write(data []byte) error {
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return NewErrSaveFailed(f.path, err)
	}
	return nil
}

// ReadAll returns the entire file contents.
func (f fileStream) ReadAll() ([]byte, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		return nil, NewErrLoadFailed(f.path, err)
	}
	return b, nil
}
