// codec.go: DEFLATE compression collaborator
//
// Copyright (c) 2026 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package mnemo

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zlib"
)

// zlibCodec is the default Codec: single-shot DEFLATE (zlib framing,
// so corrupt input is detected by the checksum) over a byte buffer.
type zlibCodec struct{}

// Compress returns the DEFLATE-compressed form of data.
func (zlibCodec) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return nil, NewErrSaveFailed("deflate", err)
	}
	if err := w.Close(); err != nil {
		return nil, NewErrSaveFailed("deflate", err)
	}
	return buf.Bytes(), nil
}

// Decompress inflates data. Corrupt or truncated input surfaces
// MNEMO_CORRUPTED_PACK rather than a crash.
func (zlibCodec) Decompress(data []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, NewErrCorruptedPack(err)
	}
	defer func() { _ = r.Close() }()

	out, err := io.ReadAll(r)
	if err != nil {
		return nil, NewErrCorruptedPack(err)
	}
	return out, nil
}
