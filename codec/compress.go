package codec

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression suffixes recognized on snapshot filenames. They stack on top
// of the codec suffix ("index.bin.zst" is a zstd-framed binary snapshot).
const (
	ExtZstd = ".zst"
	ExtLZ4  = ".lz4"
)

// StripCompression removes a trailing compression suffix, if any, so the
// codec suffix underneath can be inspected.
func StripCompression(name string) string {
	switch strings.ToLower(filepath.Ext(name)) {
	case ExtZstd, ExtLZ4:
		return strings.TrimSuffix(name, filepath.Ext(name))
	default:
		return name
	}
}

// CompressForFilename wraps encoded bytes in the compression framing the
// filename asks for. Names without a compression suffix pass through
// untouched.
func CompressForFilename(name string, data []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ExtZstd:
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd encoder: %w", err)
		}
		defer enc.Close()
		return enc.EncodeAll(data, nil), nil
	case ExtLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("lz4 compress: %w", err)
		}
		return buf.Bytes(), nil
	default:
		return data, nil
	}
}

// DecompressForFilename reverses CompressForFilename based on the same
// suffix convention.
func DecompressForFilename(name string, data []byte) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ExtZstd:
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decoder: %w", err)
		}
		defer dec.Close()
		out, err := dec.DecodeAll(data, nil)
		if err != nil {
			return nil, fmt.Errorf("zstd decompress: %w", err)
		}
		return out, nil
	case ExtLZ4:
		out, err := io.ReadAll(lz4.NewReader(bytes.NewReader(data)))
		if err != nil {
			return nil, fmt.Errorf("lz4 decompress: %w", err)
		}
		return out, nil
	default:
		return data, nil
	}
}
