package vecsnap

import (
	"bufio"
	"os"
	"path/filepath"

	"github.com/vecsnap/vecsnap/codec"
	"github.com/vecsnap/vecsnap/model"
)

// Save persists the live content of an index to a file.
//
// The codec is selected by the destination suffix: ".bin" and ".dat"
// produce the binary format, everything else the JSON text format. An
// additional ".zst" or ".lz4" suffix compresses the encoded bytes.
//
// The encoded byte sequence is fully materialized in memory before any
// write is attempted, so an encode failure never leaves a partially
// written destination. The write itself goes through a temp file and
// rename in the destination directory.
func Save(adapter IndexAdapter, filename string, optFns ...Option) error {
	o := applyOptions(optFns)
	count, err := save(adapter, filename, o)
	o.logger.LogSave(filename, count, err)
	return err
}

func save(adapter IndexAdapter, filename string, o *options) (int, error) {
	if err := validateFilename(filename); err != nil {
		return 0, err
	}
	if err := validateAdapter(adapter); err != nil {
		return 0, err
	}
	if err := validateNonEmpty(adapter.Count()); err != nil {
		return 0, err
	}

	data, count, err := encodeSnapshot(adapter, filename, o)
	if err != nil {
		return 0, err
	}
	if err := writeFileAtomic(filename, data); err != nil {
		return 0, err
	}
	return count, nil
}

// Load reads a snapshot file and reconstructs its content into a fresh
// adapter: one Init call with the decoded construction parameters, then
// one insertion per record in file order. It returns the decoded metadata.
func Load(adapter IndexAdapter, filename string, optFns ...Option) (*model.Metadata, error) {
	o := applyOptions(optFns)
	meta, count, err := load(adapter, filename, o)
	o.logger.LogLoad(filename, count, err)
	return meta, err
}

func load(adapter IndexAdapter, filename string, o *options) (*model.Metadata, int, error) {
	if err := validateFilename(filename); err != nil {
		return nil, 0, err
	}
	if err := validateAdapter(adapter); err != nil {
		return nil, 0, err
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, 0, &IOError{Op: "read", Filename: filename, cause: err}
	}
	return decodeSnapshot(adapter, filename, data, o)
}

// encodeSnapshot runs the save-side pipeline shared by the file and blob
// store entry points: extract, resolve metadata, encode, compress.
func encodeSnapshot(adapter IndexAdapter, filename string, o *options) ([]byte, int, error) {
	records, err := Extract(adapter)
	if err != nil {
		return nil, 0, err
	}

	snap := &model.Snapshot{
		Version: model.FormatVersion,
		Meta:    resolveMetadata(adapter, o),
		Records: records,
	}
	if err := snap.Validate(); err != nil {
		return nil, 0, &ValidationError{Msg: err.Error()}
	}

	c := o.codec
	if c == nil {
		c = codec.ForFilename(filename)
	}
	data, err := c.Encode(snap)
	if err != nil {
		return nil, 0, err
	}
	data, err = codec.CompressForFilename(filename, data)
	if err != nil {
		return nil, 0, &IOError{Op: "compress", Filename: filename, cause: err}
	}
	return data, len(records), nil
}

// decodeSnapshot runs the load-side pipeline shared by the file and blob
// store entry points: decompress, decode, rehydrate.
func decodeSnapshot(adapter IndexAdapter, filename string, data []byte, o *options) (*model.Metadata, int, error) {
	data, err := codec.DecompressForFilename(filename, data)
	if err != nil {
		return nil, 0, &IOError{Op: "decompress", Filename: filename, cause: err}
	}

	c := o.codec
	if c == nil {
		c = codec.ForFilename(filename)
	}
	snap, err := c.Decode(data)
	if err != nil {
		return nil, 0, err
	}
	if err := Rehydrate(adapter, snap.Meta, snap.Records); err != nil {
		return nil, 0, err
	}

	meta := snap.Meta
	return &meta, len(snap.Records), nil
}

// writeFileAtomic writes data to a temp file in the destination directory
// and renames it into place, so readers never observe a half-written file.
func writeFileAtomic(filename string, data []byte) error {
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return &IOError{Op: "create", Filename: filename, cause: err}
	}
	tmpName := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}()

	_ = tmp.Chmod(0644)

	buf := bufio.NewWriterSize(tmp, 256*1024)
	if _, err := buf.Write(data); err != nil {
		return &IOError{Op: "write", Filename: filename, cause: err}
	}
	if err := buf.Flush(); err != nil {
		return &IOError{Op: "write", Filename: filename, cause: err}
	}
	if err := tmp.Sync(); err != nil {
		return &IOError{Op: "sync", Filename: filename, cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &IOError{Op: "close", Filename: filename, cause: err}
	}

	if err := os.Rename(tmpName, filename); err != nil {
		return &IOError{Op: "rename", Filename: filename, cause: err}
	}

	// Best-effort: fsync the directory so the rename is durable on POSIX.
	if d, err := os.Open(dir); err == nil {
		_ = d.Sync()
		_ = d.Close()
	}

	// Success: prevent deferred cleanup from removing the final file.
	tmpName = ""
	return nil
}
