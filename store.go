package vecsnap

import (
	"context"

	"github.com/vecsnap/vecsnap/blobstore"
	"github.com/vecsnap/vecsnap/model"
)

// SaveToStore persists the live content of an index into a blob store
// under the given name. Codec and compression selection follow the same
// suffix rules as Save; atomicity of the final write is whatever the
// store's Put provides.
func SaveToStore(ctx context.Context, store blobstore.Store, name string, adapter IndexAdapter, optFns ...Option) error {
	o := applyOptions(optFns)
	count, err := saveToStore(ctx, store, name, adapter, o)
	o.logger.LogSave(name, count, err)
	return err
}

func saveToStore(ctx context.Context, store blobstore.Store, name string, adapter IndexAdapter, o *options) (int, error) {
	if err := validateFilename(name); err != nil {
		return 0, err
	}
	if err := validateAdapter(adapter); err != nil {
		return 0, err
	}
	if err := validateNonEmpty(adapter.Count()); err != nil {
		return 0, err
	}

	data, count, err := encodeSnapshot(adapter, name, o)
	if err != nil {
		return 0, err
	}
	if err := store.Put(ctx, name, data); err != nil {
		return 0, &IOError{Op: "put", Filename: name, cause: err}
	}
	return count, nil
}

// LoadFromStore reads a snapshot blob and reconstructs its content into a
// fresh adapter, returning the decoded metadata.
func LoadFromStore(ctx context.Context, store blobstore.Store, name string, adapter IndexAdapter, optFns ...Option) (*model.Metadata, error) {
	o := applyOptions(optFns)
	meta, count, err := loadFromStore(ctx, store, name, adapter, o)
	o.logger.LogLoad(name, count, err)
	return meta, err
}

func loadFromStore(ctx context.Context, store blobstore.Store, name string, adapter IndexAdapter, o *options) (*model.Metadata, int, error) {
	if err := validateFilename(name); err != nil {
		return nil, 0, err
	}
	if err := validateAdapter(adapter); err != nil {
		return nil, 0, err
	}

	data, err := store.Get(ctx, name)
	if err != nil {
		return nil, 0, &IOError{Op: "get", Filename: name, cause: err}
	}
	return decodeSnapshot(adapter, name, data, o)
}
