package vecsnap

import (
	"github.com/vecsnap/vecsnap/codec"
	"github.com/vecsnap/vecsnap/model"
)

type options struct {
	logger *Logger
	codec  codec.Codec

	space          model.SpaceKind
	maxElements    uint32
	m              uint32
	efConstruction uint32
	randomSeed     uint32
}

// Option configures a single save or load call.
type Option func(*options)

func applyOptions(optFns []Option) *options {
	o := &options{space: model.SpaceL2}
	for _, fn := range optFns {
		fn(o)
	}
	if o.logger == nil {
		o.logger = Default()
	}
	return o
}

// WithLogger sets an explicit logger for this call instead of the
// process-wide default.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithCodec overrides the filename-based codec selection.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithSpaceKind records the space kind the index was built for. The
// adapter cannot report it, so it defaults to L2 when not supplied.
func WithSpaceKind(space model.SpaceKind) Option {
	return func(o *options) {
		o.space = space
	}
}

// WithMaxElements overrides the max-elements value written to the
// snapshot. When unset, the adapter's reported capacity is used.
func WithMaxElements(maxElements uint32) Option {
	return func(o *options) {
		o.maxElements = maxElements
	}
}

// WithM overrides the graph connectivity parameter written to the
// snapshot (default 16).
func WithM(m uint32) Option {
	return func(o *options) {
		o.m = m
	}
}

// WithEFConstruction overrides the construction quality parameter written
// to the snapshot (default 200).
func WithEFConstruction(ef uint32) Option {
	return func(o *options) {
		o.efConstruction = ef
	}
}

// WithRandomSeed overrides the level-generator seed written to the
// snapshot (default 100).
func WithRandomSeed(seed uint32) Option {
	return func(o *options) {
		o.randomSeed = seed
	}
}

// resolveMetadata builds snapshot metadata from caller overrides, falling
// back to adapter-reported values and finally the package defaults.
func resolveMetadata(adapter IndexAdapter, o *options) model.Metadata {
	meta := model.Metadata{
		Space:          o.space,
		Dimension:      adapter.Dimension(),
		MaxElements:    o.maxElements,
		M:              o.m,
		EFConstruction: o.efConstruction,
		RandomSeed:     o.randomSeed,
	}
	if meta.MaxElements == 0 {
		meta.MaxElements = adapter.MaxCapacity()
	}
	if meta.MaxElements == 0 {
		meta.MaxElements = model.DefaultMaxElements
	}
	if meta.M == 0 {
		meta.M = model.DefaultM
	}
	if meta.EFConstruction == 0 {
		meta.EFConstruction = model.DefaultEFConstruction
	}
	if meta.RandomSeed == 0 {
		meta.RandomSeed = model.DefaultRandomSeed
	}
	return meta
}
