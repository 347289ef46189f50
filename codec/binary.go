package codec

import (
	"encoding/binary"
	"math"

	"github.com/vecsnap/vecsnap/model"
)

// Binary file layout (all little-endian):
//
//	offset  size  field
//	0       1     formatVersion
//	1       1     spaceKindCode (0=l2, 1=ip, 2=cosine)
//	2       4     numDimensions (u32)
//	6       4     maxElements (u32)
//	10      4     m (u32)
//	14      4     efConstruction (u32)
//	18      4     randomSeed (u32)
//	22      4     numVectors (u32)
//	26      14    reserved, zero on encode, ignored on decode
//
// followed by numVectors records, each a 4-byte label and
// numDimensions 4-byte float32 components.
const (
	headerSize = 40

	offVersion        = 0
	offSpaceCode      = 1
	offDimension      = 2
	offMaxElements    = 6
	offM              = 10
	offEFConstruction = 14
	offRandomSeed     = 18
	offNumVectors     = 22
)

const binaryName = "binary"

// Binary is the fixed-layout binary snapshot codec.
//
// Note the space-kind leniency: an unknown SpaceKind encodes as the L2
// code, and an out-of-range code decodes to L2. This mirrors the text
// codec's strict name check asymmetrically and is kept for compatibility
// with existing files; see model.SpaceKindFromCode.
type Binary struct{}

// Name returns the unique name of the codec ("binary").
func (Binary) Name() string { return binaryName }

// Encode materializes the complete byte sequence in memory. Every record
// is checked before any byte is produced: a point whose length differs
// from the metadata dimension or that carries a non-finite component
// fails with a DataError, so a partial buffer never exists.
func (Binary) Encode(snap *model.Snapshot) ([]byte, error) {
	dim := int(snap.Meta.Dimension)

	for i, rec := range snap.Records {
		if len(rec.Point) != dim {
			return nil, dataErr(binaryName, i, -1,
				"point length %d != dimension %d (label %d)", len(rec.Point), dim, rec.Label)
		}
		for d, v := range rec.Point {
			if f := float64(v); math.IsNaN(f) || math.IsInf(f, 0) {
				return nil, dataErr(binaryName, i, d,
					"non-finite component (label %d)", rec.Label)
			}
		}
	}

	recordSize := 4 + 4*dim
	buf := make([]byte, headerSize+len(snap.Records)*recordSize)

	buf[offVersion] = model.FormatVersion
	buf[offSpaceCode] = snap.Meta.Space.Code()
	binary.LittleEndian.PutUint32(buf[offDimension:], snap.Meta.Dimension)
	binary.LittleEndian.PutUint32(buf[offMaxElements:], snap.Meta.MaxElements)
	binary.LittleEndian.PutUint32(buf[offM:], snap.Meta.M)
	binary.LittleEndian.PutUint32(buf[offEFConstruction:], snap.Meta.EFConstruction)
	binary.LittleEndian.PutUint32(buf[offRandomSeed:], snap.Meta.RandomSeed)
	binary.LittleEndian.PutUint32(buf[offNumVectors:], uint32(len(snap.Records)))
	// Reserved bytes 26..39 stay zero.

	off := headerSize
	for _, rec := range snap.Records {
		binary.LittleEndian.PutUint32(buf[off:], rec.Label)
		off += 4
		for _, v := range rec.Point {
			binary.LittleEndian.PutUint32(buf[off:], math.Float32bits(v))
			off += 4
		}
	}

	return buf, nil
}

// Decode parses and fully validates the byte stream. Every read goes
// through a bounds-tracking cursor, so truncated or corrupted input fails
// with a FormatError instead of an out-of-range access.
func (Binary) Decode(data []byte) (*model.Snapshot, error) {
	if len(data) < headerSize {
		return nil, formatErr(binaryName, 0, "too small: %d bytes, header needs %d", len(data), headerSize)
	}

	version := data[offVersion]
	if version != model.FormatVersion {
		return nil, formatErr(binaryName, offVersion, "unsupported version %d", version)
	}
	space := model.SpaceKindFromCode(data[offSpaceCode])

	cur := newCursor(data, offDimension)
	if cur.remaining() < headerSize-offDimension {
		return nil, formatErr(binaryName, offDimension, "truncated header")
	}
	dim, _ := cur.uint32()
	maxElements, _ := cur.uint32()
	m, _ := cur.uint32()
	efConstruction, _ := cur.uint32()
	randomSeed, _ := cur.uint32()
	numVectors, _ := cur.uint32()

	if dim == 0 || dim > model.MaxDimension {
		return nil, formatErr(binaryName, offDimension, "dimension %d out of range (0, %d]", dim, model.MaxDimension)
	}
	if numVectors > model.MaxVectors {
		return nil, formatErr(binaryName, offNumVectors, "vector count %d exceeds limit %d", numVectors, model.MaxVectors)
	}

	expected := int64(headerSize) + int64(numVectors)*int64(4+4*dim)
	if int64(len(data)) < expected {
		return nil, formatErr(binaryName, int64(len(data)), "size mismatch: have %d bytes, need %d", len(data), expected)
	}

	cur.seek(headerSize)
	records := make([]model.VectorRecord, 0, numVectors)
	for i := uint32(0); i < numVectors; i++ {
		label, ok := cur.uint32()
		if !ok {
			return nil, formatErr(binaryName, cur.offset(), "unexpected end of file reading label of record %d", i)
		}
		point := make([]float32, dim)
		for d := uint32(0); d < dim; d++ {
			bits, ok := cur.uint32()
			if !ok {
				return nil, formatErr(binaryName, cur.offset(), "unexpected end of file reading record %d dim %d", i, d)
			}
			point[d] = math.Float32frombits(bits)
		}
		records = append(records, model.VectorRecord{Label: label, Point: point})
	}

	return &model.Snapshot{
		Version: version,
		Meta: model.Metadata{
			Space:          space,
			Dimension:      dim,
			MaxElements:    maxElements,
			M:              m,
			EFConstruction: efConstruction,
			RandomSeed:     randomSeed,
		},
		Records: records,
	}, nil
}

// cursor tracks a read offset against the total buffer length so that
// every read is bounds-checked in one place instead of inline at each
// call site.
type cursor struct {
	data []byte
	off  int
}

func newCursor(data []byte, off int) *cursor {
	return &cursor{data: data, off: off}
}

func (c *cursor) remaining() int { return len(c.data) - c.off }

func (c *cursor) offset() int64 { return int64(c.off) }

func (c *cursor) seek(off int) { c.off = off }

func (c *cursor) uint32() (uint32, bool) {
	if c.remaining() < 4 {
		return 0, false
	}
	v := binary.LittleEndian.Uint32(c.data[c.off:])
	c.off += 4
	return v, true
}
