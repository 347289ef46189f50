package codec

import (
	"math"

	gojson "github.com/goccy/go-json"

	"github.com/vecsnap/vecsnap/model"
)

const jsonName = "json"

// textDocument is the self-describing text form of a snapshot.
type textDocument struct {
	Version        uint8        `json:"version"`
	SpaceName      string       `json:"spaceName"`
	NumDimensions  uint32       `json:"numDimensions"`
	MaxElements    uint32       `json:"maxElements"`
	M              uint32       `json:"m"`
	EFConstruction uint32       `json:"efConstruction"`
	RandomSeed     uint32       `json:"randomSeed"`
	NumVectors     int          `json:"numVectors"`
	Vectors        []textVector `json:"vectors"`
}

type textVector struct {
	Label uint32    `json:"label"`
	Point []float32 `json:"point"`
}

// looseDocument is the decode-side counterpart of textDocument. Optional
// fields are pointers so absence is distinguishable from a zero value, and
// vector entries stay raw so a bad entry can be reported with its record
// index instead of as a whole-document parse failure.
type looseDocument struct {
	Version        *int64              `json:"version"`
	SpaceName      *string             `json:"spaceName"`
	NumDimensions  *int64              `json:"numDimensions"`
	MaxElements    *uint32             `json:"maxElements"`
	M              *uint32             `json:"m"`
	EFConstruction *uint32             `json:"efConstruction"`
	RandomSeed     *uint32             `json:"randomSeed"`
	NumVectors     *int64              `json:"numVectors"`
	Vectors        []gojson.RawMessage `json:"vectors"`
	hasVectors     bool
}

func (d *looseDocument) UnmarshalJSON(data []byte) error {
	type alias looseDocument
	var a alias
	if err := gojson.Unmarshal(data, &a); err != nil {
		return err
	}
	// Distinguish an absent "vectors" key from an empty list.
	var probe struct {
		Vectors gojson.RawMessage `json:"vectors"`
	}
	if err := gojson.Unmarshal(data, &probe); err != nil {
		return err
	}
	*d = looseDocument(a)
	d.hasVectors = probe.Vectors != nil && string(probe.Vectors) != "null"
	return nil
}

// JSON is the human-readable text snapshot codec, backed by
// github.com/goccy/go-json.
//
// Unlike the binary codec it is strict about the space kind: a document
// whose spaceName is not "l2", "ip" or "cosine" fails to decode.
type JSON struct{}

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return jsonName }

// Encode serializes the snapshot as an indented JSON document. The
// indentation is presentation only; Decode accepts any whitespace.
func (JSON) Encode(snap *model.Snapshot) ([]byte, error) {
	doc := textDocument{
		Version:        snap.Version,
		SpaceName:      snap.Meta.Space.String(),
		NumDimensions:  snap.Meta.Dimension,
		MaxElements:    snap.Meta.MaxElements,
		M:              snap.Meta.M,
		EFConstruction: snap.Meta.EFConstruction,
		RandomSeed:     snap.Meta.RandomSeed,
		NumVectors:     len(snap.Records),
		Vectors:        make([]textVector, 0, len(snap.Records)),
	}
	for _, rec := range snap.Records {
		doc.Vectors = append(doc.Vectors, textVector{Label: rec.Label, Point: rec.Point})
	}

	data, err := gojson.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, &FormatError{Codec: jsonName, Offset: -1, Msg: "marshal failed", cause: err}
	}
	return data, nil
}

// Decode parses the document and applies the validation rules in order:
// parseability, presence and shape of vectors, numDimensions, spaceName,
// then per-record label and point checks. Optional metadata fields fall
// back to the package defaults.
func (JSON) Decode(data []byte) (*model.Snapshot, error) {
	var doc looseDocument
	if err := gojson.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Codec: jsonName, Offset: -1, Msg: "malformed document", cause: err}
	}

	version := uint8(model.FormatVersion)
	if doc.Version != nil {
		if *doc.Version != model.FormatVersion {
			return nil, formatErr(jsonName, -1, "unsupported version %d", *doc.Version)
		}
		version = uint8(*doc.Version)
	}

	if !doc.hasVectors {
		return nil, formatErr(jsonName, -1, "missing vectors")
	}
	if doc.NumDimensions == nil {
		return nil, formatErr(jsonName, -1, "missing numDimensions")
	}
	dim := *doc.NumDimensions
	if dim <= 0 || dim > model.MaxDimension {
		return nil, formatErr(jsonName, -1, "numDimensions %d out of range (0, %d]", dim, model.MaxDimension)
	}
	if doc.SpaceName == nil {
		return nil, formatErr(jsonName, -1, "missing spaceName")
	}
	space, err := model.ParseSpaceKind(*doc.SpaceName)
	if err != nil {
		return nil, &FormatError{Codec: jsonName, Offset: -1, Msg: err.Error(), cause: err}
	}
	if len(doc.Vectors) > model.MaxVectors {
		return nil, formatErr(jsonName, -1, "vector count %d exceeds limit %d", len(doc.Vectors), model.MaxVectors)
	}
	if doc.NumVectors != nil && *doc.NumVectors != int64(len(doc.Vectors)) {
		return nil, formatErr(jsonName, -1, "numVectors %d does not match %d vectors", *doc.NumVectors, len(doc.Vectors))
	}

	meta := model.Metadata{
		Space:          space,
		Dimension:      uint32(dim),
		MaxElements:    model.DefaultMaxElements,
		M:              model.DefaultM,
		EFConstruction: model.DefaultEFConstruction,
		RandomSeed:     model.DefaultRandomSeed,
	}
	if doc.MaxElements != nil {
		meta.MaxElements = *doc.MaxElements
	}
	if doc.M != nil {
		meta.M = *doc.M
	}
	if doc.EFConstruction != nil {
		meta.EFConstruction = *doc.EFConstruction
	}
	if doc.RandomSeed != nil {
		meta.RandomSeed = *doc.RandomSeed
	}

	records := make([]model.VectorRecord, 0, len(doc.Vectors))
	for i, raw := range doc.Vectors {
		var entry struct {
			Label *float64   `json:"label"`
			Point *[]float32 `json:"point"`
		}
		if err := gojson.Unmarshal(raw, &entry); err != nil {
			return nil, &DataError{Codec: jsonName, Record: i, Dim: -1, Msg: "invalid record", cause: err}
		}
		if entry.Label == nil || *entry.Label < 0 || *entry.Label > math.MaxUint32 || *entry.Label != math.Trunc(*entry.Label) {
			return nil, dataErr(jsonName, i, -1, "invalid label")
		}
		if entry.Point == nil || int64(len(*entry.Point)) != dim {
			got := 0
			if entry.Point != nil {
				got = len(*entry.Point)
			}
			return nil, dataErr(jsonName, i, -1, "point length %d != numDimensions %d", got, dim)
		}
		records = append(records, model.VectorRecord{Label: uint32(*entry.Label), Point: *entry.Point})
	}

	return &model.Snapshot{Version: version, Meta: meta, Records: records}, nil
}
