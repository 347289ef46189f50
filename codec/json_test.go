package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vecsnap/vecsnap/model"
)

func TestJSONRoundTrip(t *testing.T) {
	snap := basisSnapshot()
	snap.Meta.Space = model.SpaceCosine

	data, err := JSON{}.Encode(snap)
	require.NoError(t, err)

	got, err := JSON{}.Decode(data)
	require.NoError(t, err)

	assert.Equal(t, snap.Version, got.Version)
	assert.Equal(t, snap.Meta, got.Meta)
	assert.Equal(t, snap.Records, got.Records)
}

func TestJSONEncodeDocumentShape(t *testing.T) {
	data, err := JSON{}.Encode(basisSnapshot())
	require.NoError(t, err)

	s := string(data)
	for _, key := range []string{
		`"version"`, `"spaceName"`, `"numDimensions"`, `"maxElements"`,
		`"m"`, `"efConstruction"`, `"randomSeed"`, `"numVectors"`,
		`"vectors"`, `"label"`, `"point"`,
	} {
		assert.Contains(t, s, key)
	}
	assert.Contains(t, s, `"numVectors": 3`)
	assert.Contains(t, s, `"spaceName": "l2"`)
}

func TestJSONDecodeDefaults(t *testing.T) {
	doc := `{
		"spaceName": "ip",
		"numDimensions": 2,
		"vectors": [{"label": 5, "point": [0.5, -0.5]}]
	}`

	got, err := JSON{}.Decode([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, uint8(1), got.Version)
	assert.Equal(t, model.SpaceInnerProduct, got.Meta.Space)
	assert.Equal(t, uint32(model.DefaultMaxElements), got.Meta.MaxElements)
	assert.Equal(t, uint32(model.DefaultM), got.Meta.M)
	assert.Equal(t, uint32(model.DefaultEFConstruction), got.Meta.EFConstruction)
	assert.Equal(t, uint32(model.DefaultRandomSeed), got.Meta.RandomSeed)
	require.Len(t, got.Records, 1)
	assert.Equal(t, uint32(5), got.Records[0].Label)
}

func TestJSONDecodeFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "not json",
			doc:  `{"version": `,
			want: "malformed",
		},
		{
			name: "vectors missing",
			doc:  `{"spaceName": "l2", "numDimensions": 2}`,
			want: "missing vectors",
		},
		{
			name: "vectors not a sequence",
			doc:  `{"spaceName": "l2", "numDimensions": 2, "vectors": {"label": 1}}`,
			want: "malformed",
		},
		{
			name: "numDimensions missing",
			doc:  `{"spaceName": "l2", "vectors": []}`,
			want: "missing numDimensions",
		},
		{
			name: "numDimensions zero",
			doc:  `{"spaceName": "l2", "numDimensions": 0, "vectors": []}`,
			want: "out of range",
		},
		{
			name: "numDimensions negative",
			doc:  `{"spaceName": "l2", "numDimensions": -3, "vectors": []}`,
			want: "out of range",
		},
		{
			name: "numDimensions non-numeric",
			doc:  `{"spaceName": "l2", "numDimensions": "three", "vectors": []}`,
			want: "malformed",
		},
		{
			name: "unknown space name",
			doc:  `{"spaceName": "euclidean", "numDimensions": 2, "vectors": []}`,
			want: "unknown space kind",
		},
		{
			name: "unsupported version",
			doc:  `{"version": 2, "spaceName": "l2", "numDimensions": 2, "vectors": []}`,
			want: "unsupported version",
		},
		{
			name: "numVectors count mismatch",
			doc:  `{"spaceName": "l2", "numDimensions": 1, "numVectors": 2, "vectors": [{"label": 0, "point": [1]}]}`,
			want: "does not match",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := JSON{}.Decode([]byte(tt.doc))

			var fe *FormatError
			require.ErrorAs(t, err, &fe)
			assert.Contains(t, fe.Error(), tt.want)
		})
	}
}

func TestJSONDecodeDataErrors(t *testing.T) {
	tests := []struct {
		name   string
		doc    string
		record int
	}{
		{
			name:   "non-numeric label",
			doc:    `{"spaceName": "l2", "numDimensions": 1, "vectors": [{"label": "a", "point": [1]}]}`,
			record: 0,
		},
		{
			name:   "missing label",
			doc:    `{"spaceName": "l2", "numDimensions": 1, "vectors": [{"point": [1]}]}`,
			record: 0,
		},
		{
			name:   "fractional label",
			doc:    `{"spaceName": "l2", "numDimensions": 1, "vectors": [{"label": 1.5, "point": [1]}]}`,
			record: 0,
		},
		{
			name:   "negative label",
			doc:    `{"spaceName": "l2", "numDimensions": 1, "vectors": [{"label": -1, "point": [1]}]}`,
			record: 0,
		},
		{
			name:   "point too short",
			doc:    `{"spaceName": "l2", "numDimensions": 3, "vectors": [{"label": 0, "point": [1, 2, 3]}, {"label": 1, "point": [1]}]}`,
			record: 1,
		},
		{
			name:   "point missing",
			doc:    `{"spaceName": "l2", "numDimensions": 1, "vectors": [{"label": 0}]}`,
			record: 0,
		},
		{
			name:   "point not a sequence",
			doc:    `{"spaceName": "l2", "numDimensions": 1, "vectors": [{"label": 0, "point": 1}]}`,
			record: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := JSON{}.Decode([]byte(tt.doc))

			var de *DataError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.record, de.Record)
		})
	}
}

func TestJSONDecodeEmptyVectors(t *testing.T) {
	got, err := JSON{}.Decode([]byte(`{"spaceName": "cosine", "numDimensions": 4, "vectors": []}`))
	require.NoError(t, err)
	assert.Empty(t, got.Records)
	assert.Equal(t, model.SpaceCosine, got.Meta.Space)
}
