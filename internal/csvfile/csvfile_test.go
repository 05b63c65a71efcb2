package csvfile

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/biobank/pkg/types"
)

const sampleHeader = "sample_id;sample_type;sprec_code;collection_type;pre_ct;post_ct;storage_temp;biobank_id;person_id\n"

func sample(t *testing.T, fields map[string]string) types.Record {
	t.Helper()
	rec, err := types.ParseRecord(types.KindSample, fields)
	require.NoError(t, err)
	return rec
}

func TestEncodeEmptyTableWritesHeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, types.KindSample, nil))
	assert.Equal(t, sampleHeader, buf.String())
}

func TestEncodeRowsInOrder(t *testing.T) {
	recs := []types.Record{
		sample(t, map[string]string{"sample_id": "1", "sprec_code": "BLD-SST", "biobank_id": "7"}),
		sample(t, map[string]string{"sample_id": "2", "storage_temp": "-80C", "person_id": "42"}),
	}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, types.KindSample, recs))

	want := sampleHeader +
		"1;;BLD-SST;;;;;7;\n" +
		"2;;;;;;-80C;;42\n"
	assert.Equal(t, want, buf.String())
}

func TestEncodeQuotesSeparator(t *testing.T) {
	recs := []types.Record{
		sample(t, map[string]string{"sample_id": "1", "sample_type": "serum;plasma"}),
	}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, types.KindSample, recs))
	assert.Contains(t, buf.String(), `1;"serum;plasma";`)

	got, err := Decode(&buf, types.KindSample)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Equal(recs[0]))
}

func TestEncodeRejectsForeignRecord(t *testing.T) {
	person, err := types.NewRecord(types.KindPerson, nil)
	require.NoError(t, err)
	err = Encode(&bytes.Buffer{}, types.KindSample, []types.Record{person})
	assert.ErrorIs(t, err, types.ErrKindMismatch)
}

func TestEncodeIsDeterministic(t *testing.T) {
	recs := []types.Record{
		sample(t, map[string]string{"sample_id": "1", "pre_ct": "A", "post_ct": "\"quoted\""}),
	}
	var a, b bytes.Buffer
	require.NoError(t, Encode(&a, types.KindSample, recs))
	require.NoError(t, Encode(&b, types.KindSample, recs))
	assert.Equal(t, a.Bytes(), b.Bytes())
}

func TestDecodeRoundTrip(t *testing.T) {
	recs := []types.Record{
		sample(t, map[string]string{"sample_id": "1", "sprec_code": "BLD-SST", "biobank_id": "7"}),
		sample(t, map[string]string{"sample_id": "1", "sprec_code": "duplicate key is kept"}),
		sample(t, map[string]string{}),
	}
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, types.KindSample, recs))

	got, err := Decode(&buf, types.KindSample)
	require.NoError(t, err)
	require.Len(t, got, len(recs))
	for i := range recs {
		assert.True(t, got[i].Equal(recs[i]), "row %d differs", i)
	}
}

func TestLineBreaksRoundTrip(t *testing.T) {
	for _, text := range []string{"a\r\nb", "a\nb", "a\rb", "x\r\n\r\ny"} {
		rec := sample(t, map[string]string{"sample_id": "1", "storage_temp": text})
		var buf bytes.Buffer
		require.NoError(t, Encode(&buf, types.KindSample, []types.Record{rec}))

		got, err := Decode(&buf, types.KindSample)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.True(t, got[0].Equal(rec), "%q did not survive a round trip", text)
	}
}

func TestDecodeHeaderOnly(t *testing.T) {
	got, err := Decode(strings.NewReader(sampleHeader), types.KindSample)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDecodeAcceptsIntegralDecimals(t *testing.T) {
	in := sampleHeader + "3.0;;;;;;;12.0;\n"
	got, err := Decode(strings.NewReader(in), types.KindSample)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"3", "", "", "", "", "", "", "12", ""}, got[0].Strings())
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantHeader bool
		wantSub    string
	}{
		{
			name:    "empty file",
			input:   "",
			wantSub: "missing header",
		},
		{
			name:       "header omits a field",
			input:      "sample_id;sample_type;sprec_code;collection_type;pre_ct;post_ct;storage_temp;biobank_id\n",
			wantHeader: true,
		},
		{
			name:       "header out of order",
			input:      "sample_type;sample_id;sprec_code;collection_type;pre_ct;post_ct;storage_temp;biobank_id;person_id\n",
			wantHeader: true,
		},
		{
			name:       "comma separated",
			input:      strings.ReplaceAll(sampleHeader, ";", ","),
			wantHeader: true,
		},
		{
			name:    "short row",
			input:   sampleHeader + "1;x\n",
			wantSub: "line 2 has 2 columns",
		},
		{
			name:    "text in integer column",
			input:   sampleHeader + "one;;;;;;;;\n",
			wantSub: "line 2, sample_id",
		},
		{
			name:    "unterminated quote",
			input:   sampleHeader + "1;\"open;;;;;;;\n",
			wantSub: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input), types.KindSample)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrFormat)
			if tt.wantHeader {
				assert.ErrorIs(t, err, types.ErrHeaderMismatch)
			}
			if tt.wantSub != "" {
				assert.Contains(t, err.Error(), tt.wantSub)
			}
		})
	}
}

func TestUnknownKind(t *testing.T) {
	_, err := Decode(strings.NewReader(sampleHeader), "visit")
	assert.ErrorIs(t, err, types.ErrUnknownKind)
	assert.ErrorIs(t, Encode(&bytes.Buffer{}, "visit", nil), types.ErrUnknownKind)
}
