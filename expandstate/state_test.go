package expandstate

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testListID = uuid.MustParse("6f1d2a4e-57c3-4d1b-9a0e-3f5b7c9d1e2f")

func newTestCodec(t *testing.T) Codec {
	t.Helper()
	codec, err := NewCodec()
	require.NoError(t, err)
	return codec
}

func TestCodecRoundTrip(t *testing.T) {
	codec := newTestCodec(t)

	tests := []struct {
		name  string
		state State
	}{
		{"empty", State{ListID: testListID}},
		{"some", State{ListID: testListID, Expanded: []uint32{1, 5, 9}, SavedAt: 1698342521000}},
		{"duplicates", State{ListID: testListID, Expanded: []uint32{3, 3, 0xffffffff}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := codec.Encode(tt.state)
			require.NoError(t, err)

			got, err := codec.Decode(data)
			require.NoError(t, err)
			assert.Equal(t, tt.state.ListID, got.ListID)
			assert.Equal(t, StateVersion, got.Version)
			assert.Equal(t, tt.state.SavedAt, got.SavedAt)
			if len(tt.state.Expanded) == 0 {
				assert.Empty(t, got.Expanded)
			} else {
				assert.Equal(t, tt.state.Expanded, got.Expanded)
			}
		})
	}
}

func TestCodecDeterministic(t *testing.T) {
	codec := newTestCodec(t)
	s := State{ListID: testListID, Expanded: []uint32{2, 4}, SavedAt: 7}

	a, err := codec.Encode(s)
	require.NoError(t, err)
	b, err := codec.Encode(s)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestCodecEncodeRejects(t *testing.T) {
	codec := newTestCodec(t)

	_, err := codec.Encode(State{Expanded: []uint32{1}})
	assert.ErrorIs(t, err, ErrListIDRequired)

	_, err = codec.Encode(State{ListID: testListID, Expanded: []uint32{3, 1}})
	assert.ErrorIs(t, err, ErrStateUnsorted)

	_, err = codec.Encode(State{ListID: testListID, Version: 2})
	assert.ErrorIs(t, err, ErrStateVersion)
}

func TestCodecDecodeRejects(t *testing.T) {
	codec := newTestCodec(t)

	encode := func(rec stateRecord) []byte {
		data, err := cbor.Marshal(rec)
		require.NoError(t, err)
		return data
	}

	tests := []struct {
		name string
		data []byte
		err  error
	}{
		{"garbage", []byte{0xff, 0x00, 0x13}, ErrStateMalformed},
		{"truncated", encode(stateRecord{Version: 1, ListID: testListID[:]})[:5], ErrStateMalformed},
		{"future version", encode(stateRecord{Version: 2, ListID: testListID[:]}), ErrStateVersion},
		{"short list id", encode(stateRecord{Version: 1, ListID: []byte{1, 2, 3}}), ErrStateMalformed},
		{"unsorted", encode(stateRecord{Version: 1, ListID: testListID[:], Expanded: []uint32{9, 2}}), ErrStateUnsorted},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := codec.Decode(tt.data)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}
