package expandstate

import (
	"fmt"
	"slices"

	dtcbor "github.com/datatrails/go-datatrails-common/cbor"
	"github.com/fxamacker/cbor/v2"
	"github.com/google/uuid"
)

const (
	// StateVersion is the only version of the stored record understood by
	// this package.
	StateVersion = uint8(1)
)

// State is the expanded set of one list, as persisted. Expanded holds the
// low 32 bits of the expanded group ids, sorted ascending.
type State struct {
	ListID   uuid.UUID
	Version  uint8
	Expanded []uint32
	// SavedAt is the time of the save in unix milliseconds.
	SavedAt int64
}

// stateRecord is the wire form of State. Integer keys keep the encoding
// small.
type stateRecord struct {
	Version  uint8    `cbor:"1,keyasint"`
	ListID   []byte   `cbor:"2,keyasint"`
	Expanded []uint32 `cbor:"3,keyasint"`
	SavedAt  int64    `cbor:"4,keyasint,omitempty"`
}

// Codec encodes State records with deterministic CBOR, so equal states
// always produce equal bytes.
type Codec struct {
	codec dtcbor.CBORCodec
}

func NewCodec() (Codec, error) {
	decOpts := dtcbor.NewDeterministicDecOpts()
	decOpts.DupMapKey = cbor.DupMapKeyEnforcedAPF

	codec, err := dtcbor.NewCBORCodec(dtcbor.NewDeterministicEncOpts(), decOpts)
	if err != nil {
		return Codec{}, err
	}
	return Codec{codec: codec}, nil
}

func (c Codec) Encode(s State) ([]byte, error) {
	if s.ListID == uuid.Nil {
		return nil, ErrListIDRequired
	}
	if s.Version == 0 {
		s.Version = StateVersion
	}
	if s.Version != StateVersion {
		return nil, fmt.Errorf("%w: %d", ErrStateVersion, s.Version)
	}
	if !slices.IsSorted(s.Expanded) {
		return nil, ErrStateUnsorted
	}

	rec := stateRecord{
		Version:  s.Version,
		ListID:   s.ListID[:],
		Expanded: s.Expanded,
		SavedAt:  s.SavedAt,
	}
	if rec.Expanded == nil {
		rec.Expanded = []uint32{}
	}
	return c.codec.MarshalCBOR(rec)
}

func (c Codec) Decode(data []byte) (State, error) {
	var rec stateRecord
	if err := c.codec.UnmarshalInto(data, &rec); err != nil {
		return State{}, fmt.Errorf("%w: %w", ErrStateMalformed, err)
	}
	if rec.Version != StateVersion {
		return State{}, fmt.Errorf("%w: %d", ErrStateVersion, rec.Version)
	}
	listID, err := uuid.FromBytes(rec.ListID)
	if err != nil {
		return State{}, fmt.Errorf("%w: list id: %w", ErrStateMalformed, err)
	}
	if !slices.IsSorted(rec.Expanded) {
		return State{}, ErrStateUnsorted
	}

	return State{
		ListID:   listID,
		Version:  rec.Version,
		Expanded: rec.Expanded,
		SavedAt:  rec.SavedAt,
	}, nil
}
