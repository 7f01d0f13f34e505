// Package payload wraps the serialized body of a bus message: immutable
// bytes plus a format tag telling the receiver how to decode them. The bus
// core treats the bytes as opaque.
package payload

import (
	"encoding/json"
	"fmt"

	cbor "github.com/fxamacker/cbor/v2"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
)

// Format tags the serialization of the payload bytes.
type Format int

const (
	FormatUnspecified Format = iota
	FormatProtobufWrappedInAny
	FormatProtobuf
	FormatJSON
	FormatSomeIP
	FormatSomeIPTLV
	FormatRaw
	FormatText
	FormatCBOR
)

func (f Format) String() string {
	switch f {
	case FormatProtobufWrappedInAny:
		return "protobuf-any"
	case FormatProtobuf:
		return "protobuf"
	case FormatJSON:
		return "json"
	case FormatSomeIP:
		return "someip"
	case FormatSomeIPTLV:
		return "someip-tlv"
	case FormatRaw:
		return "raw"
	case FormatText:
		return "text"
	case FormatCBOR:
		return "cbor"
	default:
		return "unspecified"
	}
}

// Payload is an immutable byte body with a format tag. The zero value is an
// empty payload with FormatUnspecified.
type Payload struct {
	data   []byte
	format Format
}

// FromBytes copies b into a payload with the given format.
func FromBytes(b []byte, format Format) Payload {
	return Payload{data: append([]byte(nil), b...), format: format}
}

// FromString builds a text payload.
func FromString(s string) Payload {
	return Payload{data: []byte(s), format: FormatText}
}

// FromJSON serializes v with encoding/json.
func FromJSON(v any) (Payload, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return Payload{}, fmt.Errorf("payload: encode json: %w", err)
	}
	return Payload{data: b, format: FormatJSON}, nil
}

// FromCBOR serializes v in deterministic CBOR (RFC 8949 core profile).
func FromCBOR(v any) (Payload, error) {
	em, err := cbor.CanonicalEncOptions().EncMode()
	if err != nil {
		return Payload{}, fmt.Errorf("payload: cbor encoder: %w", err)
	}
	b, err := em.Marshal(v)
	if err != nil {
		return Payload{}, fmt.Errorf("payload: encode cbor: %w", err)
	}
	return Payload{data: b, format: FormatCBOR}, nil
}

// FromProto serializes m in protobuf wire format.
func FromProto(m proto.Message) (Payload, error) {
	b, err := proto.Marshal(m)
	if err != nil {
		return Payload{}, fmt.Errorf("payload: encode proto: %w", err)
	}
	return Payload{data: b, format: FormatProtobuf}, nil
}

// FromAny packs m into a google.protobuf.Any and serializes the wrapper.
func FromAny(m proto.Message) (Payload, error) {
	a, err := anypb.New(m)
	if err != nil {
		return Payload{}, fmt.Errorf("payload: wrap any: %w", err)
	}
	b, err := proto.Marshal(a)
	if err != nil {
		return Payload{}, fmt.Errorf("payload: encode any: %w", err)
	}
	return Payload{data: b, format: FormatProtobufWrappedInAny}, nil
}

// Bytes returns the payload body. The returned slice must not be modified.
func (p Payload) Bytes() []byte { return p.data }

// Format returns the serialization tag.
func (p Payload) Format() Format { return p.format }

// Size returns the body length in bytes.
func (p Payload) Size() int { return len(p.data) }

// IsEmpty reports whether the body holds no bytes.
func (p Payload) IsEmpty() bool { return len(p.data) == 0 }
