package payload

import (
	"bytes"
	"encoding/json"
	"testing"

	cbor "github.com/fxamacker/cbor/v2"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/anypb"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestFromBytesCopies(t *testing.T) {
	src := []byte{1, 2, 3}
	p := FromBytes(src, FormatRaw)
	src[0] = 99
	if p.Bytes()[0] != 1 {
		t.Fatal("payload must not alias the caller's slice")
	}
	if p.Format() != FormatRaw || p.Size() != 3 || p.IsEmpty() {
		t.Fatalf("unexpected payload: %v %d", p.Format(), p.Size())
	}
}

func TestZeroPayload(t *testing.T) {
	var p Payload
	if !p.IsEmpty() || p.Size() != 0 || p.Format() != FormatUnspecified {
		t.Fatal("zero payload should be empty and unspecified")
	}
}

func TestFromJSON(t *testing.T) {
	p, err := FromJSON(map[string]any{"speed": 42})
	if err != nil {
		t.Fatalf("from json: %v", err)
	}
	if p.Format() != FormatJSON {
		t.Fatalf("format = %v", p.Format())
	}
	var out map[string]any
	if err := json.Unmarshal(p.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out["speed"].(float64) != 42 {
		t.Fatalf("roundtrip mismatch: %#v", out)
	}
}

func TestFromCBOR(t *testing.T) {
	p, err := FromCBOR(map[string]any{"n": 7})
	if err != nil {
		t.Fatalf("from cbor: %v", err)
	}
	if p.Format() != FormatCBOR {
		t.Fatalf("format = %v", p.Format())
	}
	var out map[string]any
	if err := cbor.Unmarshal(p.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
}

func TestFromProto(t *testing.T) {
	s, err := structpb.NewStruct(map[string]any{"k": "v"})
	if err != nil {
		t.Fatalf("struct: %v", err)
	}
	p, err := FromProto(s)
	if err != nil {
		t.Fatalf("from proto: %v", err)
	}
	if p.Format() != FormatProtobuf {
		t.Fatalf("format = %v", p.Format())
	}
	var out structpb.Struct
	if err := proto.Unmarshal(p.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Fields["k"].GetStringValue() != "v" {
		t.Fatal("roundtrip mismatch")
	}
}

func TestFromAny(t *testing.T) {
	s, _ := structpb.NewStruct(map[string]any{"k": "v"})
	p, err := FromAny(s)
	if err != nil {
		t.Fatalf("from any: %v", err)
	}
	if p.Format() != FormatProtobufWrappedInAny {
		t.Fatalf("format = %v", p.Format())
	}
	var a anypb.Any
	if err := proto.Unmarshal(p.Bytes(), &a); err != nil {
		t.Fatalf("decode any: %v", err)
	}
	var out structpb.Struct
	if err := a.UnmarshalTo(&out); err != nil {
		t.Fatalf("unpack: %v", err)
	}
	if out.Fields["k"].GetStringValue() != "v" {
		t.Fatal("roundtrip mismatch")
	}
}

func TestFromString(t *testing.T) {
	p := FromString("vehicle.speed")
	if p.Format() != FormatText || !bytes.Equal(p.Bytes(), []byte("vehicle.speed")) {
		t.Fatalf("unexpected payload: %v %q", p.Format(), p.Bytes())
	}
}
