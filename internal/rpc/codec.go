package rpc

import (
	"fmt"

	"google.golang.org/protobuf/proto"
)

// Codec encodes Message values on the protobuf wire format. It registers
// under the "proto" name so clients need no special content subtype, and
// falls back to the protobuf runtime for generated messages such as the
// health service's.
type Codec struct{}

func (Codec) Name() string { return "proto" }

func (Codec) Marshal(v any) ([]byte, error) {
	switch m := v.(type) {
	case Message:
		return m.MarshalWire(nil), nil
	case proto.Message:
		return proto.Marshal(m)
	default:
		return nil, fmt.Errorf("rpc: cannot marshal %T", v)
	}
}

func (Codec) Unmarshal(data []byte, v any) error {
	switch m := v.(type) {
	case Message:
		return m.UnmarshalWire(data)
	case proto.Message:
		return proto.Unmarshal(data, m)
	default:
		return fmt.Errorf("rpc: cannot unmarshal into %T", v)
	}
}
