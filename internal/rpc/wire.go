package rpc

import (
	"time"

	"google.golang.org/protobuf/encoding/protowire"
	"google.golang.org/protobuf/types/known/fieldmaskpb"
	"google.golang.org/protobuf/types/known/timestamppb"
)

// Message is implemented by every request and response of the service.
// Encoding follows the protobuf wire format so stock gRPC and gRPC-Web
// clients can talk to the server.
type Message interface {
	MarshalWire(b []byte) []byte
	UnmarshalWire(b []byte) error
}

func putString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

// repeated fields keep empty elements
func putStrings(b []byte, num protowire.Number, ss []string) []byte {
	for _, s := range ss {
		b = protowire.AppendTag(b, num, protowire.BytesType)
		b = protowire.AppendString(b, s)
	}
	return b
}

func putVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func putInt(b []byte, num protowire.Number, v int64) []byte {
	return putVarint(b, num, uint64(v))
}

func putBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	return putVarint(b, num, 1)
}

func putMessage[M interface {
	*T
	Message
}, T any](b []byte, num protowire.Number, m M) []byte {
	if m == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, m.MarshalWire(nil))
}

func putTimestamp(b []byte, num protowire.Number, ts *timestamppb.Timestamp) []byte {
	var inner []byte
	inner = putInt(inner, 1, ts.GetSeconds())
	inner = putInt(inner, 2, int64(ts.GetNanos()))
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, inner)
}

func putTime(b []byte, num protowire.Number, t time.Time) []byte {
	if t.IsZero() {
		return b
	}
	return putTimestamp(b, num, timestamppb.New(t))
}

func putTimes(b []byte, num protowire.Number, ts []time.Time) []byte {
	for _, t := range ts {
		b = putTimestamp(b, num, timestamppb.New(t))
	}
	return b
}

func putFieldMask(b []byte, num protowire.Number, fm *fieldmaskpb.FieldMask) []byte {
	if fm == nil {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, putStrings(nil, 1, fm.GetPaths()))
}

// decoder walks the fields of one message. The first malformed field stops
// the walk and is reported by err.
type decoder struct {
	buf []byte
	typ protowire.Type
	num protowire.Number
	err error
}

func (d *decoder) next() bool {
	if d.err != nil || len(d.buf) == 0 {
		return false
	}
	num, typ, n := protowire.ConsumeTag(d.buf)
	if n < 0 {
		d.err = protowire.ParseError(n)
		return false
	}
	d.buf = d.buf[n:]
	d.num, d.typ = num, typ
	return true
}

func (d *decoder) consume(n int) {
	if n < 0 {
		d.err = protowire.ParseError(n)
		d.buf = nil
		return
	}
	d.buf = d.buf[n:]
}

// skip discards the current field; unknown fields are ignored.
func (d *decoder) skip() {
	d.consume(protowire.ConsumeFieldValue(d.num, d.typ, d.buf))
}

func (d *decoder) readBytes() []byte {
	if d.typ != protowire.BytesType {
		d.skip()
		return nil
	}
	v, n := protowire.ConsumeBytes(d.buf)
	d.consume(n)
	return v
}

func (d *decoder) readString() string {
	return string(d.readBytes())
}

func (d *decoder) readVarint() uint64 {
	if d.typ != protowire.VarintType {
		d.skip()
		return 0
	}
	v, n := protowire.ConsumeVarint(d.buf)
	d.consume(n)
	return v
}

func (d *decoder) readInt32() int32 { return int32(d.readVarint()) }
func (d *decoder) readInt64() int64 { return int64(d.readVarint()) }
func (d *decoder) readBool() bool   { return d.readVarint() != 0 }

func (d *decoder) readMessage(m Message) {
	b := d.readBytes()
	if d.err != nil {
		return
	}
	if err := m.UnmarshalWire(b); err != nil {
		d.err = err
	}
}

func (d *decoder) readTime() time.Time {
	inner := decoder{buf: d.readBytes()}
	ts := &timestamppb.Timestamp{}
	for inner.next() {
		switch inner.num {
		case 1:
			ts.Seconds = inner.readInt64()
		case 2:
			ts.Nanos = inner.readInt32()
		default:
			inner.skip()
		}
	}
	if inner.err != nil {
		d.err = inner.err
		return time.Time{}
	}
	return ts.AsTime()
}

func (d *decoder) readFieldMask() *fieldmaskpb.FieldMask {
	inner := decoder{buf: d.readBytes()}
	fm := &fieldmaskpb.FieldMask{}
	for inner.next() {
		if inner.num == 1 {
			fm.Paths = append(fm.Paths, inner.readString())
			continue
		}
		inner.skip()
	}
	if inner.err != nil {
		d.err = inner.err
	}
	return fm
}
