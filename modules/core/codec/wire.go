package codec

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protowire"
)

// Encoder appends protobuf fields in the order they are written. Callers write
// fields in ascending field number order so the output matches the canonical
// protobuf encoding. Scalar zero values are omitted as in proto3.
type Encoder struct {
	buf []byte
	err error
}

// NewEncoder returns an empty Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// String writes a string field.
func (e *Encoder) String(num protowire.Number, s string) *Encoder {
	if s == "" {
		return e
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendString(e.buf, s)
	return e
}

// Strings writes a repeated string field.
func (e *Encoder) Strings(num protowire.Number, ss []string) *Encoder {
	for _, s := range ss {
		e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
		e.buf = protowire.AppendString(e.buf, s)
	}
	return e
}

// Bytes writes a bytes field.
func (e *Encoder) Bytes(num protowire.Number, bz []byte) *Encoder {
	if len(bz) == 0 {
		return e
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, bz)
	return e
}

// RepeatedBytes writes a repeated bytes field.
func (e *Encoder) RepeatedBytes(num protowire.Number, bzs [][]byte) *Encoder {
	for _, bz := range bzs {
		e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
		e.buf = protowire.AppendBytes(e.buf, bz)
	}
	return e
}

// Uint64 writes a uint64 varint field.
func (e *Encoder) Uint64(num protowire.Number, v uint64) *Encoder {
	if v == 0 {
		return e
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, v)
	return e
}

// Enum writes an enum (int32) field.
func (e *Encoder) Enum(num protowire.Number, v int32) *Encoder {
	if v == 0 {
		return e
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, uint64(int64(v)))
	return e
}

// Bool writes a bool field.
func (e *Encoder) Bool(num protowire.Number, v bool) *Encoder {
	if !v {
		return e
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.VarintType)
	e.buf = protowire.AppendVarint(e.buf, protowire.EncodeBool(v))
	return e
}

// Message writes an embedded message field. Non-nullable message fields are
// always written, even when their encoding is empty.
func (e *Encoder) Message(num protowire.Number, msg ProtoMarshaler) *Encoder {
	if e.err != nil {
		return e
	}
	bz, err := msg.Marshal()
	if err != nil {
		e.err = err
		return e
	}
	e.buf = protowire.AppendTag(e.buf, num, protowire.BytesType)
	e.buf = protowire.AppendBytes(e.buf, bz)
	return e
}

// Finish returns the encoded bytes or the first error met while encoding.
func (e *Encoder) Finish() ([]byte, error) {
	if e.err != nil {
		return nil, e.err
	}
	return e.buf, nil
}

// Field is a single decoded protobuf field.
type Field struct {
	Num  protowire.Number
	Type protowire.Type

	varint uint64
	bytes  []byte
}

// String returns a length-delimited field as a string.
func (f Field) String() string {
	return string(f.bytes)
}

// Bytes returns a copy of a length-delimited field.
func (f Field) Bytes() []byte {
	if f.bytes == nil {
		return nil
	}
	bz := make([]byte, len(f.bytes))
	copy(bz, f.bytes)
	return bz
}

// Uint64 returns a varint field.
func (f Field) Uint64() uint64 {
	return f.varint
}

// Int32 returns a varint field as an enum value.
func (f Field) Int32() int32 {
	return int32(f.varint)
}

// Bool returns a varint field as a bool.
func (f Field) Bool() bool {
	return protowire.DecodeBool(f.varint)
}

// Message decodes a length-delimited field into msg.
func (f Field) Message(msg ProtoMarshaler) error {
	if f.Type != protowire.BytesType {
		return fmt.Errorf("field %d: expected length-delimited wire type, got %d", f.Num, f.Type)
	}
	return msg.Unmarshal(f.bytes)
}

// DecodeFields walks the fields of an encoded message and calls fn for every
// varint or length-delimited field. Fields of other wire types are skipped.
func DecodeFields(bz []byte, fn func(f Field) error) error {
	for len(bz) > 0 {
		num, typ, n := protowire.ConsumeTag(bz)
		if n < 0 {
			return protowire.ParseError(n)
		}
		bz = bz[n:]

		field := Field{Num: num, Type: typ}
		switch typ {
		case protowire.VarintType:
			v, n := protowire.ConsumeVarint(bz)
			if n < 0 {
				return protowire.ParseError(n)
			}
			field.varint = v
			bz = bz[n:]
		case protowire.BytesType:
			v, n := protowire.ConsumeBytes(bz)
			if n < 0 {
				return protowire.ParseError(n)
			}
			field.bytes = v
			bz = bz[n:]
		default:
			n := protowire.ConsumeFieldValue(num, typ, bz)
			if n < 0 {
				return protowire.ParseError(n)
			}
			bz = bz[n:]
			continue
		}

		if err := fn(field); err != nil {
			return fmt.Errorf("field %d: %w", num, err)
		}
	}

	return nil
}
