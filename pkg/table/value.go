package table

import (
	"fmt"
	"time"

	gojson "github.com/goccy/go-json"

	"github.com/framedoc/framedoc/pkg/errors"
)

// Kind identifies the scalar type held by a Value.
type Kind uint8

const (
	// KindNull is a missing or null cell
	KindNull Kind = iota
	// KindBool is a boolean cell
	KindBool
	// KindInt is a 64-bit signed integer cell
	KindInt
	// KindFloat is a 64-bit float cell
	KindFloat
	// KindString is a text cell
	KindString
	// KindTime is a timestamp cell
	KindTime
	// KindBytes is a raw binary cell
	KindBytes
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	case KindBytes:
		return "bytes"
	default:
		return "unknown"
	}
}

// Value is a single table cell. It is a closed tagged variant over the scalar
// types a frame can hold, so stringification and metadata pass-through are
// handled exhaustively instead of through untyped interfaces.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	t    time.Time
	raw  []byte
}

// Null returns the null value
func Null() Value { return Value{kind: KindNull} }

// NewBool returns a boolean value
func NewBool(b bool) Value { return Value{kind: KindBool, b: b} }

// NewInt returns an integer value
func NewInt(i int64) Value { return Value{kind: KindInt, i: i} }

// NewFloat returns a float value
func NewFloat(f float64) Value { return Value{kind: KindFloat, f: f} }

// NewString returns a string value
func NewString(s string) Value { return Value{kind: KindString, s: s} }

// NewTime returns a timestamp value
func NewTime(t time.Time) Value { return Value{kind: KindTime, t: t} }

// NewBytes returns a binary value
func NewBytes(b []byte) Value { return Value{kind: KindBytes, raw: b} }

// Kind returns the scalar kind of the value
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload; false for other kinds
func (v Value) Bool() bool { return v.b }

// Int returns the integer payload; zero for other kinds
func (v Value) Int() int64 { return v.i }

// Float returns the float payload; zero for other kinds
func (v Value) Float() float64 { return v.f }

// Str returns the string payload; empty for other kinds
func (v Value) Str() string { return v.s }

// Time returns the timestamp payload; zero time for other kinds
func (v Value) Time() time.Time { return v.t }

// Bytes returns the binary payload; nil for other kinds
func (v Value) Bytes() []byte { return v.raw }

// Any returns the payload as a plain Go value: nil, bool, int64, float64,
// string, time.Time or []byte.
func (v Value) Any() interface{} {
	switch v.kind {
	case KindNull:
		return nil
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindTime:
		return v.t
	case KindBytes:
		return v.raw
	default:
		return nil
	}
}

// Equal reports whether two values hold the same kind and payload.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindTime:
		return v.t.Equal(o.t)
	case KindBytes:
		return string(v.raw) == string(o.raw)
	default:
		return false
	}
}

// String returns a debug representation
func (v Value) String() string {
	return fmt.Sprintf("%s(%v)", v.kind, v.Any())
}

// MarshalJSON serializes the payload: null as JSON null, times as RFC 3339
// with nanoseconds, bytes as base64.
func (v Value) MarshalJSON() ([]byte, error) {
	return gojson.Marshal(v.Any())
}

// ValueOf coerces a plain Go scalar into a Value. It accepts the types that
// the file parsers produce; anything else is a validation error.
func ValueOf(raw interface{}) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(), nil
	case Value:
		return x, nil
	case bool:
		return NewBool(x), nil
	case int:
		return NewInt(int64(x)), nil
	case int8:
		return NewInt(int64(x)), nil
	case int16:
		return NewInt(int64(x)), nil
	case int32:
		return NewInt(int64(x)), nil
	case int64:
		return NewInt(x), nil
	case uint8:
		return NewInt(int64(x)), nil
	case uint16:
		return NewInt(int64(x)), nil
	case uint32:
		return NewInt(int64(x)), nil
	case float32:
		return NewFloat(float64(x)), nil
	case float64:
		return NewFloat(x), nil
	case string:
		return NewString(x), nil
	case time.Time:
		return NewTime(x), nil
	case []byte:
		return NewBytes(x), nil
	default:
		return Null(), errors.New(errors.ErrorTypeValidation,
			fmt.Sprintf("unsupported scalar type %T", raw))
	}
}
