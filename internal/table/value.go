package table

import (
	"fmt"
	"strconv"
	"time"
)

// Kind enumerates the scalar types a column may hold.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
	KindDate
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindDate:
		return "date"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is one table cell: a scalar of a single Kind, or the missing marker.
type Value struct {
	kind  Kind
	valid bool
	str   string
	i     int64
	f     float64
	t     time.Time
}

func String(s string) Value  { return Value{kind: KindString, valid: true, str: s} }
func Int(i int64) Value      { return Value{kind: KindInt, valid: true, i: i} }
func Float(f float64) Value  { return Value{kind: KindFloat, valid: true, f: f} }
func Date(t time.Time) Value { return Value{kind: KindDate, valid: true, t: t} }

// Missing returns the missing marker for the given kind.
func Missing(k Kind) Value { return Value{kind: k} }

func (v Value) Kind() Kind      { return v.kind }
func (v Value) IsMissing() bool { return !v.valid }
func (v Value) Str() string     { return v.str }
func (v Value) Int64() int64    { return v.i }
func (v Value) Time() time.Time { return v.t }

// Float64 widens int cells so numeric columns aggregate uniformly.
func (v Value) Float64() float64 {
	if v.kind == KindInt {
		return float64(v.i)
	}
	return v.f
}

// Equal reports whether two cells hold the same kind and payload. Two
// missing cells of the same kind are equal.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind || v.valid != o.valid {
		return false
	}
	if !v.valid {
		return true
	}
	switch v.kind {
	case KindString:
		return v.str == o.str
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindDate:
		return v.t.Equal(o.t)
	}
	return false
}

// Less orders cells of the same kind; missing sorts first.
func (v Value) Less(o Value) bool {
	if !v.valid {
		return o.valid
	}
	if !o.valid {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str < o.str
	case KindInt:
		return v.i < o.i
	case KindFloat:
		return v.f < o.f
	case KindDate:
		return v.t.Before(o.t)
	}
	return false
}

// Format renders the cell for delimited output; missing renders empty.
func (v Value) Format() string {
	if !v.valid {
		return ""
	}
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindDate:
		return v.t.Format(DateLayout)
	}
	return ""
}

// key renders the cell as a group/join key component. Missing cells key on
// a marker byte that cannot appear in valid data.
func (v Value) key() string {
	if !v.valid {
		return "\x00"
	}
	return v.Format()
}
