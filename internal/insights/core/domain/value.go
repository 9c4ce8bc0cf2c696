package domain

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Kind is the dynamic type carried by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindList
	KindObject
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a JSON-shaped tagged union. Filter fields, breakdown values and
// formatter results are all Values. The zero Value is null.
type Value struct {
	kind Kind
	b    bool
	n    float64
	s    string
	list []Value
	obj  Filter
}

func Null() Value { return Value{} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func Number(n float64) Value { return Value{kind: KindNumber, n: n} }

func Int(n int64) Value { return Value{kind: KindNumber, n: float64(n)} }

func String(s string) Value { return Value{kind: KindString, s: s} }

func List(items ...Value) Value { return Value{kind: KindList, list: items} }

func Object(f Filter) Value { return Value{kind: KindObject, obj: f} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

// Strings builds a list of string values.
func Strings(items ...string) Value {
	list := make([]Value, len(items))
	for i, s := range items {
		list[i] = String(s)
	}
	return List(list...)
}

func (v Value) AsBool() (bool, bool) {
	return v.b, v.kind == KindBool
}

func (v Value) AsNumber() (float64, bool) {
	return v.n, v.kind == KindNumber
}

func (v Value) AsString() (string, bool) {
	return v.s, v.kind == KindString
}

func (v Value) AsList() ([]Value, bool) {
	return v.list, v.kind == KindList
}

func (v Value) AsObject() (Filter, bool) {
	return v.obj, v.kind == KindObject
}

// Len is the element count of a list, the byte length of a string and zero
// otherwise.
func (v Value) Len() int {
	switch v.kind {
	case KindList:
		return len(v.list)
	case KindString:
		return len(v.s)
	default:
		return 0
	}
}

// Entities returns the list elements as filters when every element is an
// object.
func (v Value) Entities() ([]Filter, bool) {
	if v.kind != KindList {
		return nil, false
	}
	out := make([]Filter, len(v.list))
	for i, item := range v.list {
		f, ok := item.AsObject()
		if !ok {
			return nil, false
		}
		out[i] = f
	}
	return out, true
}

// Truthy reports JavaScript truthiness: null, false, 0, NaN and "" are
// falsy, everything else (including empty lists and objects) is truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.b
	case KindNumber:
		return v.n != 0 && !math.IsNaN(v.n)
	case KindString:
		return v.s != ""
	default:
		return true
	}
}

// String renders the value the way JavaScript's toString does.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return FormatNumber(v.n)
	case KindString:
		return v.s
	case KindList:
		parts := make([]string, len(v.list))
		for i, item := range v.list {
			parts[i] = item.String()
		}
		return strings.Join(parts, ",")
	case KindObject:
		return "[object Object]"
	default:
		return ""
	}
}

// Equal is deep structural equality. Object key order is ignored, list
// order is not.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindNumber:
		return v.n == o.n
	case KindString:
		return v.s == o.s
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindObject:
		return v.obj.Equal(o.obj)
	default:
		return false
	}
}

// LooseEqualsNumber compares the value against n after converting it to a
// number: strings are trimmed and parsed (empty means 0), booleans are 0/1,
// lists go through their string form, null and objects never match.
func (v Value) LooseEqualsNumber(n float64) bool {
	if math.IsNaN(n) {
		return false
	}
	var converted float64
	var ok bool
	switch v.kind {
	case KindNumber:
		converted, ok = v.n, true
	case KindBool:
		converted, ok = 0, true
		if v.b {
			converted = 1
		}
	case KindString:
		converted, ok = ToNumber(v.s)
	case KindList:
		converted, ok = ToNumber(v.String())
	}
	return ok && converted == n
}

// ToNumber converts decimal text to a number. Leading and trailing
// whitespace is ignored and blank text is zero.
func ToNumber(s string) (float64, bool) {
	s = strings.TrimFunc(s, unicode.IsSpace)
	switch s {
	case "":
		return 0, true
	case "Infinity", "+Infinity":
		return math.Inf(1), true
	case "-Infinity":
		return math.Inf(-1), true
	}
	if strings.ContainsAny(s, "xXpP_iInN") {
		return 0, false
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatNumber prints n without a trailing ".0" for integers, switching to
// exponent notation outside [1e-6, 1e21).
func FormatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	case n == 0:
		return "0"
	}
	abs := math.Abs(n)
	if abs >= 1e-6 && abs < 1e21 {
		return strconv.FormatFloat(n, 'f', -1, 64)
	}
	s := strconv.FormatFloat(n, 'e', -1, 64)
	mantissa, exp, _ := strings.Cut(s, "e")
	sign := exp[0]
	exp = strings.TrimLeft(exp[1:], "0")
	return mantissa + "e" + string(sign) + exp
}
