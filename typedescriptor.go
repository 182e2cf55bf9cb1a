package rsync

import "strings"

// BaseKind classifies the fundamental shape of a datum. It is a tagged
// variant rather than the source framework's raw string comparison --
// dispatch is by switch, never by comparing BaseKind.String() values -- but
// String() still renders the exact ASCII tags the wire format expects.
type BaseKind uint8

const (
	KindInvalid BaseKind = iota
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindUint8
	KindUint16
	KindUint32
	KindUint64
	KindReal32
	KindReal64
	KindBool
	KindEnum
	KindClass
	KindUnion
	KindString
)

var baseKindNames = map[BaseKind]string{
	KindInvalid: "",
	KindInt8:    "int8",
	KindInt16:   "int16",
	KindInt32:   "int32",
	KindInt64:   "int64",
	KindUint8:   "uint8",
	KindUint16:  "uint16",
	KindUint32:  "uint32",
	KindUint64:  "uint64",
	KindReal32:  "real32",
	KindReal64:  "real64",
	KindBool:    "bool",
	KindEnum:    "enum",
	KindClass:   "class",
	KindUnion:   "union",
	KindString:  "string",
}

var baseKindByName = func() map[string]BaseKind {
	m := make(map[string]BaseKind, len(baseKindNames))
	for k, v := range baseKindNames {
		m[v] = k
	}
	return m
}()

func (k BaseKind) String() string { return baseKindNames[k] }

// ParseBaseKind looks up the BaseKind for a wire-format tag, returning
// KindInvalid for an unrecognized tag.
func ParseBaseKind(tag string) BaseKind {
	k, ok := baseKindByName[tag]
	if !ok {
		return KindInvalid
	}
	return k
}

// TypeDescriptor classifies a datum: its fundamental kind, an opaque user
// type name for classes/enums/unions, its size in bytes, and whether it is
// a pointer. Equality is componentwise over all four fields.
type TypeDescriptor struct {
	BaseKind     BaseKind
	UserTypeName string
	Size         uint32
	IsPointer    bool
}

// InvalidType is the zero-valued, invalid TypeDescriptor produced for
// datums of unknown kind.
var InvalidType = TypeDescriptor{}

func (t TypeDescriptor) IsValid() bool { return t.BaseKind != KindInvalid }

func (t TypeDescriptor) IsClass() bool     { return t.BaseKind == KindClass }
func (t TypeDescriptor) IsPrimitive() bool { return t.IsValid() && !t.IsClass() }

func (t TypeDescriptor) IsInteger() bool {
	switch t.BaseKind {
	case KindInt8, KindInt16, KindInt32, KindInt64,
		KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	default:
		return false
	}
}

func (t TypeDescriptor) IsReal() bool {
	return t.BaseKind == KindReal32 || t.BaseKind == KindReal64
}

func (t TypeDescriptor) IsSigned() bool {
	switch t.BaseKind {
	case KindInt8, KindInt16, KindInt32, KindInt64, KindReal32, KindReal64:
		return true
	default:
		return false
	}
}

func (t TypeDescriptor) IsUnsigned() bool {
	switch t.BaseKind {
	case KindUint8, KindUint16, KindUint32, KindUint64:
		return true
	default:
		return false
	}
}

func (t TypeDescriptor) String() string {
	var b strings.Builder
	if t.IsPointer {
		b.WriteByte('*')
	}
	b.WriteString(t.BaseKind.String())
	if t.UserTypeName != "" {
		b.WriteByte('(')
		b.WriteString(t.UserTypeName)
		b.WriteByte(')')
	}
	return b.String()
}

// Less implements a strict weak order over (base_kind, user_type_name,
// size, is_pointer), sufficient to use TypeDescriptor as a map or sorted-
// set key. Per spec.md §9, the source framework's own ordering operators
// are parenthesized incorrectly; this orders fields strictly in
// declaration-precedence order instead.
func (t TypeDescriptor) Less(o TypeDescriptor) bool {
	if t.BaseKind != o.BaseKind {
		return t.BaseKind < o.BaseKind
	}
	if t.UserTypeName != o.UserTypeName {
		return t.UserTypeName < o.UserTypeName
	}
	if t.Size != o.Size {
		return t.Size < o.Size
	}
	return !t.IsPointer && o.IsPointer
}
