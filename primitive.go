package rsync

import (
	"encoding/binary"
	"math"
	"strconv"
)

// Object.Raw holds the *binary*, native-byte-order value of a primitive --
// sized exactly to its TypeDescriptor.Size -- mirroring the original
// framework's m_data: decode first parses the wire's portable decimal
// text into this binary form, and syncPrimitive's single live-memory
// write is then a plain byte copy, never a parse. Only the wire
// representation (see blob.go/codec_*.go) is decimal-ASCII and therefore
// endian/width independent; Raw's binary layout is an internal decode-to-
// sync implementation detail that never itself crosses the wire. String
// values are the one exception: Raw holds their UTF-8 bytes directly,
// since "decimal-decoded" has no meaning for text.
var byteOrder = binary.NativeEndian

// rawFromDecimalText decodes a wire Primitive payload into t's binary Raw
// representation. This is the decode-time half of spec.md §4.4's
// "decimal-decoded primitive value".
func rawFromDecimalText(t TypeDescriptor, text []byte) ([]byte, error) {
	switch {
	case t.IsPointer:
		return nil, nil
	case t.BaseKind == KindString:
		return append([]byte(nil), text...), nil
	case t.BaseKind == KindBool:
		switch string(text) {
		case "0":
			return []byte{0}, nil
		case "1":
			return []byte{1}, nil
		default:
			return nil, archiveErrf(ErrMalformedInt, text, 0, nil, "malformed bool payload %q", text)
		}
	case t.BaseKind == KindEnum || t.IsUnsigned():
		v, err := strconv.ParseUint(string(text), 10, 64)
		if err != nil {
			return nil, archiveErrf(ErrMalformedInt, text, 0, err, "malformed unsigned payload")
		}
		return packUint(v, t.Size), nil
	case t.IsInteger():
		v, err := parseDecimalInt(text)
		if err != nil {
			return nil, archiveErrf(ErrMalformedInt, text, 0, err, "malformed int payload %q", text)
		}
		return packInt(v, t.Size), nil
	case t.IsReal():
		v, err := strconv.ParseFloat(string(text), 64)
		if err != nil {
			return nil, archiveErrf(ErrMalformedReal, text, 0, err, "malformed real payload %q", text)
		}
		return packFloat(v, t.Size), nil
	default:
		return nil, nil
	}
}

// decimalTextFromRaw is encode's inverse of rawFromDecimalText.
func decimalTextFromRaw(t TypeDescriptor, raw []byte) ([]byte, error) {
	switch {
	case t.IsPointer:
		return nil, nil
	case t.BaseKind == KindString:
		return append([]byte(nil), raw...), nil
	case t.BaseKind == KindBool:
		if len(raw) == 0 {
			return nil, nil
		}
		if raw[0] == 0 {
			return []byte("0"), nil
		}
		return []byte("1"), nil
	case t.BaseKind == KindEnum || t.IsUnsigned():
		v, err := unpackUint(raw, t.Size)
		if err != nil {
			return nil, err
		}
		return []byte(strconv.FormatUint(v, 10)), nil
	case t.IsInteger():
		v, err := unpackInt(raw, t.Size)
		if err != nil {
			return nil, err
		}
		return []byte(strconv.FormatInt(v, 10)), nil
	case t.IsReal():
		v, err := unpackFloat(raw, t.Size)
		if err != nil {
			return nil, err
		}
		bitSize := 64
		if t.BaseKind == KindReal32 {
			bitSize = 32
		}
		return []byte(strconv.FormatFloat(v, 'g', -1, bitSize)), nil
	default:
		return nil, nil
	}
}

func packUint(v uint64, size uint32) []byte {
	buf := make([]byte, size)
	switch size {
	case 1:
		buf[0] = byte(v)
	case 2:
		byteOrder.PutUint16(buf, uint16(v))
	case 4:
		byteOrder.PutUint32(buf, uint32(v))
	case 8:
		byteOrder.PutUint64(buf, v)
	default:
		panic("unknown unsigned primitive size")
	}
	return buf
}

func packInt(v int64, size uint32) []byte { return packUint(uint64(v), size) }

func packFloat(v float64, size uint32) []byte {
	switch size {
	case 4:
		buf := make([]byte, 4)
		byteOrder.PutUint32(buf, math.Float32bits(float32(v)))
		return buf
	case 8:
		buf := make([]byte, 8)
		byteOrder.PutUint64(buf, math.Float64bits(v))
		return buf
	default:
		panic("unknown real primitive size")
	}
}

func unpackUint(raw []byte, size uint32) (uint64, error) {
	if uint32(len(raw)) != size {
		return 0, archiveErrf(ErrMalformedInt, raw, 0, nil, "raw size %d does not match type size %d", len(raw), size)
	}
	switch size {
	case 1:
		return uint64(raw[0]), nil
	case 2:
		return uint64(byteOrder.Uint16(raw)), nil
	case 4:
		return uint64(byteOrder.Uint32(raw)), nil
	case 8:
		return byteOrder.Uint64(raw), nil
	default:
		panic("unknown unsigned primitive size")
	}
}

func unpackInt(raw []byte, size uint32) (int64, error) {
	v, err := unpackUint(raw, size)
	if err != nil {
		return 0, err
	}
	switch size {
	case 1:
		return int64(int8(v)), nil
	case 2:
		return int64(int16(v)), nil
	case 4:
		return int64(int32(v)), nil
	case 8:
		return int64(v), nil
	default:
		panic("unknown signed primitive size")
	}
}

func unpackFloat(raw []byte, size uint32) (float64, error) {
	if uint32(len(raw)) != size {
		return 0, archiveErrf(ErrMalformedReal, raw, 0, nil, "raw size %d does not match type size %d", len(raw), size)
	}
	switch size {
	case 4:
		return float64(math.Float32frombits(byteOrder.Uint32(raw))), nil
	case 8:
		return math.Float64frombits(byteOrder.Uint64(raw)), nil
	default:
		panic("unknown real primitive size")
	}
}
