package rsync

import (
	"strconv"
)

// blob is the wire format's sole framing primitive: a decimal length, a
// colon, and that many payload bytes. Composite values are blobs whose
// payload is itself a concatenation of further blobs -- there are no
// tags, delimiters, or checksums. See spec.md §4.4.

// writeBlob appends len(payload)":"+payload to buf.
func writeBlob(buf []byte, payload []byte) []byte {
	buf = append(buf, strconv.Itoa(len(payload))...)
	buf = append(buf, ':')
	buf = append(buf, payload...)
	return buf
}

func writeBlobString(buf []byte, s string) []byte {
	buf = append(buf, strconv.Itoa(len(s))...)
	buf = append(buf, ':')
	buf = append(buf, s...)
	return buf
}

// blobBuilder accumulates nested blob payloads before they are wrapped by
// their own enclosing writeBlob call, the way edb's bytesBuilder
// accumulates raw bytes before framing.
type blobBuilder struct {
	buf []byte
}

func (b *blobBuilder) blob(payload []byte) {
	b.buf = writeBlob(b.buf, payload)
}

func (b *blobBuilder) blobString(s string) {
	b.buf = writeBlobString(b.buf, s)
}

func (b *blobBuilder) raw(payload []byte) {
	b.buf = append(b.buf, payload...)
}

func (b *blobBuilder) bytes() []byte { return b.buf }

// blobReader consumes nested blobs from a fixed slice in declared order,
// the way edb's byteDecoder consumes uvarint-framed fields; here framing
// is decimal-length-prefixed instead.
type blobReader struct {
	orig []byte
	buf  []byte
}

func newBlobReader(b []byte) blobReader {
	return blobReader{orig: b, buf: b}
}

func (r *blobReader) off() int { return len(r.orig) - len(r.buf) }

func (r *blobReader) exhausted() bool { return len(r.buf) == 0 }

// next reads one blob header + payload from the front of the reader and
// returns the payload, advancing past it. It implements decode_blob from
// spec.md §4.4.
func (r *blobReader) next() ([]byte, error) {
	i := 0
	for i < len(r.buf) && r.buf[i] != ':' {
		if r.buf[i] < '0' || r.buf[i] > '9' {
			return nil, archiveErrf(ErrMalformedLength, r.orig, r.off(), nil, "length header contains non-digit %q", r.buf[i])
		}
		i++
	}
	if i == 0 || i >= len(r.buf) {
		return nil, archiveErrf(ErrMalformedLength, r.orig, r.off(), nil, "missing length header")
	}
	n, err := strconv.Atoi(string(r.buf[:i]))
	if err != nil {
		return nil, archiveErrf(ErrMalformedLength, r.orig, r.off(), err, "invalid length header")
	}
	rest := r.buf[i+1:]
	if n > len(rest) {
		return nil, archiveErrf(ErrPrematureEnd, r.orig, r.off(), nil, "declared length %d overruns %d remaining bytes", n, len(rest))
	}
	payload := rest[:n]
	r.buf = rest[n:]
	return payload, nil
}

// nextString is a convenience around next() for text-valued blobs (name,
// comment, decimal integers).
func (r *blobReader) nextString() (string, error) {
	b, err := r.next()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *blobReader) nextInt() (int64, error) {
	b, err := r.next()
	if err != nil {
		return 0, err
	}
	v, err := parseDecimalInt(b)
	if err != nil {
		return 0, archiveErrf(ErrMalformedInt, r.orig, r.off(), err, "malformed int blob %q", b)
	}
	return v, nil
}

func (r *blobReader) nextUint(bits int) (uint64, error) {
	b, err := r.next()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseUint(string(b), 10, bits)
	if err != nil {
		return 0, archiveErrf(ErrMalformedInt, r.orig, r.off(), err, "malformed uint blob %q", b)
	}
	return v, nil
}

// parseDecimalInt parses signed decimal text with an optional leading
// '-' and no other radix prefixes, rejecting anything else with a
// descriptive error -- spec.md §4.4's MalformedInt condition.
func parseDecimalInt(b []byte) (int64, error) {
	s := string(b)
	if s == "" {
		return 0, strconv.ErrSyntax
	}
	start := 0
	if s[0] == '-' {
		start = 1
	}
	if start >= len(s) {
		return 0, strconv.ErrSyntax
	}
	for i := start; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, strconv.ErrSyntax
		}
	}
	return strconv.ParseInt(s, 10, 64)
}
