package rsync

import (
	"errors"
	"strings"
	"testing"
)

func TestArchiveError_UnwrapAndIs(t *testing.T) {
	inner := errors.New("inner")
	err := archiveErrf(ErrMalformedInt, []byte{0xAA, 0xBB}, 3, inner, "oops")

	var ae *ArchiveError
	if !errors.As(err, &ae) {
		t.Fatalf("errors.As failed to extract *ArchiveError")
	}
	if !errors.Is(err, inner) {
		t.Fatalf("errors.Is(err, inner) = false, want true")
	}
	if !errors.Is(err, archiveErrf(ErrMalformedInt, nil, 0, nil, "different message")) {
		t.Fatalf("errors.Is should match on Kind alone")
	}
	if errors.Is(err, archiveErrf(ErrPrematureEnd, nil, 0, nil, "x")) {
		t.Fatalf("errors.Is should not match a different Kind")
	}

	s := err.Error()
	if !strings.Contains(s, "oops") || !strings.Contains(s, "inner") {
		t.Fatalf("Error() = %q, missing message/inner", s)
	}
}

func TestArchiveError_LongDataElided(t *testing.T) {
	data := make([]byte, 200)
	for i := range data {
		data[i] = byte(i)
	}
	err := archiveErrf(ErrMalformedLength, data, 0, nil, "oops")
	s := err.Error()
	if !strings.Contains(s, "(200 bytes)") || !strings.Contains(s, "...") {
		t.Fatalf("Error() = %q, want elided 200-byte excerpt", s)
	}
}

func TestArchiveErrorKind_String(t *testing.T) {
	if ErrBadMagic.String() != "BadMagic" {
		t.Fatalf("ErrBadMagic.String() = %q", ErrBadMagic.String())
	}
	if ArchiveErrorKind(999).String() != "Unknown" {
		t.Fatalf("out-of-range kind should render as Unknown")
	}
}
