package rsync

import "time"

// Archive is a versioned container of Objects with a designated root. It
// owns its ObjectGraph and its cached encoded form exclusively; see
// spec.md §5 for the concurrency model (single-threaded, caller-
// synchronized, not safe for concurrent use).
type Archive struct {
	root    UID
	objects *ObjectGraph

	name    string
	comment string

	createdAt  int64
	modifiedAt int64

	rawBytes []byte
	modified bool
}

// NewArchive returns an empty archive with no root, ready for a Reflector
// to populate via Serialize.
func NewArchive() *Archive {
	return &Archive{objects: NewObjectGraph()}
}

// NewArchiveFromBytes decodes raw directly into a new Archive. Per
// spec.md §9's Design Notes, the source framework's constructor decodes
// into a not-yet-populated buffer; this port decodes the argument itself.
func NewArchiveFromBytes(raw []byte) (*Archive, error) {
	a, err := decodeArchive(raw)
	if err != nil {
		return nil, err
	}
	a.rawBytes = append([]byte(nil), raw...)
	return a, nil
}

func (a *Archive) Root() UID { return a.root }

// RootObject returns the root Object, or the invalid sentinel if there is
// no root or it is dangling.
func (a *Archive) RootObject() *Object { return a.objects.Lookup(a.root) }

func (a *Archive) HasRoot() bool { return a.root.IsValid() && a.objects.Has(a.root) }

func (a *Archive) SetRoot(uid UID) {
	a.root = uid
	a.markModified()
}

func (a *Archive) Objects() *ObjectGraph { return a.objects }

func (a *Archive) Lookup(uid UID) *Object { return a.objects.Lookup(uid) }

func (a *Archive) Name() string    { return a.name }
func (a *Archive) Comment() string { return a.comment }

func (a *Archive) SetName(name string) {
	a.name = name
	a.markModified()
}

func (a *Archive) SetComment(comment string) {
	a.comment = comment
	a.markModified()
}

func (a *Archive) CreatedAtUnix() int64  { return a.createdAt }
func (a *Archive) ModifiedAtUnix() int64 { return a.modifiedAt }

// Remove erases obj's UID from the object pool. Per spec.md §9 (a
// suspected source bug, kept intentionally unless tests demand
// otherwise), this does not cascade: Members elsewhere that still
// reference uid become dangling, and orphaned Objects previously reached
// only through obj remain in the pool.
func (a *Archive) Remove(uid UID) {
	a.objects.Erase(uid)
	a.markModified()
}

// RemoveMember deletes the named member from parent's Member list. Like
// Remove, this does not cascade into the object pool; the removed
// member's own Object, if any, is left in place.
func (a *Archive) RemoveMember(parent UID, name string) {
	obj := a.objects.Lookup(parent)
	if !obj.IsValid() {
		return
	}
	out := obj.Members[:0]
	for _, m := range obj.Members {
		if m.Name != name {
			out = append(out, m)
		}
	}
	obj.Members = out
	a.markModified()
}

func (a *Archive) Clear() {
	a.objects.Clear()
	a.root = NoUID
	a.markModified()
}

func (a *Archive) markModified() { a.modified = true }

func (a *Archive) Modified() bool { return a.modified }

// RawData returns the encoded form of the archive, re-encoding lazily
// whenever a mutator has run since the last encode.
func (a *Archive) RawData() []byte {
	if a.modified || a.rawBytes == nil {
		a.Encode()
	}
	return a.rawBytes
}

// Encode re-encodes the archive now, stamping ModifiedAt (and CreatedAt on
// first encode) and clearing the modified flag, per spec.md §6.
func (a *Archive) Encode() []byte {
	now := time.Now().Unix()
	if a.createdAt == 0 {
		a.createdAt = now
	}
	a.modifiedAt = now
	a.rawBytes = encodeArchive(a)
	a.modified = false
	return a.rawBytes
}
