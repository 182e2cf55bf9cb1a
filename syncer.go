package rsync

import (
	"unsafe"

	"github.com/rs/zerolog"
)

// SyncOptions configures a Syncer run. Only is the partial-deserialization
// hook described in spec.md §9's supplemented features: when set, an
// object for which Only returns false is skipped (not failed) and left
// untouched in live memory, the way the source framework's documented
// "preset" use case restricts deserialization to a subset of objects.
type SyncOptions struct {
	Only func(d *Object) bool

	// Logger receives debug-level traces for each matched member and for
	// each object skipped by Only. Nothing else is logged; dangling
	// members are skipped silently. Defaults to a no-op logger.
	Logger zerolog.Logger
}

// Syncer walks a destination ObjectGraph (freshly reflected from live
// memory) against a source ObjectGraph (decoded from bytes), resolving
// each destination member to a source member and writing primitive
// payloads back into live memory. It holds references to two Archives
// and mutates only the destination's ObjectGraph (structurally) and live
// host memory (via primitive byte-copies); it must never mutate the
// source Archive. Per spec.md §5, a Syncer is not safe for concurrent
// use, and the destination graph is not reusable after a run -- rebuild
// it by re-reflecting.
type Syncer struct {
	dst, src *Archive
	opts     SyncOptions
}

// NewSyncer wires dst/src into a Syncer. The zero value of
// SyncOptions.Logger is the zero-value zerolog.Logger, which zerolog
// guarantees is safe to use and discards output -- equivalent to
// NopLogger -- so callers need not set it explicitly.
func NewSyncer(dst, src *Archive, opts SyncOptions) *Syncer {
	return &Syncer{dst: dst, src: src, opts: opts}
}

// Sync is the syncer entry point of spec.md §4.5.
func Sync(dst, src *Archive, opts SyncOptions) error {
	return NewSyncer(dst, src, opts).Sync()
}

func (s *Syncer) Sync() error {
	if !s.dst.HasRoot() {
		return archiveErrf(ErrNoDestinationRoot, nil, 0, nil, "destination archive has no root")
	}
	if !s.src.HasRoot() {
		return archiveErrf(ErrNoSourceRoot, nil, 0, nil, "source archive has no root")
	}
	return s.syncObject(s.dst.RootObject(), s.src.RootObject())
}

// syncObject implements spec.md §4.5's central recursion. Step 4's
// destructive erase of d from the destination graph is the sole cycle-
// breaking mechanism: any later traversal reaching d's UID again finds
// the invalid sentinel at step 1 and returns.
func (s *Syncer) syncObject(d, sObj *Object) error {
	if !d.IsValid() || !sObj.IsValid() {
		return nil
	}

	if s.opts.Only != nil && !s.opts.Only(d) {
		s.log().Debug().Str("type", d.Type.String()).Msg("skipping object excluded by SyncOptions.Only")
		return nil
	}

	if !versionsCompatible(d, sObj) {
		return archiveErrf(ErrVersionIncompatible, nil, 0, nil,
			"destination version=%d min_version=%d incompatible with source version=%d",
			d.Version, d.MinVersion, sObj.Version)
	}
	if d.Type != sObj.Type {
		return archiveErrf(ErrTypeIncompatible, nil, 0, nil,
			"destination type %s incompatible with source type %s", d.Type, sObj.Type)
	}

	dUID := d.UID()
	s.dst.objects.Erase(dUID)
	metricsObjectsSynced.Inc()

	switch {
	case d.Type.IsPrimitive() && !d.Type.IsPointer:
		return s.syncPrimitive(d, sObj)
	case d.Type.IsPointer:
		return s.syncPointer(d, sObj)
	default:
		return s.syncClass(d, sObj)
	}
}

// versionsCompatible implements spec.md §4.5 step 2: equal versions are
// always compatible; otherwise the side with the higher version must
// declare a min_version no greater than the other side's version.
func versionsCompatible(d, sObj *Object) bool {
	if d.Version == sObj.Version {
		return true
	}
	if d.Version > sObj.Version {
		return d.MinVersion <= sObj.Version
	}
	return sObj.MinVersion <= d.Version
}

func (s *Syncer) syncClass(d, sObj *Object) error {
	for _, ms := range sObj.Members {
		md := s.matchMember(d, sObj, ms)
		if md == nil {
			return archiveErrf(ErrMissingMember, nil, 0, nil, "no match for source member %q (type %s)", ms.Name, ms.Type)
		}
		s.log().Debug().Str("name", ms.Name).Msg("matched member")
		if err := s.syncMember(*md, ms); err != nil {
			return err
		}
	}
	return nil
}

// syncPrimitive is the only site that writes to live memory, spec.md
// §4.5's sync_primitive: assert the source's binary Raw is exactly
// d.Type.Size bytes, then copy those bytes to d's live address. Strings
// are the one width exception (spec.md §9's supplemented features --
// see primitive.go) and are written through reflect instead of a fixed-
// width memcpy.
func (s *Syncer) syncPrimitive(d, sObj *Object) error {
	if d.Type.BaseKind == KindString {
		return writeLiveString(d, string(sObj.Raw))
	}
	if uint32(len(sObj.Raw)) != d.Type.Size {
		return archiveErrf(ErrTypeMismatchOnSetValue, sObj.Raw, 0, nil,
			"source raw size %d does not match destination type size %d", len(sObj.Raw), d.Type.Size)
	}
	return writeLiveMemory(d, sObj.Raw)
}

// writeLiveMemory performs the fixed-width unsafe-pointer write; it and
// writeLiveString are called only from syncPrimitive, the single call
// site spec.md §5 mandates. d.UID().ID must be
// a LiveUID produced by a Reflector; sObj's decoded Raw is never itself a
// dereferenceable address.
func writeLiveMemory(d *Object, raw []byte) error {
	addr := uintptr(d.UID().ID)
	if addr == 0 {
		return nil
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(addr)), len(raw))
	copy(dst, raw)
	return nil
}

func writeLiveString(d *Object, v string) error {
	addr := uintptr(d.UID().ID)
	if addr == 0 {
		return nil
	}
	*(*string)(unsafe.Pointer(addr)) = v
	return nil
}

// syncPointer recurses into the pointees named by each chain's second UID
// element. No pointer rewriting happens on the destination: the live
// pointer already targets a live destination pointee because the host's
// own reflection traversal followed it, per spec.md §4.5.
func (s *Syncer) syncPointer(d, sObj *Object) error {
	dPointee := d.PointeeUID()
	sPointee := sObj.PointeeUID()
	if !dPointee.IsValid() || !sPointee.IsValid() {
		return nil
	}
	return s.syncObject(s.dst.objects.Lookup(dPointee), s.src.objects.Lookup(sPointee))
}

// syncMember resolves both members' head Objects in their respective
// pools and recurses via syncObject, per spec.md §4.5's sync_member.
func (s *Syncer) syncMember(md, ms Member) error {
	dObj := s.dst.objects.Lookup(md.UID)
	sObj := s.src.objects.Lookup(ms.UID)
	return s.syncObject(dObj, sObj)
}

func (s *Syncer) log() *zerolog.Logger { return &s.opts.Logger }
