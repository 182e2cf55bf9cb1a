package rsync

import (
	"strings"
	"time"
)

// decodeArchive reverses encodeArchive, enforcing every required failure
// mode of spec.md §4.4: BadMagic, MalformedLength, PrematureEnd,
// MissingRoot, DanglingRoot (MalformedInt/MalformedReal surface from
// the nested blob.go and primitive.go helpers).
func decodeArchive(raw []byte) (*Archive, error) {
	start := time.Now()
	a, err := decodeArchiveInner(raw)
	metricsDecodeDuration.Observe(time.Since(start).Seconds())
	observeDecodeError(err)
	return a, err
}

func decodeArchiveInner(raw []byte) (*Archive, error) {
	if len(raw) == 0 || !strings.HasPrefix(string(raw), wireMagic) {
		return nil, archiveErrf(ErrBadMagic, raw, 0, nil, "missing %q magic prefix", wireMagic)
	}
	body := raw[len(wireMagic):]
	r := newBlobReader(body)
	rootPayload, err := r.next()
	if err != nil {
		return nil, err
	}

	a := NewArchive()
	rr := newBlobReader(rootPayload)

	if _, err := rr.next(); err != nil { // minor_version, read and ignored
		return nil, err
	}

	rootUIDPayload, err := rr.next()
	if err != nil {
		return nil, archiveErrf(ErrMissingRoot, raw, rr.off(), err, "root blob omits root UID")
	}
	root, err := decodeUID(rootUIDPayload)
	if err != nil {
		return nil, err
	}

	poolPayload, err := rr.next()
	if err != nil {
		return nil, err
	}
	graph, err := decodeObjectPool(poolPayload)
	if err != nil {
		return nil, err
	}
	a.objects = graph

	if root.IsValid() && !graph.Has(root) {
		return nil, archiveErrf(ErrDanglingRoot, raw, rr.off(), nil, "root %s absent from decoded object pool", root)
	}
	a.root = root

	if a.name, err = rr.nextString(); err != nil {
		return nil, err
	}
	if a.comment, err = rr.nextString(); err != nil {
		return nil, err
	}
	if a.createdAt, err = rr.nextInt(); err != nil {
		return nil, err
	}
	if a.modifiedAt, err = rr.nextInt(); err != nil {
		return nil, err
	}
	return a, nil
}

func decodeUID(payload []byte) (UID, error) {
	r := newBlobReader(payload)
	id, err := r.nextUint(64)
	if err != nil {
		return NoUID, err
	}
	size, err := r.nextUint(32)
	if err != nil {
		return NoUID, err
	}
	return UID{ID: id, Size: uint32(size)}, nil
}

func decodeUIDChain(payload []byte) (UIDChain, error) {
	r := newBlobReader(payload)
	var chain UIDChain
	for !r.exhausted() {
		b, err := r.next()
		if err != nil {
			return nil, err
		}
		uid, err := decodeUID(b)
		if err != nil {
			return nil, err
		}
		chain = append(chain, uid)
	}
	return chain, nil
}

func decodeTypeDescriptor(payload []byte) (TypeDescriptor, error) {
	r := newBlobReader(payload)
	baseKindStr, err := r.nextString()
	if err != nil {
		return InvalidType, err
	}
	userTypeName, err := r.nextString()
	if err != nil {
		return InvalidType, err
	}
	size, err := r.nextUint(32)
	if err != nil {
		return InvalidType, err
	}
	isPointerStr, err := r.nextString()
	if err != nil {
		return InvalidType, err
	}
	return TypeDescriptor{
		BaseKind:     ParseBaseKind(baseKindStr),
		UserTypeName: userTypeName,
		Size:         uint32(size),
		IsPointer:    isPointerStr == "1",
	}, nil
}

func decodeMember(payload []byte) (Member, error) {
	r := newBlobReader(payload)
	uidPayload, err := r.next()
	if err != nil {
		return Member{}, err
	}
	uid, err := decodeUID(uidPayload)
	if err != nil {
		return Member{}, err
	}
	offset, err := r.nextUint(32)
	if err != nil {
		return Member{}, err
	}
	name, err := r.nextString()
	if err != nil {
		return Member{}, err
	}
	typPayload, err := r.next()
	if err != nil {
		return Member{}, err
	}
	typ, err := decodeTypeDescriptor(typPayload)
	if err != nil {
		return Member{}, err
	}
	return Member{UID: uid, Offset: uint32(offset), Name: name, Type: typ}, nil
}

func decodeMembers(payload []byte) ([]Member, error) {
	r := newBlobReader(payload)
	var members []Member
	for !r.exhausted() {
		b, err := r.next()
		if err != nil {
			return nil, err
		}
		m, err := decodeMember(b)
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, nil
}

func decodeObject(payload []byte) (*Object, error) {
	r := newBlobReader(payload)

	typPayload, err := r.next()
	if err != nil {
		return nil, err
	}
	typ, err := decodeTypeDescriptor(typPayload)
	if err != nil {
		return nil, err
	}

	version, err := r.nextUint(32)
	if err != nil {
		return nil, err
	}
	minVersion, err := r.nextUint(32)
	if err != nil {
		return nil, err
	}

	chainPayload, err := r.next()
	if err != nil {
		return nil, err
	}
	chain, err := decodeUIDChain(chainPayload)
	if err != nil {
		return nil, err
	}
	if len(chain) == 0 {
		panic("decoded object has empty UID chain")
	}

	membersPayload, err := r.next()
	if err != nil {
		return nil, err
	}
	members, err := decodeMembers(membersPayload)
	if err != nil {
		return nil, err
	}

	rawPayload, err := r.next()
	if err != nil {
		return nil, err
	}
	raw, err := rawFromDecimalText(typ, rawPayload)
	if err != nil {
		return nil, err
	}

	return &Object{
		UIDChain:   chain,
		Type:       typ,
		Version:    uint32(version),
		MinVersion: uint32(minVersion),
		Members:    members,
		Raw:        raw,
	}, nil
}

func decodeObjectPool(payload []byte) (*ObjectGraph, error) {
	graph := NewObjectGraph()
	r := newBlobReader(payload)
	for !r.exhausted() {
		b, err := r.next()
		if err != nil {
			return nil, err
		}
		obj, err := decodeObject(b)
		if err != nil {
			return nil, err
		}
		if obj.UID().IsValid() {
			graph.Insert(obj)
		}
	}
	return graph, nil
}
