package rsync

import (
	"strconv"
	"time"
)

// wireMagic is the fixed 5-byte prefix identifying the archive wire
// format, spec.md §4.4/§6.
const wireMagic = "Srx1v"

// wireMinorVersion is written into every root blob and read and ignored
// by decoders, reserving forward-compatible extension room.
const wireMinorVersion = 0

// encodeArchive implements the grammar of spec.md §4.4:
//
//	File       := "Srx1v" B(Root)
//	Root       := B(int minor_version) Enc(UID root) Enc(ObjectPool) B(name) B(comment) Enc(time created) Enc(time modified)
//	ObjectPool := B( concatenation of Enc(Object) for each object )
//	Object     := B( Enc(TypeDescriptor) B(version) B(min_version) Enc(UIDChain) Enc(Members) Enc(Primitive) )
//	TypeDescriptor := B( B(base_kind) B(user_type_name) B(size) B(is_pointer) )
//	UIDChain   := B( concatenation of Enc(UID) )
//	UID        := B( B(id_as_size_t) B(size_as_size_t) )
//	Members    := B( concatenation of Enc(Member) )
//	Member     := B( Enc(UID) B(offset) B(name) Enc(TypeDescriptor) )
//	Primitive  := B( decimal-text value, or empty for non-primitives )
//
// B(x) denotes len(x)":"x.
func encodeArchive(a *Archive) []byte {
	start := time.Now()
	defer func() { metricsEncodeDuration.Observe(time.Since(start).Seconds()) }()

	var root blobBuilder
	root.blobString(strconv.Itoa(wireMinorVersion))
	root.raw(encodeUID(a.root))
	root.raw(encodeObjectPool(a.objects))
	root.blobString(a.name)
	root.blobString(a.comment)
	root.blobString(strconv.FormatInt(a.createdAt, 10))
	root.blobString(strconv.FormatInt(a.modifiedAt, 10))

	out := make([]byte, 0, len(root.bytes())+16)
	out = append(out, wireMagic...)
	out = writeBlob(out, root.bytes())
	return out
}

func encodeUID(uid UID) []byte {
	var b blobBuilder
	b.blobString(strconv.FormatUint(uid.ID, 10))
	b.blobString(strconv.FormatUint(uint64(uid.Size), 10))
	return writeBlob(nil, b.bytes())
}

func encodeUIDChain(chain UIDChain) []byte {
	var b blobBuilder
	for _, uid := range chain {
		b.raw(encodeUID(uid))
	}
	return writeBlob(nil, b.bytes())
}

func encodeTypeDescriptor(t TypeDescriptor) []byte {
	var b blobBuilder
	b.blobString(t.BaseKind.String())
	b.blobString(t.UserTypeName)
	b.blobString(strconv.FormatUint(uint64(t.Size), 10))
	if t.IsPointer {
		b.blobString("1")
	} else {
		b.blobString("0")
	}
	return writeBlob(nil, b.bytes())
}

func encodeMember(m Member) []byte {
	var b blobBuilder
	b.raw(encodeUID(m.UID))
	b.blobString(strconv.FormatUint(uint64(m.Offset), 10))
	b.blobString(m.Name)
	b.raw(encodeTypeDescriptor(m.Type))
	return writeBlob(nil, b.bytes())
}

func encodeMembers(members []Member) []byte {
	var b blobBuilder
	for _, m := range members {
		b.raw(encodeMember(m))
	}
	return writeBlob(nil, b.bytes())
}

func encodePrimitive(t TypeDescriptor, raw []byte) []byte {
	text, err := decimalTextFromRaw(t, raw)
	if err != nil {
		panic(err)
	}
	return writeBlob(nil, text)
}

func encodeObject(obj *Object) []byte {
	var b blobBuilder
	b.raw(encodeTypeDescriptor(obj.Type))
	b.blobString(strconv.FormatUint(uint64(obj.Version), 10))
	b.blobString(strconv.FormatUint(uint64(obj.MinVersion), 10))
	b.raw(encodeUIDChain(obj.UIDChain))
	b.raw(encodeMembers(obj.Members))
	b.raw(encodePrimitive(obj.Type, obj.Raw))
	return writeBlob(nil, b.bytes())
}

func encodeObjectPool(g *ObjectGraph) []byte {
	var b blobBuilder
	g.Each(func(uid UID, obj *Object) {
		b.raw(encodeObject(obj))
	})
	return writeBlob(nil, b.bytes())
}
