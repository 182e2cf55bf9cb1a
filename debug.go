package rsync

import (
	"github.com/rs/xid"
	"github.com/vmihailenco/msgpack/v5"
)

// DebugMember is one flattened member row in a DebugSnapshot.
type DebugMember struct {
	Name   string `msgpack:"name"`
	Type   string `msgpack:"type"`
	Offset uint32 `msgpack:"offset"`
}

// DebugObject is one flattened object row in a DebugSnapshot. Token is an
// opaque, sortable stand-in for the object's UID -- minted fresh on each
// snapshot via xid.New() rather than exposing the raw UID.ID, since a
// LiveUID's ID is a real address and a WireUID's ID is a decode-time
// token with no meaning outside its own archive.
type DebugObject struct {
	Token      string        `msgpack:"token"`
	Type       string        `msgpack:"type"`
	Version    uint32        `msgpack:"version"`
	MinVersion uint32        `msgpack:"min_version"`
	Members    []DebugMember `msgpack:"members,omitempty"`
	RawLen     int           `msgpack:"raw_len,omitempty"`
}

// DebugSnapshot is a generic, tooling-friendly rendering of an Archive's
// object graph: every object in ascending-UID order, independent of this
// package's own Go types. It is not a wire format and round-trips
// through nothing -- it exists purely for inspectors and dumps that want
// a fast generic decode.
type DebugSnapshot struct {
	Name     string        `msgpack:"name"`
	Comment  string        `msgpack:"comment"`
	HasRoot  bool          `msgpack:"has_root"`
	Objects  []DebugObject `msgpack:"objects"`
	tokens   map[UID]string
}

// DebugSnapshot builds a DebugSnapshot of a's current object graph.
func (a *Archive) DebugSnapshot() *DebugSnapshot {
	snap := &DebugSnapshot{
		Name:    a.name,
		Comment: a.comment,
		HasRoot: a.HasRoot(),
		tokens:  make(map[UID]string),
	}
	for _, uid := range a.objects.UIDs() {
		snap.tokens[uid] = xid.New().String()
	}
	for _, uid := range a.objects.UIDs() {
		obj := a.objects.Lookup(uid)
		row := DebugObject{
			Token:      snap.tokens[uid],
			Type:       obj.Type.String(),
			Version:    obj.Version,
			MinVersion: obj.MinVersion,
			RawLen:     len(obj.Raw),
		}
		for _, m := range obj.Members {
			row.Members = append(row.Members, DebugMember{
				Name:   m.Name,
				Type:   m.Type.String(),
				Offset: m.Offset,
			})
		}
		snap.Objects = append(snap.Objects, row)
	}
	return snap
}

// MarshalMsgpack encodes the snapshot with github.com/vmihailenco/msgpack,
// exercised here rather than in the canonical wire codec (spec.md's
// bespoke length-prefixed grammar stays hand-rolled; see DESIGN.md).
func (s *DebugSnapshot) MarshalMsgpack() ([]byte, error) {
	return msgpack.Marshal(struct {
		Name    string        `msgpack:"name"`
		Comment string        `msgpack:"comment"`
		HasRoot bool          `msgpack:"has_root"`
		Objects []DebugObject `msgpack:"objects"`
	}{s.Name, s.Comment, s.HasRoot, s.Objects})
}
