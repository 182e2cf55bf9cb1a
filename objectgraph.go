package rsync

import "sort"

// ObjectGraph is an owning store mapping UID to Object. It is the
// ObjectGraph component of spec.md §4.2. NoUID keys are never inserted;
// reads and writes through NoUID resolve to a shared invalid sentinel.
type ObjectGraph struct {
	objects map[UID]*Object
}

func NewObjectGraph() *ObjectGraph {
	return &ObjectGraph{objects: make(map[UID]*Object)}
}

// Insert adds obj keyed by its head UID. Replacing an invalid placeholder
// with a valid Object is allowed; replacing an already-valid Object is a
// no-op, matching spec.md §4.2.
func (g *ObjectGraph) Insert(obj *Object) {
	if obj == nil {
		return
	}
	uid := obj.UID()
	if !uid.IsValid() {
		return
	}
	if existing, ok := g.objects[uid]; ok && existing.IsValid() {
		return
	}
	g.objects[uid] = obj
}

// Lookup returns the Object for uid, or the shared invalid sentinel if
// uid is NoUID or absent.
func (g *ObjectGraph) Lookup(uid UID) *Object {
	if !uid.IsValid() {
		return &invalidObject
	}
	obj, ok := g.objects[uid]
	if !ok {
		return &invalidObject
	}
	return obj
}

func (g *ObjectGraph) Has(uid UID) bool {
	if !uid.IsValid() {
		return false
	}
	_, ok := g.objects[uid]
	return ok
}

func (g *ObjectGraph) Erase(uid UID) {
	delete(g.objects, uid)
}

func (g *ObjectGraph) Clear() {
	g.objects = make(map[UID]*Object)
}

func (g *ObjectGraph) Len() int { return len(g.objects) }

// UIDs returns every key in ascending order, giving encode() a
// deterministic iteration order as spec.md §3 requires.
func (g *ObjectGraph) UIDs() []UID {
	uids := make([]UID, 0, len(g.objects))
	for u := range g.objects {
		uids = append(uids, u)
	}
	sort.Slice(uids, func(i, j int) bool {
		if uids[i].ID != uids[j].ID {
			return uids[i].ID < uids[j].ID
		}
		return uids[i].Size < uids[j].Size
	})
	return uids
}

// Each calls fn for every Object in ascending UID order.
func (g *ObjectGraph) Each(fn func(uid UID, obj *Object)) {
	for _, uid := range g.UIDs() {
		fn(uid, g.objects[uid])
	}
}

func (g *ObjectGraph) clone() *ObjectGraph {
	out := NewObjectGraph()
	for uid, obj := range g.objects {
		out.objects[uid] = obj.clone()
	}
	return out
}
