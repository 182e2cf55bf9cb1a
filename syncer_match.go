package rsync

// matchMember implements the structural resolution cascade of spec.md
// §4.5: name+type, then type alone, then offset, then declaration-
// sequence index. Type equality is a hard precondition throughout --
// values are never coerced across primitive widths. Returns nil if no
// candidate survives the cascade.
func (s *Syncer) matchMember(d, sObj *Object, ms Member) *Member {
	// Rule 1: name match, accepted only if the type also agrees. A
	// name clash on a changed type gives up immediately rather than
	// falling through to the type-only search below.
	if byName := d.MemberByName(ms.Name); byName != nil {
		if byName.Type == ms.Type {
			return byName
		}
		return nil
	}

	// Rule 2: collect every destination member with the same type.
	var candidates []*Member
	for i := range d.Members {
		if d.Members[i].Type == ms.Type {
			candidates = append(candidates, &d.Members[i])
		}
	}
	switch len(candidates) {
	case 0:
		return nil
	case 1:
		return candidates[0]
	}

	// Rule 3: offset tie-break among same-type candidates.
	for _, c := range candidates {
		if c.Offset == ms.Offset {
			return c
		}
	}

	// Rule 4: sequence-index tie-break -- prefer the candidate at the
	// same declaration-order index within d.Members as ms has within
	// sObj.Members.
	k := sObj.SequenceIndexOf(ms)
	if k < 0 {
		panic("matchMember: source member missing from its own declared sequence")
	}
	for _, c := range candidates {
		if d.SequenceIndexOf(*c) == k {
			return c
		}
	}

	// Rule 5: give up.
	return nil
}
