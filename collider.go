package nature

// CollidesEntity tests initiator against candidate and returns the entities
// of candidate's tree that were hit, without duplicates.
//
// Only the initiator's predicate selects which of its facets is tested; the
// candidate side is always tested through its own predicate by CollidesRect.
// Swapping the arguments can therefore change the result.
//
// An entity never collides with itself: the empty result is returned when
// both arguments are the same entity, and hits inside initiator's own
// subtree are always dropped. That is stricter than excluding identical
// entities only, and it is one-sided:
//
//	CollidesEntity(parent, child) // nil: child is in parent's subtree
//	CollidesEntity(child, parent) // [parent] when parent's bounds are hit
//
// The second call still drops child and child's own descendants.
func CollidesEntity(initiator, candidate *Entity) []*Entity {
	hits := collidesEntity(initiator, candidate)
	n := 0
	for _, h := range hits {
		if !isAncestor(initiator, h) {
			hits[n] = h
			n++
		}
	}
	if n == 0 {
		return nil
	}
	return hits[:n]
}

func collidesEntity(initiator, candidate *Entity) []*Entity {
	if initiator.predicate == CollideNever || candidate.predicate == CollideNever {
		return nil
	}
	if initiator.handle == candidate.handle {
		return nil
	}
	// Bounds contain every finer facet, so this rejects soundly.
	if !initiator.bounds.Overlaps(candidate.bounds) {
		return nil
	}

	switch initiator.predicate {
	case CollideBounds:
		return CollidesRect(candidate, initiator.bounds)
	case CollideImages:
		rect := initiator.images.Current()
		if !rect.Bounds().Overlaps(candidate.bounds) {
			return nil
		}
		var hits []*Entity
		for _, img := range rect.Images() {
			hits = appendUnique(hits, CollidesRect(candidate, img.bounds)...)
		}
		return hits
	case CollideBodies:
		var hits []*Entity
		for _, body := range initiator.bodies {
			hits = appendUnique(hits, CollidesRect(candidate, body)...)
		}
		return hits
	case CollideChildren:
		var hits []*Entity
		for _, child := range initiator.children {
			hits = appendUnique(hits, collidesEntity(child, candidate)...)
		}
		return hits
	}
	return nil
}

// CollidesEntities concatenates CollidesEntity for every candidate. Children
// are never shared between candidates, so no cross-candidate dedup is needed.
func CollidesEntities(initiator *Entity, candidates []*Entity) []*Entity {
	var hits []*Entity
	for _, c := range candidates {
		hits = append(hits, CollidesEntity(initiator, c)...)
	}
	return hits
}

// CollidesRect tests rect against the facet of entity selected by entity's
// own predicate and returns the entities hit: entity itself for the bounds,
// images and bodies predicates, or the colliding descendants for children.
func CollidesRect(entity *Entity, rect Rect) []*Entity {
	if entity.predicate == CollideNever || !entity.bounds.Overlaps(rect) {
		return nil
	}
	switch entity.predicate {
	case CollideBounds:
		return []*Entity{entity}
	case CollideImages:
		if entity.images.Current().OverlapsImage(rect) {
			return []*Entity{entity}
		}
	case CollideBodies:
		for _, body := range entity.bodies {
			if body.Overlaps(rect) {
				return []*Entity{entity}
			}
		}
	case CollideChildren:
		var hits []*Entity
		for _, child := range entity.children {
			hits = appendUnique(hits, CollidesRect(child, rect)...)
		}
		return hits
	}
	return nil
}

// appendUnique appends each entity of add not already in hits, comparing by
// handle.
func appendUnique(hits []*Entity, add ...*Entity) []*Entity {
	for _, a := range add {
		dup := false
		for _, h := range hits {
			if h.handle == a.handle {
				dup = true
				break
			}
		}
		if !dup {
			hits = append(hits, a)
		}
	}
	return hits
}
