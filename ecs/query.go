package ecs

// Each2 calls fn for every entity that has a value in both a and b. It walks the
// smaller store's dense array and probes the other one, so the cost is
// O(min(len(a), len(b))). fn may mutate the values but must not add to or remove
// from either store.
func Each2[A, B any](a *ComponentStore[A], b *ComponentStore[B], fn func(EntityId, *A, *B)) {
	if a.Len() <= b.Len() {
		for id, va := range a.All() {
			if vb := b.Get(id); vb != nil {
				fn(id, va, vb)
			}
		}
		return
	}

	for id, vb := range b.All() {
		if va := a.Get(id); va != nil {
			fn(id, va, vb)
		}
	}
}
