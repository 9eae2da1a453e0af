package ecs

// Each2 iterates over entities that have both component A and B.
// It walks the smaller store in its insertion order and probes the larger one.
func Each2[A, B any](sa *Store[A], sb *Store[B], fn func(EntityID, *A, *B)) {
	if sa.Len() <= sb.Len() {
		for i := 0; i < len(sa.ids); i++ {
			id := sa.ids[i]
			if b, ok := sb.Get(id); ok {
				fn(id, sa.data[i], b)
			}
		}
		return
	}
	for i := 0; i < len(sb.ids); i++ {
		id := sb.ids[i]
		if a, ok := sa.Get(id); ok {
			fn(id, a, sb.data[i])
		}
	}
}
