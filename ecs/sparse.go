package ecs

// tombstone marks an unset slot in a sparse index.
const tombstone = ^uint32(0)

// sparseIndex maps an entity index to a position in a pool's dense
// arrays. Slots holding tombstone are unset.
type sparseIndex []uint32

func (s *sparseIndex) get(key uint32) (uint32, bool) {
	if uint64(key) >= uint64(len(*s)) {
		return 0, false
	}
	pos := (*s)[key]
	if pos == tombstone {
		return 0, false
	}
	return pos, true
}

func (s *sparseIndex) set(key, pos uint32) {
	if uint64(key) >= uint64(len(*s)) {
		oldLen := len(*s)
		newLen := max(oldLen*2, int(key)+1)

		grown := make(sparseIndex, newLen)
		copy(grown, *s)
		for i := oldLen; i < newLen; i++ {
			grown[i] = tombstone
		}
		*s = grown
	}
	(*s)[key] = pos
}

func (s *sparseIndex) unset(key uint32) {
	if uint64(key) < uint64(len(*s)) {
		(*s)[key] = tombstone
	}
}
