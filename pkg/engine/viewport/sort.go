package viewport

import (
	"sort"

	"github.com/zyedidia/generic/stack"
)

// Sentinel order values; sort bookkeeping lives in a side table so the
// sprite records themselves stay untouched by the resolver.
const (
	orderCompared = ^uint32(0)     // predecessor search ran, sprite still waits for output
	orderReturned = ^uint32(0) - 1 // sprite was emitted; later stack copies are skipped
)

// sortParentSprites resolves the paint order of the accumulated parent
// sprites and returns it as indices into ps, back to front.
//
// Two sprites constrain each other when their bounding boxes overlap on all
// three axes (the one with the smaller coordinate sum paints first) or when
// one lies entirely on the far side of the other along some axis without
// being strictly beyond it on any. The relation is only a partial order and
// can even be cyclic for adversarial inputs; cycles degrade to a
// deterministic order instead of failing.
//
// The sprites are mostly in paint order already, so the resolver works as a
// depth-first emission over a stack seeded with the insertion order: before
// a sprite is emitted its not-yet-emitted predecessors are pushed on top of
// it, found by scanning an index sorted by XMin+YMin (a cheap necessary
// condition: only sprites with XMin+YMin <= s.XMax+s.YMax can precede s).
// Each sprite's predecessor search runs at most once, which bounds the work
// and guarantees termination on cyclic inputs.
func sortParentSprites(ps []ParentSprite) []int {
	out := make([]int, 0, len(ps))
	if len(ps) < 2 {
		for i := range ps {
			out = append(out, i)
		}
		return out
	}

	order := make([]uint32, len(ps))
	nextOrder := uint32(0)
	toEmit := stack.New[int]()

	// Seed the stack in reverse so popping yields insertion order. Earlier
	// sprites get higher order keys; predecessors are later re-pushed in
	// descending key order, which keeps the result stable.
	for i := len(ps) - 1; i >= 0; i-- {
		toEmit.Push(i)
		order[i] = nextOrder
		nextOrder++
	}

	// Index of unprocessed sprites sorted by XMin+YMin. Sprites leave it
	// once their predecessor search has run; removal is by mark to keep the
	// scan cheap.
	type indexEntry struct {
		key    int
		sprite int
	}
	index := make([]indexEntry, len(ps))
	for i := range ps {
		index[i] = indexEntry{key: ps[i].Box.XMin + ps[i].Box.YMin, sprite: i}
	}
	sort.SliceStable(index, func(a, b int) bool { return index[a].key < index[b].key })
	removed := make([]bool, len(ps))

	var preceding []int

	for toEmit.Size() > 0 {
		s := toEmit.Pop()

		if order[s] == orderReturned {
			continue
		}
		if order[s] == orderCompared {
			out = append(out, s)
			order[s] = orderReturned
			continue
		}

		preceding = preceding[:0]
		sb := &ps[s].Box

		// The scan bound uses max(min, max) per axis so the entry of s
		// itself always falls inside the scanned prefix and gets removed.
		ssum := max(sb.XMax, sb.XMin) + max(sb.YMax, sb.YMin)
		for i := 0; i < len(index) && index[i].key <= ssum; i++ {
			p := index[i].sprite
			if removed[p] {
				continue
			}
			if p == s {
				removed[p] = true
				continue
			}

			pb := &ps[p].Box
			if sb.XMax < pb.XMin || sb.YMax < pb.YMin || sb.ZMax < pb.ZMin {
				// p is strictly beyond s on some axis, it cannot precede s.
				continue
			}
			if sb.XMin <= pb.XMax && sb.YMin <= pb.YMax && sb.ZMin <= pb.ZMax {
				// Full overlap: the coordinate sums decide, ties keep s first.
				if sb.Sum() <= pb.Sum() {
					continue
				}
			}
			preceding = append(preceding, p)
		}

		if len(preceding) == 0 {
			out = append(out, s)
			order[s] = orderReturned
			continue
		}

		// Single-predecessor shortcut: if p cannot have further
		// predecessors beyond those already implied by s's box, emit the
		// pair directly.
		if len(preceding) == 1 {
			p := preceding[0]
			pb := &ps[p].Box
			if pb.XMax <= sb.XMax && pb.YMax <= sb.YMax && pb.ZMax <= sb.ZMax {
				removed[p] = true
				order[p] = orderReturned
				order[s] = orderReturned
				out = append(out, p, s)
				continue
			}
		}

		sort.Slice(preceding, func(a, b int) bool {
			return order[preceding[a]] > order[preceding[b]]
		})

		order[s] = orderCompared
		toEmit.Push(s)
		for _, p := range preceding {
			order[p] = nextOrder
			nextOrder++
			toEmit.Push(p)
		}
	}

	return out
}
