package checkout

import (
	"github.com/google/btree"
)

// SpanSet stores a set of int64s as ranges of consecutive values in a B-tree,
// giving O(log n) Add, Remove and NextFree. NextFree(x) returns the smallest
// value >= x not in the set.

type span struct {
	l, r int64
}

type SpanSet struct {
	tree *btree.BTreeG[span]
}

func NewSpanSet() *SpanSet {
	return &SpanSet{
		tree: btree.NewG(2, func(a, b span) bool { return a.l < b.l }),
	}
}

// Add inserts x, merging with adjacent spans.
func (s *SpanSet) Add(x int64) {
	sp := span{x, x}

	// largest span starting <= x that touches x
	var prev *span
	s.tree.DescendLessOrEqual(sp, func(p span) bool {
		if p.r+1 >= x {
			prev = &p
		}
		return false
	})

	if prev != nil {
		s.tree.Delete(*prev)
		if x > prev.r {
			prev.r = x
		}
		// merge with successor if now adjacent
		var next *span
		s.tree.AscendGreaterOrEqual(*prev, func(n span) bool {
			if prev.r+1 >= n.l {
				next = &n
			}
			return false
		})
		if next != nil {
			s.tree.Delete(*next)
			if next.r > prev.r {
				prev.r = next.r
			}
		}
		s.tree.ReplaceOrInsert(*prev)
		return
	}

	var next *span
	s.tree.AscendGreaterOrEqual(sp, func(n span) bool {
		if n.l <= x+1 {
			next = &n
		}
		return false
	})
	if next != nil {
		s.tree.Delete(*next)
		if x < next.l {
			next.l = x
		}
		s.tree.ReplaceOrInsert(*next)
		return
	}
	s.tree.ReplaceOrInsert(sp)
}

// Remove deletes x, splitting its span if needed.
func (s *SpanSet) Remove(x int64) {
	var target *span
	s.tree.DescendLessOrEqual(span{x, x}, func(p span) bool {
		if p.l <= x && x <= p.r {
			target = &p
		}
		return false
	})
	if target == nil {
		return
	}
	s.tree.Delete(*target)
	if target.l < x {
		s.tree.ReplaceOrInsert(span{target.l, x - 1})
	}
	if x < target.r {
		s.tree.ReplaceOrInsert(span{x + 1, target.r})
	}
}

// NextFree returns the smallest value >= x not in the set.
func (s *SpanSet) NextFree(x int64) int64 {
	res := x
	s.tree.DescendLessOrEqual(span{x, x}, func(p span) bool {
		if p.l <= x && x <= p.r {
			res = p.r + 1
		}
		return false
	})
	return res
}
