// sim/transition.go
package sim

// Source is the randomness consumed by the transition rules. *math/rand.Rand
// satisfies it.
type Source interface {
	// Intn returns a uniform integer in [0, n). n must be positive.
	Intn(n int) int
}

// uniformInt returns a uniform integer in [lo, hi].
func uniformInt(src Source, lo, hi int) int {
	return lo + src.Intn(hi-lo+1)
}

// chooseDistinct picks k distinct elements of candidates uniformly at random
// using a partial Fisher-Yates shuffle over a copy. candidates is not modified.
// If k exceeds len(candidates), every candidate is returned in random order.
func chooseDistinct(src Source, candidates []int, k int) []int {
	pool := append([]int(nil), candidates...)
	if k > len(pool) {
		k = len(pool)
	}
	for i := 0; i < k; i++ {
		j := i + src.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// Apply produces one trial outcome for op. initial is never modified.
// op must have passed ValidateOperation against initial.
func Apply(op Operation, src Source, initial QualityVector) QualityVector {
	switch op {
	case Reroll:
		return reroll(src, len(initial))
	case IncreaseTwoDecreaseOne:
		return increaseTwoDecreaseOne(src, initial)
	default:
		panic("sim: Apply called with unvalidated operation " + op.String())
	}
}

func reroll(src Source, n int) QualityVector {
	out := make(QualityVector, n)
	for i := range out {
		out[i] = Quality(uniformInt(src, int(MinQuality), int(MaxQuality)))
	}
	return out
}

func increaseTwoDecreaseOne(src Source, initial QualityVector) QualityVector {
	n := len(initial)
	out := initial.Clone()

	// With every item but one at the floor, draw the increases among the
	// floor items so the remaining one stays the decrease target.
	var increasable []int
	if initial.Count(MinQuality) == n-1 {
		increasable = indicesWhere(out, func(q Quality) bool { return q == MinQuality })
	} else {
		increasable = indicesWhere(out, func(q Quality) bool { return q < MaxQuality })
	}
	increase := chooseDistinct(src, increasable, 2)

	chosen := make(map[int]bool, len(increase))
	for _, i := range increase {
		chosen[i] = true
	}
	var decreasable []int
	for i, q := range out {
		if q > MinQuality && !chosen[i] {
			decreasable = append(decreasable, i)
		}
	}

	// An empty decrease pool skips the decrease for this trial.
	if len(decreasable) > 0 {
		d := decreasable[src.Intn(len(decreasable))]
		out[d] = Quality(uniformInt(src, int(MinQuality), int(out[d])-1))
	}
	for _, i := range increase {
		out[i] = Quality(uniformInt(src, int(out[i])+1, int(MaxQuality)))
	}
	return out
}

func indicesWhere(v QualityVector, keep func(Quality) bool) []int {
	var idx []int
	for i, q := range v {
		if keep(q) {
			idx = append(idx, i)
		}
	}
	return idx
}
