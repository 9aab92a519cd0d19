package dice

// Distribution maps each achievable roll sum to the number of outcome
// tuples producing it.
//
// Invariant: counts sum to Combination.Outcomes(); every key lies in
// [MinSum, MaxSum]. A Distribution is never mutated after Enumerate
// returns it.
type Distribution map[int]int64

// Total returns the number of outcomes covered by the distribution.
func (d Distribution) Total() int64 {
	var total int64
	for _, count := range d {
		total += count
	}
	return total
}

// Enumerator lazily walks the Cartesian product of per-die face ranges
// [1..S], yielding one roll sum per outcome tuple. The walk is exhaustive:
// its length is the product of all face counts, which grows exponentially
// with the number of dice. That cost is intrinsic to exact enumeration —
// there is no sampling shortcut that preserves exact counts.
//
// The sequence is finite and restartable via Reset.
type Enumerator struct {
	combo Combination
	faces []int
	sum   int
	done  bool
}

// NewEnumerator creates an Enumerator over all roll outcomes of c.
//
// Precondition: every face count in c is >= 1.
func NewEnumerator(c Combination) *Enumerator {
	return &Enumerator{combo: c}
}

// Next returns the sum of the next outcome tuple, or ok == false once
// every tuple has been visited.
func (e *Enumerator) Next() (sum int, ok bool) {
	if e.done {
		return 0, false
	}
	if e.faces == nil {
		// First outcome: every die shows 1.
		e.faces = make([]int, len(e.combo))
		for i := range e.faces {
			e.faces[i] = 1
		}
		e.sum = len(e.combo)
	}

	sum = e.sum
	e.advance()
	return sum, true
}

// Reset rewinds the enumerator to the first outcome tuple.
func (e *Enumerator) Reset() {
	e.faces = nil
	e.done = false
}

// advance rolls the rightmost die that has faces left, odometer style,
// resetting every die after it to 1.
func (e *Enumerator) advance() {
	for i := len(e.faces) - 1; i >= 0; i-- {
		if e.faces[i] < e.combo[i] {
			e.faces[i]++
			e.sum++
			return
		}
		e.sum -= e.faces[i] - 1
		e.faces[i] = 1
	}
	e.done = true
}

// Enumerate folds the full outcome walk of c into its sum distribution.
// Cost is Outcomes(), the product of all face counts; see Enumerator.
//
// Postcondition: the returned Distribution totals exactly c.Outcomes().
func Enumerate(c Combination) Distribution {
	dist := make(Distribution, c.MaxSum()-c.MinSum()+1)
	e := NewEnumerator(c)
	for sum, ok := e.Next(); ok; sum, ok = e.Next() {
		dist[sum]++
	}
	return dist
}
