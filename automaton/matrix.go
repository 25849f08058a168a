package automaton

import "sort"

// BoolMatrix is a sparse n×n boolean matrix, row-major: data[i] is the set
// of columns j for which M[i][j] = true. This mirrors the Index+Data
// bookkeeping idiom in lvlath's graph/matrix package (there: a dense
// int64 adjacency keyed by a vertex->index map), generalized to a sparse
// boolean representation because the FA algebra's intersection
// (Kronecker product) and transitive closure routinely produce matrices
// far larger and far sparser than the dense case that package handles.
type BoolMatrix struct {
	n    int
	data []map[int]struct{}
}

// NewBoolMatrix returns an n×n all-false matrix.
func NewBoolMatrix(n int) *BoolMatrix {
	m := &BoolMatrix{n: n, data: make([]map[int]struct{}, n)}
	for i := range m.data {
		m.data[i] = make(map[int]struct{})
	}
	return m
}

// N returns the matrix dimension.
func (m *BoolMatrix) N() int { return m.n }

// Set marks M[i][j] = true.
func (m *BoolMatrix) Set(i, j int) {
	m.data[i][j] = struct{}{}
}

// Get reports whether M[i][j] is set.
func (m *BoolMatrix) Get(i, j int) bool {
	_, ok := m.data[i][j]
	return ok
}

// Row returns the sorted column indices set in row i.
func (m *BoolMatrix) Row(i int) []int {
	out := make([]int, 0, len(m.data[i]))
	for j := range m.data[i] {
		out = append(out, j)
	}
	sort.Ints(out)
	return out
}

// Nnz returns the number of set cells, used to detect fixed points during
// transitive-closure / fixed-point iteration without a dense scan.
func (m *BoolMatrix) Nnz() int {
	n := 0
	for _, row := range m.data {
		n += len(row)
	}
	return n
}

// Clone returns a deep copy.
func (m *BoolMatrix) Clone() *BoolMatrix {
	c := NewBoolMatrix(m.n)
	for i, row := range m.data {
		for j := range row {
			c.data[i][j] = struct{}{}
		}
	}
	return c
}

// Or computes the elementwise OR of m and other in place, modifying m, and
// reports whether anything new was set.
func (m *BoolMatrix) Or(other *BoolMatrix) (changed bool) {
	for i, row := range other.data {
		for j := range row {
			if !m.Get(i, j) {
				m.Set(i, j)
				changed = true
			}
		}
	}
	return changed
}

// Mul computes the boolean matrix product a·b (both n×n).
func Mul(a, b *BoolMatrix) *BoolMatrix {
	n := a.n
	out := NewBoolMatrix(n)
	for i := 0; i < n; i++ {
		for k := range a.data[i] {
			for j := range b.data[k] {
				out.Set(i, j)
			}
		}
	}
	return out
}

// Kron computes the Kronecker (tensor) product of a (size p) and b (size
// q), yielding a pq×pq matrix indexed by (i*q+j). This is the core
// primitive behind FA intersection (spec.md §4.1) and RSM/FA intersection
// (spec.md §4.2).
func Kron(a, b *BoolMatrix) *BoolMatrix {
	p, q := a.n, b.n
	out := NewBoolMatrix(p * q)
	for i, row := range a.data {
		for i2 := range row {
			for j, row2 := range b.data {
				for j2 := range row2 {
					out.Set(i*q+j, i2*q+j2)
				}
			}
		}
	}
	return out
}

// TransitiveClosure computes M⁺ = ⋁_{k≥1} Mᵏ by repeated squaring,
// following spec.md §4.1: M' = M + M·M, iterated until nnz stabilizes.
// This is the non-reflexive variant; callers that need the reflexive
// closure add the identity themselves.
func TransitiveClosure(m *BoolMatrix) *BoolMatrix {
	cur := m.Clone()
	for {
		sq := Mul(cur, cur)
		changed := cur.Or(sq)
		if !changed {
			return cur
		}
	}
}

// Identity returns the n×n identity matrix.
func Identity(n int) *BoolMatrix {
	m := NewBoolMatrix(n)
	for i := 0; i < n; i++ {
		m.Set(i, i)
	}
	return m
}
