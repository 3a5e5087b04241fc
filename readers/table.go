package readers

// Table maps record ids to rows and remembers the order in which ids were
// first scanned. A repeated id replaces the row but keeps its first position.
// The zero value is an empty table ready to use.
type Table[T any] struct {
	ids  []int
	rows map[int]T
}

func NewTable[T any]() *Table[T] {
	return &Table[T]{rows: make(map[int]T)}
}

func (t *Table[T]) Put(id int, row T) {
	if t.rows == nil {
		t.rows = make(map[int]T)
	}
	if _, ok := t.rows[id]; !ok {
		t.ids = append(t.ids, id)
	}
	t.rows[id] = row
}

func (t *Table[T]) Get(id int) (row T, ok bool) {
	row, ok = t.rows[id]
	return
}

func (t *Table[T]) Len() int { return len(t.ids) }

// IDs returns a copy of the ids in scan order
func (t *Table[T]) IDs() (ids []int) {
	ids = make([]int, len(t.ids))
	copy(ids, t.ids)
	return
}

// Each visits the rows in scan order and stops at the first error fn returns
func (t *Table[T]) Each(fn func(id int, row T) error) (err error) {
	for _, id := range t.ids {
		if err = fn(id, t.rows[id]); err != nil {
			return
		}
	}
	return
}
