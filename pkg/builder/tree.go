package builder

// depthTree locates insertion points in a recursive forest without holding a
// reference to the current node. depth is the number of open, not yet closed
// nodes; 0 means no node is open.
//
// Every insertion goes to the tail of a sequence and open/close calls are well
// nested, so the open node at level n is always reached by taking the last
// element n times, starting at the roots.
type depthTree[T any] struct {
	roots    *[]*T
	children func(*T) *[]*T
	depth    int
}

func newDepthTree[T any](roots *[]*T, children func(*T) *[]*T) *depthTree[T] {
	return &depthTree[T]{roots: roots, children: children}
}

// target returns the sequence a newly opened node is appended to.
func (t *depthTree[T]) target() (*[]*T, error) {
	seq := t.roots
	for i := 0; i < t.depth; i++ {
		if len(*seq) == 0 {
			return nil, errMissingNode(i)
		}
		seq = t.children((*seq)[len(*seq)-1])
	}
	return seq, nil
}

// current returns the innermost open node, or nil when none is open.
func (t *depthTree[T]) current() (*T, error) {
	if t.depth == 0 {
		return nil, nil
	}

	seq := t.roots
	var node *T
	for i := 0; i < t.depth; i++ {
		if len(*seq) == 0 {
			return nil, errMissingNode(i)
		}
		node = (*seq)[len(*seq)-1]
		seq = t.children(node)
	}
	return node, nil
}

// open appends node below the innermost open node and makes it current.
func (t *depthTree[T]) open(node *T) error {
	seq, err := t.target()
	if err != nil {
		return err
	}
	*seq = append(*seq, node)
	t.depth++
	return nil
}

// openRoot appends node to the roots regardless of depth and makes it current.
// Callers guarantee that such nodes only occur at the structural root.
func (t *depthTree[T]) openRoot(node *T) {
	*t.roots = append(*t.roots, node)
	t.depth++
}

// close leaves the innermost open node.
func (t *depthTree[T]) close() error {
	if t.depth == 0 {
		return ErrDepthUnderflow
	}
	t.depth--
	return nil
}
