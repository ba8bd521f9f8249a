package xmlstream

// OpenFunc handles an opened element.
type OpenFunc func(e Element) error

// CloseFunc handles a closed element.
type CloseFunc func() error

// Mux dispatches elements to functions registered by element name. Elements
// without a registered function are ignored.
type Mux struct {
	open  map[string]OpenFunc
	close map[string]CloseFunc
}

// NewMux creates an empty Mux.
func NewMux() *Mux {
	return &Mux{
		open:  make(map[string]OpenFunc),
		close: make(map[string]CloseFunc),
	}
}

// Open registers fn for opened elements named name.
func (m *Mux) Open(name string, fn OpenFunc) *Mux {
	m.open[name] = fn
	return m
}

// Close registers fn for closed elements named name.
func (m *Mux) Close(name string, fn CloseFunc) *Mux {
	m.close[name] = fn
	return m
}

// Handles reports whether name has an open or close function.
func (m *Mux) Handles(name string) bool {
	_, o := m.open[name]
	_, c := m.close[name]
	return o || c
}

// OpenTag implements Handler.
func (m *Mux) OpenTag(e Element) error {
	if fn, ok := m.open[e.Name]; ok {
		return fn(e)
	}
	return nil
}

// CloseTag implements Handler.
func (m *Mux) CloseTag(name string) error {
	if fn, ok := m.close[name]; ok {
		return fn()
	}
	return nil
}

var _ Handler = (*Mux)(nil)
