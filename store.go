package csstheme

// Partition names a theme variable partition.
type Partition string

// Variable partitions.
const (
	Root  Partition = "root"
	Light Partition = "light"
	Dark  Partition = "dark"
)

// partitionFromKey maps a light/dark tree key to its partition.
func partitionFromKey(key string) (Partition, bool) {
	switch key {
	case string(Light):
		return Light, true
	case string(Dark):
		return Dark, true
	}
	return "", false
}

// Var is a single CSS custom property.
type Var struct {
	Name  string // "--color-text"
	Value string // "#1c1c1c"
}

// varList is an insertion-ordered name -> value map.
type varList struct {
	names  []string
	values map[string]string
}

func newVarList() *varList {
	return &varList{values: make(map[string]string)}
}

func (l *varList) set(name, value string) {
	if _, exists := l.values[name]; !exists {
		l.names = append(l.names, name)
	}
	l.values[name] = value
}

// Store holds theme variables partitioned into root, light and dark.
type Store struct {
	parts map[Partition]*varList
}

// NewStore creates an empty store.
func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Set writes a variable into one partition. Unknown partitions fall back to Root.
func (s *Store) Set(p Partition, name, value string) {
	s.list(p).set(name, value)
}

// Get returns the value of name in partition p.
func (s *Store) Get(p Partition, name string) (string, bool) {
	v, ok := s.list(p).values[name]
	return v, ok
}

// Has reports whether name is defined in any partition.
func (s *Store) Has(name string) bool {
	for _, l := range s.parts {
		if _, ok := l.values[name]; ok {
			return true
		}
	}
	return false
}

// Vars returns the variables of partition p in insertion order.
func (s *Store) Vars(p Partition) []Var {
	l := s.list(p)
	out := make([]Var, 0, len(l.names))
	for _, name := range l.names {
		out = append(out, Var{Name: name, Value: l.values[name]})
	}
	return out
}

// Len returns the number of variables in partition p.
func (s *Store) Len(p Partition) int {
	return len(s.list(p).names)
}

// Reset clears every partition.
func (s *Store) Reset() {
	s.parts = map[Partition]*varList{
		Root:  newVarList(),
		Light: newVarList(),
		Dark:  newVarList(),
	}
}

func (s *Store) list(p Partition) *varList {
	if l, ok := s.parts[p]; ok {
		return l
	}
	return s.parts[Root]
}
