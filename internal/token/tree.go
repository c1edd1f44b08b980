package token

// Tree is an index-based scope forest: nodes live in a flat slice and
// parent links are plain indices, avoiding cyclic ownership (spec §9,
// "Ownership and tree shape"). It also carries the per-scope variable
// tables as a parallel side table, one map per scope index.
type Tree struct {
	Scopes []Scope
	Vars   []map[string]VarInfo
}

// NewTree returns a Tree containing only the Global root at id 0.
func NewTree() *Tree {
	t := &Tree{}
	t.Scopes = append(t.Scopes, Scope{ID: 0, Parent: NoParent, Kind: Global})
	t.Vars = append(t.Vars, map[string]VarInfo{})
	return t
}

// Open creates a new scope as a child of parent and returns its id.
func (t *Tree) Open(parent int, kind ScopeKind, name string) int {
	id := len(t.Scopes)
	t.Scopes = append(t.Scopes, Scope{ID: id, Parent: parent, Kind: kind, Name: name})
	t.Vars = append(t.Vars, map[string]VarInfo{})
	return id
}

// Declare folds a declarator observation into scope id's variable table.
func (t *Tree) Declare(id int, name string, stars, arrays int) {
	vars := t.Vars[id]
	vi, ok := vars[name]
	if !ok {
		vi = NewVarInfo()
	}
	vi.Observe(stars, arrays)
	vars[name] = vi
}

// Resolve walks from scope id up to the root looking for name, returning
// its VarInfo and true on success. Mirrors resolve_ptr_level in the
// reference implementation.
func (t *Tree) Resolve(id int, name string) (VarInfo, bool) {
	for cur := id; cur != NoParent; cur = t.Scopes[cur].Parent {
		if vi, ok := t.Vars[cur][name]; ok {
			return vi, true
		}
	}
	return VarInfo{}, false
}

// Kind returns the ScopeKind of id, or Global if id is out of range.
func (t *Tree) Kind(id int) ScopeKind {
	if id < 0 || id >= len(t.Scopes) {
		return Global
	}
	return t.Scopes[id].Kind
}
