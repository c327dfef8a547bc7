package ast

import "fmt"

// Store owns every node created while compiling a set of Slice files. It assigns each
// node a stable NodeID, keeps every node reachable for ordered, repeatable iteration
// (the patchers all need to walk "every node" more than once), and maintains the global
// identifier index used to resolve type references and doc-comment links.
//
// The seventeen built-in primitives are inserted first, at construction time, so they
// always occupy NodeIDs 0..16 regardless of what any particular compilation declares;
// every later node the parser adds is appended after them in the order it is created.
type Store struct {
	nodes      []Node
	primitives [primitiveKindCount]*Primitive
	byScopedID map[string]Entity
}

// NewStore creates an empty Store pre-populated with the seventeen built-in primitives.
func NewStore() *Store {
	s := &Store{byScopedID: make(map[string]Entity)}
	for kind := PrimitiveKind(0); int(kind) < len(s.primitives); kind++ {
		p := &Primitive{id: NodeID(len(s.nodes)), kind: kind}
		s.primitives[kind] = p
		s.nodes = append(s.nodes, p)
	}
	return s
}

// Primitive returns the Store's singleton node for the given primitive kind.
func (s *Store) Primitive(kind PrimitiveKind) *Primitive {
	return s.primitives[kind]
}

// FindPrimitive resolves a bare identifier (e.g. "int32") to its built-in Primitive node.
// Primitives are global and unscoped, so unlike FindNodeWithScope this never consults a
// scope: "int32" always means the primitive, never a user definition named "int32".
func (s *Store) FindPrimitive(identifier string) (*Primitive, bool) {
	for kind, name := range primitiveNames {
		if name == identifier {
			return s.primitives[kind], true
		}
	}
	return nil, false
}

// nextID allocates the next NodeID in creation order.
func (s *Store) nextID() NodeID {
	return NodeID(len(s.nodes))
}

// idAssignable is satisfied by every node constructor in this package; it exists so
// AddNode/AddEntity can stamp a node with its final, store-assigned NodeID at the
// moment it actually joins the store, regardless of the order its constructor ran in.
type idAssignable interface {
	setID(NodeID)
}

// AddNode registers a non-entity node (Sequence, Dictionary) with the Store so it
// participates in ordered iteration. Entities should be added with AddEntity instead,
// since that also indexes them for identifier lookup.
func (s *Store) AddNode(n Node) {
	if settable, ok := n.(idAssignable); ok {
		settable.setID(s.nextID())
	}
	s.nodes = append(s.nodes, n)
}

// AddEntity registers a named node, indexing it under its fully scoped identifier so
// later passes can resolve references to it. Two entities colliding on the same scoped
// identifier are not rejected here; redefinition is caught and reported as a diagnostic
// by a validator that runs after every entity already exists, using FindDuplicates.
func (s *Store) AddEntity(e Entity) {
	if settable, ok := e.(idAssignable); ok {
		settable.setID(s.nextID())
	}
	s.nodes = append(s.nodes, e)
	// A later entity with the same scoped identifier overwrites the index entry; lookups
	// always resolve to the most recently added definition, while FindDuplicates (which
	// scans nodes, not this index) still sees every colliding entity for diagnosis.
	s.byScopedID[ScopedIdentifier(e)] = e
}

// AllNodes returns every node in the Store in stable creation order (primitives first).
// Patchers use this for their single linear pass over the whole AST.
func (s *Store) AllNodes() []Node {
	return s.nodes
}

// FindNode resolves a fully scoped identifier (e.g. "::Demo::Point") to its entity.
func (s *Store) FindNode(scopedIdentifier string) (Entity, bool) {
	e, ok := s.byScopedID[scopedIdentifier]
	return e, ok
}

// FindNodeWithScope resolves an identifier as written (possibly relative) against the
// scope it appeared in, following Slice's outer-scope fallback: if "Foo" isn't found in
// "::A::B", the lookup retries in "::A", then in "::" before giving up.
//
// A reference that already starts with "::" is absolute and is looked up directly,
// without the walk.
func (s *Store) FindNodeWithScope(identifier, scope string) (Entity, bool) {
	if len(identifier) >= 2 && identifier[:2] == "::" {
		return s.FindNode(identifier)
	}

	current := scope
	for {
		candidate := current + "::" + identifier
		if current == "::" {
			candidate = "::" + identifier
		}
		if e, ok := s.byScopedID[candidate]; ok {
			return e, true
		}
		if current == "::" {
			return nil, false
		}
		current = parentScope(current)
	}
}

// parentScope strips the last path segment off a scope string, e.g. "::A::B" -> "::A".
func parentScope(scope string) string {
	for i := len(scope) - 2; i >= 0; i-- {
		if scope[i] == ':' && i > 0 && scope[i-1] == ':' {
			return scope[:i-1]
		}
	}
	return "::"
}

// FindDuplicates groups every entity sharing a fully scoped identifier with at least
// one other entity, keyed by that scoped identifier. It is the data the "redefinition"
// validator reports on; the Store itself never rejects a duplicate add, since a
// redefinition is a user error to diagnose, not a programmer error to crash on.
func (s *Store) FindDuplicates() map[string][]Entity {
	byID := make(map[string][]Entity)
	for _, n := range s.nodes {
		e, ok := n.(Entity)
		if !ok {
			continue
		}
		if _, isPrimitive := n.(*Primitive); isPrimitive {
			continue
		}
		id := ScopedIdentifier(e)
		byID[id] = append(byID[id], e)
	}
	for id, entities := range byID {
		if len(entities) < 2 {
			delete(byID, id)
		}
	}
	return byID
}

// NodeCount returns the total number of nodes in the Store, including primitives.
func (s *Store) NodeCount() int {
	return len(s.nodes)
}

// Describe returns a short human-readable summary, useful in panics and debug logging
// rather than in user-facing diagnostics.
func (s *Store) Describe() string {
	return fmt.Sprintf("Store{nodes=%d, entities=%d}", len(s.nodes), len(s.byScopedID))
}
