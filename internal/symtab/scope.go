package symtab

// Scope is one lexical scope. Lookups walk a scope's parent chain, but
// declarations always land in the scope itself. Declaration order is
// preserved so every traversal of a scope's symbols is deterministic.
type Scope struct {
	parent  *Scope
	symbols map[string]*Symbol
	order   []string
}

// NewScope creates a scope nested inside parent. Pass nil for the global
// scope.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		parent:  parent,
		symbols: make(map[string]*Symbol),
	}
}

// Parent returns the enclosing scope, or nil for the global scope.
func (s *Scope) Parent() *Scope {
	return s.parent
}

// Declare adds a symbol to this scope. It returns false if the name is
// already declared in this exact scope; shadowing a name from an enclosing
// scope is allowed and returns true.
func (s *Scope) Declare(sym *Symbol) bool {
	if _, exists := s.symbols[sym.Name]; exists {
		return false
	}
	s.symbols[sym.Name] = sym
	s.order = append(s.order, sym.Name)
	return true
}

// Resolve finds the nearest declaration of name, searching this scope first
// and then each enclosing scope. It returns nil when the name is undeclared.
func (s *Scope) Resolve(name string) *Symbol {
	for scope := s; scope != nil; scope = scope.parent {
		if sym, ok := scope.symbols[name]; ok {
			return sym
		}
	}
	return nil
}

// ResolveLocal finds a declaration of name in this scope only.
func (s *Scope) ResolveLocal(name string) *Symbol {
	return s.symbols[name]
}

// Symbols returns the scope's symbols in declaration order.
func (s *Scope) Symbols() []*Symbol {
	out := make([]*Symbol, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.symbols[name])
	}
	return out
}
