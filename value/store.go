package value

// UpdateResult reports what [Store.UpdateVariable] changed. Callers that
// maintain a graph's symbolic key-bindings (see the elaborate package)
// use IsUInt/UIntValue to decide whether to register a new
// DimKey::Variable(name) → Expr(uint) binding, without this package
// needing to know about DimKey or the symbolic algebra.
type UpdateResult struct {
	Description string
	Upgraded    bool
	IsUInt      bool
	UIntValue   uint64
}

// Store holds a graph's variables, keyed by canonical description, plus
// the short-form alias → description mapping used for keyword-argument
// style lookups.
type Store struct {
	vars    map[string]Variable
	aliases map[string]string
}

// NewStore returns an empty variable store.
func NewStore() *Store {
	return &Store{
		vars:    make(map[string]Variable),
		aliases: make(map[string]string),
	}
}

// AddVariable inserts v under its description. If the description is
// already present, this is a redefinition: when the incoming variable
// carries a value, the existing entry's value is updated (via the same
// type rule as [Store.UpdateVariable]); alias registers the variable
// under a short name if non-empty.
//
// The only failure mode is the update's type check; a mismatch is
// reported as ok == false.
func (s *Store) AddVariable(alias string, v Variable) (ok bool) {
	if existing, present := s.vars[v.description]; present {
		if val, has := v.Value(); has {
			updated, success := existing.Bind(val)
			if !success {
				return false
			}
			s.vars[v.description] = updated
		}
		if alias != "" {
			s.aliases[alias] = v.description
		}
		return true
	}

	s.vars[v.description] = v
	if alias != "" {
		s.aliases[alias] = v.description
	}
	return true
}

// Get looks up a variable by its canonical description.
func (s *Store) Get(description string) (Variable, bool) {
	v, ok := s.vars[description]
	return v, ok
}

// Resolve maps a name or alias to the canonical description it denotes:
// name takes priority if it directly identifies a stored variable;
// otherwise alias is looked up in the alias map, falling back to
// treating alias itself as a description if it isn't a registered
// alias.
func (s *Store) Resolve(name, alias string) (string, bool) {
	if name != "" {
		if _, ok := s.vars[name]; ok {
			return name, true
		}
	}
	if alias == "" {
		return "", false
	}
	if desc, ok := s.aliases[alias]; ok {
		return desc, true
	}
	if _, ok := s.vars[alias]; ok {
		return alias, true
	}
	return "", false
}

// UpdateVariable resolves a target variable by name, else by alias, binds
// val to it, and reports the description and whether ty was used to
// upgrade a Required declaration.
//
// The stored type must equal ty, or be Required (which upgrades to ty);
// any other combination fails (ok == false) — callers report this as
// [compileerr.DifferentVariableType].
func (s *Store) UpdateVariable(name, alias string, val Value, ty Type) (UpdateResult, bool) {
	desc, found := s.Resolve(name, alias)
	if !found {
		return UpdateResult{}, false
	}

	existing := s.vars[desc]
	upgraded := existing.ty == TypeRequired && existing.ty != ty

	switch {
	case existing.ty == ty:
	case existing.ty == TypeRequired:
		existing.ty = ty
	default:
		return UpdateResult{}, false
	}

	updated, ok := existing.Bind(val)
	if !ok {
		return UpdateResult{}, false
	}
	s.vars[desc] = updated

	result := UpdateResult{Description: desc, Upgraded: upgraded}
	if u, isUInt := val.UInt(); isUInt {
		result.IsUInt = true
		result.UIntValue = u
	}
	return result, true
}

// Len returns the number of variables in the store.
func (s *Store) Len() int {
	return len(s.vars)
}

// Put overwrites the stored entry for v's description, e.g. after an
// [Variable.ExpectOrDefault] upgrade that must be persisted back.
func (s *Store) Put(v Variable) {
	s.vars[v.description] = v
}

// Snapshot returns a copy of the store's variables, keyed by canonical
// description.
func (s *Store) Snapshot() map[string]Variable {
	out := make(map[string]Variable, len(s.vars))
	for k, v := range s.vars {
		out[k] = v
	}
	return out
}

// Clone returns an independent copy of the store: mutating the clone's
// variables or aliases never affects s.
func (s *Store) Clone() *Store {
	clone := &Store{
		vars:    make(map[string]Variable, len(s.vars)),
		aliases: make(map[string]string, len(s.aliases)),
	}
	for k, v := range s.vars {
		clone.vars[k] = v
	}
	for k, v := range s.aliases {
		clone.aliases[k] = v
	}
	return clone
}
