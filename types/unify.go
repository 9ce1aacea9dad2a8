package types

// Substitution is a mapping from generic variable names to the concrete types
// they are bound to.
type Substitution map[string]Type

// Unify unifies the declared type of a parameter against the checked type of
// an argument, accumulating generic variable bindings into sub.  It returns
// false if a variable would have to be bound to two conflicting types: the
// compiler never guesses a generic binding.
//
// Unification only binds variables.  A structural mismatch between a
// parameter without generic variables and an argument is not a unification
// failure: it is left for the positional compatibility check so that the user
// sees an argument type mismatch rather than a generic error.
func Unify(param, arg Type, sub Substitution) bool {
	switch v := param.(type) {
	case *GenericVarType:
		if bound, ok := sub[v.Name]; ok {
			return Equals(bound, arg)
		}

		sub[v.Name] = arg
		return true
	case *OptionalType:
		if oarg, ok := arg.(*OptionalType); ok {
			return Unify(v.Elem, oarg.Elem, sub)
		}

		// A non-optional argument can bind the element of an optional
		// parameter directly.
		return Unify(v.Elem, arg, sub)
	case *AppliedType:
		if oarg, ok := arg.(*AppliedType); ok && v.Named.equals(oarg.Named) && len(v.TypeArgs) == len(oarg.TypeArgs) {
			for i, targ := range v.TypeArgs {
				if !Unify(targ, oarg.TypeArgs[i], sub) {
					return false
				}
			}

			return true
		}
	}

	// No variable can be bound along this path.  If the parameter still
	// contains variables, they cannot be determined from this argument.
	return !HasGenericVars(param)
}

// ApplySubstitution replaces every generic variable in typ by its binding in
// sub.  Variables without a binding are left in place: callers detect them
// with HasGenericVars.
func ApplySubstitution(typ Type, sub Substitution) Type {
	switch v := typ.(type) {
	case *GenericVarType:
		if bound, ok := sub[v.Name]; ok {
			return bound
		}

		return v
	case *OptionalType:
		return &OptionalType{Elem: ApplySubstitution(v.Elem, sub)}
	case *AppliedType:
		targs := make([]Type, len(v.TypeArgs))
		for i, targ := range v.TypeArgs {
			targs[i] = ApplySubstitution(targ, sub)
		}

		return &AppliedType{Named: v.Named, TypeArgs: targs}
	}

	return typ
}
