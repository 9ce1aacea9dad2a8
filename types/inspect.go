package types

// Equals returns whether two types are equal.
func Equals(a, b Type) bool {
	return a.equals(b)
}

// BarePrimitive returns the primitive kind of typ if typ is a bare primitive:
// neither optional-wrapped nor generic.
func BarePrimitive(typ Type) (PrimitiveType, bool) {
	pt, ok := typ.(PrimitiveType)
	return pt, ok
}

// IsOptional returns the optional type of typ if typ is an optional.
func IsOptional(typ Type) (*OptionalType, bool) {
	ot, ok := typ.(*OptionalType)
	return ot, ok
}

// NamedOf returns the named declaration underlying typ: the declaration
// itself for a plain declared type, or the applied declaration for a generic
// instantiation.
func NamedOf(typ Type) (NamedType, bool) {
	switch v := typ.(type) {
	case *ClassType:
		return v, true
	case *ValueType:
		return v, true
	case *EnumType:
		return v, true
	case *ProtocolType:
		return v, true
	case *AppliedType:
		return v.Named, true
	}

	return nil, false
}

// -----------------------------------------------------------------------------

// IsAssignable returns whether a value of type from may be used where a value
// of type to is expected: the two types are equal, from is a subclass of to,
// or from conforms to the protocol or protocol intersection to.
func IsAssignable(from, to Type) bool {
	if Equals(from, to) {
		return true
	}

	// A non-optional value may be used where its optional is expected.
	if oto, ok := to.(*OptionalType); ok {
		return IsAssignable(from, oto.Elem)
	}

	switch vto := to.(type) {
	case *ClassType:
		if fromClass, ok := from.(*ClassType); ok {
			return fromClass.SubclassOf(vto)
		}
	case *ProtocolType:
		return conformsTo(from, vto)
	case *MultiProtocolType:
		for _, proto := range vto.Protocols {
			if !conformsTo(from, proto) {
				return false
			}
		}

		return true
	}

	return false
}

// SubclassOf returns whether ct is other or one of its transitive subclasses.
// The superclass chain is walked by explicit parent pointers.
func (ct *ClassType) SubclassOf(other *ClassType) bool {
	for c := ct; c != nil; c = c.Superclass {
		if c == other {
			return true
		}
	}

	return false
}

// conformsTo returns whether typ conforms to the protocol proto.
func conformsTo(typ Type, proto *ProtocolType) bool {
	if named, ok := NamedOf(typ); ok {
		for _, conf := range named.Conformances() {
			if conf == proto {
				return true
			}
		}

		// Classes inherit the conformances of their superclasses.
		if class, ok := typ.(*ClassType); ok && class.Superclass != nil {
			return conformsTo(class.Superclass, proto)
		}

		return false
	}

	// An intersection conforms to each of its members.
	if mp, ok := typ.(*MultiProtocolType); ok {
		for _, member := range mp.Protocols {
			if member == proto {
				return true
			}
		}
	}

	return false
}

// -----------------------------------------------------------------------------

// HasGenericVars returns whether typ contains any unresolved generic
// variables.
func HasGenericVars(typ Type) bool {
	switch v := typ.(type) {
	case *GenericVarType:
		return true
	case *OptionalType:
		return HasGenericVars(v.Elem)
	case *AppliedType:
		for _, targ := range v.TypeArgs {
			if HasGenericVars(targ) {
				return true
			}
		}
	}

	return false
}
