package types

import (
	"sort"
	"strings"

	"github.com/JerryHue/emojicode/report"
)

// AccessLevel is the access level of a method or initializer.  It must be one
// of the enumerated access levels below.
type AccessLevel int

// Enumeration of access levels, from most to least restrictive.
const (
	AccessPrivate   = AccessLevel(iota) // Accessible only from the declaring type.
	AccessProtected                     // Accessible from the declaring type and its subclasses.
	AccessPublic                        // Accessible from everywhere.
)

func (al AccessLevel) Repr() string {
	switch al {
	case AccessPrivate:
		return "private"
	case AccessProtected:
		return "protected"
	default:
		return "public"
	}
}

// TypeParam is a declared generic parameter together with its constraint.
type TypeParam struct {
	// The declared name of the generic parameter.
	Name string

	// The constraint type arguments must satisfy.
	Constraint Type
}

// -----------------------------------------------------------------------------

// Method represents a method declaration owned by its declaring type.  Methods
// are immutable once declaration collection has been finalized.
type Method struct {
	// The normalized name of the method.
	Name string

	// Whether calling the method requires a mutable receiver.
	Mutating bool

	// The access level of the method.
	Access AccessLevel

	// The ordered parameter types of the method.
	Params []Type

	// The names of the parameters, parallel to Params.
	ParamNames []string

	// The return type of the method.
	ReturnType Type

	// The method-level generic parameters, if any.
	TypeParams []TypeParam

	// Whether the method is non-overridable.
	Final bool

	// The type that declares the method.
	Owner NamedType

	// The method's documentation comment.
	Doc string
}

// IsGeneric returns whether the method declares its own generic parameters or
// refers to unresolved type-level generic variables in its signature.
func (m *Method) IsGeneric() bool {
	if len(m.TypeParams) > 0 {
		return true
	}

	for _, param := range m.Params {
		if HasGenericVars(param) {
			return true
		}
	}

	return HasGenericVars(m.ReturnType)
}

// Field represents a declared instance field of a class or value type.
type Field struct {
	// The name of the field.
	Name string

	// The declared type of the field.
	Type Type

	// Whether the field may be reassigned or mutated after initialization.
	Mutable bool

	// The type that declares the field.
	Owner NamedType
}

// Initializer represents an initializer declaration of a class, value type,
// or enum.
type Initializer struct {
	// The normalized name of the initializer.
	Name string

	// The access level of the initializer.
	Access AccessLevel

	// The ordered parameter types of the initializer.
	Params []Type

	// The names of the parameters, parallel to Params.
	ParamNames []string

	// The error type raised by an error-prone initializer.  This is nil for
	// ordinary initializers.
	ErrorType Type

	// The type that declares the initializer.
	Owner NamedType

	// The initializer's documentation comment.
	Doc string
}

// -----------------------------------------------------------------------------

// NamedType represents a user-declared type: a class, value type, enum, or
// protocol.  Named types have stable identities within the declaration arena
// of their package: type descriptors refer to declarations, never copy them.
type NamedType interface {
	Type

	// The declared name of the type.
	Name() string

	// The ID of the package which declares the type.
	PkgID() uint64

	// The index of the declaration within its package's declaration arena.
	// This serves as a stable identifier for the declaration.
	DeclIndex() int

	// The documentation comment of the type.
	Doc() string

	// The type-level generic parameters of the type.
	TypeParams() []TypeParam

	// The protocols the type declares conformance to.
	Conformances() []*ProtocolType

	// The method and field table accessors below.
	LookupMethod(name string) (*Method, bool)
	Methods() []*Method
	LookupTypeMethod(name string) (*Method, bool)
	TypeMethods() []*Method
	Initializers() []*Initializer
	LookupField(name string) (*Field, bool)
	Fields() []*Field
}

// DeclBase is the base for all named type declarations.  It carries the
// declaration's identity and its method tables.
type DeclBase struct {
	// The declared name of the type.
	name string

	// The ID of the declaring package.
	pkgID uint64

	// The index of the declaration within the package's declaration arena.
	declIndex int

	// The documentation comment of the declaration.
	doc string

	// The type-level generic parameters.
	typeParams []TypeParam

	// The protocols the type conforms to.
	conformances []*ProtocolType

	// The ordered list of declared methods.
	methods []*Method

	// A mapping between method names and their indices within methods.
	methodIndices map[string]int

	// The ordered list of declared type methods.
	typeMethods []*Method

	// A mapping between type method names and their indices.
	typeMethodIndices map[string]int

	// The ordered list of declared initializers.
	initializers []*Initializer

	// The ordered list of declared instance fields.
	fields []*Field

	// A mapping between field names and their indices within fields.
	fieldIndices map[string]int
}

// NewDeclBase creates a new declaration base.
func NewDeclBase(name string, pkgID uint64, declIndex int, doc string) DeclBase {
	return DeclBase{
		name:              name,
		pkgID:             pkgID,
		declIndex:         declIndex,
		doc:               doc,
		methodIndices:     make(map[string]int),
		typeMethodIndices: make(map[string]int),
		fieldIndices:      make(map[string]int),
	}
}

func (db *DeclBase) Repr() string {
	return db.name
}

func (db *DeclBase) Name() string {
	return db.name
}

func (db *DeclBase) PkgID() uint64 {
	return db.pkgID
}

func (db *DeclBase) DeclIndex() int {
	return db.declIndex
}

func (db *DeclBase) Doc() string {
	return db.doc
}

func (db *DeclBase) TypeParams() []TypeParam {
	return db.typeParams
}

// SetTypeParams sets the type-level generic parameters of the declaration.
func (db *DeclBase) SetTypeParams(typeParams []TypeParam) {
	db.typeParams = typeParams
}

func (db *DeclBase) Conformances() []*ProtocolType {
	return db.conformances
}

// AddConformance records that the type conforms to the given protocol.
func (db *DeclBase) AddConformance(proto *ProtocolType) {
	db.conformances = append(db.conformances, proto)
}

// AddMethod adds a method to the declaration's method table.  It returns
// false if a method with the same name is already declared.
func (db *DeclBase) AddMethod(m *Method) bool {
	if _, ok := db.methodIndices[m.Name]; ok {
		return false
	}

	db.methodIndices[m.Name] = len(db.methods)
	db.methods = append(db.methods, m)
	return true
}

// LookupMethod returns the method declared under the given name on this type
// itself: it does not consider inherited methods.
func (db *DeclBase) LookupMethod(name string) (*Method, bool) {
	if ndx, ok := db.methodIndices[name]; ok {
		return db.methods[ndx], true
	}

	return nil, false
}

func (db *DeclBase) Methods() []*Method {
	return db.methods
}

// AddTypeMethod adds a type method to the declaration's type method table.
// It returns false if a type method with the same name is already declared.
func (db *DeclBase) AddTypeMethod(m *Method) bool {
	if _, ok := db.typeMethodIndices[m.Name]; ok {
		return false
	}

	db.typeMethodIndices[m.Name] = len(db.typeMethods)
	db.typeMethods = append(db.typeMethods, m)
	return true
}

// LookupTypeMethod returns the type method declared under the given name.
func (db *DeclBase) LookupTypeMethod(name string) (*Method, bool) {
	if ndx, ok := db.typeMethodIndices[name]; ok {
		return db.typeMethods[ndx], true
	}

	return nil, false
}

func (db *DeclBase) TypeMethods() []*Method {
	return db.typeMethods
}

// AddField adds an instance field to the declaration.  It returns false if a
// field with the same name is already declared.
func (db *DeclBase) AddField(f *Field) bool {
	if _, ok := db.fieldIndices[f.Name]; ok {
		return false
	}

	db.fieldIndices[f.Name] = len(db.fields)
	db.fields = append(db.fields, f)
	return true
}

// LookupField returns the field declared under the given name on this type
// itself.
func (db *DeclBase) LookupField(name string) (*Field, bool) {
	if ndx, ok := db.fieldIndices[name]; ok {
		return db.fields[ndx], true
	}

	return nil, false
}

func (db *DeclBase) Fields() []*Field {
	return db.fields
}

// AddInitializer adds an initializer to the declaration.
func (db *DeclBase) AddInitializer(init *Initializer) {
	db.initializers = append(db.initializers, init)
}

func (db *DeclBase) Initializers() []*Initializer {
	return db.initializers
}

/* -------------------------------------------------------------------------- */

// ClassType represents a class declaration: a reference type with single
// inheritance and dynamically dispatched methods.
type ClassType struct {
	DeclBase

	// The superclass of the class or nil if the class is a root.
	Superclass *ClassType
}

// NewClass creates a new class declaration.
func NewClass(name string, pkgID uint64, declIndex int, doc string) *ClassType {
	return &ClassType{DeclBase: NewDeclBase(name, pkgID, declIndex, doc)}
}

func (ct *ClassType) equals(other Type) bool {
	if oct, ok := other.(*ClassType); ok {
		return ct == oct
	}

	return false
}

// ValueType represents a value type declaration: a copied-on-assignment type
// with statically dispatched methods and no inheritance.
type ValueType struct {
	DeclBase
}

// NewValueType creates a new value type declaration.
func NewValueType(name string, pkgID uint64, declIndex int, doc string) *ValueType {
	return &ValueType{DeclBase: NewDeclBase(name, pkgID, declIndex, doc)}
}

func (vt *ValueType) equals(other Type) bool {
	if ovt, ok := other.(*ValueType); ok {
		return vt == ovt
	}

	return false
}

// EnumType represents an enum declaration.
type EnumType struct {
	DeclBase

	// The ordered enumerated values of the enum.
	Values []EnumValue
}

// EnumValue is a single enumerated value of an enum.
type EnumValue struct {
	// The name of the value.
	Name string

	// The value's documentation comment.
	Doc string
}

// NewEnum creates a new enum declaration.
func NewEnum(name string, pkgID uint64, declIndex int, doc string) *EnumType {
	return &EnumType{DeclBase: NewDeclBase(name, pkgID, declIndex, doc)}
}

func (et *EnumType) equals(other Type) bool {
	if oet, ok := other.(*EnumType); ok {
		return et == oet
	}

	return false
}

// ProtocolType represents a protocol declaration: a named set of method
// requirements dispatched through conformance witness tables.
type ProtocolType struct {
	DeclBase
}

// NewProtocol creates a new protocol declaration.
func NewProtocol(name string, pkgID uint64, declIndex int, doc string) *ProtocolType {
	return &ProtocolType{DeclBase: NewDeclBase(name, pkgID, declIndex, doc)}
}

func (pt *ProtocolType) equals(other Type) bool {
	if opt, ok := other.(*ProtocolType); ok {
		return pt == opt
	}

	return false
}

/* -------------------------------------------------------------------------- */

// MultiProtocolType represents a protocol intersection: a value known to
// conform to two or more protocols at once.  The member protocols are kept in
// declaration order with duplicates removed so that equal intersections hash
// and print identically.
type MultiProtocolType struct {
	// The member protocols in canonical order.
	Protocols []*ProtocolType

	// The cached union of member method names used for fast ambiguity
	// pre-checks.  Built at construction time so the descriptor stays
	// read-only once it is shared between analyses.
	declarers map[string][]*ProtocolType
}

// NewMultiProtocol builds the type of an intersection of the given protocols.
// Duplicate members are dropped.  If only one distinct protocol remains, that
// protocol's type is returned instead of an intersection.  An intersection
// needs at least two distinct members to exist at all.
func NewMultiProtocol(protocols ...*ProtocolType) Type {
	var distinct []*ProtocolType

memberLoop:
	for _, proto := range protocols {
		for _, seen := range distinct {
			if seen == proto {
				continue memberLoop
			}
		}

		distinct = append(distinct, proto)
	}

	if len(distinct) == 0 {
		report.ReportICE("a protocol intersection must have at least one member")
	}

	if len(distinct) == 1 {
		return distinct[0]
	}

	// Canonical member order: declaration order regardless of how the
	// intersection was spelled, so that equal intersections compare and
	// print identically.
	sort.Slice(distinct, func(i, j int) bool {
		if distinct[i].PkgID() != distinct[j].PkgID() {
			return distinct[i].PkgID() < distinct[j].PkgID()
		}

		return distinct[i].DeclIndex() < distinct[j].DeclIndex()
	})

	mp := &MultiProtocolType{
		Protocols: distinct,
		declarers: make(map[string][]*ProtocolType),
	}

	for _, proto := range distinct {
		for _, method := range proto.Methods() {
			mp.declarers[method.Name] = append(mp.declarers[method.Name], proto)
		}
	}

	return mp
}

func (mp *MultiProtocolType) equals(other Type) bool {
	if omp, ok := other.(*MultiProtocolType); ok {
		if len(mp.Protocols) != len(omp.Protocols) {
			return false
		}

		for i, proto := range mp.Protocols {
			if proto != omp.Protocols[i] {
				return false
			}
		}

		return true
	}

	return false
}

func (mp *MultiProtocolType) Repr() string {
	reprs := make([]string, len(mp.Protocols))
	for i, proto := range mp.Protocols {
		reprs[i] = proto.Repr()
	}

	return strings.Join(reprs, " & ")
}

// Declarers returns the member protocols which declare a method with the
// given name.
func (mp *MultiProtocolType) Declarers(name string) []*ProtocolType {
	return mp.declarers[name]
}
