// Package docgen exports the declarations of an analyzed package as a JSON
// document suitable for documentation tooling.
package docgen

import (
	"encoding/json"
	"os"

	"github.com/JerryHue/emojicode/depm"
	"github.com/JerryHue/emojicode/types"
)

// Access level symbols as they appear in source.
const (
	accessPrivate   = "\U0001F512" // 🔒
	accessProtected = "\U0001F510" // 🔐
	accessPublic    = "\U0001F513" // 🔓
)

type packageDoc struct {
	Name          string     `json:"name"`
	Version       string     `json:"version,omitempty"`
	Documentation string     `json:"documentation,omitempty"`
	Types         []typeDoc  `json:"types"`
}

type typeDoc struct {
	Name             string         `json:"name"`
	Kind             string         `json:"kind"`
	Documentation    string         `json:"documentation,omitempty"`
	GenericArguments []genericDoc   `json:"genericArguments,omitempty"`
	ConformsTo       []string       `json:"conformsTo,omitempty"`
	Superclass       string         `json:"superclass,omitempty"`
	EnumValues       []enumValueDoc `json:"enumValues,omitempty"`
	Fields           []fieldDoc     `json:"fields,omitempty"`
	Methods          []methodDoc    `json:"methods,omitempty"`
	TypeMethods      []methodDoc    `json:"typeMethods,omitempty"`
	Initializers     []methodDoc    `json:"initializers,omitempty"`
}

type genericDoc struct {
	Name       string `json:"name"`
	Constraint string `json:"constraint,omitempty"`
}

type enumValueDoc struct {
	Value         string `json:"value"`
	Documentation string `json:"documentation,omitempty"`
}

type fieldDoc struct {
	Name    string `json:"name"`
	Type    string `json:"type"`
	Mutable bool   `json:"mutable,omitempty"`
}

type methodDoc struct {
	Name          string         `json:"name"`
	Access        string         `json:"access"`
	Mutating      bool           `json:"mutating,omitempty"`
	Final         bool           `json:"final,omitempty"`
	Documentation string         `json:"documentation,omitempty"`
	Parameters    []parameterDoc `json:"parameters,omitempty"`
	ReturnType    string         `json:"returnType,omitempty"`
	ErrorType     string         `json:"errorType,omitempty"`
	Generics      []genericDoc   `json:"genericArguments,omitempty"`
}

type parameterDoc struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// WriteDocs writes the JSON documentation of a package to outPath.
func WriteDocs(pkg *depm.Package, outPath string) error {
	doc := packageDoc{
		Name:          pkg.Name,
		Version:       pkg.Version,
		Documentation: pkg.Documentation,
		Types:         []typeDoc{},
	}

	for _, decl := range pkg.Decls.Decls() {
		doc.Types = append(doc.Types, describeType(decl))
	}

	buff, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(outPath, buff, 0644)
}

// describeType builds the documentation entry of a declared type.
func describeType(decl types.NamedType) typeDoc {
	td := typeDoc{
		Name:          decl.Name(),
		Documentation: decl.Doc(),
	}

	switch v := decl.(type) {
	case *types.ClassType:
		td.Kind = "class"

		if v.Superclass != nil {
			td.Superclass = v.Superclass.Name()
		}
	case *types.ValueType:
		td.Kind = "valueType"
	case *types.EnumType:
		td.Kind = "enum"

		for _, value := range v.Values {
			td.EnumValues = append(td.EnumValues, enumValueDoc{
				Value:         value.Name,
				Documentation: value.Doc,
			})
		}
	case *types.ProtocolType:
		td.Kind = "protocol"
	}

	for _, tp := range decl.TypeParams() {
		gd := genericDoc{Name: tp.Name}
		if tp.Constraint != nil {
			gd.Constraint = tp.Constraint.Repr()
		}

		td.GenericArguments = append(td.GenericArguments, gd)
	}

	for _, proto := range decl.Conformances() {
		td.ConformsTo = append(td.ConformsTo, proto.Name())
	}

	for _, field := range decl.Fields() {
		td.Fields = append(td.Fields, fieldDoc{
			Name:    field.Name,
			Type:    field.Type.Repr(),
			Mutable: field.Mutable,
		})
	}

	for _, method := range decl.Methods() {
		td.Methods = append(td.Methods, describeMethod(method))
	}

	for _, method := range decl.TypeMethods() {
		td.TypeMethods = append(td.TypeMethods, describeMethod(method))
	}

	for _, init := range decl.Initializers() {
		td.Initializers = append(td.Initializers, describeInitializer(init))
	}

	return td
}

// describeMethod builds the documentation entry of a method.
func describeMethod(method *types.Method) methodDoc {
	md := methodDoc{
		Name:          method.Name,
		Access:        accessSymbol(method.Access),
		Mutating:      method.Mutating,
		Final:         method.Final,
		Documentation: method.Doc,
	}

	for i, param := range method.Params {
		md.Parameters = append(md.Parameters, parameterDoc{
			Name: method.ParamNames[i],
			Type: param.Repr(),
		})
	}

	if method.ReturnType != nil {
		md.ReturnType = method.ReturnType.Repr()
	}

	for _, tp := range method.TypeParams {
		gd := genericDoc{Name: tp.Name}
		if tp.Constraint != nil {
			gd.Constraint = tp.Constraint.Repr()
		}

		md.Generics = append(md.Generics, gd)
	}

	return md
}

// describeInitializer builds the documentation entry of an initializer.
func describeInitializer(init *types.Initializer) methodDoc {
	md := methodDoc{
		Name:          init.Name,
		Access:        accessSymbol(init.Access),
		Documentation: init.Doc,
	}

	for i, param := range init.Params {
		md.Parameters = append(md.Parameters, parameterDoc{
			Name: init.ParamNames[i],
			Type: param.Repr(),
		})
	}

	if init.ErrorType != nil {
		md.ErrorType = init.ErrorType.Repr()
	}

	return md
}

// accessSymbol returns the source symbol of an access level.
func accessSymbol(access types.AccessLevel) string {
	switch access {
	case types.AccessPrivate:
		return accessPrivate
	case types.AccessProtected:
		return accessProtected
	default:
		return accessPublic
	}
}
