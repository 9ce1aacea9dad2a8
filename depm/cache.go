package depm

import (
	"os"
	"path/filepath"
	"time"

	"github.com/JerryHue/emojicode/common"
	"github.com/JerryHue/emojicode/types"

	"github.com/vmihailenco/msgpack/v5"
)

// cachedPackage is the serialized form of a package's exported declaration
// metadata.  It is written when the package manifest enables caching so that
// tooling can inspect a package without re-running declaration collection.
type cachedPackage struct {
	Name    string       `msgpack:"name"`
	Version string       `msgpack:"version"`
	BuiltAt time.Time    `msgpack:"built_at"`
	Types   []cachedType `msgpack:"types"`
}

// cachedType is the serialized summary of one type declaration.
type cachedType struct {
	Name       string         `msgpack:"name"`
	Kind       string         `msgpack:"kind"`
	Superclass string         `msgpack:"superclass,omitempty"`
	ConformsTo []string       `msgpack:"conforms_to,omitempty"`
	Methods    []cachedMethod `msgpack:"methods"`
}

// cachedMethod is the serialized summary of one method declaration.
type cachedMethod struct {
	Name     string   `msgpack:"name"`
	Access   string   `msgpack:"access"`
	Mutating bool     `msgpack:"mutating,omitempty"`
	Final    bool     `msgpack:"final,omitempty"`
	Params   []string `msgpack:"params"`
	Returns  string   `msgpack:"returns"`
}

// cacheFilePath returns the path of the cache file for the given package.
func cacheFilePath(pkg *Package) string {
	return filepath.Join(pkg.AbsPath, common.CacheDirName, pkg.Name+".emojipkg")
}

// WriteCache serializes the package's declaration metadata into its cache
// directory.  The declaration arena must already be frozen.
func WriteCache(pkg *Package) error {
	builtAt := time.Now()

	cached := cachedPackage{
		Name:    pkg.Name,
		Version: pkg.Version,
		BuiltAt: builtAt,
	}

	for _, nt := range pkg.Decls.Decls() {
		ct := cachedType{
			Name: nt.Name(),
			Kind: declKind(nt),
		}

		if class, ok := nt.(*types.ClassType); ok && class.Superclass != nil {
			ct.Superclass = class.Superclass.Name()
		}

		for _, proto := range nt.Conformances() {
			ct.ConformsTo = append(ct.ConformsTo, proto.Name())
		}

		for _, method := range nt.Methods() {
			cm := cachedMethod{
				Name:     method.Name,
				Access:   method.Access.Repr(),
				Mutating: method.Mutating,
				Final:    method.Final,
				Returns:  method.ReturnType.Repr(),
			}

			for _, param := range method.Params {
				cm.Params = append(cm.Params, param.Repr())
			}

			ct.Methods = append(ct.Methods, cm)
		}

		cached.Types = append(cached.Types, ct)
	}

	buff, err := msgpack.Marshal(&cached)
	if err != nil {
		return err
	}

	cachePath := cacheFilePath(pkg)
	if err := os.MkdirAll(filepath.Dir(cachePath), 0o755); err != nil {
		return err
	}

	if err := os.WriteFile(cachePath, buff, 0o644); err != nil {
		return err
	}

	pkg.LastBuildTime = &builtAt
	return nil
}

// ReadCache deserializes a package's cached declaration metadata.  It returns
// false if no cache file exists or the file cannot be decoded.
func ReadCache(pkg *Package) (*cachedPackage, bool) {
	buff, err := os.ReadFile(cacheFilePath(pkg))
	if err != nil {
		return nil, false
	}

	cached := &cachedPackage{}
	if err := msgpack.Unmarshal(buff, cached); err != nil {
		return nil, false
	}

	return cached, true
}

// declKind returns the manifest kind string for a declaration.
func declKind(nt types.NamedType) string {
	switch nt.(type) {
	case *types.ClassType:
		return "class"
	case *types.ValueType:
		return "value-type"
	case *types.EnumType:
		return "enum"
	case *types.ProtocolType:
		return "protocol"
	default:
		return "unknown"
	}
}
