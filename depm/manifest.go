package depm

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/JerryHue/emojicode/common"
	"github.com/JerryHue/emojicode/report"

	"github.com/pelletier/go-toml"
	"golang.org/x/mod/semver"
)

// tomlManifest represents a package manifest as it is encoded in TOML.
type tomlManifest struct {
	Name            string `toml:"name"`
	Version         string `toml:"version"`
	Documentation   string `toml:"documentation"`
	ShouldCache     bool   `toml:"caching"`
	CompilerVersion string `toml:"compiler-version"`
}

// LoadPackage loads and validates a package manifest.  abspath is the
// absolute path to the package directory.  This function returns the package
// with an empty declaration arena and a success boolean.
func LoadPackage(abspath string) (*Package, bool) {
	buff, err := os.ReadFile(filepath.Join(abspath, common.ManifestFileName))
	if err != nil {
		report.ReportFatal("unable to read package manifest at `%s`: %s", abspath, err.Error())
		return nil, false
	}

	manifest := &tomlManifest{}
	if err := toml.Unmarshal(buff, manifest); err != nil {
		report.ReportFatal("error parsing package manifest at `%s`: %s", abspath, err.Error())
		return nil, false
	}

	pkg := &Package{
		ID:            GenerateIDFromPath(abspath),
		Name:          manifest.Name,
		Version:       manifest.Version,
		Documentation: manifest.Documentation,
		AbsPath:       abspath,
		Decls:         NewDeclArena(),
		ShouldCache:   manifest.ShouldCache,
	}

	if !validatePackage(pkg, manifest) {
		return nil, false
	}

	return pkg, true
}

// validatePackage checks that the manifest contents are valid.
func validatePackage(pkg *Package, manifest *tomlManifest) bool {
	manifestName := fmt.Sprintf("<package at `%s`>", pkg.AbsPath)

	if manifest.Name == "" {
		report.ReportStdError(manifestName, fmt.Errorf("missing package name"))
		return false
	}

	if !IsValidIdentifier(manifest.Name) {
		report.ReportStdError(manifestName, fmt.Errorf("package name must be a valid identifier"))
		return false
	}

	if manifest.Version != "" && !semver.IsValid("v"+manifest.Version) {
		report.ReportStdError(manifest.Name, fmt.Errorf("package version `%s` is not valid semver", manifest.Version))
		return false
	}

	// A mismatched compiler version is a warning, not an error: older
	// packages frequently analyze fine under a newer compiler.
	if manifest.CompilerVersion != "" &&
		semver.Compare("v"+manifest.CompilerVersion, "v"+common.CompilerVersion) != 0 {

		report.ReportCompileWarning(
			"", manifest.Name, nil,
			"package `%s` targets compiler v%s but this compiler is v%s",
			manifest.Name,
			manifest.CompilerVersion,
			common.CompilerVersion,
		)
	}

	return true
}
