//go:build governance

package core_test

import (
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

const modulePath = "github.com/leapstack-labs/articlecheck"

// TestGovernance_CoreCohesion verifies that types in pkg/core are shared by
// more than one package. Single-use types belong to their sole consumer.
func TestGovernance_CoreCohesion(t *testing.T) {
	cfg := &packages.Config{
		Mode: packages.NeedName | packages.NeedImports | packages.NeedTypes |
			packages.NeedTypesInfo | packages.NeedDeps,
	}
	pkgs, err := packages.Load(cfg, modulePath+"/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	var corePkg *packages.Package
	for _, p := range pkgs {
		if p.PkgPath == modulePath+"/pkg/core" {
			corePkg = p
			break
		}
	}
	if corePkg == nil {
		t.Fatal("Could not find pkg/core")
	}

	usage := make(map[string]map[string]bool)
	scope := corePkg.Types.Scope()
	for _, name := range scope.Names() {
		if scope.Lookup(name).Exported() {
			usage[name] = make(map[string]bool)
		}
	}

	for _, p := range pkgs {
		if p.PkgPath == corePkg.PkgPath || strings.HasSuffix(p.PkgPath, "_test") || p.TypesInfo == nil {
			continue
		}
		for _, obj := range p.TypesInfo.Uses {
			if obj.Pkg() == nil || obj.Pkg().Path() != corePkg.PkgPath {
				continue
			}
			if users, ok := usage[obj.Name()]; ok {
				users[strings.TrimPrefix(p.PkgPath, modulePath+"/")] = true
			}
		}
	}

	for name, users := range usage {
		switch len(users) {
		case 0:
			t.Logf("WARNING: Unused Core Type: %s (consider deleting)", name)
		case 1:
			for user := range users {
				t.Errorf("COHESION VIOLATION: 'core.%s' is used ONLY by '%s'.\n"+
					"   Fix: Move it from pkg/core to %s.", name, user, user)
			}
		}
	}
}

// TestGovernance_PkgDoesNotImportInternal keeps the public packages usable
// as a library: nothing under pkg/ may reach into internal/.
func TestGovernance_PkgDoesNotImportInternal(t *testing.T) {
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports}
	pkgs, err := packages.Load(cfg, modulePath+"/pkg/...")
	if err != nil {
		t.Fatalf("Failed to load packages: %v", err)
	}

	for _, p := range pkgs {
		for path := range p.Imports {
			if strings.HasPrefix(path, modulePath+"/internal/") {
				t.Errorf("LAYERING VIOLATION: '%s' imports '%s'", p.PkgPath, path)
			}
		}
	}
}
