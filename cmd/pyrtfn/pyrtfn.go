// Command pyrtfn prints module member table entries for the functions in Go
// packages that have the pyrt.NativeFunc signature.
//
// Usage:
//
//	pyrtfn [-match re] [-ignore re] [-pyrt path] packages...
//
// Each matching function is printed as a line suitable for the members map of
// a module's Init function, keyed by the function's name with the match
// removed and the first letter lowercased.
package main

import (
	"flag"
	"fmt"
	"go/types"
	"os"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

func main() {
	var match, ignore string
	var pyrt string
	flag.StringVar(&match, "match", ".", "include only functions matching this regular expression")
	flag.StringVar(&ignore, "ignore", "$^", "exclude functions matching this regular expression")
	flag.StringVar(&pyrt, "pyrt", "github.com/zephyrtronium/pyrt", "import path of package pyrt")
	flag.Parse()
	mre, err := regexp.Compile(match)
	if err != nil {
		fail("error compiling match:", err)
	}
	ire, err := regexp.Compile(ignore)
	if err != nil {
		fail("error compiling ignore:", err)
	}

	config := packages.Config{Mode: packages.NeedName | packages.NeedTypes | packages.NeedImports}
	pkgs, err := packages.Load(&config, append([]string{pyrt}, flag.Args()...)...)
	if err != nil {
		fail("error loading packages:", err)
	}
	if packages.PrintErrors(pkgs) > 0 {
		os.Exit(1)
	}
	fn, pkgs := nativeFunc(pkgs)
	var results []string
	for _, pkg := range pkgs {
		results = append(results, find(pkg.Types.Scope(), fn, mre, ire)...)
	}
	sort.Strings(results)
	for _, name := range results {
		key := trimMatch(name, mre)
		fmt.Printf("\t\t%q: pyrt.NewFunction(%q, %s),\n", key, key, name)
	}
}

func fail(args ...interface{}) {
	fmt.Fprintln(os.Stderr, args...)
	os.Exit(1)
}

// nativeFunc finds the NativeFunc type in the first package and returns it
// along with the remaining packages.
func nativeFunc(pkgs []*packages.Package) (types.Type, []*packages.Package) {
	pkg := pkgs[0].Types
	r := pkg.Scope().Lookup("NativeFunc")
	if r == nil {
		fail(pkg.Path(), "has no definition of NativeFunc")
	}
	t, ok := r.(*types.TypeName)
	if !ok {
		fail(pkg.Path(), "has incorrect definition of NativeFunc:", r)
	}
	return t.Type().Underlying(), pkgs[1:]
}

// find lists the package-level functions in scope assignable to fn whose names
// match mre and not ire.
func find(scope *types.Scope, fn types.Type, mre, ire *regexp.Regexp) []string {
	var r []string
	for _, name := range scope.Names() {
		if !mre.MatchString(name) || ire.MatchString(name) {
			continue
		}
		obj, ok := scope.Lookup(name).(*types.Func)
		if !ok {
			continue
		}
		if types.AssignableTo(obj.Type(), fn) {
			r = append(r, name)
		}
	}
	return r
}

func trimMatch(name string, mre *regexp.Regexp) string {
	if mre.String() != "." {
		k := mre.FindStringIndex(name)
		name = name[k[1]:]
	}
	if name == "" {
		return name
	}
	return strings.ToLower(name[:1]) + name[1:]
}
