// Package providers checks deferred service providers.
//
// A deferred provider registers its bindings lazily: the container consults
// provides() before the provider is ever loaded, so every contract the
// provider binds has to be listed there and nothing else may be. The
// DeferredProviders rule scans the tokens of a provider class once, collecting
// the contracts bound through container calls or the $bindings property and
// the contracts returned from provides(), and reports every name that appears
// on only one side.
//
// The scan works on tokens, not on a syntax tree, and assumes:
//   - provides() returns a literal array of class names;
//   - register() and provides() spell each class the same way, either as
//     Foo::class or as a string. Mixed spellings are reported as mismatches;
//   - the provider extends a class named ServiceProvider directly;
//   - deferral is declared on the class itself with $defer = true or by
//     implementing DeferrableProvider.
//
// Keys of the $bindings property count as bound whether they are written as
// Foo::class or as a string literal. Older versions of the check looked for
// => at a fixed offset and so only ever saw Foo::class keys.
package providers

import (
	"fmt"
	"sort"

	"github.com/vyPal/provsniff/lib/analyzer"
	"github.com/vyPal/provsniff/lib/token"
)

const (
	Name = "deferred-providers"

	CodeUnboundInProvides  = "unbound-in-provides"
	CodeBoundNotInProvides = "bound-not-in-provides"
)

// Names are the identifiers the rule keys on.
type Names struct {
	BaseClass           string   `yaml:"baseClass"`
	DeferrableInterface string   `yaml:"deferrableInterface"`
	DeferProperty       string   `yaml:"deferProperty"`
	BindingsProperty    string   `yaml:"bindingsProperty"`
	ProvidesMethod      string   `yaml:"providesMethod"`
	BindingMethods      []string `yaml:"bindingMethods"`
}

// DefaultNames returns the names used by Laravel.
func DefaultNames() Names {
	return Names{
		BaseClass:           "ServiceProvider",
		DeferrableInterface: "DeferrableProvider",
		DeferProperty:       "$defer",
		BindingsProperty:    "$bindings",
		ProvidesMethod:      "provides",
		// Illuminate\Contracts\Container\Container
		BindingMethods: []string{"bind", "bindIf", "singleton", "instance", "extend", "bindMethod", "refresh", "rebinding"},
	}
}

// DeferredProviders reports drift between bound and provided classes.
//
// The rule keeps its scan state between calls the way a code sniffer keeps
// one rule instance per run; the state is replaced after every file.
type DeferredProviders struct {
	names          Names
	bindingMethods map[string]bool
	state          *scanState
}

func New(names Names) *DeferredProviders {
	methods := make(map[string]bool, len(names.BindingMethods))
	for _, m := range names.BindingMethods {
		methods[m] = true
	}
	return &DeferredProviders{
		names:          names,
		bindingMethods: methods,
		state:          newScanState(),
	}
}

func (r *DeferredProviders) Name() string { return Name }

// Register listens for the open tag only; Process drives its own scan.
func (r *DeferredProviders) Register() []token.Kind {
	return []token.Kind{token.KindOpenTag}
}

// Process scans the whole file from its first token, whichever open tag
// triggered it, and then stops listening for the rest of the file.
func (r *DeferredProviders) Process(f *analyzer.File, _ int) int {
	defer r.reset()

	s := f.Stream
	r.scan(s)
	if r.state.qualifies() {
		r.reconcile(f)
	}
	return s.Len()
}

func (r *DeferredProviders) scan(s *token.Stream) {
	st := r.state
	for i := 0; i < s.Len(); i++ {
		if st.provider == undecided {
			st.provider = r.classifyProvider(s, i)
		}
		if st.deferred == undecided {
			st.deferred = r.classifyDeferred(s, i)
		}
		if st.disqualified() {
			return
		}

		r.extractBindingCall(s, i)
		r.extractBindingsProperty(s, i)
		r.extractProvides(s, i)
	}
}

// reconcile reports provided names that are never bound, then bound names
// that are never provided. Each capture site is reported on its own.
func (r *DeferredProviders) reconcile(f *analyzer.File) {
	st := r.state
	boundNames := nameSet(st.bound)
	providedNames := nameSet(st.provides)

	for _, i := range sortedIndexes(st.provides) {
		if name := st.provides[i]; !boundNames[name] {
			f.AddError(fmt.Sprintf(`Found unbound class in provides "%s"`, name), i, CodeUnboundInProvides)
		}
	}
	for _, i := range sortedIndexes(st.bound) {
		if name := st.bound[i]; !providedNames[name] {
			f.AddError(fmt.Sprintf(`Found bound class not in provides "%s"`, name), i, CodeBoundNotInProvides)
		}
	}
}

func (r *DeferredProviders) reset() {
	r.state = newScanState()
}

func nameSet(captures map[int]string) map[string]bool {
	set := make(map[string]bool, len(captures))
	for _, name := range captures {
		set[name] = true
	}
	return set
}

func sortedIndexes(captures map[int]string) []int {
	idx := make([]int, 0, len(captures))
	for i := range captures {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	return idx
}
