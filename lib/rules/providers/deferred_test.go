package providers

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vyPal/provsniff/lib/analyzer"
)

func lint(t *testing.T, rule *DeferredProviders, name string, src []byte) []analyzer.Diagnostic {
	t.Helper()
	f, err := analyzer.New(rule).ProcessSource(name, src)
	require.NoError(t, err)
	return f.Diagnostics()
}

func lintFixture(t *testing.T, rule *DeferredProviders, name string) []analyzer.Diagnostic {
	t.Helper()
	src, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return lint(t, rule, name, src)
}

func messages(diags []analyzer.Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}

func TestDeferredProvidersFixtures(t *testing.T) {
	tests := []struct {
		file     string
		expected []string
	}{
		{"NotAProvider.php", nil},
		{"NotDeferredServiceProvider.php", nil},
		{"DeferFalseServiceProvider.php", nil},
		{"MatchingClassConstantsServiceProvider.php", nil},
		{"MatchingStringsServiceProvider.php", nil},
		{"BindingsPropertyMatchingServiceProvider.php", nil},
		{"ProvidesWithStatementsServiceProvider.php", nil},
		{"BindingMethodsServiceProvider.php", []string{
			`Found bound class not in provides "BindContract::class"`,
			`Found bound class not in provides "BindIfContract::class"`,
			`Found bound class not in provides "SingletonContract::class"`,
			`Found bound class not in provides "InstanceContract::class"`,
			`Found bound class not in provides "ExtendContract::class"`,
			`Found bound class not in provides "BindMethodContract::class"`,
			`Found bound class not in provides "RefreshContract::class"`,
			`Found bound class not in provides "RebindingContract::class"`,
		}},
		{"BindingsPropertyMissingKeyServiceProvider.php", []string{
			`Found bound class not in provides "QueueContract::class"`,
		}},
		{"BindingsPropertyExtraProvidesServiceProvider.php", []string{
			`Found unbound class in provides "QueueContract::class"`,
		}},
		{"CallbackMismatchDeferrableProvider.php", []string{
			`Found bound class not in provides "IndexContract::class"`,
			`Found unbound class in provides "QueryContract::class"`,
		}},
		{"CallbackMismatchDeferProperty.php", []string{
			`Found bound class not in provides "IndexContract::class"`,
			`Found unbound class in provides "QueryContract::class"`,
		}},
		{"MixedSpellingServiceProvider.php", []string{
			`Found bound class not in provides "Foo::class"`,
			`Found unbound class in provides "App\Foo"`,
		}},
		{"MultipleInterfacesServiceProvider.php", []string{
			`Found bound class not in provides "LockContract::class"`,
		}},
		{"ClosureOnlyProvidesServiceProvider.php", []string{
			`Found bound class not in provides "ArchiveContract::class"`,
		}},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			diags := lintFixture(t, New(DefaultNames()), tt.file)
			assert.Equal(t, tt.expected, nilIfEmpty(messages(diags)))
			for _, d := range diags {
				assert.Equal(t, Name, d.Rule)
				assert.Equal(t, analyzer.SeverityError, d.Severity)
				assert.NotZero(t, d.Line)
			}
		})
	}
}

func nilIfEmpty(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	return s
}

func TestDiagnosticCodesAndAnchors(t *testing.T) {
	src := []byte(`<?php
class P extends ServiceProvider implements DeferrableProvider {
    public function register() { $this->app->bind(Bound::class, X::class); }
    public function provides() { return [Provided::class]; }
}`)
	diags := lint(t, New(DefaultNames()), "p.php", src)
	require.Len(t, diags, 2)

	assert.Equal(t, CodeBoundNotInProvides, diags[0].Code)
	assert.Equal(t, 3, diags[0].Line)
	assert.Equal(t, 51, diags[0].Column)

	assert.Equal(t, CodeUnboundInProvides, diags[1].Code)
	assert.Equal(t, 4, diags[1].Line)
	assert.Equal(t, 42, diags[1].Column)
}

func TestDiagnosticCountMatchesSetDifference(t *testing.T) {
	src := []byte(`<?php
class P extends ServiceProvider {
    protected $defer = true;
    public function register() {
        $this->app->bind(A::class, AImpl::class);
        $this->app->bind(B::class, BImpl::class);
        $this->app->singleton(C::class, CImpl::class);
    }
    public function provides() { return [B::class, C::class, D::class, E::class]; }
}`)
	diags := lint(t, New(DefaultNames()), "p.php", src)

	// bound {A, B, C}, provided {B, C, D, E}
	boundOnly, providedOnly := 0, 0
	for _, d := range diags {
		switch d.Code {
		case CodeBoundNotInProvides:
			boundOnly++
		case CodeUnboundInProvides:
			providedOnly++
		}
	}
	assert.Equal(t, 1, boundOnly)
	assert.Equal(t, 2, providedOnly)
	assert.Len(t, diags, 3)
}

func TestRepeatedSpellingsReportedPerSite(t *testing.T) {
	src := []byte(`<?php
class P extends ServiceProvider implements DeferrableProvider {
    public function register() {
        $this->app->bind(A::class, X::class);
        $this->app->extend(A::class, function ($a) { return $a; });
    }
    public function provides() { return []; }
}`)
	diags := lint(t, New(DefaultNames()), "p.php", src)
	require.Len(t, diags, 2)
	assert.Equal(t, diags[0].Message, diags[1].Message)
	assert.Less(t, diags[0].Index, diags[1].Index)
}

func TestBindingMethodsMatchedOutsideRegister(t *testing.T) {
	src := []byte(`<?php
class P extends ServiceProvider implements DeferrableProvider {
    public function boot() { $this->app->instance(Booted::class, $this); }
    public function provides() { return []; }
}`)
	diags := lint(t, New(DefaultNames()), "p.php", src)
	assert.Equal(t, []string{`Found bound class not in provides "Booted::class"`}, messages(diags))
}

func TestCommaCancelsBindingCapture(t *testing.T) {
	src := []byte(`<?php
class P extends ServiceProvider implements DeferrableProvider {
    public function register() { $this->app->bind($abstract, Concrete::class); }
    public function provides() { return []; }
}`)
	assert.Empty(t, lint(t, New(DefaultNames()), "p.php", src))
}

func TestBindingsPropertyValuesAreIgnored(t *testing.T) {
	src := []byte(`<?php
class P extends ServiceProvider implements DeferrableProvider {
    public $bindings = [
        Contract::class => Implementation::class,
    ];
    public function provides() { return [Contract::class]; }
}`)
	assert.Empty(t, lint(t, New(DefaultNames()), "p.php", src))
}

func TestOtherPublicPropertiesAreIgnored(t *testing.T) {
	src := []byte(`<?php
class P extends ServiceProvider implements DeferrableProvider {
    public $singletons = [
        Contract::class => Implementation::class,
    ];
    public function provides() { return []; }
}`)
	assert.Empty(t, lint(t, New(DefaultNames()), "p.php", src))
}

func TestProvidesRegionEndsWithItsBraces(t *testing.T) {
	src := []byte(`<?php
class P extends ServiceProvider implements DeferrableProvider {
    public function provides() {
        if (true) { $x = 1; }
        return [Provided::class];
    }
    public function other() {
        return [NotProvided::class];
    }
    public function register() { $this->app->bind(Provided::class, X::class); }
}`)
	assert.Empty(t, lint(t, New(DefaultNames()), "p.php", src))
}

func TestProvidesReturnTypeDoesNotOpenArray(t *testing.T) {
	src := []byte(`<?php
class P extends ServiceProvider implements DeferrableProvider {
    public function register() { $this->app->bind(Foo::class, X::class); }
    public function provides(): array { $key = config('app.key'); return [Foo::class]; }
}`)
	assert.Empty(t, lint(t, New(DefaultNames()), "p.php", src))
}

func TestClassKeywordCaseIsIgnored(t *testing.T) {
	src := []byte(`<?php
class P extends ServiceProvider implements DeferrableProvider {
    public function register() { $this->app->bind(Foo::CLASS, X::class); }
    public function provides() { return [Foo::class]; }
}`)
	assert.Empty(t, lint(t, New(DefaultNames()), "p.php", src))
}

func TestCustomNames(t *testing.T) {
	names := DefaultNames()
	names.BaseClass = "BaseProvider"
	names.DeferrableInterface = "LazyProvider"
	names.ProvidesMethod = "contracts"
	names.BindingMethods = []string{"register"}

	src := []byte(`<?php
class P extends BaseProvider implements LazyProvider {
    public function boot() { $this->container->register(Foo::class, Bar::class); }
    public function contracts() { return [Foo::class, Baz::class]; }
}`)
	diags := lint(t, New(names), "p.php", src)
	assert.Equal(t, []string{`Found unbound class in provides "Baz::class"`}, messages(diags))
}

func TestStateDoesNotLeakBetweenFiles(t *testing.T) {
	rule := New(DefaultNames())

	first := lintFixture(t, rule, "CallbackMismatchDeferProperty.php")
	require.Len(t, first, 2)

	second := lintFixture(t, rule, "MatchingClassConstantsServiceProvider.php")
	assert.Empty(t, second)
	assert.Equal(t, newScanState(), rule.state)
}

func TestStateResetOnAbort(t *testing.T) {
	rule := New(DefaultNames())

	// the binding is captured before $defer = false aborts the pass
	aborted := []byte(`<?php
class P extends ServiceProvider {
    public function register() { $this->app->bind(Leaked::class, X::class); }
    protected $defer = false;
}`)
	assert.Empty(t, lint(t, rule, "aborted.php", aborted))
	assert.Equal(t, newScanState(), rule.state)

	clean := []byte(`<?php
class Q extends ServiceProvider implements DeferrableProvider {
    public function provides() { return []; }
}`)
	assert.Empty(t, lint(t, rule, "clean.php", clean))
}

func TestScanIsIdempotent(t *testing.T) {
	rule := New(DefaultNames())
	first := lintFixture(t, rule, "BindingMethodsServiceProvider.php")
	second := lintFixture(t, rule, "BindingMethodsServiceProvider.php")
	assert.Equal(t, first, second)
}

func TestTruncatedInputDegrades(t *testing.T) {
	for _, src := range []string{
		"<?php class P extends",
		"<?php class P extends ServiceProvider implements DeferrableProvider { public $bindings = [ Foo::class",
		"<?php class P extends ServiceProvider implements DeferrableProvider { public",
		"<?php class P extends ServiceProvider { protected $defer = true; public function provides() { return [Foo::",
		"<?php $this->app->bind(",
	} {
		assert.NotPanics(t, func() {
			lint(t, New(DefaultNames()), "truncated.php", []byte(src))
		}, "src %q", src)
	}
}

func TestOnceForFilesWithSeveralOpenTags(t *testing.T) {
	src := []byte(`<?php
class P extends ServiceProvider implements DeferrableProvider {
    public function register() { $this->app->bind(Foo::class, X::class); }
?>
<?php
    public function provides() { return []; }
}`)
	diags := lint(t, New(DefaultNames()), "p.php", src)
	assert.Len(t, diags, 1)
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "undecided", undecided.String())
	assert.Equal(t, "yes", yes.String())
	assert.Equal(t, "no", no.String())
}
