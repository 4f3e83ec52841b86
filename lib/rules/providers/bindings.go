package providers

import "github.com/vyPal/provsniff/lib/token"

const (
	// public $bindings: the keyword, one whitespace token, the variable
	bindingsPropertyOffset = 2
	// Foo::class => Bar::class: one whitespace token between key and arrow
	keyArrowGap = 1
)

// extractBindingCall captures the first argument of a container binding call.
// Method names are matched anywhere in the stream, not only inside register().
// A comma before any class name means the first argument was something else,
// such as a closure or a variable, and the call is dropped.
func (r *DeferredProviders) extractBindingCall(s *token.Stream, i int) {
	st := r.state
	tok, ok := s.At(i)
	if !ok {
		return
	}

	if tok.Kind == token.KindIdent && r.bindingMethods[tok.Text] {
		st.inBindCall = true
	}
	if !st.inBindCall {
		return
	}

	if tok.Kind == token.KindComma {
		st.inBindCall = false
		return
	}
	if ref, ok := classNameAt(s, i); ok {
		st.bound[i] = ref.name
		st.inBindCall = false
	}
}

// extractBindingsProperty captures the keys of a public $bindings = [...]
// declaration. Values are implementations, not contracts, and are ignored.
func (r *DeferredProviders) extractBindingsProperty(s *token.Stream, i int) {
	if s.Kind(i) != token.KindPublic {
		return
	}
	if !s.Is(i+bindingsPropertyOffset, token.KindVariable, r.names.BindingsProperty) {
		return
	}

	for j := i; j < s.Len() && s.Kind(j) != token.KindCloseShortArray; j++ {
		ref, ok := classNameAt(s, j)
		if ok && isArrayKey(s, j, ref) {
			r.state.bound[j] = ref.name
		}
	}
}

// isArrayKey reports whether the class reference at i is followed by =>.
func isArrayKey(s *token.Stream, i int, ref classRef) bool {
	return s.Kind(i+ref.width+keyArrowGap) == token.KindDoubleArrow
}
