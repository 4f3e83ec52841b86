package providers

import "github.com/vyPal/provsniff/lib/token"

// classifyProvider watches the extends clause. Only the direct parent is
// inspected; a namespaced parent matches on its last segment.
func (r *DeferredProviders) classifyProvider(s *token.Stream, i int) verdict {
	st := r.state
	tok, ok := s.At(i)
	if !ok {
		return undecided
	}

	if tok.Kind == token.KindExtends {
		st.checkingExtends = true
		return undecided
	}
	if !st.checkingExtends {
		return undecided
	}

	switch {
	case tok.Kind == token.KindOpenCurly, tok.Kind == token.KindImplements:
		st.checkingExtends = false
		return no
	case tok.Kind == token.KindIdent && tok.Text == r.names.BaseClass:
		st.checkingExtends = false
		return yes
	}
	return undecided
}

// classifyDeferred looks for either deferral signal: the marker interface in
// the implements clause, or the first boolean assigned after the defer
// property. A class with neither stays undecided.
func (r *DeferredProviders) classifyDeferred(s *token.Stream, i int) verdict {
	st := r.state
	tok, ok := s.At(i)
	if !ok {
		return undecided
	}

	switch {
	case tok.Kind == token.KindImplements:
		st.checkingImplements = true
		return undecided
	case tok.Kind == token.KindVariable && tok.Text == r.names.DeferProperty:
		st.checkingDeferValue = true
		return undecided
	}

	if st.checkingImplements {
		switch {
		case tok.Kind == token.KindOpenCurly:
			st.checkingImplements = false
			return undecided
		case tok.Kind == token.KindIdent && tok.Text == r.names.DeferrableInterface:
			st.checkingImplements = false
			return yes
		}
	}

	if st.checkingDeferValue {
		switch tok.Kind {
		case token.KindTrue:
			st.checkingDeferValue = false
			return yes
		case token.KindFalse:
			st.checkingDeferValue = false
			return no
		}
	}
	return undecided
}
