package providers

import "github.com/vyPal/provsniff/lib/token"

// extractProvides harvests the class names returned by provides(). The region
// starts at any identifier spelled like the method and ends when the braces
// opened after it are balanced again. Names are captured only while inside an
// array literal.
func (r *DeferredProviders) extractProvides(s *token.Stream, i int) {
	st := r.state
	tok, ok := s.At(i)
	if !ok {
		return
	}

	if tok.Kind == token.KindIdent && tok.Text == r.names.ProvidesMethod {
		st.inProvides = true
	}
	if !st.inProvides {
		return
	}

	if st.inProvidesArray {
		if ref, ok := classNameAt(s, i); ok {
			st.provides[i] = ref.name
		}
	}

	switch tok.Kind {
	case token.KindOpenCurly:
		st.providesDepth++
	case token.KindCloseCurly:
		st.providesDepth--
		if st.providesDepth <= 0 {
			st.providesDepth = 0
			st.inProvides = false
		}
	case token.KindOpenShortArray, token.KindArray:
		st.inProvidesArray = true
	case token.KindCloseShortArray, token.KindCloseParen:
		st.inProvidesArray = false
	}
}
