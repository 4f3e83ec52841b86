// Package models holds rules for Eloquent model classes.
package models

import (
	"github.com/vyPal/provsniff/lib/analyzer"
	"github.com/vyPal/provsniff/lib/token"
)

const (
	Name = "no-guarded-attributes"

	CodeGuardedAttributes = "guarded-attributes"
)

// NoGuardedAttributes flags models declaring a protected $guarded property.
type NoGuardedAttributes struct {
	property string
}

func New(property string) *NoGuardedAttributes {
	if property == "" {
		property = "$guarded"
	}
	return &NoGuardedAttributes{property: property}
}

func (r *NoGuardedAttributes) Name() string { return Name }

func (r *NoGuardedAttributes) Register() []token.Kind {
	return []token.Kind{token.KindProtected}
}

func (r *NoGuardedAttributes) Process(f *analyzer.File, ptr int) int {
	i, ok := f.Stream.FindNext(ptr, token.KindVariable)
	if ok && f.Stream.Text(i) == r.property {
		f.AddError("Uses "+r.property+" attributes", i, CodeGuardedAttributes)
	}
	return ptr
}
