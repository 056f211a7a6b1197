package processor

import (
	"github.com/bsv-blockchain/mockindexer/services/validator"
)

type Options struct {
	verifier   validator.ScriptVerifier
	eagerSpend *bool
}

type Option func(*Options)

// WithScriptVerifier replaces the verifier created from settings.
func WithScriptVerifier(verifier validator.ScriptVerifier) Option {
	return func(o *Options) {
		o.verifier = verifier
	}
}

// WithEagerSpend overrides the processor_eagerSpend setting.
func WithEagerSpend(eager bool) Option {
	return func(o *Options) {
		o.eagerSpend = &eager
	}
}
