package utxo

import (
	"github.com/bsv-blockchain/mockindexer/model"
)

type LookupOptions struct {
	Address    *string
	TokenIndex *string
}

type LookupOption func(*LookupOptions)

// WithAddress restricts a token lookup to entries held by address.
func WithAddress(address string) LookupOption {
	return func(o *LookupOptions) {
		o.Address = &address
	}
}

// WithTokenIndex restricts a token lookup to one token index.
func WithTokenIndex(tokenIndex string) LookupOption {
	return func(o *LookupOptions) {
		o.TokenIndex = &tokenIndex
	}
}

func NewLookupOptions(opts ...LookupOption) *LookupOptions {
	o := &LookupOptions{}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// MatchesToken reports whether entry is of kind, carries codehash and genesis and passes the options.
func (o *LookupOptions) MatchesToken(entry *model.UtxoEntry, kind model.Kind, codehash, genesis string) bool {
	if entry.Kind() != kind {
		return false
	}

	entryCodehash, entryGenesis, ok := entry.TokenID()
	if !ok || entryCodehash != codehash || entryGenesis != genesis {
		return false
	}

	if o.Address != nil && entry.Address() != *o.Address {
		return false
	}

	if o.TokenIndex != nil && entry.TokenIndex() != *o.TokenIndex {
		return false
	}

	return true
}
