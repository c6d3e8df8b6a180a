package auth

// Extractor parses a case-normalized header map into a raw identity claim.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Errors: extractors never fail; absent or unusable headers yield nil.
type Extractor interface {
	// Name returns a unique identifier for this extractor.
	Name() string

	// Extract returns the claim carried by the headers, or nil.
	Extract(h Headers) *Claim
}

// Chain runs extractors in a fixed priority order; the first non-nil claim
// wins and no merging happens across extractors.
type Chain struct {
	extractors []Extractor
}

// NewChain creates a chain over the given extractors, tried in order.
func NewChain(extractors ...Extractor) *Chain {
	return &Chain{extractors: extractors}
}

// DefaultChain returns the standard priority order: bearer token first, then
// service-account headers, then API-key headers.
func DefaultChain() *Chain {
	return NewChain(
		&BearerExtractor{},
		&ServiceAccountExtractor{},
		&APIKeyExtractor{},
	)
}

// Extract returns the first claim produced by the chain, or nil when no
// extractor recognizes the headers.
func (c *Chain) Extract(h Headers) *Claim {
	for _, e := range c.extractors {
		if claim := e.Extract(h); claim != nil {
			return claim
		}
	}
	return nil
}
