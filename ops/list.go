package ops

import (
	"github.com/conduit-lang/routegen/contract"
	"github.com/conduit-lang/routegen/query"
)

// ListBuilder is a fluent façade over the query composer for assembling list
// contracts. Like every builder in this module it is immutable: each With
// call returns a new value, so a base configuration can be branched — for
// example into a REST list and its streaming variant — without the branches
// observing each other.
type ListBuilder struct {
	ops      *Operations
	composer *query.Composer
}

// ListBuilder creates a list builder with no dimensions configured.
func (o *Operations) ListBuilder() *ListBuilder {
	return &ListBuilder{
		ops:      o,
		composer: query.NewComposer(o.entity),
	}
}

// WithPagination returns a list builder with the pagination dimension set,
// replacing any earlier pagination configuration.
func (lb *ListBuilder) WithPagination(cfg query.PaginationConfig) *ListBuilder {
	return &ListBuilder{ops: lb.ops, composer: lb.composer.WithPagination(cfg)}
}

// WithSorting returns a list builder with the sorting dimension set.
func (lb *ListBuilder) WithSorting(cfg query.SortingConfig) *ListBuilder {
	return &ListBuilder{ops: lb.ops, composer: lb.composer.WithSorting(cfg)}
}

// WithFiltering returns a list builder with the filtering dimension set.
func (lb *ListBuilder) WithFiltering(cfg query.FilteringConfig) *ListBuilder {
	return &ListBuilder{ops: lb.ops, composer: lb.composer.WithFiltering(cfg)}
}

// WithSearch returns a list builder with the search dimension set.
func (lb *ListBuilder) WithSearch(cfg query.SearchConfig) *ListBuilder {
	return &ListBuilder{ops: lb.ops, composer: lb.composer.WithSearch(cfg)}
}

// Config exports the accumulated dimension configs for reuse across
// operations.
func (lb *ListBuilder) Config() query.Config {
	return lb.composer.Config()
}

// Builder returns the contract builder for the configured list operation.
func (lb *ListBuilder) Builder() *contract.Builder {
	builder := lb.ops.List(lb.Config())
	if err := lb.composer.Err(); err != nil {
		return builder.Fail(err)
	}
	return builder
}

// Build finalizes the list contract.
func (lb *ListBuilder) Build() (*contract.Contract, error) {
	return lb.Builder().Build()
}
