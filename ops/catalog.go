package ops

import (
	"fmt"

	"github.com/conduit-lang/routegen/contract"
	"github.com/conduit-lang/routegen/query"
)

// StandardContracts finalizes the full standard operation family for the
// entity: CRUD, list (with the optional query config), batch, bulk,
// introspection, and streaming variants. The soft-delete trio is included
// only when the soft-delete convention is declared. Operations requiring an
// extra argument (Check, Distinct, Search) are not part of the standard set.
func (o *Operations) StandardContracts(cfg ...query.Config) ([]*contract.Contract, error) {
	builders := []*contract.Builder{
		o.Read(),
		o.Create(),
		o.Update(),
		o.Patch(),
		o.Delete(),
		o.List(cfg...),
		o.Count(),
		o.Exists(),
		o.Upsert(),
		o.Validate(),
		o.BatchCreate(),
		o.BatchDelete(),
		o.BatchRead(),
		o.BatchUpdate(),
		o.BatchUpsert(),
		o.Import(),
		o.Clone(),
		o.History(),
		o.Aggregate(),
		o.Export(),
		o.HealthCheck(),
		o.Metrics(),
		o.StreamingRead(),
		o.StreamingList(cfg...),
		o.StreamedInput(),
		o.Websocket(),
	}
	if o.opts.HasSoftDelete {
		builders = append(builders, o.SoftDelete(), o.Archive(), o.Restore())
	}

	contracts := make([]*contract.Contract, 0, len(builders))
	for _, builder := range builders {
		c, err := builder.Build()
		if err != nil {
			return nil, fmt.Errorf("ops: %s: %w", o.name, err)
		}
		contracts = append(contracts, c)
	}
	return contracts, nil
}
