package lookup

import (
	"context"

	"github.com/rshade/incidfilter/internal/logging"
)

// Resolver resolves operations using a static code map, falling back to
// description matching against a table.
type Resolver struct {
	codes Codes
	table *Table
}

// NewResolver creates a resolver. table may be nil, in which case only the
// static map is used.
func NewResolver(codes Codes, table *Table) *Resolver {
	if codes == nil {
		codes = DefaultCodes()
	}
	return &Resolver{codes: codes, table: table}
}

// Resolve returns op's code. A mapped code is trusted when no table is loaded
// or the table contains it.
func (r *Resolver) Resolve(ctx context.Context, op Operation) Result {
	log := logging.FromContext(ctx)

	res := r.codes.Resolve(op)
	if res.OK() && (r.table == nil || r.table.HasCode(res.Code)) {
		return res
	}
	if r.table == nil {
		log.Debug().Ctx(ctx).
			Str("component", "lookup").
			Stringer("operation", op).
			Msg("operation has no mapped code")
		return res
	}

	res = r.table.MatchDescription(op.String())
	switch res.Status {
	case Ambiguous:
		log.Warn().Ctx(ctx).
			Str("component", "lookup").
			Str("table", r.table.Name).
			Stringer("operation", op).
			Strs("matches", res.Matches).
			Msg("operation description is ambiguous")
	case NotFound:
		log.Debug().Ctx(ctx).
			Str("component", "lookup").
			Str("table", r.table.Name).
			Stringer("operation", op).
			Msg("operation not found in lookup table")
	}
	return res
}
