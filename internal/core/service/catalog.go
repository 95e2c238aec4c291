package service

import (
	"context"
	"sync/atomic"

	"github.com/rs/zerolog"

	"github.com/domination/booking-client/internal/core/domain"
	"github.com/domination/booking-client/internal/core/ports"
)

// CatalogBrowser loads branches and items for display. Item queries are
// sequenced: every call takes a number from a monotonically increasing
// counter, and a response that is no longer the latest issued query returns
// domain.ErrStaleResponse instead of data. Rapid filter changes therefore
// cannot overwrite newer results with older ones.
type CatalogBrowser struct {
	api ports.CatalogAPI
	log zerolog.Logger

	itemSeq atomic.Uint64
}

func NewCatalogBrowser(api ports.CatalogAPI, log zerolog.Logger) *CatalogBrowser {
	return &CatalogBrowser{api: api, log: log}
}

// Branches lists all active branches.
func (b *CatalogBrowser) Branches(ctx context.Context) ([]domain.Branch, error) {
	return b.api.Branches(ctx)
}

// Items lists items matching the filter. Selecting a different branch is a
// new query; if another Items call was issued while this one was in flight,
// the result is discarded with domain.ErrStaleResponse.
func (b *CatalogBrowser) Items(ctx context.Context, filter ports.ItemFilter) ([]domain.Item, error) {
	seq := b.itemSeq.Add(1)

	items, err := b.api.Items(ctx, filter)
	if err != nil {
		return nil, err
	}

	if seq != b.itemSeq.Load() {
		b.log.Debug().
			Uint64("seq", seq).
			Int64("branch_id", filter.BranchID).
			Msg("discarding superseded item response")
		return nil, domain.ErrStaleResponse
	}
	return items, nil
}
