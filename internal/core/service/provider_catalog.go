package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/domination/booking-client/internal/core/domain"
	"github.com/domination/booking-client/internal/core/ports"
)

// ProviderCatalog manages a provider's own branches and rooms. All calls
// require the PROVIDER role server-side; the client only shapes requests.
type ProviderCatalog struct {
	api ports.CatalogAPI
	log zerolog.Logger
}

func NewProviderCatalog(api ports.CatalogAPI, log zerolog.Logger) *ProviderCatalog {
	return &ProviderCatalog{api: api, log: log}
}

func (p *ProviderCatalog) Branches(ctx context.Context) ([]domain.Branch, error) {
	return p.api.ProviderBranches(ctx)
}

func (p *ProviderCatalog) CreateBranch(ctx context.Context, in ports.BranchInput) (*domain.Branch, error) {
	branch, err := p.api.CreateBranch(ctx, in)
	if err != nil {
		return nil, err
	}
	p.log.Info().Int64("branch_id", branch.ID).Str("name", branch.Name).Msg("branch created")
	return branch, nil
}

func (p *ProviderCatalog) UpdateBranch(ctx context.Context, id int64, in ports.BranchInput) (*domain.Branch, error) {
	branch, err := p.api.UpdateBranch(ctx, id, in)
	if err != nil {
		return nil, err
	}
	p.log.Info().Int64("branch_id", id).Msg("branch updated")
	return branch, nil
}

func (p *ProviderCatalog) DeleteBranch(ctx context.Context, id int64) error {
	if err := p.api.DeleteBranch(ctx, id); err != nil {
		return err
	}
	p.log.Info().Int64("branch_id", id).Msg("branch deleted")
	return nil
}

func (p *ProviderCatalog) CreateRoom(ctx context.Context, branchID int64, in ports.RoomInput) (*domain.Item, error) {
	item, err := p.api.CreateRoom(ctx, branchID, in)
	if err != nil {
		return nil, err
	}
	p.log.Info().Int64("branch_id", branchID).Int64("item_id", item.ID).Msg("room created")
	return item, nil
}
