package ports

import (
	"context"

	"github.com/domination/booking-client/internal/core/domain"
)

// ItemFilter narrows an item listing. Zero values mean "no filter".
type ItemFilter struct {
	BranchID int64
	Type     domain.ItemType
}

// BranchInput carries the fields a provider may set on a branch.
type BranchInput struct {
	Name    string
	Address string
	Active  bool
}

// RoomInput carries the fields for creating a room item under a branch.
// Rooms are always TIME_EXCLUSIVE; the catalog service fixes the mode.
type RoomInput struct {
	Name      string
	BasePrice float64
}

// CatalogAPI is the catalog service surface the client consumes. The public
// reads need no auth; the provider/ operations require the PROVIDER role.
type CatalogAPI interface {
	Branches(ctx context.Context) ([]domain.Branch, error)
	Items(ctx context.Context, filter ItemFilter) ([]domain.Item, error)

	ProviderBranches(ctx context.Context) ([]domain.Branch, error)
	CreateBranch(ctx context.Context, in BranchInput) (*domain.Branch, error)
	UpdateBranch(ctx context.Context, id int64, in BranchInput) (*domain.Branch, error)
	DeleteBranch(ctx context.Context, id int64) error
	CreateRoom(ctx context.Context, branchID int64, in RoomInput) (*domain.Item, error)
}
