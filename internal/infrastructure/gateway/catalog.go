package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/domination/booking-client/internal/core/domain"
	"github.com/domination/booking-client/internal/core/ports"
)

type branchBody struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Active  bool   `json:"active"`
}

type roomBody struct {
	Name      string  `json:"name"`
	BasePrice float64 `json:"basePrice"`
}

// Branches lists all public branches. No auth required.
func (c *Client) Branches(ctx context.Context) ([]domain.Branch, error) {
	var branches []domain.Branch
	if err := c.do(ctx, "catalog.branches", http.MethodGet, c.baseURL, "/api/catalog/branches", nil, false, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

// Items lists items, filterable by branch and type. No auth required.
func (c *Client) Items(ctx context.Context, filter ports.ItemFilter) ([]domain.Item, error) {
	path := "/api/catalog/items"
	params := url.Values{}
	if filter.BranchID != 0 {
		params.Set("branchId", strconv.FormatInt(filter.BranchID, 10))
	}
	if filter.Type != "" {
		params.Set("type", string(filter.Type))
	}
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var items []domain.Item
	if err := c.do(ctx, "catalog.items", http.MethodGet, c.baseURL, path, nil, false, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ProviderBranches lists the authenticated provider's own branches.
func (c *Client) ProviderBranches(ctx context.Context) ([]domain.Branch, error) {
	var branches []domain.Branch
	if err := c.do(ctx, "catalog.provider.branches", http.MethodGet, c.baseURL, "/api/catalog/provider/branches", nil, true, &branches); err != nil {
		return nil, err
	}
	return branches, nil
}

func (c *Client) CreateBranch(ctx context.Context, in ports.BranchInput) (*domain.Branch, error) {
	var branch domain.Branch
	err := c.do(ctx, "catalog.provider.branch_create", http.MethodPost, c.baseURL, "/api/catalog/provider/branches",
		branchBody{Name: in.Name, Address: in.Address, Active: in.Active}, true, &branch)
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (c *Client) UpdateBranch(ctx context.Context, id int64, in ports.BranchInput) (*domain.Branch, error) {
	path := fmt.Sprintf("/api/catalog/provider/branches/%d", id)

	var branch domain.Branch
	err := c.do(ctx, "catalog.provider.branch_update", http.MethodPut, c.baseURL, path,
		branchBody{Name: in.Name, Address: in.Address, Active: in.Active}, true, &branch)
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (c *Client) DeleteBranch(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/catalog/provider/branches/%d", id)
	return c.do(ctx, "catalog.provider.branch_delete", http.MethodDelete, c.baseURL, path, nil, true, nil)
}

func (c *Client) CreateRoom(ctx context.Context, branchID int64, in ports.RoomInput) (*domain.Item, error) {
	path := fmt.Sprintf("/api/catalog/provider/branches/%d/rooms", branchID)

	var item domain.Item
	err := c.do(ctx, "catalog.provider.room_create", http.MethodPost, c.baseURL, path,
		roomBody{Name: in.Name, BasePrice: in.BasePrice}, true, &item)
	if err != nil {
		return nil, err
	}
	return &item, nil
}
