package domain

import (
	"context"
	"net/netip"

	"github.com/endgor/azure-ip-lookup/internal/export"
)

type PlanningService interface {
	ListPlans(ctx context.Context) ([]Plan, error)
	CreatePlan(ctx context.Context, input CreatePlanInput) (Plan, error)
	GetPlan(ctx context.Context, id int64) (Plan, error)
	DeletePlan(ctx context.Context, id int64) error
	ListLeaves(ctx context.Context, planID int64) ([]LeafSubnet, error)
	AddLeaf(ctx context.Context, planID int64, input CreateLeafInput) (LeafSubnet, error)
	UpdateLeafComment(ctx context.Context, planID int64, id LeafSubnetID, input UpdateLeafInput) (LeafSubnet, error)
	DeleteLeaf(ctx context.Context, planID int64, id LeafSubnetID) error
	ExportPlan(ctx context.Context, planID int64, azureReserved bool) (export.Document, error)
}

type LookupService interface {
	Lookup(ctx context.Context, addr netip.Addr) ([]TagMatch, error)
	GetServiceTag(ctx context.Context, name string) (ServiceTag, error)
	ListServiceTags(ctx context.Context) ([]ServiceTag, error)
}
