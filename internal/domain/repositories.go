package domain

import (
	"context"
	"net/netip"
)

type PlanRepository interface {
	List(ctx context.Context) ([]Plan, error)
	FindByID(ctx context.Context, id int64) (Plan, error)
	Create(ctx context.Context, record CreatePlanRecord) (Plan, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type LeafRepository interface {
	ListByPlanID(ctx context.Context, planID int64) ([]LeafSubnet, error)
	FindByIDAndPlan(ctx context.Context, id LeafSubnetID, planID int64) (LeafSubnet, error)
	Create(ctx context.Context, record CreateLeafRecord, planID int64) (LeafSubnet, error)
	UpdateComment(ctx context.Context, id LeafSubnetID, input UpdateLeafInput) (LeafSubnet, error)
	DeleteByIDAndPlan(ctx context.Context, id LeafSubnetID, planID int64) (bool, error)
}

// TagIndex answers queries against the loaded Azure service-tag file.
// Implementations must be safe for concurrent readers.
type TagIndex interface {
	Find(addr netip.Addr) []TagMatch
	Tag(name string) (ServiceTag, bool)
	All() []ServiceTag
	Cloud() string
	ChangeNumber() int64
}
