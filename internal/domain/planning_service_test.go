package domain

import (
	"context"
	"errors"
	"net/netip"
	"testing"
)

type stubPlanRepository struct {
	listFn   func(context.Context) ([]Plan, error)
	findFn   func(context.Context, int64) (Plan, error)
	createFn func(context.Context, CreatePlanRecord) (Plan, error)
	deleteFn func(context.Context, int64) (bool, error)
}

func (s stubPlanRepository) List(ctx context.Context) ([]Plan, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx)
}

func (s stubPlanRepository) FindByID(ctx context.Context, id int64) (Plan, error) {
	if s.findFn == nil {
		return Plan{}, nil
	}
	return s.findFn(ctx, id)
}

func (s stubPlanRepository) Create(ctx context.Context, record CreatePlanRecord) (Plan, error) {
	if s.createFn == nil {
		return Plan{}, nil
	}
	return s.createFn(ctx, record)
}

func (s stubPlanRepository) Delete(ctx context.Context, id int64) (bool, error) {
	if s.deleteFn == nil {
		return false, nil
	}
	return s.deleteFn(ctx, id)
}

type stubLeafRepository struct {
	listFn   func(context.Context, int64) ([]LeafSubnet, error)
	findFn   func(context.Context, LeafSubnetID, int64) (LeafSubnet, error)
	createFn func(context.Context, CreateLeafRecord, int64) (LeafSubnet, error)
	updateFn func(context.Context, LeafSubnetID, UpdateLeafInput) (LeafSubnet, error)
	deleteFn func(context.Context, LeafSubnetID, int64) (bool, error)
}

func (s stubLeafRepository) ListByPlanID(ctx context.Context, planID int64) ([]LeafSubnet, error) {
	if s.listFn == nil {
		return nil, nil
	}
	return s.listFn(ctx, planID)
}

func (s stubLeafRepository) FindByIDAndPlan(ctx context.Context, id LeafSubnetID, planID int64) (LeafSubnet, error) {
	if s.findFn == nil {
		return LeafSubnet{}, nil
	}
	return s.findFn(ctx, id, planID)
}

func (s stubLeafRepository) Create(ctx context.Context, record CreateLeafRecord, planID int64) (LeafSubnet, error) {
	if s.createFn == nil {
		return LeafSubnet{}, nil
	}
	return s.createFn(ctx, record, planID)
}

func (s stubLeafRepository) UpdateComment(ctx context.Context, id LeafSubnetID, input UpdateLeafInput) (LeafSubnet, error) {
	if s.updateFn == nil {
		return LeafSubnet{}, nil
	}
	return s.updateFn(ctx, id, input)
}

func (s stubLeafRepository) DeleteByIDAndPlan(ctx context.Context, id LeafSubnetID, planID int64) (bool, error) {
	if s.deleteFn == nil {
		return false, nil
	}
	return s.deleteFn(ctx, id, planID)
}

func planRepoWithBase(cidr string) stubPlanRepository {
	return stubPlanRepository{
		findFn: func(context.Context, int64) (Plan, error) {
			return Plan{ID: 1, CIDR: netip.MustParsePrefix(cidr)}, nil
		},
	}
}

func TestCreatePlanRejectsInvalidCIDR(t *testing.T) {
	svc := NewPlanningService(stubPlanRepository{}, stubLeafRepository{})

	_, err := svc.CreatePlan(context.Background(), CreatePlanInput{CIDR: "not-a-cidr"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreatePlanRejectsIPv6(t *testing.T) {
	svc := NewPlanningService(stubPlanRepository{}, stubLeafRepository{})

	_, err := svc.CreatePlan(context.Background(), CreatePlanInput{CIDR: "2001:db8::/32"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCreatePlanRejectsHostBits(t *testing.T) {
	svc := NewPlanningService(stubPlanRepository{}, stubLeafRepository{})

	_, err := svc.CreatePlan(context.Background(), CreatePlanInput{CIDR: "10.0.0.1/24"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAddLeafRejectsLeafOutsidePlan(t *testing.T) {
	svc := NewPlanningService(planRepoWithBase("10.0.0.0/16"), stubLeafRepository{})

	_, err := svc.AddLeaf(context.Background(), 1, CreateLeafInput{CIDR: "10.1.0.0/24"})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAddLeafRejectsOverlap(t *testing.T) {
	svc := NewPlanningService(
		planRepoWithBase("10.0.0.0/16"),
		stubLeafRepository{
			listFn: func(context.Context, int64) ([]LeafSubnet, error) {
				return []LeafSubnet{
					{ID: "leaf-1", CIDR: netip.MustParsePrefix("10.0.0.0/24"), PlanID: 1},
				}, nil
			},
		},
	)

	_, err := svc.AddLeaf(context.Background(), 1, CreateLeafInput{CIDR: "10.0.0.128/25"})
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAddLeafCreatesAlignedLeaf(t *testing.T) {
	created := false
	svc := NewPlanningService(
		planRepoWithBase("10.0.0.0/16"),
		stubLeafRepository{
			createFn: func(_ context.Context, record CreateLeafRecord, planID int64) (LeafSubnet, error) {
				created = true
				return LeafSubnet{ID: "leaf-1", CIDR: record.CIDR, Comment: record.Comment, PlanID: planID}, nil
			},
		},
	)

	leaf, err := svc.AddLeaf(context.Background(), 1, CreateLeafInput{CIDR: "10.0.4.0/24", Comment: "app tier"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !created {
		t.Fatal("expected repository create to be called")
	}
	if leaf.Comment != "app tier" {
		t.Fatalf("unexpected comment: %q", leaf.Comment)
	}
}

func TestAddLeafPropagatesPlanNotFound(t *testing.T) {
	svc := NewPlanningService(
		stubPlanRepository{
			findFn: func(context.Context, int64) (Plan, error) {
				return Plan{}, ErrPlanNotFound
			},
		},
		stubLeafRepository{},
	)

	_, err := svc.AddLeaf(context.Background(), 7, CreateLeafInput{CIDR: "10.0.4.0/24"})
	if !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestDeletePlanReturnsNotFoundWhenRepositoryReportsNoDelete(t *testing.T) {
	svc := NewPlanningService(
		stubPlanRepository{
			deleteFn: func(context.Context, int64) (bool, error) {
				return false, nil
			},
		},
		stubLeafRepository{},
	)

	err := svc.DeletePlan(context.Background(), 1)
	if !errors.Is(err, ErrPlanNotFound) {
		t.Fatalf("expected ErrPlanNotFound, got %v", err)
	}
}

func TestDeleteLeafReturnsNotFoundWhenRepositoryReportsNoDelete(t *testing.T) {
	svc := NewPlanningService(stubPlanRepository{}, stubLeafRepository{})

	err := svc.DeleteLeaf(context.Background(), 1, LeafSubnetID("leaf-1"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestExportPlanBuildsRowsWithComments(t *testing.T) {
	svc := NewPlanningService(
		planRepoWithBase("10.0.0.0/16"),
		stubLeafRepository{
			listFn: func(context.Context, int64) ([]LeafSubnet, error) {
				return []LeafSubnet{
					{ID: "leaf-1", CIDR: netip.MustParsePrefix("10.0.0.0/24"), Comment: "web tier", PlanID: 1},
					{ID: "leaf-2", CIDR: netip.MustParsePrefix("10.0.1.0/28"), PlanID: 1},
				}, nil
			},
		},
	)

	doc, err := svc.ExportPlan(context.Background(), 1, true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(doc.Rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(doc.Rows))
	}
	if doc.Headers[4] != "Hosts (Azure)" {
		t.Fatalf("unexpected headers: %v", doc.Headers)
	}
	if doc.Rows[0].Comment != "web tier" {
		t.Fatalf("unexpected comment: %q", doc.Rows[0].Comment)
	}
	if doc.Rows[1].Hosts != 11 {
		t.Fatalf("expected 11 hosts for /28 under azure reservation, got %d", doc.Rows[1].Hosts)
	}
}
