package domain

import (
	"context"
	"fmt"
	"net/netip"

	"go4.org/netipx"

	"github.com/endgor/azure-ip-lookup/internal/export"
	"github.com/endgor/azure-ip-lookup/internal/ipmath"
)

type planningService struct {
	plans  PlanRepository
	leaves LeafRepository
}

func NewPlanningService(plans PlanRepository, leaves LeafRepository) PlanningService {
	return &planningService{
		plans:  plans,
		leaves: leaves,
	}
}

func (s *planningService) ListPlans(ctx context.Context) ([]Plan, error) {
	return s.plans.List(ctx)
}

func (s *planningService) CreatePlan(ctx context.Context, input CreatePlanInput) (Plan, error) {
	prefix, err := parsePlanPrefix(input.CIDR)
	if err != nil {
		return Plan{}, err
	}
	return s.plans.Create(ctx, CreatePlanRecord{
		CIDR:        prefix,
		Description: input.Description,
	})
}

func (s *planningService) GetPlan(ctx context.Context, id int64) (Plan, error) {
	return s.plans.FindByID(ctx, id)
}

func (s *planningService) DeletePlan(ctx context.Context, id int64) error {
	deleted, err := s.plans.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrPlanNotFound
	}
	return nil
}

func (s *planningService) ListLeaves(ctx context.Context, planID int64) ([]LeafSubnet, error) {
	if _, err := s.plans.FindByID(ctx, planID); err != nil {
		return nil, err
	}
	return s.leaves.ListByPlanID(ctx, planID)
}

func (s *planningService) AddLeaf(ctx context.Context, planID int64, input CreateLeafInput) (LeafSubnet, error) {
	plan, err := s.plans.FindByID(ctx, planID)
	if err != nil {
		return LeafSubnet{}, err
	}

	prefix, err := parsePlanPrefix(input.CIDR)
	if err != nil {
		return LeafSubnet{}, err
	}

	if err := validateLeafInPlan(plan.CIDR, prefix); err != nil {
		return LeafSubnet{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	existing, err := s.leaves.ListByPlanID(ctx, planID)
	if err != nil {
		return LeafSubnet{}, err
	}
	for _, leaf := range existing {
		if leaf.CIDR.Overlaps(prefix) {
			return LeafSubnet{}, fmt.Errorf("%w: overlaps leaf %s", ErrConflict, leaf.CIDR)
		}
	}

	return s.leaves.Create(ctx, CreateLeafRecord{
		CIDR:    prefix,
		Comment: input.Comment,
	}, planID)
}

func (s *planningService) UpdateLeafComment(ctx context.Context, planID int64, id LeafSubnetID, input UpdateLeafInput) (LeafSubnet, error) {
	if _, err := s.plans.FindByID(ctx, planID); err != nil {
		return LeafSubnet{}, err
	}
	if _, err := s.leaves.FindByIDAndPlan(ctx, id, planID); err != nil {
		return LeafSubnet{}, err
	}
	return s.leaves.UpdateComment(ctx, id, input)
}

func (s *planningService) DeleteLeaf(ctx context.Context, planID int64, id LeafSubnetID) error {
	deleted, err := s.leaves.DeleteByIDAndPlan(ctx, id, planID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}
	return nil
}

func (s *planningService) ExportPlan(ctx context.Context, planID int64, azureReserved bool) (export.Document, error) {
	if _, err := s.plans.FindByID(ctx, planID); err != nil {
		return export.Document{}, err
	}

	leaves, err := s.leaves.ListByPlanID(ctx, planID)
	if err != nil {
		return export.Document{}, err
	}

	exportLeaves := make([]export.Leaf, 0, len(leaves))
	comments := make(map[string]string, len(leaves))
	for _, leaf := range leaves {
		network, err := ipmath.FromAddr(leaf.CIDR.Addr())
		if err != nil {
			return export.Document{}, fmt.Errorf("leaf %s: %w", leaf.ID, err)
		}
		exportLeaves = append(exportLeaves, export.Leaf{
			ID:      string(leaf.ID),
			Network: network,
			Prefix:  leaf.CIDR.Bits(),
		})
		comments[string(leaf.ID)] = leaf.Comment
	}

	return export.BuildDocument(exportLeaves, azureReserved, comments)
}

// parsePlanPrefix accepts an aligned IPv4 prefix. Host bits below the
// prefix are rejected rather than masked off.
func parsePlanPrefix(cidr string) (netip.Prefix, error) {
	prefix, err := netip.ParsePrefix(cidr)
	if err != nil {
		return netip.Prefix{}, fmt.Errorf("%w: invalid cidr", ErrInvalidInput)
	}
	if !prefix.Addr().Is4() {
		return netip.Prefix{}, fmt.Errorf("%w: only ipv4 subnets are supported", ErrInvalidInput)
	}
	if prefix.Masked() != prefix {
		return netip.Prefix{}, fmt.Errorf("%w: network address has host bits set", ErrInvalidInput)
	}
	return prefix, nil
}

func validateLeafInPlan(base, leaf netip.Prefix) error {
	if leaf.Bits() < base.Bits() {
		return fmt.Errorf("leaf is larger than the plan network")
	}
	r := netipx.RangeOfPrefix(leaf)
	if !base.Contains(r.From()) || !base.Contains(r.To()) {
		return fmt.Errorf("leaf not within plan network")
	}
	return nil
}
