package domain

import (
	"context"
	"log/slog"

	"github.com/endgor/azure-ip-lookup/internal/export"
)

type loggingPlanningService struct {
	logger *slog.Logger
	next   PlanningService
}

func NewLoggingPlanningService(logger *slog.Logger, next PlanningService) PlanningService {
	if logger == nil || next == nil {
		return next
	}

	return &loggingPlanningService{
		logger: logger,
		next:   next,
	}
}

func (s *loggingPlanningService) ListPlans(ctx context.Context) ([]Plan, error) {
	plans, err := s.next.ListPlans(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "list plans failed", "err", err.Error())
	}
	return plans, err
}

func (s *loggingPlanningService) CreatePlan(ctx context.Context, input CreatePlanInput) (Plan, error) {
	plan, err := s.next.CreatePlan(ctx, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "create plan failed", "cidr", input.CIDR, "err", err.Error())
		return Plan{}, err
	}

	s.logger.InfoContext(ctx, "plan created", "id", plan.ID, "cidr", plan.CIDR.String())
	return plan, nil
}

func (s *loggingPlanningService) GetPlan(ctx context.Context, id int64) (Plan, error) {
	plan, err := s.next.GetPlan(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "get plan failed", "id", id, "err", err.Error())
	}
	return plan, err
}

func (s *loggingPlanningService) DeletePlan(ctx context.Context, id int64) error {
	err := s.next.DeletePlan(ctx, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "delete plan failed", "id", id, "err", err.Error())
		return err
	}

	s.logger.InfoContext(ctx, "plan deleted", "id", id)
	return nil
}

func (s *loggingPlanningService) ListLeaves(ctx context.Context, planID int64) ([]LeafSubnet, error) {
	leaves, err := s.next.ListLeaves(ctx, planID)
	if err != nil {
		s.logger.ErrorContext(ctx, "list leaves failed", "plan_id", planID, "err", err.Error())
	}
	return leaves, err
}

func (s *loggingPlanningService) AddLeaf(ctx context.Context, planID int64, input CreateLeafInput) (LeafSubnet, error) {
	leaf, err := s.next.AddLeaf(ctx, planID, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "add leaf failed", "plan_id", planID, "cidr", input.CIDR, "err", err.Error())
		return LeafSubnet{}, err
	}

	s.logger.DebugContext(ctx, "leaf added", "plan_id", planID, "cidr", leaf.CIDR.String(), "id", string(leaf.ID))
	return leaf, nil
}

func (s *loggingPlanningService) UpdateLeafComment(ctx context.Context, planID int64, id LeafSubnetID, input UpdateLeafInput) (LeafSubnet, error) {
	leaf, err := s.next.UpdateLeafComment(ctx, planID, id, input)
	if err != nil {
		s.logger.ErrorContext(ctx, "update leaf comment failed", "plan_id", planID, "leaf_id", string(id), "err", err.Error())
	}
	return leaf, err
}

func (s *loggingPlanningService) DeleteLeaf(ctx context.Context, planID int64, id LeafSubnetID) error {
	err := s.next.DeleteLeaf(ctx, planID, id)
	if err != nil {
		s.logger.ErrorContext(ctx, "delete leaf failed", "plan_id", planID, "leaf_id", string(id), "err", err.Error())
		return err
	}

	s.logger.DebugContext(ctx, "leaf deleted", "plan_id", planID, "leaf_id", string(id))
	return nil
}

func (s *loggingPlanningService) ExportPlan(ctx context.Context, planID int64, azureReserved bool) (export.Document, error) {
	doc, err := s.next.ExportPlan(ctx, planID, azureReserved)
	if err != nil {
		s.logger.ErrorContext(ctx, "export plan failed", "plan_id", planID, "azure_reserved", azureReserved, "err", err.Error())
		return export.Document{}, err
	}

	s.logger.DebugContext(ctx, "plan exported", "plan_id", planID, "azure_reserved", azureReserved, "rows", len(doc.Rows))
	return doc, nil
}
