package domain

import (
	"context"
	"errors"
	"log/slog"
	"net/netip"
	"testing"

	"github.com/endgor/azure-ip-lookup/internal/export"
)

type captureHandler struct {
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool {
	return true
}

func (h *captureHandler) Handle(_ context.Context, record slog.Record) error {
	clone := slog.NewRecord(record.Time, record.Level, record.Message, record.PC)
	record.Attrs(func(attr slog.Attr) bool {
		clone.AddAttrs(attr)
		return true
	})
	h.records = append(h.records, clone)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler {
	return h
}

func (h *captureHandler) WithGroup(string) slog.Handler {
	return h
}

type stubPlanningService struct {
	listPlansFn  func(context.Context) ([]Plan, error)
	createPlanFn func(context.Context, CreatePlanInput) (Plan, error)
	getPlanFn    func(context.Context, int64) (Plan, error)
	deletePlanFn func(context.Context, int64) error
	listLeavesFn func(context.Context, int64) ([]LeafSubnet, error)
	addLeafFn    func(context.Context, int64, CreateLeafInput) (LeafSubnet, error)
	updateLeafFn func(context.Context, int64, LeafSubnetID, UpdateLeafInput) (LeafSubnet, error)
	deleteLeafFn func(context.Context, int64, LeafSubnetID) error
	exportPlanFn func(context.Context, int64, bool) (export.Document, error)
}

func (s stubPlanningService) ListPlans(ctx context.Context) ([]Plan, error) {
	if s.listPlansFn == nil {
		return nil, nil
	}
	return s.listPlansFn(ctx)
}

func (s stubPlanningService) CreatePlan(ctx context.Context, input CreatePlanInput) (Plan, error) {
	if s.createPlanFn == nil {
		return Plan{}, nil
	}
	return s.createPlanFn(ctx, input)
}

func (s stubPlanningService) GetPlan(ctx context.Context, id int64) (Plan, error) {
	if s.getPlanFn == nil {
		return Plan{}, nil
	}
	return s.getPlanFn(ctx, id)
}

func (s stubPlanningService) DeletePlan(ctx context.Context, id int64) error {
	if s.deletePlanFn == nil {
		return nil
	}
	return s.deletePlanFn(ctx, id)
}

func (s stubPlanningService) ListLeaves(ctx context.Context, planID int64) ([]LeafSubnet, error) {
	if s.listLeavesFn == nil {
		return nil, nil
	}
	return s.listLeavesFn(ctx, planID)
}

func (s stubPlanningService) AddLeaf(ctx context.Context, planID int64, input CreateLeafInput) (LeafSubnet, error) {
	if s.addLeafFn == nil {
		return LeafSubnet{}, nil
	}
	return s.addLeafFn(ctx, planID, input)
}

func (s stubPlanningService) UpdateLeafComment(ctx context.Context, planID int64, id LeafSubnetID, input UpdateLeafInput) (LeafSubnet, error) {
	if s.updateLeafFn == nil {
		return LeafSubnet{}, nil
	}
	return s.updateLeafFn(ctx, planID, id, input)
}

func (s stubPlanningService) DeleteLeaf(ctx context.Context, planID int64, id LeafSubnetID) error {
	if s.deleteLeafFn == nil {
		return nil
	}
	return s.deleteLeafFn(ctx, planID, id)
}

func (s stubPlanningService) ExportPlan(ctx context.Context, planID int64, azureReserved bool) (export.Document, error) {
	if s.exportPlanFn == nil {
		return export.Document{}, nil
	}
	return s.exportPlanFn(ctx, planID, azureReserved)
}

func TestLoggingServiceReturnsNextWhenLoggerIsNil(t *testing.T) {
	next := &stubPlanningService{}
	svc := NewLoggingPlanningService(nil, next)
	if svc != PlanningService(next) {
		t.Fatal("expected the undecorated service back")
	}
}

func TestLoggingServiceLogsCreatePlanSuccess(t *testing.T) {
	handler := &captureHandler{}
	svc := NewLoggingPlanningService(
		slog.New(handler),
		stubPlanningService{
			createPlanFn: func(context.Context, CreatePlanInput) (Plan, error) {
				return Plan{ID: 1, CIDR: netip.MustParsePrefix("10.0.0.0/16")}, nil
			},
		},
	)

	_, err := svc.CreatePlan(context.Background(), CreatePlanInput{CIDR: "10.0.0.0/16"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(handler.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(handler.records))
	}
	record := handler.records[0]
	if record.Level != slog.LevelInfo {
		t.Fatalf("expected info level, got %v", record.Level)
	}
	if record.Message != "plan created" {
		t.Fatalf("unexpected message: %q", record.Message)
	}
}

func TestLoggingServiceLogsAddLeafFailure(t *testing.T) {
	handler := &captureHandler{}
	wantErr := errors.New("boom")
	svc := NewLoggingPlanningService(
		slog.New(handler),
		stubPlanningService{
			addLeafFn: func(context.Context, int64, CreateLeafInput) (LeafSubnet, error) {
				return LeafSubnet{}, wantErr
			},
		},
	)

	_, err := svc.AddLeaf(context.Background(), 1, CreateLeafInput{CIDR: "10.0.0.0/24"})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped error, got %v", err)
	}

	if len(handler.records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(handler.records))
	}
	if handler.records[0].Level != slog.LevelError {
		t.Fatalf("expected error level, got %v", handler.records[0].Level)
	}
}

func TestLoggingServicePassesThroughExport(t *testing.T) {
	handler := &captureHandler{}
	svc := NewLoggingPlanningService(
		slog.New(handler),
		stubPlanningService{
			exportPlanFn: func(_ context.Context, _ int64, azureReserved bool) (export.Document, error) {
				return export.Document{Headers: export.Headers(azureReserved)}, nil
			},
		},
	)

	doc, err := svc.ExportPlan(context.Background(), 1, false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if doc.Headers[3] != "Usable range (Standard)" {
		t.Fatalf("unexpected headers: %v", doc.Headers)
	}
}
