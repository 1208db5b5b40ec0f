package http

import (
	"context"
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/endgor/azure-ip-lookup/internal/auth"
	"github.com/endgor/azure-ip-lookup/internal/domain"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type API struct {
	Logger        *slog.Logger
	DB            Pinger
	Planning      domain.PlanningService
	Lookup        domain.LookupService
	Authenticator auth.Authenticator
}

func NewAPI(logger *slog.Logger, db Pinger, planning domain.PlanningService, lookup domain.LookupService, authenticator auth.Authenticator) *API {
	return &API{
		Logger:        logger,
		DB:            db,
		Planning:      planning,
		Lookup:        lookup,
		Authenticator: authenticator,
	}
}

func (a *API) Router() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", a.handleHealthz)
	mux.HandleFunc("/readyz", a.handleReadyz)
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	mux.HandleFunc("GET /api/v1/ipaddress", a.handleLookupIP)
	mux.HandleFunc("GET /api/v1/servicetags", a.handleListServiceTags)
	mux.HandleFunc("GET /api/v1/servicetags/{name}", a.handleGetServiceTag)

	mux.HandleFunc("GET /api/v1/plans", a.handleListPlans)
	mux.HandleFunc("POST /api/v1/plans", a.handleCreatePlan)
	mux.HandleFunc("GET /api/v1/plans/{id}", a.handleGetPlanByID)
	mux.HandleFunc("DELETE /api/v1/plans/{id}", a.handleDeletePlanByID)
	mux.HandleFunc("GET /api/v1/plans/{id}/export", a.handleExportPlanByID)
	mux.HandleFunc("GET /api/v1/plans/{id}/leaves", a.handleListLeavesByPlanID)
	mux.HandleFunc("POST /api/v1/plans/{id}/leaves", a.handleCreateLeafByPlanID)
	mux.HandleFunc("PATCH /api/v1/plans/{id}/leaves/{uuid}", a.handleUpdateLeafByUUID)
	mux.HandleFunc("DELETE /api/v1/plans/{id}/leaves/{uuid}", a.handleDeleteLeafByUUID)

	return a.authMiddleware(mux)
}
