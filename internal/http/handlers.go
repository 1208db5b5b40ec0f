package http

import (
	"errors"
	"net/http"
	"net/netip"

	"github.com/endgor/azure-ip-lookup/internal/domain"
)

// @Summary Health check
// @Tags health
// @Success 200 {string} string "ok"
// @Router /healthz [get]
func (a *API) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// @Summary Readiness check
// @Tags health
// @Success 200 {string} string "ready"
// @Failure 503 {string} string "db unavailable"
// @Router /readyz [get]
func (a *API) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := a.DB.Ping(ctx); err != nil {
		a.Logger.Error("db ping failed", "err", err)
		http.Error(w, "db unavailable", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// @Summary Look up an ip address against the Azure service tags
// @Tags lookup
// @Produce json
// @Param ipOrDomain query string true "IPv4 or IPv6 address"
// @Success 200 {object} LookupResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/ipaddress [get]
func (a *API) handleLookupIP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	raw := r.URL.Query().Get("ipOrDomain")
	if raw == "" {
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "missing ipOrDomain parameter"})
		return
	}

	addr, err := netip.ParseAddr(raw)
	if err != nil {
		a.Logger.DebugContext(ctx, "unparseable lookup input", "input", raw)
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "invalid ip address"})
		return
	}

	matches, err := a.Lookup.Lookup(ctx, addr)
	if err != nil {
		a.respondServiceError(w, r, err, "looking up ip address")
		return
	}

	if len(matches) == 0 {
		a.respond(w, r, http.StatusNotFound, ErrorResponse{Error: "no service tag covers this ip address"})
		return
	}

	a.respond(w, r, http.StatusOK, matchesToResponse(addr.String(), matches))
}

// @Summary List service tags
// @Tags lookup
// @Produce json
// @Success 200 {array} ServiceTagSummaryResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/servicetags [get]
func (a *API) handleListServiceTags(w http.ResponseWriter, r *http.Request) {
	tags, err := a.Lookup.ListServiceTags(r.Context())
	if err != nil {
		a.respondServiceError(w, r, err, "listing service tags")
		return
	}
	a.respond(w, r, http.StatusOK, tagsToSummaryResponse(tags))
}

// @Summary Get service tag by name
// @Tags lookup
// @Produce json
// @Param name path string true "Service tag name"
// @Success 200 {object} ServiceTagResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/servicetags/{name} [get]
func (a *API) handleGetServiceTag(w http.ResponseWriter, r *http.Request) {
	tag, err := a.Lookup.GetServiceTag(r.Context(), r.PathValue("name"))
	if err != nil {
		a.respondServiceError(w, r, err, "reading service tag")
		return
	}
	a.respond(w, r, http.StatusOK, tagToResponse(tag))
}

// @Summary List subnet plans
// @Tags plans
// @Produce json
// @Success 200 {array} PlanResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/plans [get]
func (a *API) handleListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := a.Planning.ListPlans(r.Context())
	if err != nil {
		a.respondServiceError(w, r, err, "listing plans")
		return
	}
	a.respond(w, r, http.StatusOK, plansToResponse(plans))
}

// @Summary Create subnet plan
// @Tags plans
// @Accept json
// @Produce json
// @Param plan body CreatePlanRequest true "Plan payload"
// @Success 201 {object} PlanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/v1/plans [post]
func (a *API) handleCreatePlan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, err := decode[CreatePlanRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling plan from request", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	plan, err := a.Planning.CreatePlan(ctx, domain.CreatePlanInput{
		CIDR:        req.CIDR,
		Description: req.Description,
	})
	if err != nil {
		a.respondServiceError(w, r, err, "creating plan")
		return
	}

	a.respond(w, r, http.StatusCreated, planToResponse(plan))
}

// @Summary Get subnet plan by ID
// @Tags plans
// @Produce json
// @Param id path int true "Plan ID"
// @Success 200 {object} PlanResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/plans/{id} [get]
func (a *API) handleGetPlanByID(w http.ResponseWriter, r *http.Request) {
	id, ok := a.planID(w, r)
	if !ok {
		return
	}

	plan, err := a.Planning.GetPlan(r.Context(), id)
	if err != nil {
		a.respondServiceError(w, r, err, "reading plan")
		return
	}

	a.respond(w, r, http.StatusOK, planToResponse(plan))
}

// @Summary Delete subnet plan
// @Tags plans
// @Param id path int true "Plan ID"
// @Success 204 "No content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/plans/{id} [delete]
func (a *API) handleDeletePlanByID(w http.ResponseWriter, r *http.Request) {
	id, ok := a.planID(w, r)
	if !ok {
		return
	}

	if err := a.Planning.DeletePlan(r.Context(), id); err != nil {
		a.respondServiceError(w, r, err, "deleting plan")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// @Summary Export plan as download rows
// @Tags plans
// @Produce json
// @Param id path int true "Plan ID"
// @Param reservation query string false "Reservation convention: azure (default) or standard"
// @Success 200 {object} export.Document
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/plans/{id}/export [get]
func (a *API) handleExportPlanByID(w http.ResponseWriter, r *http.Request) {
	id, ok := a.planID(w, r)
	if !ok {
		return
	}

	azureReserved := true
	switch r.URL.Query().Get("reservation") {
	case "", "azure":
	case "standard":
		azureReserved = false
	default:
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "reservation must be azure or standard"})
		return
	}

	doc, err := a.Planning.ExportPlan(r.Context(), id, azureReserved)
	if err != nil {
		a.respondServiceError(w, r, err, "exporting plan")
		return
	}

	a.respond(w, r, http.StatusOK, doc)
}

// @Summary List leaf subnets of a plan
// @Tags plans
// @Produce json
// @Param id path int true "Plan ID"
// @Success 200 {array} LeafResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/plans/{id}/leaves [get]
func (a *API) handleListLeavesByPlanID(w http.ResponseWriter, r *http.Request) {
	id, ok := a.planID(w, r)
	if !ok {
		return
	}

	leaves, err := a.Planning.ListLeaves(r.Context(), id)
	if err != nil {
		a.respondServiceError(w, r, err, "listing leaves")
		return
	}

	a.respond(w, r, http.StatusOK, leavesToResponse(leaves))
}

// @Summary Add leaf subnet to a plan
// @Tags plans
// @Accept json
// @Produce json
// @Param id path int true "Plan ID"
// @Param payload body CreateLeafRequest true "Leaf subnet to add"
// @Success 201 {object} LeafResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /api/v1/plans/{id}/leaves [post]
func (a *API) handleCreateLeafByPlanID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := a.planID(w, r)
	if !ok {
		return
	}

	req, err := decode[CreateLeafRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling leaf from request", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	leaf, err := a.Planning.AddLeaf(ctx, id, domain.CreateLeafInput{
		CIDR:    req.CIDR,
		Comment: req.Comment,
	})
	if err != nil {
		a.respondServiceError(w, r, err, "adding leaf")
		return
	}

	a.respond(w, r, http.StatusCreated, leafToResponse(leaf))
}

// @Summary Update leaf subnet comment
// @Tags plans
// @Accept json
// @Produce json
// @Param id path int true "Plan ID"
// @Param uuid path string true "Leaf subnet UUID"
// @Param payload body UpdateLeafRequest true "New comment"
// @Success 200 {object} LeafResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/plans/{id}/leaves/{uuid} [patch]
func (a *API) handleUpdateLeafByUUID(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := a.planID(w, r)
	if !ok {
		return
	}

	req, err := decode[UpdateLeafRequest](r)
	defer r.Body.Close()
	if err != nil {
		a.Logger.ErrorContext(ctx, "unmarshaling comment from request", "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return
	}

	leaf, err := a.Planning.UpdateLeafComment(ctx, id, domain.LeafSubnetID(r.PathValue("uuid")), domain.UpdateLeafInput{
		Comment: req.Comment,
	})
	if err != nil {
		a.respondServiceError(w, r, err, "updating leaf comment")
		return
	}

	a.respond(w, r, http.StatusOK, leafToResponse(leaf))
}

// @Summary Delete leaf subnet
// @Tags plans
// @Param id path int true "Plan ID"
// @Param uuid path string true "Leaf subnet UUID"
// @Success 204 "No content"
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /api/v1/plans/{id}/leaves/{uuid} [delete]
func (a *API) handleDeleteLeafByUUID(w http.ResponseWriter, r *http.Request) {
	id, ok := a.planID(w, r)
	if !ok {
		return
	}

	if err := a.Planning.DeleteLeaf(r.Context(), id, domain.LeafSubnetID(r.PathValue("uuid"))); err != nil {
		a.respondServiceError(w, r, err, "deleting leaf")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (a *API) planID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := parsePathInt64(r, "id")
	if err != nil {
		a.Logger.ErrorContext(r.Context(), "unable to convert string id to int64", "id", r.PathValue("id"), "err", err.Error())
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
		return 0, false
	}
	return id, true
}

func (a *API) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	if err := encode(w, r, status, v); err != nil {
		a.Logger.ErrorContext(r.Context(), "cant respond to client", "err", err.Error())
	}
}

func (a *API) respondServiceError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		a.respond(w, r, http.StatusBadRequest, ErrorResponse{Error: "bad request"})
	case errors.Is(err, domain.ErrPlanNotFound):
		a.respond(w, r, http.StatusNotFound, ErrorResponse{Error: "plan not found"})
	case errors.Is(err, domain.ErrNotFound):
		a.respond(w, r, http.StatusNotFound, ErrorResponse{Error: "not found"})
	case errors.Is(err, domain.ErrConflict):
		a.respond(w, r, http.StatusConflict, ErrorResponse{Error: "conflict"})
	default:
		a.Logger.ErrorContext(r.Context(), logMsg, "err", err.Error())
		a.respond(w, r, http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}
