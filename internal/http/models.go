package http

import (
	"time"

	"github.com/endgor/azure-ip-lookup/internal/domain"
)

// PlanResponse is a simplified view returned to clients and used in Swagger.
type PlanResponse struct {
	ID          int64     `json:"id" example:"1"`
	CIDR        string    `json:"cidr" example:"10.0.0.0/16"`
	Description string    `json:"description" example:"Hub vnet"`
	CreatedAt   time.Time `json:"created_at" example:"2024-05-10T15:04:05Z"`
	UpdatedAt   time.Time `json:"updated_at" example:"2024-05-10T15:04:05Z"`
}

// CreatePlanRequest is the payload accepted when creating a plan.
type CreatePlanRequest struct {
	CIDR        string `json:"cidr" example:"10.0.0.0/16" validate:"required"`
	Description string `json:"description" example:"Hub vnet"`
}

// ErrorResponse is a simple envelope for error messages.
type ErrorResponse struct {
	Error string `json:"error" example:"plan not found"`
}

// LeafResponse is a simplified view returned to clients and used in Swagger.
type LeafResponse struct {
	ID        string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	CIDR      string    `json:"cidr" example:"10.0.4.0/24"`
	Comment   string    `json:"comment" example:"app tier"`
	PlanID    int64     `json:"plan_id" example:"1"`
	CreatedAt time.Time `json:"created_at" example:"2024-05-10T15:04:05Z"`
	UpdatedAt time.Time `json:"updated_at" example:"2024-05-10T15:04:05Z"`
}

// CreateLeafRequest is the payload accepted when adding a leaf subnet.
type CreateLeafRequest struct {
	CIDR    string `json:"cidr" example:"10.0.4.0/24" validate:"required"`
	Comment string `json:"comment" example:"app tier"`
}

// UpdateLeafRequest is the payload accepted when updating a leaf comment.
type UpdateLeafRequest struct {
	Comment string `json:"comment" example:"db tier"`
}

// TagMatchResponse is one service tag covering the looked-up address.
type TagMatchResponse struct {
	ServiceTag      string   `json:"serviceTag" example:"Storage.WestEurope"`
	Region          string   `json:"region" example:"westeurope"`
	SystemService   string   `json:"systemService" example:"AzureStorage"`
	MatchedPrefixes []string `json:"matchedPrefixes" example:"20.38.96.0/23"`
}

// LookupResponse is the result of an ip address lookup.
type LookupResponse struct {
	IPAddress string             `json:"ipAddress" example:"20.38.97.10"`
	Matches   []TagMatchResponse `json:"matches"`
}

// ServiceTagResponse is the full view of one service tag.
type ServiceTagResponse struct {
	Name            string   `json:"name" example:"Storage"`
	ID              string   `json:"id" example:"Storage"`
	Region          string   `json:"region" example:""`
	SystemService   string   `json:"systemService" example:"AzureStorage"`
	ChangeNumber    int64    `json:"changeNumber" example:"120"`
	AddressPrefixes []string `json:"addressPrefixes"`
}

// ServiceTagSummaryResponse omits the prefix list when listing tags.
type ServiceTagSummaryResponse struct {
	Name          string `json:"name" example:"Storage"`
	Region        string `json:"region" example:""`
	SystemService string `json:"systemService" example:"AzureStorage"`
	PrefixCount   int    `json:"prefixCount" example:"3"`
}

func planToResponse(p domain.Plan) PlanResponse {
	return PlanResponse{
		ID:          p.ID,
		CIDR:        p.CIDR.String(),
		Description: p.Description,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func plansToResponse(plans []domain.Plan) []PlanResponse {
	out := make([]PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, planToResponse(p))
	}
	return out
}

func leafToResponse(l domain.LeafSubnet) LeafResponse {
	return LeafResponse{
		ID:        string(l.ID),
		CIDR:      l.CIDR.String(),
		Comment:   l.Comment,
		PlanID:    l.PlanID,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

func leavesToResponse(leaves []domain.LeafSubnet) []LeafResponse {
	out := make([]LeafResponse, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, leafToResponse(l))
	}
	return out
}

func matchesToResponse(ip string, matches []domain.TagMatch) LookupResponse {
	out := LookupResponse{
		IPAddress: ip,
		Matches:   make([]TagMatchResponse, 0, len(matches)),
	}
	for _, m := range matches {
		prefixes := make([]string, 0, len(m.Matched))
		for _, p := range m.Matched {
			prefixes = append(prefixes, p.String())
		}
		out.Matches = append(out.Matches, TagMatchResponse{
			ServiceTag:      m.Tag.Name,
			Region:          m.Tag.Region,
			SystemService:   m.Tag.SystemService,
			MatchedPrefixes: prefixes,
		})
	}
	return out
}

func tagToResponse(tag domain.ServiceTag) ServiceTagResponse {
	prefixes := make([]string, 0, len(tag.Prefixes))
	for _, p := range tag.Prefixes {
		prefixes = append(prefixes, p.String())
	}
	return ServiceTagResponse{
		Name:            tag.Name,
		ID:              tag.ID,
		Region:          tag.Region,
		SystemService:   tag.SystemService,
		ChangeNumber:    tag.ChangeNumber,
		AddressPrefixes: prefixes,
	}
}

func tagsToSummaryResponse(tags []domain.ServiceTag) []ServiceTagSummaryResponse {
	out := make([]ServiceTagSummaryResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, ServiceTagSummaryResponse{
			Name:          tag.Name,
			Region:        tag.Region,
			SystemService: tag.SystemService,
			PrefixCount:   len(tag.Prefixes),
		})
	}
	return out
}
