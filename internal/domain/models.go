package domain

import (
	"net/netip"
	"time"
)

type LeafSubnetID string

type Plan struct {
	ID          int64
	CIDR        netip.Prefix
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type LeafSubnet struct {
	ID        LeafSubnetID
	CIDR      netip.Prefix
	Comment   string
	PlanID    int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceTag is one entry of the published Azure service-tags file.
type ServiceTag struct {
	Name          string
	ID            string
	Region        string
	SystemService string
	ChangeNumber  int64
	Prefixes      []netip.Prefix
}

// TagMatch pairs a service tag with the prefixes that covered the
// looked-up address.
type TagMatch struct {
	Tag     ServiceTag
	Matched []netip.Prefix
}
