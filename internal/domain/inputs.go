package domain

import "net/netip"

// Inputs carry raw client strings; records carry parsed values handed
// to repositories.

type CreatePlanInput struct {
	CIDR        string
	Description string
}

type CreateLeafInput struct {
	CIDR    string
	Comment string
}

type UpdateLeafInput struct {
	Comment string
}

type CreatePlanRecord struct {
	CIDR        netip.Prefix
	Description string
}

type CreateLeafRecord struct {
	CIDR    netip.Prefix
	Comment string
}
