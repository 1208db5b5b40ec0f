// Package export turns leaf subnets of a plan into export rows for
// download formatting.
package export

import (
	"fmt"

	"github.com/endgor/azure-ip-lookup/internal/ipmath"
)

// ReservedMarker is emitted in place of a usable range when the subnet
// is too small to hold usable hosts under the active convention.
const ReservedMarker = "Reserved"

// Leaf is a single leaf subnet of a plan as supplied by the planner.
type Leaf struct {
	ID      string
	Network uint32
	Prefix  int
}

// Row is one export line per leaf subnet.
type Row struct {
	CIDR        string `json:"cidr"`
	Netmask     string `json:"netmask"`
	Range       string `json:"range"`
	UsableRange string `json:"usableRange"`
	Hosts       uint32 `json:"hosts"`
	Comment     string `json:"comment"`
}

// Document is the full export: one header row and one row per leaf.
type Document struct {
	Headers []string `json:"headers"`
	Rows    []Row    `json:"rows"`
}

// Headers returns the column headers, with the usable-range and host
// columns labelled for the reservation convention in use.
func Headers(azureReserved bool) []string {
	convention := "Standard"
	if azureReserved {
		convention = "Azure"
	}
	return []string{
		"Subnet",
		"Netmask",
		"Address range",
		fmt.Sprintf("Usable range (%s)", convention),
		fmt.Sprintf("Hosts (%s)", convention),
		"Comment",
	}
}

// Build produces one row per leaf, in input order. comments maps leaf
// identifiers to free text; leaves without an entry get an empty
// comment.
func Build(leaves []Leaf, azureReserved bool, comments map[string]string) ([]Row, error) {
	rows := make([]Row, 0, len(leaves))
	for _, leaf := range leaves {
		row, err := buildRow(leaf, azureReserved, comments[leaf.ID])
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// BuildDocument combines Headers and Build.
func BuildDocument(leaves []Leaf, azureReserved bool, comments map[string]string) (Document, error) {
	rows, err := Build(leaves, azureReserved, comments)
	if err != nil {
		return Document{}, err
	}
	return Document{Headers: Headers(azureReserved), Rows: rows}, nil
}

func buildRow(leaf Leaf, azureReserved bool, comment string) (Row, error) {
	mask, err := ipmath.Netmask(leaf.Prefix)
	if err != nil {
		return Row{}, fmt.Errorf("leaf %s: %w", leaf.ID, err)
	}
	last, err := ipmath.LastAddress(leaf.Network, leaf.Prefix)
	if err != nil {
		return Row{}, fmt.Errorf("leaf %s: %w", leaf.ID, err)
	}

	var usable ipmath.Range
	var ok bool
	var hosts uint32
	if azureReserved {
		hosts, err = ipmath.HostCapacityAzure(leaf.Prefix)
		if err == nil {
			usable, ok, err = ipmath.UsableRangeAzure(leaf.Network, leaf.Prefix)
		}
	} else {
		hosts, err = ipmath.HostCapacity(leaf.Prefix)
		if err == nil {
			usable, ok, err = ipmath.UsableRange(leaf.Network, leaf.Prefix)
		}
	}
	if err != nil {
		return Row{}, fmt.Errorf("leaf %s: %w", leaf.ID, err)
	}

	usableText := ReservedMarker
	if ok {
		usableText = formatRange(usable.First, usable.Last)
	}

	return Row{
		CIDR:        fmt.Sprintf("%s/%d", ipmath.FormatAddress(leaf.Network), leaf.Prefix),
		Netmask:     ipmath.FormatAddress(mask),
		Range:       formatRange(leaf.Network, last),
		UsableRange: usableText,
		Hosts:       hosts,
		Comment:     comment,
	}, nil
}

func formatRange(first, last uint32) string {
	if first == last {
		return ipmath.FormatAddress(first)
	}
	return fmt.Sprintf("%s - %s", ipmath.FormatAddress(first), ipmath.FormatAddress(last))
}
