// Package azure loads the published Azure service-tags file and builds
// an in-memory index for address lookups.
package azure

import (
	"encoding/json"
	"fmt"
	"net/netip"
	"os"
	"sort"
	"strings"

	"go4.org/netipx"

	"github.com/endgor/azure-ip-lookup/internal/domain"
)

// document mirrors the service-tags JSON that Microsoft publishes
// weekly (ServiceTags_Public_*.json).
type document struct {
	ChangeNumber int64  `json:"changeNumber"`
	Cloud        string `json:"cloud"`
	Values       []struct {
		Name       string `json:"name"`
		ID         string `json:"id"`
		Properties struct {
			ChangeNumber    int64    `json:"changeNumber"`
			Region          string   `json:"region"`
			SystemService   string   `json:"systemService"`
			AddressPrefixes []string `json:"addressPrefixes"`
		} `json:"properties"`
	} `json:"values"`
}

type tagEntry struct {
	tag domain.ServiceTag
	set *netipx.IPSet
}

// Index is an immutable lookup structure over one service-tags file.
// All methods are safe for concurrent use.
type Index struct {
	cloud        string
	changeNumber int64
	entries      map[string]*tagEntry
	names        []string
}

// Load reads and indexes a service-tags file.
func Load(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read service tags: %w", err)
	}
	return Parse(data)
}

// Parse indexes a raw service-tags document.
func Parse(data []byte) (*Index, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode service tags: %w", err)
	}
	if len(doc.Values) == 0 {
		return nil, fmt.Errorf("service tags document has no values")
	}

	idx := &Index{
		cloud:        doc.Cloud,
		changeNumber: doc.ChangeNumber,
		entries:      make(map[string]*tagEntry, len(doc.Values)),
		names:        make([]string, 0, len(doc.Values)),
	}

	for _, value := range doc.Values {
		prefixes := make([]netip.Prefix, 0, len(value.Properties.AddressPrefixes))
		var builder netipx.IPSetBuilder
		for _, raw := range value.Properties.AddressPrefixes {
			prefix, err := netip.ParsePrefix(raw)
			if err != nil {
				return nil, fmt.Errorf("service tag %s: parse prefix %q: %w", value.Name, raw, err)
			}
			prefixes = append(prefixes, prefix)
			builder.AddPrefix(prefix)
		}
		set, err := builder.IPSet()
		if err != nil {
			return nil, fmt.Errorf("service tag %s: build ip set: %w", value.Name, err)
		}

		key := strings.ToLower(value.Name)
		idx.entries[key] = &tagEntry{
			tag: domain.ServiceTag{
				Name:          value.Name,
				ID:            value.ID,
				Region:        value.Properties.Region,
				SystemService: value.Properties.SystemService,
				ChangeNumber:  value.Properties.ChangeNumber,
				Prefixes:      prefixes,
			},
			set: set,
		}
		idx.names = append(idx.names, value.Name)
	}

	sort.Strings(idx.names)
	return idx, nil
}

// Find returns every tag whose address space contains addr, with the
// specific prefixes that matched. Tags come back in name order.
func (i *Index) Find(addr netip.Addr) []domain.TagMatch {
	addr = addr.Unmap()

	var matches []domain.TagMatch
	for _, name := range i.names {
		entry := i.entries[strings.ToLower(name)]
		if !entry.set.Contains(addr) {
			continue
		}

		var matched []netip.Prefix
		for _, prefix := range entry.tag.Prefixes {
			if prefix.Contains(addr) {
				matched = append(matched, prefix)
			}
		}
		matches = append(matches, domain.TagMatch{Tag: entry.tag, Matched: matched})
	}
	return matches
}

// Tag looks a service tag up by name, case-insensitively.
func (i *Index) Tag(name string) (domain.ServiceTag, bool) {
	entry, ok := i.entries[strings.ToLower(name)]
	if !ok {
		return domain.ServiceTag{}, false
	}
	return entry.tag, true
}

// All returns every tag in name order.
func (i *Index) All() []domain.ServiceTag {
	out := make([]domain.ServiceTag, 0, len(i.names))
	for _, name := range i.names {
		out = append(out, i.entries[strings.ToLower(name)].tag)
	}
	return out
}

func (i *Index) Cloud() string { return i.cloud }

func (i *Index) ChangeNumber() int64 { return i.changeNumber }
