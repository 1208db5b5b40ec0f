package domain

import (
	"context"
	"fmt"
	"net/netip"
)

type lookupService struct {
	index TagIndex
}

func NewLookupService(index TagIndex) LookupService {
	return &lookupService{index: index}
}

func (s *lookupService) Lookup(_ context.Context, addr netip.Addr) ([]TagMatch, error) {
	if !addr.IsValid() {
		return nil, fmt.Errorf("%w: invalid ip address", ErrInvalidInput)
	}
	return s.index.Find(addr), nil
}

func (s *lookupService) GetServiceTag(_ context.Context, name string) (ServiceTag, error) {
	if name == "" {
		return ServiceTag{}, fmt.Errorf("%w: empty service tag name", ErrInvalidInput)
	}
	tag, ok := s.index.Tag(name)
	if !ok {
		return ServiceTag{}, ErrNotFound
	}
	return tag, nil
}

func (s *lookupService) ListServiceTags(_ context.Context) ([]ServiceTag, error) {
	return s.index.All(), nil
}
