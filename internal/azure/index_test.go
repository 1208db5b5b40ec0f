package azure

import (
	"net/netip"
	"path/filepath"
	"testing"
)

func loadTestIndex(t *testing.T) *Index {
	t.Helper()

	idx, err := Load(filepath.Join("testdata", "servicetags.json"))
	if err != nil {
		t.Fatalf("load index: %v", err)
	}
	return idx
}

func TestLoadIndexesDocument(t *testing.T) {
	idx := loadTestIndex(t)

	if idx.Cloud() != "Public" {
		t.Fatalf("unexpected cloud: %q", idx.Cloud())
	}
	if idx.ChangeNumber() != 282 {
		t.Fatalf("unexpected change number: %d", idx.ChangeNumber())
	}
	if got := len(idx.All()); got != 3 {
		t.Fatalf("expected 3 tags, got %d", got)
	}
}

func TestFindReturnsEveryCoveringTag(t *testing.T) {
	idx := loadTestIndex(t)

	matches := idx.Find(netip.MustParseAddr("20.38.97.10"))
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	if matches[0].Tag.Name != "Storage" || matches[1].Tag.Name != "Storage.WestEurope" {
		t.Fatalf("unexpected match order: %q, %q", matches[0].Tag.Name, matches[1].Tag.Name)
	}
	if len(matches[0].Matched) != 1 || matches[0].Matched[0] != netip.MustParsePrefix("20.38.96.0/23") {
		t.Fatalf("unexpected matched prefixes: %v", matches[0].Matched)
	}
}

func TestFindSupportsIPv6(t *testing.T) {
	idx := loadTestIndex(t)

	matches := idx.Find(netip.MustParseAddr("2603:1040:f05:2::2c1"))
	if len(matches) != 1 || matches[0].Tag.Name != "ActionGroup" {
		t.Fatalf("unexpected matches: %+v", matches)
	}
}

func TestFindReturnsNothingForUnknownAddress(t *testing.T) {
	idx := loadTestIndex(t)

	if matches := idx.Find(netip.MustParseAddr("192.0.2.1")); len(matches) != 0 {
		t.Fatalf("expected no matches, got %+v", matches)
	}
}

func TestTagIsCaseInsensitive(t *testing.T) {
	idx := loadTestIndex(t)

	tag, ok := idx.Tag("storage.westeurope")
	if !ok {
		t.Fatal("expected tag to be found")
	}
	if tag.Name != "Storage.WestEurope" {
		t.Fatalf("unexpected tag name: %q", tag.Name)
	}
	if tag.Region != "westeurope" {
		t.Fatalf("unexpected region: %q", tag.Region)
	}

	if _, ok := idx.Tag("NoSuchTag"); ok {
		t.Fatal("expected lookup miss")
	}
}

func TestParseRejectsBadPrefix(t *testing.T) {
	_, err := Parse([]byte(`{"cloud":"Public","changeNumber":1,"values":[{"name":"Bad","id":"Bad","properties":{"addressPrefixes":["not-a-prefix"]}}]}`))
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestParseRejectsEmptyDocument(t *testing.T) {
	_, err := Parse([]byte(`{"cloud":"Public","changeNumber":1,"values":[]}`))
	if err == nil {
		t.Fatal("expected parse error")
	}
}
