package suggest

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-logr/logr"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// MatchMode selects how a Static source compares the query with items.
type MatchMode string

const (
	MatchContains MatchMode = "contains"
	MatchPrefix   MatchMode = "prefix"
	MatchFuzzy    MatchMode = "fuzzy"
)

// ParseMatchMode validates a match mode name. Empty selects MatchContains.
func ParseMatchMode(name string) (MatchMode, error) {
	switch mode := MatchMode(strings.ToLower(strings.TrimSpace(name))); mode {
	case "":
		return MatchContains, nil
	case MatchContains, MatchPrefix, MatchFuzzy:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown match mode %q", name)
	}
}

// Static filters an in-process catalogue.
type Static struct {
	catalogue Catalogue
	mode      MatchMode
	limit     int
}

// NewStatic returns a source over catalogue. A limit of zero means unlimited.
func NewStatic(catalogue Catalogue, mode MatchMode, limit int) *Static {
	if mode == "" {
		mode = MatchContains
	}
	return &Static{catalogue: catalogue, mode: mode, limit: limit}
}

// Lookup implements Source.
func (s *Static) Lookup(ctx context.Context, query string) ([]Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var items []Item
	if s.catalogue != nil {
		items = s.catalogue.Entries()
	}
	var matches []Item
	switch s.mode {
	case MatchFuzzy:
		matches = FuzzyFilter(items, query)
	case MatchPrefix:
		matches = prefixFilter(items, query)
	default:
		matches = containsFilter(items, query)
	}
	if s.limit > 0 && len(matches) > s.limit {
		matches = matches[:s.limit]
	}
	logr.FromContextOrDiscard(ctx).V(1).Info("static lookup", "query", query, "mode", string(s.mode), "matches", len(matches))
	return matches, nil
}

func prefixFilter(items []Item, query string) []Item {
	trimmed := strings.ToLower(strings.TrimSpace(query))
	if trimmed == "" {
		return CloneItems(items)
	}
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if hasPrefixFold(item, trimmed) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// containsFilter keeps items whose label or value contains the query, with
// prefix matches ranked ahead of infix matches.
func containsFilter(items []Item, query string) []Item {
	trimmed := strings.ToLower(strings.TrimSpace(query))
	if trimmed == "" {
		return CloneItems(items)
	}
	prefix := make([]Item, 0, len(items))
	infix := make([]Item, 0, len(items))
	for _, item := range items {
		switch {
		case hasPrefixFold(item, trimmed):
			prefix = append(prefix, item)
		case strings.Contains(strings.ToLower(item.Label), trimmed) || strings.Contains(strings.ToLower(item.Value), trimmed):
			infix = append(infix, item)
		}
	}
	return append(prefix, infix...)
}

func hasPrefixFold(item Item, lower string) bool {
	return strings.HasPrefix(strings.ToLower(item.Label), lower) || strings.HasPrefix(strings.ToLower(item.Value), lower)
}

// FuzzyFilter returns items whose label fuzzily matches the query, keeping
// catalogue order. When nothing matches fuzzily it falls back to a plain
// substring match over labels and values.
func FuzzyFilter(items []Item, query string) []Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneItems(items)
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]Item, 0, len(matches))
		for idx, item := range items {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, item)
			}
		}
		if len(filtered) > 0 {
			return filtered
		}
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), lower) || strings.Contains(strings.ToLower(item.Value), lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
