package news

// LinkSet is the set of link identities already seen by the pipeline.
// It is derived from current state, computed once per admission batch and
// never reused across cycles.
type LinkSet map[string]struct{}

// KnownLinks builds the dedup index from the pending queue and the published
// archive. Legacy archive entries carrying only a link still contribute it.
func KnownLinks(pending []PendingItem, published []PublishedItem) LinkSet {
	links := make(LinkSet, len(pending)+len(published))
	for _, item := range pending {
		if item.Link != "" {
			links[item.Link] = struct{}{}
		}
	}
	for _, item := range published {
		if item.Link != "" {
			links[item.Link] = struct{}{}
		}
	}
	return links
}

// IsNew reports whether a link has not been seen before.
func (s LinkSet) IsNew(link string) bool {
	_, seen := s[link]
	return !seen
}
