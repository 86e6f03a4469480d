// Package dispatch batches flagged reports by buyer and supplier and builds
// the email draft payloads for each batch.
package dispatch

import "github.com/qed-tools/fabric-atlas/pkg/models/domain"

// Groups buckets flagged reports by (buyer, supplier). Key order is
// first-seen order and reports within a bucket keep their insertion order,
// so draft content is deterministic for a given input sequence.
type Groups struct {
	keys    []domain.GroupKey
	buckets map[domain.GroupKey][]domain.FlaggedReport
}

// Group buckets the given reports. The caller is responsible for filtering
// to flagged reports only; this function groups whatever it is handed. Keys
// are taken from the record verbatim; an empty buyer or supplier is still
// a valid key.
func Group(flagged []domain.FlaggedReport) *Groups {
	g := &Groups{buckets: make(map[domain.GroupKey][]domain.FlaggedReport)}
	for _, fr := range flagged {
		key := domain.GroupKey{Buyer: fr.Record.Buyer, Supplier: fr.Record.Supplier}
		if _, seen := g.buckets[key]; !seen {
			g.keys = append(g.keys, key)
		}
		g.buckets[key] = append(g.buckets[key], fr)
	}
	return g
}

// Keys returns the group keys in first-seen order.
func (g *Groups) Keys() []domain.GroupKey {
	return g.keys
}

// Reports returns the bucket for a key in insertion order.
func (g *Groups) Reports(key domain.GroupKey) []domain.FlaggedReport {
	return g.buckets[key]
}

// Len is the number of distinct groups.
func (g *Groups) Len() int {
	return len(g.keys)
}
