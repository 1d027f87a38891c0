// Package domain defines the matching orchestrator's contract
package domain

// Input parameterizes one generation pass for an anchor entity
type Input struct {
	AnchorID int64
	TopK     int
	MinScore float64 // candidates strictly below are never persisted
}

// Result reports how many opportunities were created or refreshed
type Result struct {
	Created int `json:"created"`
}

// AnchorKind selects which directory listing a batch pass walks
type AnchorKind string

// Anchor kinds a batch pass can regenerate
const (
	AnchorFundraiser AnchorKind = "fundraiser"
	AnchorProvider   AnchorKind = "provider"
	AnchorPartner    AnchorKind = "partner"
)

// BatchResult aggregates one pass over every anchor of a kind
type BatchResult struct {
	Anchors int `json:"anchors"`
	Created int `json:"created"`
	Failed  int `json:"failed"`
}
