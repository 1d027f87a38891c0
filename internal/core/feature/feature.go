// Package feature turns raw directory records into comparable feature bundles.
// Extraction is pure and deterministic; the same record always yields the same bundle
package feature

import (
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Kind tags which side of the marketplace an entity sits on
type Kind string

const (
	// KindFundraiser is an organization seeking capital or a partnership
	KindFundraiser Kind = "FUNDRAISER"
	// KindProvider is an entity allocating investment capital
	KindProvider Kind = "CAPITAL_PROVIDER"
	// KindPartner is a non-capital collaborator
	KindPartner Kind = "PARTNER"
)

// VectorDim is the fixed length of the pseudo-embedding vector
const VectorDim = 32

// Engagement carries the popularity counters used for decay scoring
type Engagement struct {
	Views     int
	Likes     int
	Bookmarks int
	CreatedAt time.Time
}

// Record is the raw material the extractor reads.
// Zero values degrade to empty features, never errors
type Record struct {
	Kind        Kind
	ID          int64
	Category    string // category, investment focus, or partnership type
	Description string
	Address     string

	// fundraiser-only signals
	Stage     string
	Needs     string
	Views     int
	Likes     int
	Bookmarks int
	CreatedAt time.Time
}

// Bundle is the comparable representation of one entity
type Bundle struct {
	Kind     Kind
	ID       int64
	Tags     map[string]struct{}
	Vector   [VectorDim]float64
	Location string // normalized location token, "" when unknown

	// fundraiser-only
	Stage      string
	Needs      string
	Engagement *Engagement

	// provider/partner focus text used by the stage heuristic
	Focus string
}

// Extract builds a Bundle from a Record. No I/O, no clock reads
func Extract(r Record) Bundle {
	text := fold(r.Category + " " + r.Description)

	b := Bundle{
		Kind:     r.Kind,
		ID:       r.ID,
		Tags:     Tokenize(text),
		Vector:   Vectorize(text),
		Location: LocationToken(r.Address),
	}

	switch r.Kind {
	case KindFundraiser:
		b.Stage = fold(r.Stage)
		b.Needs = fold(r.Needs)
		b.Engagement = &Engagement{
			Views:     r.Views,
			Likes:     r.Likes,
			Bookmarks: r.Bookmarks,
			CreatedAt: r.CreatedAt,
		}
	default:
		b.Focus = fold(r.Category + " " + r.Description)
	}
	return b
}

// Tokenize splits folded text on runs of non-alphanumerics (keeping '+')
// and returns the resulting tag set. Empty tokens are discarded
func Tokenize(text string) map[string]struct{} {
	out := make(map[string]struct{})
	var sb strings.Builder
	flush := func() {
		if sb.Len() > 0 {
			out[sb.String()] = struct{}{}
			sb.Reset()
		}
	}
	for _, r := range text {
		if isTagRune(r) {
			sb.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return out
}

// LocationToken returns the trimmed, folded substring after the last comma
// of an address ("Paris, France" -> "france"). "" when the address is blank
func LocationToken(address string) string {
	s := address
	if i := strings.LastIndexByte(s, ','); i >= 0 {
		s = s[i+1:]
	}
	return strings.TrimSpace(fold(s))
}

// fold lower-cases with NFKC normalization so visually equivalent
// tokens ("ＳａａＳ", "SaaS") land on the same tag
func fold(s string) string {
	return strings.ToLower(norm.NFKC.String(s))
}

func isTagRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z':
		return true
	case r >= '0' && r <= '9':
		return true
	case r == '+':
		return true
	}
	return false
}
