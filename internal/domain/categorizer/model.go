// Package categorizer remembers which category each payee usually lands in
// and suggests it for new transactions.
package categorizer

import "strings"

// ManualVoteCount pins a manually set mapping against near-term decay.
const ManualVoteCount = 100

// Mapping is the learned category for one payee key.
type Mapping struct {
	Payee        string `json:"-"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Count        int    `json:"count"`
}

// Observation is one payee and category pairing seen in history.
type Observation struct {
	PayeeName    string
	CategoryID   string
	CategoryName string
}

// Suggestion is the category proposed for a payee.
type Suggestion struct {
	CategoryID   string
	CategoryName string
}

// Key normalizes a payee name into a mapping key.
func Key(payee string) string {
	return strings.ToLower(strings.TrimSpace(payee))
}
