package model

import "strings"

// PrefixLength is the number of leading characters used to group codes.
const PrefixLength = 4

// Code is a single tracked redemption code.
type Code struct {
	ID        string `json:"id"`
	Value     string `json:"value"`
	Prefix    string `json:"prefix"`
	Category  string `json:"category"`
	CreatedAt int64  `json:"createdAt"`
	IsUsed    bool   `json:"isUsed"`
}

// CodeGroup is a run of codes sharing the same prefix.
type CodeGroup struct {
	Prefix string
	Codes  []Code
}

// PrefixOf returns the grouping prefix for a code value: the first
// PrefixLength characters, upper-cased. Shorter values are used whole.
func PrefixOf(value string) string {
	if len(value) > PrefixLength {
		value = value[:PrefixLength]
	}
	return strings.ToUpper(value)
}
