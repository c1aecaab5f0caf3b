package models

import "strings"

// sanitizeKeySegment escapes the characters the key format reserves.
// Underscores become "__" and colons become "_c" so distinct raw
// identifiers can never collide after assembly.
func sanitizeKeySegment(s string) string {
	s = strings.ReplaceAll(s, "_", "__")
	s = strings.ReplaceAll(s, ":", "_c")
	return s
}

// WindowKey identifies a client's fixed window in the window store.
// The same format is used for the in-memory map and the Redis keyspace.
type WindowKey struct {
	value string
}

// NewWindowKey builds the store key for a client IP.
func NewWindowKey(ip string) WindowKey {
	return WindowKey{value: "window:ip:" + sanitizeKeySegment(ip)}
}

func (k WindowKey) String() string {
	return k.value
}
