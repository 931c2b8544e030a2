// Package refchain builds the bounded reference chain carried on a
// reply (the wefw field): the ancestry of message-id strings joined
// with '|', trimmed to a size budget so long-lived threads don't grow
// it without bound.
package refchain

import "strings"

// MaxLength is the serialized chain budget in bytes.
const MaxLength = 900

// Separator joins message-id tokens in a serialized chain.
const Separator = "|"

// Build appends msgid to an existing reference chain and enforces the
// budget. If existing contains no id-like token (no "@"), the chain
// starts fresh with just msgid. Trimming removes the second element
// repeatedly, preserving the thread root and the most recent id.
//
// Build is pure: the same inputs always give the same output. It is
// idempotent with respect to trimming but not with respect to repeated
// appends of the same id.
func Build(existing, msgid string) string {
	var refs string
	if strings.Contains(existing, "@") {
		refs = existing + Separator + msgid
	} else {
		refs = msgid
	}

	for len(refs) > MaxLength {
		parts := strings.Split(refs, Separator)
		if len(parts) < 3 {
			// Nothing left to sacrifice between root and tip.
			break
		}
		parts = append(parts[:1], parts[2:]...)
		refs = strings.Join(parts, Separator)
	}

	return refs
}
