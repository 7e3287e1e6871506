// Package globalid encodes (kind, local id) pairs into opaque, reversible
// identifiers. All card ids are minted through this codec so that assembling
// the same feed twice yields identical ids.
package globalid

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// Create returns an opaque id for the given kind and local id. Distinct
// (kind, localID) pairs always produce distinct ids.
func Create(localID string, kind string) string {
	return base64.StdEncoding.EncodeToString([]byte(kind + ":" + localID))
}

// Parse reverses Create. The local id may itself contain colons; the kind
// never does.
func Parse(id string) (localID string, kind string, err error) {
	raw, err := base64.StdEncoding.DecodeString(id)
	if err != nil {
		return "", "", fmt.Errorf("invalid global id: %w", err)
	}

	kind, localID, found := strings.Cut(string(raw), ":")
	if !found {
		return "", "", fmt.Errorf("invalid global id: missing kind separator")
	}
	return localID, kind, nil
}
