// Package urls builds the shareable URLs. The hex encoded encryption key is
// placed in the URL fragment, which conforming HTTP clients never transmit to
// the server.
package urls

import (
	"fmt"
	"net/url"
	"strings"
)

func withKeyFragment(base *url.URL, section string, id string, keyString string) (*url.URL, error) {
	joined, err := url.Parse(fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(base.String(), "/"), section, id))
	if err != nil {
		return nil, err
	}

	joined.Fragment = keyString

	return joined, nil
}

// ShareURL is the URL for an ephemeral password sharing link
func ShareURL(base *url.URL, id string, keyString string) (*url.URL, error) {
	return withKeyFragment(base, "shared", id, keyString)
}

// NoteURL is the URL for a secure note
func NoteURL(base *url.URL, id string, keyString string) (*url.URL, error) {
	return withKeyFragment(base, "secure-notes", id, keyString)
}
