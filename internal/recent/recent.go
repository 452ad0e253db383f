// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package recent finds the most recently changed page from the wiki's
// recent-changes listing.
package recent

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/pukisync/internal/pukiwiki"
	"github.com/pdiddy/pukisync/pkg/types"
)

// Lister fetches the recent-changes listing HTML.
type Lister interface {
	FetchRecentChanges(ctx context.Context) ([]byte, error)
}

// Latest returns the name of the page linked by the anchor with anchorID
// (types.DefaultRecentAnchorID when empty). It never returns an empty name
// without an error.
func Latest(ctx context.Context, l Lister, anchorID string, w io.Writer) (string, error) {
	if anchorID == "" {
		anchorID = types.DefaultRecentAnchorID
	}

	body, err := l.FetchRecentChanges(ctx)
	if err != nil {
		return "", err
	}
	page, err := pukiwiki.ParseLatestPage(anchorID, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	fmt.Fprintf(w, "latest: %s\n", page)
	return page, nil
}
