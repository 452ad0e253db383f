// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package refs finds attachment references in PukiWiki page source.
//
// A reference has the form #ref(./path,args); and names a file relative to
// the page source. A line containing ";-" is commented out and its
// reference is never queued for upload.
package refs

import (
	"regexp"
	"strings"
)

// refPattern matches the first #ref(./path,args); on a line and captures
// the relative path up to the first comma.
var refPattern = regexp.MustCompile(`#ref\((\./[^,]+),[^)]+\);`)

// disabledMarker anywhere on a line disables its reference.
const disabledMarker = ";-"

// Parse returns the attachment paths referenced in content, in line order.
// Only the first reference on each line is considered. Duplicates are
// preserved. Lines have no length limit.
func Parse(content string) []string {
	var paths []string
	for _, line := range strings.Split(content, "\n") {
		m := refPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		if strings.Contains(line, disabledMarker) {
			continue
		}
		paths = append(paths, m[1])
	}
	return paths
}
