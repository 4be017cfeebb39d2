package youtube

import (
	"regexp"
	"strings"

	"studynotes/common"
	"studynotes/types"
)

// videoIDRe matches an 11-character identifier that follows either a "v="
// query key or a "/" path separator and is not followed by another
// identifier character. The leftmost match wins.
var videoIDRe = regexp.MustCompile(`(?:v=|/)([0-9A-Za-z_-]{11})(?:[^0-9A-Za-z_-]|$)`)

// ResolveReference extracts the canonical video identifier from a locator
// such as https://www.youtube.com/watch?v=<id> or https://youtu.be/<id>.
// The identifier is not checked against YouTube.
func ResolveReference(locator string) (types.VideoReference, error) {
	trimmed := strings.TrimSpace(locator)
	if trimmed == "" {
		return types.VideoReference{}, common.New(common.ErrValidation, "resolve reference", "locator is empty")
	}

	m := videoIDRe.FindStringSubmatch(trimmed)
	if len(m) < 2 {
		return types.VideoReference{}, common.New(common.ErrInvalidReference, "resolve reference", "Invalid YouTube URL.")
	}
	return types.VideoReference{Locator: locator, ID: m[1]}, nil
}
