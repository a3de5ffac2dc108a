package deck

import (
	"path"
	"strings"
)

// imageExtensions maps the recognized card image extensions to their MIME
// types. A bucket key is a card key iff its lowercase extension appears here.
var imageExtensions = map[string]string{
	".svg": "image/svg+xml",
	".png": "image/png",
}

func isCardKey(key string) bool {
	_, ok := imageExtensions[strings.ToLower(path.Ext(key))]
	return ok
}

// splitCardKey splits a card key into deck title and file name at the first
// path separator. Keys with no separator are malformed and reported !ok.
func splitCardKey(key string) (title, file string, ok bool) {
	idx := strings.Index(key, "/")
	if idx < 0 {
		return "", "", false
	}
	return key[:idx], key[idx+1:], true
}

// cardName strips the image extension from a file name.
func cardName(file string) string {
	return strings.TrimSuffix(file, path.Ext(file))
}
