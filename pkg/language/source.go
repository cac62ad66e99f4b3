package language

import (
	"strings"

	"github.com/abadojack/whatlanggo"
)

// DetectSource reports the natural language the text itself is written in,
// as a lower-case English language name (e.g. "english", "japanese").
// This is advisory metadata for logging, metrics, and responses; it plays no
// part in target language detection. Returns an empty string when the text
// is blank or the script cannot be identified.
func DetectSource(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}

	info := whatlanggo.Detect(text)
	name := info.Lang.String()
	if name == "" {
		return ""
	}
	return strings.ToLower(name)
}
