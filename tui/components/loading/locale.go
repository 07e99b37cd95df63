package loading

import (
	"os"
	"strings"
)

var captions = map[string]string{
	"en": "Loading…",
	"de": "Wird geladen…",
	"es": "Cargando…",
	"fa": "در حال بارگذاری…",
	"fr": "Chargement…",
}

// Caption returns the caption for the locale named by LC_ALL, LC_MESSAGES or LANG.
func Caption() string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if value := os.Getenv(key); value != "" {
			return CaptionFor(value)
		}
	}
	return captions["en"]
}

// CaptionFor maps a POSIX locale such as "fa_IR.UTF-8" to a caption.
// Unknown languages get the English caption.
func CaptionFor(locale string) string {
	lang := strings.ToLower(locale)
	if i := strings.IndexAny(lang, "_.@-"); i >= 0 {
		lang = lang[:i]
	}
	if caption, ok := captions[lang]; ok {
		return caption
	}
	return captions["en"]
}
