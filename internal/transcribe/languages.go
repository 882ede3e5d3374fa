package transcribe

import (
	"fmt"
	"strings"
)

// LanguageAuto asks the engine to detect the spoken language itself.
const LanguageAuto = "auto"

// supportedLanguages is the fixed set of language codes whisper accepts.
var supportedLanguages = map[string]bool{
	"af": true, "am": true, "ar": true, "as": true, "az": true,
	"ba": true, "be": true, "bg": true, "bn": true, "bo": true,
	"br": true, "bs": true, "ca": true, "cs": true, "cy": true,
	"da": true, "de": true, "el": true, "en": true, "es": true,
	"et": true, "eu": true, "fa": true, "fi": true, "fo": true,
	"fr": true, "gl": true, "gu": true, "ha": true, "haw": true,
	"he": true, "hi": true, "hr": true, "ht": true, "hu": true,
	"hy": true, "id": true, "is": true, "it": true, "ja": true,
	"jw": true, "ka": true, "kk": true, "km": true, "kn": true,
	"ko": true, "la": true, "lb": true, "ln": true, "lo": true,
	"lt": true, "lv": true, "mg": true, "mi": true, "mk": true,
	"ml": true, "mn": true, "mr": true, "ms": true, "mt": true,
	"my": true, "ne": true, "nl": true, "nn": true, "no": true,
	"oc": true, "pa": true, "pl": true, "ps": true, "pt": true,
	"ro": true, "ru": true, "sa": true, "sd": true, "si": true,
	"sk": true, "sl": true, "sn": true, "so": true, "sq": true,
	"sr": true, "su": true, "sv": true, "sw": true, "ta": true,
	"te": true, "tg": true, "th": true, "tk": true, "tl": true,
	"tr": true, "tt": true, "uk": true, "ur": true, "uz": true,
	"vi": true, "yi": true, "yo": true, "zh": true,
}

// ValidateLanguage checks a requested language against the fixed set.
// "auto" is always accepted.
func ValidateLanguage(lang string) error {
	if lang == LanguageAuto || supportedLanguages[strings.ToLower(lang)] {
		return nil
	}
	return fmt.Errorf("unsupported language code %q", lang)
}
