package domain

// SupportedLanguages maps ISO 639-1 codes to their English display names.
var SupportedLanguages = map[string]string{
	"en": "English",
	"de": "German",
	"fr": "French",
	"es": "Spanish",
	"it": "Italian",
	"ar": "Arabic",
	"zh": "Chinese",
	"ja": "Japanese",
	"ru": "Russian",
	"nl": "Dutch",
	"pt": "Portuguese",
	"fa": "Persian",
	"ur": "Urdu",
	"bn": "Bengali",
	"pl": "Polish",
	"sv": "Swedish",
	"no": "Norwegian",
	"da": "Danish",
	"fi": "Finnish",
	"hu": "Hungarian",
	"tr": "Turkish",
	"hi": "Hindi",
}

// FallbackLanguage is the edition used when a place has no page in the
// requested language.
const FallbackLanguage = "en"
