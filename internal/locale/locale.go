package locale

import "strings"

const (
	LanguageEnglish = "english"
	LanguageTamil   = "tamil"
)

type Preference struct {
	Language string
	Label    string
	HTMLLang string
}

// NormalizeLanguage 将各种写法统一为 english / tamil，无法识别时返回空串。
func NormalizeLanguage(raw string) string {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return ""
	}
	if trimmed == LanguageTamil || strings.HasPrefix(trimmed, "ta") {
		return LanguageTamil
	}
	if trimmed == LanguageEnglish || strings.HasPrefix(trimmed, "en") {
		return LanguageEnglish
	}
	return ""
}

// Resolve 按 raw -> fallback -> english 的顺序取第一个可识别的语言。
func Resolve(raw, fallback string) string {
	if normalized := NormalizeLanguage(raw); normalized != "" {
		return normalized
	}
	if normalized := NormalizeLanguage(fallback); normalized != "" {
		return normalized
	}
	return LanguageEnglish
}

func LanguageFromAcceptLanguage(header string) string {
	trimmed := strings.ToLower(strings.TrimSpace(header))
	if trimmed == "" {
		return ""
	}
	for _, part := range strings.Split(trimmed, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if strings.HasPrefix(tag, "ta") {
			return LanguageTamil
		}
		if strings.HasPrefix(tag, "en") {
			return LanguageEnglish
		}
	}
	return ""
}

func PreferenceForLanguage(language string) Preference {
	if NormalizeLanguage(language) == LanguageTamil {
		return Preference{Language: LanguageTamil, Label: "Tamil", HTMLLang: "ta-IN"}
	}
	return Preference{Language: LanguageEnglish, Label: "English", HTMLLang: "en-IN"}
}

// Supported 返回登录页可选的语言列表。
func Supported() []Preference {
	return []Preference{
		PreferenceForLanguage(LanguageEnglish),
		PreferenceForLanguage(LanguageTamil),
	}
}
