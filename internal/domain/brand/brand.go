package brand

import "github.com/rabukhader/Ajjawi-Website/internal/domain/product"

// namePlaceholder is shown when a brand has no usable name for the
// requested language.
const namePlaceholder = "---"

// Language selects which brand name field is displayed.
type Language string

const (
	LangEnglish Language = "en"
	LangArabic  Language = "ar"
)

// ParseLanguage canonicalizes a language tag from a query parameter.
// Anything other than "ar" resolves to English, matching the site default.
func ParseLanguage(s string) Language {
	if s == string(LangArabic) {
		return LangArabic
	}
	return LangEnglish
}

// Brand is a manufacturer/label grouping products. Name is the Arabic name
// the backend always provides; NameEnglish is optional. Products is non-nil
// only when the upstream payload nested them.
type Brand struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	NameEnglish string            `json:"nameEnglish,omitempty"`
	Logo        string            `json:"logo"`
	Description string            `json:"description"`
	Products    []product.Product `json:"products,omitempty"`
}

// DisplayName resolves the name to show for the given language. English
// prefers NameEnglish and falls back to the Arabic name; Arabic uses the
// Arabic name only. A nil brand or an empty result yields the placeholder.
func DisplayName(b *Brand, lang Language) string {
	if b == nil {
		return namePlaceholder
	}
	if lang == LangEnglish && b.NameEnglish != "" {
		return b.NameEnglish
	}
	if b.Name != "" {
		return b.Name
	}
	return namePlaceholder
}
