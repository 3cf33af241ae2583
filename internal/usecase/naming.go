package usecase

import (
	"sort"
	"strings"

	"golang.org/x/text/language"

	"github.com/place-resolver/internal/domain"
)

// NormalizeLang возвращает трёхбуквенный код языка в нижнем регистре или "",
// если код не распознан
func NormalizeLang(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if len(lang) != 3 {
		return ""
	}
	if _, err := language.ParseBase(lang); err != nil {
		return ""
	}
	return lang
}

// ResolveName выбирает отображаемое имя документа для языка lang.
// Если имени на этом языке нет, остаётся name из документа; языки
// перебираются по алфавиту только когда name пустой.
func ResolveName(doc *domain.Document, lang string) (string, bool) {
	if lang = NormalizeLang(lang); lang != "" {
		if c := doc.Names[lang]; len(c) > 0 && c[0] != "" {
			return c[0], false
		}
	}
	if doc.Name != "" {
		return doc.Name, true
	}

	langs := make([]string, 0, len(doc.Names))
	for l := range doc.Names {
		langs = append(langs, l)
	}
	sort.Strings(langs)

	for _, l := range langs {
		if name := firstNonEmpty(doc.Names[l]); name != "" {
			return name, true
		}
	}
	return "", true
}

func firstNonEmpty(candidates []string) string {
	for _, c := range candidates {
		if c != "" {
			return c
		}
	}
	return ""
}
