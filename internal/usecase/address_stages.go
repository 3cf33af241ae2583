package usecase

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/pkg/utils"
)

const (
	defaultLimit     = 1
	defaultLiveLimit = 5
)

var (
	separatorChars = regexp.MustCompile(`[-֊־‐‑﹣/()\[\]]`)
	quoteChars     = regexp.MustCompile("['`‘“”’]")
	nonAlnum       = regexp.MustCompile(`[^A-Za-z0-9]`)
	shortTokens    = regexp.MustCompile(`\b\w{1,2}\b(\W|$)`)
)

// Индексы-заглушки, которые встречаются во входных данных вместо реального значения
var junkPostalCodes = map[string]struct{}{
	"OTHER":  {},
	"000":    {},
	"0000":   {},
	"00000":  {},
	"000000": {},
}

// Покрытие справочника geonames для этих стран - только по префиксу индекса
var postalPrefixLength = map[string]int{
	"CA": 3,
	"IE": 3,
	"MT": 3,
	"AR": 4,
	"BR": 5,
	"US": 5,
}

func sanitizeField(s string) string {
	s = norm.NFC.String(s)
	s = separatorChars.ReplaceAllString(s, " ")
	s = quoteChars.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// Sanitize очищает все текстовые поля запроса
func Sanitize(q domain.AddressQuery) domain.AddressQuery {
	q.Address = sanitizeField(q.Address)
	q.City = sanitizeField(q.City)
	q.State = sanitizeField(q.State)
	q.Country = sanitizeField(q.Country)
	q.PostalCode = sanitizeField(q.PostalCode)
	q.Text = sanitizeField(q.Text)
	return q
}

// ApplyLimit: по умолчанию 1 результат, 5 в live режиме; не больше maxLimit
func ApplyLimit(q domain.AddressQuery, maxLimit int) domain.AddressQuery {
	if q.Live && q.Text != "" && q.Limit <= 0 {
		q.Limit = defaultLiveLimit
	}
	if q.Limit < defaultLimit {
		q.Limit = defaultLimit
	}
	if maxLimit > 0 && q.Limit > maxLimit {
		q.Limit = maxLimit
	}
	return q
}

// MarkPartial помечает последнее слово как незавершённое. Если текст
// заканчивается пробелом, слово считается законченным и текст обрезается.
func MarkPartial(text string) string {
	if text == "" {
		return text
	}
	if r, _ := utf8.DecodeLastRuneInString(text); unicode.IsSpace(r) {
		return strings.TrimSpace(text)
	}
	return text + domain.PartialTokenSuffix
}

func MarkLive(q domain.AddressQuery) domain.AddressQuery {
	if q.Live && q.Text != "" {
		q.Text = MarkPartial(q.Text)
	}
	return q
}

// Coordinates возвращает координаты, если обе заданы и валидны
func Coordinates(q domain.AddressQuery) (lat, lon float64, ok bool) {
	if q.Lat == nil || q.Lon == nil {
		return 0, 0, false
	}
	if !utils.ValidateCoordinates(*q.Lat, *q.Lon) {
		return 0, 0, false
	}
	return *q.Lat, *q.Lon, true
}

// CleanPostalCode оставляет только латиницу и цифры в верхнем регистре;
// заглушки превращаются в пустую строку
func CleanPostalCode(code string) string {
	code = strings.ToUpper(nonAlnum.ReplaceAllString(code, ""))
	if _, junk := junkPostalCodes[code]; junk {
		return ""
	}
	return code
}

// TruncatePostalCode обрезает индекс до длины, известной справочнику для страны
func TruncatePostalCode(code, countryCode string) string {
	if n, ok := postalPrefixLength[countryCode]; ok && len(code) > n {
		return code[:n]
	}
	return code
}

// stateToken - код региона (A-Z0-9) для ввода длиной 2..6 символов, иначе ""
func stateToken(state string) string {
	if n := utf8.RuneCountInString(state); n < 2 || n > 6 {
		return ""
	}
	return strings.ToUpper(nonAlnum.ReplaceAllString(state, ""))
}

// StateHint - подсказка региона для поиска индекса без страны
func StateHint(state string) string {
	if code := stateToken(state); code != "" {
		return code
	}
	return state
}

// SubdivisionCode строит код ISO 3166-2 без дефиса, например USCA
func SubdivisionCode(state, countryCode string) string {
	code := stateToken(state)
	if code == "" || len(countryCode) != 2 {
		return ""
	}
	if !strings.HasPrefix(code, countryCode) {
		code = countryCode + code
	}
	return code
}

// containsWords - needle встречается в haystack как целые слова, без учёта регистра
func containsWords(haystack, needle string) bool {
	if needle == "" || haystack == "" {
		return false
	}
	re, err := regexp.Compile(`(?i)(?:^|[^\p{L}\p{N}_])` + regexp.QuoteMeta(needle) + `(?:$|[^\p{L}\p{N}_])`)
	if err != nil {
		return false
	}
	return re.MatchString(haystack)
}

// RemoveRedundant убирает город и регион, уже вошедшие в расширенный индекс
func RemoveRedundant(q domain.AddressQuery) domain.AddressQuery {
	if containsWords(q.PostalCode, q.City) {
		q.City = ""
	}
	if containsWords(q.PostalCode, q.State) {
		q.State = ""
	}
	return q
}

func stripShort(s string) string {
	partial := strings.HasSuffix(s, domain.PartialTokenSuffix)
	s = strings.TrimSuffix(s, domain.PartialTokenSuffix)
	s = strings.TrimSpace(shortTokens.ReplaceAllString(s, ""))
	if partial && s != "" {
		s += domain.PartialTokenSuffix
	}
	return s
}

// StripShortTokens удаляет слова из 1-2 символов (номера домов, сокращения)
// из text и address, когда известна страна, индекс, регион или город
func StripShortTokens(q domain.AddressQuery) domain.AddressQuery {
	if !q.HasLocationHint() {
		return q
	}
	q.Text = stripShort(q.Text)
	q.Address = stripShort(q.Address)
	return q
}

// Recompose собирает строку запроса: text, address, city, state, postal_code, country
func Recompose(q domain.AddressQuery) string {
	joined := strings.Join([]string{q.Text, q.Address, q.City, q.State, q.PostalCode, q.Country}, " ")
	return strings.Join(strings.Fields(joined), " ")
}
