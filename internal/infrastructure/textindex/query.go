package textindex

import (
	"strings"
	"unicode"

	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/place-resolver/internal/domain"
)

type token struct {
	text   string
	prefix bool
}

// tokenize разбивает запрос на слова. Слово с суффиксом PartialTokenSuffix
// ищется как префикс.
func tokenize(text string) []token {
	var tokens []token
	for _, f := range strings.Fields(text) {
		partial := strings.HasSuffix(f, domain.PartialTokenSuffix)
		f = strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if f == "" {
			continue
		}
		if partial {
			tokens = append(tokens, token{text: strings.ToLower(f), prefix: true})
			continue
		}
		tokens = append(tokens, token{text: f})
	}
	return tokens
}

func tokenQuery(t token, field string) query.Query {
	if t.prefix {
		q := query.NewPrefixQuery(t.text)
		q.SetField(field)
		return q
	}
	q := query.NewMatchQuery(t.text)
	q.SetField(field)
	return q
}

// buildQuery: каждое слово должно встретиться в имени места или его предков,
// хотя бы одно - в собственном имени. Совпадение всей фразы с именем повышает score.
func buildQuery(tokens []token, placetype string) query.Query {
	must := make([]query.Query, 0, len(tokens)+2)
	ownName := make([]query.Query, 0, len(tokens))
	complete := make([]string, 0, len(tokens))

	for _, t := range tokens {
		must = append(must, query.NewDisjunctionQuery([]query.Query{
			tokenQuery(t, fieldNames),
			tokenQuery(t, fieldContext),
		}))
		ownName = append(ownName, tokenQuery(t, fieldNames))
		if !t.prefix {
			complete = append(complete, t.text)
		}
	}
	must = append(must, query.NewDisjunctionQuery(ownName))

	if placetype != "" {
		tq := query.NewTermQuery(placetype)
		tq.SetField(fieldPlacetype)
		must = append(must, tq)
	}

	var should []query.Query
	if len(complete) > 0 {
		phrase := query.NewMatchPhraseQuery(strings.Join(complete, " "))
		phrase.SetField(fieldNames)
		phrase.SetBoost(2)
		should = append(should, phrase)
	}

	return query.NewBooleanQuery(must, should, nil)
}
