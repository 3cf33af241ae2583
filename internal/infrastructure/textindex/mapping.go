package textindex

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/custom"
	"github.com/blevesearch/bleve/v2/analysis/analyzer/keyword"
	"github.com/blevesearch/bleve/v2/analysis/token/lowercase"
	"github.com/blevesearch/bleve/v2/analysis/tokenizer/unicode"
	"github.com/blevesearch/bleve/v2/mapping"
)

const (
	fieldNames     = "names"
	fieldContext   = "context"
	fieldPlacetype = "placetype"

	// без стоп-слов: "of", "the" и т.п. - значимые части названий мест
	placeNameAnalyzer = "place_name"
)

// placeEntry - документ индекса. Имена полей берутся из json-тегов.
type placeEntry struct {
	Names     []string `json:"names"`
	Context   []string `json:"context"`
	Placetype string   `json:"placetype"`
}

func newIndexMapping() (mapping.IndexMapping, error) {
	im := bleve.NewIndexMapping()
	err := im.AddCustomAnalyzer(placeNameAnalyzer, map[string]interface{}{
		"type":          custom.Name,
		"tokenizer":     unicode.Name,
		"token_filters": []string{lowercase.Name},
	})
	if err != nil {
		return nil, err
	}

	names := bleve.NewTextFieldMapping()
	names.Analyzer = placeNameAnalyzer
	names.Store = false
	names.IncludeInAll = false

	ancestors := bleve.NewTextFieldMapping()
	ancestors.Analyzer = placeNameAnalyzer
	ancestors.Store = false
	ancestors.IncludeInAll = false
	ancestors.IncludeTermVectors = false

	placetype := bleve.NewTextFieldMapping()
	placetype.Analyzer = keyword.Name
	placetype.Store = false
	placetype.IncludeInAll = false
	placetype.IncludeTermVectors = false

	doc := bleve.NewDocumentStaticMapping()
	doc.AddFieldMappingsAt(fieldNames, names)
	doc.AddFieldMappingsAt(fieldContext, ancestors)
	doc.AddFieldMappingsAt(fieldPlacetype, placetype)

	im.DefaultMapping = doc
	im.DefaultAnalyzer = placeNameAnalyzer
	return im, nil
}
