package domain

import "strings"

// CountryCode - запись справочника стран; ID совпадает с id документа страны
type CountryCode struct {
	ID     int64  `json:"id" db:"id"`
	Name   string `json:"name" db:"name"`
	Alpha2 string `json:"alpha2" db:"alpha2"`
	Alpha3 string `json:"alpha3" db:"alpha3"`
}

// PostalCode - строка справочника почтовых индексов (geonames)
type PostalCode struct {
	Country           string `json:"country" db:"country"`
	PostalcodeCleaned string `json:"postalcode_cleaned" db:"postalcode_cleaned"`
	Placename         string `json:"placename" db:"placename"`
	Admin1Name        string `json:"admin1name" db:"admin1name"`
	Admin1Code        string `json:"admin1code" db:"admin1code"`
	Admin2Name        string `json:"admin2name" db:"admin2name"`
	Admin2Code        string `json:"admin2code" db:"admin2code"`
	Admin3Name        string `json:"admin3name" db:"admin3name"`
}

// Expansion - уникальные непустые названия от самого конкретного к общему
func (p *PostalCode) Expansion() string {
	seen := make(map[string]struct{}, 4)
	parts := make([]string, 0, 4)
	for _, name := range []string{p.Placename, p.Admin3Name, p.Admin2Name, p.Admin1Name} {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		parts = append(parts, name)
	}
	return strings.Join(parts, " ")
}

// Subdivision - код ISO 3166-2
type Subdivision struct {
	Code            string `json:"code" db:"code"`
	SubdivisionName string `json:"subdivision_name" db:"subdivision_name"`
}
