package domain

// LineageEntry - предок в lineage результата
type LineageEntry struct {
	ID                int64  `json:"id"`
	Name              string `json:"name"`
	Abbr              string `json:"abbr,omitempty"`
	LanguageDefaulted bool   `json:"languageDefaulted,omitempty"`
}

// Lineage - предки, сгруппированные по собственному placetype предка
type Lineage map[Placetype]LineageEntry

// Result - гидрированный документ: без names/rank, с разрешённым lineage
type Result struct {
	ID                int64     `json:"id"`
	Placetype         Placetype `json:"placetype"`
	Name              string    `json:"name"`
	Abbr              string    `json:"abbr,omitempty"`
	Population        float64   `json:"population,omitempty"`
	Popularity        float64   `json:"popularity,omitempty"`
	Geom              Geom      `json:"geom"`
	Lineage           []Lineage `json:"lineage"`
	LanguageDefaulted bool      `json:"languageDefaulted,omitempty"`
}

// MinimalResult - сокращённая форма результата
type MinimalResult struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Placetype   Placetype `json:"placetype"`
	Lineage     []string  `json:"lineage"`
	CountryCode string    `json:"countryCode,omitempty"`
	Lat         float64   `json:"lat"`
	Lon         float64   `json:"lon"`
}

// Resolution - ответ резолвера: полная либо минимальная форма
type Resolution struct {
	Results []Result
	Minimal []MinimalResult
}

// IsMinimal сообщает, какая из форм заполнена
func (r *Resolution) IsMinimal() bool {
	return r.Minimal != nil
}

// Len - количество результатов в заполненной форме
func (r *Resolution) Len() int {
	if r.IsMinimal() {
		return len(r.Minimal)
	}
	return len(r.Results)
}

// Payload возвращает заполненную форму для сериализации; пустой ответ - []
func (r *Resolution) Payload() interface{} {
	if r.IsMinimal() {
		return r.Minimal
	}
	if r.Results == nil {
		return []Result{}
	}
	return r.Results
}
