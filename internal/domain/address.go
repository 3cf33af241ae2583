package domain

// PartialTokenSuffix помечает последний токен как возможно незавершённый
const PartialTokenSuffix = "\x02"

// AddressQuery - нормализованный ввод резолвера. Каждая стадия возвращает новое значение.
type AddressQuery struct {
	Address     string
	City        string
	State       string
	Country     string
	PostalCode  string
	Text        string
	CountryCode string
	Lang        string
	Placetypes  []Placetype
	Lat         *float64
	Lon         *float64
	IP          string
	Limit       int
	Minimal     bool
	Live        bool
}

// HasTextInput - заполнено хотя бы одно текстовое поле
func (q AddressQuery) HasTextInput() bool {
	return q.Address != "" || q.City != "" || q.State != "" ||
		q.Country != "" || q.PostalCode != "" || q.Text != ""
}

// HasLocationHint - известна страна, индекс, регион или город
func (q AddressQuery) HasLocationHint() bool {
	return q.Country != "" || q.PostalCode != "" || q.State != "" || q.City != ""
}

// HydrateOptions - параметры гидрации кандидатов
type HydrateOptions struct {
	Placetypes []Placetype
	Lang       string
	Limit      int
	Minimal    bool
}
