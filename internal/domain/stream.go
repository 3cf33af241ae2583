package domain

import "github.com/google/uuid"

// Stream names
const (
	StreamPlaceResolve  = "stream:place:resolve"
	StreamPlaceResolved = "stream:place:resolved"
)

// ResolveEvent - входящий запрос на разрешение адреса
type ResolveEvent struct {
	RequestID  uuid.UUID `json:"request_id"`
	Address    string    `json:"address,omitempty"`
	City       string    `json:"city,omitempty"`
	State      string    `json:"state,omitempty"`
	Country    string    `json:"country,omitempty"`
	PostalCode string    `json:"postal_code,omitempty"`
	Text       string    `json:"text,omitempty"`
	Lat        *float64  `json:"lat,omitempty"`
	Lon        *float64  `json:"lon,omitempty"`
	Lang       string    `json:"lang,omitempty"`
	Placetypes []string  `json:"placetype,omitempty"`
	Limit      int       `json:"limit,omitempty"`
	Minimal    bool      `json:"minimal,omitempty"`
}

// IsEmpty - нет ни текста, ни координат
func (e *ResolveEvent) IsEmpty() bool {
	return e.Address == "" && e.City == "" && e.State == "" && e.Country == "" &&
		e.PostalCode == "" && e.Text == "" && (e.Lat == nil || e.Lon == nil)
}

// ResolveDoneEvent - результат разрешения
type ResolveDoneEvent struct {
	RequestID uuid.UUID   `json:"request_id"`
	Results   interface{} `json:"results,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// StreamMessage - сообщение из Redis Stream
type StreamMessage struct {
	ID   string
	Data string
}
