package dto

import (
	"strings"

	"github.com/place-resolver/internal/domain"
)

const ModeLive = "live"

// SearchRequest - свободный текст / автодополнение
type SearchRequest struct {
	Text       string   `json:"text" validate:"max=512"`
	Placetypes []string `json:"placetype,omitempty" validate:"omitempty,dive,placetype"`
	Lang       string   `json:"lang,omitempty"`
	Mode       string   `json:"mode,omitempty" validate:"omitempty,oneof=live"`
}

func (r SearchRequest) IsLive() bool {
	return r.Mode == ModeLive
}

// AddressRequest - структурированный адрес, координаты или IP
type AddressRequest struct {
	Address    string   `json:"address,omitempty" validate:"max=512"`
	City       string   `json:"city,omitempty" validate:"max=256"`
	State      string   `json:"state,omitempty" validate:"max=256"`
	Country    string   `json:"country,omitempty" validate:"max=256"`
	PostalCode string   `json:"postal_code,omitempty" validate:"max=32"`
	Text       string   `json:"text,omitempty" validate:"max=512"`
	Lat        *float64 `json:"lat,omitempty"`
	Lon        *float64 `json:"lon,omitempty"`
	IP         string   `json:"ip,omitempty" validate:"omitempty,ip"`
	Limit      int      `json:"limit,omitempty"`
	Minimal    bool     `json:"minimal,omitempty"`
	Mode       string   `json:"mode,omitempty" validate:"omitempty,oneof=live"`
	Lang       string   `json:"lang,omitempty"`
	Placetypes []string `json:"placetype,omitempty" validate:"omitempty,dive,placetype"`
}

// ToQuery переводит запрос во вход AddressResolver
func (r AddressRequest) ToQuery() domain.AddressQuery {
	return domain.AddressQuery{
		Address:    r.Address,
		City:       r.City,
		State:      r.State,
		Country:    r.Country,
		PostalCode: r.PostalCode,
		Text:       r.Text,
		Lang:       r.Lang,
		Placetypes: Placetypes(r.Placetypes),
		Lat:        r.Lat,
		Lon:        r.Lon,
		IP:         r.IP,
		Limit:      r.Limit,
		Minimal:    r.Minimal,
		Live:       r.Mode == ModeLive,
	}
}

// FromEvent собирает запрос из сообщения стрима
func FromEvent(e *domain.ResolveEvent) AddressRequest {
	return AddressRequest{
		Address:    e.Address,
		City:       e.City,
		State:      e.State,
		Country:    e.Country,
		PostalCode: e.PostalCode,
		Text:       e.Text,
		Lat:        e.Lat,
		Lon:        e.Lon,
		Limit:      e.Limit,
		Minimal:    e.Minimal,
		Lang:       e.Lang,
		Placetypes: ArrayParam(e.Placetypes),
	}
}

// ArrayParam принимает значения повторяющегося параметра и списки через запятую
func ArrayParam(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func Placetypes(values []string) []domain.Placetype {
	if len(values) == 0 {
		return nil
	}
	out := make([]domain.Placetype, len(values))
	for i, v := range values {
		out[i] = domain.Placetype(v)
	}
	return out
}
