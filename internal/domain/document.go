package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	pkgvalidator "github.com/place-resolver/internal/pkg/validator"
)

func init() {
	pkgvalidator.RegisterValidation("placetype", func(fl validator.FieldLevel) bool {
		return Placetype(fl.Field().String()).IsValid()
	})
}

// BBox - [minX, minY, maxX, maxY]
type BBox [4]float64

func (b BBox) MinX() float64 { return b[0] }
func (b BBox) MinY() float64 { return b[1] }
func (b BBox) MaxX() float64 { return b[2] }
func (b BBox) MaxY() float64 { return b[3] }

// Contains проверяет, что точка лежит внутри bbox (границы включительно)
func (b BBox) Contains(lon, lat float64) bool {
	return lon >= b[0] && lon <= b[2] && lat >= b[1] && lat <= b[3]
}

// UnmarshalJSON принимает массив [minX,minY,maxX,maxY] или строку "minX,minY,maxX,maxY"
func (b *BBox) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		return nil
	}

	if strings.HasPrefix(trimmed, "\"") {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parts := strings.Split(s, ",")
		if len(parts) != 4 {
			return fmt.Errorf("bbox: expected 4 comma-separated values, got %d", len(parts))
		}
		for i, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return fmt.Errorf("bbox: %w", err)
			}
			b[i] = v
		}
		return nil
	}

	var values []float64
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("bbox: %w", err)
	}
	if len(values) != 4 {
		return fmt.Errorf("bbox: expected 4 values, got %d", len(values))
	}
	copy(b[:], values)
	return nil
}

func (b BBox) MarshalJSON() ([]byte, error) {
	return json.Marshal([4]float64(b))
}

// Rank - диапазон ранга, третье измерение пространственного индекса
type Rank struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Geom struct {
	Lat  float64 `json:"lat" validate:"gte=-90,lte=90"`
	Lon  float64 `json:"lon" validate:"gte=-180,lte=180"`
	BBox BBox    `json:"bbox"`
	Area float64 `json:"area"`
}

// Document - запись о месте в хранилище
type Document struct {
	ID         int64               `json:"id" validate:"gt=0"`
	Placetype  Placetype           `json:"placetype" validate:"required,placetype"`
	Names      map[string][]string `json:"names,omitempty"`
	Name       string              `json:"name"`
	Abbr       string              `json:"abbr,omitempty"`
	Rank       Rank                `json:"rank"`
	Geom       Geom                `json:"geom"`
	Population float64             `json:"population,omitempty" validate:"gte=0"`
	Popularity float64             `json:"popularity,omitempty" validate:"gte=0"`
	Lineage    []map[string]int64  `json:"lineage,omitempty"`
}

// Validate проверяет документ перед записью
func (d *Document) Validate() error {
	if err := pkgvalidator.Validate(d); err != nil {
		return err
	}
	bb := d.Geom.BBox
	if bb.MinX() > bb.MaxX() || bb.MinY() > bb.MaxY() {
		return fmt.Errorf("bbox min exceeds max: %v", bb)
	}
	if d.Rank.Min > d.Rank.Max {
		return fmt.Errorf("rank min exceeds max: %v", d.Rank)
	}
	return nil
}

// SortPopulation - population, иначе popularity, иначе 0
func (d *Document) SortPopulation() float64 {
	if d.Population != 0 {
		return d.Population
	}
	return d.Popularity
}

// ParentIDs возвращает id предков из всех вариантов lineage
func (d *Document) ParentIDs() []int64 {
	var ids []int64
	for _, entry := range d.Lineage {
		for _, id := range entry {
			ids = append(ids, id)
		}
	}
	return ids
}

// AllNames - все кандидаты имён по всем языкам
func (d *Document) AllNames() []string {
	var out []string
	for _, candidates := range d.Names {
		for _, n := range candidates {
			if n != "" {
				out = append(out, n)
			}
		}
	}
	if len(out) == 0 && d.Name != "" {
		out = append(out, d.Name)
	}
	return out
}
