package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/place-resolver/internal/domain"
	"github.com/place-resolver/internal/usecase"
)

func TestSanitize(t *testing.T) {
	q := usecase.Sanitize(domain.AddressQuery{
		Address:    " 221B Baker St. (rear) ",
		City:       "Saint‐Étienne",
		State:      "Île-de-France",
		Country:    "“France”",
		PostalCode: "90210-1234",
		Text:       "O'Brien's Pub/Bar",
	})

	assert.Equal(t, "221B Baker St.  rear", q.Address)
	assert.Equal(t, "Saint Étienne", q.City)
	assert.Equal(t, "Île de France", q.State)
	assert.Equal(t, "France", q.Country)
	assert.Equal(t, "90210 1234", q.PostalCode)
	assert.Equal(t, "OBriens Pub Bar", q.Text)
}

func TestSanitize_NFC(t *testing.T) {
	// E + combining acute -> É
	q := usecase.Sanitize(domain.AddressQuery{City: "Saint-E\u0301tienne"})
	assert.Equal(t, "Saint Étienne", q.City)
}

func TestApplyLimit(t *testing.T) {
	tests := []struct {
		name string
		in   domain.AddressQuery
		max  int
		want int
	}{
		{"default", domain.AddressQuery{}, 100, 1},
		{"negative", domain.AddressQuery{Limit: -3}, 100, 1},
		{"explicit", domain.AddressQuery{Limit: 7}, 100, 7},
		{"live default", domain.AddressQuery{Live: true, Text: "par"}, 100, 5},
		{"live without text", domain.AddressQuery{Live: true}, 100, 1},
		{"live explicit", domain.AddressQuery{Live: true, Text: "par", Limit: 2}, 100, 2},
		{"capped", domain.AddressQuery{Limit: 500}, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, usecase.ApplyLimit(tt.in, tt.max).Limit)
		})
	}
}

func TestMarkPartial(t *testing.T) {
	assert.Equal(t, "Beverly Hi"+domain.PartialTokenSuffix, usecase.MarkPartial("Beverly Hi"))
	assert.Equal(t, "Beverly Hills", usecase.MarkPartial("Beverly Hills "))
	assert.Equal(t, "", usecase.MarkPartial(""))

	q := usecase.MarkLive(domain.AddressQuery{Text: "lond", Live: true})
	assert.Equal(t, "lond"+domain.PartialTokenSuffix, q.Text)

	q = usecase.MarkLive(domain.AddressQuery{Text: "lond"})
	assert.Equal(t, "lond", q.Text)
}

func TestCoordinates(t *testing.T) {
	lat, lon, ok := usecase.Coordinates(domain.AddressQuery{Lat: ptrFloat64(48.8566), Lon: ptrFloat64(2.3522)})
	assert.True(t, ok)
	assert.Equal(t, 48.8566, lat)
	assert.Equal(t, 2.3522, lon)

	_, _, ok = usecase.Coordinates(domain.AddressQuery{Lat: ptrFloat64(999), Lon: ptrFloat64(2.3522)})
	assert.False(t, ok)

	_, _, ok = usecase.Coordinates(domain.AddressQuery{Lat: ptrFloat64(48.8566)})
	assert.False(t, ok)
}

func TestCleanPostalCode(t *testing.T) {
	assert.Equal(t, "902101234", usecase.CleanPostalCode("90210-1234"))
	assert.Equal(t, "902101234", usecase.CleanPostalCode("90210 1234"))
	assert.Equal(t, "K1A0B1", usecase.CleanPostalCode("k1a 0b1"))

	for _, junk := range []string{"other", "000", "0000", "00-000", "000000", "--"} {
		assert.Empty(t, usecase.CleanPostalCode(junk), junk)
	}
}

func TestTruncatePostalCode(t *testing.T) {
	tests := []struct {
		code, country, want string
	}{
		{"902101234", "US", "90210"},
		{"01310100", "BR", "01310"},
		{"C1425", "AR", "C142"},
		{"K1A0B1", "CA", "K1A"},
		{"D02X285", "IE", "D02"},
		{"VLT1117", "MT", "VLT"},
		{"75001", "FR", "75001"},
		{"123", "US", "123"},
		{"SW1A1AA", "", "SW1A1AA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, usecase.TruncatePostalCode(tt.code, tt.country), tt.code+"/"+tt.country)
	}
}

func TestStateHintAndSubdivisionCode(t *testing.T) {
	assert.Equal(t, "CA", usecase.StateHint("ca"))
	assert.Equal(t, "USCA", usecase.StateHint("US CA"))
	assert.Equal(t, "California", usecase.StateHint("California"))
	assert.Equal(t, "", usecase.StateHint(""))

	assert.Equal(t, "USCA", usecase.SubdivisionCode("CA", "US"))
	assert.Equal(t, "USCA", usecase.SubdivisionCode("US CA", "US"))
	assert.Equal(t, "FRIDF", usecase.SubdivisionCode("idf", "FR"))
	assert.Empty(t, usecase.SubdivisionCode("California", "US"))
	assert.Empty(t, usecase.SubdivisionCode("CA", ""))
}

func TestRemoveRedundant(t *testing.T) {
	q := usecase.RemoveRedundant(domain.AddressQuery{
		City:       "beverly hills",
		State:      "California",
		PostalCode: "Beverly Hills Los Angeles California",
	})
	assert.Empty(t, q.City)
	assert.Empty(t, q.State)

	q = usecase.RemoveRedundant(domain.AddressQuery{
		City:       "Angel",
		State:      "Nevada",
		PostalCode: "Beverly Hills Los Angeles California",
	})
	assert.Equal(t, "Angel", q.City)
	assert.Equal(t, "Nevada", q.State)

	q = usecase.RemoveRedundant(domain.AddressQuery{City: "Zürich", PostalCode: "ZÜRICH Zürich"})
	assert.Empty(t, q.City)
}

func TestStripShortTokens(t *testing.T) {
	q := usecase.StripShortTokens(domain.AddressQuery{
		Text:    "12 Main St",
		Address: "Apt 4 Elm Rd",
		Country: "United States",
	})
	assert.Equal(t, "Main", q.Text)
	assert.Equal(t, "Apt Elm", q.Address)

	q = usecase.StripShortTokens(domain.AddressQuery{Text: "12 Main St"})
	assert.Equal(t, "12 Main St", q.Text)

	q = usecase.StripShortTokens(domain.AddressQuery{
		Text: "Main St" + domain.PartialTokenSuffix,
		City: "Springfield",
	})
	assert.Equal(t, "Main"+domain.PartialTokenSuffix, q.Text)
}

func TestRecompose(t *testing.T) {
	text := usecase.Recompose(domain.AddressQuery{
		Text:       "Main",
		Address:    "",
		City:       "Springfield",
		State:      "Illinois",
		PostalCode: "  ",
		Country:    "United States",
	})
	assert.Equal(t, "Main Springfield Illinois United States", text)

	assert.Empty(t, usecase.Recompose(domain.AddressQuery{}))
}
