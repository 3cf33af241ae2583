package domain

// Placetype - категория места в административной/географической иерархии
type Placetype string

const (
	PlacetypeVenue         Placetype = "venue"
	PlacetypeAddress       Placetype = "address"
	PlacetypeBuilding      Placetype = "building"
	PlacetypeCampus        Placetype = "campus"
	PlacetypeMicrohood     Placetype = "microhood"
	PlacetypeNeighbourhood Placetype = "neighbourhood"
	PlacetypeMacrohood     Placetype = "macrohood"
	PlacetypeBorough       Placetype = "borough"
	PlacetypePostalcode    Placetype = "postalcode"
	PlacetypeLocality      Placetype = "locality"
	PlacetypeMetroArea     Placetype = "metro area"
	PlacetypeLocaladmin    Placetype = "localadmin"
	PlacetypeCounty        Placetype = "county"
	PlacetypeMacrocounty   Placetype = "macrocounty"
	PlacetypeRegion        Placetype = "region"
	PlacetypeMacroregion   Placetype = "macroregion"
	PlacetypeMarinearea    Placetype = "marinearea"
	PlacetypeCountry       Placetype = "country"
	PlacetypeEmpire        Placetype = "empire"
	PlacetypeContinent     Placetype = "continent"
	PlacetypeOcean         Placetype = "ocean"
	PlacetypePlanet        Placetype = "planet"
)

// PlacetypeOrder - от меньшего к большему
var PlacetypeOrder = []Placetype{
	PlacetypeVenue,
	PlacetypeAddress,
	PlacetypeBuilding,
	PlacetypeCampus,
	PlacetypeMicrohood,
	PlacetypeNeighbourhood,
	PlacetypeMacrohood,
	PlacetypeBorough,
	PlacetypePostalcode,
	PlacetypeLocality,
	PlacetypeMetroArea,
	PlacetypeLocaladmin,
	PlacetypeCounty,
	PlacetypeMacrocounty,
	PlacetypeRegion,
	PlacetypeMacroregion,
	PlacetypeMarinearea,
	PlacetypeCountry,
	PlacetypeEmpire,
	PlacetypeContinent,
	PlacetypeOcean,
	PlacetypePlanet,
}

var placetypeSet = func() map[Placetype]struct{} {
	m := make(map[Placetype]struct{}, len(PlacetypeOrder))
	for _, p := range PlacetypeOrder {
		m[p] = struct{}{}
	}
	return m
}()

// IsValid проверяет, что placetype известен
func (p Placetype) IsValid() bool {
	_, ok := placetypeSet[p]
	return ok
}

func (p Placetype) String() string {
	return string(p)
}
