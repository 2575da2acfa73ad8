package tap

import (
	"reflect"
	"strings"
)

// ExoplanetRecord is one row of the exoplanet listing.
//
// The gateway relays rows untyped; the struct documents the projection and
// drives the column list of ExoplanetsQuery.
type ExoplanetRecord struct {
	Name     string   `json:"pl_name"`
	Hostname string   `json:"hostname"`
	RA       *float64 `json:"ra"`
	Dec      *float64 `json:"dec"`
	Distance *float64 `json:"sy_dist"`
	Radius   *float64 `json:"pl_rade"`
	DiscYear *int     `json:"disc_year"`
}

// PlanetarySystemRecord is one planet of a host star's system, with the
// physical and orbital parameters needed to render the system.
type PlanetarySystemRecord struct {
	Name              string   `json:"pl_name"`
	SemiMajorAxis     *float64 `json:"pl_orbsmax"`
	Radius            *float64 `json:"pl_rade"`
	MassEarth         *float64 `json:"pl_bmasse"`
	StellarMass       *float64 `json:"st_mass"`
	StellarTemp       *float64 `json:"st_teff"`
	OrbitalPeriod     *float64 `json:"pl_orbper"`
	Eccentricity      *float64 `json:"pl_orbeccen"`
	Inclination       *float64 `json:"pl_orbincl"`
	StellarRadius     *float64 `json:"st_rad"`
	StellarLuminosity *float64 `json:"st_lum"`
	Density           *float64 `json:"pl_dens"`
	EquilibriumTemp   *float64 `json:"pl_eqt"`
	TransitDepth      *float64 `json:"pl_trandep"`
	TransitDuration   *float64 `json:"pl_trandur"`
	MassJupiter       *float64 `json:"pl_bmassj"`
}

// Columns returns the archive column names of a record type, in field order,
// taken from its json tags.
func Columns(record any) []string {
	t := reflect.TypeOf(record)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	cols := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		name, _, _ := strings.Cut(t.Field(i).Tag.Get("json"), ",")
		if name != "" && name != "-" {
			cols = append(cols, name)
		}
	}
	return cols
}
