package tap

import (
	"strings"
)

// Table is the Planetary Systems table of the archive.
const Table = "ps"

var (
	exoplanetColumns       = strings.Join(Columns(ExoplanetRecord{}), ", ")
	planetarySystemColumns = strings.Join(Columns(PlanetarySystemRecord{}), ", ")
)

// ExoplanetsQuery selects the default parameter set of every known planet.
func ExoplanetsQuery() string {
	return "SELECT " + exoplanetColumns + " FROM " + Table + " WHERE default_flag = 1"
}

// PlanetarySystemQuery selects every row whose host star is hostname.
func PlanetarySystemQuery(hostname string) string {
	return "SELECT " + planetarySystemColumns + " FROM " + Table + " WHERE hostname = " + Literal(hostname)
}

// PingQuery is the cheapest query the archive answers; used by health checks.
func PingQuery() string {
	return "SELECT TOP 1 pl_name FROM " + Table
}

// Literal quotes s as an ADQL string literal. Embedded quotes are doubled,
// so a host name can never terminate the literal early.
func Literal(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
