// Package lib groups client libraries that do not fit strictly into
// other layers.
//
// It contains the TAP client for the NASA Exoplanet Archive.
package lib
