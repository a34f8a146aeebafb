package services

import (
	"strings"

	"github.com/shiproute/routing/pkg/domain/entities"
)

// stateAbbreviations maps lowercased US state names to USPS codes
var stateAbbreviations = map[string]string{
	"alabama": "AL", "alaska": "AK", "arizona": "AZ", "arkansas": "AR", "california": "CA",
	"colorado": "CO", "connecticut": "CT", "delaware": "DE", "florida": "FL", "georgia": "GA",
	"hawaii": "HI", "idaho": "ID", "illinois": "IL", "indiana": "IN", "iowa": "IA",
	"kansas": "KS", "kentucky": "KY", "louisiana": "LA", "maine": "ME", "maryland": "MD",
	"massachusetts": "MA", "michigan": "MI", "minnesota": "MN", "mississippi": "MS", "missouri": "MO",
	"montana": "MT", "nebraska": "NE", "nevada": "NV", "new hampshire": "NH", "new jersey": "NJ",
	"new mexico": "NM", "new york": "NY", "north carolina": "NC", "north dakota": "ND",
	"ohio": "OH", "oklahoma": "OK", "oregon": "OR", "pennsylvania": "PA", "rhode island": "RI",
	"south carolina": "SC", "south dakota": "SD", "tennessee": "TN", "texas": "TX", "utah": "UT",
	"vermont": "VT", "virginia": "VA", "washington": "WA", "west virginia": "WV",
	"wisconsin": "WI", "wyoming": "WY", "puerto rico": "PR", "guam": "GU",
	"u.s. virgin islands": "VI", "us virgin islands": "VI",
	"district of columbia": "DC", "washington dc": "DC", "washington d.c.": "DC",
}

// stateCentroids maps USPS state codes to geographic center coordinates
var stateCentroids = map[string]entities.Coordinate{
	"AL": {Latitude: 32.806671, Longitude: -86.791130}, "AK": {Latitude: 61.385000, Longitude: -152.268300},
	"AZ": {Latitude: 34.048928, Longitude: -111.093731}, "AR": {Latitude: 34.969704, Longitude: -92.373123},
	"CA": {Latitude: 36.778259, Longitude: -119.417931}, "CO": {Latitude: 39.550051, Longitude: -105.782067},
	"CT": {Latitude: 41.603221, Longitude: -73.087749}, "DE": {Latitude: 38.910832, Longitude: -75.527670},
	"FL": {Latitude: 27.994402, Longitude: -81.760254}, "GA": {Latitude: 32.157435, Longitude: -82.907123},
	"HI": {Latitude: 19.741755, Longitude: -155.844437}, "ID": {Latitude: 44.068203, Longitude: -114.742041},
	"IL": {Latitude: 40.633125, Longitude: -89.398528}, "IN": {Latitude: 40.551217, Longitude: -85.602364},
	"IA": {Latitude: 41.878003, Longitude: -93.097702}, "KS": {Latitude: 39.011902, Longitude: -98.484246},
	"KY": {Latitude: 37.839333, Longitude: -84.270019}, "LA": {Latitude: 30.984298, Longitude: -91.962333},
	"ME": {Latitude: 45.253783, Longitude: -69.445469}, "MD": {Latitude: 39.045755, Longitude: -76.641271},
	"MA": {Latitude: 42.407210, Longitude: -71.382437}, "MI": {Latitude: 44.314844, Longitude: -85.602364},
	"MN": {Latitude: 46.729553, Longitude: -94.685900}, "MS": {Latitude: 32.354668, Longitude: -89.398528},
	"MO": {Latitude: 37.964253, Longitude: -91.831833}, "MT": {Latitude: 46.879682, Longitude: -110.362566},
	"NE": {Latitude: 41.492537, Longitude: -99.901813}, "NV": {Latitude: 38.802610, Longitude: -116.419389},
	"NH": {Latitude: 43.193852, Longitude: -71.572395}, "NJ": {Latitude: 40.058324, Longitude: -74.405661},
	"NM": {Latitude: 34.519940, Longitude: -105.870090}, "NY": {Latitude: 43.299428, Longitude: -74.217933},
	"NC": {Latitude: 35.759573, Longitude: -79.019300}, "ND": {Latitude: 47.551493, Longitude: -101.002012},
	"OH": {Latitude: 40.417287, Longitude: -82.907123}, "OK": {Latitude: 35.007751, Longitude: -97.092877},
	"OR": {Latitude: 43.804133, Longitude: -120.554201}, "PA": {Latitude: 41.203322, Longitude: -77.194525},
	"RI": {Latitude: 41.580095, Longitude: -71.477429}, "SC": {Latitude: 33.836081, Longitude: -81.163725},
	"SD": {Latitude: 43.969515, Longitude: -99.901813}, "TN": {Latitude: 35.517491, Longitude: -86.580447},
	"TX": {Latitude: 31.968599, Longitude: -99.901813}, "UT": {Latitude: 39.320980, Longitude: -111.093731},
	"VT": {Latitude: 44.558803, Longitude: -72.577841}, "VA": {Latitude: 37.431573, Longitude: -78.656894},
	"WA": {Latitude: 47.751074, Longitude: -120.740139}, "WV": {Latitude: 38.597626, Longitude: -80.454903},
	"WI": {Latitude: 43.784440, Longitude: -88.787868}, "WY": {Latitude: 43.075968, Longitude: -107.290284},
	"DC": {Latitude: 38.907192, Longitude: -77.036873}, "PR": {Latitude: 18.220833, Longitude: -66.590149},
	"GU": {Latitude: 13.444304, Longitude: 144.793731}, "VI": {Latitude: 18.335765, Longitude: -64.896335},
}

// StateAbbreviation resolves a state reference to its USPS code. A
// two-letter input is taken as a code verbatim (uppercased); anything
// longer is looked up as a full state name. Returns false when the
// reference is not recognized, never a guess.
func StateAbbreviation(state string) (string, bool) {
	s := strings.TrimSpace(state)
	if s == "" {
		return "", false
	}
	if len(s) == 2 {
		code := strings.ToUpper(s)
		_, ok := stateCentroids[code]
		return code, ok
	}
	code, ok := stateAbbreviations[strings.ToLower(s)]
	return code, ok
}

// StateCoordinate returns the centroid coordinate for a USPS state
// code. Destinations and warehouses given as a state resolve through
// this table; precise geocoding stays with the caller.
func StateCoordinate(code string) (entities.Coordinate, bool) {
	coord, ok := stateCentroids[strings.ToUpper(strings.TrimSpace(code))]
	return coord, ok
}
