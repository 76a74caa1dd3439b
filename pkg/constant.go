package pkg

import "math"

const (
	INF_WEIGHT float64 = math.MaxFloat64

	KM_PER_MILE float64 = 1.609344
	KMH_TO_MPH  float64 = 1 / KM_PER_MILE
	KNOT_TO_MPH float64 = 1.150779
)

type OsmHighwayType uint8

// enum of osm highway types that are routable by car
const (
	MOTORWAY OsmHighwayType = iota
	TRUNK
	PRIMARY
	SECONDARY
	TERTIARY
	UNCLASSIFIED
	RESIDENTIAL
	LIVING_STREET
	MOTORWAY_LINK
	TRUNK_LINK
	PRIMARY_LINK
	SECONDARY_LINK
	TERTIARY_LINK
	UNKNOWN
)

func GetHighwayType(roadType string) OsmHighwayType {
	switch roadType {
	case "motorway":
		return MOTORWAY
	case "trunk":
		return TRUNK
	case "primary":
		return PRIMARY
	case "secondary":
		return SECONDARY
	case "tertiary":
		return TERTIARY
	case "unclassified":
		return UNCLASSIFIED
	case "residential":
		return RESIDENTIAL
	case "living_street":
		return LIVING_STREET
	case "motorway_link":
		return MOTORWAY_LINK
	case "trunk_link":
		return TRUNK_LINK
	case "primary_link":
		return PRIMARY_LINK
	case "secondary_link":
		return SECONDARY_LINK
	case "tertiary_link":
		return TERTIARY_LINK
	default:
		return UNKNOWN
	}
}

// default speed limit (mph) per highway type. index = OsmHighwayType
var defaultSpeedLimitMph = [...]float64{
	MOTORWAY:       60,
	TRUNK:          45,
	PRIMARY:        35,
	SECONDARY:      30,
	TERTIARY:       25,
	UNCLASSIFIED:   25,
	RESIDENTIAL:    25,
	LIVING_STREET:  10,
	MOTORWAY_LINK:  30,
	TRUNK_LINK:     30,
	PRIMARY_LINK:   30,
	SECONDARY_LINK: 30,
	TERTIARY_LINK:  25,
}

// IsAllowedHighway. true if ways with this highway tag are part of the road graph
func IsAllowedHighway(roadType string) bool {
	return GetHighwayType(roadType) != UNKNOWN
}

// DefaultSpeedLimitMph returns the class based default speed limit in mph.
func DefaultSpeedLimitMph(roadType string) (float64, bool) {
	hw := GetHighwayType(roadType)
	if hw == UNKNOWN {
		return 0, false
	}
	return defaultSpeedLimitMph[hw], true
}
