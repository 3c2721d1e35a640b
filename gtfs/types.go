package gtfs

import (
	"fmt"
	"strconv"

	"github.com/hupe1980/transitgo/model"
)

// Agency is a row of agency.txt.
type Agency struct {
	ID       string `csv:"agency_id"`
	Name     string `csv:"agency_name"`
	URL      string `csv:"agency_url"`
	Timezone string `csv:"agency_timezone"`
	Lang     string `csv:"agency_lang"`
	Phone    string `csv:"agency_phone"`
	Email    string `csv:"agency_email"`
}

// Stop is a row of stops.txt. Depending on location_type it becomes a
// stop point (0) or a stop area (1); other location types are ignored.
type Stop struct {
	ID            string  `csv:"stop_id"`
	Code          string  `csv:"stop_code"`
	Name          string  `csv:"stop_name"`
	Desc          string  `csv:"stop_desc"`
	Lon           float64 `csv:"stop_lon"`
	Lat           float64 `csv:"stop_lat"`
	FareZoneID    string  `csv:"zone_id"`
	URL           string  `csv:"stop_url"`
	LocationType  int     `csv:"location_type"`
	ParentStation string  `csv:"parent_station"`
	Timezone      string  `csv:"stop_timezone"`
}

// RouteType is the GTFS route_type code.
type RouteType uint16

// The standard GTFS route types. Codes in 8..98 are normalized to
// RouteTypeBus on parse; 99 and above are kept as extended codes.
const (
	RouteTypeTramway   RouteType = 0
	RouteTypeMetro     RouteType = 1
	RouteTypeRail      RouteType = 2
	RouteTypeBus       RouteType = 3
	RouteTypeFerry     RouteType = 4
	RouteTypeCableCar  RouteType = 5
	RouteTypeGondola   RouteType = 6
	RouteTypeFunicular RouteType = 7
)

// UnmarshalText implements encoding.TextUnmarshaler.
func (rt *RouteType) UnmarshalText(text []byte) error {
	v, err := strconv.ParseUint(string(text), 10, 16)
	if err != nil {
		return fmt.Errorf("invalid route_type %q: %w", text, err)
	}
	if v > 7 && v < 99 {
		v = uint64(RouteTypeBus)
	}
	*rt = RouteType(v)
	return nil
}

// GTFSValue returns the numeric code as a string. It doubles as the
// commercial mode identifier.
func (rt RouteType) GTFSValue() string {
	return strconv.Itoa(int(rt))
}

// CommercialModeName returns the traveller-facing mode label.
func (rt RouteType) CommercialModeName() string {
	switch rt {
	case RouteTypeTramway:
		return "Tram, Streetcar, Light rail"
	case RouteTypeMetro:
		return "Subway, Metro"
	case RouteTypeRail:
		return "Rail"
	case RouteTypeBus:
		return "Bus"
	case RouteTypeFerry:
		return "Ferry"
	case RouteTypeCableCar:
		return "Cable car"
	case RouteTypeGondola:
		return "Gondola, Suspended cable car"
	case RouteTypeFunicular:
		return "Funicular"
	default:
		return "Unknown Mode"
	}
}

// PhysicalMode returns the physical mode operating this route type.
// Several route types collapse onto the same physical mode.
func (rt RouteType) PhysicalMode() model.PhysicalMode {
	switch rt {
	case RouteTypeTramway:
		return model.PhysicalMode{ID: "RailShuttle", Name: "Rail Shuttle"}
	case RouteTypeMetro:
		return model.PhysicalMode{ID: "Metro", Name: "Metro"}
	case RouteTypeRail:
		return model.PhysicalMode{ID: "Train", Name: "Train"}
	case RouteTypeFerry:
		return model.PhysicalMode{ID: "Ferry", Name: "Ferry"}
	case RouteTypeCableCar, RouteTypeGondola, RouteTypeFunicular:
		return model.PhysicalMode{ID: "Funicular", Name: "Funicular"}
	default:
		return model.PhysicalMode{ID: "Bus", Name: "Bus"}
	}
}

// Route is a row of routes.txt. Optional numeric and color columns stay
// strings here and are validated during assembly.
type Route struct {
	ID        string    `csv:"route_id"`
	AgencyID  string    `csv:"agency_id"`
	ShortName string    `csv:"route_short_name"`
	LongName  string    `csv:"route_long_name"`
	Desc      string    `csv:"route_desc"`
	Type      RouteType `csv:"route_type"`
	URL       string    `csv:"route_url"`
	Color     string    `csv:"route_color"`
	TextColor string    `csv:"route_text_color"`
	SortOrder string    `csv:"route_sort_order"`
}

// lineKey groups routes of one commercial line: same agency and same
// display name.
func (r *Route) lineKey() lineKey {
	name := r.ShortName
	if name == "" {
		name = r.LongName
	}
	return lineKey{agencyID: r.AgencyID, name: name}
}

type lineKey struct {
	agencyID string
	name     string
}

// Trip is a row of trips.txt.
type Trip struct {
	RouteID   string `csv:"route_id"`
	ServiceID string `csv:"service_id"`
	ID        string `csv:"trip_id"`
	Headsign  string `csv:"trip_headsign"`
	ShortName string `csv:"trip_short_name"`
	Direction string `csv:"direction_id"`
	BlockID   string `csv:"block_id"`
	ShapeID   string `csv:"shape_id"`
}

// backward reports whether the trip runs in the backward direction.
// An empty direction_id defaults to forward.
func (t *Trip) backward() (bool, error) {
	switch t.Direction {
	case "", "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("invalid direction_id %q for trip %q", t.Direction, t.ID)
	}
}

// StopTime is a row of stop_times.txt.
type StopTime struct {
	TripID        string `csv:"trip_id"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	StopID        string `csv:"stop_id"`
	Sequence      uint32 `csv:"stop_sequence"`
}
