package model

// Contributor identifies the organization providing a dataset.
type Contributor struct {
	ID      string `json:"contributor_id"`
	Name    string `json:"contributor_name"`
	License string `json:"contributor_license,omitempty"`
	Website string `json:"contributor_website,omitempty"`
}

// GetID returns the external identifier.
func (c Contributor) GetID() string { return c.ID }

// DefaultContributor is used when no configuration is provided.
func DefaultContributor() Contributor {
	return Contributor{ID: "default_contributor", Name: "Default contributor"}
}

// Dataset is one ingested data package of a contributor, valid over a
// date range.
type Dataset struct {
	ID            string
	ContributorID string
	StartDate     Date
	EndDate       Date
}

// GetID returns the external identifier.
func (d Dataset) GetID() string { return d.ID }

// Network is an operating network, typically derived from an agency.
type Network struct {
	ID        string
	Name      string
	Codes     []Code
	Timezone  string
	URL       string
	Lang      string
	Phone     string
	Address   string
	SortOrder *uint32
}

// GetID returns the external identifier.
func (n Network) GetID() string { return n.ID }

// Company is the commercial operator of vehicle journeys.
type Company struct {
	ID      string
	Name    string
	Address string
	URL     string
	Mail    string
	Phone   string
}

// GetID returns the external identifier.
func (c Company) GetID() string { return c.ID }

// CommercialMode is the mode advertised to travellers (e.g. "Bus").
type CommercialMode struct {
	ID   string
	Name string
}

// GetID returns the external identifier.
func (m CommercialMode) GetID() string { return m.ID }

// PhysicalMode is the physical vehicle type operating a journey.
type PhysicalMode struct {
	ID          string
	Name        string
	CO2Emission *float64
}

// GetID returns the external identifier.
func (m PhysicalMode) GetID() string { return m.ID }

// Line is a commercial line of a network.
type Line struct {
	ID               string
	Code             string
	Codes            []Code
	Name             string
	Color            *RGB
	TextColor        *RGB
	SortOrder        *uint32
	NetworkID        string
	CommercialModeID string
}

// GetID returns the external identifier.
func (l Line) GetID() string { return l.ID }

// Route is one direction of a line.
type Route struct {
	ID            string
	Name          string
	DirectionType string
	Codes         []Code
	LineID        string
	DestinationID string
}

// GetID returns the external identifier.
func (r Route) GetID() string { return r.ID }

// VehicleJourney is a single vehicle run over a route, with its ordered
// stop times.
type VehicleJourney struct {
	ID             string
	Codes          []Code
	RouteID        string
	PhysicalModeID string
	DatasetID      string
	CompanyID      string
	ServiceID      string
	Headsign       string
	ShortName      string
	BlockID        string
	StopTimes      []StopTime
}

// GetID returns the external identifier.
func (v VehicleJourney) GetID() string { return v.ID }

// StopTime is one passage of a vehicle journey at a stop point.
// StopTimes are owned by their journey and are not independently
// identified.
type StopTime struct {
	StopPointID   string
	Sequence      uint32
	ArrivalTime   TimeOfDay
	DepartureTime TimeOfDay
}

// StopArea groups stop points under a common station.
type StopArea struct {
	ID       string
	Name     string
	Codes    []Code
	Coord    Coord
	Timezone string
	Visible  bool
}

// GetID returns the external identifier.
func (s StopArea) GetID() string { return s.ID }

// StopPoint is a physical boarding position, always attached to exactly
// one stop area.
type StopPoint struct {
	ID         string
	Name       string
	Codes      []Code
	Coord      Coord
	StopAreaID string
	Timezone   string
	FareZoneID string
	Visible    bool
}

// GetID returns the external identifier.
func (s StopPoint) GetID() string { return s.ID }
