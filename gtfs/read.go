package gtfs

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strconv"

	"github.com/gocarina/gocsv"
	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/transitgo"
	"github.com/hupe1980/transitgo/collection"
	"github.com/hupe1980/transitgo/model"
)

// defaultAgencyID stands in for agencies that omit agency_id, which
// GTFS allows for single-agency feeds.
const defaultAgencyID = "default_agency_id"

// generatedStopAreaPrefix prefixes the ids of stop areas synthesized
// for stop points without a parent_station.
const generatedStopAreaPrefix = "StopArea:"

type options struct {
	logger     *transitgo.Logger
	configPath string
}

// Option configures Read.
type Option func(*options)

// WithLogger sets the logger used during ingestion.
// Defaults to a text logger on stderr.
func WithLogger(l *transitgo.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithConfig sets the path of a JSON config file describing the
// contributor and dataset of the feed. Without it, defaults are used.
func WithConfig(path string) Option {
	return func(o *options) {
		o.configPath = path
	}
}

// Read loads a GTFS feed from fsys and builds the relational model.
// The feed member files are parsed concurrently; assembly and relation
// building are sequential and deterministic.
func Read(fsys fs.FS, opts ...Option) (*transitgo.Model, error) {
	o := options{logger: transitgo.NewLogger(nil)}
	for _, opt := range opts {
		opt(&o)
	}
	log := o.logger

	var (
		agencies  []Agency
		stops     []Stop
		routes    []Route
		trips     []Trip
		stopTimes []StopTime
	)
	var g errgroup.Group
	g.Go(func() (err error) { agencies, err = parseFile[Agency](fsys, "agency.txt"); return })
	g.Go(func() (err error) { stops, err = parseFile[Stop](fsys, "stops.txt"); return })
	g.Go(func() (err error) { routes, err = parseFile[Route](fsys, "routes.txt"); return })
	g.Go(func() (err error) { trips, err = parseFile[Trip](fsys, "trips.txt"); return })
	g.Go(func() (err error) { stopTimes, err = parseOptionalFile[StopTime](fsys, "stop_times.txt"); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}
	log.LogRead("agency.txt", len(agencies), nil)
	log.LogRead("stops.txt", len(stops), nil)
	log.LogRead("routes.txt", len(routes), nil)
	log.LogRead("trips.txt", len(trips), nil)
	log.LogRead("stop_times.txt", len(stopTimes), nil)

	c := transitgo.NewCollections()

	var err error
	if o.configPath != "" {
		f, err := os.Open(o.configPath)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		c.Contributors, c.Datasets, err = ReadConfig(f)
		if err != nil {
			return nil, err
		}
	} else if c.Contributors, c.Datasets, err = ReadConfig(nil); err != nil {
		return nil, err
	}

	if c.Networks, c.Companies, err = makeAgencyCollections(agencies); err != nil {
		return nil, fmt.Errorf("agency.txt: %w", err)
	}
	if c.StopAreas, c.StopPoints, err = makeStopCollections(stops); err != nil {
		return nil, fmt.Errorf("stops.txt: %w", err)
	}
	if err = fillRoutes(&c, routes, trips, stopTimes, log); err != nil {
		return nil, err
	}

	m, err := transitgo.NewModel(c)
	log.LogModelBuild(err)
	return m, err
}

// ReadDir loads a GTFS feed from an extracted directory.
func ReadDir(path string, opts ...Option) (*transitgo.Model, error) {
	return Read(os.DirFS(path), opts...)
}

// ReadAgency loads agency.txt into network and company collections.
func ReadAgency(fsys fs.FS) (
	*collection.CollectionWithID[model.Network],
	*collection.CollectionWithID[model.Company],
	error,
) {
	agencies, err := parseFile[Agency](fsys, "agency.txt")
	if err != nil {
		return nil, nil, err
	}
	networks, companies, err := makeAgencyCollections(agencies)
	if err != nil {
		return nil, nil, fmt.Errorf("agency.txt: %w", err)
	}
	return networks, companies, nil
}

// ReadStops loads stops.txt into stop area and stop point collections.
func ReadStops(fsys fs.FS) (
	*collection.CollectionWithID[model.StopArea],
	*collection.CollectionWithID[model.StopPoint],
	error,
) {
	stops, err := parseFile[Stop](fsys, "stops.txt")
	if err != nil {
		return nil, nil, err
	}
	stopAreas, stopPoints, err := makeStopCollections(stops)
	if err != nil {
		return nil, nil, fmt.Errorf("stops.txt: %w", err)
	}
	return stopAreas, stopPoints, nil
}

// ReadRoutes loads routes.txt, trips.txt and stop_times.txt into the
// mode, line, route and vehicle journey collections of c. The dataset
// and company collections of c must already be populated, since
// vehicle journeys reference them.
func ReadRoutes(fsys fs.FS, c *transitgo.Collections, opts ...Option) error {
	o := options{logger: transitgo.NewLogger(nil)}
	for _, opt := range opts {
		opt(&o)
	}
	routes, err := parseFile[Route](fsys, "routes.txt")
	if err != nil {
		return err
	}
	trips, err := parseFile[Trip](fsys, "trips.txt")
	if err != nil {
		return err
	}
	stopTimes, err := parseOptionalFile[StopTime](fsys, "stop_times.txt")
	if err != nil {
		return err
	}
	return fillRoutes(c, routes, trips, stopTimes, o.logger)
}

// parseFile decodes one CSV feed member into a slice of records.
func parseFile[T any](fsys fs.FS, name string) ([]T, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	defer f.Close()
	var out []T
	if err := gocsv.Unmarshal(f, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}

// parseOptionalFile is parseFile, but a missing member yields no
// records instead of an error.
func parseOptionalFile[T any](fsys fs.FS, name string) ([]T, error) {
	out, err := parseFile[T](fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return out, err
}

func makeAgencyCollections(agencies []Agency) (
	*collection.CollectionWithID[model.Network],
	*collection.CollectionWithID[model.Company],
	error,
) {
	networks := make([]model.Network, 0, len(agencies))
	companies := make([]model.Company, 0, len(agencies))
	for _, a := range agencies {
		id := a.ID
		if id == "" {
			id = defaultAgencyID
		}
		networks = append(networks, model.Network{
			ID:       id,
			Name:     a.Name,
			Timezone: a.Timezone,
			URL:      a.URL,
			Lang:     a.Lang,
			Phone:    a.Phone,
		})
		companies = append(companies, model.Company{
			ID:    id,
			Name:  a.Name,
			URL:   a.URL,
			Mail:  a.Email,
			Phone: a.Phone,
		})
	}
	networkColl, err := collection.NewCollectionWithID(networks)
	if err != nil {
		return nil, nil, err
	}
	companyColl, err := collection.NewCollectionWithID(companies)
	if err != nil {
		return nil, nil, err
	}
	return networkColl, companyColl, nil
}

func makeStopCollections(stops []Stop) (
	*collection.CollectionWithID[model.StopArea],
	*collection.CollectionWithID[model.StopPoint],
	error,
) {
	var stopAreas []model.StopArea
	var stopPoints []model.StopPoint
	for _, stop := range stops {
		switch stop.LocationType {
		case 0:
			if stop.ParentStation == "" {
				// Synthesize the missing parent. The generated area
				// inherits everything except the stop code.
				parent := stop
				parent.ID = generatedStopAreaPrefix + stop.ID
				parent.Code = ""
				stop.ParentStation = parent.ID
				stopAreas = append(stopAreas, stopAreaOf(parent))
			}
			stopPoints = append(stopPoints, stopPointOf(stop))
		case 1:
			stopAreas = append(stopAreas, stopAreaOf(stop))
		}
	}
	areaColl, err := collection.NewCollectionWithID(stopAreas)
	if err != nil {
		return nil, nil, err
	}
	pointColl, err := collection.NewCollectionWithID(stopPoints)
	if err != nil {
		return nil, nil, err
	}
	return areaColl, pointColl, nil
}

func stopCodes(stop Stop) []model.Code {
	if stop.Code == "" {
		return nil
	}
	return []model.Code{{Key: "gtfs_stop_code", Value: stop.Code}}
}

func stopAreaOf(stop Stop) model.StopArea {
	return model.StopArea{
		ID:       stop.ID,
		Name:     stop.Name,
		Codes:    stopCodes(stop),
		Coord:    model.Coord{Lon: stop.Lon, Lat: stop.Lat},
		Timezone: stop.Timezone,
		Visible:  true,
	}
}

func stopPointOf(stop Stop) model.StopPoint {
	return model.StopPoint{
		ID:         stop.ID,
		Name:       stop.Name,
		Codes:      stopCodes(stop),
		Coord:      model.Coord{Lon: stop.Lon, Lat: stop.Lat},
		StopAreaID: stop.ParentStation,
		Timezone:   stop.Timezone,
		FareZoneID: stop.FareZoneID,
		Visible:    true,
	}
}

func fillRoutes(c *transitgo.Collections, gtfsRoutes []Route, trips []Trip, stopTimes []StopTime, log *transitgo.Logger) error {
	commercialModes, physicalModes := makeModes(gtfsRoutes)
	var err error
	if c.CommercialModes, err = collection.NewCollectionWithID(commercialModes); err != nil {
		return fmt.Errorf("routes.txt: %w", err)
	}
	if c.PhysicalModes, err = collection.NewCollectionWithID(physicalModes); err != nil {
		return fmt.Errorf("routes.txt: %w", err)
	}

	lineGroups := mapLineRoutes(gtfsRoutes)

	lines, err := makeLines(trips, lineGroups)
	if err != nil {
		return fmt.Errorf("routes.txt: %w", err)
	}
	if c.Lines, err = collection.NewCollectionWithID(lines); err != nil {
		return fmt.Errorf("routes.txt: %w", err)
	}

	routes := makeRoutes(trips, lineGroups, log)
	if c.Routes, err = collection.NewCollectionWithID(routes); err != nil {
		return fmt.Errorf("routes.txt: %w", err)
	}

	vjs, err := makeVehicleJourneys(c, gtfsRoutes, trips, stopTimes)
	if err != nil {
		return err
	}
	if c.VehicleJourneys, err = collection.NewCollectionWithID(vjs); err != nil {
		return fmt.Errorf("trips.txt: %w", err)
	}
	return nil
}

// makeModes derives the mode collections from the route types present
// in the feed. Physical modes are deduplicated since several route
// types collapse onto the same physical mode.
func makeModes(gtfsRoutes []Route) ([]model.CommercialMode, []model.PhysicalMode) {
	seen := make(map[RouteType]struct{})
	routeTypes := make([]RouteType, 0, 8)
	for _, r := range gtfsRoutes {
		if _, ok := seen[r.Type]; !ok {
			seen[r.Type] = struct{}{}
			routeTypes = append(routeTypes, r.Type)
		}
	}
	sort.Slice(routeTypes, func(i, j int) bool { return routeTypes[i] < routeTypes[j] })

	commercial := make([]model.CommercialMode, 0, len(routeTypes))
	var physical []model.PhysicalMode
	seenPhysical := make(map[string]struct{})
	for _, rt := range routeTypes {
		commercial = append(commercial, model.CommercialMode{
			ID:   rt.GTFSValue(),
			Name: rt.CommercialModeName(),
		})
		pm := rt.PhysicalMode()
		if _, ok := seenPhysical[pm.ID]; !ok {
			seenPhysical[pm.ID] = struct{}{}
			physical = append(physical, pm)
		}
	}
	return commercial, physical
}

// mapLineRoutes groups the feed routes by commercial line.
func mapLineRoutes(gtfsRoutes []Route) map[lineKey][]*Route {
	groups := make(map[lineKey][]*Route)
	for i := range gtfsRoutes {
		r := &gtfsRoutes[i]
		groups[r.lineKey()] = append(groups[r.lineKey()], r)
	}
	return groups
}

// lineRepresentative is the route with the smallest id within a group;
// it lends the line its id and attributes.
func lineRepresentative(group []*Route) *Route {
	rep := group[0]
	for _, r := range group[1:] {
		if r.ID < rep.ID {
			rep = r
		}
	}
	return rep
}

func makeLines(trips []Trip, lineGroups map[lineKey][]*Route) ([]model.Line, error) {
	served := make(map[string]bool, len(trips))
	for _, t := range trips {
		served[t.RouteID] = true
	}

	var lines []model.Line
	for _, group := range lineGroups {
		r := lineRepresentative(group)
		if !served[r.ID] {
			continue
		}
		networkID := r.AgencyID
		if networkID == "" {
			networkID = defaultAgencyID
		}
		line := model.Line{
			ID:               r.ID,
			Code:             r.ShortName,
			Name:             r.LongName,
			NetworkID:        networkID,
			CommercialModeID: r.Type.GTFSValue(),
		}
		var err error
		if line.Color, err = parseOptionalRGB(r.Color); err != nil {
			return nil, fmt.Errorf("route %q: %w", r.ID, err)
		}
		if line.TextColor, err = parseOptionalRGB(r.TextColor); err != nil {
			return nil, fmt.Errorf("route %q: %w", r.ID, err)
		}
		if line.SortOrder, err = parseOptionalUint32(r.SortOrder); err != nil {
			return nil, fmt.Errorf("route %q: invalid route_sort_order: %w", r.ID, err)
		}
		lines = append(lines, line)
	}
	sort.Slice(lines, func(i, j int) bool { return lines[i].ID < lines[j].ID })
	return lines, nil
}

func makeRoutes(trips []Trip, lineGroups map[lineKey][]*Route, log *transitgo.Logger) []model.Route {
	var routes []model.Route
	for _, group := range lineGroups {
		rep := lineRepresentative(group)
		for _, r := range group {
			forward, backward := routeDirections(trips, r.ID)
			if !forward && !backward {
				log.Warn("no trips for route", "route_id", r.ID)
				continue
			}
			if forward {
				routes = append(routes, model.Route{
					ID:            r.ID,
					Name:          r.LongName,
					DirectionType: "forward",
					LineID:        rep.ID,
				})
			}
			if backward {
				routes = append(routes, model.Route{
					ID:            r.ID + "_R",
					Name:          r.LongName,
					DirectionType: "backward",
					LineID:        rep.ID,
				})
			}
		}
	}
	sort.Slice(routes, func(i, j int) bool { return routes[i].ID < routes[j].ID })
	return routes
}

// routeDirections reports which directions of the route are served by
// at least one trip.
func routeDirections(trips []Trip, routeID string) (forward, backward bool) {
	for i := range trips {
		t := &trips[i]
		if t.RouteID != routeID {
			continue
		}
		if b, err := t.backward(); err == nil && b {
			backward = true
		} else {
			forward = true
		}
	}
	return forward, backward
}

func makeVehicleJourneys(c *transitgo.Collections, gtfsRoutes []Route, trips []Trip, stopTimes []StopTime) ([]model.VehicleJourney, error) {
	routesByID := make(map[string]*Route, len(gtfsRoutes))
	for i := range gtfsRoutes {
		routesByID[gtfsRoutes[i].ID] = &gtfsRoutes[i]
	}

	stopTimesByTrip := make(map[string][]model.StopTime)
	for _, st := range stopTimes {
		arrival, err := parseOptionalTime(st.ArrivalTime)
		if err != nil {
			return nil, fmt.Errorf("stop_times.txt: trip %q: %w", st.TripID, err)
		}
		departure, err := parseOptionalTime(st.DepartureTime)
		if err != nil {
			return nil, fmt.Errorf("stop_times.txt: trip %q: %w", st.TripID, err)
		}
		stopTimesByTrip[st.TripID] = append(stopTimesByTrip[st.TripID], model.StopTime{
			StopPointID:   st.StopID,
			Sequence:      st.Sequence,
			ArrivalTime:   arrival,
			DepartureTime: departure,
		})
	}
	for _, sts := range stopTimesByTrip {
		sort.Slice(sts, func(i, j int) bool { return sts[i].Sequence < sts[j].Sequence })
	}

	var datasetID string
	for _, d := range c.Datasets.All() {
		datasetID = d.ID
		break
	}

	vjs := make([]model.VehicleJourney, 0, len(trips))
	for _, t := range trips {
		r, ok := routesByID[t.RouteID]
		if !ok {
			return nil, fmt.Errorf("trips.txt: trip %q: route_id %q not found", t.ID, t.RouteID)
		}
		backward, err := t.backward()
		if err != nil {
			return nil, fmt.Errorf("trips.txt: %w", err)
		}
		routeID := r.ID
		if backward {
			routeID += "_R"
		}
		companyID := r.AgencyID
		if companyID == "" {
			companyID = defaultAgencyID
		}
		vjs = append(vjs, model.VehicleJourney{
			ID:             t.ID,
			RouteID:        routeID,
			PhysicalModeID: r.Type.PhysicalMode().ID,
			DatasetID:      datasetID,
			CompanyID:      companyID,
			ServiceID:      t.ServiceID,
			Headsign:       t.Headsign,
			ShortName:      t.ShortName,
			BlockID:        t.BlockID,
			StopTimes:      stopTimesByTrip[t.ID],
		})
	}
	return vjs, nil
}

func parseOptionalRGB(s string) (*model.RGB, error) {
	if s == "" {
		return nil, nil
	}
	c, err := model.ParseRGB(s)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func parseOptionalUint32(s string) (*uint32, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return nil, err
	}
	u := uint32(v)
	return &u, nil
}

func parseOptionalTime(s string) (model.TimeOfDay, error) {
	if s == "" {
		return 0, nil
	}
	return model.ParseTimeOfDay(s)
}
