package transitgo

import (
	"fmt"

	"github.com/hupe1980/transitgo/collection"
	"github.com/hupe1980/transitgo/model"
	"github.com/hupe1980/transitgo/relations"
)

// Collections holds every object collection of a transit dataset.
// Collections are filled by an ingestion layer (see the gtfs package)
// and then frozen into a Model.
type Collections struct {
	Contributors    *collection.CollectionWithID[model.Contributor]
	Datasets        *collection.CollectionWithID[model.Dataset]
	Networks        *collection.CollectionWithID[model.Network]
	Companies       *collection.CollectionWithID[model.Company]
	CommercialModes *collection.CollectionWithID[model.CommercialMode]
	PhysicalModes   *collection.CollectionWithID[model.PhysicalMode]
	Lines           *collection.CollectionWithID[model.Line]
	Routes          *collection.CollectionWithID[model.Route]
	VehicleJourneys *collection.CollectionWithID[model.VehicleJourney]
	StopAreas       *collection.CollectionWithID[model.StopArea]
	StopPoints      *collection.CollectionWithID[model.StopPoint]
}

// NewCollections returns Collections with every collection empty.
func NewCollections() Collections {
	return Collections{
		Contributors:    collection.MustCollectionWithID[model.Contributor](nil),
		Datasets:        collection.MustCollectionWithID[model.Dataset](nil),
		Networks:        collection.MustCollectionWithID[model.Network](nil),
		Companies:       collection.MustCollectionWithID[model.Company](nil),
		CommercialModes: collection.MustCollectionWithID[model.CommercialMode](nil),
		PhysicalModes:   collection.MustCollectionWithID[model.PhysicalMode](nil),
		Lines:           collection.MustCollectionWithID[model.Line](nil),
		Routes:          collection.MustCollectionWithID[model.Route](nil),
		VehicleJourneys: collection.MustCollectionWithID[model.VehicleJourney](nil),
		StopAreas:       collection.MustCollectionWithID[model.StopArea](nil),
		StopPoints:      collection.MustCollectionWithID[model.StopPoint](nil),
	}
}

// Model is the read-only relational view over a set of collections.
// NewModel resolves every foreign key once; afterwards the model and
// all its relations are immutable and safe for concurrent readers.
type Model struct {
	Collections

	contributorsToDatasets         *relations.OneToMany[model.Contributor, model.Dataset]
	networksToLines                *relations.OneToMany[model.Network, model.Line]
	commercialModesToLines         *relations.OneToMany[model.CommercialMode, model.Line]
	linesToRoutes                  *relations.OneToMany[model.Line, model.Route]
	routesToVehicleJourneys        *relations.OneToMany[model.Route, model.VehicleJourney]
	datasetsToVehicleJourneys      *relations.OneToMany[model.Dataset, model.VehicleJourney]
	companiesToVehicleJourneys     *relations.OneToMany[model.Company, model.VehicleJourney]
	physicalModesToVehicleJourneys *relations.OneToMany[model.PhysicalMode, model.VehicleJourney]
	stopAreasToStopPoints          *relations.OneToMany[model.StopArea, model.StopPoint]

	vehicleJourneysToStopPoints *relations.ManyToMany[model.VehicleJourney, model.StopPoint]
	linesToVehicleJourneys      *relations.ManyToMany[model.Line, model.VehicleJourney]
	routesToStopPoints          *relations.ManyToMany[model.Route, model.StopPoint]
	linesToStopPoints           *relations.ManyToMany[model.Line, model.StopPoint]
	linesToPhysicalModes        *relations.ManyToMany[model.Line, model.PhysicalMode]
	stopAreasToLines            *relations.ManyToMany[model.StopArea, model.Line]
}

// NewModel builds the relation web over the given collections. Any
// unresolved foreign key fails the whole build: no partial model is
// ever returned.
func NewModel(c Collections) (*Model, error) {
	m := &Model{Collections: c}

	var err error
	if m.contributorsToDatasets, err = relations.NewOneToMany(
		c.Contributors, c.Datasets, "contributors_to_datasets",
		func(d model.Dataset) string { return d.ContributorID },
	); err != nil {
		return nil, err
	}
	if m.networksToLines, err = relations.NewOneToMany(
		c.Networks, c.Lines, "networks_to_lines",
		func(l model.Line) string { return l.NetworkID },
	); err != nil {
		return nil, err
	}
	if m.commercialModesToLines, err = relations.NewOneToMany(
		c.CommercialModes, c.Lines, "commercial_modes_to_lines",
		func(l model.Line) string { return l.CommercialModeID },
	); err != nil {
		return nil, err
	}
	if m.linesToRoutes, err = relations.NewOneToMany(
		c.Lines, c.Routes, "lines_to_routes",
		func(r model.Route) string { return r.LineID },
	); err != nil {
		return nil, err
	}
	if m.routesToVehicleJourneys, err = relations.NewOneToMany(
		c.Routes, c.VehicleJourneys, "routes_to_vehicle_journeys",
		func(v model.VehicleJourney) string { return v.RouteID },
	); err != nil {
		return nil, err
	}
	if m.datasetsToVehicleJourneys, err = relations.NewOneToMany(
		c.Datasets, c.VehicleJourneys, "datasets_to_vehicle_journeys",
		func(v model.VehicleJourney) string { return v.DatasetID },
	); err != nil {
		return nil, err
	}
	if m.companiesToVehicleJourneys, err = relations.NewOneToMany(
		c.Companies, c.VehicleJourneys, "companies_to_vehicle_journeys",
		func(v model.VehicleJourney) string { return v.CompanyID },
	); err != nil {
		return nil, err
	}
	if m.physicalModesToVehicleJourneys, err = relations.NewOneToMany(
		c.PhysicalModes, c.VehicleJourneys, "physical_modes_to_vehicle_journeys",
		func(v model.VehicleJourney) string { return v.PhysicalModeID },
	); err != nil {
		return nil, err
	}
	if m.stopAreasToStopPoints, err = relations.NewOneToMany(
		c.StopAreas, c.StopPoints, "stop_areas_to_stop_points",
		func(s model.StopPoint) string { return s.StopAreaID },
	); err != nil {
		return nil, err
	}

	if m.vehicleJourneysToStopPoints, err = vehicleJourneysToStopPoints(c); err != nil {
		return nil, err
	}

	m.linesToVehicleJourneys = relations.Chain[model.Line, model.Route, model.VehicleJourney](
		m.linesToRoutes, m.routesToVehicleJourneys)
	m.routesToStopPoints = relations.Chain[model.Route, model.VehicleJourney, model.StopPoint](
		m.routesToVehicleJourneys, m.vehicleJourneysToStopPoints)
	m.linesToStopPoints = relations.Chain[model.Line, model.Route, model.StopPoint](
		m.linesToRoutes, m.routesToStopPoints)
	m.linesToPhysicalModes = relations.Sink[model.Line, model.VehicleJourney, model.PhysicalMode](
		m.linesToVehicleJourneys, m.physicalModesToVehicleJourneys)
	m.stopAreasToLines = relations.Sink[model.StopArea, model.StopPoint, model.Line](
		m.stopAreasToStopPoints, m.linesToStopPoints)

	return m, nil
}

// vehicleJourneysToStopPoints resolves the stop times embedded in each
// journey into an explicit forward adjacency. Journeys without stop
// times get no entry.
func vehicleJourneysToStopPoints(c Collections) (*relations.ManyToMany[model.VehicleJourney, model.StopPoint], error) {
	forward := make(map[collection.Idx[model.VehicleJourney]]collection.IdxSet[model.StopPoint])
	for vjIdx, vj := range c.VehicleJourneys.All() {
		if len(vj.StopTimes) == 0 {
			continue
		}
		stops := collection.NewIdxSet[model.StopPoint]()
		for _, st := range vj.StopTimes {
			spIdx, ok := c.StopPoints.Lookup(st.StopPointID)
			if !ok {
				return nil, fmt.Errorf("vehicle journey %q: %w", vj.ID, &relations.ErrUnresolvedRef{
					Relation: "vehicle_journeys_to_stop_points",
					ID:       st.StopPointID,
				})
			}
			stops.Add(spIdx)
		}
		forward[vjIdx] = stops
	}
	return relations.FromForward(forward), nil
}

// ContributorsToDatasets relates contributors to their datasets.
func (m *Model) ContributorsToDatasets() *relations.OneToMany[model.Contributor, model.Dataset] {
	return m.contributorsToDatasets
}

// NetworksToLines relates networks to their lines.
func (m *Model) NetworksToLines() *relations.OneToMany[model.Network, model.Line] {
	return m.networksToLines
}

// CommercialModesToLines relates commercial modes to their lines.
func (m *Model) CommercialModesToLines() *relations.OneToMany[model.CommercialMode, model.Line] {
	return m.commercialModesToLines
}

// LinesToRoutes relates lines to their routes.
func (m *Model) LinesToRoutes() *relations.OneToMany[model.Line, model.Route] {
	return m.linesToRoutes
}

// RoutesToVehicleJourneys relates routes to their vehicle journeys.
func (m *Model) RoutesToVehicleJourneys() *relations.OneToMany[model.Route, model.VehicleJourney] {
	return m.routesToVehicleJourneys
}

// DatasetsToVehicleJourneys relates datasets to their vehicle journeys.
func (m *Model) DatasetsToVehicleJourneys() *relations.OneToMany[model.Dataset, model.VehicleJourney] {
	return m.datasetsToVehicleJourneys
}

// CompaniesToVehicleJourneys relates companies to their vehicle journeys.
func (m *Model) CompaniesToVehicleJourneys() *relations.OneToMany[model.Company, model.VehicleJourney] {
	return m.companiesToVehicleJourneys
}

// PhysicalModesToVehicleJourneys relates physical modes to their
// vehicle journeys.
func (m *Model) PhysicalModesToVehicleJourneys() *relations.OneToMany[model.PhysicalMode, model.VehicleJourney] {
	return m.physicalModesToVehicleJourneys
}

// StopAreasToStopPoints relates stop areas to their stop points.
func (m *Model) StopAreasToStopPoints() *relations.OneToMany[model.StopArea, model.StopPoint] {
	return m.stopAreasToStopPoints
}

// VehicleJourneysToStopPoints relates vehicle journeys to the stop
// points they serve.
func (m *Model) VehicleJourneysToStopPoints() *relations.ManyToMany[model.VehicleJourney, model.StopPoint] {
	return m.vehicleJourneysToStopPoints
}

// LinesToVehicleJourneys relates lines to their vehicle journeys,
// composed through routes.
func (m *Model) LinesToVehicleJourneys() *relations.ManyToMany[model.Line, model.VehicleJourney] {
	return m.linesToVehicleJourneys
}

// RoutesToStopPoints relates routes to the stop points they serve,
// composed through vehicle journeys.
func (m *Model) RoutesToStopPoints() *relations.ManyToMany[model.Route, model.StopPoint] {
	return m.routesToStopPoints
}

// LinesToStopPoints relates lines to the stop points they serve.
func (m *Model) LinesToStopPoints() *relations.ManyToMany[model.Line, model.StopPoint] {
	return m.linesToStopPoints
}

// LinesToPhysicalModes relates lines to the physical modes operating
// them, joining both relations on their shared vehicle journeys.
func (m *Model) LinesToPhysicalModes() *relations.ManyToMany[model.Line, model.PhysicalMode] {
	return m.linesToPhysicalModes
}

// StopAreasToLines relates stop areas to the lines serving them,
// joining both relations on their shared stop points.
func (m *Model) StopAreasToLines() *relations.ManyToMany[model.StopArea, model.Line] {
	return m.stopAreasToLines
}
