package transitgo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/transitgo"
	"github.com/hupe1980/transitgo/collection"
	"github.com/hupe1980/transitgo/model"
	"github.com/hupe1980/transitgo/relations"
)

// testCollections builds a small two-line network:
//
//	N1 -> L1 -> R1 -> VJ1 (Bus)   serving SP1, SP2 (SA1)
//	N1 -> L2 -> R2 -> VJ2 (Metro) serving SP2, SP3 (SA1, SA2)
func testCollections(t *testing.T) transitgo.Collections {
	t.Helper()
	c := transitgo.NewCollections()

	var err error
	c.Contributors, err = collection.NewCollectionWithID([]model.Contributor{
		{ID: "C1", Name: "contributor"},
	})
	require.NoError(t, err)
	c.Datasets, err = collection.NewCollectionWithID([]model.Dataset{
		{ID: "D1", ContributorID: "C1"},
	})
	require.NoError(t, err)
	c.Networks, err = collection.NewCollectionWithID([]model.Network{
		{ID: "N1", Name: "network"},
	})
	require.NoError(t, err)
	c.Companies, err = collection.NewCollectionWithID([]model.Company{
		{ID: "CO1", Name: "company"},
	})
	require.NoError(t, err)
	c.CommercialModes, err = collection.NewCollectionWithID([]model.CommercialMode{
		{ID: "3", Name: "Bus"},
		{ID: "1", Name: "Subway, Metro"},
	})
	require.NoError(t, err)
	c.PhysicalModes, err = collection.NewCollectionWithID([]model.PhysicalMode{
		{ID: "Bus", Name: "Bus"},
		{ID: "Metro", Name: "Metro"},
	})
	require.NoError(t, err)
	c.Lines, err = collection.NewCollectionWithID([]model.Line{
		{ID: "L1", NetworkID: "N1", CommercialModeID: "3"},
		{ID: "L2", NetworkID: "N1", CommercialModeID: "1"},
	})
	require.NoError(t, err)
	c.Routes, err = collection.NewCollectionWithID([]model.Route{
		{ID: "R1", LineID: "L1"},
		{ID: "R2", LineID: "L2"},
	})
	require.NoError(t, err)
	c.StopAreas, err = collection.NewCollectionWithID([]model.StopArea{
		{ID: "SA1"},
		{ID: "SA2"},
	})
	require.NoError(t, err)
	c.StopPoints, err = collection.NewCollectionWithID([]model.StopPoint{
		{ID: "SP1", StopAreaID: "SA1"},
		{ID: "SP2", StopAreaID: "SA1"},
		{ID: "SP3", StopAreaID: "SA2"},
	})
	require.NoError(t, err)
	c.VehicleJourneys, err = collection.NewCollectionWithID([]model.VehicleJourney{
		{
			ID: "VJ1", RouteID: "R1", PhysicalModeID: "Bus",
			DatasetID: "D1", CompanyID: "CO1",
			StopTimes: []model.StopTime{
				{StopPointID: "SP1", Sequence: 1},
				{StopPointID: "SP2", Sequence: 2},
			},
		},
		{
			ID: "VJ2", RouteID: "R2", PhysicalModeID: "Metro",
			DatasetID: "D1", CompanyID: "CO1",
			StopTimes: []model.StopTime{
				{StopPointID: "SP2", Sequence: 1},
				{StopPointID: "SP3", Sequence: 2},
			},
		},
	})
	require.NoError(t, err)
	return c
}

func TestNewModel(t *testing.T) {
	c := testCollections(t)
	m, err := transitgo.NewModel(c)
	require.NoError(t, err)

	l1, _ := m.Lines.Lookup("L1")
	l2, _ := m.Lines.Lookup("L2")
	sp1, _ := m.StopPoints.Lookup("SP1")
	sp2, _ := m.StopPoints.Lookup("SP2")
	sp3, _ := m.StopPoints.Lookup("SP3")
	sa1, _ := m.StopAreas.Lookup("SA1")
	sa2, _ := m.StopAreas.Lookup("SA2")
	bus, _ := m.PhysicalModes.Lookup("Bus")
	metro, _ := m.PhysicalModes.Lookup("Metro")

	// Chained: line -> routes -> vehicle journeys -> stop points.
	gotStops := m.LinesToStopPoints().Forward(collection.NewIdxSet(l1))
	assert.True(t, gotStops.Equal(collection.NewIdxSet(sp1, sp2)))

	gotStops = m.LinesToStopPoints().Forward(collection.NewIdxSet(l2))
	assert.True(t, gotStops.Equal(collection.NewIdxSet(sp2, sp3)))

	// Sink on vehicle journeys: line -> physical modes.
	assert.True(t, m.LinesToPhysicalModes().Forward(collection.NewIdxSet(l1)).
		Equal(collection.NewIdxSet(bus)))
	assert.True(t, m.LinesToPhysicalModes().Forward(collection.NewIdxSet(l2)).
		Equal(collection.NewIdxSet(metro)))

	// Sink on stop points: stop area -> lines. SA1 is served by both
	// lines through SP2; SA2 only by L2.
	assert.True(t, m.StopAreasToLines().Forward(collection.NewIdxSet(sa1)).
		Equal(collection.NewIdxSet(l1, l2)))
	assert.True(t, m.StopAreasToLines().Forward(collection.NewIdxSet(sa2)).
		Equal(collection.NewIdxSet(l2)))

	// Backward through the chain: which lines serve SP2?
	assert.True(t, m.LinesToStopPoints().Backward(collection.NewIdxSet(sp2)).
		Equal(collection.NewIdxSet(l1, l2)))
}

func TestNewModelDeterministic(t *testing.T) {
	c := testCollections(t)
	m1, err := transitgo.NewModel(c)
	require.NoError(t, err)
	m2, err := transitgo.NewModel(c)
	require.NoError(t, err)

	assert.Equal(t, m1.LinesToStopPoints().From().Slice(), m2.LinesToStopPoints().From().Slice())
	for idx := range m1.LinesToStopPoints().From().All() {
		one := collection.NewIdxSet(idx)
		assert.Equal(t,
			m1.LinesToStopPoints().Forward(one).Slice(),
			m2.LinesToStopPoints().Forward(one).Slice())
	}
}

func TestNewModelUnresolvedRef(t *testing.T) {
	c := testCollections(t)

	var err error
	c.Routes, err = collection.NewCollectionWithID([]model.Route{
		{ID: "R1", LineID: "L1"},
		{ID: "R2", LineID: "L404"},
	})
	require.NoError(t, err)

	m, err := transitgo.NewModel(c)
	require.Error(t, err)
	assert.Nil(t, m)

	var unresolved *relations.ErrUnresolvedRef
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "lines_to_routes", unresolved.Relation)
	assert.Equal(t, "L404", unresolved.ID)
}

func TestNewModelUnresolvedStopTime(t *testing.T) {
	c := testCollections(t)

	var err error
	c.VehicleJourneys, err = collection.NewCollectionWithID([]model.VehicleJourney{
		{
			ID: "VJ1", RouteID: "R1", PhysicalModeID: "Bus",
			DatasetID: "D1", CompanyID: "CO1",
			StopTimes: []model.StopTime{{StopPointID: "SP404", Sequence: 1}},
		},
	})
	require.NoError(t, err)

	_, err = transitgo.NewModel(c)
	require.Error(t, err)

	var unresolved *relations.ErrUnresolvedRef
	require.ErrorAs(t, err, &unresolved)
	assert.Equal(t, "vehicle_journeys_to_stop_points", unresolved.Relation)
	assert.Equal(t, "SP404", unresolved.ID)
}

func TestNewModelEmptyCollections(t *testing.T) {
	m, err := transitgo.NewModel(transitgo.NewCollections())
	require.NoError(t, err)
	assert.True(t, m.LinesToRoutes().From().IsEmpty())
	assert.True(t, m.StopAreasToStopPoints().From().IsEmpty())
}
