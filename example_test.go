package transitgo_test

import (
	"fmt"
	"log"
	"testing/fstest"

	"github.com/hupe1980/transitgo"
	"github.com/hupe1980/transitgo/collection"
	"github.com/hupe1980/transitgo/gtfs"
	"github.com/hupe1980/transitgo/model"
)

// Example_model demonstrates building a model by hand and navigating a
// direct relation.
func Example_model() {
	c := transitgo.NewCollections()
	c.Networks = collection.MustCollectionWithID([]model.Network{
		{ID: "rer", Name: "RER"},
	})
	c.CommercialModes = collection.MustCollectionWithID([]model.CommercialMode{
		{ID: "2", Name: "Rail"},
	})
	c.Lines = collection.MustCollectionWithID([]model.Line{
		{ID: "A", Name: "Line A", NetworkID: "rer", CommercialModeID: "2"},
		{ID: "B", Name: "Line B", NetworkID: "rer", CommercialModeID: "2"},
	})
	c.Routes = collection.MustCollectionWithID([]model.Route{
		{ID: "A_fwd", DirectionType: "forward", LineID: "A"},
		{ID: "A_bwd", DirectionType: "backward", LineID: "A"},
		{ID: "B_fwd", DirectionType: "forward", LineID: "B"},
	})

	m, err := transitgo.NewModel(c)
	if err != nil {
		log.Fatal(err)
	}

	lineA, _ := c.Lines.Lookup("A")
	for idx := range m.LinesToRoutes().Forward(collection.NewIdxSet(lineA)).All() {
		fmt.Println(c.Routes.Get(idx).ID)
	}
	// Output:
	// A_fwd
	// A_bwd
}

// Example_backward demonstrates walking a relation against its
// direction.
func Example_backward() {
	c := transitgo.NewCollections()
	c.Networks = collection.MustCollectionWithID([]model.Network{
		{ID: "n1", Name: "My network"},
	})
	c.CommercialModes = collection.MustCollectionWithID([]model.CommercialMode{
		{ID: "3", Name: "Bus"},
	})
	c.Lines = collection.MustCollectionWithID([]model.Line{
		{ID: "L1", NetworkID: "n1", CommercialModeID: "3"},
	})
	c.Routes = collection.MustCollectionWithID([]model.Route{
		{ID: "R1", LineID: "L1"},
		{ID: "R2", LineID: "L1"},
	})

	m, err := transitgo.NewModel(c)
	if err != nil {
		log.Fatal(err)
	}

	r2, _ := c.Routes.Lookup("R2")
	lines := m.LinesToRoutes().Backward(collection.NewIdxSet(r2))
	for idx := range lines.All() {
		fmt.Println(c.Lines.Get(idx).ID)
	}
	// Output: L1
}

// Example_gtfs demonstrates loading a GTFS feed and querying a composed
// relation.
func Example_gtfs() {
	fsys := fstest.MapFS{
		"agency.txt": &fstest.MapFile{Data: []byte(
			"agency_id,agency_name,agency_url,agency_timezone\n" +
				"a1,My agency,http://example.com,Europe/Paris\n")},
		"stops.txt": &fstest.MapFile{Data: []byte(
			"stop_id,stop_name,stop_lat,stop_lon,location_type,parent_station\n" +
				"SA1,Center,48.0,2.0,1,\n" +
				"SP1,Center north,48.0,2.0,0,SA1\n" +
				"SP2,Center south,48.1,2.1,0,SA1\n")},
		"routes.txt": &fstest.MapFile{Data: []byte(
			"route_id,agency_id,route_short_name,route_long_name,route_type\n" +
				"route_1,a1,1,My line 1,3\n")},
		"trips.txt": &fstest.MapFile{Data: []byte(
			"trip_id,route_id,direction_id,service_id\n" +
				"trip_1,route_1,0,service_1\n")},
		"stop_times.txt": &fstest.MapFile{Data: []byte(
			"trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
				"trip_1,06:00:00,06:00:30,SP1,1\n" +
				"trip_1,06:10:00,06:10:30,SP2,2\n")},
	}

	m, err := gtfs.Read(fsys, gtfs.WithLogger(transitgo.NoopLogger()))
	if err != nil {
		log.Fatal(err)
	}

	line, _ := m.Lines.Lookup("route_1")
	stops := m.LinesToStopPoints().Forward(collection.NewIdxSet(line))
	fmt.Printf("line route_1 serves %d stop points\n", stops.Len())
	// Output: line route_1 serves 2 stop points
}
