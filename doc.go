// Package transitgo provides an in-memory relational model for public
// transit data.
//
// A Model is built once from a set of id-indexed collections and then
// queried read-only. Relationships between object types are expressed
// as typed relations over arena-style handles rather than as pointers
// between objects, so the object graph stays acyclic and the built
// model can be shared across goroutines without synchronization.
//
// # Quick Start
//
// Load a GTFS feed and navigate it:
//
//	m, _ := gtfs.ReadDir("./feed")
//	lineIdx, _ := m.Lines.Lookup("route_1")
//	stops := m.LinesToStopPoints().Forward(collection.NewIdxSet(lineIdx))
//	for idx := range stops.All() {
//	    fmt.Println(m.StopPoints.Get(idx).Name)
//	}
//
// Or assemble collections by hand and build the model directly:
//
//	c := transitgo.NewCollections()
//	c.StopAreas, _ = collection.NewCollectionWithID(areas)
//	c.StopPoints, _ = collection.NewCollectionWithID(points)
//	m, err := transitgo.NewModel(c)
//
// # Relations
//
// Direct parent/child links (network to lines, stop area to stop
// points, ...) are OneToMany relations checked for referential
// integrity at build time. Multi-hop links are derived by composition:
// lines to stop points chains lines through routes and vehicle
// journeys, and lines to physical modes joins two relations that
// converge on the shared vehicle journey domain. Every relation
// answers forward and backward set projections with deterministic,
// handle-ordered results.
package transitgo
