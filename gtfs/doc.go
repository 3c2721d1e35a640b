// Package gtfs ingests GTFS feeds into a transitgo Model.
//
// The reader is deliberately lenient at the field level (missing
// optional columns, defaulted agency ids, synthesized parent stop
// areas) and strict at the relational level: once the collections are
// assembled, model construction verifies every cross-entity reference
// and fails on the first unresolved id.
//
// Feeds can be read from any fs.FS (Read), an extracted directory
// (ReadDir) or a zip archive (ReadZip):
//
//	m, err := gtfs.ReadZip("feed.zip",
//	    gtfs.WithConfig("config.json"),
//	    gtfs.WithLogger(transitgo.NewTextLogger(slog.LevelDebug)),
//	)
package gtfs
