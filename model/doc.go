// Package model defines the transit domain objects stored in the
// collections of a transitgo Model.
//
// # Entity Types
//
//   - Contributor, Dataset: provenance of the data
//   - Network, Company: operators
//   - CommercialMode, PhysicalMode: transport modes
//   - Line, Route, VehicleJourney: the service hierarchy
//   - StopArea, StopPoint: the stop hierarchy
//
// # Value Types
//
//   - Coord: WGS84 coordinate
//   - RGB: hex-encoded color
//   - TimeOfDay: seconds since midnight, may exceed 24h
//   - Code: external key/value code attached to an entity
//
// Every entity carries a stable external identifier exposed through
// GetID, which is how collections index them and how relations resolve
// foreign keys. Entities never hold direct references to each other:
// cross-entity links are plain id strings resolved at model build time.
package model
