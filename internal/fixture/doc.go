// Package fixture serves a local copy of the Rick and Morty character API.
//
// The catalog is held in a btree keyed by id and seeded from an embedded
// dataset, so the client and its tests have a real HTTP peer with the same
// paging envelope, error bodies and absolute next/prev links as the public
// service. FaultInjection can slow requests down or fail every Nth listing to
// exercise retry paths.
package fixture
