// Package engine evaluates insurance policy rules against a user profile and
// produces ordered, explained recommendations.
//
// The engine is pure: it performs no I/O, keeps no state between calls, and
// returns identical output for identical input. Fetching, caching, and
// validating rule data belong to the layers around it; the engine only
// evaluates rules already materialized into memory.
package engine
