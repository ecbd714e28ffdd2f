// Package urlbuilder turns an operation kind, a type name and an entity into
// a request descriptor using a mapping.Config.
//
// The pipeline for one call is:
//
//	rewrite -> translate -> insert -> compose path -> append -> query -> body -> method
//
// Builders are immutable after New and safe for concurrent use. Every call
// returns a fresh Request.
package urlbuilder
