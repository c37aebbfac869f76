// Package polcat builds a catalog of the documents published in the
// Treasury Board policy suite. It queries the suite's index under both of
// its partitioning schemes (alphabetical and by document type), classifies
// every document link it finds and merges the results into a single
// catalog keyed by document ID.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/).
package polcat
