// Package wikiwalk explores the "Getting to Philosophy" Wikipedia
// phenomenon: starting from an arbitrary article, it repeatedly follows
// the first qualifying link in the article body until the target article
// is reached, a loop cannot be escaped, or the iteration budget runs out.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/).
package wikiwalk
