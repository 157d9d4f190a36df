// Package inspector layers derived key operations on top of a registry
// lookup: glob-pattern listings with type and TTL probing, per-key detail
// fetches shaped by data type, and batched deletes.
//
// Listings materialize the full candidate set for a pattern before sorting
// and paginating. That keeps the contract simple but intentionally does not
// scale past single-node, non-huge keyspaces.
package inspector
