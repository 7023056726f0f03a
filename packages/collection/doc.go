// Package collection defines the canonical request tree the runner walks.
//
// It provides:
//   - The Collection/Folder/Request model with dual-shape header input
//   - Pre-order flattening into execution order
//   - Normalization of raw Postman v2.1 exports into the canonical tree
//   - Schema validation of canonical collection documents
package collection
