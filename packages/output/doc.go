// Package output renders run summaries for people and machines.
//
// Supported formats:
//   - Console: Human-readable colored terminal output
//   - JUnit: JUnit XML for CI integration (also selectable as "xml")
//   - JSON: Machine-readable verbatim summary serialization
//
// Every reporter is a pure function of the summary; formatting the same
// summary twice produces identical bytes.
package output
