// Package checklist turns a tabular card checklist into an enumerated list
// of card records.
//
// The flow is: ClassifyHeaders infers typed variant descriptors from the raw
// column headers, ValidateTable checks the cell data against them, and
// Expand merges duplicate rows and emits one Card per unit of every variant,
// Base, and custom-label count. All inputs are fully materialized; nothing
// in this package does I/O.
package checklist
