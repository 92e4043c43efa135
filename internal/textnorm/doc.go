// Package textnorm provides the canonical text normalization used across the
// checklist, filename, and matching code.
//
// All free text in the system (column headers, cell values, image filenames)
// passes through Normalize before comparison, so tokens from any source
// compare equal. Tokenization and the edit-similarity ratio used by the fuzzy
// matching stage also live here.
package textnorm
