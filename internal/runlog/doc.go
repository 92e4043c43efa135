// Package runlog records every pipeline run in a small SQLite database so
// past exports and match passes can be inspected after the fact: when they
// ran, over which files, and how many cards were found, missing, or in
// conflict.
package runlog
