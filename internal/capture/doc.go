// Package capture replays controller responses saved on disk.
//
// A capture directory looks like:
//
//	captures/
//	  directory.yaml        nodes and groups known to the controller
//	  nodes/<id>.xml        property document returned for a node
//	  notes/<id>.xml        notes document returned for a node
//
// Spaces in node ids are written as underscores in file names. Commands are
// accepted for every node that has a property document and are recorded so
// callers can inspect what would have been sent.
package capture
