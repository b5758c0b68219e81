// Package node mirrors a single device exposed by an ISY controller.
//
// A Node keeps the device's primary state (the "ST" property), its unit of
// measure and precision, and any auxiliary properties the controller reports.
// State is reconciled either by polling the controller after a command (pull
// mode) or by trusting the level the command is expected to produce (push
// mode), leaving an external event stream to correct drift.
//
// The network transport and the collection that owns nodes are not part of
// this package; they are consumed through the Connection and Directory
// interfaces.
package node
