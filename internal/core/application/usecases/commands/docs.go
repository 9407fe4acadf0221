// Package commands contains the write side of the handoff service. Each command
// is a guarded value built by its constructor and executed by a handler that
// owns one unit of work.
//
// Handlers that touch a confirmation record take the record lock keyed by the
// shipment leg before opening the transaction, so at most one attestation,
// unavailability report or sweep step mutates a record at a time.
package commands
