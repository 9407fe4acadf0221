// Package shipment holds the local view of a shipment leg that the handoff protocol
// settles: who may attest for it, where it was scheduled to be handed over and
// which carrier moves it.
//
// A Leg is created from dispatch events and ends either Delivered (both parties
// confirmed in proximity) or Returned (retries exhausted).
package shipment
