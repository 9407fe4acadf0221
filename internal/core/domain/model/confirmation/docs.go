// Package confirmation implements the dual-confirmation handoff record.
//
// A Confirmation collects one attestation from the delivery agent and one from
// the customer (or an alternate recipient acting for the customer). Once both
// sides have attested the record is adjudicated exactly once: it either settles
// as BOTH_CONFIRMED or stops in CONFLICT for manual review. Mutual
// unavailability reschedules the attempt a bounded number of times and then
// returns the shipment.
//
// State diagram:
//
//	PENDING -> AGENT_CONFIRMED | CUSTOMER_CONFIRMED | AGENT_UNAVAILABLE | CUSTOMER_UNAVAILABLE
//	        -> BOTH_CONFIRMED | CONFLICT | BOTH_UNAVAILABLE
//	BOTH_UNAVAILABLE -> PENDING (reopened) | RETURNED
//
// BOTH_CONFIRMED and RETURNED are immutable. CONFLICT has no automatic exit.
package confirmation
