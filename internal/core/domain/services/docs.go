// Package services holds the domain services of the handoff protocol: the
// geographic proximity engine, the adjudicator that settles a record once both
// parties have attested, and the age-verification gate.
package services
