// Package queries holds the read side of the handoff service.
//
// Queries never open a transaction. Handlers that need domain behaviour to
// shape their answer (time remaining, link usability) read through the
// repositories of a Reader; plain listings go straight to SQL through GORM.
package queries
