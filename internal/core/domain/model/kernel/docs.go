// Package kernel holds the value objects shared by every aggregate of the handoff
// domain: identifiers and geographic points. Both are immutable and reject zero values.
package kernel
