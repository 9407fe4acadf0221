// Package guard holds ConstructorGuard, used by domain types to reject zero values.
package guard
