// Package ageverification records the outcome of the external age check that
// regulated shipments must pass before a handoff can settle.
package ageverification
