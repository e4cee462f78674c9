// Package domain defines core data models and interfaces shared across the app.
// It contains plain types (wire/state), contracts (interfaces) and the closed
// set of sentinel errors every layer maps its failures onto.
package domain
