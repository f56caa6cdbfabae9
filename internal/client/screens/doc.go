// Package screens holds the view-models behind the terminal UI.
//
// A screen keeps its own form fields and a Status that moves from Idle to
// Submitting and then to Success or Error. Submit may be called again at any
// time. Render writes the current state as plain text. Nothing typed into a
// screen outlives it: a new screen is built for every visit.
package screens
