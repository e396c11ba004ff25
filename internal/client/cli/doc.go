// Package cli provides the interactive WeatherFace command-line client.
//
// It wires configuration, the local encrypted store, the auth and weather
// services and an interactive REPL. Typical flow: sign up (or sign in to the
// account already on this device), look up the weather for a roster city or
// any city by name, and edit the roster.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, runREPL and RenderWeather for details.
package cli
