// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// The digest run is: discover, order naturally, extract and summarise
// each file, merge once, append to the index once, then record history.
package services
