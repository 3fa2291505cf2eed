// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// Services are pure Go with no CGO. Beyond the ports they only use
// google/uuid for document IDs and go-playground/validator for request
// validation.
package services
