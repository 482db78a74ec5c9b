// Package services contains domain services for the storefront fulfillment
// workflow. Domain services hold business logic that does not naturally
// belong to a single aggregate.
//
// The package currently provides the SignatureVerifier, which authenticates
// payment gateway callbacks before any order state is touched.
package services
