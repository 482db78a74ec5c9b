// Package fulfillment contains the application services that run after a
// payment has been committed: provisioning a carrier shipment for the order
// and fanning out notifications about it.
//
// Both services are deliberately forgiving. Shipment provisioning failures
// are reported to the caller so the shipment can be deferred and retried;
// notification failures are logged per channel and never propagate.
package fulfillment
