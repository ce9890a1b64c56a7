// Package payment contains the Payment aggregate: the commission record the
// operator keeps for every delivered order. At most one payment exists per
// order, created the first time the order reaches DELIVERED with a driver
// assigned. The amount is a fixed percentage of the order price.
package payment
