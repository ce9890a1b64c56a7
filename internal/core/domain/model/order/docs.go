// Package order contains the Order aggregate and its lifecycle state machine.
//
// An order moves through the statuses
//
//	Pending -> Accepted -> PickedUp -> InTransit -> Delivered
//
// with Cancelled reachable from Pending, Accepted and PickedUp.
// Delivered and Cancelled are terminal. Which actor role may drive which
// edge is encoded in Role.MayTransition; the edge legality itself is encoded
// in the Status transition table. Both checks happen inside the aggregate so
// no caller can bypass them.
package order
