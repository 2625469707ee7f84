// Package service contains the application use cases built on the domain
// packages and the store interfaces.
//
// ItemService covers capture, the inbox, promotion and deletion. LearnerService
// owns the progress aggregate outside of reviews: creation, settings, streak
// freezes and the dashboard. SessionService assembles study queues. Reviews
// live in the review subpackage.
//
// Services receive their stores and collaborators through constructors, read
// the clock once per operation and run every multi-write inside
// store.Transactor.WithinTx. Storage failures that do not already carry a domain
// sentinel are reported as domain.ErrDataUnavailable.
package service
