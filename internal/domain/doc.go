// Package domain contains the learning entities shared by every layer: learning
// items with their scheduling state, the per-learner progress aggregate and the
// error taxonomy. Pure scheduling, streak and session math live in the srs,
// streak and session subpackages.
package domain
