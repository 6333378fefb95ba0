// Package consistency contains the guards that enforce invariants spanning more than one aggregate.
//
// Guards only read, they run inside the caller's unit of work so that the check and the following
// write see the same snapshot. A failing Require* guard returns a typed error from library/core.
package consistency
