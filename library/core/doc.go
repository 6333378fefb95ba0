// Package core contains the lending domain: entities, the loan state machine, date and phone
// normalization, domain events and the typed domain errors.
//
// Nothing in here touches storage or transport. Feature handlers load records through the
// recordstore, convert them into core entities, let the pure functions in this package (and in
// their own Decide functions) make the business decision, and persist the result.
package core
