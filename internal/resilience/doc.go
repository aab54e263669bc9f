// Package resilience groups fault tolerance helpers.
//
// The circuitbreaker subpackage guards the database transaction boundary so
// that a failing database is rejected fast instead of queueing requests.
// Domain outcomes such as a missing question or a refused deletion never
// count as failures.
//
//	cb := circuitbreaker.New(circuitbreaker.DBConfig())
//	tx := circuitbreaker.NewTransactor(db.NewTransactor(database), cb)
package resilience
