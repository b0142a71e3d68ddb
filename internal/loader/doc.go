// Package loader maps reconciled records onto stored entities.
//
// A Load runs inside a single transaction. Natural keys are looked up before
// anything is created, every cross reference must resolve to exactly one row,
// and a missing or ambiguous reference aborts the whole batch.
package loader
