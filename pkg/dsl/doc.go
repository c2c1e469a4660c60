/*
Package dsl provides a fluent builder for declaring status maps in Go code.

It is an alternative to YAML, JSON or HCL definition files when a workflow is
known at compile time. Statuses keep their declaration order, which becomes
the enumeration order of the resulting map.

Example usage:

	b := dsl.New().Named("orders")

	b.Status("pending").To("processing")
	b.Status("processing").To("approved", "rejected")
	b.Status("approved").To("processed")
	b.Terminal("rejected")
	b.Terminal("processed")

	orders, err := b.Build()
*/
package dsl
