// Package termination provides ready-to-use implementations of
// [agentloop.TerminationStrategy] and the combinators for composing them.
//
// Primitive strategies: [NewMaxTurns], [NewTimeout], [NewCostLimit],
// [NewStagnation], and [NewJury] (external-evaluation bridge).
// Combinators: [AllOf] (conjunction) and [AnyOf] (first terminate vote
// wins).
//
// A composed policy can also be loaded from a YAML document with
// [LoadPolicy].
package termination
