// Package callable lets user callbacks opt in or out of receiving the
// validation context.
//
// The preferred way is explicit: wrap a one-argument check in PredicateFunc
// or a two-argument check in ContextPredicateFunc. Both satisfy Predicate
// and are called the same way by validators.
//
// For callbacks whose shape is only known at runtime (for example functions
// registered by name in a schema definition file), MakeContextAware inspects
// the declared parameter count and drops the trailing context argument when
// the callback does not declare it. CallWithContext combines adaptation and
// invocation.
package callable
