// Package milp defines a small mixed-integer linear program representation
// and the Solver interface the scheduling engine hands problems to. The
// formulation lives in core/plan; solving is delegated to an infra backend.
package milp
