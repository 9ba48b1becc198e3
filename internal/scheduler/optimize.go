package scheduler

import "github.com/julianstephens/ballast/internal/logger"

// The optimization passes below run over the assembled schedule after
// placement. Each pass must preserve every already-placed task's window
// constraints: a pass may only move work between windows returned for the
// same horizon, never outside them. They currently leave the schedule
// unchanged and exist as extension points with stable names and call order.

// balanceLoad is the hook for evening out weight across horizon days.
func (s *Scheduler) balanceLoad(days []*dayState) {
	logger.Debug("Optimization pass", "name", "load_balance", "days", len(days))
}

// improveEnergyEfficiency is the hook for nudging high-energy tasks into
// high-energy windows within their day.
func (s *Scheduler) improveEnergyEfficiency(days []*dayState) {
	logger.Debug("Optimization pass", "name", "energy_efficiency", "days", len(days))
}

// enforceDependencyOrder is the hook for reordering same-run placements so
// dependents follow their prerequisites. The dependency filter already keeps
// blocked tasks out of the run, so there is nothing to reorder today.
func (s *Scheduler) enforceDependencyOrder(days []*dayState) {
	logger.Debug("Optimization pass", "name", "dependency_order", "days", len(days))
}
