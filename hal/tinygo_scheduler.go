//go:build tinygo && baremetal && !scheduler.cores

package hal

// The render scheduler and the flush loop never yield, so they need one
// core each. Rebuild with -scheduler=cores.
var _ = requiresSchedulerCores
