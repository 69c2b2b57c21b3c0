package utils

// DualView pairs an authoritative host-side buffer with an execution-side
// mirror. Kernels read the Exec view; setup code mutates Host, marks it
// modified, then calls Sync before any kernel can observe the change.
// The copy is always explicit, never implicit.
type DualView[T any] struct {
	Host, Exec []T
	hostDirty  bool
}

func NewDualView[T any](n int) (dv *DualView[T]) {
	dv = &DualView[T]{
		Host: make([]T, n),
		Exec: make([]T, n),
	}
	return
}

// Modify marks the host view as ahead of the exec view
func (dv *DualView[T]) Modify() {
	dv.hostDirty = true
}

// Sync copies host to exec if the host view has been modified
func (dv *DualView[T]) Sync() {
	if dv.hostDirty {
		copy(dv.Exec, dv.Host)
		dv.hostDirty = false
	}
}

func (dv *DualView[T]) InSync() bool {
	return !dv.hostDirty
}
