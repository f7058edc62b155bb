package slumber

// Runnable is the interface implemented by systems.
// The scheduler injects the system's fields and calls Run once per world per
// tick the system is due in.
type Runnable interface {
	Run()
}
