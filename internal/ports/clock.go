package ports

import "time"

// Clock abstracts wall time and scheduling so engines can be driven by a
// manual clock in tests.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc runs f once after d. The returned func cancels it and
	// reports whether the call was stopped before running.
	AfterFunc(d time.Duration, f func()) (stop func() bool)

	// NewDriver creates a stopped repeating driver.
	NewDriver(interval time.Duration) Driver
}

// Driver is a cancellable repeating tick. Each engine owns one.
type Driver interface {
	// Start begins calling fn every interval. Starting an active driver
	// is a no-op.
	Start(fn func(time.Time))

	// Stop halts the driver. It never waits for an in-flight tick, so it
	// is safe to call from inside fn.
	Stop()

	// Active reports whether the driver is started.
	Active() bool
}
