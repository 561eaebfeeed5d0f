// Package comm is the process lifecycle gate for the toolkit's distributed
// layer.
//
// Initialize runs once per process, before anything that needs the shared
// reduction operators, and returns the Session that owns them. Finalize
// releases the session at shutdown. The pair is strictly ordered and not
// reentrant: a second Initialize without an intervening Finalize fails.
//
// The Min and Max operators compare by real part, so in a complex-step
// build the perturbation of the selected entry travels with it.
package comm
