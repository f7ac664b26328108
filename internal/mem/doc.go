// Package mem provides owned buffer allocation.
//
// # Ownership
//
// A Buffer is held by exactly one container. Replacing it follows a fixed
// order: allocate the successor, copy, then Free the predecessor. If the
// allocation fails the predecessor is still installed and untouched, so a
// failed growth never leaves two live buffers or a dangling one.
//
// # Budgets
//
// Every allocation is charged to an optional resource.Controller and
// released by Free. Allocations beyond MaxBytes fail with ErrTooLarge
// instead of reaching the runtime allocator.
package mem
