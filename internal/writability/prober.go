// Package writability answers whether the current process may write to a directory.
package writability

import "golang.org/x/sys/unix"

// Prober reports whether path is writable by the current process.
// Implementations must not modify the filesystem and collapse every failure
// (missing path, permission denied, I/O error) to false.
type Prober interface {
	Writable(path string) bool
}

// ProberFunc adapts an ordinary function to the Prober interface.
type ProberFunc func(path string) bool

func (f ProberFunc) Writable(path string) bool { return f(path) }

// AccessProber checks writability with access(2) and W_OK.
type AccessProber struct{}

func (AccessProber) Writable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}

// Static returns a Prober that always answers v.
func Static(v bool) Prober {
	return ProberFunc(func(string) bool { return v })
}
