//go:build unix

package dispatch

import "syscall"

// detachedSysProcAttr starts the child in its own session so terminal
// signals sent to the parent's group do not propagate to it.
func detachedSysProcAttr() *syscall.SysProcAttr {
	return &syscall.SysProcAttr{Setsid: true}
}
