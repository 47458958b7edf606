//go:build !unix

package dispatch

import "syscall"

func detachedSysProcAttr() *syscall.SysProcAttr {
	return nil
}
