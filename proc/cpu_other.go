//go:build !linux

package proc

func cpuCount() int { return numCPU() }
