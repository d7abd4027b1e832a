//go:build linux

package proc

import "golang.org/x/sys/unix"

// cpuCount honours the scheduler affinity mask, which may be narrower than
// the machine's CPU count inside containers or under taskset.
func cpuCount() int {
	var set unix.CPUSet
	if err := unix.SchedGetaffinity(0, &set); err != nil {
		return numCPU()
	}
	return set.Count()
}
