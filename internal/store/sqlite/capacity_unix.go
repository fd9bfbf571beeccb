//go:build unix

package sqlite

import "golang.org/x/sys/unix"

// availableBytes returns the free space on the filesystem containing dir.
func availableBytes(dir string) (int64, bool) {
	var st unix.Statfs_t
	if err := unix.Statfs(dir, &st); err != nil {
		return 0, false
	}
	return int64(st.Bavail) * int64(st.Bsize), true
}
