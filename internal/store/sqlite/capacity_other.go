//go:build !unix

package sqlite

// availableBytes reports no quota information on platforms without Statfs.
func availableBytes(dir string) (int64, bool) {
	return 0, false
}
