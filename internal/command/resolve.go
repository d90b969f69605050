package command

import "path"

// Resolve resolves target against the current directory into a canonical
// absolute path: no trailing slash (except the root itself), no "." or ".."
// segments, always starting with "/". Resolution is purely syntactic and
// clamps at the root, so "/.." stays "/". It never consults the store.
func Resolve(pwd, target string) string {
	if path.IsAbs(target) {
		return path.Clean(target)
	}
	return path.Join("/", pwd, target)
}
