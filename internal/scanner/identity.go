package scanner

// nodeID identifies a directory independently of the path used to reach it
type nodeID struct {
	dev  uint64
	ino  uint64
	path string // only set where the platform has no file IDs
}

// sameDevice reports whether two nodes live on the same filesystem
func (n nodeID) sameDevice(other nodeID) bool {
	return n.dev == other.dev
}
