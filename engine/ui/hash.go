package ui

// ID identifies windows, modals and widgets. Zero means "none".
type ID uint32

const (
	fnvOffset = 2166136261
	fnvPrime  = 16777619
)

// hashString is 32-bit FNV-1a, inlined so it never allocates.
func hashString(s string) uint32 {
	return hashSeed(fnvOffset, s)
}

func hashSeed(h uint32, s string) uint32 {
	for i := 0; i < len(s); i++ {
		h ^= uint32(s[i])
		h *= fnvPrime
	}
	return h
}

// HashID is the stable id of a name, independent of any scope.
func HashID(name string) ID {
	return nonZero(hashString(name))
}

// ID hashes name inside the open window, so equal labels in different
// windows do not collide.
func (ctx *Context) ID(name string) ID {
	seed := uint32(fnvOffset)
	if ctx != nil && ctx.win != nil {
		seed ^= uint32(ctx.win.id)
		seed *= fnvPrime
	}
	return nonZero(hashSeed(seed, name))
}

func nonZero(h uint32) ID {
	if h == 0 {
		return 1
	}
	return ID(h)
}
