package vintf

// Arch is the CPU bitness a passthrough HAL library is compiled for.
// Binderized HALs are disambiguated by instance name instead and ignore it.
type Arch string

const (
	Arch32 Arch = "32"
	Arch64 Arch = "64"
)
