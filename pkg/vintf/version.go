package vintf

import "fmt"

// Version is the major.minor version of a HAL package. Two versions match
// only when both components are equal; there is no range semantics at this
// layer.
type Version struct {
	Major uint32
	Minor uint32
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}
