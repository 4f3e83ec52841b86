package util

import (
	"fmt"
	"strconv"
	"strings"
)

type Semver struct {
	Major      int
	Minor      int
	Patch      int
	Beta       bool
	Alpha      bool
	Prerelease int
}

func Parse(semver string) (Semver, error) {
	s := Semver{}
	semver = strings.TrimPrefix(strings.TrimSpace(semver), "v")

	core, pre, hasPre := strings.Cut(semver, "-")
	split := strings.Split(core, ".")
	if len(split) != 3 {
		return Semver{}, fmt.Errorf("invalid version %q: want major.minor.patch", semver)
	}

	nums := make([]int, 3)
	for i, part := range split {
		n, err := strconv.Atoi(part)
		if err != nil {
			return Semver{}, fmt.Errorf("invalid version %q: %w", semver, err)
		}
		nums[i] = n
	}
	s.Major, s.Minor, s.Patch = nums[0], nums[1], nums[2]

	if hasPre {
		kind, num, _ := strings.Cut(pre, ".")
		switch kind {
		case "beta":
			s.Beta = true
		case "alpha":
			s.Alpha = true
		default:
			return Semver{}, fmt.Errorf("invalid prerelease type: %s", pre)
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return Semver{}, fmt.Errorf("invalid prerelease %q: %w", pre, err)
		}
		s.Prerelease = n
	}

	return s, nil
}

func (s Semver) String() string {
	str := strconv.Itoa(s.Major) + "." + strconv.Itoa(s.Minor) + "." + strconv.Itoa(s.Patch)
	if s.Beta {
		str += "-beta." + strconv.Itoa(s.Prerelease)
	} else if s.Alpha {
		str += "-alpha." + strconv.Itoa(s.Prerelease)
	}
	return str
}

// stage orders prereleases before the release they lead up to.
func (s Semver) stage() int {
	switch {
	case s.Alpha:
		return 0
	case s.Beta:
		return 1
	}
	return 2
}

// Compare returns -1, 0 or 1 when s is lower than, equal to or higher than o.
func (s Semver) Compare(o Semver) int {
	pairs := [][2]int{
		{s.Major, o.Major},
		{s.Minor, o.Minor},
		{s.Patch, o.Patch},
		{s.stage(), o.stage()},
		{s.Prerelease, o.Prerelease},
	}
	for _, p := range pairs {
		if p[0] < p[1] {
			return -1
		}
		if p[0] > p[1] {
			return 1
		}
	}
	return 0
}

// Satisfies reports whether s matches cmp. Supported forms are an exact
// version, ~x.y.z (same minor), ^x.y.z (same major), >x.y.z, >=x.y.z,
// <x.y.z and <=x.y.z.
func (s Semver) Satisfies(cmp string) (bool, error) {
	cmp = strings.TrimSpace(cmp)
	op := ""
	for _, prefix := range []string{">=", "<=", "~", "^", ">", "<"} {
		if strings.HasPrefix(cmp, prefix) {
			op = prefix
			cmp = cmp[len(prefix):]
			break
		}
	}

	c, err := Parse(cmp)
	if err != nil {
		return false, err
	}

	d := s.Compare(c)
	switch op {
	case "~":
		return d >= 0 && s.Major == c.Major && s.Minor == c.Minor, nil
	case "^":
		return d >= 0 && s.Major == c.Major, nil
	case ">":
		return d > 0, nil
	case ">=":
		return d >= 0, nil
	case "<":
		return d < 0, nil
	case "<=":
		return d <= 0, nil
	}
	return d == 0, nil
}
