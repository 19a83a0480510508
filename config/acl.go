package config

// AccessLevel is the minimum source visibility that gets documented.
type AccessLevel int

const (
	Private AccessLevel = iota
	Internal
	Public
)

func (l AccessLevel) String() string {
	switch l {
	case Private:
		return "private"
	case Internal:
		return "internal"
	case Public:
		return "public"
	}
	return "unknown"
}

// ParseAccessLevel maps exactly the three documented tokens. Any other input
// reports ok=false and the caller keeps whatever value it already had. That
// permissive fallback is long-standing behavior: `--min-acl bogus` silently
// documents public declarations only. Tightening it to an error would be a
// behavior change, so it stays until product intent says otherwise.
func ParseAccessLevel(raw string) (AccessLevel, bool) {
	switch raw {
	case "private":
		return Private, true
	case "internal":
		return Internal, true
	case "public":
		return Public, true
	}
	return Public, false
}
