// Package attrs reconciles container attributes: the reserved system
// properties interpreted by the meta2 services and the free-form user
// properties stored next to them.
package attrs

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Canonical system property keys of a container.
const (
	SysAccount     = "sys.account"
	SysBaseName    = "sys.name"
	SysUserName    = "sys.user.name"
	SysCtime       = "sys.m2.ctime"
	SysUsage       = "sys.m2.usage"
	SysObjects     = "sys.m2.objects"
	SysQuota       = "sys.m2.quota"
	SysPolicy      = "sys.m2.policy.storage"
	SysMaxVersions = "sys.m2.policy.version"
)

// Versioning values interpreted by the meta2 services. Any value below
// VersioningUnlimited also means unlimited, any value above
// VersioningSuspended caps the number of retained versions.
const (
	VersioningUnlimited = -1 // no limit on the number of versions
	VersioningDisabled  = 0  // existing objects cannot be overwritten
	VersioningSuspended = 1  // overwrite allowed, no new version kept
)

type state uint8

const (
	unspecified state = iota
	reset
	value
)

// A Field is a three-state system property value: unspecified (the option
// was not given), reset (back to the namespace default) or a concrete value.
// The remote encoding conflates reset with the empty string; Field keeps the
// distinction explicit until the payload is built.
type Field struct {
	state state
	value string
}

// Unspecified returns the zero Field. A Field declared without an
// initializer is unspecified as well.
func Unspecified() Field {
	return Field{}
}

// Reset returns the Field clearing a property back to the namespace default.
func Reset() Field {
	return Field{state: reset}
}

// String returns a Field carrying a concrete string value.
func String(v string) Field {
	return Field{state: value, value: v}
}

// Int returns a Field carrying a concrete integer value.
func Int(v int64) Field {
	return Field{state: value, value: strconv.FormatInt(v, 10)}
}

// IsSet returns true unless the Field is unspecified.
func (f Field) IsSet() bool {
	return f.state != unspecified
}

// encode returns the remote representation of the Field. Reset encodes as
// the empty string. The second value is false for unspecified fields, which
// must not appear in any payload.
func (f Field) encode() (string, bool) {
	switch f.state {
	case reset:
		return "", true
	case value:
		return f.value, true
	}
	return "", false
}

// An Update carries the attribute changes of a container create, set or
// unset. Properties is the free-form user map and never enters the sys.m2.*
// namespace.
type Update struct {
	Quota         Field
	StoragePolicy Field
	MaxVersions   Field
	Properties    map[string]string
}

// IsZero returns true when the Update carries neither a system change nor a
// user property.
func (u Update) IsZero() bool {
	return !u.Quota.IsSet() && !u.StoragePolicy.IsSet() && !u.MaxVersions.IsSet() && len(u.Properties) == 0
}

// System builds the system property map sent to the service. Only specified
// fields appear, string encoded; reset fields map to the empty string.
func (u Update) System() map[string]string {
	system := make(map[string]string)

	insert := func(key string, f Field) {
		if v, ok := f.encode(); ok {
			system[key] = v
		}
	}
	insert(SysQuota, u.Quota)
	insert(SysPolicy, u.StoragePolicy)
	insert(SysMaxVersions, u.MaxVersions)

	return system
}

// ParseProperty splits a key=value command-line token. It fails on tokens
// without a separator or with an empty key, so that a malformed property
// aborts the command before any remote call.
func ParseProperty(token string) (key, value string, err error) {
	key, value, ok := strings.Cut(token, "=")
	if !ok || key == "" {
		return "", "", errors.Errorf("malformed property %q, expected key=value", token)
	}
	return key, value, nil
}

// ParseProperties parses a list of key=value tokens into a property set.
// A later token overrides an earlier one with the same key.
func ParseProperties(tokens []string) (map[string]string, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	properties := make(map[string]string, len(tokens))
	for _, token := range tokens {
		key, value, err := ParseProperty(token)
		if err != nil {
			return nil, err
		}
		properties[key] = value
	}
	return properties, nil
}
