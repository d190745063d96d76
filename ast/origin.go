package ast

// OriginKind discriminates the alternatives of [UseOrigin].
type OriginKind uint8

const (
	// OriginLocal resolves a use against the registry's local filesystem
	// prefabs plus the embedded standard library. The only origin this
	// compiler implements (spec §6, §9).
	OriginLocal OriginKind = iota

	// OriginSite is a reserved, unimplemented loader origin.
	OriginSite

	// OriginUser is a reserved, unimplemented loader origin.
	OriginUser
)

// String returns a human-readable name for the origin kind.
func (k OriginKind) String() string {
	switch k {
	case OriginLocal:
		return "Local"
	case OriginSite:
		return "Site"
	case OriginUser:
		return "User"
	default:
		return "unknown"
	}
}

// UseOrigin is the sum Site(string) | User(string) | Local carried by a
// [Use] declaration, selecting which loader resolves the referenced
// model name. Only Local is implemented (spec §9); Site and User are
// reserved and always fail with compileerr.UnsupportedOrigin.
type UseOrigin struct {
	kind OriginKind
	name string
}

// LocalOrigin builds the Local origin.
func LocalOrigin() UseOrigin { return UseOrigin{kind: OriginLocal} }

// SiteOrigin builds a reserved Site(name) origin.
func SiteOrigin(name string) UseOrigin { return UseOrigin{kind: OriginSite, name: name} }

// UserOrigin builds a reserved User(name) origin.
func UserOrigin(name string) UseOrigin { return UseOrigin{kind: OriginUser, name: name} }

// Kind reports which alternative this origin is.
func (o UseOrigin) Kind() OriginKind { return o.kind }

// Name returns the payload string for Site/User origins; empty for
// Local.
func (o UseOrigin) Name() string { return o.name }
