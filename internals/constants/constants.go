package constants

// Role yang dikenal oleh middleware auth.
const (
	RoleAdmin    = "admin"
	RolePimpinan = "pimpinan"
	RoleMitra    = "mitra"
)

// AdminAndAbove dipakai guard group /api/a.
var AdminAndAbove = []string{RoleAdmin, RolePimpinan}
