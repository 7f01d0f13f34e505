// Package uri defines the structured resource identifier used to address
// bus entities and to scope listener delivery. Validation rules (what makes
// a URI a valid publish topic, RPC method, and so on) live with the
// validator collaborator, not here.
package uri

import "fmt"

// Wildcard field values accepted in listener filters.
const (
	WildcardAuthority = "*"
	WildcardEntityID  = uint32(0xFFFF_FFFF)
	WildcardVersion   = uint32(0xFF)
	WildcardResource  = uint32(0xFFFF)
)

// UUri addresses one resource of one versioned entity on one authority.
// The zero value is the empty URI.
type UUri struct {
	AuthorityName  string
	UeID           uint32
	UeVersionMajor uint32
	ResourceID     uint32
}

// IsEmpty reports whether every field holds its zero value.
func (u UUri) IsEmpty() bool {
	return u.AuthorityName == "" && u.UeID == 0 && u.UeVersionMajor == 0 && u.ResourceID == 0
}

// Equal compares field-by-field, with no wildcard awareness.
func (u UUri) Equal(o UUri) bool { return u == o }

// Matches reports whether the concrete URI u satisfies the filter f.
// Wildcard fields in the filter match any value.
func (u UUri) Matches(f UUri) bool {
	if f.AuthorityName != WildcardAuthority && f.AuthorityName != u.AuthorityName {
		return false
	}
	if f.UeID != WildcardEntityID && f.UeID != u.UeID {
		return false
	}
	if f.UeVersionMajor != WildcardVersion && f.UeVersionMajor != u.UeVersionMajor {
		return false
	}
	if f.ResourceID != WildcardResource && f.ResourceID != u.ResourceID {
		return false
	}
	return true
}

// Any returns a filter matching every URI.
func Any() UUri {
	return UUri{
		AuthorityName:  WildcardAuthority,
		UeID:           WildcardEntityID,
		UeVersionMajor: WildcardVersion,
		ResourceID:     WildcardResource,
	}
}

func (u UUri) String() string {
	return fmt.Sprintf("//%s/%X/%X/%X", u.AuthorityName, u.UeID, u.UeVersionMajor, u.ResourceID)
}
