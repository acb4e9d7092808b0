package schema

import (
	"encoding/json"

	"github.com/google/uuid"
)

// OwnerType says whether an owner reference points at a user or a team.
type OwnerType string

const (
	OwnerTypeUser OwnerType = "user"
	OwnerTypeTeam OwnerType = "team"
)

var ownerTypeNames = []string{string(OwnerTypeUser), string(OwnerTypeTeam)}

// ParseOwnerType coerces a wire string into an OwnerType.
func ParseOwnerType(s string) (OwnerType, error) {
	if err := inEnum("type", s, ownerTypeNames); err != nil {
		return "", err
	}
	return OwnerType(s), nil
}

// AutoOwnerID is the sentinel a caller supplies as the identifier to request
// a freshly generated one.
const AutoOwnerID = "auto"

// Owner is a reference to a user or team in the catalog, by name and/or
// durable identifier. The catalog resolves either; the wrapper guarantees a
// reference is never fully empty by minting an identifier when neither is
// usable (see NewOwner). References are immutable once constructed.
type Owner struct {
	ID                 string    `json:"id,omitempty"`
	Name               string    `json:"name,omitempty"`
	Type               OwnerType `json:"type"`
	FullyQualifiedName string    `json:"fullyQualifiedName,omitempty"`
}

// deriveOwnerID applies the identity rule for owner references:
//
//   - the sentinel "auto" is always replaced with a fresh random identifier
//   - when both id and name are empty, a fresh identifier is minted so the
//     reference is never silently ambiguous
//   - otherwise the caller's id is used verbatim, including staying empty
//     when a name is present
//
// Minted identifiers are 128-bit random UUIDs rendered as strings.
func deriveOwnerID(name, id string) string {
	switch {
	case id == AutoOwnerID:
		return uuid.NewString()
	case id == "" && name == "":
		return uuid.NewString()
	default:
		return id
	}
}

// NewOwner constructs a validated owner reference, applying the identifier
// derivation rule before validation.
func NewOwner(name, id string, ownerType OwnerType) (Owner, error) {
	o := Owner{
		ID:   deriveOwnerID(name, id),
		Name: name,
		Type: ownerType,
	}
	if err := o.Validate(); err != nil {
		return Owner{}, err
	}
	return o, nil
}

// NewResolvableOwner constructs an owner reference that always carries a
// freshly minted identifier, even when a name is supplied. Used when the
// caller wants a guaranteed machine-resolvable reference.
func NewResolvableOwner(ownerType OwnerType, name string) (Owner, error) {
	o := Owner{
		ID:   uuid.NewString(),
		Name: name,
		Type: ownerType,
	}
	if err := o.Validate(); err != nil {
		return Owner{}, err
	}
	return o, nil
}

// Validate checks the reference invariants: type is mandatory and closed to
// {user, team}, and at least one of name and id must be present.
func (o Owner) Validate() error {
	if o.Type == "" {
		return &ValidationError{Field: "type", Reason: ReasonMissingRequired}
	}
	if err := inEnum("type", string(o.Type), ownerTypeNames); err != nil {
		return err
	}
	if o.Name == "" && o.ID == "" {
		return &ValidationError{
			Field:  "id",
			Reason: ReasonBothNameAndIDMissing,
			Detail: "either name or id required",
		}
	}
	return nil
}

// UnmarshalJSON decodes an owner reference from its wire shape, applying the
// identifier derivation rule and validating, so deserialized references obey
// the same invariants as constructed ones.
func (o *Owner) UnmarshalJSON(data []byte) error {
	type wire Owner
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	w.ID = deriveOwnerID(w.Name, w.ID)
	decoded := Owner(w)
	if err := decoded.Validate(); err != nil {
		return err
	}
	*o = decoded
	return nil
}
