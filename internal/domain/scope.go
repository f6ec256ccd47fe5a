package domain

// Scope selects which owners' rows an operation sees. It is resolved once
// per request and passed explicitly into every query; nothing in the core
// reads an ambient "shared view" flag.
type Scope struct {
	OwnerIDs []string
}

// PersonalScope covers only the acting user's rows.
func PersonalScope(userID string) Scope {
	return Scope{OwnerIDs: []string{userID}}
}

// SharedScope covers the rows of every member of a shared household.
func SharedScope(memberIDs []string) Scope {
	return Scope{OwnerIDs: memberIDs}
}

// Contains reports whether the scope includes ownerID.
func (s Scope) Contains(ownerID string) bool {
	for _, id := range s.OwnerIDs {
		if id == ownerID {
			return true
		}
	}

	return false
}
