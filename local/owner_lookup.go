package local

import "os/user"

// lookupUser and lookupGroup resolve numeric ids to names via the stdlib
// os/user package. No third-party library in the corpus offers uid/gid
// name resolution; os/user is the correct idiomatic choice here (see
// DESIGN.md).
func lookupUser(uid uint32) (string, bool) {
	u, err := user.LookupId(uidString(uid))
	if err != nil {
		return "", false
	}
	return u.Username, true
}

func lookupGroup(gid uint32) (string, bool) {
	g, err := user.LookupGroupId(uidString(gid))
	if err != nil {
		return "", false
	}
	return g.Name, true
}
