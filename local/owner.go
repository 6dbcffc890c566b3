package local

import (
	"strconv"
	"sync"

	"github.com/flexfs/flexfs"
)

// uid/gid -> name lookups go through os/user, which shells out to nss on
// most platforms; cache hits avoid repeating that cost across a large Ls.
var (
	userCacheMu  sync.Mutex
	userCache    = map[uint32]string{}
	groupCacheMu sync.Mutex
	groupCache   = map[uint32]string{}
)

func resolveOwnerGroup(attr *flexfs.Attributes) {
	if attr.UID != nil {
		if name, ok := lookupUserName(*attr.UID); ok {
			attr.Owner = &name
		}
	}
	if attr.GID != nil {
		if name, ok := lookupGroupName(*attr.GID); ok {
			attr.Group = &name
		}
	}
}

func lookupUserName(uid uint32) (string, bool) {
	userCacheMu.Lock()
	if name, ok := userCache[uid]; ok {
		userCacheMu.Unlock()
		return name, true
	}
	userCacheMu.Unlock()

	name, ok := lookupUser(uid)
	if !ok {
		return "", false
	}
	userCacheMu.Lock()
	userCache[uid] = name
	userCacheMu.Unlock()
	return name, true
}

func lookupGroupName(gid uint32) (string, bool) {
	groupCacheMu.Lock()
	if name, ok := groupCache[gid]; ok {
		groupCacheMu.Unlock()
		return name, true
	}
	groupCacheMu.Unlock()

	name, ok := lookupGroup(gid)
	if !ok {
		return "", false
	}
	groupCacheMu.Lock()
	groupCache[gid] = name
	groupCacheMu.Unlock()
	return name, true
}

func uidString(uid uint32) string {
	return strconv.FormatUint(uint64(uid), 10)
}
