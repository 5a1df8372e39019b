package notes

import "strings"

// Notes hands out Core Data identifiers of the form
// x-coredata://<store-uuid>/ICNote/p123. The store UUID is stable only for
// the life of the local database, so callers exchange the short primary key
// (p123) and the full form is rebuilt per operation from a freshly probed
// UUID.

// PrimaryKey reduces a full Core Data identifier to its trailing segment.
// Already-short identifiers pass through unchanged.
func PrimaryKey(fullID string) string {
	if idx := strings.LastIndexByte(fullID, '/'); idx >= 0 {
		return fullID[idx+1:]
	}
	return fullID
}

// storeUUID pulls the store UUID out of a full Core Data identifier.
func storeUUID(fullID string) (string, bool) {
	rest, ok := strings.CutPrefix(fullID, "x-coredata://")
	if !ok {
		return "", false
	}
	uuid, _, ok := strings.Cut(rest, "/")
	if !ok || uuid == "" {
		return "", false
	}
	return uuid, true
}

func fullNoteID(uuid, primaryKey string) string {
	return "x-coredata://" + uuid + "/ICNote/" + primaryKey
}

func fullFolderID(uuid, primaryKey string) string {
	return "x-coredata://" + uuid + "/ICFolder/" + primaryKey
}
