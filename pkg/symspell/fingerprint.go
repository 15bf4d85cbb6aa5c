package symspell

// Fingerprint computes a stable 32-bit key for a delete-variant string.
//
// It is an FNV-1a hash over the bytes folded with a length mask so that
// short strings of the same content class still spread across buckets.
// The result must be identical for identical inputs across processes,
// since PersistentStore round-trips fingerprints through a database.
func Fingerprint(s string) int32 {
	var h uint32 = 2166136261
	for i := 0; i < len(s); i++ {
		h = (h ^ uint32(s[i])) * 16777619
	}
	lenMask := len(s)
	if lenMask > 3 {
		lenMask = 3
	}
	return int32(h | uint32(lenMask))
}
