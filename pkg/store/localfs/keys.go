package localfs

const (
	refsDb  = "refs"
	indexDb = "index"
)

var (
	branchPref  = [7]byte{'b', 'r', 'a', 'n', 'c', 'h', ':'}
	settingPref = [8]byte{'s', 'e', 't', 't', 'i', 'n', 'g', ':'}
	addPref     = [4]byte{'a', 'd', 'd', ':'}
	removePref  = [7]byte{'r', 'e', 'm', 'o', 'v', 'e', ':'}
	headKey     = []byte("head")
)

func prefixed(prefix []byte, key string) []byte {
	result := make([]byte, 0, len(prefix)+len(key))
	result = append(result, prefix...)
	return append(result, key...)
}

func branchKey(key string) []byte {
	return prefixed(branchPref[:], key)
}

func settingKey(key string) []byte {
	return prefixed(settingPref[:], key)
}

func addKey(key string) []byte {
	return prefixed(addPref[:], key)
}

func removeKey(key string) []byte {
	return prefixed(removePref[:], key)
}
