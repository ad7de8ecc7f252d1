package fix

import (
	"strconv"
	"strings"
)

// remap shifts the offsets in fix IDs across an edit from before to after.
// The edit is located by the common prefix and suffix of both texts; IDs
// that pointed inside the replaced range are dropped.
func remap(ids map[string]bool, before, after string) map[string]bool {
	prefix := 0
	for prefix < len(before) && prefix < len(after) && before[prefix] == after[prefix] {
		prefix++
	}
	suffix := 0
	for suffix < len(before)-prefix && suffix < len(after)-prefix &&
		before[len(before)-1-suffix] == after[len(after)-1-suffix] {
		suffix++
	}
	oldEnd := len(before) - suffix
	delta := len(after) - len(before)

	out := make(map[string]bool, len(ids))
	for id := range ids {
		code, off, ok := splitID(id)
		if !ok {
			continue
		}
		switch {
		case off < prefix:
			out[id] = true
		case off >= oldEnd:
			out[code+"-"+strconv.Itoa(off+delta)] = true
		}
	}
	return out
}

func splitID(id string) (string, int, bool) {
	i := strings.LastIndexByte(id, '-')
	if i < 0 {
		return "", 0, false
	}
	off, err := strconv.Atoi(id[i+1:])
	if err != nil {
		return "", 0, false
	}
	return id[:i], off, true
}
