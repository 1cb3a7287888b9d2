package aggregate

import "sort"

// set is a deduplicated string collection. Group membership order is
// not meaningful, so members() sorts for stable output.
type set map[string]struct{}

func (s set) add(v string) {
	s[v] = struct{}{}
}

func (s set) members() []string {
	members := make([]string, 0, len(s))
	for v := range s {
		members = append(members, v)
	}
	sort.Strings(members)
	return members
}
