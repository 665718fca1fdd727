package model

import "sort"

// SortByPath sorts entries by path ascending
func SortByPath(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
}

// SortBySize sorts entries by size descending, then by path ascending
func SortBySize(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Size != entries[j].Size {
			return entries[i].Size > entries[j].Size
		}
		return entries[i].Path < entries[j].Path
	})
}

// TotalSize sums the sizes of all entries
func TotalSize(entries []Entry) int64 {
	var total int64
	for _, e := range entries {
		total += e.Size
	}
	return total
}
