package jsonutil

import "strings"

// SplitFilenameExtension splits filename at its last '.', returning the
// stem and the extension without the dot. A leading dot (e.g. ".name")
// does not count as introducing an extension: the split only happens if
// the dot is preceded by at least one character, matching a dotfile
// convention rather than a "real" extension separator.
func SplitFilenameExtension(filename string) (stem string, ext string, hasExt bool) {
	dotIndex := strings.LastIndexByte(filename, '.')
	if dotIndex > 0 {
		return filename[:dotIndex], filename[dotIndex+1:], true
	}
	return filename, "", false
}
