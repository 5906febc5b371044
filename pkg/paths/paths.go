// Package paths provides centralized path and identity handling for drizzle.
// Resource IDs are dot-joined paths from the pattern tree root to a node;
// this package derives keys, IDs and output paths from source file paths.
package paths

import (
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ResourceExt is the extension appended to generated resource files
const ResourceExt = ".html"

var (
	whitespaceRe  = regexp.MustCompile(`\s+`)
	orderPrefixRe = regexp.MustCompile(`^[0-9.\-]+`)
	wordSepRe     = regexp.MustCompile(`[-_]+`)

	titleCaser = cases.Title(language.Und)
)

// ResourcePath converts a dotted resource ID into an output file path under
// dest. When the ID has more than one segment the first segment is assumed
// to be the resource-type root (e.g. "patterns") and is discarded; the final
// segment becomes the filename and any segments in between become directory
// components.
//
//	ResourcePath("components.button.base", "") == "button/base.html"
//	ResourcePath("pink", "") == "pink.html"
func ResourcePath(resourceID, dest string) string {
	segs := strings.Split(resourceID, ".")
	if len(segs) > 1 {
		segs = segs[1:]
	}
	parts := make([]string, 0, len(segs)+1)
	if dest != "" {
		parts = append(parts, dest)
	}
	parts = append(parts, segs[:len(segs)-1]...)
	parts = append(parts, segs[len(segs)-1]+ResourceExt)
	return filepath.Join(parts...)
}

// Keyname derives a key from a file path: directory and extension stripped,
// whitespace collapsed to "-", and any leading ordering prefix of digits,
// dots and dashes removed ("01-intro.html" -> "intro").
func Keyname(p string) string {
	return keyname(p, true)
}

// KeynameRaw is Keyname without ordering-prefix removal
// ("01-intro.html" -> "01-intro").
func KeynameRaw(p string) string {
	return keyname(p, false)
}

func keyname(p string, stripNumbers bool) string {
	base := filepath.Base(p)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	key := whitespaceRe.ReplaceAllString(base, "-")
	if stripNumbers {
		key = orderPrefixRe.ReplaceAllString(key, "")
	}
	return key
}

// RelativePathArray returns the directory-name segments from the segment
// matching fromPath's last element through the containing directory of
// filePath. It returns nil when fromPath does not name an ancestor
// directory of filePath.
//
//	RelativePathArray("/a/b/baz/c/d/f.txt", "baz") == ["baz", "c", "d"]
//	RelativePathArray("/a/b/f.txt", "zzz") == nil
func RelativePathArray(filePath, fromPath string) []string {
	dir := path.Dir(filepath.ToSlash(filePath))
	anchor := path.Base(path.Clean(filepath.ToSlash(fromPath)))

	segs := strings.Split(strings.Trim(dir, "/"), "/")
	for i, seg := range segs {
		if seg == anchor {
			return segs[i:]
		}
	}
	return nil
}

// TitleCase converts a key into a display name: lower-cased, "-" and "_"
// become spaces, and each word's first character is capitalized.
func TitleCase(str string) string {
	str = strings.ToLower(str)
	str = wordSepRe.ReplaceAllString(str, " ")
	return titleCaser.String(str)
}

// NaturalLess compares two keys with digit runs ordered numerically, so
// "pattern2" sorts before "pattern10". Non-digit runs compare
// case-insensitively. Ties on the case-insensitive form fall back to a
// byte-wise compare so the order is total.
func NaturalLess(a, b string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	i, j := 0, 0
	for i < len(la) && j < len(lb) {
		ca, cb := la[i], lb[j]
		if isDigit(ca) && isDigit(cb) {
			na, ni := digitRun(la, i)
			nb, nj := digitRun(lb, j)
			if na != nb {
				if len(na) != len(nb) {
					return len(na) < len(nb)
				}
				return na < nb
			}
			i, j = ni, nj
			continue
		}
		if ca != cb {
			return ca < cb
		}
		i++
		j++
	}
	if len(la)-i != len(lb)-j {
		return len(la)-i < len(lb)-j
	}
	return a < b
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

// digitRun reads the digit run starting at i, returning its numeric value
// (leading zeros ignored) and the index one past the run.
func digitRun(s string, i int) (string, int) {
	j := i
	for j < len(s) && isDigit(s[j]) {
		j++
	}
	run := strings.TrimLeft(s[i:j], "0")
	return run, j
}
