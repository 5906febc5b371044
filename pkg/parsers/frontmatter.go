package parsers

import (
	"bytes"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/kublaj/drizzle-builder/pkg/errors"
)

var fence = []byte("---")

// FrontMatter parses a YAML front-matter head fenced by "---" lines and
// returns its fields with the remaining body under "contents". Files
// without a front-matter fence yield just {"contents": text}.
func FrontMatter(text []byte, path string) (map[string]interface{}, error) {
	head, body := splitFrontMatter(text)

	data := make(map[string]interface{})
	if len(head) > 0 {
		if err := yaml.Unmarshal(head, &data); err != nil {
			return nil, errors.Wrapf(err, errors.ErrParse,
				"invalid front matter in %s", path).
				WithDetail("file", path)
		}
	}
	data[ContentsKey] = string(body)
	return data, nil
}

// Markdown parses front matter like FrontMatter and converts the body
// from markdown to HTML.
func Markdown(text []byte, path string) (map[string]interface{}, error) {
	data, err := FrontMatter(text, path)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	body, _ := data[ContentsKey].(string)
	if err := goldmark.Convert([]byte(body), &buf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrParse,
			"cannot convert markdown in %s", path).
			WithDetail("file", path)
	}
	data[ContentsKey] = buf.String()
	return data, nil
}

// splitFrontMatter separates a "---" fenced YAML head from the body.
// The opening fence must be the first line of the file.
func splitFrontMatter(text []byte) (head, body []byte) {
	if !bytes.HasPrefix(text, fence) {
		return nil, text
	}
	rest := text[len(fence):]
	if len(rest) > 0 && rest[0] == '\r' {
		rest = rest[1:]
	}
	if len(rest) == 0 || rest[0] != '\n' {
		// Not a fence line, e.g. "---foo"
		return nil, text
	}
	rest = rest[1:]

	end := bytes.Index(rest, append([]byte("\n"), fence...))
	if end < 0 {
		return nil, text
	}
	head = rest[:end]

	body = rest[end+1+len(fence):]
	// Swallow the newline closing the fence line
	body = bytes.TrimPrefix(body, []byte("\r"))
	body = bytes.TrimPrefix(body, []byte("\n"))
	return head, body
}
