// Package parsers provides pattern-based content parser dispatch for drizzle.
//
// A parser rule maps a path regular expression to a ParseFunc. Rules are
// evaluated in declaration order and the first matching rule wins. A rule
// named "default" is never matched by pattern; it is the fallback for paths
// no other rule matches. When there is no default rule either, the identity
// parser is used, which wraps the raw text as {"contents": text}.
//
// The two parsers shipped here cover the usual source formats:
//
//   - FrontMatter: YAML front matter fenced by "---" lines, remaining body
//     stored under "contents".
//   - Markdown: front matter as above, body converted to HTML with goldmark.
package parsers
