package engine

// kwPrefix marks keyword arguments after preprocessing. Zygomys has no
// native :keyword type we can intercept cheaply, so :name becomes the
// string literal "__kw_name" and builtins recognize the prefix.
const kwPrefix = "__kw_"

// preprocessSource transforms scatter Lisp source before zygomys sees
// it:
//
//  1. :keyword -> "__kw_keyword" string literals, so keywords need no
//     global symbol registration.
//  2. kebab-case -> underscore (max-attempts -> max_attempts) outside
//     strings and comments, since zygomys reads hyphens as subtraction.
//  3. ; line comments -> // line comments (zygomys comment syntax).
//
// String literal boundaries (double quote and backtick) are respected.
func preprocessSource(source string) string {
	out := make([]byte, 0, len(source)+len(source)/4)
	b := []byte(source)
	i := 0
	for i < len(b) {
		switch {
		case b[i] == '"':
			// Copy a double-quoted literal verbatim, honoring escapes.
			out = append(out, b[i])
			i++
			for i < len(b) && b[i] != '"' {
				if b[i] == '\\' && i+1 < len(b) {
					out = append(out, b[i], b[i+1])
					i += 2
					continue
				}
				out = append(out, b[i])
				i++
			}
			if i < len(b) {
				out = append(out, b[i])
				i++
			}
		case b[i] == '`':
			// Copy a backtick literal verbatim.
			out = append(out, b[i])
			i++
			for i < len(b) && b[i] != '`' {
				out = append(out, b[i])
				i++
			}
			if i < len(b) {
				out = append(out, b[i])
				i++
			}
		case b[i] == ';':
			out = append(out, '/', '/')
			for i < len(b) && b[i] == ';' {
				i++
			}
			for i < len(b) && b[i] != '\n' {
				out = append(out, b[i])
				i++
			}
		case b[i] == ':' && i+1 < len(b) && b[i+1] == '=':
			// Preserve the := assignment operator.
			out = append(out, ':', '=')
			i += 2
		case b[i] == ':' && i+1 < len(b) && isLetter(b[i+1]):
			j := i + 1
			for j < len(b) && isKWChar(b[j]) {
				j++
			}
			out = append(out, '"')
			out = append(out, kwPrefix...)
			out = append(out, b[i+1:j]...)
			out = append(out, '"')
			i = j
		case b[i] == '-' && i > 0 && i+1 < len(b) && isIdentChar(b[i-1]) && isLetter(b[i+1]):
			// Hyphen between identifier characters is part of a
			// kebab-case name, not a minus operator.
			out = append(out, '_')
			i++
		default:
			out = append(out, b[i])
			i++
		}
	}
	return string(out)
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isKWChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '-' || c == '_'
}

func isIdentChar(c byte) bool {
	return isLetter(c) || (c >= '0' && c <= '9') || c == '_'
}
