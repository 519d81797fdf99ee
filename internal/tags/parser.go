package tags

import (
	"strings"
	"unicode"
)

const optionalMarker = "(optional)"

// Parse splits a comment body into its description and tags. A tag starts
// with "@name" at the beginning of a line, after comment decoration, and runs
// until the next tag line or the end of the body. Inline {@link} references
// are left untouched.
func Parse(body string) *Comment {
	c := &Comment{Tags: make([]Tag, 0)}

	var (
		desc    []string
		current string
		text    []string
		inTag   bool
	)

	finish := func() {
		if inTag {
			c.Tags = append(c.Tags, parseTag(current, strings.TrimSpace(strings.Join(text, "\n"))))
		}
		text = text[:0]
	}

	for _, line := range splitLines(body) {
		line = stripDecoration(line)
		if name, rest, ok := tagStart(line); ok {
			finish()
			current = name
			inTag = true
			text = append(text, rest)
			continue
		}
		if inTag {
			text = append(text, line)
		} else {
			desc = append(desc, line)
		}
	}
	finish()

	c.Description = strings.TrimSpace(strings.Join(desc, "\n"))
	return c
}

func splitLines(body string) []string {
	body = strings.ReplaceAll(body, "\r\n", "\n")
	return strings.Split(body, "\n")
}

// stripDecoration removes leading whitespace and the '*' gutter of a comment
// line, plus a single space after it.
func stripDecoration(line string) string {
	line = strings.TrimLeftFunc(line, unicode.IsSpace)
	if strings.HasPrefix(line, "*") {
		line = strings.TrimLeft(line, "*")
		line = strings.TrimPrefix(line, " ")
	}
	return strings.TrimRightFunc(line, unicode.IsSpace)
}

// tagStart recognises "@name rest" at the start of a line
func tagStart(line string) (name, rest string, ok bool) {
	trimmed := strings.TrimLeftFunc(line, unicode.IsSpace)
	if !strings.HasPrefix(trimmed, "@") {
		return "", "", false
	}
	end := 1
	for end < len(trimmed) && isTagNameByte(trimmed[end]) {
		end++
	}
	if end == 1 {
		return "", "", false
	}
	return strings.ToLower(trimmed[1:end]), strings.TrimSpace(trimmed[end:]), true
}

func isTagNameByte(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func parseTag(name, text string) Tag {
	kind := Kind(name)
	switch kind {
	case KindClass:
		className, desc := readWord(text)
		return &ClassTag{ClassName: className, Description: desc}
	case KindExtends:
		className, desc := readWord(text)
		return &ExtendsTag{ClassName: className, Description: desc}
	case KindCfg:
		typ, name, desc, optional := readTypedName(text)
		return &CfgTag{Type: typ, Name: name, Description: desc, Optional: optional}
	case KindParam:
		typ, name, desc, optional := readTypedName(text)
		return &ParamTag{Type: typ, Name: name, Description: desc, Optional: optional}
	case KindProperty:
		typ, name, desc, _ := readTypedName(text)
		return &PropertyTag{Type: typ, Name: name, Description: desc}
	case KindMethod:
		name, desc := readWord(text)
		return &MethodTag{Name: name, Description: desc}
	case KindEvent:
		name, desc := readWord(text)
		return &EventTag{Name: name, Description: desc}
	case KindReturn:
		typ, desc, _ := readType(text)
		return &ReturnTag{Type: typ, Description: desc}
	case KindType:
		return &TypeTag{Type: parseTypeText(text)}
	case KindMember:
		return parseMember(text)
	}
	if simpleKinds[kind] {
		return &SimpleTag{TagKind: kind, Text: text}
	}
	return &UnknownTag{Name: name, Text: text}
}

// readWord splits text at the first run of whitespace
func readWord(text string) (word, rest string) {
	text = strings.TrimSpace(text)
	i := strings.IndexFunc(text, unicode.IsSpace)
	if i < 0 {
		return text, ""
	}
	return text[:i], strings.TrimSpace(text[i:])
}

// readType consumes a leading "{Type}", honouring nested braces
func readType(text string) (typ, rest string, ok bool) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "{") {
		return "", text, false
	}
	depth := 0
	for i, r := range text {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return strings.TrimSpace(text[1:i]), strings.TrimSpace(text[i+1:]), true
			}
		}
	}
	// unbalanced, treat the remainder as the type
	return strings.TrimSpace(text[1:]), "", true
}

// readTypedName parses "{Type} name description" where both the type and the
// name are optional.
func readTypedName(text string) (typ, name, desc string, optional bool) {
	typ, rest, _ := readType(text)
	name, desc = readWord(rest)
	name, optional = optionalName(name)
	if strings.HasPrefix(strings.ToLower(desc), optionalMarker) {
		optional = true
	}
	return typ, name, desc, optional
}

// optionalName recognises "[name]", "[name=default]" and "name?"
func optionalName(name string) (string, bool) {
	if strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]") {
		name = strings.TrimSuffix(strings.TrimPrefix(name, "["), "]")
		if i := strings.IndexByte(name, '='); i >= 0 {
			name = name[:i]
		}
		return name, true
	}
	if len(name) > 1 && strings.HasSuffix(name, "?") {
		return strings.TrimSuffix(name, "?"), true
	}
	return name, false
}

func parseTypeText(text string) string {
	if typ, _, ok := readType(text); ok {
		return typ
	}
	typ, _ := readWord(text)
	return typ
}

func parseMember(text string) *MemberTag {
	first, rest := readWord(text)
	if i := strings.IndexByte(first, '#'); i >= 0 {
		return &MemberTag{ClassName: first[:i], MemberName: first[i+1:]}
	}
	memberName, _ := readWord(rest)
	return &MemberTag{ClassName: first, MemberName: memberName}
}
