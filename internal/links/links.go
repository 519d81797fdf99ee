// Package links expands inline {@link Class#member label} references into
// hyperlinks and derives plain-text summaries from descriptions.
package links

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/extdoc-hq/extdoc/pkg/model"
)

const (
	linkMarker = "{@link"
	ellipsis   = "..."

	// DefaultShortLimit is the number of characters kept in a truncated summary
	DefaultShortLimit = 117
	// DefaultBaseURL prefixes every generated class page link
	DefaultBaseURL = "output/"
	// DefaultExtension is the file extension of generated class pages
	DefaultExtension = "html"
)

var markupPattern = regexp.MustCompile(`<[^>]*>`)

// Resolver renders descriptions. The zero value is not usable, use
// NewResolver.
type Resolver struct {
	baseURL    string
	extension  string
	shortLimit int
}

// Options configures a Resolver
type Options struct {
	BaseURL    string
	Extension  string
	ShortLimit int
}

// NewResolver creates a resolver, filling unset options with defaults
func NewResolver(opts Options) *Resolver {
	r := &Resolver{
		baseURL:    opts.BaseURL,
		extension:  opts.Extension,
		shortLimit: opts.ShortLimit,
	}
	if r.baseURL == "" {
		r.baseURL = DefaultBaseURL
	}
	if r.extension == "" {
		r.extension = DefaultExtension
	}
	if r.shortLimit <= 0 {
		r.shortLimit = DefaultShortLimit
	}
	return r
}

// Reference is a parsed {@link ...} target
type Reference struct {
	ClassName     string
	Member        string
	Label         string
	ExplicitClass bool
}

// ParseReference parses the content of an inline link, e.g.
// "Ext.Panel#show Open it". currentClass fills in a missing class name.
func ParseReference(content, currentClass string) Reference {
	content = strings.TrimSpace(content)
	target, label := content, ""
	if i := strings.IndexFunc(content, unicode.IsSpace); i >= 0 {
		target, label = content[:i], strings.TrimSpace(content[i:])
	}

	ref := Reference{Label: label}
	hash := strings.IndexByte(target, '#')
	if hash < 0 {
		ref.ClassName = target
		ref.ExplicitClass = true
		if ref.Label == "" {
			ref.Label = target
		}
		return ref
	}

	ref.ClassName = target[:hash]
	ref.Member = target[hash+1:]
	ref.ExplicitClass = ref.ClassName != ""
	if !ref.ExplicitClass {
		ref.ClassName = currentClass
	}
	if ref.Label == "" {
		if ref.ExplicitClass {
			ref.Label = ref.ClassName + "." + ref.Member
		} else {
			ref.Label = ref.Member
		}
	}
	return ref
}

// Href returns the page link for a reference
func (r *Resolver) Href(ref Reference) string {
	href := fmt.Sprintf("%s%s.%s", r.baseURL, ref.ClassName, r.extension)
	if ref.Member != "" {
		href += "#" + ref.ClassName + "-" + ref.Member
	}
	return href
}

func (r *Resolver) anchor(ref Reference) string {
	if ref.Member == "" {
		return fmt.Sprintf(`<a href="%s" ext:cls="%s">%s</a>`, r.Href(ref), ref.ClassName, ref.Label)
	}
	return fmt.Sprintf(`<a href="%s" ext:cls="%s" ext:member="%s">%s</a>`,
		r.Href(ref), ref.ClassName, ref.Member, ref.Label)
}

// Resolve expands inline links in text. The long form carries hyperlinks;
// the short form is plain text, produced when it had to be truncated or when
// alwaysShort is set.
func (r *Resolver) Resolve(text, currentClass string, alwaysShort bool) model.Description {
	var long, plain strings.Builder

	rest := text
	for {
		start := strings.Index(rest, linkMarker)
		if start < 0 {
			break
		}
		after := start + len(linkMarker)
		if after < len(rest) && rest[after] != '}' && !isSpace(rest[after]) {
			// some other inline tag, e.g. {@linkplain}
			long.WriteString(rest[:after])
			plain.WriteString(rest[:after])
			rest = rest[after:]
			continue
		}
		end := strings.IndexByte(rest[start:], '}')
		if end < 0 {
			break
		}
		end += start

		long.WriteString(rest[:start])
		plain.WriteString(rest[:start])

		ref := ParseReference(rest[after:end], currentClass)
		if ref.ClassName == "" {
			// nothing to point at outside a class
			long.WriteString(ref.Label)
		} else {
			long.WriteString(r.anchor(ref))
		}
		plain.WriteString(ref.Label)

		rest = rest[end+1:]
	}
	long.WriteString(rest)
	plain.WriteString(rest)

	desc := model.Description{Long: long.String()}
	short, truncated := r.Shorten(plain.String())
	if truncated || alwaysShort {
		desc.Short = short
	}
	return desc
}

// Shorten strips markup and cuts text to the configured limit, appending an
// ellipsis when anything was cut.
func (r *Resolver) Shorten(text string) (string, bool) {
	text = StripMarkup(text)
	if utf8.RuneCountInString(text) <= r.shortLimit {
		return text, false
	}
	runes := []rune(text)
	return string(runes[:r.shortLimit]) + ellipsis, true
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// StripMarkup removes anything that looks like an HTML tag
func StripMarkup(text string) string {
	return markupPattern.ReplaceAllString(text, "")
}
