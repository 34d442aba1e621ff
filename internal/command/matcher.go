package command

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderName matches the name inside a {name} template segment.
var placeholderName = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TemplateMatcher matches request paths against a template like
// /channels/{channelId}/play. Each placeholder matches one or more
// characters other than "/".
type TemplateMatcher struct {
	template string
	segments []segment
	regex    *regexp.Regexp
}

type segment struct {
	value     string
	isParam   bool
	paramName string
}

// NewTemplateMatcher compiles a path template.
func NewTemplateMatcher(template string) (*TemplateMatcher, error) {
	segments, err := parseTemplate(template)
	if err != nil {
		return nil, err
	}

	var regexPattern strings.Builder
	regexPattern.WriteString("^")

	for _, seg := range segments {
		regexPattern.WriteString("/")
		if seg.isParam {
			regexPattern.WriteString("([^/]+)")
		} else {
			regexPattern.WriteString(regexp.QuoteMeta(seg.value))
		}
	}
	regexPattern.WriteString("$")

	regex, err := regexp.Compile(regexPattern.String())
	if err != nil {
		return nil, fmt.Errorf("compile template %s: %w", template, err)
	}

	return &TemplateMatcher{
		template: template,
		segments: segments,
		regex:    regex,
	}, nil
}

// parseTemplate splits a template into literal and placeholder segments.
func parseTemplate(template string) ([]segment, error) {
	if !strings.HasPrefix(template, "/") {
		return nil, fmt.Errorf("template %q must start with /", template)
	}

	parts := strings.Split(template[1:], "/")
	segments := make([]segment, 0, len(parts))
	seen := make(map[string]bool, len(parts))

	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("template %q has an empty segment", template)
		}

		if strings.HasPrefix(part, "{") && strings.HasSuffix(part, "}") {
			name := part[1 : len(part)-1]
			if !placeholderName.MatchString(name) {
				return nil, fmt.Errorf("template %q has invalid placeholder %s", template, part)
			}
			if seen[name] {
				return nil, fmt.Errorf("template %q repeats placeholder %s", template, part)
			}
			seen[name] = true
			segments = append(segments, segment{value: part, isParam: true, paramName: name})
			continue
		}

		if strings.ContainsAny(part, "{}") {
			return nil, fmt.Errorf("template %q has malformed segment %s", template, part)
		}
		segments = append(segments, segment{value: part})
	}

	return segments, nil
}

// MatchString reports whether path matches the template.
func (m *TemplateMatcher) MatchString(path string) bool {
	return m.regex.MatchString(path)
}

// Match checks if the path matches the template and extracts placeholder
// values by name.
func (m *TemplateMatcher) Match(path string) (matched bool, params map[string]string) {
	matches := m.regex.FindStringSubmatch(path)
	if matches == nil {
		return false, nil
	}

	params = make(map[string]string)
	group := 1
	for _, seg := range m.segments {
		if seg.isParam {
			params[seg.paramName] = matches[group]
			group++
		}
	}

	return true, params
}

// Template returns the source template.
func (m *TemplateMatcher) Template() string {
	return m.template
}

// Placeholders returns the placeholder names in path order.
func (m *TemplateMatcher) Placeholders() []string {
	var names []string
	for _, seg := range m.segments {
		if seg.isParam {
			names = append(names, seg.paramName)
		}
	}
	return names
}

// Expand substitutes placeholder values into the template. Missing values
// leave the placeholder in place.
func (m *TemplateMatcher) Expand(values map[string]string) string {
	var b strings.Builder
	for _, seg := range m.segments {
		b.WriteString("/")
		if v, ok := values[seg.paramName]; seg.isParam && ok {
			b.WriteString(v)
		} else {
			b.WriteString(seg.value)
		}
	}
	return b.String()
}

// overlaps reports whether some concrete path can match both templates.
func (m *TemplateMatcher) overlaps(other *TemplateMatcher) bool {
	if len(m.segments) != len(other.segments) {
		return false
	}
	for i, seg := range m.segments {
		o := other.segments[i]
		if !seg.isParam && !o.isParam && seg.value != o.value {
			return false
		}
	}
	return true
}

// narrower reports whether every path matched by m is matched by other
// and m is literal in at least one position where other has a
// placeholder. It is only meaningful for overlapping templates.
func (m *TemplateMatcher) narrower(other *TemplateMatcher) bool {
	extraLiteral := false
	for i, seg := range m.segments {
		o := other.segments[i]
		if seg.isParam && !o.isParam {
			return false
		}
		if !seg.isParam && o.isParam {
			extraLiteral = true
		}
	}
	return extraLiteral
}
