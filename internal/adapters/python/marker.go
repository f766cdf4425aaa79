package python

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"go.trai.ch/docullim/internal/core/domain"
)

// parseMarker reports whether a decorator expression is a docullim marker and,
// if so, its tag. Accepted forms are docullim and docullim.docullim, bare or
// called with no argument, a positional tag or a tag=/arg= keyword.
func parseMarker(expr *sitter.Node, src []byte) (string, bool, bool) {
	if expr == nil {
		return "", false, false
	}

	switch expr.Type() {
	case "identifier", "attribute":
		if !isMarkerName(expr, src) {
			return "", false, false
		}
		return domain.DefaultTag, false, true
	case "call":
		fn := expr.ChildByFieldName("function")
		if fn == nil || !isMarkerName(fn, src) {
			return "", false, false
		}
		tag, ok := tagArgument(expr.ChildByFieldName("arguments"), src)
		if !ok {
			return domain.DefaultTag, false, true
		}
		return tag, true, true
	default:
		return "", false, false
	}
}

func isMarkerName(n *sitter.Node, src []byte) bool {
	switch n.Type() {
	case "identifier":
		return n.Content(src) == domain.MarkerName
	case "attribute":
		obj := n.ChildByFieldName("object")
		attr := n.ChildByFieldName("attribute")
		return obj != nil && attr != nil &&
			obj.Type() == "identifier" &&
			obj.Content(src) == domain.MarkerName &&
			attr.Content(src) == domain.MarkerName
	default:
		return false
	}
}

// tagArgument extracts the tag from an argument list. String literals are
// unquoted; any other expression is kept as written.
func tagArgument(args *sitter.Node, src []byte) (string, bool) {
	if args == nil {
		return "", false
	}

	for i := range int(args.NamedChildCount()) {
		arg := args.NamedChild(i)
		switch arg.Type() {
		case "comment":
			continue
		case "keyword_argument":
			name := arg.ChildByFieldName("name")
			if name == nil {
				continue
			}
			if key := name.Content(src); key != "tag" && key != "arg" {
				continue
			}
			value := arg.ChildByFieldName("value")
			if value == nil {
				return "", false
			}
			return literalOrRaw(value, src), true
		default:
			return literalOrRaw(arg, src), true
		}
	}
	return "", false
}

// literalOrRaw returns the value of a plain string literal or the raw source of
// any other expression. None means no tag.
func literalOrRaw(n *sitter.Node, src []byte) string {
	text := n.Content(src)
	if n.Type() == "none" {
		return domain.DefaultTag
	}
	if n.Type() != "string" {
		return text
	}
	if value, ok := unquote(text); ok {
		return value
	}
	return text
}

// stringPrefix returns the letters before the opening quote of a string literal.
func stringPrefix(lit string) string {
	i := strings.IndexAny(lit, `"'`)
	if i < 0 {
		return ""
	}
	return lit[:i]
}

// unquote strips the prefix and quotes of a Python string literal. Formatted and
// bytes literals are rejected.
func unquote(lit string) (string, bool) {
	prefix := strings.ToLower(stringPrefix(lit))
	if strings.ContainsAny(prefix, "fb") {
		return "", false
	}
	body := lit[len(prefix):]

	var quote string
	switch {
	case strings.HasPrefix(body, `"""`), strings.HasPrefix(body, `'''`):
		quote = body[:3]
	case strings.HasPrefix(body, `"`), strings.HasPrefix(body, `'`):
		quote = body[:1]
	default:
		return "", false
	}
	if len(body) < 2*len(quote) || !strings.HasSuffix(body, quote) {
		return "", false
	}
	inner := body[len(quote) : len(body)-len(quote)]

	if strings.Contains(prefix, "r") {
		return inner, true
	}
	return unescaper.Replace(inner), true
}

var unescaper = strings.NewReplacer(
	`\\`, `\`,
	`\'`, `'`,
	`\"`, `"`,
	`\n`, "\n",
	`\t`, "\t",
)
