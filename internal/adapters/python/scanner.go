// Package python finds docullim-marked definitions in Python source using the
// tree-sitter Python grammar. Source files are parsed, never executed.
package python

import (
	"context"
	"errors"
	"os"
	"slices"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/docullim/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Scanner = (*Scanner)(nil)

// Scanner implements ports.Scanner.
type Scanner struct {
	hasher ports.Hasher
}

// NewScanner creates a new Scanner. The hasher fingerprints scanned files so the
// writer can detect changes made between scanning and writing.
func NewScanner(hasher ports.Hasher) *Scanner {
	return &Scanner{hasher: hasher}
}

// Scan reads and parses the file at path and returns its marked targets in source order.
func (s *Scanner) Scan(ctx context.Context, path string) ([]domain.Target, error) {
	src, err := os.ReadFile(path) //nolint:gosec // path comes from the resolved file list
	if err != nil {
		return nil, errors.Join(domain.ErrFileRead, zerr.With(err, "path", path))
	}
	return s.ScanSource(ctx, path, src)
}

// ScanSource extracts targets from src as if it were read from path.
func (s *Scanner) ScanSource(ctx context.Context, path string, src []byte) ([]domain.Target, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, src)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, errors.Join(domain.ErrParse, zerr.With(err, "path", path))
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		syntaxErr := zerr.With(zerr.New("syntax error"), "path", path)
		if line := firstErrorLine(root); line > 0 {
			syntaxErr = zerr.With(syntaxErr, "line", line)
		}
		return nil, errors.Join(domain.ErrParse, syntaxErr)
	}

	w := &walker{
		path:   path,
		src:    src,
		digest: s.hasher.Digest(src),
		seen:   make(map[uint32]bool),
	}
	w.walk(root, nil)
	return w.targets, nil
}

// walker collects targets from one parsed file.
type walker struct {
	path    string
	src     []byte
	digest  string
	seen    map[uint32]bool
	targets []domain.Target
}

func (w *walker) walk(n *sitter.Node, scope []string) {
	if n == nil {
		return
	}

	for i := range int(n.NamedChildCount()) {
		child := n.NamedChild(i)

		switch child.Type() {
		case "decorated_definition":
			def := child.ChildByFieldName("definition")
			if def == nil {
				continue
			}
			if tag, tagSet, ok := w.marker(child); ok {
				w.emit(child, def, scope, tag, tagSet)
			}
			w.walk(def.ChildByFieldName("body"), appendScope(scope, w.nameOf(def)))
		case "function_definition", "class_definition":
			w.walk(child.ChildByFieldName("body"), appendScope(scope, w.nameOf(child)))
		default:
			if child.NamedChildCount() > 0 {
				w.walk(child, scope)
			}
		}
	}
}

// marker returns the tag of the first docullim decorator on a decorated definition.
func (w *walker) marker(decorated *sitter.Node) (string, bool, bool) {
	for i := range int(decorated.NamedChildCount()) {
		child := decorated.NamedChild(i)
		if child.Type() != "decorator" {
			continue
		}
		if tag, tagSet, ok := parseMarker(firstNamed(child), w.src); ok {
			return tag, tagSet, true
		}
	}
	return "", false, false
}

func (w *walker) emit(decorated, def *sitter.Node, scope []string, tag string, tagSet bool) {
	if w.seen[def.StartByte()] {
		return
	}
	w.seen[def.StartByte()] = true

	kind := domain.KindFunction
	if def.Type() == "class_definition" {
		kind = domain.KindClass
	}

	anchor := w.anchor(def)

	w.targets = append(w.targets, domain.Target{
		FilePath:      w.path,
		QualifiedName: strings.Join(appendScope(scope, w.nameOf(def)), "."),
		Kind:          kind,
		Source:        decorated.Content(w.src),
		Body:          Normalize(w.src, int(def.StartByte()), int(def.EndByte()), anchor),
		Tag:           tag,
		TagSet:        tagSet,
		Lines: domain.LineRange{
			Start: int(decorated.StartPoint().Row) + 1,
			End:   int(decorated.EndPoint().Row) + 1,
		},
		FileDigest: w.digest,
		Anchor:     anchor,
	})
}

// anchor locates the header end, the first body statement and any docstring of def.
func (w *walker) anchor(def *sitter.Node) domain.DocAnchor {
	body := def.ChildByFieldName("body")

	a := domain.DocAnchor{
		DefStart: int(def.StartByte()),
		DocStart: -1,
		DocEnd:   -1,
	}

	colon := headerColon(def, body)
	first := firstStatement(body)

	a.HeaderEnd = int(colon.EndByte())
	a.BodyStart = int(first.StartByte())
	a.Inline = first.StartPoint().Row == colon.StartPoint().Row

	if a.Inline {
		a.Indent = lineIndent(w.src, a.DefStart) + indentUnit(w.src, a.DefStart)
	} else {
		a.Indent = lineIndent(w.src, a.BodyStart)
	}

	if isDocstring(first, w.src) {
		a.DocStart = int(first.StartByte())
		a.DocEnd = int(first.EndByte())
	}

	return a
}

func (w *walker) nameOf(def *sitter.Node) string {
	if name := def.ChildByFieldName("name"); name != nil {
		return name.Content(w.src)
	}
	return "<anonymous>"
}

// headerColon returns the ':' token that ends the definition header.
func headerColon(def, body *sitter.Node) *sitter.Node {
	var colon *sitter.Node
	for i := range int(def.ChildCount()) {
		child := def.Child(i)
		if body != nil && child.StartByte() >= body.StartByte() {
			break
		}
		if child.Type() == ":" {
			colon = child
		}
	}
	if colon == nil {
		// Grammar guarantees a colon for error-free trees; fall back to the body start.
		return body
	}
	return colon
}

// firstStatement returns the first non-comment statement of a block.
func firstStatement(body *sitter.Node) *sitter.Node {
	for i := range int(body.NamedChildCount()) {
		child := body.NamedChild(i)
		if child.Type() != "comment" {
			return child
		}
	}
	return body
}

// isDocstring reports whether stmt is a plain string expression statement.
func isDocstring(stmt *sitter.Node, src []byte) bool {
	if stmt.Type() != "expression_statement" || stmt.NamedChildCount() != 1 {
		return false
	}
	expr := stmt.NamedChild(0)
	switch expr.Type() {
	case "string":
		prefix := strings.ToLower(stringPrefix(expr.Content(src)))
		return !strings.ContainsAny(prefix, "fb")
	case "concatenated_string":
		return true
	default:
		return false
	}
}

func firstNamed(n *sitter.Node) *sitter.Node {
	for i := range int(n.NamedChildCount()) {
		child := n.NamedChild(i)
		if child.Type() != "comment" {
			return child
		}
	}
	return nil
}

// firstErrorLine returns the 1-based line of the first error or missing node, or 0.
func firstErrorLine(n *sitter.Node) int {
	if n.Type() == "ERROR" || n.IsMissing() {
		return int(n.StartPoint().Row) + 1
	}
	for i := range int(n.ChildCount()) {
		child := n.Child(i)
		if !child.HasError() && !child.IsMissing() {
			continue
		}
		if line := firstErrorLine(child); line > 0 {
			return line
		}
	}
	return 0
}

func appendScope(scope []string, name string) []string {
	return append(slices.Clip(scope), name)
}
