package ports

// FileResolver defines the interface for expanding CLI patterns into source files.
//
//go:generate mockgen -destination=mocks/resolver_mock.go -package=mocks -source=resolver.go
type FileResolver interface {
	// ResolveFiles expands literal paths, directories and glob patterns relative to root.
	// It returns the matched files in a stable order and the patterns that matched nothing.
	ResolveFiles(patterns []string, root string) (files, unmatched []string, err error)
}
