package domain

// ResultSource tells where generated text came from.
type ResultSource string

const (
	// SourceCache means the text was found in the cache store.
	SourceCache ResultSource = "cache"
	// SourceLLM means the text was generated by the provider in this run.
	SourceLLM ResultSource = "llm"
)

// GenerationResult is the outcome for one target. Err is set when generation failed,
// in which case Text is empty and the target is left undocumented.
// CacheErr records a failed cache read; the target was then generated as a miss.
type GenerationResult struct {
	Target   Target
	Text     string
	Source   ResultSource
	Err      error
	CacheErr error
}

// OK reports whether the result carries usable text.
func (r GenerationResult) OK() bool {
	return r.Err == nil
}
