// Package prompt builds the text sent to the model for a target.
package prompt

import (
	"errors"

	"go.trai.ch/docullim/internal/core/domain"
	"go.trai.ch/zerr"
)

// Template returns the prompt template for tag, falling back to the default tag.
func Template(prompts map[string]string, tag string) (string, error) {
	if tmpl, ok := prompts[tag]; ok && tmpl != "" {
		return tmpl, nil
	}
	if tmpl, ok := prompts[domain.DefaultTag]; ok && tmpl != "" {
		return tmpl, nil
	}
	return "", errors.Join(domain.ErrConfig, zerr.With(zerr.Wrap(domain.ErrMissingPrompt, ""), "tag", tag))
}

// Build returns the template for the target's tag followed by a newline and the normalized body.
func Build(target domain.Target, cfg domain.Config) (string, error) {
	tmpl, err := Template(cfg.Prompts, target.Tag)
	if err != nil {
		return "", zerr.With(err, "target", target.String())
	}
	return render(tmpl, target.Body), nil
}

// render joins a template and a body.
func render(tmpl, body string) string {
	return tmpl + "\n" + body
}
