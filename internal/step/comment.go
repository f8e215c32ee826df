package step

import "strings"

// CommentInput is the input to the comment subcommand.
type CommentInput struct {
	// Lines are the comment texts. Each may contain line breaks of its own.
	Lines []string
}

// Build prefixes every line with "# ". A single trailing line break does not
// start another line.
func (in CommentInput) Build() (*Document, error) {
	if len(in.Lines) == 0 {
		return nil, newError(MissingInput, "comment requires at least one string")
	}

	var lines []string
	for _, s := range in.Lines {
		s = strings.TrimSuffix(strings.ReplaceAll(s, "\r\n", "\n"), "\n")
		for _, line := range strings.Split(s, "\n") {
			lines = append(lines, "# "+line)
		}
	}

	return &Document{
		Kind:  KindComment,
		Value: strings.Join(lines, "\n"),
	}, nil
}
