package tags

import "strings"

type Option struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// DefaultOptions is served when the vocabulary source cannot be loaded.
var DefaultOptions = []Option{
	{Value: "cpp", Label: "C++"},
	{Value: "python", Label: "Python"},
}

// Slugify lowercases a label and joins its words with underscores.
func Slugify(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), "_")
}

// Parse reads a vocabulary document where labels are separated by blank lines.
func Parse(text string) []Option {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var options []Option
	for _, chunk := range strings.Split(text, "\n\n") {
		label := strings.TrimSpace(chunk)
		if label == "" {
			continue
		}
		options = append(options, Option{Value: Slugify(label), Label: label})
	}
	return options
}

// FromLabels builds options from already separated labels.
func FromLabels(labels []string) []Option {
	options := make([]Option, 0, len(labels))
	for _, l := range labels {
		label := strings.TrimSpace(l)
		if label == "" {
			continue
		}
		options = append(options, Option{Value: Slugify(label), Label: label})
	}
	return options
}
