package parser

import (
	"regexp"
	"strings"

	"gopkg.in/yaml.v2"
)

var frontMatterPattern = regexp.MustCompile(`(?ms)\A---\n(.+?)\n---`)

// ParseFrontMatter pulls the title and tags out of a note's leading YAML
// block. Notes without front matter, or with front matter that does not
// parse, yield an empty title and no tags.
func ParseFrontMatter(content []byte) (title string, tags []string) {
	match := frontMatterPattern.FindSubmatch(content)
	if len(match) < 2 {
		return "", nil
	}

	var data struct {
		Title string   `yaml:"title"`
		Tags  []string `yaml:"tags"`
	}
	if err := yaml.Unmarshal(match[1], &data); err != nil {
		return "", nil
	}

	return strings.TrimSpace(data.Title), data.Tags
}
