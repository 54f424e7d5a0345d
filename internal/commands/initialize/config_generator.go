package initialize

import (
	"bytes"

	"github.com/goccy/go-yaml"
	"github.com/indaco/podsrc/internal/config"
)

const configHeader = `# podsrc configuration file
#
# sources:   named directories holding pod specifications
# discovery: globs (relative to each source) selecting specification files
#            and globs excluding files or directories
# theme:     prompt theme (podsrc, base, base16, catppuccin, charm, dracula)
`

// NewConfig returns the configuration written by init for a source rooted
// at sourcePath.
func NewConfig(sourcePath string, tpl *Template) *config.Config {
	return &config.Config{
		Sources: []config.SourceConfig{{Name: config.DefaultSourceName, Path: sourcePath}},
		Discovery: &config.DiscoveryConfig{
			Patterns: tpl.Patterns,
			Exclude:  []string{"build"},
		},
	}
}

// commentedMarshaler encodes a config as YAML below an explanatory header.
type commentedMarshaler struct{}

func (commentedMarshaler) Marshal(v any) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(configHeader)
	buf.WriteString("\n")
	buf.Write(data)
	return buf.Bytes(), nil
}

// GenerateConfigWithComments returns the YAML document init writes.
func GenerateConfigWithComments(sourcePath string, tpl *Template) ([]byte, error) {
	return commentedMarshaler{}.Marshal(NewConfig(sourcePath, tpl))
}
