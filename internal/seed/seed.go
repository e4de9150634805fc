// Package seed reads the optional first-boot content file.
package seed

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/sitecms/internal/domain"
)

// File is the on-disk shape of a seed file.
type File struct {
	Settings     *domain.SiteSettings `yaml:"settings"`
	SMTPSettings *domain.SMTPConfig   `yaml:"smtpSettings"`
}

// envRef matches ${NAME}. Bare $NAME and $$ are left alone so secrets may contain '$'.
var envRef = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Loader reads a seed file from disk.
type Loader struct {
	filePath string
}

func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load parses the file and returns the Document it describes.
// ${VAR} references are expanded from the environment before parsing.
func (l *Loader) Load() (*domain.Document, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	data = expandEnv(data)

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	doc := domain.NewDocument()
	doc.Settings = f.Settings
	doc.SMTPSettings = f.SMTPSettings
	return doc, nil
}

// expandEnv replaces ${NAME} with the environment value, empty when unset.
func expandEnv(data []byte) []byte {
	return envRef.ReplaceAllFunc(data, func(ref []byte) []byte {
		name := envRef.FindSubmatch(ref)[1]
		return []byte(os.Getenv(string(name)))
	})
}
