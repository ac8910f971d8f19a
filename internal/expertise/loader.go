package expertise

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Profile is the domain bundle as decoded from YAML. Its schema is opaque.
type Profile map[string]any

var profileExts = []string{".yaml", ".yml"}

// Loader reads expertise profiles from a directory holding one file per domain.
type Loader struct {
	dir    string
	logger *zap.Logger
}

func NewLoader(dir string, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{dir: dir, logger: logger}
}

func (l *Loader) Dir() string {
	return l.dir
}

// Load resolves the domain (detecting it from text when domain is empty) and
// returns its profile. Unknown domains, missing files and unreadable files all
// yield an empty profile.
func (l *Loader) Load(domain, text string) (string, Profile) {
	if domain == "" {
		domain = DetectDomain(text)
	}
	if domain == "" {
		return "", Profile{}
	}
	return domain, l.read(domain)
}

func (l *Loader) read(domain string) Profile {
	// domain is used as a file name
	if domain != filepath.Base(domain) {
		l.logger.Warn("rejected expertise domain", zap.String("domain", domain))
		return Profile{}
	}

	for _, ext := range profileExts {
		path := filepath.Join(l.dir, domain+ext)

		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			l.logger.Warn("read expertise profile", zap.String("path", path), zap.Error(err))
			return Profile{}
		}

		profile := Profile{}
		if err := yaml.Unmarshal(data, &profile); err != nil {
			l.logger.Warn("parse expertise profile", zap.String("path", path), zap.Error(err))
			return Profile{}
		}
		if profile == nil {
			profile = Profile{}
		}
		return profile
	}

	l.logger.Debug("no expertise profile", zap.String("domain", domain), zap.String("dir", l.dir))
	return Profile{}
}
