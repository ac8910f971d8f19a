package audit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

const fileTimeLayout = "20060102T150405.000000000Z"

// FileSink writes one file per record into dir.
type FileSink struct {
	dir string
}

func NewFileSink(dir string) *FileSink {
	return &FileSink{dir: dir}
}

func (s *FileSink) Dir() string {
	return s.dir
}

// FileName is <utc timestamp>_<random suffix>_<step>.log; the suffix keeps
// records written within the same nanosecond apart.
func FileName(step string, at time.Time) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%s_%s_%s.log", at.UTC().Format(fileTimeLayout), suffix, step)
}

func (s *FileSink) Record(step string, payload any, at time.Time) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create audit dir: %w", err)
	}

	data, err := encode(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", step, err)
	}

	path := filepath.Join(s.dir, FileName(step, at))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write audit record: %w", err)
	}
	return nil
}

// encode writes text payloads as-is and everything else as indented JSON.
func encode(payload any) ([]byte, error) {
	switch v := payload.(type) {
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case fmt.Stringer:
		return []byte(v.String()), nil
	default:
		return json.MarshalIndent(v, "", "  ")
	}
}
