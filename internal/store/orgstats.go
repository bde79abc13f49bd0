package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Lqint/RMBSVolReport/internal/domain"
)

// LoadOrgStats reads the org metadata file. JSON and YAML are both
// accepted, decided by extension, because the file is hand-maintained by
// whoever runs the campaign. An empty path or a missing file yields the
// built-in defaults.
func LoadOrgStats(path string) (domain.OrgStats, error) {
	if path == "" {
		return domain.DefaultOrgStats(), nil
	}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return domain.DefaultOrgStats(), nil
	}
	if err != nil {
		return domain.OrgStats{}, err
	}

	var org domain.OrgStats
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(raw, &org); err != nil {
			return domain.OrgStats{}, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(raw, &org); err != nil {
			return domain.OrgStats{}, fmt.Errorf("parse %s: %w", path, err)
		}
	}
	return org, nil
}
