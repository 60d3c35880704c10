package authz

import (
	"context"
	"errors"
	"os"

	"gopkg.in/yaml.v3"
)

// fileGrantSource loads role grants from a YAML file of the form:
//
//	grants:
//	  "0xdeployer": [default_admin, admin]
//	  "0xoperator": [admin]
type fileGrantSource struct {
	path string
}

// NewFileGrantSource creates a GrantSource backed by a YAML file.
// The file is read on every Load, so a restart picks up edits but a running
// oracle keeps its snapshot.
func NewFileGrantSource(path string) GrantSource {
	return &fileGrantSource{path: path}
}

func (s *fileGrantSource) Load(ctx context.Context) (map[Principal][]Role, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadGrants, err)
	}

	var doc struct {
		Grants map[Principal][]Role `yaml:"grants"`
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrFailedToLoadGrants, err)
	}

	if doc.Grants == nil {
		doc.Grants = make(map[Principal][]Role)
	}

	return doc.Grants, nil
}
