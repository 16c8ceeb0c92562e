package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/ini.v1"
)

// DefaultProfilesFile is looked up in the user's home directory.
const DefaultProfilesFile = ".fmcgcfg"

// Registry holds named report source profiles, one ini section each:
//
//	[prod]
//	kind   = s3
//	bucket = fmcg-reports
//	prefix = daily
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	Apply(ctx context.Context, profile string, src *SourceConfig) error
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

// DefaultProfilesPath returns ~/.fmcgcfg.
func DefaultProfilesPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultProfilesFile), nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

// Apply overrides src with the keys present in the profile. Keys the profile
// does not set are left untouched.
func (cr *cfgRegistry) Apply(_ context.Context, profile string, src *SourceConfig) error {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return fmt.Errorf("profile %s not found", profile)
	}

	set := func(key string, dst *string) {
		if section.HasKey(key) {
			*dst = section.Key(key).String()
		}
	}
	set("kind", &src.Kind)
	set("base_url", &src.BaseURL)
	set("root", &src.Root)
	set("bucket", &src.Bucket)
	set("prefix", &src.Prefix)
	set("prior_insights_path", &src.PriorInsightsPath)

	if section.HasKey("timeout") {
		timeout, err := section.Key("timeout").Duration()
		if err != nil {
			return fmt.Errorf("profile %s: invalid timeout: %w", profile, err)
		}
		src.Timeout = timeout
	}
	return nil
}
