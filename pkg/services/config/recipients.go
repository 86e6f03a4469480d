package config

import (
	"fmt"

	"github.com/qed-tools/fabric-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// RecipientDirectory resolves the email contacts for a buyer.
type RecipientDirectory interface {
	Lookup(buyer string) (domain.Recipients, error)
	Buyers() []string
}

// iniDirectory reads recipients from an ini profile file: one section per
// buyer with "primary" and "secondary" keys. Section names must match the
// buyer value on the reports exactly.
type iniDirectory struct {
	cfg      *ini.File
	fallback domain.Recipients
}

// NewRecipientDirectory loads the profile file at path. The fallback is
// used for buyers without a section of their own; a fallback with no
// primary contact makes unknown buyers an error.
func NewRecipientDirectory(path string, fallback domain.Recipients) (RecipientDirectory, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load recipient profiles: %w", err)
	}
	return &iniDirectory{cfg: cfg, fallback: fallback}, nil
}

func (d *iniDirectory) Lookup(buyer string) (domain.Recipients, error) {
	if buyer != "" && d.cfg.HasSection(buyer) {
		section := d.cfg.Section(buyer)
		r := domain.Recipients{
			Primary:   section.Key("primary").String(),
			Secondary: section.Key("secondary").String(),
		}
		if r.Primary == "" {
			r.Primary = d.fallback.Primary
		}
		if r.Secondary == "" {
			r.Secondary = d.fallback.Secondary
		}
		if r.Secondary == "" {
			r.Secondary = r.Primary
		}
		return r, nil
	}

	if d.fallback.Primary == "" {
		return domain.Recipients{}, fmt.Errorf("no recipients configured for buyer %q", buyer)
	}
	r := d.fallback
	if r.Secondary == "" {
		r.Secondary = r.Primary
	}
	return r, nil
}

func (d *iniDirectory) Buyers() []string {
	var buyers []string
	for _, section := range d.cfg.Sections() {
		if section.Name() == ini.DefaultSection {
			continue
		}
		if len(section.Keys()) > 0 {
			buyers = append(buyers, section.Name())
		}
	}
	return buyers
}
