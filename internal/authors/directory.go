// Interlink - Content Directory Relevance and Entity Linking Engine
// Copyright 2026 C. Palmer (cpalmer418)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/cpalmer418/interlink

// Package authors maps content topics to editorial author profiles.
package authors

import (
	"strings"

	"github.com/cpalmer418/interlink/internal/models"
)

// Directory resolves which author profile fronts a given topic. Profiles
// are loaded once at startup from configuration; the directory is immutable
// afterward and safe for concurrent use.
type Directory struct {
	profiles       []models.AuthorProfile
	defaultProfile models.AuthorProfile
	hasDefault     bool
}

// NewDirectory builds a directory from configured profiles. defaultName
// selects the fallback attribution; when empty, the first profile with no
// topic keywords becomes the default, then the first profile.
func NewDirectory(profiles []models.AuthorProfile, defaultName string) *Directory {
	d := &Directory{profiles: profiles}
	if defaultName != "" {
		for _, p := range profiles {
			if strings.EqualFold(p.Name, defaultName) {
				d.defaultProfile = p
				d.hasDefault = true
				break
			}
		}
	}
	if !d.hasDefault {
		for _, p := range profiles {
			if len(p.Topics) == 0 {
				d.defaultProfile = p
				d.hasDefault = true
				break
			}
		}
	}
	if !d.hasDefault && len(profiles) > 0 {
		d.defaultProfile = profiles[0]
		d.hasDefault = true
	}
	return d
}

// Lookup returns the profile whose topic keywords match the hint, falling
// back to the default profile. Matching is case-insensitive containment in
// either direction, so a hint of "ai writing tools" matches a profile topic
// of "writing". The boolean reports whether any profile was found at all.
func (d *Directory) Lookup(topicHint string) (models.AuthorProfile, bool) {
	hint := strings.ToLower(strings.TrimSpace(topicHint))
	if hint != "" {
		for _, p := range d.profiles {
			for _, topic := range p.Topics {
				t := strings.ToLower(strings.TrimSpace(topic))
				if t == "" {
					continue
				}
				if strings.Contains(hint, t) || strings.Contains(t, hint) {
					return p, true
				}
			}
		}
	}
	if d.hasDefault {
		return d.defaultProfile, true
	}
	return models.AuthorProfile{}, false
}

// Profiles returns all configured profiles, used by the entities listing
// endpoint for operator inspection.
func (d *Directory) Profiles() []models.AuthorProfile {
	out := make([]models.AuthorProfile, len(d.profiles))
	copy(out, d.profiles)
	return out
}
