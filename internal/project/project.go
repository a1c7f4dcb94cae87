// Package project groups related sessions and maintains consistent
// visual style across all their assets. Every session created through
// a project seeds its parameters from the project's style profile and
// per-asset-class overrides.
package project

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/roach88/forge/internal/param"
	"github.com/roach88/forge/internal/session"
)

// Project is a named group of sessions sharing one style profile.
type Project struct {
	ProjectID    uuid.UUID    `json:"project_id"`
	Name         string       `json:"name"`
	Description  string       `json:"description,omitempty"`
	StyleProfile StyleProfile `json:"style_profile"`

	// Sessions lists the ids of sessions created through this project.
	Sessions []uuid.UUID `json:"sessions"`

	// ClassOverrides fine-tunes parameters per asset class. The map is
	// keyed by the closed AssetClass enum; iteration uses canonical
	// enum order so serialization and application stay deterministic.
	ClassOverrides ClassOverrides `json:"class_overrides,omitempty"`

	CreatedAt    int64 `json:"created_at"`
	LastModified int64 `json:"last_modified"`
}

// ClassOverrides maps asset classes to replacement parameter sets.
type ClassOverrides map[param.AssetClass]param.Set

// MarshalJSON encodes overrides as an object keyed by wire names, in
// canonical enum order.
func (c ClassOverrides) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	for _, class := range param.AllAssetClasses {
		set, ok := c[class]
		if !ok {
			continue
		}
		if !first {
			b.WriteByte(',')
		}
		first = false
		setJSON, err := json.Marshal(set)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(&b, "%q:%s", class.String(), setJSON)
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// UnmarshalJSON decodes wire-name keys back into enum keys, rejecting
// unknown classes.
func (c *ClassOverrides) UnmarshalJSON(data []byte) error {
	var raw map[string]param.Set
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(ClassOverrides, len(raw))
	for name, set := range raw {
		class, err := param.ParseAssetClass(name)
		if err != nil {
			return fmt.Errorf("class override: %w", err)
		}
		out[class] = set
	}
	*c = out
	return nil
}

// New creates a project with a validated style profile. Blank names
// fail with EMPTY_NAME.
func New(name string, style StyleProfile) (*Project, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &Error{Code: ErrCodeEmptyName, Message: "project name cannot be empty"}
	}
	if err := style.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().Unix()
	p := &Project{
		ProjectID:      uuid.New(),
		Name:           name,
		StyleProfile:   style,
		Sessions:       []uuid.UUID{},
		ClassOverrides: ClassOverrides{},
		CreatedAt:      now,
		LastModified:   now,
	}

	slog.Info("project created", "project_id", p.ProjectID, "name", name)
	return p, nil
}

// CreateSession creates a session seeded from the project's style
// profile, applies any class override, and registers the session with
// the project.
func (p *Project) CreateSession(assetClass param.AssetClass, baseInput session.BaseInputRef, baseSeed param.Seed) (*session.Session, error) {
	s, err := session.New(assetClass, baseInput, baseSeed)
	if err != nil {
		return nil, err
	}

	s.BaseParams = p.StyleProfile.ApplyToParams(s.BaseParams)

	if override, ok := p.ClassOverrides[assetClass]; ok {
		slog.Debug("applying class parameter override",
			"project_id", p.ProjectID,
			"asset_class", assetClass.String())
		s.BaseParams = override
	}

	p.Sessions = append(p.Sessions, s.SessionID)
	p.touch()

	slog.Info("session created in project",
		"project_id", p.ProjectID,
		"session_id", s.SessionID,
		"total_sessions", len(p.Sessions))

	return s, nil
}

// LearnFromApproval records an approved asset as a style reference.
// Style feature extraction is a future AI integration point; today
// this only accumulates the reference list.
func (p *Project) LearnFromApproval(approvedID, assetPath string) {
	p.StyleProfile.AddReference(approvedID, assetPath, time.Now().Unix())
	p.touch()
}

// SetClassOverride installs a per-class parameter override.
func (p *Project) SetClassOverride(class param.AssetClass, params param.Set) error {
	if err := params.Validate(); err != nil {
		return &Error{
			Code:    ErrCodeInvalidOverride,
			Message: fmt.Sprintf("override for %s", class),
			Err:     err,
		}
	}
	if p.ClassOverrides == nil {
		p.ClassOverrides = ClassOverrides{}
	}
	p.ClassOverrides[class] = params
	p.touch()
	return nil
}

// ClearClassOverride removes a per-class override, if present.
func (p *Project) ClearClassOverride(class param.AssetClass) {
	if _, ok := p.ClassOverrides[class]; ok {
		delete(p.ClassOverrides, class)
		p.touch()
	}
}

func (p *Project) touch() {
	p.LastModified = time.Now().Unix()
}

// Validate checks the project name, style profile, and every class
// override.
func (p *Project) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return &Error{Code: ErrCodeEmptyName, Message: "project name cannot be empty"}
	}
	if err := p.StyleProfile.Validate(); err != nil {
		return err
	}
	for _, class := range param.AllAssetClasses {
		override, ok := p.ClassOverrides[class]
		if !ok {
			continue
		}
		if err := override.Validate(); err != nil {
			return &Error{
				Code:    ErrCodeInvalidOverride,
				Message: fmt.Sprintf("override for %s", class),
				Err:     err,
			}
		}
	}
	return nil
}
