// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

package extension

// Metadata is the declaration an extension returns from a single run: its
// user-facing text and parameters, already resolved against one locale's
// string table.
type Metadata struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Preview     string  `json:"preview,omitempty"`
	Params      []Param `json:"params,omitempty"`
}

// Param is a single declared extension parameter.
type Param struct {
	Name        string `json:"name"`
	Type        string `json:"type,omitempty"`
	Default     any    `json:"default,omitempty"`
	Description string `json:"description,omitempty"`
}

// LocalizedString maps a locale code to the value that locale supplied.
type LocalizedString map[string]string

// MergedParam is a parameter whose description carries every locale that supplied one.
type MergedParam struct {
	Name        string          `json:"name"`
	Type        string          `json:"type,omitempty"`
	Default     any             `json:"default,omitempty"`
	Description LocalizedString `json:"description,omitempty"`
}

// MergedMetadata is the aggregate of per-locale metadata across every run.
// Each leaf is keyed by every locale that supplied it.
type MergedMetadata struct {
	Title       LocalizedString `json:"title,omitempty"`
	Description LocalizedString `json:"description,omitempty"`
	Preview     LocalizedString `json:"preview,omitempty"`
	Params      []MergedParam   `json:"params,omitempty"`
}

// Localize projects the metadata from a single run into a MergedMetadata
// keyed entirely by the given locale code. Empty fields are omitted so the
// merge never records an empty value against a locale.
func (m Metadata) Localize(code string) MergedMetadata {
	out := MergedMetadata{}
	if m.Title != "" {
		out.Title = LocalizedString{code: m.Title}
	}
	if m.Description != "" {
		out.Description = LocalizedString{code: m.Description}
	}
	if m.Preview != "" {
		out.Preview = LocalizedString{code: m.Preview}
	}
	for _, p := range m.Params {
		mp := MergedParam{Name: p.Name, Type: p.Type, Default: p.Default}
		if p.Description != "" {
			mp.Description = LocalizedString{code: p.Description}
		}
		out.Params = append(out.Params, mp)
	}
	return out
}

// Overrides returns a copy of m keeping only the leaves whose value differs
// from base. The sandbox translator falls back to the key itself when a
// locale's string table lacks an entry, so a leaf that merely echoes the base
// run is untranslated and must not be attributed to that locale. Params keep
// their name, type, and default either way; only the description is dropped.
func (m Metadata) Overrides(base Metadata) Metadata {
	out := m
	if out.Title == base.Title {
		out.Title = ""
	}
	if out.Description == base.Description {
		out.Description = ""
	}
	if out.Preview == base.Preview {
		out.Preview = ""
	}
	baseDesc := make(map[string]string, len(base.Params))
	for _, p := range base.Params {
		baseDesc[p.Name] = p.Description
	}
	out.Params = append([]Param(nil), m.Params...)
	for i, p := range out.Params {
		if d, ok := baseDesc[p.Name]; ok && p.Description == d {
			out.Params[i].Description = ""
		}
	}
	return out
}

// Merge folds other into m. Leaves are combined key by key so no locale's
// data is lost; on a true key collision the value from other wins. Params are
// matched by name, keeping m's declaration order, with params new to other
// appended. Non-localized param fields (type, default) follow the same
// last-wins rule.
func (m *MergedMetadata) Merge(other MergedMetadata) {
	m.Title = mergeLocalized(m.Title, other.Title)
	m.Description = mergeLocalized(m.Description, other.Description)
	m.Preview = mergeLocalized(m.Preview, other.Preview)

	byName := make(map[string]int, len(m.Params))
	for i, p := range m.Params {
		byName[p.Name] = i
	}
	for _, p := range other.Params {
		i, ok := byName[p.Name]
		if !ok {
			m.Params = append(m.Params, p)
			continue
		}
		existing := &m.Params[i]
		if p.Type != "" {
			existing.Type = p.Type
		}
		if p.Default != nil {
			existing.Default = p.Default
		}
		existing.Description = mergeLocalized(existing.Description, p.Description)
	}
}

func mergeLocalized(dst, src LocalizedString) LocalizedString {
	if len(src) == 0 {
		return dst
	}
	if dst == nil {
		dst = LocalizedString{}
	}
	for code, v := range src {
		dst[code] = v
	}
	return dst
}
