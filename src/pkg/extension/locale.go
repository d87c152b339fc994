// SPDX-License-Identifier: Apache-2.0
// SPDX-FileCopyrightText: 2024-Present The Extpack Authors

package extension

import (
	"path"
	"regexp"
	"strings"
)

// localeName matches `<lang>[_<REGION>].json` where lang is a two-or-three-letter
// language code and REGION is a two-or-three-letter region code.
var localeName = regexp.MustCompile(`^[a-z]{2,3}(_[A-Z]{2,3})?\.json$`)

// LocaleRecord is one parsed locale resource file.
type LocaleRecord struct {
	Code    string
	Strings map[string]string
}

// IsLocaleName reports whether name (a bare file name) is a valid locale file name.
func IsLocaleName(name string) bool {
	return localeName.MatchString(name)
}

// LocaleCode extracts the locale code from a locale file name or path, e.g.
// "locales/pt_BR.json" -> "pt_BR". Returns false if the name does not match.
func LocaleCode(p string) (string, bool) {
	name := path.Base(p)
	if !localeName.MatchString(name) {
		return "", false
	}
	return strings.TrimSuffix(name, ".json"), true
}
