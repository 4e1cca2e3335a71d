// Copyright 2026 The Filmdash Authors
// SPDX-License-Identifier: MIT

// Package redact strips credentials from strings before they appear in
// output, logs, or error messages.
package redact

import (
	"os"
	"regexp"
	"strings"
	"sync"
)

// Mask replaces every redacted value.
const Mask = "[REDACTED]"

// sensitiveEnvVars lists environment variable names whose values must never
// appear in output.
var sensitiveEnvVars = []string{
	"FILMDASH_ASSETS_TOKEN",
}

// userinfo matches the user:password@ part of a URL.
var userinfo = regexp.MustCompile(`([a-zA-Z][a-zA-Z0-9+.-]*://)[^/\s:@]+:[^/\s@]+@`)

var (
	cachedSecrets []string
	cacheOnce     sync.Once
)

func loadSecrets() {
	for _, envVar := range sensitiveEnvVars {
		val := os.Getenv(envVar)
		if val != "" && len(val) >= 4 {
			cachedSecrets = append(cachedSecrets, val)
		}
	}
}

// ResetForTest resets the cached secrets so tests can set env vars with
// t.Setenv between calls.
func ResetForTest() {
	cachedSecrets = nil
	cacheOnce = sync.Once{}
}

// String masks URL credentials and any known sensitive environment variable
// value in s. Secret values are cached on first call.
func String(s string) string {
	cacheOnce.Do(loadSecrets)
	s = userinfo.ReplaceAllString(s, "${1}"+Mask+"@")
	for _, secret := range cachedSecrets {
		s = strings.ReplaceAll(s, secret, Mask)
	}
	return s
}
