// cache_test.go

/**
 * Copyright 2025 (C) Naren Yellavula - All Rights Reserved
 *
 * This source code is protected under international copyright law.  All rights
 * reserved and protected by the copyright holders.
 * This file is confidential and only available to authorized individuals with the
 * permission of the copyright holders.  If you encounter this file and do not have
 * permission, please contact the copyright holders and delete this file.
 */

package main

import (
	"strings"
	"testing"
)

func TestCachedDetailRendersAndCaches(t *testing.T) {
	registry := NewRegistry(
		&Command{Name: "echo", Abstract: "Print arguments", Usage: "echo [text ...]"},
	)
	c := NewHelpCache()

	detail, ok := CachedDetail(c, registry, "echo", 80)
	if !ok {
		t.Fatal("CachedDetail(echo) = not found; want found")
	}
	if !strings.Contains(detail, "echo [text ...]") {
		t.Errorf("CachedDetail(echo) missing usage; got %q", detail)
	}

	// A second call must serve the cached page.
	if _, found := c.Get(helpCacheKey("echo", 80)); !found {
		t.Error("rendered detail was not cached")
	}
	again, ok := CachedDetail(c, registry, "echo", 80)
	if !ok || again != detail {
		t.Errorf("second CachedDetail(echo) = %q; want the cached %q", again, detail)
	}
}

func TestCachedDetailServesCacheOverRender(t *testing.T) {
	registry := NewRegistry(&Command{Name: "echo", Abstract: "Print arguments"})
	c := NewHelpCache()

	c.Set(helpCacheKey("echo", 40), "canned page", helpCacheExpiration)

	got, ok := CachedDetail(c, registry, "echo", 40)
	if !ok {
		t.Fatal("CachedDetail(echo) = not found; want found")
	}
	if got != "canned page" {
		t.Errorf("CachedDetail(echo) = %q; want the pre-seeded cache entry", got)
	}
}

func TestCachedDetailKeyedByColumns(t *testing.T) {
	registry := NewRegistry(&Command{Name: "echo", Abstract: "Print arguments"})
	c := NewHelpCache()

	if _, ok := CachedDetail(c, registry, "echo", 40); !ok {
		t.Fatal("CachedDetail(echo, 40) = not found; want found")
	}
	// A different width must not hit the 40-column entry.
	if _, found := c.Get(helpCacheKey("echo", 120)); found {
		t.Error("cache entry exists for a width that was never rendered")
	}
}

func TestCachedDetailUnknownCommand(t *testing.T) {
	registry := NewRegistry(&Command{Name: "echo", Abstract: "Print arguments"})
	c := NewHelpCache()

	if _, ok := CachedDetail(c, registry, "nope", 80); ok {
		t.Error("CachedDetail(nope) = found; want not found")
	}
	if _, found := c.Get(helpCacheKey("nope", 80)); found {
		t.Error("a missing command must not leave a cache entry")
	}
}

func TestCachedDetailNilCache(t *testing.T) {
	registry := NewRegistry(&Command{Name: "echo", Abstract: "Print arguments"})

	detail, ok := CachedDetail(nil, registry, "echo", 0)
	if !ok {
		t.Fatal("CachedDetail with nil cache = not found; want found")
	}
	if !strings.Contains(detail, "Print arguments") {
		t.Errorf("CachedDetail with nil cache = %q; want rendered detail", detail)
	}
}
