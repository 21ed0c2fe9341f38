// cache.go

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
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	// Rendered help pages are cheap to keep and invalidate naturally;
	// 30 minutes covers a long console session.
	helpCacheExpiration = 30 * time.Minute
	// Clean up expired entries every 5 minutes
	helpCacheCleanup = 5 * time.Minute
)

// NewHelpCache creates a cache for rendered command help pages, keyed by
// command name and column width so resizes re-render.
func NewHelpCache() *cache.Cache {
	return cache.New(helpCacheExpiration, helpCacheCleanup)
}

func helpCacheKey(name string, columns int) string {
	return fmt.Sprintf("%s@%d", name, columns)
}

// CachedDetail returns the rendered detail help for a command, rendering
// and caching it on a miss. A nil cache renders directly. The ok result
// is false for unknown commands.
func CachedDetail(c *cache.Cache, registry *Registry, name string, columns int) (string, bool) {
	if c == nil {
		return registry.Detail(name, columns)
	}

	key := helpCacheKey(name, columns)
	if val, found := c.Get(key); found {
		return val.(string), true
	}

	detail, ok := registry.Detail(name, columns)
	if !ok {
		return "", false
	}
	c.Set(key, detail, helpCacheExpiration)
	return detail, true
}
