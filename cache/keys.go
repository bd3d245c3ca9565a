package cache

import (
	"fmt"

	"github.com/htz-portal/portal-api/logger"
)

// Cache keys for the cross-view data the admin screens depend on and the
// hot public reads.
const (
	KeyRoleStats = "portal:roles:stats"
)

func NewsListKey(lang string, page int, category string) string {
	return fmt.Sprintf("portal:news:list:%s:%d:%s", lang, page, category)
}

func NewsItemKey(lang, slug string) string {
	return fmt.Sprintf("portal:news:item:%s:%s", lang, slug)
}

func EventListKey(lang string, page int) string {
	return fmt.Sprintf("portal:events:list:%s:%d", lang, page)
}

func TranslationsKey(lang string) string {
	return fmt.Sprintf("portal:translations:%s", lang)
}

// InvalidateNews drops every cached public news view. List keys vary by
// page and category, so a scan-by-pattern is used on the shared layer.
func InvalidateNews() {
	invalidatePattern("portal:news:*")
}

func InvalidateEvents() {
	invalidatePattern("portal:events:*")
}

func InvalidateTranslations() {
	invalidatePattern("portal:translations:*")
}

func invalidatePattern(pattern string) {
	if !Ready() {
		return
	}
	iter := Client.Scan(Ctx, 0, pattern, 0).Iterator()
	keys := make([]string, 0, 16)
	for iter.Next(Ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		logger.L.Errorw("cache scan failed", "pattern", pattern, "error", err)
		return
	}
	// Local entries matching the pattern may survive until their 30s TTL;
	// the published deletes cover the exact keys found on Redis.
	Invalidate(keys...)
}
