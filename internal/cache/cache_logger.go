package cache

import (
	"context"
	"log/slog"
)

// SafeInvalidatePattern invalidates a pattern and logs failures instead of returning them
func SafeInvalidatePattern(ctx context.Context, helper *CacheHelper, pattern string) {
	if err := helper.InvalidatePattern(ctx, pattern); err != nil {
		slog.ErrorContext(ctx, "Failed to invalidate cache pattern",
			"error", err,
			"pattern", pattern)
	}
}

// SafeDelete deletes keys and logs failures instead of returning them
func SafeDelete(ctx context.Context, helper *CacheHelper, keys ...string) {
	if err := helper.Delete(ctx, keys...); err != nil {
		slog.ErrorContext(ctx, "Failed to delete cache keys",
			"error", err,
			"keys", keys)
	}
}

// SafeBumpGeneration advances the namespace generation and logs failures
func SafeBumpGeneration(ctx context.Context, helper *CacheHelper) {
	if err := helper.BumpGeneration(ctx); err != nil {
		slog.ErrorContext(ctx, "Failed to bump cache generation",
			"error", err,
			"prefix", helper.prefix)
	}
}

// InvalidateUserCache drops the cached row for email and fences off in-flight fills
func InvalidateUserCache(ctx context.Context, cm *CacheManager, email string) {
	if cm == nil {
		return
	}
	SafeBumpGeneration(ctx, cm.User)
	SafeDelete(ctx, cm.User, UserEmailKey(email))
}

// InvalidateClassCache drops every cached class listing and fences off in-flight fills
func InvalidateClassCache(ctx context.Context, cm *CacheManager, classID string) {
	if cm == nil {
		return
	}
	SafeBumpGeneration(ctx, cm.Class)
	SafeInvalidatePattern(ctx, cm.Class, "list:*")
	slog.DebugContext(ctx, "Class cache invalidated", "class_id", classID)
}
