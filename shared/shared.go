package shared

import (
	"net/url"
	"strings"

	"trekking/shared/constant"
)

const cacheKeySeparator = ":"

// BuildCacheKey joins a prefix and its parts into a single cache key.
func BuildCacheKey(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}

	return prefix + cacheKeySeparator + strings.Join(parts, cacheKeySeparator)
}

// LoginRedirect builds the login URL that brings the user back to returnTo after signing in.
func LoginRedirect(loginPath, returnTo string) string {
	if loginPath == "" {
		loginPath = constant.DefaultLoginPath
	}

	if returnTo == "" {
		return loginPath
	}

	separator := "?"
	if strings.Contains(loginPath, "?") {
		separator = "&"
	}

	return loginPath + separator + constant.RequestQueryNext + "=" + url.QueryEscape(returnTo)
}
