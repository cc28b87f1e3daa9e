package controllers

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// GetClientIP determines the actual client IP address considering proxies.
// The returned address is the visit dedup key, so the resolution order must
// stay stable: Cloudflare header first, then the first X-Forwarded-For entry,
// then the connection address.
func GetClientIP(c *fiber.Ctx) string {
	// 1. Check for Cloudflare header
	if cfIP := c.Get("CF-Connecting-IP"); cfIP != "" {
		return normalizeIP(cfIP)
	}

	// 2. Check for X-Forwarded-For header (standard proxy header)
	// It can contain a list of IPs - the first one is the original client IP
	if xff := c.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return normalizeIP(ip)
		}
	}

	// 3. If no proxy headers were found, use the normal IP address
	return normalizeIP(c.IP())
}

// normalizeIP strips the ::ffff: prefix from IPv4-mapped-IPv6 addresses so
// the same client always maps to the same visit row.
func normalizeIP(ip string) string {
	return strings.TrimPrefix(strings.TrimSpace(ip), "::ffff:")
}
