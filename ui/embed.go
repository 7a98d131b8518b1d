//go:build uifrontend

// Package ui embeds the inspector's static frontend for production
// serving, mirroring the teacher's ui package (same embed.FS-over-HTTP
// approach, scaled down from a full SPA to one static status page).
package ui

import "embed"

// Frontend holds the inspector's static HTML/JS, built from
// ui/frontend/dist/.
//
//go:embed all:frontend/dist
var Frontend embed.FS
