// Package web holds the test site's embedded page and static assets.
package web

import "embed"

//go:embed static/*
var ContentFS embed.FS
