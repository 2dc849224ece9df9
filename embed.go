package aforo

import "embed"

// staticAssets holds the stylesheet served under /public/.
//
//go:embed static/*
var staticAssets embed.FS
