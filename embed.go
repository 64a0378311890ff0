package techfeed

import "embed"

// EmbeddedAssets contains static assets shipped with the server: feed.js,
// which polls the feed section while the articles are loading.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
