// Package cinedex embeds the content-similarity recommendation engine
// in-process: load a catalog snapshot, build the TF-IDF similarity
// index once, and answer "items similar to X" and catalog browse
// queries without running the HTTP server.
//
//	client, err := cinedex.New(cinedex.WithSnapshot("data/content_raw.csv"))
//	if err != nil { ... }
//	recs, err := client.Recommend("The Matrix", 10)
package cinedex
