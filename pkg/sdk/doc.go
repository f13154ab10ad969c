// Package modmatch matches free-text queries (job postings, curriculum topics)
// against a catalog of course modules and ranks the results.
//
// Everything runs in-process: the normalization pipeline, the section
// classifier and both similarity backends. A dense embedding provider is
// optional; without one only the lexical backend is available.
//
// # Single query
//
//	client, _ := modmatch.New(ctx)
//	defer client.Close()
//	recs, _ := client.MatchQuery(ctx, modmatch.Query{Title: "Data Engineer"}, catalog, modmatch.BackendLexical, 5)
//
// # Many topics against one catalog
//
//	client, _ := modmatch.New(ctx,
//	    modmatch.WithOpenAI(modmatch.OpenAIConfig{BaseURL: url, Model: "intfloat/multilingual-e5-large"}),
//	    modmatch.WithValkeyCache("localhost:6379", "", 24*time.Hour),
//	)
//	recs, _ := client.MatchTopics(ctx, topics, catalog, "")
package modmatch
