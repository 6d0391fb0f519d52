// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder,
// ai.SemanticExtractor, and ai.AIProvider for use in unit tests. The mocks
// allow tests to run without external AI services and give controlled,
// deterministic behavior.
//
// # Usage in Tests
//
//	// Basic usage with default behavior
//	mockProvider := mock.NewMockProvider()
//	meta, err := mockProvider.SemanticExtractor().Extract(ctx, "login user", ai.ModeKeywords)
//
//	// Canned model reply, parsed like the real extractor would
//	extractor := mock.NewMockSemanticExtractor().Respond(`{"keywords":["auth"]}`)
//
//	// Check call counts
//	count := mockProvider.(*mock.MockProvider).GetMockEmbedder().CallCount()
//
// # Default Behavior
//
//   - MockEmbedder: Returns hashed bag-of-words unit vectors
//   - MockSemanticExtractor: Uses the first words of the text as keywords
//   - MockProvider: Aggregates mock embedder and extractor
package mock
