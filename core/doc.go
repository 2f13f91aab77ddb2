// Package core contains the business logic for the Scholar Assist API.
// It is designed to be framework-agnostic and can be used independently
// of any web framework or infrastructure concerns.
//
// The core package is organized into several sub-packages:
//
// - domain: Pure domain models (PaperRecord, SelectionEntry, AgentTurn, MarkdownSection)
// - arxiv: Paper search against the arXiv query API
// - agent: Agent proxy that validates prompts and dispatches runtime replies
// - markdown: Sectionizing of streamed markdown text
// - errors: Custom error types for better error handling
// - interfaces: Contracts for external dependencies (cache, HTTP, logger)
//
// # Design Principles
//
// The core package follows clean architecture principles:
// - No external framework dependencies
// - All external dependencies are injected via interfaces
// - Business logic is testable in isolation
// - Domain models are free from persistence concerns
//
// # Usage Example
//
//	import (
//	    "scholar-assist-api/core/arxiv"
//	    "scholar-assist-api/core/interfaces"
//	)
//
//	// Create dependencies
//	deps := interfaces.Dependencies{
//	    Cache:      myCache,      // implements interfaces.Cache
//	    HTTPClient: myHTTPClient, // implements interfaces.HTTPClient
//	    Logger:     myLogger,     // implements interfaces.Logger
//	}
//
//	// Create service
//	searchService := arxiv.NewService(deps, arxiv.Config{})
//
//	// Search papers
//	papers, err := searchService.Search(ctx, "transformer architecture")
package core
