// Package core defines the shared language of articlecheck.
//
// This package contains:
//   - Manuscript entities (Paragraph, Document, SectionSummary, Category)
//   - Guideline records and their identity key
//   - The AnalysisResult produced by the fit engine
//   - Diagnostic severities shared by the rule engine and the CLI
//
// pkg/core imports only the standard library.
// All other packages depend on core, not the reverse.
package core
