// Package manuscript turns a paragraph stream into categorized section
// summaries.
//
// Segment walks the paragraphs of a core.Document and emits one
// core.SectionSummary per non-empty heading, counting whitespace-separated
// words of the body paragraphs that follow it. Categorize maps a section
// title onto a core.Category by checking an ordered keyword table.
//
//	doc, _ := loader.Load(ctx, "paper.docx")
//	sections := manuscript.Segment(doc.Paragraphs)
//	for _, s := range sections {
//		fmt.Println(s.Title, s.WordCount, s.Category)
//	}
package manuscript
