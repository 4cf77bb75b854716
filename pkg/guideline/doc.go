// Package guideline holds the journal guideline catalog: loading the flat
// JSON record file, lookup by journal and article type, catalog hygiene
// checks, parsing of the free-text limit fields, and generation of
// submission checklists from a single record.
//
// Records are immutable once loaded. Limit fields are human-authored text
// ("250 words", "1,500 words max"); ExtractCount pulls the first integer
// out of them and treats anything unparseable as "no limit".
package guideline
