// Package text repairs and canonicalizes text read from a PDF word layer.
//
// PDF generators and extractors leave characteristic damage in text:
// escape sequences that survive literally, UTF-8 that was decoded as
// Latin-1, typographic punctuation, accented letters in otherwise ASCII
// headings, and tokens emitted twice. [Normalize] undoes all of these in a
// fixed order:
//
//	line := text.Normalize(`Section Section 2 Overview`) // "Section 2 Overview"
//
// Each step is exported on its own ([Unescape], [RepairLatin1],
// [ReplacePunctuation], [StripAccents], [CollapseRepeats]) and each one is
// total: when a step cannot be applied its input is returned unchanged.
package text
