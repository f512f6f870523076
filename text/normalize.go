package text

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// MinRepeatLength is the shortest word (in runes) that CollapseRepeats folds
const MinRepeatLength = 3

// punctuationReplacer maps typographic punctuation to ASCII
var punctuationReplacer = strings.NewReplacer(
	"\u2018", "'",
	"\u2019", "'",
	"\u201C", `"`,
	"\u201D", `"`,
	"\u2013", "-",
	"\u2014", "-",
	"\u00A0", " ",
)

// Normalize repairs and canonicalizes one line of extracted text. It never
// fails: any step that cannot be applied leaves its input unchanged.
//
// Steps, in order: literal escape decoding, Latin-1 mojibake repair,
// punctuation folding, accent stripping, repeated-word collapse, trim.
func Normalize(raw string) string {
	s := Unescape(raw)
	s = RepairLatin1(s)
	s = ReplacePunctuation(s)
	s = StripAccents(s)
	s = CollapseRepeats(s)
	return strings.TrimSpace(s)
}

// Unescape decodes backslash escape sequences that appear literally in the
// text (\n, \t, \xHH, \uHHHH, \UHHHHHHHH, octal, ...). Unknown escapes are
// kept as written. A malformed escape leaves the whole string unchanged.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	decoded, ok := unescape(s)
	if !ok {
		return s
	}
	return decoded
}

func unescape(s string) (string, bool) {
	var sb strings.Builder
	sb.Grow(len(s))

	for i := 0; i < len(s); {
		c := s[i]
		if c != '\\' {
			sb.WriteByte(c)
			i++
			continue
		}
		if i+1 >= len(s) {
			return "", false // trailing backslash
		}

		esc := s[i+1]
		i += 2
		switch esc {
		case '\n':
			// line continuation
		case '\\', '\'', '"':
			sb.WriteByte(esc)
		case 'a':
			sb.WriteByte('\a')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'v':
			sb.WriteByte('\v')
		case 'x', 'u', 'U':
			width := escapeWidth(esc)
			if i+width > len(s) {
				return "", false
			}
			v, err := strconv.ParseUint(s[i:i+width], 16, 32)
			if err != nil || v > unicode.MaxRune {
				return "", false
			}
			sb.WriteRune(rune(v))
			i += width
		case '0', '1', '2', '3', '4', '5', '6', '7':
			end := i - 1
			for end < len(s) && end < i+2 && s[end] >= '0' && s[end] <= '7' {
				end++
			}
			v, _ := strconv.ParseUint(s[i-1:end], 8, 32)
			sb.WriteRune(rune(v))
			i = end
		default:
			sb.WriteByte('\\')
			sb.WriteByte(esc)
		}
	}

	return sb.String(), true
}

// escapeWidth returns the hex digit count of a \x, \u or \U escape
func escapeWidth(esc byte) int {
	switch esc {
	case 'x':
		return 2
	case 'u':
		return 4
	}
	return 8
}

// RepairLatin1 reverses UTF-8 text that was decoded as Latin-1 ("CafÃ©" ->
// "Café"). If the text is not representable in Latin-1, or its Latin-1
// bytes are not valid UTF-8, it is returned unchanged.
func RepairLatin1(s string) string {
	if isASCII(s) {
		return s
	}
	encoded, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil || !utf8.ValidString(encoded) {
		return s
	}
	return encoded
}

// ReplacePunctuation folds curly quotes, en/em dashes and non-breaking
// spaces to their ASCII equivalents.
func ReplacePunctuation(s string) string {
	return punctuationReplacer.Replace(s)
}

// StripAccents applies compatibility decomposition, drops combining marks
// and recomposes to NFC.
func StripAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(isCombining)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// isCombining reports whether r has a non-zero canonical combining class
func isCombining(r rune) bool {
	var buf [utf8.UTFMax]byte
	n := utf8.EncodeRune(buf[:], r)
	return norm.NFD.Properties(buf[:n]).CCC() != 0
}

// CollapseRepeats folds immediately repeated words of at least
// MinRepeatLength runes into a single occurrence, comparing without case
// ("Section Section 2" -> "Section 2"). Only repeats separated by
// whitespace collapse; the first occurrence's spelling is kept.
func CollapseRepeats(s string) string {
	tokens := splitWords(s)
	if len(tokens) < 3 {
		return strings.TrimSpace(s)
	}

	out := make([]token, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		out = append(out, tok)
		if !tok.word || utf8.RuneCountInString(tok.text) < MinRepeatLength {
			continue
		}
		for i+2 < len(tokens) &&
			isSpaceRun(tokens[i+1]) &&
			tokens[i+2].word &&
			strings.EqualFold(tokens[i+2].text, tok.text) {
			i += 2
		}
	}

	var sb strings.Builder
	sb.Grow(len(s))
	for _, tok := range out {
		sb.WriteString(tok.text)
	}
	return strings.TrimSpace(sb.String())
}

// token is a maximal run of word or non-word runes
type token struct {
	text string
	word bool
}

func splitWords(s string) []token {
	var tokens []token
	start := 0
	inWord := false
	for i, r := range s {
		w := isWordRune(r)
		if i == 0 {
			inWord = w
			continue
		}
		if w != inWord {
			tokens = append(tokens, token{text: s[start:i], word: inWord})
			start = i
			inWord = w
		}
	}
	if start < len(s) {
		tokens = append(tokens, token{text: s[start:], word: inWord})
	}
	return tokens
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

func isSpaceRun(t token) bool {
	if t.word || t.text == "" {
		return false
	}
	for _, r := range t.text {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}
