// Package util holds small helpers shared by the text-format parsers.
package util

// Fields identifies up to the first len(tokens) whitespace-delimited tokens
// of line, returning the number of tokens saved.  Any (group of) characters
// <= ' ' is treated as a delimiter.  The saved tokens alias line.
//
// If line holds more than len(tokens) tokens, the return value is
// len(tokens)+1 when tokens is non-empty, so that callers requiring an exact
// field count can detect the excess without scanning the rest of the line.
func Fields(tokens [][]byte, line []byte) int {
	posEnd := 0
	lineLen := len(line)
	for tokenIdx := range tokens {
		pos := posEnd
		for ; pos != lineLen; pos++ {
			if line[pos] > ' ' {
				break
			}
		}
		if pos == lineLen {
			return tokenIdx
		}
		posEnd = pos
		for ; posEnd != lineLen; posEnd++ {
			if line[posEnd] <= ' ' {
				break
			}
		}
		tokens[tokenIdx] = line[pos:posEnd]
	}
	if len(tokens) == 0 {
		return 0
	}
	for ; posEnd != lineLen; posEnd++ {
		if line[posEnd] > ' ' {
			return len(tokens) + 1
		}
	}
	return len(tokens)
}
