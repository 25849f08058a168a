package parser

import "strconv"

// parseInt and parseFloat trust the lexer's INT/REAL regexes to have
// already validated the lexeme shape; a parse failure here would indicate
// a lexer/parser token-kind mismatch bug, not malformed user input.
func parseInt(lexeme string) int64 {
	v, _ := strconv.ParseInt(lexeme, 10, 64)
	return v
}

func parseFloat(lexeme string) float64 {
	v, _ := strconv.ParseFloat(lexeme, 64)
	return v
}
