package sentence

import "strings"

// trailing is the punctuation stripped from the end of a token for
// comparison.
const trailing = ".,?!"

// Token is one whitespace-separated piece of a sentence.
type Token struct {
	Text  string // as written, punctuation included
	Lead  string // punctuation-only pieces shown before the input
	Word  string // what the learner must type
	Punct string // trailing punctuation shown after the input
}

// Tokenize splits a sentence on whitespace and strips trailing . , ? !
// from every token. A token made only of punctuation is folded into the
// previous one, or into the next one when it opens the sentence.
func Tokenize(s string) []Token {
	var out []Token
	var lead []string
	for _, f := range strings.Fields(s) {
		word := strings.TrimRight(f, trailing)
		punct := f[len(word):]
		switch {
		case word == "" && len(out) > 0:
			last := &out[len(out)-1]
			last.Text += " " + f
			last.Punct += punct
		case word == "":
			lead = append(lead, f)
		default:
			tok := Token{Text: f, Word: word, Punct: punct}
			if len(lead) > 0 {
				tok.Lead = strings.Join(lead, " ") + " "
				tok.Text = tok.Lead + f
				lead = nil
			}
			out = append(out, tok)
		}
	}
	return out
}

// Words returns the comparison form of each token.
func Words(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Word
	}
	return out
}

// MarkInputs compares inputs to tokens position by position,
// case-sensitively. Missing inputs are marked wrong.
func MarkInputs(tokens []Token, inputs []string) []bool {
	marks := make([]bool, len(tokens))
	for i, t := range tokens {
		marks[i] = i < len(inputs) && strings.TrimSpace(inputs[i]) == t.Word
	}
	return marks
}
