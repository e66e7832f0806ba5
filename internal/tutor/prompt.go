package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/wordiz/internal/content"
	"github.com/abhisek/wordiz/internal/llm"
)

// SystemPrompt frames every question for a primary-school learner.
const SystemPrompt = `You are an English learning assistant for primary school students.
Help explain English words, sentences, and grammar in a clear and simple way.
Use Chinese to explain when helpful.
Format your response with clear structure using headings and bullet points.
Respond in Simplified Chinese with Chinese punctuation.`

var explanationSchema = &llm.Schema{
	Name:        "word-explanation",
	Description: "A short explanation of one English word for a primary school learner",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"meaning": map[string]any{"type": "string", "description": "Simplified Chinese explanation of the meaning"},
			"usage":   map[string]any{"type": "string", "description": "When and how the word is used"},
			"examples": map[string]any{
				"type":     "array",
				"minItems": 1,
				"maxItems": 3,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"en": map[string]any{"type": "string"},
						"zh": map[string]any{"type": "string"},
					},
					"required":             []any{"en", "zh"},
					"additionalProperties": false,
				},
			},
			"tip": map[string]any{"type": "string", "description": "A memory tip"},
		},
		"required":             []any{"meaning", "usage", "examples", "tip"},
		"additionalProperties": false,
	},
}

func explainPrompt(w content.WordItem) string {
	var b strings.Builder
	fmt.Fprintf(&b, "请讲解英语单词 %q", w.Word)
	if w.Meaning != "" {
		fmt.Fprintf(&b, "（%s）", w.Meaning)
	}
	b.WriteString("。")
	if w.Example != "" {
		fmt.Fprintf(&b, "\n课本例句：%s", w.Example)
	}
	b.WriteString("\n请给出中文释义、用法、最多三个简单例句和一个记忆小窍门。")
	return b.String()
}
