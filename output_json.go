package designgen

import (
	"encoding/json"
	"io"
)

// WriteTokensJSON writes the token set as indented JSON.
func WriteTokensJSON(w io.Writer, tokens *ThemeTokens) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(tokens)
}

// WriteAnalysisJSON writes a full analysis result as indented JSON.
func WriteAnalysisJSON(w io.Writer, result *AnalysisResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}
