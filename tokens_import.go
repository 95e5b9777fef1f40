package designgen

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

// ImportTokensFile reads a theme stylesheet and extracts its custom
// properties as theme tokens.
func ImportTokensFile(path string) (*ThemeTokens, error) {
	// #nosec G304 - path comes from trusted configuration
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return ImportTokensCSS(string(content))
}

// ImportTokensCSS extracts design tokens from CSS custom properties, so
// generation can reference an already-established palette instead of one
// mined from the document:
//
//	:root {
//	  --color-primary: #6200EE;
//	  --spacing-md: 16px;
//	}
//
// Hex values become color tokens; px values become spacing tokens. Order in
// the stylesheet is preserved as rank. Unrecognized values are skipped.
func ImportTokensCSS(content string) (*ThemeTokens, error) {
	tokens := &ThemeTokens{}
	lexer := css.NewLexer(parse.NewInputString(content))

	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken {
			// ErrorToken at EOF is normal - just break
			break
		}

		if tt == css.CustomPropertyNameToken {
			name := strings.TrimPrefix(string(text), "--")
			value := readPropertyValue(lexer)
			addImportedToken(tokens, name, value)
		}
	}

	if len(tokens.Colors) == 0 && len(tokens.Spacing) == 0 {
		return nil, fmt.Errorf("no custom properties found in stylesheet")
	}
	return tokens, nil
}

// readPropertyValue collects raw token text until the end of the
// declaration.
func readPropertyValue(lexer *css.Lexer) string {
	var parts []string
	for {
		tt, text := lexer.Next()
		if tt == css.ErrorToken || tt == css.SemicolonToken || tt == css.RightBraceToken {
			break
		}
		if tt == css.WhitespaceToken || tt == css.ColonToken {
			continue
		}
		parts = append(parts, string(text))
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// addImportedToken classifies one custom property by its value shape.
func addImportedToken(tokens *ThemeTokens, name, value string) {
	if hex, ok := normalizeHex(value); ok {
		index := len(tokens.Colors)
		tokens.Colors = append(tokens.Colors, ColorToken{
			Name:          tokenNameFrom(name, "color"),
			Value:         hex,
			UsageCategory: colorUsageCategory(hex, index),
			Count:         1,
		})
		return
	}

	if v, ok := parsePixels(value); ok && v > 0 && v <= maxSpacingValue {
		tokens.Spacing = append(tokens.Spacing, SpacingToken{
			Name:          tokenNameFrom(name, "spacing", "space"),
			Value:         v,
			UsageCategory: spacingUsageCategory(v),
			Count:         1,
		})
	}
}

// tokenNameFrom strips a recognized prefix from a custom-property name and
// camel-cases the rest: "color-primary" -> "primary".
func tokenNameFrom(name string, prefixes ...string) string {
	for _, prefix := range prefixes {
		name = strings.TrimPrefix(name, prefix+"-")
	}
	words := splitWords(name)
	if len(words) == 0 {
		return name
	}
	return lowerCamel(words)
}

// normalizeHex accepts #RGB and #RRGGBB, returning uppercase #RRGGBB.
func normalizeHex(value string) (string, bool) {
	if !strings.HasPrefix(value, "#") {
		return "", false
	}
	hex := value[1:]
	switch len(hex) {
	case 3:
		var b strings.Builder
		b.WriteByte('#')
		for i := 0; i < 3; i++ {
			b.WriteByte(hex[i])
			b.WriteByte(hex[i])
		}
		hex = b.String()[1:]
	case 6:
	default:
		return "", false
	}
	if _, err := strconv.ParseUint(hex, 16, 32); err != nil {
		return "", false
	}
	return "#" + strings.ToUpper(hex), true
}

// parsePixels parses "16px" or a bare number.
func parsePixels(value string) (float64, bool) {
	value = strings.TrimSuffix(value, "px")
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
