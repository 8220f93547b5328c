package voice

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ActionDeleteLast undoes the user's most recent ledger entry.
const ActionDeleteLast = "DELETE_LAST"

// ExtractedTransaction is the model's view of a spoken transaction.
// Valor is decoded manually because models alternate between numbers
// and quoted strings.
type ExtractedTransaction struct {
	Item           string  `json:"item"`
	Valor          float64 `json:"-"`
	ValorSet       bool    `json:"-"`
	Tipo           string  `json:"tipo"`
	Categoria      string  `json:"categoria"`
	FormaPagamento string  `json:"forma_pagamento"`
}

// Extraction is the tagged union the extraction model returns: exactly
// one of Transaction, Action or Error is expected to be set. Error is
// always the fixed no-financial-data message, never model prose.
type Extraction struct {
	Transaction *ExtractedTransaction `json:"transaction"`
	Action      string                `json:"action"`
	Error       string                `json:"error"`
}

type rawTransaction struct {
	Item           string          `json:"item"`
	Valor          json.RawMessage `json:"valor"`
	Tipo           string          `json:"tipo"`
	Categoria      string          `json:"categoria"`
	FormaPagamento string          `json:"forma_pagamento"`
}

// rawExtraction accepts both wire shapes: the flat transaction object
// the prompt asks for (embedded fields) and a nested {"transaction":
// {...}} envelope some models produce anyway.
type rawExtraction struct {
	rawTransaction
	Transaction *rawTransaction `json:"transaction"`
	Action      string          `json:"action"`
	Error       *string         `json:"error"`
}

// DecodeExtraction parses the model output into an Extraction. Fenced
// code blocks are tolerated even though the prompt forbids them.
func DecodeExtraction(output string) (*Extraction, error) {
	cleaned := stripCodeFences(output)
	if cleaned == "" {
		return nil, fmt.Errorf("empty model output")
	}

	var raw rawExtraction
	if err := json.Unmarshal([]byte(cleaned), &raw); err != nil {
		return nil, fmt.Errorf("model output is not valid JSON: %w", err)
	}

	extraction := &Extraction{
		Action: strings.TrimSpace(raw.Action),
	}

	// An error key means "no financial data", whatever text the model
	// put in it. The client always sees the same message.
	if raw.Error != nil {
		extraction.Error = NoFinancialDataMessage
		return extraction, nil
	}

	rawTx := raw.Transaction
	if rawTx == nil && (raw.Item != "" || raw.Tipo != "" || len(raw.Valor) > 0) {
		rawTx = &raw.rawTransaction
	}

	if rawTx != nil {
		tx := &ExtractedTransaction{
			Item:           strings.TrimSpace(rawTx.Item),
			Tipo:           strings.TrimSpace(rawTx.Tipo),
			Categoria:      strings.TrimSpace(rawTx.Categoria),
			FormaPagamento: strings.TrimSpace(rawTx.FormaPagamento),
		}
		if len(rawTx.Valor) > 0 && string(rawTx.Valor) != "null" {
			valor, err := decodeValor(rawTx.Valor)
			if err != nil {
				return nil, err
			}
			tx.Valor = valor
			tx.ValorSet = true
		}
		extraction.Transaction = tx
	}

	return extraction, nil
}

// decodeValor accepts a JSON number or a numeric string, including the
// Brazilian decimal comma ("25,50").
func decodeValor(raw json.RawMessage) (float64, error) {
	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		return number, nil
	}

	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return 0, fmt.Errorf("valor is neither number nor string: %s", raw)
	}

	text = strings.TrimSpace(text)
	// Values like "R$ 25,50" lose the currency prefix
	text = strings.TrimPrefix(text, "R$")
	text = strings.TrimSpace(text)
	if strings.Contains(text, ",") {
		// Brazilian format: dots separate thousands, comma is decimal
		text = strings.ReplaceAll(text, ".", "")
		text = strings.ReplaceAll(text, ",", ".")
	}

	number, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse valor %q: %w", text, err)
	}
	return number, nil
}

// stripCodeFences removes a surrounding ```json ... ``` block, if any.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	s = strings.TrimPrefix(s, "```")
	if idx := strings.Index(s, "\n"); idx >= 0 {
		// Drop the language tag line (e.g. "json")
		s = s[idx+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
