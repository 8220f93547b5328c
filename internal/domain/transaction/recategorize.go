package transaction

import (
	"context"
	"log"
	"strings"
	"time"

	"grana/internal/infrastructure/llm"
)

// RecategorizeBatchSize caps how many placeholder rows one run touches.
const RecategorizeBatchSize = 50

// gatewayCallDelay spaces out model calls to stay under the gateway's
// per-second rate limit.
const gatewayCallDelay = 100 * time.Millisecond

// categorizationPrompt drives the batch recategorization of rows that
// only carry a placeholder category.
const categorizationPrompt = `Você é um classificador de transações financeiras brasileiras.

Dada a descrição de uma transação, responda APENAS com o nome de uma destas categorias, sem explicações:

Alimentação, Transporte, Moradia, Utilidades, Saúde, Educação, Lazer, Compras, Viagem, Transferências, Salário, Investimentos, Outras Receitas, Outras Despesas, Outros

Se não for possível classificar com confiança, responda "Outros".`

// RecategorizeResult summarizes one batch run.
type RecategorizeResult struct {
	Processed int `json:"processed"`
	Updated   int `json:"updated"`
}

// Recategorizer asks the model for a better category for rows still
// carrying a placeholder one.
type Recategorizer struct {
	gateway      llm.ClientInterface
	transactions Repository
	callDelay    time.Duration
}

func NewRecategorizer(gateway llm.ClientInterface, transactions Repository) *Recategorizer {
	return &Recategorizer{
		gateway:      gateway,
		transactions: transactions,
		callDelay:    gatewayCallDelay,
	}
}

// Run recategorizes up to RecategorizeBatchSize of the user's
// placeholder rows. A failed model call skips the row; gateway rate
// limit or quota errors abort the batch since retrying immediately
// cannot succeed.
func (r *Recategorizer) Run(ctx context.Context, userID string) (*RecategorizeResult, error) {
	rows, err := r.transactions.ListUncategorized(ctx, userID, RecategorizeBatchSize)
	if err != nil {
		return nil, err
	}

	result := &RecategorizeResult{}
	for i, row := range rows {
		if i > 0 && r.callDelay > 0 {
			select {
			case <-ctx.Done():
				return result, ctx.Err()
			case <-time.After(r.callDelay):
			}
		}

		result.Processed++

		answer, err := r.gateway.Complete(ctx, categorizationPrompt, row.Item)
		if err != nil {
			if err == llm.ErrRateLimited || err == llm.ErrQuotaExceeded {
				return result, err
			}
			log.Printf("User %s: categorization failed for transaction %s: %v", userID, row.ID, err)
			continue
		}

		categoria := strings.TrimSpace(answer)
		if categoria == "" || categoria == row.Categoria {
			continue
		}

		if err := r.transactions.UpdateCategory(ctx, row.ID, userID, categoria); err != nil {
			log.Printf("User %s: failed to update category of transaction %s: %v", userID, row.ID, err)
			continue
		}
		result.Updated++
	}

	return result, nil
}
