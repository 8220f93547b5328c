package voice

import (
	"context"
	"fmt"
	"math"
	"strings"

	"grana/internal/domain/transaction"
	"grana/internal/infrastructure/llm"
)

// Client-facing validation messages (pt-BR, shown as-is in the app).
const (
	MsgIncompleteData  = "Dados incompletos. Informe o que você gastou/recebeu e o valor."
	MsgNoTranscript    = "Não foi possível transcrever o áudio."
	MsgInvalidType     = "Tipo de transação inválido. Use: receita, despesa ou reserva."
	MsgInvalidAmount   = "Valor inválido. Informe um número positivo."
	MsgParseFailure    = "Não entendi o que você disse. Tente novamente com um valor e descrição claros."
	MsgMissingAudio    = "Áudio não fornecido."
	MsgNothingToDelete = "Nenhuma transação para deletar"
	MsgLastDeleted     = "Última transação deletada"
)

// ValidationError is a client-correctable failure. The transcript goes
// back with the error so the user can see what was understood.
type ValidationError struct {
	Message       string
	Transcription string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// Request is one voice command: either an audio payload or an explicit
// action shortcut that skips transcription.
type Request struct {
	AudioBase64 string `json:"audioBase64"`
	Action      string `json:"action"`
}

// Result is the pipeline outcome returned to the client.
type Result struct {
	Success       bool                     `json:"success"`
	Message       string                   `json:"message"`
	Transcription string                   `json:"transcription,omitempty"`
	Transaction   *transaction.Transaction `json:"transaction,omitempty"`
}

// Pipeline wires the gateway and the ledger repository together.
type Pipeline struct {
	gateway      llm.ClientInterface
	transactions transaction.Repository
}

func NewPipeline(gateway llm.ClientInterface, transactions transaction.Repository) *Pipeline {
	return &Pipeline{
		gateway:      gateway,
		transactions: transactions,
	}
}

// Process runs one voice command for the user. Gateway failures
// (rate limit, quota) bubble up unwrapped so the HTTP layer can map
// their status codes; everything the user can fix comes back as a
// *ValidationError.
func (p *Pipeline) Process(ctx context.Context, userID string, req Request) (*Result, error) {
	if req.Action == ActionDeleteLast {
		return p.deleteLast(ctx, userID)
	}

	if strings.TrimSpace(req.AudioBase64) == "" {
		return nil, &ValidationError{Message: MsgMissingAudio}
	}

	audio, format, err := ParseAudioInput(req.AudioBase64)
	if err != nil {
		return nil, &ValidationError{Message: MsgMissingAudio}
	}

	transcription, err := p.gateway.Transcribe(ctx, audio, format, TranscriptionPrompt)
	if err != nil {
		return nil, err
	}
	transcription = strings.TrimSpace(transcription)
	if transcription == "" {
		// Nothing heard means nothing to extract; asking the model
		// anyway invites a hallucinated transaction.
		return nil, &ValidationError{Message: MsgNoTranscript}
	}

	output, err := p.gateway.Complete(ctx, ExtractionPrompt, transcription)
	if err != nil {
		return nil, err
	}

	extraction, err := DecodeExtraction(output)
	if err != nil {
		return nil, &ValidationError{Message: MsgParseFailure, Transcription: transcription}
	}

	if extraction.Error != "" {
		return nil, &ValidationError{Message: extraction.Error, Transcription: transcription}
	}

	if extraction.Action == ActionDeleteLast {
		result, err := p.deleteLast(ctx, userID)
		if err != nil {
			return nil, err
		}
		result.Transcription = transcription
		return result, nil
	}

	tx, vErr := p.validate(userID, extraction.Transaction)
	if vErr != nil {
		vErr.Transcription = transcription
		return nil, vErr
	}

	if err := p.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	return &Result{
		Success:       true,
		Message:       successMessage(tx),
		Transcription: transcription,
		Transaction:   tx,
	}, nil
}

// validate checks the extracted fields in a fixed order so the user
// always gets the most actionable message first.
func (p *Pipeline) validate(userID string, extracted *ExtractedTransaction) (*transaction.Transaction, *ValidationError) {
	if extracted == nil || extracted.Item == "" || !extracted.ValorSet || extracted.Tipo == "" {
		return nil, &ValidationError{Message: MsgIncompleteData}
	}

	tipo := transaction.Type(strings.ToUpper(strings.TrimSpace(extracted.Tipo)))
	if !tipo.IsValid() {
		return nil, &ValidationError{Message: MsgInvalidType}
	}

	valor := extracted.Valor
	if math.IsNaN(valor) || math.IsInf(valor, 0) || valor <= 0 {
		return nil, &ValidationError{Message: MsgInvalidAmount}
	}

	categoria := extracted.Categoria
	if categoria == "" {
		categoria = transaction.CategoryOther
	}

	tx := &transaction.Transaction{
		UserID:    userID,
		Item:      extracted.Item,
		Valor:     valor,
		Tipo:      tipo,
		Categoria: categoria,
	}
	if extracted.FormaPagamento != "" {
		formaPagamento := extracted.FormaPagamento
		tx.FormaPagamento = &formaPagamento
	}

	return tx, nil
}

func (p *Pipeline) deleteLast(ctx context.Context, userID string) (*Result, error) {
	last, err := p.transactions.GetLastByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up last transaction: %w", err)
	}
	if last == nil {
		return &Result{Success: false, Message: MsgNothingToDelete}, nil
	}

	if err := p.transactions.Delete(ctx, last.ID, userID); err != nil {
		return nil, fmt.Errorf("failed to delete last transaction: %w", err)
	}

	return &Result{Success: true, Message: MsgLastDeleted}, nil
}

func successMessage(tx *transaction.Transaction) string {
	var label string
	switch tx.Tipo {
	case transaction.TypeIncome:
		label = "Receita"
	case transaction.TypeReserve:
		label = "Reserva"
	default:
		label = "Despesa"
	}
	return fmt.Sprintf("%s de R$ %.2f registrada: %s", label, tx.Valor, tx.Item)
}
