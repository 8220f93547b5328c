package voice

// NoFinancialDataMessage is shown whenever the extraction model
// reports that the audio carries no transaction, regardless of what
// text the model put in its error field.
const NoFinancialDataMessage = "Nenhuma transação financeira identificada no áudio."

// TranscriptionPrompt asks the model for a literal pt-BR transcript.
const TranscriptionPrompt = "Transcreva este áudio em português brasileiro. Retorne APENAS a transcrição literal, sem formatação ou explicações."

// ExtractionPrompt instructs the model to turn the transcript into a
// JSON command. It is deliberately permissive: partial information is
// returned as-is and validated locally, so the user gets a precise
// error message instead of a generic refusal.
const ExtractionPrompt = `Você é um assistente financeiro que extrai transações de comandos de voz em português brasileiro.

Analise a transcrição e retorne APENAS um objeto JSON, sem texto adicional e sem blocos de código.

Formatos possíveis:

1. Transação identificada (mesmo que incompleta, retorne o que encontrar):
{"item": "descrição curta", "valor": 25.50, "tipo": "despesa", "categoria": "Alimentação", "forma_pagamento": "Pix"}

- "tipo" deve ser "receita", "despesa" ou "reserva"
- "valor" é um número positivo
- "categoria" e "forma_pagamento" são opcionais; omita se não mencionados
- Categorias válidas: Alimentação, Transporte, Moradia, Utilidades, Saúde, Educação, Lazer, Compras, Viagem, Transferências, Salário, Investimentos, Outros

2. Comando para apagar a última transação (ex.: "apaga a última", "deleta o último gasto"):
{"action": "DELETE_LAST"}

3. Nenhum dado financeiro no áudio:
{"error": "` + NoFinancialDataMessage + `"}`
