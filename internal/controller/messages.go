package controller

// User-facing texts.
const (
	MsgConverted       = "Arquivo convertido com sucesso!"
	MsgProcessingError = "Erro ao processar o arquivo."
	MsgConnectionError = "Erro de conexão com a API. Verifique se o servidor está rodando."
	MsgCopied          = "JSON copiado para a área de transferência!"
	MsgCopyFailed      = "Erro ao copiar para a área de transferência."

	documentFoundPrefix = "Documento encontrado: "
	supportedTypesLabel = "Tipos suportados:"
)
