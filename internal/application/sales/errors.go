package sales

import (
	"errors"
	"strings"

	"github.com/jhoicas/vendas-api/internal/domain"
)

// Mensajes de la finalización.
const (
	MsgFinalizeSuccess  = "Venda finalizada com sucesso!"
	MsgFinalizeGeneric  = "Erro ao finalizar a venda. Tente novamente."
	MsgSellerNotFound   = "Vendedor não encontrado para o usuário atual."
	MsgReportFailed     = "Venda registrada, mas não foi possível gerar o relatório."
	MsgDraftRestored    = "Rascunho restaurado."
	MsgDraftDiscarded   = "Rascunho descartado."
	MsgFinalizeInFlight = "A venda já está sendo finalizada. Aguarde."
)

// friendlyMessages traduce fragmentos conocidos de errores del backend. Se evalúan en orden.
var friendlyMessages = []struct {
	needle  string
	message string
}{
	{"product_price", "Há itens sem preço definido. Revise os produtos e serviços da venda."},
	{"sale_type", "Tipo de venda não informado. Tente novamente."},
	{"total", "O total da venda não foi informado corretamente. Revise os itens."},
}

// UpstreamError es un fallo de un colaborador externo durante la finalización.
// Message es el texto que se muestra al usuario.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string { return e.Message }

func (e *UpstreamError) Unwrap() error { return e.Err }

// userMessager lo implementan los errores que traen un mensaje del backend apto para mostrar.
type userMessager interface {
	UserMessage() string
}

// FriendlyMessage convierte el error de un colaborador en un mensaje para el usuario:
// fragmento conocido → texto traducido; si no, el mensaje del backend; si no hay, el genérico.
// Errores de red u otros internos nunca se muestran tal cual.
func FriendlyMessage(err error) string {
	if err == nil {
		return MsgFinalizeGeneric
	}
	if errors.Is(err, domain.ErrSellerNotFound) {
		return MsgSellerNotFound
	}
	var raw string
	var um userMessager
	if errors.As(err, &um) {
		raw = strings.TrimSpace(um.UserMessage())
	}
	lower := strings.ToLower(raw)
	for _, fm := range friendlyMessages {
		if strings.Contains(lower, fm.needle) {
			return fm.message
		}
	}
	if raw == "" {
		return MsgFinalizeGeneric
	}
	return raw
}
